// SPDX-License-Identifier: MIT

// Package config: functional configuration for the caching extractor engine.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors,
//   - Gather (internal-facing) helper that validates and assembles Options.
//
// Design goals mirror the matrix framework's own options package: no global
// state, no implicit defaults hidden in call sites. Unlike a pure numeric policy, a byte budget can plausibly arrive from
// outside the program (a config file, a flag), so invalid values here return
// an error instead of panicking.
package config

import "github.com/katalvlaran/tatamigo/tatamierr"

// Defaults - single source of truth for zero-value behavior. These constants
// MUST reflect the intended defaults in Gather.
const (
	// DefaultMaximumCacheSize is the byte budget used when the caller does
	// not supply WithMaximumCacheSize: roughly 100 MiB.
	DefaultMaximumCacheSize int64 = 100 << 20

	// DefaultRequireMinimumCache controls whether the engine raises the
	// effective budget so at least one full row-of-chunks fits.
	DefaultRequireMinimumCache = false
)

// Options holds the two knobs the engine understands. Fields are unexported;
// callers build an Options value via Gather(opts...).
type Options struct {
	maximumCacheSize    int64
	requireMinimumCache bool
}

// MaximumCacheSize returns the configured byte budget.
func (o Options) MaximumCacheSize() int64 { return o.maximumCacheSize }

// RequireMinimumCache reports whether the minimum-cache policy is active.
func (o Options) RequireMinimumCache() bool { return o.requireMinimumCache }

// Option mutates an in-progress Options during Gather.
type Option func(*Options)

// WithMaximumCacheSize overrides the byte budget used to size slab caches.
// A non-positive value is rejected by Gather.
func WithMaximumCacheSize(bytes int64) Option {
	return func(o *Options) { o.maximumCacheSize = bytes }
}

// WithRequireMinimumCache toggles the "at least one row-of-chunks fits"
// policy described in the data model.
func WithRequireMinimumCache(require bool) Option {
	return func(o *Options) { o.requireMinimumCache = require }
}

// Gather assembles Options from defaults plus the supplied overrides and
// validates the result. It is the single place construction-time invariants
// are enforced.
func Gather(opts ...Option) (Options, error) {
	o := Options{
		maximumCacheSize:    DefaultMaximumCacheSize,
		requireMinimumCache: DefaultRequireMinimumCache,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.maximumCacheSize <= 0 {
		return Options{}, tatamierr.ErrInvalidConfig
	}
	return o, nil
}
