// SPDX-License-Identifier: MIT

// Package matrix is the caching extractor engine's upstream contract: a
// read-only, chunk-aware view over an opaque foreign matrix object. Handle
// discovers the foreign object's shape, storage kind, and chunk grid once at
// construction, then hands out dense and sparse extractors — one of six
// storage x request-shape combinations, each wired to the cache policy
// (solo/myopic/oracular) the configured byte budget and optional oracle
// select.
//
// This generalizes the mutable, in-process Matrix interface (Rows/Cols/At/
// Set/Clone over a flat float64 grid) to a read-only view over a matrix that
// is never actually materialized in process memory: every element still
// comes from somewhere, but "somewhere" is now an expensive, lock-serialized
// boundary call instead of a slice index, which is why the contract surface
// is extractor factories rather than direct At/Set.
package matrix
