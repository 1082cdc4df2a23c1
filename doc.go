// Package tatamigo is a chunk-aware caching extractor bridge: it sits
// between a matrix framework's row/column iteration API and an opaque
// foreign matrix object reachable only through expensive, serialized
// boundary calls, and makes the foreign object look like a cheap, cached,
// read-only matrix.
//
// Construct a matrix.Handle over a host.Foreign implementation, then pull
// dense or sparse extractors from it — cached solo, myopic (LRU), or
// oracular (prefetch-driven), regardless of whether the foreign storage
// itself is dense or sparse.
package tatamigo
