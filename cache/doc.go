// Package cache provides a tiered response cache for API client read methods.
//
// A read method is memoized by its full call signature: a deterministic key
// is derived from the owning client identity, the method identity, and the
// canonical form of the call arguments. Expiry is governed by a small closed
// set of named tiers (static, daily, catalog, popularity, search, user)
// rather than per-response headers, because staleness tolerance is a property
// of the kind of data an endpoint returns, not of a specific payload.
//
// Backends: an in-memory LRU store and a Redis store. Errors from the
// underlying call are never memoized.
package cache
