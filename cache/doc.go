// Package cache defines the caching contract and configuration used by the
// product service. It exposes a small generic Cache interface with explicit
// Get/Set/Delete operations plus a read-through GetOrFetch, and key helpers
// for the two logical caches the service maintains: a per-product item cache
// and a single-entry collection cache for the full listing.
//
// The default implementation lives in internal/cacheinfra and is backed by
// sturdyc; construct it through New with a Config.
package cache
