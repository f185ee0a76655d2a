package cache

import "context"

// FetchFn loads a value from the source of truth on a cache miss.
type FetchFn[T any] func(ctx context.Context) (T, error)

// Cache is the caching contract the product service operates against. The
// item cache and the collection cache are two independent instances of this
// interface; population and invalidation are always explicit calls made by
// the service itself, never interception.
type Cache[T any] interface {
	// Get returns the cached value for key when present.
	Get(ctx context.Context, key string) (T, bool)

	// Set stores value under key, overwriting any previous entry.
	Set(ctx context.Context, key string, value T)

	// Delete evicts the entry for key. Evicting an absent key is a no-op.
	Delete(ctx context.Context, key string) error

	// GetOrFetch returns the cached value for key, or runs fetch to load it
	// from the source of truth and stores the result before returning it.
	GetOrFetch(ctx context.Context, key string, fetch func(ctx context.Context) (T, error)) (T, error)
}
