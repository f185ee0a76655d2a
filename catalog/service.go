// Package catalog implements the cache-aside product service: read-through
// caching for single items and the full listing, write-through population and
// targeted invalidation on mutation, and change-event emission.
//
// Cache orchestration is deliberately plain method bodies. There is no
// interception layer, so the behavior is the same no matter where a call
// originates.
package catalog

import (
	"context"
	"log/slog"

	"github.com/goliatone/go-store-manager/cache"
	"github.com/goliatone/go-store-manager/notify"
	"github.com/goliatone/go-store-manager/product"
	"github.com/goliatone/go-store-manager/storage"
)

// Service orchestrates the product write/read path around the store gateway.
// It maintains two independent caches: an item cache keyed per product id and
// a collection cache holding the full listing under a single key. Any write
// that can change the listing's membership invalidates the collection cache
// wholesale rather than patching it.
type Service struct {
	store    storage.Store
	items    cache.Cache[product.Product]
	listing  cache.Cache[[]product.Product]
	notifier notify.Publisher
	log      *slog.Logger
}

// New wires a Service. A nil logger falls back to slog.Default.
func New(
	store storage.Store,
	items cache.Cache[product.Product],
	listing cache.Cache[[]product.Product],
	notifier notify.Publisher,
	log *slog.Logger,
) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		store:    store,
		items:    items,
		listing:  listing,
		notifier: notifier,
		log:      log,
	}
}

// AddProduct validates the request, persists a new product, populates the
// item cache at the assigned id, invalidates the listing cache, and
// announces the creation with the full product as payload.
func (s *Service) AddProduct(ctx context.Context, req product.Request) (product.Product, error) {
	if err := req.Validate(); err != nil {
		return product.Product{}, err
	}

	p := product.Product{
		Name:     req.Name,
		Price:    req.Price,
		Quantity: req.Quantity,
		Category: product.CategoryFor(req),
	}
	saved, err := s.store.Save(ctx, p)
	if err != nil {
		return product.Product{}, err
	}

	s.items.Set(ctx, cache.ProductKey(saved.ID), saved)
	s.invalidateListing(ctx)
	s.publish(ctx, notify.Event{Type: notify.TypeProductCreated, Payload: saved})
	return saved, nil
}

// FindByID serves the product from the item cache when present, without
// revalidating against the store. On a miss it loads from the store and
// repopulates the cache. The check/load/populate sequence is not atomic: two
// concurrent misses both load and both populate, which is idempotent.
func (s *Service) FindByID(ctx context.Context, id int64) (product.Product, error) {
	key := cache.ProductKey(id)
	if p, ok := s.items.Get(ctx, key); ok {
		return p, nil
	}

	p, ok, err := s.store.FindByID(ctx, id)
	if err != nil {
		return product.Product{}, err
	}
	if !ok {
		return product.Product{}, &product.NotFoundError{ID: id}
	}
	s.items.Set(ctx, key, p)
	return p, nil
}

// FindAllFiltered loads the full listing cache-aside against the collection
// cache, then applies the filter fresh on every call.
func (s *Service) FindAllFiltered(ctx context.Context, f Filter) ([]product.Product, error) {
	all, err := s.listing.GetOrFetch(ctx, cache.ProductsKey, func(ctx context.Context) ([]product.Product, error) {
		return s.store.FindAll(ctx)
	})
	if err != nil {
		return nil, err
	}

	out := make([]product.Product, 0, len(all))
	for _, p := range all {
		if f.Matches(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

// UpdateProduct overwrites name, price, and quantity of an existing product,
// refreshes the item cache, and invalidates the listing cache. A price-change
// event carrying the id is published only when the numeric price actually
// changed. The stored category payload is left untouched.
func (s *Service) UpdateProduct(ctx context.Context, id int64, req product.Request) (product.Product, error) {
	if err := req.Validate(); err != nil {
		return product.Product{}, err
	}

	cur, err := s.FindByID(ctx, id)
	if err != nil {
		return product.Product{}, err
	}

	priceChanged := cur.Price != req.Price
	cur.Name = req.Name
	cur.Price = req.Price
	cur.Quantity = req.Quantity

	saved, err := s.store.Save(ctx, cur)
	if err != nil {
		return product.Product{}, err
	}

	s.items.Set(ctx, cache.ProductKey(id), saved)
	s.invalidateListing(ctx)
	if priceChanged {
		s.publish(ctx, notify.Event{Type: notify.TypePriceChanged, Payload: id})
	}
	return saved, nil
}

// DeleteProduct deletes from the store, evicts the item cache entry, and
// invalidates the listing cache. Deleting an absent id is not an error: the
// store silently no-ops and the cache evictions are harmless.
func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.store.DeleteByID(ctx, id); err != nil {
		return err
	}
	if err := s.items.Delete(ctx, cache.ProductKey(id)); err != nil {
		s.log.Warn("item cache eviction failed", "id", id, "error", err)
	}
	s.invalidateListing(ctx)
	return nil
}

// invalidateListing drops the collection cache entry. Invalidation failures
// are logged and swallowed; the cache is re-derivable from the store.
func (s *Service) invalidateListing(ctx context.Context) {
	if err := s.listing.Delete(ctx, cache.ProductsKey); err != nil {
		s.log.Warn("listing cache invalidation failed", "error", err)
	}
}

// publish sends a change event. Notifier failures are logged and never fail
// the surrounding operation.
func (s *Service) publish(ctx context.Context, ev notify.Event) {
	if err := s.notifier.Publish(ctx, notify.TopicProducts, ev); err != nil {
		s.log.Warn("event publish failed",
			"topic", notify.TopicProducts,
			"event_type", ev.Type,
			"error", err,
		)
	}
}
