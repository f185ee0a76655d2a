package catalog_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-store-manager/cache"
	"github.com/goliatone/go-store-manager/catalog"
	"github.com/goliatone/go-store-manager/notify"
	"github.com/goliatone/go-store-manager/pkg/testsupport"
	"github.com/goliatone/go-store-manager/product"
	"github.com/goliatone/go-store-manager/storage"
)

// countingStore wraps the in-memory store and counts gateway reads, so tests
// can tell cache hits from store loads.
type countingStore struct {
	*storage.Memory
	findByID atomic.Int64
	findAll  atomic.Int64
}

func (s *countingStore) FindByID(ctx context.Context, id int64) (product.Product, bool, error) {
	s.findByID.Add(1)
	return s.Memory.FindByID(ctx, id)
}

func (s *countingStore) FindAll(ctx context.Context) ([]product.Product, error) {
	s.findAll.Add(1)
	return s.Memory.FindAll(ctx)
}

type fixture struct {
	store    *countingStore
	items    cache.Cache[product.Product]
	listing  cache.Cache[[]product.Product]
	notifier *notify.Memory
	svc      *catalog.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cfg := cache.Config{
		Capacity:           1000,
		NumShards:          2,
		TTL:                time.Minute,
		EvictionPercentage: 10,
	}
	items, err := cache.New[product.Product](cfg)
	require.NoError(t, err)
	listing, err := cache.New[[]product.Product](cfg)
	require.NoError(t, err)

	store := &countingStore{Memory: storage.NewMemory()}
	notifier := notify.NewMemory()
	return &fixture{
		store:    store,
		items:    items,
		listing:  listing,
		notifier: notifier,
		svc:      catalog.New(store, items, listing, notifier, nil),
	}
}

func TestAddProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("persists, caches, and announces", func(t *testing.T) {
		f := newFixture(t)

		saved, err := f.svc.AddProduct(ctx, testsupport.BookRequest("Effective Java", "Bloch"))
		require.NoError(t, err)
		assert.NotZero(t, saved.ID)
		assert.Equal(t, product.Book{Author: "Bloch", Genre: "Programming"}, saved.Category)

		cached, ok := f.items.Get(ctx, cache.ProductKey(saved.ID))
		require.True(t, ok)
		assert.Equal(t, saved, cached)

		events := f.notifier.Events(notify.TopicProducts)
		require.Len(t, events, 1)
		assert.Equal(t, notify.TypeProductCreated, events[0].Type)
		assert.Equal(t, saved, events[0].Payload)
		assert.Equal(t, int64(1), f.notifier.Metrics().Published(notify.TopicProducts, notify.TypeProductCreated))
	})

	t.Run("invalid request writes nothing", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.AddProduct(ctx, product.Request{Name: "", Price: 10, Quantity: 1})
		require.ErrorIs(t, err, product.ErrInvalid)

		assert.Equal(t, 0, f.store.Memory.Len())
		assert.Empty(t, f.notifier.Events(notify.TopicProducts))
	})
}

func TestFindByID(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit does not touch the store", func(t *testing.T) {
		f := newFixture(t)
		saved, err := f.svc.AddProduct(ctx, testsupport.GenericRequest("Widget"))
		require.NoError(t, err)

		got, err := f.svc.FindByID(ctx, saved.ID)
		require.NoError(t, err)
		assert.Equal(t, saved, got)
		assert.Equal(t, int64(0), f.store.findByID.Load(), "add populated the cache, so no store read")
	})

	t.Run("miss loads and repopulates", func(t *testing.T) {
		f := newFixture(t)
		saved, err := f.store.Save(ctx, product.Product{Name: "Widget", Price: 2, Quantity: 1})
		require.NoError(t, err)

		got, err := f.svc.FindByID(ctx, saved.ID)
		require.NoError(t, err)
		assert.Equal(t, saved, got)
		assert.Equal(t, int64(1), f.store.findByID.Load())

		_, err = f.svc.FindByID(ctx, saved.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), f.store.findByID.Load(), "second read served from cache")
	})

	t.Run("hit serves stale data after an out-of-band store write", func(t *testing.T) {
		// Accepted staleness boundary: cache hits never revalidate, so a
		// store mutation that bypasses the service stays invisible until
		// the next invalidating write.
		f := newFixture(t)
		saved, err := f.svc.AddProduct(ctx, testsupport.GenericRequest("Widget"))
		require.NoError(t, err)

		mutated := saved
		mutated.Price = 99.99
		_, err = f.store.Save(ctx, mutated)
		require.NoError(t, err)

		got, err := f.svc.FindByID(ctx, saved.ID)
		require.NoError(t, err)
		assert.Equal(t, saved.Price, got.Price)
	})

	t.Run("absent id fails with not found", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.FindByID(ctx, 404)
		require.ErrorIs(t, err, product.ErrNotFound)

		var nf *product.NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, int64(404), nf.ID)
	})
}

func TestUpdateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("overwrites fields and refreshes the item cache", func(t *testing.T) {
		f := newFixture(t)
		saved, err := f.svc.AddProduct(ctx, testsupport.BookRequest("Effective Java", "Bloch"))
		require.NoError(t, err)

		req := testsupport.BookRequest("Effective Java 3rd", "Bloch")
		req.Price = 49.99
		req.Quantity = 7
		updated, err := f.svc.UpdateProduct(ctx, saved.ID, req)
		require.NoError(t, err)

		assert.Equal(t, saved.ID, updated.ID)
		assert.Equal(t, "Effective Java 3rd", updated.Name)
		assert.Equal(t, 49.99, updated.Price)
		assert.Equal(t, 7, updated.Quantity)
		assert.Equal(t, saved.Category, updated.Category, "update leaves the category untouched")

		cached, ok := f.items.Get(ctx, cache.ProductKey(saved.ID))
		require.True(t, ok)
		assert.Equal(t, updated, cached)
	})

	t.Run("price change publishes exactly one event carrying the id", func(t *testing.T) {
		f := newFixture(t)
		saved, err := f.svc.AddProduct(ctx, testsupport.GenericRequest("Widget"))
		require.NoError(t, err)

		req := testsupport.GenericRequest("Widget")
		req.Price = 42.00
		_, err = f.svc.UpdateProduct(ctx, saved.ID, req)
		require.NoError(t, err)

		assert.Equal(t, int64(1), f.notifier.Metrics().Published(notify.TopicProducts, notify.TypePriceChanged))
		events := f.notifier.Events(notify.TopicProducts)
		last := events[len(events)-1]
		assert.Equal(t, notify.TypePriceChanged, last.Type)
		assert.Equal(t, saved.ID, last.Payload)
	})

	t.Run("identical price publishes nothing", func(t *testing.T) {
		f := newFixture(t)
		saved, err := f.svc.AddProduct(ctx, testsupport.GenericRequest("Widget"))
		require.NoError(t, err)

		req := testsupport.GenericRequest("Widget renamed")
		_, err = f.svc.UpdateProduct(ctx, saved.ID, req)
		require.NoError(t, err)

		assert.Equal(t, int64(0), f.notifier.Metrics().Published(notify.TopicProducts, notify.TypePriceChanged))
	})

	t.Run("absent id fails with not found", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.UpdateProduct(ctx, 404, testsupport.GenericRequest("Widget"))
		assert.ErrorIs(t, err, product.ErrNotFound)
	})
}

func TestDeleteProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("removes the record and evicts the cache entry", func(t *testing.T) {
		f := newFixture(t)
		saved, err := f.svc.AddProduct(ctx, testsupport.GenericRequest("Widget"))
		require.NoError(t, err)

		require.NoError(t, f.svc.DeleteProduct(ctx, saved.ID))

		_, ok := f.items.Get(ctx, cache.ProductKey(saved.ID))
		assert.False(t, ok)
		_, err = f.svc.FindByID(ctx, saved.ID)
		assert.ErrorIs(t, err, product.ErrNotFound)
	})

	t.Run("deleting an absent id is not an error", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.svc.DeleteProduct(ctx, 404))
	})
}

func TestListingInvalidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	first, err := f.svc.AddProduct(ctx, testsupport.GenericRequest("one"))
	require.NoError(t, err)

	listing, err := f.svc.FindAllFiltered(ctx, catalog.Filter{})
	require.NoError(t, err)
	assert.Len(t, listing, 1)

	// Cached: a second unfiltered read must not hit the store.
	reads := f.store.findAll.Load()
	_, err = f.svc.FindAllFiltered(ctx, catalog.Filter{})
	require.NoError(t, err)
	assert.Equal(t, reads, f.store.findAll.Load())

	// Every membership change invalidates the collection cache.
	second, err := f.svc.AddProduct(ctx, testsupport.GenericRequest("two"))
	require.NoError(t, err)
	listing, err = f.svc.FindAllFiltered(ctx, catalog.Filter{})
	require.NoError(t, err)
	assert.Len(t, listing, 2)

	req := testsupport.GenericRequest("two renamed")
	_, err = f.svc.UpdateProduct(ctx, second.ID, req)
	require.NoError(t, err)
	listing, err = f.svc.FindAllFiltered(ctx, catalog.Filter{})
	require.NoError(t, err)
	require.Len(t, listing, 2)
	assert.Equal(t, "two renamed", listing[1].Name)

	require.NoError(t, f.svc.DeleteProduct(ctx, first.ID))
	listing, err = f.svc.FindAllFiltered(ctx, catalog.Filter{})
	require.NoError(t, err)
	require.Len(t, listing, 1)
	assert.Equal(t, second.ID, listing[0].ID)
}

func TestFindAllFiltered(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.AddProduct(ctx, testsupport.BookRequest("Effective Java", "Bloch"))
	require.NoError(t, err)
	_, err = f.svc.AddProduct(ctx, testsupport.ElectronicsRequest("Laptop", "Apple"))
	require.NoError(t, err)
	_, err = f.svc.AddProduct(ctx, testsupport.GenericRequest("Widget"))
	require.NoError(t, err)

	names := func(ps []product.Product) []string {
		out := make([]string, len(ps))
		for i, p := range ps {
			out[i] = p.Name
		}
		return out
	}

	t.Run("no filters returns everything", func(t *testing.T) {
		got, err := f.svc.FindAllFiltered(ctx, catalog.Filter{})
		require.NoError(t, err)
		assert.Equal(t, []string{"Effective Java", "Laptop", "Widget"}, names(got))
	})

	t.Run("type narrows by category", func(t *testing.T) {
		got, err := f.svc.FindAllFiltered(ctx, catalog.Filter{Type: "Book"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Effective Java"}, names(got))
	})

	t.Run("type matching is case-insensitive", func(t *testing.T) {
		got, err := f.svc.FindAllFiltered(ctx, catalog.Filter{Type: "book"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Effective Java"}, names(got))
	})

	t.Run("type and author are conjunctive", func(t *testing.T) {
		got, err := f.svc.FindAllFiltered(ctx, catalog.Filter{Type: "Book", Author: "Knuth"})
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("author alone matches book payloads", func(t *testing.T) {
		got, err := f.svc.FindAllFiltered(ctx, catalog.Filter{Author: "bloch"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Effective Java"}, names(got))
	})

	t.Run("brand narrows electronics", func(t *testing.T) {
		got, err := f.svc.FindAllFiltered(ctx, catalog.Filter{Type: "Electronics", Brand: "Apple"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Laptop"}, names(got))
	})
}
