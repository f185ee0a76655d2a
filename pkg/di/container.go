// Package di wires the store manager components together.
package di

import (
	"log/slog"

	"github.com/goliatone/go-store-manager/bulkimport"
	"github.com/goliatone/go-store-manager/cache"
	"github.com/goliatone/go-store-manager/catalog"
	"github.com/goliatone/go-store-manager/notify"
	"github.com/goliatone/go-store-manager/product"
	"github.com/goliatone/go-store-manager/storage"
)

// Container owns the singletons behind the product service: the two caches,
// the store gateway, the change notifier, the service itself, and the bulk
// importer.
type Container struct {
	items    cache.Cache[product.Product]
	listing  cache.Cache[[]product.Product]
	store    storage.Store
	notifier notify.Publisher
	service  *catalog.Service
	importer *bulkimport.Importer
}

// Options configures container construction. Zero values fall back to an
// in-memory store, an in-memory publisher, default cache configuration, and
// the importer defaults.
type Options struct {
	Cache     cache.Config
	Store     storage.Store
	Notifier  notify.Publisher
	BatchSize int
	Workers   int
	Logger    *slog.Logger
}

// NewContainer creates a container with the provided options.
func NewContainer(opts Options) (*Container, error) {
	cfg := opts.Cache
	if cfg.Capacity == 0 {
		cfg = cache.DefaultConfig()
	}

	items, err := cache.New[product.Product](cfg)
	if err != nil {
		return nil, err
	}
	listing, err := cache.New[[]product.Product](cfg)
	if err != nil {
		return nil, err
	}

	store := opts.Store
	if store == nil {
		store = storage.NewMemory()
	}
	notifier := opts.Notifier
	if notifier == nil {
		notifier = notify.NewMemory()
	}

	service := catalog.New(store, items, listing, notifier, opts.Logger)
	importer := bulkimport.New(service,
		bulkimport.WithBatchSize(opts.BatchSize),
		bulkimport.WithWorkers(opts.Workers),
		bulkimport.WithLogger(opts.Logger),
	)

	return &Container{
		items:    items,
		listing:  listing,
		store:    store,
		notifier: notifier,
		service:  service,
		importer: importer,
	}, nil
}

// NewContainerWithDefaults creates a container using defaults throughout.
func NewContainerWithDefaults() (*Container, error) {
	return NewContainer(Options{})
}

// Service returns the cache-aside product service.
func (c *Container) Service() *catalog.Service { return c.service }

// Importer returns the bulk import engine.
func (c *Container) Importer() *bulkimport.Importer { return c.importer }

// Store returns the store gateway.
func (c *Container) Store() storage.Store { return c.store }

// Notifier returns the change notifier.
func (c *Container) Notifier() notify.Publisher { return c.notifier }

// ItemCache returns the per-product cache.
func (c *Container) ItemCache() cache.Cache[product.Product] { return c.items }

// ListingCache returns the collection cache.
func (c *Container) ListingCache() cache.Cache[[]product.Product] { return c.listing }
