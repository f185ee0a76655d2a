// Command store-manager runs a bulk product import from a JSON file against
// the configured store and reports the batch result.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/joho/godotenv"

	"github.com/goliatone/go-store-manager/bulkimport"
	"github.com/goliatone/go-store-manager/cache"
	"github.com/goliatone/go-store-manager/catalog"
	"github.com/goliatone/go-store-manager/internal/config"
	"github.com/goliatone/go-store-manager/internal/obs"
	"github.com/goliatone/go-store-manager/notify"
	"github.com/goliatone/go-store-manager/pkg/di"
	"github.com/goliatone/go-store-manager/storage"
	"github.com/goliatone/go-store-manager/storage/bunstore"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	obs.InitLogger(cfg.LogLevel)

	file := flag.String("file", "", "path to a JSON file with import requests")
	modeFlag := flag.String("mode", string(bulkimport.SingleThreaded), "SINGLE_THREADED or MULTI_THREADED")
	flag.Parse()

	if *file == "" {
		obs.Logger.Error("missing -file argument")
		os.Exit(2)
	}

	mode, err := bulkimport.ParseMode(*modeFlag)
	if err != nil {
		obs.Logger.Error("invalid mode", "error", err)
		os.Exit(2)
	}

	ctx := context.Background()

	store, cleanup, err := openStore(ctx, cfg)
	if err != nil {
		obs.Logger.Error("store setup failed", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}
	defer cleanup()

	notifier, cleanupStream, err := openNotifier(cfg)
	if err != nil {
		obs.Logger.Error("event stream setup failed", "path", cfg.EventStreamPath, "error", err)
		os.Exit(1)
	}
	defer cleanupStream()

	container, err := di.NewContainer(di.Options{
		Cache: cache.Config{
			Capacity:           cfg.CacheCapacity,
			NumShards:          cfg.CacheShards,
			TTL:                cfg.CacheTTL,
			EvictionPercentage: 10,
		},
		Store:     store,
		Notifier:  notifier,
		BatchSize: cfg.ImportBatchSize,
		Workers:   cfg.ImportWorkers,
		Logger:    obs.Logger,
	})
	if err != nil {
		obs.Logger.Error("container setup failed", "error", err)
		os.Exit(1)
	}

	f, err := os.Open(*file)
	if err != nil {
		obs.Logger.Error("cannot open import file", "file", *file, "error", err)
		os.Exit(1)
	}
	defer f.Close()

	result, err := container.Importer().ImportFromJSON(ctx, f, mode)
	if err != nil {
		obs.Logger.Error("import failed", "error", err)
		os.Exit(1)
	}

	obs.Logger.Info("import finished",
		"total", result.Total,
		"success", result.Success,
		"failed", result.Failed,
		"duration_ms", result.DurationMs,
	)

	listing, err := container.Service().FindAllFiltered(ctx, catalog.Filter{})
	if err != nil {
		obs.Logger.Error("listing failed", "error", err)
		os.Exit(1)
	}
	obs.Logger.Info("store contents", "products", len(listing))
}

func openStore(ctx context.Context, cfg config.Config) (storage.Store, func(), error) {
	if cfg.StoreDriver == "memory" {
		return storage.NewMemory(), func() {}, nil
	}
	st, err := bunstore.Open(cfg.StoreDriver, cfg.StoreDSN)
	if err != nil {
		return nil, nil, err
	}
	if err := st.Init(ctx); err != nil {
		st.Close()
		return nil, nil, err
	}
	return st, func() { st.Close() }, nil
}

func openNotifier(cfg config.Config) (notify.Publisher, func(), error) {
	if cfg.EventStreamPath == "" {
		return notify.NewMemory(), func() {}, nil
	}
	f, err := os.OpenFile(cfg.EventStreamPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return notify.NewStream(f, nil), func() { f.Close() }, nil
}
