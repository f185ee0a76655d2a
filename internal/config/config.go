// Package config provides runtime configuration values for the store manager.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds configuration knobs for the store, caches, import engine, and
// event stream.
type Config struct {
	StoreDriver     string // "memory", "sqlite3", or "postgres"
	StoreDSN        string
	CacheCapacity   int
	CacheShards     int
	CacheTTL        time.Duration
	ImportBatchSize int
	ImportWorkers   int    // 0 means available parallelism
	EventStreamPath string // empty keeps events in memory
	LogLevel        slog.Level
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoienv(key string, def int) int {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func durenvs(key string, defSec int) time.Duration {
	sec := atoienv(key, defSec)
	return time.Duration(sec) * time.Second
}

func levelenv(key string, def slog.Level) slog.Level {
	switch strings.ToLower(getenv(key, "")) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return def
}

// Load collects configuration from environment with defaults.
func Load() Config {
	return Config{
		StoreDriver:     getenv("STORE_DRIVER", "memory"),
		StoreDSN:        getenv("STORE_DSN", "file:store.db?cache=shared"),
		CacheCapacity:   atoienv("CACHE_CAPACITY", 10000),
		CacheShards:     atoienv("CACHE_SHARDS", 64),
		CacheTTL:        durenvs("CACHE_TTL_SECONDS", 300),
		ImportBatchSize: atoienv("IMPORT_BATCH_SIZE", 100),
		ImportWorkers:   atoienv("IMPORT_WORKERS", 0),
		EventStreamPath: getenv("EVENT_STREAM_PATH", ""),
		LogLevel:        levelenv("LOG_LEVEL", slog.LevelInfo),
	}
}
