// Package bulkimport decodes batches of import requests and drives them
// through the product service, sequentially or via a partitioned worker pool,
// with per-record failure isolation.
package bulkimport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/goliatone/go-store-manager/catalog"
	"github.com/goliatone/go-store-manager/product"
)

// Mode selects how a batch is processed.
type Mode string

const (
	SingleThreaded Mode = "SINGLE_THREADED"
	MultiThreaded  Mode = "MULTI_THREADED"
)

// ParseMode maps a mode string, case-insensitively, to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToUpper(s) {
	case string(SingleThreaded):
		return SingleThreaded, nil
	case string(MultiThreaded):
		return MultiThreaded, nil
	}
	return "", fmt.Errorf("unknown import mode %q", s)
}

// Result summarizes one import call. Success and Failed always sum to Total;
// DurationMs covers processing only, not parsing.
type Result struct {
	Total      int   `json:"total"`
	Success    int   `json:"success"`
	Failed     int   `json:"failed"`
	DurationMs int64 `json:"durationMs"`
}

// ErrParse is the sentinel wrapped by every ParseError.
var ErrParse = errors.New("malformed import payload")

// ParseError reports an import payload that could not be decoded. The whole
// call fails before any record is processed.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return "malformed import payload: " + e.Err.Error()
}

func (e *ParseError) Unwrap() error { return ErrParse }

// DefaultBatchSize is the number of contiguous records handed to one worker
// in multi-threaded mode.
const DefaultBatchSize = 100

// Importer drives import batches through the product service. Its worker
// pool is created once and reused across calls for the life of the process;
// there is no resize or shutdown beyond process teardown.
type Importer struct {
	svc       *catalog.Service
	batchSize int
	workers   int
	pool      *pool
	log       *slog.Logger
}

// Option adjusts Importer construction.
type Option func(*Importer)

// WithBatchSize overrides the per-worker batch size. Values below 1 keep the
// default.
func WithBatchSize(n int) Option {
	return func(imp *Importer) {
		if n > 0 {
			imp.batchSize = n
		}
	}
}

// WithWorkers overrides the worker pool size. Values below 1 keep the
// default of the available parallelism.
func WithWorkers(n int) Option {
	return func(imp *Importer) {
		if n > 0 {
			imp.workers = n
		}
	}
}

// WithLogger sets the importer's logger.
func WithLogger(log *slog.Logger) Option {
	return func(imp *Importer) {
		if log != nil {
			imp.log = log
		}
	}
}

// New constructs an Importer and starts its worker pool.
func New(svc *catalog.Service, opts ...Option) *Importer {
	imp := &Importer{
		svc:       svc,
		batchSize: DefaultBatchSize,
		workers:   runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(imp)
	}
	if imp.log == nil {
		imp.log = slog.Default()
	}
	imp.pool = newPool(imp.workers)
	return imp
}

// ImportFromJSON decodes an ordered JSON array of import requests from r and
// processes it in the requested mode. A decode failure aborts the whole call
// with a ParseError and zero records processed; once processing starts, a
// record's failure is tallied, never propagated.
func (imp *Importer) ImportFromJSON(ctx context.Context, r io.Reader, mode Mode) (Result, error) {
	var reqs []product.Request
	if err := json.NewDecoder(r).Decode(&reqs); err != nil {
		return Result{}, &ParseError{Err: err}
	}
	imp.log.Info("parsed import payload", "count", len(reqs), "mode", string(mode))

	if mode == MultiThreaded {
		return imp.importMultiThreaded(ctx, reqs), nil
	}
	return imp.importSingleThreaded(ctx, reqs), nil
}

func (imp *Importer) importSingleThreaded(ctx context.Context, reqs []product.Request) Result {
	start := time.Now()
	success, failed := 0, 0
	for _, req := range reqs {
		if imp.process(ctx, req) {
			success++
		} else {
			failed++
		}
	}
	duration := time.Since(start).Milliseconds()
	imp.log.Info("single-threaded import completed",
		"duration_ms", duration, "success", success, "failed", failed)
	return Result{Total: len(reqs), Success: success, Failed: failed, DurationMs: duration}
}

func (imp *Importer) importMultiThreaded(ctx context.Context, reqs []product.Request) Result {
	start := time.Now()
	success := xsync.NewCounter()
	failed := xsync.NewCounter()

	batches := partition(reqs, imp.batchSize)
	imp.log.Info("processing import batches",
		"batches", len(batches), "batch_size", imp.batchSize, "workers", imp.workers)

	var wg sync.WaitGroup
	for _, batch := range batches {
		wg.Add(1)
		imp.pool.submit(func() {
			defer wg.Done()
			for _, req := range batch {
				if imp.process(ctx, req) {
					success.Inc()
				} else {
					failed.Inc()
				}
			}
		})
	}
	wg.Wait()

	duration := time.Since(start).Milliseconds()
	imp.log.Info("multi-threaded import completed",
		"duration_ms", duration, "success", success.Value(), "failed", failed.Value())
	return Result{
		Total:      len(reqs),
		Success:    int(success.Value()),
		Failed:     int(failed.Value()),
		DurationMs: duration,
	}
}

// process runs one record through the service. Failures are logged and
// reported to the caller's tally; they never abort the batch.
func (imp *Importer) process(ctx context.Context, req product.Request) bool {
	if _, err := imp.svc.AddProduct(ctx, req); err != nil {
		imp.log.Error("failed to import product", "name", req.Name, "error", err)
		return false
	}
	return true
}

// partition splits reqs into contiguous batches of at most size records.
// Order within each batch is the input order.
func partition(reqs []product.Request, size int) [][]product.Request {
	var batches [][]product.Request
	for i := 0; i < len(reqs); i += size {
		end := i + size
		if end > len(reqs) {
			end = len(reqs)
		}
		batches = append(batches, reqs[i:end])
	}
	return batches
}
