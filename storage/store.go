// Package storage provides the persistent record store behind the product
// service. The Store interface is the gateway the service depends on; Memory
// is an in-process implementation, and storage/bunstore provides the SQL one.
package storage

import (
	"context"

	"github.com/goliatone/go-store-manager/product"
)

// Store is the gateway to the persistent product store, keyed by surrogate
// integer id. Implementations enforce id uniqueness.
type Store interface {
	// Save persists p. A zero id means a new record; the assigned id is
	// returned on the stored copy. A non-zero id overwrites that record.
	Save(ctx context.Context, p product.Product) (product.Product, error)

	// FindByID returns the record for id and whether it exists.
	FindByID(ctx context.Context, id int64) (product.Product, bool, error)

	// FindAll returns every record, ordered by id.
	FindAll(ctx context.Context) ([]product.Product, error)

	// DeleteByID removes the record for id. Deleting an absent id is a no-op.
	DeleteByID(ctx context.Context, id int64) error
}
