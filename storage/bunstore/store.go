// Package bunstore implements the product store gateway on top of bun,
// against sqlite or postgres.
package bunstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	// Database drivers registered for Open.
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/goliatone/go-store-manager/product"
)

// productRecord is the persisted row shape. The category payload is stored as
// a JSON document with the discriminator tag embedded, nullable for generic
// products.
type productRecord struct {
	bun.BaseModel `bun:"table:products,alias:p"`

	ID       int64           `bun:"id,pk,autoincrement"`
	Name     string          `bun:"name,notnull"`
	Price    float64         `bun:"price,notnull"`
	Quantity int             `bun:"quantity,notnull"`
	Category json.RawMessage `bun:"category,type:jsonb,nullzero"`
}

// Store is a SQL-backed product store.
type Store struct {
	db *bun.DB
}

// Open opens a database handle for the given driver ("sqlite3" or
// "postgres") and DSN, and wraps it in a Store.
func Open(driver, dsn string) (*Store, error) {
	sqldb, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	var db *bun.DB
	switch driver {
	case "postgres":
		db = bun.NewDB(sqldb, pgdialect.New())
	default:
		db = bun.NewDB(sqldb, sqlitedialect.New())
	}
	return &Store{db: db}, nil
}

// New wraps an existing bun handle.
func New(db *bun.DB) *Store {
	return &Store{db: db}
}

// Init creates the products table when it does not exist yet.
func (s *Store) Init(ctx context.Context) error {
	_, err := s.db.NewCreateTable().
		Model((*productRecord)(nil)).
		IfNotExists().
		Exec(ctx)
	return err
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Save(ctx context.Context, p product.Product) (product.Product, error) {
	rec, err := toRecord(p)
	if err != nil {
		return product.Product{}, err
	}
	if rec.ID == 0 {
		if _, err := s.db.NewInsert().Model(&rec).Exec(ctx); err != nil {
			return product.Product{}, err
		}
	} else {
		if _, err := s.db.NewUpdate().Model(&rec).WherePK().Exec(ctx); err != nil {
			return product.Product{}, err
		}
	}
	return fromRecord(rec)
}

func (s *Store) FindByID(ctx context.Context, id int64) (product.Product, bool, error) {
	rec := new(productRecord)
	err := s.db.NewSelect().Model(rec).Where("p.id = ?", id).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return product.Product{}, false, nil
	}
	if err != nil {
		return product.Product{}, false, err
	}
	p, err := fromRecord(*rec)
	if err != nil {
		return product.Product{}, false, err
	}
	return p, true, nil
}

func (s *Store) FindAll(ctx context.Context) ([]product.Product, error) {
	var recs []productRecord
	if err := s.db.NewSelect().Model(&recs).Order("id ASC").Scan(ctx); err != nil {
		return nil, err
	}
	out := make([]product.Product, 0, len(recs))
	for _, rec := range recs {
		p, err := fromRecord(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *Store) DeleteByID(ctx context.Context, id int64) error {
	_, err := s.db.NewDelete().
		Model((*productRecord)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return err
}

func toRecord(p product.Product) (productRecord, error) {
	data, err := product.MarshalCategory(p.Category)
	if err != nil {
		return productRecord{}, err
	}
	return productRecord{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Quantity: p.Quantity,
		Category: data,
	}, nil
}

func fromRecord(rec productRecord) (product.Product, error) {
	category, err := product.UnmarshalCategory(rec.Category)
	if err != nil {
		return product.Product{}, err
	}
	return product.Product{
		ID:       rec.ID,
		Name:     rec.Name,
		Price:    rec.Price,
		Quantity: rec.Quantity,
		Category: category,
	}, nil
}
