package catalog

import (
	"strings"

	"github.com/goliatone/go-store-manager/product"
)

// Filter narrows the product listing. Empty fields are not applied; all
// provided fields must match (conjunctive). Matching is case-insensitive.
type Filter struct {
	Type   string
	Author string
	Brand  string
	Size   string
}

// IsZero reports whether no criterion is set.
func (f Filter) IsZero() bool {
	return f.Type == "" && f.Author == "" && f.Brand == "" && f.Size == ""
}

// Matches reports whether p passes every provided criterion. A product
// without a category payload passes only when no criterion is set; Author,
// Brand, and Size each match only their own variant.
func (f Filter) Matches(p product.Product) bool {
	if f.IsZero() {
		return true
	}
	if p.Category == nil {
		return false
	}
	if f.Type != "" && !strings.EqualFold(f.Type, p.Category.Kind()) {
		return false
	}

	switch c := p.Category.(type) {
	case product.Book:
		if f.Brand != "" || f.Size != "" {
			return false
		}
		if f.Author != "" && !strings.EqualFold(f.Author, c.Author) {
			return false
		}
	case product.Electronics:
		if f.Author != "" || f.Size != "" {
			return false
		}
		if f.Brand != "" && !strings.EqualFold(f.Brand, c.Brand) {
			return false
		}
	case product.Clothing:
		if f.Author != "" || f.Brand != "" {
			return false
		}
		if f.Size != "" && !strings.EqualFold(f.Size, c.Size) {
			return false
		}
	}
	return true
}
