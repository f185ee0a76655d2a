// Package product defines the store's product model: the record itself, the
// closed set of category payloads a product may carry, and the flat request
// shape accepted by the single-item and bulk entry points.
package product

// Product is a store item. ID is zero until the record has been persisted;
// once assigned by the store it never changes.
type Product struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	Price    float64  `json:"price"`
	Quantity int      `json:"quantity"`
	Category Category `json:"category,omitempty"`
}
