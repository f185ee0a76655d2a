package cache

import "strconv"

// KeySeparator defines the delimiter used between cache key segments.
const KeySeparator = "::"

// Cache names. The item cache keys entries per product id; the collection
// cache holds the full listing under a single fixed key.
const (
	ProductCache  = "product"
	ProductsCache = "products"
)

// ProductsKey is the single collection-cache key for the full listing.
const ProductsKey = ProductsCache

// ProductKey returns the item-cache key for a product id.
func ProductKey(id int64) string {
	return ProductCache + KeySeparator + strconv.FormatInt(id, 10)
}
