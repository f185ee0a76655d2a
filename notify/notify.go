// Package notify publishes product change events to an external stream.
// Publication is fire and forget: the core does not wait for consumer
// acknowledgement beyond the Publish call returning, and every publish
// increments a counter tagged by topic and event type.
package notify

import "context"

// TopicProducts is the stream topic carrying product change events.
const TopicProducts = "products"

// Event types emitted by the product service.
const (
	TypeProductCreated = "PRODUCT_CREATED"
	TypePriceChanged   = "PRICE_CHANGED"
)

// Event is a single change notification. Payload is opaque to the transport:
// the full product for creations, the product id for price changes.
type Event struct {
	ID      string `json:"id" msgpack:"id"`
	Type    string `json:"type" msgpack:"type"`
	Payload any    `json:"payload" msgpack:"payload"`
}

// Publisher delivers change events to a topic. Implementations assign the
// event id when it is empty and record the publish in their metrics.
type Publisher interface {
	Publish(ctx context.Context, topic string, ev Event) error
}
