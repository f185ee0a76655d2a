package notify

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Memory retains published events in order. It backs tests and runs without
// an external stream.
type Memory struct {
	mu      sync.Mutex
	events  map[string][]Event
	metrics *Metrics
}

// NewMemory returns an empty in-memory publisher.
func NewMemory() *Memory {
	return &Memory{
		events:  make(map[string][]Event),
		metrics: NewMetrics(),
	}
}

func (m *Memory) Publish(ctx context.Context, topic string, ev Event) error {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	m.mu.Lock()
	m.events[topic] = append(m.events[topic], ev)
	m.mu.Unlock()
	m.metrics.Record(topic, ev.Type)
	return nil
}

// Events returns a copy of everything published to topic, in publish order.
func (m *Memory) Events(topic string) []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Event(nil), m.events[topic]...)
}

// Metrics exposes the publish counters.
func (m *Memory) Metrics() *Metrics {
	return m.metrics
}
