package notify

import (
	"github.com/puzpuzpuz/xsync/v3"
)

// Metrics counts published events per (topic, event type) pair.
type Metrics struct {
	counters *xsync.MapOf[string, *xsync.Counter]
}

// NewMetrics returns an empty metrics registry.
func NewMetrics() *Metrics {
	return &Metrics{counters: xsync.NewMapOf[string, *xsync.Counter]()}
}

// Record increments the counter for topic and eventType.
func (m *Metrics) Record(topic, eventType string) {
	c, _ := m.counters.LoadOrCompute(counterKey(topic, eventType), func() *xsync.Counter {
		return xsync.NewCounter()
	})
	c.Inc()
}

// Published returns how many events have been published for topic and
// eventType.
func (m *Metrics) Published(topic, eventType string) int64 {
	c, ok := m.counters.Load(counterKey(topic, eventType))
	if !ok {
		return 0
	}
	return c.Value()
}

func counterKey(topic, eventType string) string {
	return topic + "/" + eventType
}
