package runtime

import "sync/atomic"

// Stats aggregates cheap atomic counters for the telemetry worker and the
// debug inspector.
type Stats struct {
	Connections atomic.Int64
	Dispatches  atomic.Uint64
	Delivered   atomic.Uint64
	Dropped     atomic.Uint64
}

func NewStats() *Stats { return &Stats{} }

func (s *Stats) Snapshot() map[string]any {
	return map[string]any{
		"connections": s.Connections.Load(),
		"dispatches":  s.Dispatches.Load(),
		"delivered":   s.Delivered.Load(),
		"dropped":     s.Dropped.Load(),
	}
}
