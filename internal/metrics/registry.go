package metrics

import (
	"sort"
	"sync"
	"time"
)

const (
	OrdersPlaced        = "orders_placed"
	OrdersFailed        = "orders_failed"
	OrdersReplayed      = "orders_replayed"
	OrderStatusUpdated  = "order_status_updated"
	OrderStatusRejected = "order_status_rejected"
	LoginFailed         = "login_failed"
	EventsPublishFailed = "events_publish_failed"

	PlaceOrderLatency    = "place_order_latency"
	AdvanceStatusLatency = "advance_status_latency"
)

// Registry holds named counters and latencies created on first use.
type Registry struct {
	mu        sync.RWMutex
	counters  map[string]*Counter
	latencies map[string]*Latency
}

func NewRegistry() *Registry {
	return &Registry{
		counters:  make(map[string]*Counter),
		latencies: make(map[string]*Latency),
	}
}

// Default is the process-wide registry.
var Default = NewRegistry()

func (r *Registry) Counter(name string) *Counter {
	r.mu.RLock()
	c, ok := r.counters[name]
	r.mu.RUnlock()
	if ok {
		return c
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok = r.counters[name]; ok {
		return c
	}
	c = &Counter{}
	r.counters[name] = c
	return c
}

func (r *Registry) Latency(name string) *Latency {
	r.mu.RLock()
	l, ok := r.latencies[name]
	r.mu.RUnlock()
	if ok {
		return l
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if l, ok = r.latencies[name]; ok {
		return l
	}
	l = &Latency{}
	r.latencies[name] = l
	return l
}

func (r *Registry) StartTimer(name string) *Timer {
	return &Timer{name: name, start: time.Now(), reg: r}
}

// LatencySample is a cumulative latency reading.
type LatencySample struct {
	Total time.Duration
	Count uint64
}

// LatencySnapshot returns cumulative latency readings keyed by name.
func (r *Registry) LatencySnapshot() map[string]LatencySample {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]LatencySample, len(r.latencies))
	for name, l := range r.latencies {
		total, count := l.Load()
		out[name] = LatencySample{Total: total, Count: count}
	}
	return out
}

// Snapshot returns current values keyed by name.
func (r *Registry) Snapshot() map[string]uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]uint64, len(r.counters))
	for name, c := range r.counters {
		out[name] = c.Load()
	}
	return out
}

// Names returns counter names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.counters))
	for name := range r.counters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Inc increments a counter on the Default registry.
func Inc(name string) {
	Default.Counter(name).Inc()
}
