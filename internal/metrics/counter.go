package metrics

import (
	"sync/atomic"
	"time"
)

// Counter is a monotonic count. Flushes report its increase.
type Counter struct {
	value uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

func (c *Counter) Add(n uint64) {
	atomic.AddUint64(&c.value, n)
}

func (c *Counter) Load() uint64 {
	return atomic.LoadUint64(&c.value)
}

// Latency sums observed durations so a flush can report the mean over
// its window.
type Latency struct {
	totalMicros Counter
	count       Counter
}

func (l *Latency) Observe(d time.Duration) {
	if d < 0 {
		d = 0
	}
	l.totalMicros.Add(uint64(d.Microseconds()))
	l.count.Inc()
}

// Load returns the summed duration and the number of observations.
func (l *Latency) Load() (time.Duration, uint64) {
	return time.Duration(l.totalMicros.Load()) * time.Microsecond, l.count.Load()
}

// Timer measures one operation for a named latency.
type Timer struct {
	name  string
	start time.Time
	reg   *Registry
}

// StartTimer starts a timer that records into the Default registry.
func StartTimer(name string) *Timer {
	return Default.StartTimer(name)
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// Stop records the elapsed time and returns it.
func (t *Timer) Stop() time.Duration {
	d := t.Duration()
	t.reg.Latency(t.name).Observe(d)
	return d
}
