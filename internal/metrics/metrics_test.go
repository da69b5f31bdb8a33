package metrics

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounter(t *testing.T) {
	var c Counter
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Inc()
		}()
	}
	wg.Wait()
	c.Add(5)

	assert.Equal(t, uint64(55), c.Load())
}

func TestLatency(t *testing.T) {
	var l Latency
	l.Observe(3 * time.Millisecond)
	l.Observe(5 * time.Millisecond)
	l.Observe(-time.Second)

	total, count := l.Load()
	assert.Equal(t, 8*time.Millisecond, total)
	assert.Equal(t, uint64(3), count)
}

func TestTimer(t *testing.T) {
	r := NewRegistry()
	timer := r.StartTimer(PlaceOrderLatency)
	time.Sleep(time.Millisecond)
	d := timer.Stop()

	assert.GreaterOrEqual(t, d, time.Millisecond)
	sample := r.LatencySnapshot()[PlaceOrderLatency]
	assert.Equal(t, uint64(1), sample.Count)
	assert.Equal(t, d.Truncate(time.Microsecond), sample.Total)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	r.Counter(OrdersPlaced).Inc()
	r.Counter(OrdersPlaced).Inc()
	r.Counter(OrdersFailed).Inc()

	assert.Same(t, r.Counter(OrdersPlaced), r.Counter(OrdersPlaced))
	assert.Equal(t, map[string]uint64{OrdersPlaced: 2, OrdersFailed: 1}, r.Snapshot())
	assert.Equal(t, []string{OrdersFailed, OrdersPlaced}, r.Names())
}

type fakeCloudWatch struct {
	inputs []*cloudwatch.PutMetricDataInput
	err    error
}

func (f *fakeCloudWatch) PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.inputs = append(f.inputs, params)
	return &cloudwatch.PutMetricDataOutput{}, nil
}

func TestCloudWatchFlusher(t *testing.T) {
	ctx := context.Background()

	t.Run("Sends deltas only", func(t *testing.T) {
		r := NewRegistry()
		cw := &fakeCloudWatch{}
		f := NewCloudWatchFlusher(cw, "Kisan/Orders", r)

		r.Counter(OrdersPlaced).Add(3)
		n, err := f.Flush(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		require.Len(t, cw.inputs, 1)
		assert.Equal(t, "Kisan/Orders", *cw.inputs[0].Namespace)
		assert.Equal(t, float64(3), *cw.inputs[0].MetricData[0].Value)

		n, err = f.Flush(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, n)
		assert.Len(t, cw.inputs, 1)

		r.Counter(OrdersPlaced).Inc()
		_, err = f.Flush(ctx)
		require.NoError(t, err)
		assert.Equal(t, float64(1), *cw.inputs[1].MetricData[0].Value)
	})

	t.Run("Latency mean over the window", func(t *testing.T) {
		r := NewRegistry()
		cw := &fakeCloudWatch{}
		f := NewCloudWatchFlusher(cw, "Kisan/Orders", r)

		r.Latency(AdvanceStatusLatency).Observe(10 * time.Millisecond)
		r.Latency(AdvanceStatusLatency).Observe(30 * time.Millisecond)
		n, err := f.Flush(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		datum := cw.inputs[0].MetricData[0]
		assert.Equal(t, AdvanceStatusLatency, *datum.MetricName)
		assert.Equal(t, cwtypes.StandardUnitMilliseconds, datum.Unit)
		assert.Equal(t, float64(20), *datum.Value)

		r.Latency(AdvanceStatusLatency).Observe(4 * time.Millisecond)
		_, err = f.Flush(ctx)
		require.NoError(t, err)
		assert.Equal(t, float64(4), *cw.inputs[1].MetricData[0].Value)

		n, err = f.Flush(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, n)
	})

	t.Run("Failed flush retries the same delta", func(t *testing.T) {
		r := NewRegistry()
		cw := &fakeCloudWatch{err: errors.New("throttled")}
		f := NewCloudWatchFlusher(cw, "Kisan/Orders", r)

		r.Counter(OrdersFailed).Add(2)
		_, err := f.Flush(ctx)
		assert.Error(t, err)

		cw.err = nil
		_, err = f.Flush(ctx)
		require.NoError(t, err)
		assert.Equal(t, float64(2), *cw.inputs[0].MetricData[0].Value)
	})
}

type countingFlusher struct {
	mu    sync.Mutex
	calls int
}

func (c *countingFlusher) Flush(ctx context.Context) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	return 1, nil
}

func (c *countingFlusher) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

func TestNewScheduler(t *testing.T) {
	t.Run("Invalid spec", func(t *testing.T) {
		_, err := NewScheduler("not a spec", &countingFlusher{})
		assert.Error(t, err)
	})

	t.Run("Runs the flusher", func(t *testing.T) {
		f := &countingFlusher{}
		sched, err := NewScheduler("@every 1s", f)
		require.NoError(t, err)

		sched.Start()
		defer sched.Stop()

		assert.Eventually(t, func() bool { return f.Calls() > 0 }, 3*time.Second, 50*time.Millisecond)
	})
}
