package metrics

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"

	"kisan-be/internal/cloud"
)

// CloudWatchFlusher publishes the increase of every counter since the
// previous flush as a Count datum, and the mean of every latency observed
// since then as a Milliseconds datum.
type CloudWatchFlusher struct {
	client    cloud.CloudWatchAPI
	namespace string
	registry  *Registry
	nowFunc   func() time.Time

	mu          sync.Mutex
	last        map[string]uint64
	lastLatency map[string]LatencySample
}

func NewCloudWatchFlusher(client cloud.CloudWatchAPI, namespace string, registry *Registry) *CloudWatchFlusher {
	return &CloudWatchFlusher{
		client:    client,
		namespace: namespace,
		registry:  registry,
		nowFunc:   time.Now,
		last:        make(map[string]uint64),
		lastLatency: make(map[string]LatencySample),
	}
}

// Flush sends deltas. Nothing is sent when no counter moved.
func (f *CloudWatchFlusher) Flush(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := f.nowFunc()
	snap := f.registry.Snapshot()

	var data []cwtypes.MetricDatum
	for _, name := range f.registry.Names() {
		delta := snap[name] - f.last[name]
		if delta == 0 {
			continue
		}
		data = append(data, cwtypes.MetricDatum{
			MetricName: cloud.String(name),
			Timestamp:  &now,
			Unit:       cwtypes.StandardUnitCount,
			Value:      float64Ptr(float64(delta)),
		})
	}

	lat := f.registry.LatencySnapshot()
	names := make([]string, 0, len(lat))
	for name := range lat {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		prev := f.lastLatency[name]
		count := lat[name].Count - prev.Count
		if count == 0 {
			continue
		}
		mean := (lat[name].Total - prev.Total) / time.Duration(count)
		data = append(data, cwtypes.MetricDatum{
			MetricName: cloud.String(name),
			Timestamp:  &now,
			Unit:       cwtypes.StandardUnitMilliseconds,
			Value:      float64Ptr(float64(mean) / float64(time.Millisecond)),
		})
	}

	if len(data) == 0 {
		return 0, nil
	}

	_, err := f.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace:  &f.namespace,
		MetricData: data,
	})
	if err != nil {
		return 0, fmt.Errorf("put metric data: %w", err)
	}

	for name, v := range snap {
		f.last[name] = v
	}
	for name, v := range lat {
		f.lastLatency[name] = v
	}
	return len(data), nil
}

func float64Ptr(v float64) *float64 { return &v }
