package kernel

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/kunihir0/gini-sub002/event"
	gperf "github.com/kunihir0/gini-sub002/testing"
	"github.com/kunihir0/gini-sub002/version"
)

// BenchmarkPluginInitOrder exercises Registry.InitOrder's dependency
// resolution under the shared benchmarking harness, the same tool used
// for event dispatch throughput below.
func BenchmarkPluginInitOrder(b *testing.B) {
	k := New(WithAPIVersion(version.MustParse("1.0.0")))
	for i := 0; i < 50; i++ {
		id := fmt.Sprintf("plugin-%d", i)
		_ = k.Plugins.Register(testManifest(id), &fakePlugin{name: id})
	}

	result := gperf.Measure(func() error {
		_, err := k.Plugins.InitOrder()
		return err
	}, b.N)
	b.ReportMetric(result.Throughput(), "ops/sec")
}

// BenchmarkEventDispatchThroughput measures Dispatcher.Dispatch under
// sustained load via testing.ThroughputTest.
func BenchmarkEventDispatchThroughput(b *testing.B) {
	d := event.New(nil)
	event.RegisterByType(d, func(ctx context.Context, e *readyEvent) error { return nil })

	tt := gperf.NewThroughputTest(50*time.Millisecond, func() {
		ev := readyEvent{BaseEvent: event.NewBaseEvent("kernel.ready")}
		_, _ = d.Dispatch(context.Background(), &ev)
	})
	result := tt.Run()
	b.ReportMetric(result.Throughput(), "ops/sec")
}
