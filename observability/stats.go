package observability

import (
	"context"
	"runtime"
	"strings"
	"sync"

	"github.com/samber/lo"
	otelruntime "go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

var once sync.Once

type appStats struct {
	ctx              context.Context
	shutdownCallback func(ctx context.Context) error
	goroutines       metric.Int64ObservableUpDownCounter
	processes        metric.Int64ObservableUpDownCounter
}

func (stats *appStats) waitForShutdown() {
	if stats == nil || stats.shutdownCallback == nil {
		return
	}
	go func() {
		<-stats.ctx.Done()
		_ = stats.shutdownCallback(context.Background())
	}()
}

// InitAppStats registers process-level observable gauges once per
// process and starts the otel runtime instrumentation.
func InitAppStats(ctx context.Context, name string) {
	once.Do(func() {
		meterName := "typelab/app/default"
		if trimmed := strings.TrimSpace(name); len(trimmed) > 0 {
			meterName = "typelab/app/" + trimmed
		}
		stats := &appStats{
			ctx: ctx,
			goroutines: lo.Must[metric.Int64ObservableUpDownCounter](otel.Meter(
				meterName,
				metric.WithInstrumentationVersion(otelruntime.Version()),
			).Int64ObservableUpDownCounter(
				"app.core.goroutines",
				metric.WithDescription(`The application goroutines' info.`),
				metric.WithInt64Callback(func(ctx context.Context, ob metric.Int64Observer) error {
					ob.Observe(int64(runtime.NumGoroutine()))
					return nil
				}),
			)),
			processes: lo.Must[metric.Int64ObservableUpDownCounter](otel.Meter(
				meterName,
				metric.WithInstrumentationVersion(otelruntime.Version()),
			).Int64ObservableUpDownCounter(
				"app.core.processes",
				metric.WithDescription(`The application GOMAXPROCS' info.`),
				metric.WithInt64Callback(func(ctx context.Context, ob metric.Int64Observer) error {
					ob.Observe(int64(runtime.GOMAXPROCS(0)))
					return nil
				}),
			)),
		}
		_ = otelruntime.Start()
		stats.waitForShutdown()
	})
}
