package sched

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/samber/lo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const statsMeterName = "typelab/sched"

type schedulerStats struct {
	firedCounter       atomic.Int64
	highLatencyCounter atomic.Int64
	tasksAlive         metric.Int64UpDownCounter
	tasksArmed         metric.Int64Counter
	tasksFired         metric.Int64Counter
	firingLatencies    metric.Int64Histogram
	firingAccuracy     metric.Float64ObservableGauge
}

func (stats *schedulerStats) RecordTasksAlive(delta int64) {
	if stats == nil {
		return
	}
	stats.tasksAlive.Add(context.Background(), delta)
}

func (stats *schedulerStats) IncreaseTaskArmedCount() {
	if stats == nil {
		return
	}
	stats.tasksArmed.Add(context.Background(), 1)
}

func (stats *schedulerStats) IncreaseTaskFiredCount() {
	if stats == nil {
		return
	}
	stats.tasksFired.Add(context.Background(), 1)
	stats.firedCounter.Add(1)
}

// RecordFiringLatency records how late (or early) a task fired
// relative to its expiration timestamp.
func (stats *schedulerStats) RecordFiringLatency(latencyMs int64) {
	if stats == nil {
		return
	}
	stats.firingLatencies.Record(context.Background(), latencyMs)
	if latencyMs > highLatencyBoundaryMs || latencyMs < -highLatencyBoundaryMs {
		stats.highLatencyCounter.Add(1)
	}
}

const highLatencyBoundaryMs = 10

func newSchedulerStats(name string) *schedulerStats {
	meterName := fmt.Sprintf("%s/%s", statsMeterName, name)
	stats := &schedulerStats{
		tasksAlive: lo.Must[metric.Int64UpDownCounter](otel.Meter(meterName).
			Int64UpDownCounter(
				"sched.tasks.alive",
				metric.WithDescription("The number of armed, not yet fired tasks."),
			),
		),
		tasksArmed: lo.Must[metric.Int64Counter](otel.Meter(meterName).
			Int64Counter(
				"sched.tasks.armed",
				metric.WithDescription("The number of tasks armed by the scheduler."),
			),
		),
		tasksFired: lo.Must[metric.Int64Counter](otel.Meter(meterName).
			Int64Counter(
				"sched.tasks.fired",
				metric.WithDescription("The number of tasks fired by the scheduler."),
			),
		),
		firingLatencies: lo.Must[metric.Int64Histogram](otel.Meter(meterName).
			Int64Histogram(
				"sched.tasks.firing.latency",
				metric.WithDescription("The firing latency relative to the task expiration. In milliseconds."),
				metric.WithUnit("ms"),
			),
		),
	}
	stats.firingAccuracy = lo.Must[metric.Float64ObservableGauge](otel.Meter(meterName).
		Float64ObservableGauge(
			"sched.tasks.firing.accuracy",
			metric.WithDescription(fmt.Sprintf("The share of tasks fired within [-%d,%d] ms of their expiration.", highLatencyBoundaryMs, highLatencyBoundaryMs)),
			metric.WithFloat64Callback(func(ctx context.Context, ob metric.Float64Observer) error {
				accuracy := 1.00
				if fired := stats.firedCounter.Load(); fired > 0 {
					accuracy = float64(fired-stats.highLatencyCounter.Load()) / float64(fired)
				}
				ob.Observe(accuracy)
				return nil
			}),
			metric.WithUnit("%"),
		),
	)
	return stats
}
