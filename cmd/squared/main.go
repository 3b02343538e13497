// Command squared squares the numbers given on the command line,
// each after the configured delay.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	_ "go.uber.org/automaxprocs"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/typelab/typelab/async"
	"github.com/typelab/typelab/compute"
	"github.com/typelab/typelab/config"
	"github.com/typelab/typelab/observability"
	"github.com/typelab/typelab/sched"
	"github.com/typelab/typelab/xlog"
)

var (
	configPath    = flag.String("config", "", "path to the YAML config file, optional")
	enableMetrics = flag.Bool("metrics", false, "print metrics to stdout periodically")
)

func loadConfig() (*config.Config, error) {
	if len(*configPath) <= 0 {
		return config.Default(), nil
	}
	return config.Load(*configPath)
}

func newScheduler(lc fx.Lifecycle, cfg *config.Config, logger xlog.XLogger) (*sched.Scheduler, error) {
	opts := []sched.SchedulerOption{
		sched.WithSchedulerName(cfg.Scheduler.Name),
		sched.WithSchedulerLogger(logger),
		sched.WithSchedulerStats(),
	}
	if cfg.Scheduler.WorkerPoolSize > 0 {
		opts = append(opts, sched.WithSchedulerWorkerPoolSize(cfg.Scheduler.WorkerPoolSize))
	}
	if cfg.Scheduler.QueueCapacity > 0 {
		opts = append(opts, sched.WithSchedulerQueueCapacity(cfg.Scheduler.QueueCapacity))
	}
	scheduler, err := sched.New(context.Background(), opts...)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			scheduler.Shutdown()
			return nil
		},
	})
	return scheduler, nil
}

func newSquarer(cfg *config.Config, scheduler *sched.Scheduler, logger xlog.XLogger) *compute.Squarer {
	return compute.NewSquarer(scheduler,
		compute.WithDelay(cfg.SquareDelay()),
		compute.WithSquarerLogger(logger),
	)
}

// watchConfig follows the config file while the app runs, so a log
// level edit takes effect without a restart.
func watchConfig(lc fx.Lifecycle, logger xlog.XLogger) {
	if len(*configPath) <= 0 {
		return
	}
	watchCtx, watchCancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				err := config.Watch(watchCtx, *configPath, logger, func(cfg *config.Config) {
					logger.SetLevel(cfg.ZapLevel())
				})
				if err != nil {
					logger.ErrorStack(err, "config watch exited")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			watchCancel()
			return nil
		},
	})
}

func squareAll(sq *compute.Squarer, logger xlog.XLogger, args []string) error {
	type pending struct {
		arg string
		fut *async.Future[float64]
	}
	var merr error
	// Arm everything first so the delays overlap instead of adding up.
	futures := make([]pending, 0, len(args))
	for _, arg := range args {
		n, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			merr = multierr.Append(merr, fmt.Errorf("not a number: %q", arg))
			continue
		}
		futures = append(futures, pending{arg: arg, fut: sq.Square(n)})
	}

	ctx, cancel := context.WithTimeout(context.Background(), sq.Delay()+5*time.Second)
	defer cancel()
	for _, p := range futures {
		squared, err := p.fut.Await(ctx)
		if err != nil {
			merr = multierr.Append(merr, err)
			logger.ErrorStack(err, "square failed", zap.String("arg", p.arg))
			continue
		}
		fmt.Printf("%s^2 = %v\n", p.arg, squared)
	}
	return merr
}

func main() {
	flag.Parse()
	if flag.NArg() <= 0 {
		fmt.Fprintln(os.Stderr, "usage: squared [-config file] [-metrics] <number> ...")
		os.Exit(2)
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := xlog.New(
		xlog.WithName("squared"),
		xlog.WithLevel(cfg.ZapLevel()),
	)

	if *enableMetrics {
		shutdown, err := observability.NewConsoleMetricsExporter(2*time.Second, time.Second)
		if err != nil {
			logger.ErrorStack(err, "metrics exporter init failed")
			os.Exit(1)
		}
		defer func() { _ = shutdown(context.Background()) }()
	}
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()
	observability.InitAppStats(appCtx, "squared")

	var exitErr error
	app := fx.New(
		fx.Supply(cfg),
		fx.Provide(
			func() xlog.XLogger { return logger },
			newScheduler,
			newSquarer,
		),
		fx.WithLogger(func(logger xlog.XLogger) fxevent.Logger {
			return xlog.NewFxXLogger(logger)
		}),
		fx.Invoke(watchConfig),
		fx.Invoke(func(lc fx.Lifecycle, sq *compute.Squarer, shutdowner fx.Shutdowner) {
			lc.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					go func() {
						exitErr = squareAll(sq, logger, flag.Args())
						_ = shutdowner.Shutdown()
					}()
					return nil
				},
			})
		}),
	)
	app.Run()
	_ = logger.Sync()
	if exitErr != nil {
		os.Exit(1)
	}
}
