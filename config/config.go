// Package config loads the runtime configuration from YAML and
// keeps it fresh via file watching.
package config

import (
	"os"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/typelab/typelab/lib/infra"
)

type SchedulerConfig struct {
	Name           string `yaml:"name"`
	WorkerPoolSize int    `yaml:"workerPoolSize"`
	QueueCapacity  int    `yaml:"queueCapacity"`
}

type Config struct {
	LogLevel      string          `yaml:"logLevel"`
	SquareDelayMs int64           `yaml:"squareDelayMs"`
	Scheduler     SchedulerConfig `yaml:"scheduler"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		LogLevel:      "info",
		SquareDelayMs: 1000,
		Scheduler: SchedulerConfig{
			Name:           "typelab",
			WorkerPoolSize: 16,
			QueueCapacity:  128,
		},
	}
}

// Load reads and validates the YAML file at path. Missing fields
// keep their defaults.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, infra.WrapErrorStackWithMessage(err, "config read failed")
	}
	// A truncate+write save raises two events; the first read can
	// land mid-truncation and observe zero bytes.
	if len(raw) == 0 {
		return nil, infra.NewErrorStack("config file is empty")
	}
	cfg := Default()
	if err = yaml.Unmarshal(raw, cfg); err != nil {
		return nil, infra.WrapErrorStackWithMessage(err, "config parse failed")
	}
	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return infra.WrapErrorStackWithMessage(err, "config log level is invalid")
	}
	if c.SquareDelayMs <= 0 {
		return infra.NewErrorStack("config square delay must be positive")
	}
	if c.Scheduler.WorkerPoolSize < 0 || c.Scheduler.QueueCapacity < 0 {
		return infra.NewErrorStack("config scheduler sizes must not be negative")
	}
	return nil
}

// SquareDelay is the configured delay as a duration.
func (c *Config) SquareDelay() time.Duration {
	return time.Duration(c.SquareDelayMs) * time.Millisecond
}

// ZapLevel resolves the configured log level. Validate guarantees
// it parses.
func (c *Config) ZapLevel() zapcore.Level {
	lvl, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}
