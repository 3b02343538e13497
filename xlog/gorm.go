package xlog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	glogger "gorm.io/gorm/logger"
	gutils "gorm.io/gorm/utils"
)

var _ glogger.Interface = (*GormXLogger)(nil)

// GormXLogger routes GORM logs through XLogger.
type GormXLogger struct {
	logger    XLogger
	cfg       *glogger.Config
	gormLevel int32
}

func (l *GormXLogger) LogMode(lvl glogger.LogLevel) glogger.Interface {
	atomic.StoreInt32(&l.gormLevel, int32(lvl))
	return l
}

func (l *GormXLogger) Info(ctx context.Context, msg string, data ...any) {
	if glogger.LogLevel(atomic.LoadInt32(&l.gormLevel)) >= glogger.Info {
		l.logger.Info(fmt.Sprintf(msg, data...), zap.String("fileAndLine", gutils.FileWithLineNum()))
	}
}

func (l *GormXLogger) Warn(ctx context.Context, msg string, data ...any) {
	if glogger.LogLevel(atomic.LoadInt32(&l.gormLevel)) >= glogger.Warn {
		l.logger.Warn(fmt.Sprintf(msg, data...), zap.String("fileAndLine", gutils.FileWithLineNum()))
	}
}

func (l *GormXLogger) Error(ctx context.Context, msg string, data ...any) {
	if glogger.LogLevel(atomic.LoadInt32(&l.gormLevel)) >= glogger.Error {
		l.logger.Error(nil, fmt.Sprintf(msg, data...), zap.String("fileAndLine", gutils.FileWithLineNum()))
	}
}

func (l *GormXLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	lvl := glogger.LogLevel(atomic.LoadInt32(&l.gormLevel))
	if lvl <= glogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && lvl >= glogger.Error && (!errors.Is(err, glogger.ErrRecordNotFound) || !l.cfg.IgnoreRecordNotFoundError):
		sql, rows := fc()
		l.logger.Error(err, "error trace",
			zap.String("fileAndLine", gutils.FileWithLineNum()),
			zap.String("rows", formatRows(rows)),
			zap.Int64("elapsedMs", elapsed.Milliseconds()),
			zap.String("sql", sql),
		)
	case l.cfg.SlowThreshold != 0 && elapsed > l.cfg.SlowThreshold && lvl >= glogger.Warn:
		sql, rows := fc()
		l.logger.Warn("slow sql",
			zap.Int64("thresholdMs", l.cfg.SlowThreshold.Milliseconds()),
			zap.String("fileAndLine", gutils.FileWithLineNum()),
			zap.String("rows", formatRows(rows)),
			zap.Int64("elapsedMs", elapsed.Milliseconds()),
			zap.String("sql", sql),
		)
	case lvl == glogger.Info:
		sql, rows := fc()
		l.logger.Info("common sql info",
			zap.String("fileAndLine", gutils.FileWithLineNum()),
			zap.String("rows", formatRows(rows)),
			zap.Int64("elapsedMs", elapsed.Milliseconds()),
			zap.String("sql", sql),
		)
	}
}

func formatRows(rows int64) string {
	if rows <= -1 {
		return "-"
	}
	return strconv.FormatInt(rows, 10)
}

type GormXLoggerOption func(*glogger.Config)

func WithGormXLoggerSlowThreshold(threshold time.Duration) GormXLoggerOption {
	return func(cfg *glogger.Config) {
		cfg.SlowThreshold = threshold
	}
}

func WithGormXLoggerLogLevel(lvl glogger.LogLevel) GormXLoggerOption {
	return func(cfg *glogger.Config) {
		cfg.LogLevel = lvl
	}
}

func WithGormXLoggerIgnoreRecord404Err() GormXLoggerOption {
	return func(cfg *glogger.Config) {
		cfg.IgnoreRecordNotFoundError = true
	}
}

func NewGormXLogger(logger XLogger, opts ...GormXLoggerOption) *GormXLogger {
	gl := &GormXLogger{
		cfg: &glogger.Config{},
	}
	for _, o := range opts {
		o(gl.cfg)
	}
	if gl.cfg.SlowThreshold <= 0 {
		gl.cfg.SlowThreshold = 500 * time.Millisecond
	}
	if gl.cfg.LogLevel <= glogger.Silent {
		gl.cfg.LogLevel = glogger.Warn
	}
	gl.gormLevel = int32(gl.cfg.LogLevel)
	gl.logger = named(logger, "Gorm")
	return gl
}
