package xlog

import (
	"go.uber.org/zap/zapcore"
)

// AntsXLogger adapts XLogger to the ants.Logger interface so the
// worker pool reports its internal failures through zap.
type AntsXLogger struct {
	logger XLogger
}

func (l *AntsXLogger) Printf(format string, args ...any) {
	if l == nil || l.logger == nil {
		return
	}
	l.logger.Logf(zapcore.ErrorLevel, format, args...)
}

func NewAntsXLogger(logger XLogger) *AntsXLogger {
	return &AntsXLogger{
		logger: named(logger, "Ants"),
	}
}
