package xlog

import (
	"fmt"
	"os"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/typelab/typelab/lib/infra"
)

type logEncoderType uint8

const (
	JSON logEncoderType = iota
	PlainText
)

const coreKeyIgnored = ""

var encoderMap = map[logEncoderType]func(cfg zapcore.EncoderConfig) zapcore.Encoder{
	JSON:      zapcore.NewJSONEncoder,
	PlainText: zapcore.NewConsoleEncoder,
}

// XLogger is a thin wrapper of the Uber zap logger.
//
// ErrorStack prints an infra.ErrorStack inline as a JSON array of
// frames instead of the default multiline zap stacktrace, so a log
// aggregator is able to parse it.
//
// Log format methods are not recommended, they are low performance
// and only exist for the adapter interfaces (ants) that demand them.
type XLogger interface {
	zap() *zap.Logger

	SetLevel(level zapcore.Level)
	Level() string
	Sync() error

	Debug(msg string, fields ...zap.Field)
	Info(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	Error(err error, msg string, fields ...zap.Field)
	ErrorStack(err error, msg string, fields ...zap.Field)
	Logf(lvl zapcore.Level, format string, args ...any)
}

var _ XLogger = (*xLogger)(nil)

type xLogger struct {
	logger              atomic.Pointer[zap.Logger]
	dynamicLevelEnabler zap.AtomicLevel
}

func (l *xLogger) zap() *zap.Logger {
	return l.logger.Load()
}

// SetLevel raises or lowers the level of all derived loggers at runtime.
func (l *xLogger) SetLevel(level zapcore.Level) {
	l.dynamicLevelEnabler.SetLevel(level)
}

func (l *xLogger) Level() string {
	return l.dynamicLevelEnabler.Level().String()
}

func (l *xLogger) Sync() error {
	return l.logger.Load().Sync()
}

func (l *xLogger) Debug(msg string, fields ...zap.Field) {
	l.logger.Load().Debug(msg, fields...)
}

func (l *xLogger) Info(msg string, fields ...zap.Field) {
	l.logger.Load().Info(msg, fields...)
}

func (l *xLogger) Warn(msg string, fields ...zap.Field) {
	l.logger.Load().Warn(msg, fields...)
}

func (l *xLogger) Error(err error, msg string, fields ...zap.Field) {
	newFields := make([]zap.Field, 0, len(fields)+1)
	if err != nil {
		newFields = append(newFields, zap.String("error", err.Error()))
	}
	newFields = append(newFields, fields...)
	l.logger.Load().Error(msg, newFields...)
}

func (l *xLogger) ErrorStack(err error, msg string, fields ...zap.Field) {
	var newFields []zap.Field
	if es, ok := err.(infra.ErrorStack); ok && es != nil {
		newFields = []zap.Field{zap.Inline(es)}
	} else if err != nil {
		newFields = []zap.Field{zap.String("error", err.Error())}
	}
	newFields = append(newFields, fields...)
	l.logger.Load().Error(msg, newFields...)
}

func (l *xLogger) Logf(lvl zapcore.Level, format string, args ...any) {
	l.logger.Load().Log(lvl, fmt.Sprintf(format, args...))
}

type xLoggerOption struct {
	name    string
	writer  zapcore.WriteSyncer
	encoder logEncoderType
	level   zapcore.Level
}

type XLoggerOption func(*xLoggerOption)

func WithName(name string) XLoggerOption {
	return func(opt *xLoggerOption) {
		opt.name = name
	}
}

func WithLevel(level zapcore.Level) XLoggerOption {
	return func(opt *xLoggerOption) {
		opt.level = level
	}
}

func WithPlainText() XLoggerOption {
	return func(opt *xLoggerOption) {
		opt.encoder = PlainText
	}
}

func WithWriter(ws zapcore.WriteSyncer) XLoggerOption {
	return func(opt *xLoggerOption) {
		opt.writer = ws
	}
}

func consoleEncoderConfig(lvlEnc zapcore.LevelEncoder, tsEnc zapcore.TimeEncoder) zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		MessageKey:    "msg",
		LevelKey:      "lvl",
		EncodeLevel:   lvlEnc,
		TimeKey:       "ts",
		EncodeTime:    tsEnc,
		CallerKey:     "callAt",
		EncodeCaller:  zapcore.ShortCallerEncoder,
		FunctionKey:   "fn",
		NameKey:       "component",
		EncodeName:    zapcore.FullNameEncoder,
		StacktraceKey: coreKeyIgnored,
	}
}

// New builds a console XLogger. The returned logger shares one
// dynamic level enabler with every named child derived from it.
func New(opts ...XLoggerOption) XLogger {
	opt := &xLoggerOption{
		writer:  zapcore.Lock(os.Stdout),
		encoder: JSON,
		level:   zapcore.InfoLevel,
	}
	for _, o := range opts {
		if o != nil {
			o(opt)
		}
	}

	l := &xLogger{
		dynamicLevelEnabler: zap.NewAtomicLevelAt(opt.level),
	}
	cfg := consoleEncoderConfig(zapcore.CapitalLevelEncoder, zapcore.ISO8601TimeEncoder)
	core := zapcore.NewCore(encoderMap[opt.encoder](cfg), opt.writer, l.dynamicLevelEnabler)
	logger := zap.New(core, zap.AddCaller())
	if len(opt.name) > 0 {
		logger = logger.Named(opt.name)
	}
	l.logger.Store(logger)
	return l
}

func named(parent XLogger, component string) *xLogger {
	l := &xLogger{}
	if p, ok := parent.(*xLogger); ok {
		// The child logs through the parent's core, so it must share
		// the parent's enabler for SetLevel to take effect.
		l.dynamicLevelEnabler = p.dynamicLevelEnabler
	} else {
		l.dynamicLevelEnabler = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	l.logger.Store(parent.zap().Named(component))
	return l
}
