package infra

import (
	"path"
	"runtime"
	"strconv"
	"strings"

	"go.uber.org/zap/zapcore"
)

// References:
// https://github.com/pkg/errors/blob/master/stack.go

type Frame uintptr

func (frame Frame) pc() uintptr {
	return uintptr(frame) - 1
}

func (frame Frame) file() string {
	fn := runtime.FuncForPC(frame.pc())
	if fn == nil {
		return "unknownFile"
	}
	f, _ := fn.FileLine(frame.pc())
	return f
}

func (frame Frame) line() int {
	fn := runtime.FuncForPC(frame.pc())
	if fn == nil {
		return 0
	}
	_, l := fn.FileLine(frame.pc())
	return l
}

func (frame Frame) name() string {
	fn := runtime.FuncForPC(frame.pc())
	if fn == nil {
		return "unknownFunc"
	}
	return fn.Name()
}

func (frame Frame) String() string {
	name := frame.name()
	if name == "unknownFunc" {
		return "unknownFrame"
	}
	builder := strings.Builder{}
	_, _ = builder.WriteString(funcName(name))
	_, _ = builder.WriteString(" ")
	_, _ = builder.WriteString(path.Base(frame.file()))
	_, _ = builder.WriteString(":")
	_, _ = builder.WriteString(strconv.Itoa(frame.line()))
	return builder.String()
}

func funcName(name string) string {
	i := strings.LastIndex(name, "/")
	name = name[i+1:]
	i = strings.Index(name, ".")
	return name[i+1:]
}

// ErrorStack is an error carrying the frames captured at the
// point where the error was created or wrapped. xlog prints it
// inline in JSON format so the log aggregator is able to parse
// the stack instead of a multiline zap stacktrace.
type ErrorStack interface {
	error
	zapcore.ObjectMarshaler
	Frames() []Frame
}

var _ ErrorStack = (*errorStack)(nil)

type errorStack struct {
	cause  error
	msg    string
	frames []Frame
}

func (es *errorStack) Error() string {
	if es.cause == nil {
		return es.msg
	}
	if len(es.msg) <= 0 {
		return es.cause.Error()
	}
	return es.msg + ": " + es.cause.Error()
}

func (es *errorStack) Unwrap() error {
	return es.cause
}

func (es *errorStack) Frames() []Frame {
	return es.frames
}

func (es *errorStack) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("error", es.Error())
	return enc.AddArray("stack", frameSlice(es.frames))
}

type frameSlice []Frame

func (frames frameSlice) MarshalLogArray(enc zapcore.ArrayEncoder) error {
	for _, frame := range frames {
		enc.AppendString(frame.String())
	}
	return nil
}

func callers(skip int) []Frame {
	var pcs [32]uintptr
	n := runtime.Callers(skip, pcs[:])
	frames := make([]Frame, 0, n)
	for i := 0; i < n; i++ {
		frames = append(frames, Frame(pcs[i]))
	}
	return frames
}

func NewErrorStack(msg string) error {
	return &errorStack{
		msg:    msg,
		frames: callers(3),
	}
}

func WrapErrorStack(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(ErrorStack); ok {
		return err
	}
	return &errorStack{
		cause:  err,
		frames: callers(3),
	}
}

func WrapErrorStackWithMessage(err error, msg string) error {
	if err == nil && len(msg) <= 0 {
		return nil
	}
	return &errorStack{
		cause:  err,
		msg:    msg,
		frames: callers(3),
	}
}
