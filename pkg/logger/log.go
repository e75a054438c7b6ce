// Package logger wraps go.uber.org/zap with the structured Field/Context
// conventions used throughout the ambient stack.
package logger

import (
	"context"
	"fmt"
	"strings"

	"github.com/muhammadchandra19/matchcore/pkg/errors"
	"github.com/muhammadchandra19/matchcore/pkg/reqctx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Interface is satisfied by Logger; components should depend on this so a
// mock can stand in during tests.
type Interface interface {
	Debug(message string, fields ...Field)
	DebugContext(ctx context.Context, message string, fields ...Field)
	Error(err error, fields ...Field)
	ErrorContext(ctx context.Context, err error, fields ...Field)
	GetZap() *zap.Logger
	Info(message string, fields ...Field)
	InfoContext(ctx context.Context, message string, fields ...Field)
	Sync() error
	Warn(message string, fields ...Field)
	WarnContext(ctx context.Context, message string, fields ...Field)
	WithFields(fields ...Field) *Logger
}

// Logger is a thin structured wrapper around zap.Logger.
type Logger struct {
	logger *zap.Logger
}

// Field holds one key-value pair to be written to the log.
type Field struct {
	Key   string
	Value any
}

// NewField returns a Field with the given key and value.
func NewField(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Options configures NewLogger.
type Options struct {
	level           Level
	outputPaths     []string
	timeKey         string
	levelKey        string
	callerTraceSkip int
}

// Level is the minimum severity a Logger will emit.
type Level string

const (
	DebugLevel Level = "debug"
	InfoLevel  Level = "info"
	WarnLevel  Level = "warn"
	ErrorLevel Level = "error"

	messageKey = "message"
)

func (level Level) zapLevel() zapcore.Level {
	switch level {
	case DebugLevel:
		return zapcore.DebugLevel
	case WarnLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// NewLogger builds a Logger on top of zap's production config, remapping
// the message key to "message".
func NewLogger(opts ...Options) (*Logger, error) {
	cfg := zap.NewProductionConfig()
	var buildOptions []zap.Option

	for _, opt := range opts {
		if opt.level != "" {
			cfg.Level = zap.NewAtomicLevelAt(opt.level.zapLevel())
		}
		if opt.outputPaths != nil {
			cfg.OutputPaths = opt.outputPaths
		}
		if opt.timeKey != "" {
			cfg.EncoderConfig.TimeKey = opt.timeKey
		}
		if opt.levelKey != "" {
			cfg.EncoderConfig.LevelKey = opt.levelKey
		}
		if opt.callerTraceSkip > 0 {
			buildOptions = append(buildOptions, zap.AddCallerSkip(opt.callerTraceSkip))
		}
	}

	cfg.EncoderConfig.MessageKey = messageKey

	zl, err := cfg.Build(buildOptions...)
	return &Logger{logger: zl}, err
}

// WithLoggingLevel sets the minimum level that will be emitted.
func WithLoggingLevel(level Level) Options { return Options{level: level} }

// WithOutputPaths sets the sinks logs are written to ("stdout", "stderr",
// or a file path).
func WithOutputPaths(paths []string) Options { return Options{outputPaths: paths} }

// WithTimeKey overrides the JSON key used for the log timestamp.
func WithTimeKey(key string) Options { return Options{timeKey: key} }

// WithLevelKey overrides the JSON key used for the log level.
func WithLevelKey(key string) Options { return Options{levelKey: key} }

// WithCallerTraceSkip skips additional frames when resolving the caller.
func WithCallerTraceSkip(skip int) Options { return Options{callerTraceSkip: skip} }

// Sync flushes any buffered log entries.
func (l *Logger) Sync() error { return l.logger.Sync() }

// GetZap exposes the underlying zap.Logger for callers that need it
// directly (e.g. a health-check component logging at startup).
func (l *Logger) GetZap() *zap.Logger { return l.logger }

// Info logs at info level.
func (l *Logger) Info(message string, fields ...Field) {
	l.logger.Info(message, convertFields(fields...)...)
}

// InfoContext logs at info level with the request id from ctx appended.
func (l *Logger) InfoContext(ctx context.Context, message string, fields ...Field) {
	l.Info(message, appendRequestID(ctx, fields)...)
}

// Warn logs at warn level.
func (l *Logger) Warn(message string, fields ...Field) {
	l.logger.Warn(message, convertFields(fields...)...)
}

// WarnContext logs at warn level with the request id from ctx appended.
func (l *Logger) WarnContext(ctx context.Context, message string, fields ...Field) {
	l.Warn(message, appendRequestID(ctx, fields)...)
}

// Debug logs at debug level.
func (l *Logger) Debug(message string, fields ...Field) {
	l.logger.Debug(message, convertFields(fields...)...)
}

// DebugContext logs at debug level with the request id from ctx appended.
func (l *Logger) DebugContext(ctx context.Context, message string, fields ...Field) {
	l.Debug(message, appendRequestID(ctx, fields)...)
}

// Error logs err at error level. If err carries a stack trace (see
// pkg/errors.StackTracer), it is attached in place of zap's own caller
// trace.
func (l *Logger) Error(err error, fields ...Field) {
	zapFields := convertFields(fields...)
	stacktrace := ""

	if tracer, ok := err.(errors.StackTracer); ok {
		stacktrace = strings.TrimSpace(fmt.Sprintf("%+v", tracer.StackTrace()))
	}

	if ce := l.logger.Check(zapcore.ErrorLevel, err.Error()); ce != nil {
		if stacktrace != "" {
			ce.Stack = stacktrace
		}
		ce.Write(zapFields...)
	}
}

// ErrorContext logs err at error level with the request id from ctx
// appended.
func (l *Logger) ErrorContext(ctx context.Context, err error, fields ...Field) {
	l.Error(err, appendRequestID(ctx, fields)...)
}

// WithFields returns a child logger that always includes the given fields.
func (l *Logger) WithFields(fields ...Field) *Logger {
	return &Logger{logger: l.logger.With(convertFields(fields...)...)}
}

func convertFields(fields ...Field) []zapcore.Field {
	var zapFields []zapcore.Field
	for _, f := range fields {
		zapFields = append(zapFields, zap.Any(f.Key, f.Value))
	}
	return zapFields
}

func appendRequestID(ctx context.Context, fields []Field) []Field {
	return append(fields, NewField("request_id", reqctx.RequestID(ctx)))
}
