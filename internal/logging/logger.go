// Package logging provides the structured logger that the logging packages
// (httpapi, eventstream, launch, and the scheduler Context) take instead of
// calling the global log package directly.
package logging

import (
	"context"
	"os"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"
)

// Logger is the logging contract used across internal/.
type Logger interface {
	Debug(ctx context.Context, msg string, fields ...Field)
	Info(ctx context.Context, msg string, fields ...Field)
	Warn(ctx context.Context, msg string, fields ...Field)
	Error(ctx context.Context, msg string, fields ...Field)
	WithFields(fields ...Field) Logger
	WithError(err error) Logger
}

// Field is a structured log field.
type Field struct {
	Key   string
	Value interface{}
}

// StructuredLogger implements Logger over logrus with a JSON formatter and
// OpenTelemetry span enrichment.
type StructuredLogger struct {
	logger     *logrus.Logger
	baseFields map[string]interface{}
	component  string
}

// NewLogger builds a StructuredLogger for the named component.
func NewLogger(component string) Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339Nano,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
	})
	logger.SetOutput(os.Stdout)

	switch os.Getenv("LOG_LEVEL") {
	case "debug":
		logger.SetLevel(logrus.DebugLevel)
	case "warn":
		logger.SetLevel(logrus.WarnLevel)
	case "error":
		logger.SetLevel(logrus.ErrorLevel)
	default:
		logger.SetLevel(logrus.InfoLevel)
	}

	return &StructuredLogger{
		logger:     logger,
		baseFields: make(map[string]interface{}),
		component:  component,
	}
}

func (l *StructuredLogger) Debug(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, logrus.DebugLevel, msg, fields...)
}

func (l *StructuredLogger) Info(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, logrus.InfoLevel, msg, fields...)
}

func (l *StructuredLogger) Warn(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, logrus.WarnLevel, msg, fields...)
}

func (l *StructuredLogger) Error(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, logrus.ErrorLevel, msg, fields...)
}

// WithFields returns a derived logger carrying the given fields on every
// subsequent call.
func (l *StructuredLogger) WithFields(fields ...Field) Logger {
	next := &StructuredLogger{
		logger:     l.logger,
		baseFields: make(map[string]interface{}, len(l.baseFields)+len(fields)),
		component:  l.component,
	}
	for k, v := range l.baseFields {
		next.baseFields[k] = v
	}
	for _, f := range fields {
		next.baseFields[f.Key] = f.Value
	}
	return next
}

// WithError returns a derived logger with the error attached as a field.
func (l *StructuredLogger) WithError(err error) Logger {
	return l.WithFields(Field{Key: "error", Value: err.Error()})
}

func (l *StructuredLogger) log(ctx context.Context, level logrus.Level, msg string, fields ...Field) {
	entry := l.logger.WithFields(logrus.Fields{})
	if l.component != "" {
		entry = entry.WithField("component", l.component)
	}
	if requestID := GetRequestID(ctx); requestID != "" {
		entry = entry.WithField("request_id", requestID)
	}

	span := trace.SpanFromContext(ctx)
	if span.SpanContext().IsValid() {
		entry = entry.WithField("trace_id", span.SpanContext().TraceID().String())
		entry = entry.WithField("span_id", span.SpanContext().SpanID().String())
	}

	if pc, file, line, ok := runtime.Caller(2); ok {
		entry = entry.WithField("file", file)
		entry = entry.WithField("line", line)
		if fn := runtime.FuncForPC(pc); fn != nil {
			entry = entry.WithField("function", fn.Name())
		}
	}

	for k, v := range l.baseFields {
		entry = entry.WithField(k, v)
	}
	for _, f := range fields {
		entry = entry.WithField(f.Key, f.Value)
	}

	entry.Log(level, msg)
}

// Field constructors.

func String(key, value string) Field        { return Field{Key: key, Value: value} }
func Int(key string, value int) Field       { return Field{Key: key, Value: value} }
func Int64(key string, value int64) Field   { return Field{Key: key, Value: value} }
func Bool(key string, value bool) Field     { return Field{Key: key, Value: value} }
func Duration(key string, d time.Duration) Field {
	return Field{Key: key, Value: d.String()}
}
func Any(key string, value interface{}) Field { return Field{Key: key, Value: value} }
func Error(err error) Field                   { return Field{Key: "error", Value: err.Error()} }

type contextKey string

const requestIDKey contextKey = "request_id"

// WithRequestID attaches a request ID to the context, set by the admin HTTP
// layer's request-ID middleware.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetRequestID retrieves the request ID previously attached by WithRequestID.
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}
