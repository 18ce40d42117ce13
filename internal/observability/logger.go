package observability

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const (
	// LogFieldTraceID is the field name for the parse trace ID.
	LogFieldTraceID = "trace_id"
	// LogFieldInput is the field name for the raw expression.
	LogFieldInput = "input"
	// LogFieldTimezone is the field name for the parse timezone.
	LogFieldTimezone = "timezone"
	// LogFieldAccuracy is the field name for the accuracy mask.
	LogFieldAccuracy = "accuracy"
	// LogFieldDuration is the field name for duration in milliseconds.
	LogFieldDuration = "duration_ms"
	// LogFieldErrorCode is the field name for error code.
	LogFieldErrorCode = "error_code"
)

// ParseTrace carries structured logging state for one parse request.
type ParseTrace struct {
	TraceID   string
	Input     string
	Timezone  string
	StartTime time.Time
	Logger    *slog.Logger
}

// NewParseTrace creates a trace with a generated ID.
func NewParseTrace(logger *slog.Logger, input, timezone string) *ParseTrace {
	return NewParseTraceWithID(logger, uuid.New().String(), input, timezone)
}

// NewParseTraceWithID creates a trace with a specific ID.
func NewParseTraceWithID(logger *slog.Logger, traceID, input, timezone string) *ParseTrace {
	if logger == nil {
		logger = slog.Default()
	}
	return &ParseTrace{
		TraceID:   traceID,
		Input:     input,
		Timezone:  timezone,
		StartTime: time.Now(),
		Logger:    logger,
	}
}

// Debug logs a debug message.
func (r *ParseTrace) Debug(msg string, attrs ...slog.Attr) {
	r.Logger.LogAttrs(context.Background(), slog.LevelDebug, msg, r.baseAttrsAppended(attrs...)...)
}

// Info logs an info message.
func (r *ParseTrace) Info(msg string, attrs ...slog.Attr) {
	r.Logger.LogAttrs(context.Background(), slog.LevelInfo, msg, r.baseAttrsAppended(attrs...)...)
}

// Warn logs a warning message.
func (r *ParseTrace) Warn(msg string, attrs ...slog.Attr) {
	r.Logger.LogAttrs(context.Background(), slog.LevelWarn, msg, r.baseAttrsAppended(attrs...)...)
}

// Error logs an error message with the error.
func (r *ParseTrace) Error(msg string, err error, attrs ...slog.Attr) {
	allAttrs := append(attrs, slog.String("error", err.Error()))
	r.Logger.LogAttrs(context.Background(), slog.LevelError, msg, r.baseAttrsAppended(allAttrs...)...)
}

// Duration returns the elapsed time since the trace started.
func (r *ParseTrace) Duration() time.Duration {
	return time.Since(r.StartTime)
}

// DurationAttr returns the elapsed time as a log attribute.
func (r *ParseTrace) DurationAttr() slog.Attr {
	return slog.Int64(LogFieldDuration, r.Duration().Milliseconds())
}

func (r *ParseTrace) baseAttrsAppended(attrs ...slog.Attr) []slog.Attr {
	base := []slog.Attr{
		slog.String(LogFieldTraceID, r.TraceID),
		slog.String(LogFieldInput, r.Input),
		slog.String(LogFieldTimezone, r.Timezone),
	}
	return append(base, attrs...)
}

type ctxKey struct{}

// WithParseTrace adds the trace to the context.
func WithParseTrace(ctx context.Context, trace *ParseTrace) context.Context {
	return context.WithValue(ctx, ctxKey{}, trace)
}

// FromContext extracts the trace from the context.
func FromContext(ctx context.Context) (*ParseTrace, bool) {
	trace, ok := ctx.Value(ctxKey{}).(*ParseTrace)
	return trace, ok
}
