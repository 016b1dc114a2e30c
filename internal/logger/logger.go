package logger

import (
	"context"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"

	"trade-audit/internal/trace"
)

var (
	globalLogger    *slog.Logger
	logLevel        slog.Level
	detailedLogging bool
)

// LogConfig holds logging configuration
type LogConfig struct {
	Level           string // DEBUG, INFO, WARN, ERROR
	Format          string // json or text
	DetailedLogging bool
}

// Init initializes the global logger based on environment variables
func Init() error {
	return InitWithConfig(LoadConfigFromEnv())
}

// LoadConfigFromEnv loads logging configuration from environment variables
func LoadConfigFromEnv() LogConfig {
	return LogConfig{
		Level:           getEnvOrDefault("LOG_LEVEL", "INFO"),
		Format:          getEnvOrDefault("LOG_FORMAT", "text"),
		DetailedLogging: getEnvOrDefault("LOG_DETAILED", "false") == "true",
	}
}

// InitWithConfig initializes the logger with specific configuration
func InitWithConfig(config LogConfig) error {
	logLevel = parseLogLevel(config.Level)
	detailedLogging = config.DetailedLogging

	// Source information is added manually in logWithTrace so the caller
	// location is the call site, not this package.
	opts := &slog.HandlerOptions{
		Level:     logLevel,
		AddSource: false,
	}

	var handler slog.Handler
	if config.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
	return nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Debug logs a debug message
func Debug(ctx context.Context, msg string, args ...any) {
	logWithTrace(ctx, slog.LevelDebug, msg, 2, args...)
}

// Info logs an info message
func Info(ctx context.Context, msg string, args ...any) {
	logWithTrace(ctx, slog.LevelInfo, msg, 2, args...)
}

// Warn logs a warning message
func Warn(ctx context.Context, msg string, args ...any) {
	logWithTrace(ctx, slog.LevelWarn, msg, 2, args...)
}

// Error logs an error message
func Error(ctx context.Context, msg string, args ...any) {
	logWithTrace(ctx, slog.LevelError, msg, 2, args...)
}

// ErrorWithErr logs an error message with an error object
func ErrorWithErr(ctx context.Context, msg string, err error, args ...any) {
	span := oteltrace.SpanFromContext(ctx)
	if span.SpanContext().IsValid() {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	allArgs := append([]any{"error", err}, args...)
	logWithTrace(ctx, slog.LevelError, msg, 2, allArgs...)
}

// logWithTrace logs a message with trace ID and span ID if available.
// skip indicates how many stack frames to skip to reach the actual caller.
func logWithTrace(ctx context.Context, level slog.Level, msg string, skip int, args ...any) {
	if globalLogger == nil {
		return
	}
	if traceID, spanID, ok := trace.GetTraceFields(ctx); ok {
		args = append([]any{"trace_id", traceID, "span_id", spanID}, args...)
	}

	if detailedLogging {
		if pc, file, line, ok := runtime.Caller(skip); ok {
			if fn := runtime.FuncForPC(pc); fn != nil {
				args = append(args, "source", slog.GroupValue(
					slog.String("function", fn.Name()),
					slog.String("file", file),
					slog.Int("line", line),
				))
			}
		}
	}

	globalLogger.Log(ctx, level, msg, args...)
}

// OperationTimer measures one pipeline stage with an OpenTelemetry span.
type OperationTimer struct {
	ctx   context.Context
	span  oteltrace.Span
	start time.Time
	op    string
}

// StartOperation starts timing a pipeline stage
func StartOperation(ctx context.Context, operation string, fields ...any) *OperationTimer {
	ctx, span := trace.StartSpan(ctx, operation)
	span.SetAttributes(spanAttrs(fields)...)

	Debug(ctx, "Stage started", append([]any{"operation", operation}, fields...)...)

	return &OperationTimer{
		ctx:   ctx,
		span:  span,
		start: time.Now(),
		op:    operation,
	}
}

// End completes the stage timer and records the duration
func (ot *OperationTimer) End(additionalFields ...any) {
	duration := time.Since(ot.start)

	ot.span.SetAttributes(attribute.Int64("duration_ms", duration.Milliseconds()))
	ot.span.SetAttributes(spanAttrs(additionalFields)...)
	ot.span.SetStatus(codes.Ok, "completed")
	ot.span.End()

	fields := append([]any{"operation", ot.op, "duration_ms", duration.Milliseconds()}, additionalFields...)
	Debug(ot.ctx, "Stage completed", fields...)
}

// EndWithError completes the stage timer with an error
func (ot *OperationTimer) EndWithError(err error, additionalFields ...any) {
	duration := time.Since(ot.start)

	ot.span.SetAttributes(attribute.Int64("duration_ms", duration.Milliseconds()))
	ot.span.RecordError(err)
	ot.span.SetStatus(codes.Error, err.Error())
	ot.span.End()

	fields := append([]any{"operation", ot.op, "duration_ms", duration.Milliseconds(), "error", err}, additionalFields...)
	Error(ot.ctx, "Stage failed", fields...)
}

// GetContext returns the context carrying the stage span
func (ot *OperationTimer) GetContext() context.Context {
	return ot.ctx
}

func spanAttrs(fields []any) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, len(fields)/2)
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		switch v := fields[i+1].(type) {
		case string:
			attrs = append(attrs, attribute.String(key, v))
		case int:
			attrs = append(attrs, attribute.Int(key, v))
		case int64:
			attrs = append(attrs, attribute.Int64(key, v))
		case float64:
			attrs = append(attrs, attribute.Float64(key, v))
		case bool:
			attrs = append(attrs, attribute.Bool(key, v))
		}
	}
	return attrs
}

// IsDebugEnabled returns whether detailed logging is enabled
func IsDebugEnabled() bool {
	return detailedLogging
}
