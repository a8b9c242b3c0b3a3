package logging

import (
	"context"

	"github.com/rs/zerolog"
)

type ctxKey struct{ name string }

var (
	loggerKey    = ctxKey{"logger"}
	requestIDKey = ctxKey{"request_id"}
)

// WithLogger stores logger in ctx. A nil logger stores the default one.
func WithLogger(ctx context.Context, logger *zerolog.Logger) context.Context {
	if logger == nil {
		logger = Default()
	}
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the logger stored in ctx, or the default logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx != nil {
		if logger, _ := ctx.Value(loggerKey).(*zerolog.Logger); logger != nil {
			return logger
		}
	}
	return Default()
}

// WithRequestID records the HTTP request id and tags the context logger with it.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	ctx = context.WithValue(ctx, requestIDKey, requestID)
	return withFields(ctx, map[string]any{"request_id": requestID})
}

// RequestID returns the request id stored by WithRequestID.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// WithSource tags the context logger with a source adapter id.
func WithSource(ctx context.Context, source string) context.Context {
	return withFields(ctx, map[string]any{"source": source})
}

// WithOperation tags the context logger with the running operation
// (search, import, bootstrap).
func WithOperation(ctx context.Context, operation string) context.Context {
	return withFields(ctx, map[string]any{"operation": operation})
}

func withFields(ctx context.Context, fields map[string]any) context.Context {
	logger := FromContext(ctx).With().Fields(fields).Logger()
	return WithLogger(ctx, &logger)
}
