package logger

import (
	"context"
	"log/slog"
)

type ctxKey int

const (
	traceIDKey ctxKey = iota
	operationKey
)

func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey, traceID)
}

func WithOperation(ctx context.Context, operation string) context.Context {
	return context.WithValue(ctx, operationKey, operation)
}

type cxtHandler struct {
	slog.Handler
}

// Handle извлекаем нужные данные из контекста для отображения в логе
func (h cxtHandler) Handle(ctx context.Context, r slog.Record) error {
	if traceID, ok := ctx.Value(traceIDKey).(string); ok {
		r.AddAttrs(slog.String("trace_id", traceID))
	}
	if operation, ok := ctx.Value(operationKey).(string); ok {
		r.AddAttrs(slog.String("operation", operation))
	}
	return h.Handler.Handle(ctx, r) //nolint:wrapcheck
}

func (h cxtHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return cxtHandler{h.Handler.WithAttrs(attrs)}
}

func (h cxtHandler) WithGroup(name string) slog.Handler {
	return cxtHandler{h.Handler.WithGroup(name)}
}
