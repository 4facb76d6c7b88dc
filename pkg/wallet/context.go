package wallet

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmitrymomot/mintshell/pkg/logger"
)

type requestIDKey struct{}

// WithRequestID stores the id of the command being handled in ctx.
// The actor does this before every handler, so collaborator calls can
// correlate their own logs with delivered events.
func WithRequestID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the id stored by WithRequestID.
func RequestIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(requestIDKey{}).(uuid.UUID)
	return id, ok
}

// LogRequestID is a logger.ContextExtractor that adds "request_id" to records
// logged with a handler context.
func LogRequestID(ctx context.Context) (slog.Attr, bool) {
	id, ok := RequestIDFromContext(ctx)
	if !ok {
		return slog.Attr{}, false
	}
	return logger.RequestID(id.String()), true
}
