package logger

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/KirkDiggler/txt-rpg/internal/uuid"
)

type ctxKey string

const sessionIDKey ctxKey = "sessionID"

// Init builds a logger writing to w and installs it as the slog default
func Init(cfg Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     cfg.LogLevel(),
		AddSource: cfg.AddSource,
	}

	var handler slog.Handler
	if cfg.IsJSON() {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	l := slog.New(handler).With("app", "txtrpg")
	slog.SetDefault(l)
	return l
}

// OpenFile opens a log file for appending, creating it when missing
func OpenFile(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

// NewSessionID creates an id for correlating one play session's log lines
func NewSessionID(gen uuid.Generator) string {
	if gen == nil {
		gen = uuid.NewGoogleUUIDGenerator()
	}
	return gen.New()
}

// WithSessionID returns a new context carrying the session id
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionIDKey, id)
}

// SessionIDFromContext extracts the session id from the context, if present
func SessionIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sessionIDKey).(string)
	return id, ok && id != ""
}

// FromContext returns the default logger with the session_id attribute when present
func FromContext(ctx context.Context) *slog.Logger {
	if id, ok := SessionIDFromContext(ctx); ok {
		return slog.Default().With("session_id", id)
	}
	return slog.Default()
}
