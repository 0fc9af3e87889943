// Package logging defines the structured-logging interface used across the
// client core. The default implementation wraps log/slog.
package logging

import "context"

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key–value pairs, e.g.:
//
//	log.Warn(ctx, "guest store entry unreadable", "key", key, "error", err)
type Logger interface {
	// Debug logs chatty diagnostics (cache hits, bus deliveries).
	Debug(ctx context.Context, msg string, args ...any)

	// Info logs an informational message.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs a condition that was absorbed, e.g. a corrupt cache entry.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs a failure that is surfaced to the caller.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}
