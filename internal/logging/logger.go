// Package logging defines the structured-logging interface the ceremony
// components share. The slog-backed implementation lives alongside it; the
// interface keeps handlers swappable without touching call sites.
package logging

import "context"

// Logger is a context-aware, structured logger. The variadic args are
// key-value pairs:
//
//	log.Info(ctx, "task claimed", "task_id", taskID, "type", taskType)
type Logger interface {
	// Info logs an informational message.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs a warning for unusual but non-fatal conditions.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs a failure.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key-value
	// pairs. Components tag themselves once with With("module", ...).
	With(args ...any) Logger
}
