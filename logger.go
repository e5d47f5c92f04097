package realip

import (
	"context"
)

// Logger receives the warnings Extractor emits for repeated, non-ASCII,
// malformed or undisclosed client IP headers.
//
// A single Extractor is shared across request goroutines, so implementations
// must be safe for concurrent use. ctx is the request context and may carry
// trace metadata.
//
// The method set matches (*slog.Logger).WarnContext, so a *slog.Logger can be
// passed to WithLogger as is.
type Logger interface {
	WarnContext(ctx context.Context, msg string, args ...any)
}

// noopLogger is used until WithLogger is applied.
type noopLogger struct{}

func (noopLogger) WarnContext(context.Context, string, ...any) {}
