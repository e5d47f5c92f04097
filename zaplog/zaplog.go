// Package zaplog adapts a *zap.Logger to realip.Logger.
//
// Key-value arguments are passed to zap's sugared logger unchanged. When the
// context carries a valid OpenTelemetry span context, trace_id and span_id
// fields are added so extraction warnings can be joined with request traces.
package zaplog

import (
	"context"

	"github.com/abczzz13/realip"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Logger implements realip.Logger on top of zap.
type Logger struct {
	sugar *zap.SugaredLogger
}

var _ realip.Logger = (*Logger)(nil)

// New wraps logger. A nil logger is replaced by zap.NewNop().
func New(logger *zap.Logger) *Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Logger{sugar: logger.Sugar()}
}

// WithLogger returns a realip option that logs through logger.
func WithLogger(logger *zap.Logger) realip.Option {
	return realip.WithLogger(New(logger))
}

// WarnContext logs msg at warn level with the given key-value pairs.
func (l *Logger) WarnContext(ctx context.Context, msg string, args ...any) {
	if ctx != nil {
		if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
			args = append(args,
				zap.String("trace_id", sc.TraceID().String()),
				zap.String("span_id", sc.SpanID().String()),
			)
		}
	}

	l.sugar.Warnw(msg, args...)
}
