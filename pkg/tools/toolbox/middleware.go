package toolbox

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Middleware wraps the Handler of the named tool, returning a new Handler
// with added behaviour.
type Middleware func(tool string, next Handler) Handler

// --- Timeout middleware ---

// Timeout returns a Middleware that wraps the handler's context with a deadline.
// A non-positive duration disables it.
func Timeout(d time.Duration) Middleware {
	return func(_ string, next Handler) Handler {
		if d <= 0 {
			return next
		}

		return func(ctx context.Context, input json.RawMessage) (string, error) {
			ctx, cancel := context.WithTimeout(ctx, d)
			defer cancel()

			return next(ctx, input)
		}
	}
}

// --- Recovery middleware ---

// Recovery returns a Middleware that catches panics and converts them to
// internal errors. ToolBox always installs it innermost.
func Recovery() Middleware {
	return func(tool string, next Handler) Handler {
		return func(ctx context.Context, input json.RawMessage) (result string, err error) {
			defer func() {
				if r := recover(); r != nil {
					result = ""
					err = Internal("tool %s panicked: %v", tool, r)
				}
			}()

			return next(ctx, input)
		}
	}
}

// --- Logger middleware ---

// Logger returns a Middleware that logs tool start, duration, and error.
func Logger(log *slog.Logger) Middleware {
	return func(tool string, next Handler) Handler {
		return func(ctx context.Context, input json.RawMessage) (string, error) {
			log.DebugContext(ctx, "tool call started", "tool", tool)

			start := time.Now()

			result, err := next(ctx, input)

			duration := time.Since(start)

			if err != nil {
				log.WarnContext(ctx, "tool call failed",
					"tool", tool,
					"duration", duration,
					"category", string(CategoryOf(err)),
					"error", err,
				)
			} else {
				log.InfoContext(ctx, "tool call finished",
					"tool", tool,
					"duration", duration,
				)
			}

			return result, err
		}
	}
}

// --- Tracing middleware ---

// Tracing returns a Middleware that records one span per tool call.
func Tracing(tracer trace.Tracer) Middleware {
	return func(tool string, next Handler) Handler {
		return func(ctx context.Context, input json.RawMessage) (string, error) {
			ctx, span := tracer.Start(ctx, "tool "+tool,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(attribute.String("tool.name", tool)),
			)
			defer span.End()

			result, err := next(ctx, input)
			if err != nil {
				span.RecordError(err)
				span.SetAttributes(attribute.String("tool.error.category", string(CategoryOf(err))))
				span.SetStatus(codes.Error, err.Error())
			}

			return result, err
		}
	}
}
