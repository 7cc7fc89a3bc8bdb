// Package telemetry records tool invocations as OpenTelemetry metrics and
// spans and as structured log lines.
package telemetry

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/germanamz/garmin-mcp/pkg/tools/result"
	"github.com/germanamz/garmin-mcp/pkg/tools/toolbox"
)

// ToolObserver records every tool invocation.
type ToolObserver struct {
	tracer trace.Tracer
	logger *slog.Logger

	invocations metric.Int64Counter
	latency     metric.Float64Histogram
}

// NewToolObserver creates an observer bound to the provided meter, tracer,
// and logger. A nil tracer disables spans; a nil logger disables logging.
func NewToolObserver(meter metric.Meter, tracer trace.Tracer, logger *slog.Logger) (*ToolObserver, error) {
	invocations, err := meter.Int64Counter(
		"garmin_mcp.tool.invocations",
		metric.WithDescription("Number of tool invocations"),
	)
	if err != nil {
		return nil, err
	}
	latency, err := meter.Float64Histogram(
		"garmin_mcp.tool.latency",
		metric.WithDescription("Tool latency in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &ToolObserver{
		tracer:      tracer,
		logger:      logger,
		invocations: invocations,
		latency:     latency,
	}, nil
}

// Middleware returns a toolbox middleware that observes each call.
func (o *ToolObserver) Middleware() toolbox.Middleware {
	return func(t toolbox.Tool, next toolbox.Handler) toolbox.Handler {
		return func(ctx context.Context, input json.RawMessage) (string, error) {
			return o.invoke(ctx, t.Name, input, next)
		}
	}
}

func (o *ToolObserver) invoke(ctx context.Context, name string, input json.RawMessage, next toolbox.Handler) (string, error) {
	id := uuid.NewString()

	var span trace.Span
	if o.tracer != nil {
		ctx, span = o.tracer.Start(ctx, "tool.invoke", trace.WithAttributes(
			attribute.String("tool_name", name),
			attribute.String("invocation_id", id),
		))
		defer span.End()
	}

	ctx, outcome := result.Observe(ctx)
	start := time.Now()
	out, err := next(ctx, input)
	elapsed := time.Since(start)
	kind := outcome(err)

	attrs := metric.WithAttributes(
		attribute.String("tool_name", name),
		attribute.String("outcome", kind.String()),
	)
	o.invocations.Add(ctx, 1, attrs)
	o.latency.Record(ctx, elapsed.Seconds(), attrs)

	failed := kind == result.KindFailure || kind == result.KindNotConfigured
	if span != nil {
		span.SetAttributes(attribute.String("outcome", kind.String()))
		if failed {
			span.SetStatus(codes.Error, kind.String())
		} else {
			span.SetStatus(codes.Ok, "")
		}
	}

	if o.logger != nil {
		level := slog.LevelInfo
		if failed {
			level = slog.LevelWarn
		}
		o.logger.LogAttrs(ctx, level, "tool invoked",
			slog.String("tool", name),
			slog.String("invocation_id", id),
			slog.String("outcome", kind.String()),
			slog.Duration("duration", elapsed),
		)
	}

	return out, err
}
