package ecs

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const instrumentationName = "github.com/oriumgames/ecs"

// newTracer returns the global OpenTelemetry tracer when tracing is on,
// and a no-op tracer otherwise.
func newTracer(enabled bool) trace.Tracer {
	if !enabled {
		return noop.NewTracerProvider().Tracer(instrumentationName)
	}
	return otel.Tracer(instrumentationName, trace.WithInstrumentationVersion(Version))
}

// startSystemSpan opens the span covering one system run.
func (w *World) startSystemSpan(name string, tick ChangeTick, exclusive bool) trace.Span {
	_, span := w.tracer.Start(context.Background(), name,
		trace.WithAttributes(
			attribute.String("ecs.system", name),
			attribute.Int64("ecs.change_tick", int64(tick)),
			attribute.Bool("ecs.exclusive", exclusive),
			attribute.String("ecs.world", w.id.String()),
		),
	)
	return span
}
