package otelbridge

import (
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/Aleph-Alpha/tracing/pkg/trace"
)

// ToOTel converts a span context into its OpenTelemetry equivalent. The
// result is marked remote, since the bridge sits at process boundaries.
func ToOTel(sc trace.SpanContext) oteltrace.SpanContext {
	var flags oteltrace.TraceFlags
	if sc.Sampled == trace.Sampled {
		flags = oteltrace.FlagsSampled
	}
	return oteltrace.NewSpanContext(oteltrace.SpanContextConfig{
		TraceID:    oteltrace.TraceID(sc.TraceID),
		SpanID:     oteltrace.SpanID(sc.SpanID),
		TraceFlags: flags,
		Remote:     true,
	})
}

// FromOTel converts an OpenTelemetry span context into this library's
// model. An invalid otel context converts to the zero value. OTel has no
// "unknown" sampling state, so the flag maps to Sampled or NotSampled.
func FromOTel(osc oteltrace.SpanContext) trace.SpanContext {
	if !osc.IsValid() {
		return trace.SpanContext{}
	}
	sampled := trace.NotSampled
	if osc.IsSampled() {
		sampled = trace.Sampled
	}
	return trace.SpanContext{
		TraceID: trace.TraceID(osc.TraceID()),
		SpanID:  trace.SpanID(osc.SpanID()),
		Sampled: sampled,
	}
}
