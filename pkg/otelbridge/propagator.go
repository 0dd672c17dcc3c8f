package otelbridge

import (
	"context"

	otelpropagation "go.opentelemetry.io/otel/propagation"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/Aleph-Alpha/tracing/pkg/propagation"
	"github.com/Aleph-Alpha/tracing/pkg/trace"
)

// Propagator exposes a propagation.Factory as an OpenTelemetry
// TextMapPropagator, so otel-instrumented HTTP clients and servers speak
// this library's wire format.
type Propagator struct {
	codec propagation.Propagation
}

var _ otelpropagation.TextMapPropagator = Propagator{}

// NewPropagator creates a propagator from the given factory. A nil
// factory means propagation.Default.
func NewPropagator(factory propagation.Factory) Propagator {
	if factory == nil {
		factory = propagation.Default
	}
	return Propagator{codec: factory.Create()}
}

// Inject writes the span context found in ctx into the carrier. The
// native span context wins; an otel span context is converted when no
// native one is present.
func (p Propagator) Inject(ctx context.Context, carrier otelpropagation.TextMapCarrier) {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		sc = FromOTel(oteltrace.SpanContextFromContext(ctx))
	}
	// otel's TextMapCarrier has the same method set as our Carrier.
	p.codec.Inject(sc, carrier)
}

// Extract reads trace context from the carrier and stores it in ctx in
// both representations. A failed extraction leaves ctx untouched.
func (p Propagator) Extract(ctx context.Context, carrier otelpropagation.TextMapCarrier) context.Context {
	extraction := p.codec.Extract(carrier)
	if !extraction.Context.IsValid() {
		return ctx
	}
	ctx = trace.ContextWithSpanContext(ctx, extraction.Context)
	return oteltrace.ContextWithRemoteSpanContext(ctx, ToOTel(extraction.Context))
}

// Fields returns the carrier keys the codec reads and writes.
func (p Propagator) Fields() []string {
	return p.codec.Fields()
}
