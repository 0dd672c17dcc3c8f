// Package otelbridge connects this library's trace model to
// OpenTelemetry.
//
// It is for mixed fleets: services instrumented with OpenTelemetry can
// interoperate with services using this library by running the same wire
// format on both sides. The bridge exposes the propagation codec as an
// otel TextMapPropagator and converts span contexts in both directions:
//
//	otel.SetTextMapPropagator(otelbridge.NewPropagator(client.PropagationFactory()))
//
// Identifier layouts match one to one (128-bit trace ids, 64-bit span
// ids), so conversions are lossless. The only narrowing is the sampling
// flag: OpenTelemetry carries a single sampled bit, so the tri-state
// "unknown" collapses to not-sampled when crossing into otel.
package otelbridge
