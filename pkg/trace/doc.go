// Package trace defines the core identifier and context model shared by
// every other package in this library.
//
// A TraceID names one logical request end to end; a SpanID names one unit
// of work inside it. SpanContext binds the two together with the parent
// link, the sampling decision, and the baggage items that travel with the
// trace. SpanContext values are immutable: deriving a child or attaching
// a baggage item always returns a new value, never mutates in place, so
// they can be shared across goroutines without synchronization.
//
// The sampling decision is tri-state. A context extracted from an empty
// or malformed carrier carries SampledUnknown, which tells the tracer to
// make a fresh decision for a new root trace. Once a context carries
// Sampled or NotSampled the flag is fixed for the life of the trace and
// inherited unchanged by every descendant span.
//
// Basic usage:
//
//	sc := trace.NewRootContext(trace.Sampled)
//	child := sc.NewChild()
//
//	sc = sc.WithBaggageItem("country-code", "DE")
//	value := sc.BaggageItem("country-code")
//
// Context plumbing mirrors the standard library pattern:
//
//	ctx = trace.ContextWithSpanContext(ctx, sc)
//	sc = trace.SpanContextFromContext(ctx)
package trace
