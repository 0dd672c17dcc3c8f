// Package propagation encodes and decodes trace context across transport
// boundaries.
//
// A Propagation writes the trace identifiers, the sampling flag, and the
// declared baggage fields into a Carrier (any string-keyed map of
// transport headers) on the way out, and reads them back on the way in.
// The default codec packs all trace fields into a single "b3" carrier
// entry:
//
//	b3: {traceId}-{spanId}-{sampledFlag}-{parentSpanId}
//
// with lowercase hex identifiers; the sampled flag and parent id are
// optional. Baggage fields each occupy their own "baggage-{name}" entry.
//
// Extraction never fails hard. An absent, truncated, or malformed carrier
// entry yields an Extraction with no context and unknown sampling flags,
// which the tracer treats as the start of a new root trace.
//
// Factories produce Propagation instances bound to a fixed set of baggage
// fields. A factory builder that ends up with zero baggage fields
// collapses to its delegate on Build, so the common no-baggage case pays
// no wrapping overhead:
//
//	f := propagation.NewFactoryBuilder(propagation.Default).Build()
//	// f == propagation.Default
package propagation
