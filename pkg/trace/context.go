package trace

import "context"

// SampledState is the tri-state sampling decision carried by a SpanContext.
type SampledState uint8

const (
	// SampledUnknown means no decision has been made yet. Extraction from
	// an empty or malformed carrier yields this state, and the tracer
	// responds by sampling a new root trace.
	SampledUnknown SampledState = iota

	// Sampled means the trace is recorded in full.
	Sampled

	// NotSampled means the trace is dropped. The decision is final and
	// inherited by all descendant spans.
	NotSampled
)

// String returns the state name for logging.
func (s SampledState) String() string {
	switch s {
	case Sampled:
		return "sampled"
	case NotSampled:
		return "not_sampled"
	default:
		return "unknown"
	}
}

// SpanContext identifies a span within a trace together with the sampling
// decision and the baggage propagated alongside it.
//
// SpanContext is an immutable value. Deriving operations (NewChild,
// WithBaggageItem) return a new value; the receiver is never modified.
// It is safe to share across goroutines without synchronization.
type SpanContext struct {
	TraceID  TraceID
	SpanID   SpanID
	ParentID SpanID
	Sampled  SampledState

	// baggage is never mutated after assignment; WithBaggageItem copies.
	baggage map[string]string
}

// NewRootContext creates the context for a new root span with the given
// sampling decision.
func NewRootContext(sampled SampledState) SpanContext {
	return SpanContext{
		TraceID: NewTraceID(),
		SpanID:  NewSpanID(),
		Sampled: sampled,
	}
}

// NewChild derives the context for a child span: same trace, same sampling
// decision, same baggage, fresh span ID, parent link to the receiver.
func (sc SpanContext) NewChild() SpanContext {
	return SpanContext{
		TraceID:  sc.TraceID,
		SpanID:   NewSpanID(),
		ParentID: sc.SpanID,
		Sampled:  sc.Sampled,
		baggage:  sc.baggage,
	}
}

// IsValid reports whether the context carries usable identifiers.
func (sc SpanContext) IsValid() bool {
	return !sc.TraceID.IsZero() && !sc.SpanID.IsZero()
}

// BaggageItem returns the value of the named baggage item, or the empty
// string if the item is not set. Lookup is by exact (already normalized)
// name; callers go through the baggage registry for case normalization.
func (sc SpanContext) BaggageItem(name string) string {
	return sc.baggage[name]
}

// WithBaggageItem returns a copy of the context with the named baggage
// item set. The receiver is left untouched.
func (sc SpanContext) WithBaggageItem(name, value string) SpanContext {
	items := make(map[string]string, len(sc.baggage)+1)
	for k, v := range sc.baggage {
		items[k] = v
	}
	items[name] = value
	sc.baggage = items
	return sc
}

// ForeachBaggageItem calls fn for every baggage item until fn returns
// false. Iteration order is unspecified.
func (sc SpanContext) ForeachBaggageItem(fn func(name, value string) bool) {
	for k, v := range sc.baggage {
		if !fn(k, v) {
			return
		}
	}
}

// Extraction is the outcome of decoding a carrier. When the carrier held a
// full context, Context is valid and Flags mirrors its decision. When the
// carrier was empty, malformed, or held only a sampling flag, Context is
// the zero value and Flags carries whatever was learned (usually
// SampledUnknown, meaning "start a new root trace").
//
// Fields lists the baggage field names declared for propagation at the
// time of extraction, whether or not the carrier held values for them.
type Extraction struct {
	Context SpanContext
	Flags   SampledState
	Fields  []string
}

// Empty reports whether nothing usable was extracted: no context and no
// sampling decision.
func (e Extraction) Empty() bool {
	return !e.Context.IsValid() && e.Flags == SampledUnknown
}

type contextKey struct{}

// ContextWithSpanContext returns a context.Context carrying sc.
func ContextWithSpanContext(ctx context.Context, sc SpanContext) context.Context {
	return context.WithValue(ctx, contextKey{}, sc)
}

// SpanContextFromContext returns the SpanContext stored in ctx, or the
// zero value if none is present.
func SpanContextFromContext(ctx context.Context) SpanContext {
	if sc, ok := ctx.Value(contextKey{}).(SpanContext); ok {
		return sc
	}
	return SpanContext{}
}
