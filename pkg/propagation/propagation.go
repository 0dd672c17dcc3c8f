package propagation

import (
	"strings"

	"github.com/Aleph-Alpha/tracing/pkg/trace"
)

// SingleHeader is the carrier key holding the packed trace context.
const SingleHeader = "b3"

// BaggagePrefix prefixes the carrier key of every propagated baggage
// field.
const BaggagePrefix = "baggage-"

// Propagation injects and extracts trace context for one wire format.
// Implementations must be safe for concurrent use.
type Propagation interface {
	// Fields returns the carrier keys this codec reads and writes. Useful
	// for header allow-lists on proxies.
	Fields() []string

	// Inject writes sc into the carrier. Injecting an invalid context is
	// a no-op.
	Inject(sc trace.SpanContext, carrier Carrier)

	// Extract reads trace context from the carrier. It never fails hard:
	// malformed or absent entries yield an Extraction with no context and
	// unknown sampling flags.
	Extract(carrier Carrier) trace.Extraction
}

// Factory produces a Propagation bound to a fixed, immutable set of
// baggage fields. Factories are compared by identity: the no-baggage
// builder collapses to the canonical Default factory rather than
// producing an equivalent wrapper.
type Factory interface {
	Create() Propagation
}

// Default is the canonical single-header factory with no baggage fields.
var Default Factory = &singleHeaderFactory{}

type singleHeaderFactory struct{}

func (f *singleHeaderFactory) Create() Propagation {
	return singleHeaderPropagation{}
}

type singleHeaderPropagation struct{}

func (singleHeaderPropagation) Fields() []string {
	return []string{SingleHeader}
}

func (singleHeaderPropagation) Inject(sc trace.SpanContext, carrier Carrier) {
	if !sc.IsValid() {
		return
	}
	var b strings.Builder
	b.WriteString(sc.TraceID.String())
	b.WriteByte('-')
	b.WriteString(sc.SpanID.String())
	switch sc.Sampled {
	case trace.Sampled:
		b.WriteString("-1")
	case trace.NotSampled:
		b.WriteString("-0")
	case trace.SampledUnknown:
		// Flag position is omitted; the parent id cannot follow without
		// it, and an undecided context never has a parent anyway.
		carrier.Set(SingleHeader, b.String())
		return
	}
	if !sc.ParentID.IsZero() {
		b.WriteByte('-')
		b.WriteString(sc.ParentID.String())
	}
	carrier.Set(SingleHeader, b.String())
}

func (singleHeaderPropagation) Extract(carrier Carrier) trace.Extraction {
	value := carrier.Get(SingleHeader)
	if value == "" {
		return trace.Extraction{Flags: trace.SampledUnknown}
	}

	parts := strings.Split(value, "-")

	// A lone flag ("0" or "1") carries a sampling decision without ids.
	if len(parts) == 1 {
		if flags, ok := parseSampledFlag(parts[0]); ok {
			return trace.Extraction{Flags: flags}
		}
		return trace.Extraction{Flags: trace.SampledUnknown}
	}
	if len(parts) > 4 {
		return trace.Extraction{Flags: trace.SampledUnknown}
	}

	traceID, err := trace.TraceIDFromHex(parts[0])
	if err != nil {
		return trace.Extraction{Flags: trace.SampledUnknown}
	}
	spanID, err := trace.SpanIDFromHex(parts[1])
	if err != nil {
		return trace.Extraction{Flags: trace.SampledUnknown}
	}

	sc := trace.SpanContext{TraceID: traceID, SpanID: spanID}

	if len(parts) >= 3 {
		flags, ok := parseSampledFlag(parts[2])
		if !ok {
			return trace.Extraction{Flags: trace.SampledUnknown}
		}
		sc.Sampled = flags
	}
	if len(parts) == 4 {
		parentID, err := trace.SpanIDFromHex(parts[3])
		if err != nil {
			return trace.Extraction{Flags: trace.SampledUnknown}
		}
		sc.ParentID = parentID
	}

	return trace.Extraction{Context: sc, Flags: sc.Sampled}
}

func parseSampledFlag(s string) (trace.SampledState, bool) {
	switch s {
	case "1":
		return trace.Sampled, true
	case "0":
		return trace.NotSampled, true
	default:
		return trace.SampledUnknown, false
	}
}
