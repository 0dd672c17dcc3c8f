package tracer

import (
	"time"

	"github.com/Aleph-Alpha/tracing/pkg/baggage"
	"github.com/Aleph-Alpha/tracing/pkg/trace"
)

// SpanKind classifies the role of a span within a trace.
type SpanKind uint8

const (
	SpanKindInternal SpanKind = iota
	SpanKindServer
	SpanKindClient
	SpanKindProducer
	SpanKindConsumer
)

// String returns the kind name for tags and logs.
func (k SpanKind) String() string {
	switch k {
	case SpanKindServer:
		return "server"
	case SpanKindClient:
		return "client"
	case SpanKindProducer:
		return "producer"
	case SpanKindConsumer:
		return "consumer"
	default:
		return "internal"
	}
}

// Event is a timestamped annotation on a span.
type Event struct {
	Time time.Time
	Name string
}

// Span is one unit of work within a trace. A span is owned exclusively by
// the call that created it until Finish; afterwards ownership transfers
// to the handler chain, which processes it on the finishing goroutine.
// Spans must not be mutated from multiple goroutines.
type Span struct {
	Context  trace.SpanContext
	Name     string
	Kind     SpanKind
	Start    time.Time
	End      time.Time
	Duration time.Duration
	Tags     map[string]string
	Events   []Event

	client   *Client
	finished bool
}

// SetTag adds a key/value tag. No-op after Finish.
func (s *Span) SetTag(key, value string) {
	if s.finished {
		return
	}
	if s.Tags == nil {
		s.Tags = make(map[string]string)
	}
	s.Tags[key] = value
}

// AddEvent records a timestamped annotation. No-op after Finish.
func (s *Span) AddEvent(name string) {
	if s.finished {
		return
	}
	s.Events = append(s.Events, Event{Time: time.Now(), Name: name})
}

// BaggageItem returns the value of the named baggage item carried by this
// span's trace, or "" if unset.
func (s *Span) BaggageItem(name string) string {
	return s.Context.BaggageItem(baggage.NewField(name).Name())
}

// SetBaggageItem sets a baggage item on this span's context. The field
// must be declared in the process-wide registry; undeclared names are
// silently dropped because they would never propagate anyway. No-op after
// Finish.
func (s *Span) SetBaggageItem(name, value string) {
	if s.finished {
		return
	}
	field := baggage.NewField(name)
	if s.client != nil && !s.client.registry.Has(field.Name()) {
		return
	}
	s.Context = s.Context.WithBaggageItem(field.Name(), value)
}

// Finish completes the span and hands it to the handler chain. Safe to
// call multiple times; only the first call has effect.
func (s *Span) Finish() {
	if s.finished {
		return
	}
	s.finished = true
	s.End = time.Now()
	s.Duration = s.End.Sub(s.Start)

	if s.client != nil {
		s.client.finishSpan(s)
	}
}

// Finished reports whether Finish has been called.
func (s *Span) Finished() bool {
	return s.finished
}
