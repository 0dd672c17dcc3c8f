package tracer

import (
	"context"
	"time"

	"github.com/Aleph-Alpha/tracing/pkg/propagation"
	"github.com/Aleph-Alpha/tracing/pkg/trace"
)

// SpanOption customizes span creation.
type SpanOption func(*spanOptions)

type spanOptions struct {
	kind   SpanKind
	tags   map[string]string
	remote *trace.Extraction
}

// WithSpanKind sets the span kind.
func WithSpanKind(kind SpanKind) SpanOption {
	return func(o *spanOptions) {
		o.kind = kind
	}
}

// WithTags sets initial tags on the span.
func WithTags(tags map[string]string) SpanOption {
	return func(o *spanOptions) {
		o.tags = tags
	}
}

// WithRemoteParent continues a trace extracted from a carrier. A valid
// extracted context becomes the parent; a flags-only extraction seeds the
// sampling decision of a new root; an empty extraction is ignored and the
// span starts a new root trace.
func WithRemoteParent(e trace.Extraction) SpanOption {
	return func(o *spanOptions) {
		o.remote = &e
	}
}

// StartSpan creates a new span. If ctx carries a span context (or a
// remote parent is supplied), the new span is its child and inherits the
// trace ID, the sampling decision, and the baggage unchanged. Otherwise a
// root span is created and the sampler decides, exactly once for the
// whole trace.
func (c *Client) StartSpan(ctx context.Context, name string, opts ...SpanOption) (context.Context, *Span) {
	if ctx == nil {
		ctx = context.Background()
	}

	var options spanOptions
	for _, opt := range opts {
		opt(&options)
	}

	parent := trace.SpanContextFromContext(ctx)
	flags := trace.SampledUnknown
	if options.remote != nil {
		if options.remote.Context.IsValid() {
			parent = options.remote.Context
		} else {
			flags = options.remote.Flags
		}
	}

	var sc trace.SpanContext
	if parent.IsValid() {
		sc = parent.NewChild()
	} else {
		sc = c.newRootContext(flags)
	}

	span := &Span{
		Context: sc,
		Name:    name,
		Kind:    options.kind,
		Start:   time.Now(),
		client:  c,
	}
	for k, v := range options.tags {
		span.SetTag(k, v)
	}

	return trace.ContextWithSpanContext(ctx, sc), span
}

// newRootContext creates the context for a new root span. The sampling
// decision is fixed here and never changes for the life of the trace:
// inherited flags win, otherwise the sampler decides.
func (c *Client) newRootContext(flags trace.SampledState) trace.SpanContext {
	traceID := trace.NewTraceID()

	sampled := flags
	if sampled == trace.SampledUnknown {
		if c.sampler.IsSampled(traceID) {
			sampled = trace.Sampled
		} else {
			sampled = trace.NotSampled
		}
	}

	return trace.SpanContext{
		TraceID: traceID,
		SpanID:  trace.NewSpanID(),
		Sampled: sampled,
	}
}

// Inject writes the span context into the carrier using the resolved
// codec.
func (c *Client) Inject(sc trace.SpanContext, carrier propagation.Carrier) {
	c.codec.Inject(sc, carrier)
}

// Extract reads trace context from the carrier using the resolved codec.
// Extraction is fail-soft: a malformed carrier yields an empty extraction
// and the caller starts a new root trace.
func (c *Client) Extract(carrier propagation.Carrier) trace.Extraction {
	return c.codec.Extract(carrier)
}

// Flush logs the in-memory pipeline counters, when the in-memory backend
// is active. Called from the fx lifecycle on shutdown.
func (c *Client) Flush() {
	if m, ok := c.metrics.(interface {
		Spans() int64
		SpansDropped() int64
		HandlerFailures() int64
	}); ok {
		c.log.Info("tracing pipeline counters", nil, map[string]interface{}{
			"spans":            m.Spans(),
			"spans_dropped":    m.SpansDropped(),
			"handler_failures": m.HandlerFailures(),
		})
	}
}
