package metrics

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
)

// ReporterMetrics is the narrow counting interface the span pipeline
// reports its outcomes through. Implementations must be safe for
// concurrent use; every span finish on every goroutine goes through one
// of these methods.
type ReporterMetrics interface {
	// IncrementSpans counts spans accepted by the pipeline and handed to
	// the export handler.
	IncrementSpans(quantity int)

	// IncrementSpansDropped counts spans that will never reach the
	// collector: not sampled, vetoed by a handler, or discarded.
	IncrementSpansDropped(quantity int)

	// IncrementHandlerFailures counts span handlers that panicked during
	// span finish. A failure is isolated, never fatal to the span.
	IncrementHandlerFailures(quantity int)
}

// NewReporterMetrics selects the metrics backend once, at startup. The
// Prometheus-backed adapter is returned only when cfg.Enabled is true and
// a registry instance is present; otherwise the in-memory adapter is
// used. The caller-facing interface is identical either way.
func NewReporterMetrics(cfg ReporterConfig) ReporterMetrics {
	if cfg.Enabled && cfg.Registry != nil {
		return newPrometheusReporterMetrics(cfg)
	}
	return NewInMemoryReporterMetrics()
}

// InMemoryReporterMetrics counts outcomes in plain atomic counters. The
// values are volatile: queryable in-process, lost on restart.
type InMemoryReporterMetrics struct {
	spans           atomic.Int64
	spansDropped    atomic.Int64
	handlerFailures atomic.Int64
}

// NewInMemoryReporterMetrics creates a zeroed in-memory adapter.
func NewInMemoryReporterMetrics() *InMemoryReporterMetrics {
	return &InMemoryReporterMetrics{}
}

// IncrementSpans adds quantity to the accepted-span counter.
func (m *InMemoryReporterMetrics) IncrementSpans(quantity int) {
	m.spans.Add(int64(quantity))
}

// IncrementSpansDropped adds quantity to the dropped-span counter.
func (m *InMemoryReporterMetrics) IncrementSpansDropped(quantity int) {
	m.spansDropped.Add(int64(quantity))
}

// IncrementHandlerFailures adds quantity to the handler-failure counter.
func (m *InMemoryReporterMetrics) IncrementHandlerFailures(quantity int) {
	m.handlerFailures.Add(int64(quantity))
}

// Spans returns the number of accepted spans.
func (m *InMemoryReporterMetrics) Spans() int64 {
	return m.spans.Load()
}

// SpansDropped returns the number of dropped spans.
func (m *InMemoryReporterMetrics) SpansDropped() int64 {
	return m.spansDropped.Load()
}

// HandlerFailures returns the number of handler failures.
func (m *InMemoryReporterMetrics) HandlerFailures() int64 {
	return m.handlerFailures.Load()
}

// PrometheusReporterMetrics binds the pipeline counters into an external
// Prometheus registry so they are exported alongside the rest of the
// process metrics.
type PrometheusReporterMetrics struct {
	spans           prometheus.Counter
	spansDropped    prometheus.Counter
	handlerFailures prometheus.Counter
}

func newPrometheusReporterMetrics(cfg ReporterConfig) *PrometheusReporterMetrics {
	registerer := prometheus.WrapRegistererWith(
		prometheus.Labels{"service": cfg.ServiceName},
		cfg.Registry,
	)

	m := &PrometheusReporterMetrics{
		spans:           createCounter("tracing_spans_total", "Total number of spans accepted for export"),
		spansDropped:    createCounter("tracing_spans_dropped_total", "Total number of spans dropped before export"),
		handlerFailures: createCounter("tracing_handler_failures_total", "Total number of span handler failures"),
	}

	registerer.MustRegister(m.spans, m.spansDropped, m.handlerFailures)
	return m
}

// IncrementSpans adds quantity to the accepted-span counter.
func (m *PrometheusReporterMetrics) IncrementSpans(quantity int) {
	m.spans.Add(float64(quantity))
}

// IncrementSpansDropped adds quantity to the dropped-span counter.
func (m *PrometheusReporterMetrics) IncrementSpansDropped(quantity int) {
	m.spansDropped.Add(float64(quantity))
}

// IncrementHandlerFailures adds quantity to the handler-failure counter.
func (m *PrometheusReporterMetrics) IncrementHandlerFailures(quantity int) {
	m.handlerFailures.Add(float64(quantity))
}
