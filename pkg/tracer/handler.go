package tracer

import (
	"sort"

	"github.com/Aleph-Alpha/tracing/pkg/trace"
)

// SpanHandler processes a finished span: enrichment, filtering, or
// export. Handlers run synchronously on the finishing goroutine, in chain
// order, once per span. A handler instance may be invoked concurrently
// for different spans finishing on different goroutines and must be safe
// for that.
//
// HandleEnd returns whether the chain should continue. Returning false
// vetoes the span: no later handler runs and the span never reaches the
// export handler.
type SpanHandler interface {
	HandleEnd(sc trace.SpanContext, span *Span) bool
}

// Noop is a handler that does nothing. Noop handlers are dropped when the
// chain is composed, so registering one has zero runtime cost.
var Noop SpanHandler = noopHandler{}

type noopHandler struct{}

func (noopHandler) HandleEnd(trace.SpanContext, *Span) bool { return true }

// spanExporter is the capability marker for terminal handlers that ship
// spans out of the process. Export handlers sort after all enrichment
// handlers regardless of registration order.
type spanExporter interface {
	ExportsSpans() bool
}

func isExportHandler(h SpanHandler) bool {
	exporter, ok := h.(spanExporter)
	return ok && exporter.ExportsSpans()
}

// SortHandlers orders a handler chain by the two-tier key
// (exports-spans, registration index), ascending. The sort is stable:
// handlers within the same tier keep their registration order. Every
// export handler therefore runs after every non-export handler.
func SortHandlers(handlers []SpanHandler) []SpanHandler {
	sorted := make([]SpanHandler, len(handlers))
	copy(sorted, handlers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return !isExportHandler(sorted[i]) && isExportHandler(sorted[j])
	})
	return sorted
}

// composeHandlers drops noop handlers and sorts the rest into their final
// execution order.
func composeHandlers(handlers []SpanHandler) []SpanHandler {
	kept := make([]SpanHandler, 0, len(handlers))
	for _, h := range handlers {
		if h == nil || h == Noop {
			continue
		}
		kept = append(kept, h)
	}
	return SortHandlers(kept)
}

// Reporter is the external sink contract: it consumes a finished span for
// delivery to a collector. The concrete transport (HTTP, Kafka, ...) is
// outside this library.
type Reporter func(span *Span)

// ReporterHandler is the terminal export handler: it forwards every span
// it sees to the configured Reporter. It carries the export capability
// and therefore always sorts to the end of the chain.
type ReporterHandler struct {
	report Reporter
}

// NewReporterHandler wraps a Reporter sink as an export handler.
func NewReporterHandler(report Reporter) *ReporterHandler {
	return &ReporterHandler{report: report}
}

// HandleEnd forwards the span to the sink.
func (h *ReporterHandler) HandleEnd(_ trace.SpanContext, span *Span) bool {
	if h.report != nil {
		h.report(span)
	}
	return true
}

// ExportsSpans marks this handler as a terminal export sink.
func (h *ReporterHandler) ExportsSpans() bool { return true }
