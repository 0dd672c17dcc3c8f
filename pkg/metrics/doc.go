// Package metrics counts the outcomes of the span pipeline and optionally
// exposes them for scraping.
//
// The tracer core only depends on the narrow ReporterMetrics interface:
// accepted spans, dropped spans, and handler failures. Two interchangeable
// backends implement it:
//
//   - a Prometheus-backed adapter, chosen when metrics support is enabled
//     and a registry instance is supplied, whose counters live alongside
//     the rest of the process metrics;
//   - an in-memory adapter of plain atomic counters, chosen otherwise,
//     queryable in-process only and lost on restart.
//
// Backend selection happens exactly once, at startup, in
// NewReporterMetrics. Callers never see which backend they got.
//
// The package also hosts the Prometheus registry and exposition server
// for applications that want one:
//
//	m := metrics.NewMetrics(metrics.Config{
//	    Address:     ":9090",
//	    ServiceName: "checkout",
//	})
//	go m.Server.ListenAndServe()
//
//	rm := metrics.NewReporterMetrics(metrics.ReporterConfig{
//	    Enabled:     true,
//	    Registry:    m.Registry,
//	    ServiceName: "checkout",
//	})
package metrics
