package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aleph-Alpha/tracing/pkg/metrics"
)

func TestReporterMetricsUsesPrometheusWhenRegistrySupplied(t *testing.T) {
	rm := metrics.NewReporterMetrics(metrics.ReporterConfig{
		Enabled:     true,
		Registry:    prometheus.NewRegistry(),
		ServiceName: "checkout",
	})

	_, ok := rm.(*metrics.PrometheusReporterMetrics)
	require.True(t, ok, "expected prometheus backend, got %T", rm)
}

func TestReporterMetricsFallsBackWhenDisabled(t *testing.T) {
	// Prometheus support absent from the deployment entirely.
	rm := metrics.NewReporterMetrics(metrics.ReporterConfig{
		Enabled:  false,
		Registry: prometheus.NewRegistry(),
	})

	_, ok := rm.(*metrics.InMemoryReporterMetrics)
	require.True(t, ok, "expected in-memory backend, got %T", rm)
}

func TestReporterMetricsFallsBackWhenRegistryMissing(t *testing.T) {
	// Prometheus support available but no registry instance supplied.
	rm := metrics.NewReporterMetrics(metrics.ReporterConfig{Enabled: true})

	_, ok := rm.(*metrics.InMemoryReporterMetrics)
	require.True(t, ok, "expected in-memory backend, got %T", rm)
}

func TestInMemoryReporterMetricsCounts(t *testing.T) {
	rm := metrics.NewInMemoryReporterMetrics()

	rm.IncrementSpans(2)
	rm.IncrementSpans(1)
	rm.IncrementSpansDropped(5)
	rm.IncrementHandlerFailures(1)

	assert.Equal(t, int64(3), rm.Spans())
	assert.Equal(t, int64(5), rm.SpansDropped())
	assert.Equal(t, int64(1), rm.HandlerFailures())
}

func TestPrometheusReporterMetricsBindsCounters(t *testing.T) {
	registry := prometheus.NewRegistry()

	rm := metrics.NewReporterMetrics(metrics.ReporterConfig{
		Enabled:     true,
		Registry:    registry,
		ServiceName: "checkout",
	})

	rm.IncrementSpans(3)
	rm.IncrementSpansDropped(2)
	rm.IncrementHandlerFailures(1)

	families, err := registry.Gather()
	require.NoError(t, err)

	byName := map[string]float64{}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			byName[mf.GetName()] = m.GetCounter().GetValue()
		}
	}

	assert.Equal(t, 3.0, byName["tracing_spans_total"])
	assert.Equal(t, 2.0, byName["tracing_spans_dropped_total"])
	assert.Equal(t, 1.0, byName["tracing_handler_failures_total"])
}

func TestNewMetricsExposesIsolatedRegistry(t *testing.T) {
	m := metrics.NewMetrics(metrics.Config{
		ServiceName:             "checkout",
		EnableDefaultCollectors: false,
	})

	require.NotNil(t, m.Registry)
	assert.Equal(t, metrics.DefaultMetricsAddress, m.Server.Addr)

	// A fresh registry without default collectors gathers nothing.
	count, err := testutil.GatherAndCount(m.Registry)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
