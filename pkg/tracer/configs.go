package tracer

import "github.com/Aleph-Alpha/tracing/pkg/baggage"

// Config carries the resolved configuration consumed by the tracing
// core. Parsing of the raw configuration source is owned by the
// embedding application; every value here is already resolved.
type Config struct {
	// ServiceName names this process in logs and metric labels.
	ServiceName string `yaml:"service_name" envconfig:"TRACING_SERVICE_NAME"`

	// Baggage declares the locally configured baggage fields.
	Baggage baggage.Config `yaml:"baggage"`

	// ReporterConfigured reports whether a span reporter is wired up.
	// It drives the sampler default: rate-limited when true, never when
	// false.
	ReporterConfigured bool `yaml:"reporter_configured" envconfig:"TRACING_REPORTER_CONFIGURED"`

	// TracesPerSecond bounds the rate-limited default sampler. Zero means
	// the sampler package default; negative values are a configuration
	// error.
	TracesPerSecond int `yaml:"traces_per_second" envconfig:"TRACING_TRACES_PER_SECOND"`

	// MetricsEnabled reports whether Prometheus support is available in
	// this deployment. Counters bind into a registry only when this is
	// true and a registry is supplied via WithMetricsRegistry.
	MetricsEnabled bool `yaml:"metrics_enabled" envconfig:"TRACING_METRICS_ENABLED"`
}
