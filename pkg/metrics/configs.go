package metrics

import "github.com/prometheus/client_golang/prometheus"

// DefaultMetricsAddress is used for the exposition server when no address
// is configured.
const DefaultMetricsAddress = ":9090"

// Config defines the configuration for the Prometheus exposition server.
type Config struct {
	// Address is the network address the metrics HTTP server listens on,
	// e.g. ":9090" or "127.0.0.1:9100".
	//
	// Default: ":9090"
	Address string `yaml:"address" envconfig:"TRACING_METRICS_ADDRESS"`

	// EnableDefaultCollectors controls whether the built-in Go runtime
	// and process collectors are registered automatically.
	//
	// Default: true
	EnableDefaultCollectors bool `yaml:"enable_default_collectors" envconfig:"TRACING_METRICS_ENABLE_DEFAULT_COLLECTORS"`

	// ServiceName is attached as a constant "service" label to every
	// metric registered through this package.
	ServiceName string `yaml:"service_name" envconfig:"TRACING_METRICS_SERVICE_NAME"`
}

// ReporterConfig carries the resolved inputs for reporter-metrics backend
// selection. The choice is capability detection made once at startup:
// the Prometheus-backed adapter requires both Enabled and a non-nil
// Registry; every other combination falls back to the in-memory adapter.
type ReporterConfig struct {
	// Enabled reports whether Prometheus support is available in this
	// deployment at all.
	Enabled bool `yaml:"enabled" envconfig:"TRACING_METRICS_ENABLED"`

	// Registry is the registry instance to bind counters into. May be nil
	// even when Enabled is true, e.g. when the embedding application does
	// not expose one.
	Registry *prometheus.Registry

	// ServiceName labels the bound counters.
	ServiceName string `yaml:"service_name" envconfig:"TRACING_METRICS_SERVICE_NAME"`
}
