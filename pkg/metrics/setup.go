package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics hosts the Prometheus registry and the HTTP server exposing it
// for scraping. Each instance owns an isolated registry so that multiple
// traced services in one process cannot collide on metric names.
type Metrics struct {
	Server   *http.Server
	Registry *prometheus.Registry

	serviceName string
}

// NewMetrics creates the registry and exposition server for the given
// configuration. All metrics registered through the returned instance
// carry a constant service label.
func NewMetrics(cfg Config) *Metrics {
	registry := prometheus.NewRegistry()

	wrappedRegistry := prometheus.WrapRegistererWith(prometheus.Labels{"service": cfg.ServiceName}, registry)

	if cfg.EnableDefaultCollectors {
		wrappedRegistry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	address := cfg.Address
	if address == "" {
		address = DefaultMetricsAddress
	}

	server := &http.Server{
		Addr:    address,
		Handler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	}

	return &Metrics{
		Server:      server,
		Registry:    registry,
		serviceName: cfg.ServiceName,
	}
}
