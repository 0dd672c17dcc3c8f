package metrics

import (
	"context"
	"net/http"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/tracing/pkg/logger"
)

// FXModule defines the Fx module for the metrics package. It provides the
// exposition server plus the reporter-metrics adapter and manages the
// server lifecycle.
//
// Dependencies required from the container: a metrics.Config, a
// metrics.ReporterConfig and a *logger.Logger.
var FXModule = fx.Module("metrics",
	fx.Provide(
		NewMetrics,
		NewReporterMetrics,
	),
	fx.Invoke(RegisterMetricsLifecycle),
)

// RegisterMetricsLifecycle starts the Prometheus exposition server on
// application start and shuts it down gracefully on stop.
func RegisterMetricsLifecycle(lc fx.Lifecycle, m *Metrics, log *logger.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("starting prometheus metrics server", nil, map[string]interface{}{
					"address": m.Server.Addr,
				})

				if err := m.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Error("prometheus metrics server failed", err, nil)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("shutting down prometheus metrics server", nil, nil)
			return m.Server.Shutdown(ctx)
		},
	})
}
