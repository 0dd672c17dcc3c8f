package tracer

import (
	"context"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/tracing/pkg/logger"
)

// FXModule defines the Fx module for the tracer package.
//
// Dependencies required from the container: a tracer.Config and a
// *logger.Logger. A []tracer.Option (via fx.Supply) carrying handlers,
// sampler overrides, and baggage customizers is consumed when present;
// without one the client resolves with defaults.
var FXModule = fx.Module("tracer",
	fx.Provide(
		newClientFromContainer,
	),
	fx.Invoke(RegisterTracerLifecycle),
)

// clientParams declares the container dependencies of the client. The
// options slice is optional so applications without handlers or
// overrides can register the module bare.
type clientParams struct {
	fx.In

	Config  Config
	Log     *logger.Logger
	Options []Option `optional:"true"`
}

func newClientFromContainer(p clientParams) (*Client, error) {
	return NewClient(p.Config, p.Log, p.Options...)
}

// RegisterTracerLifecycle flushes the pipeline counters on shutdown.
func RegisterTracerLifecycle(lc fx.Lifecycle, client *Client) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			client.Flush()
			return nil
		},
	})
}
