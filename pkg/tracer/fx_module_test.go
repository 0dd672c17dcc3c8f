package tracer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/tracing/pkg/logger"
	"github.com/Aleph-Alpha/tracing/pkg/sampler"
	"github.com/Aleph-Alpha/tracing/pkg/tracer"
)

func TestFXModuleResolvesWithoutOptions(t *testing.T) {
	app := fx.New(
		fx.NopLogger,
		fx.Supply(tracer.Config{ServiceName: "checkout"}),
		fx.Supply(logger.NewLoggerClient(logger.Config{ServiceName: "checkout"})),
		tracer.FXModule,
	)

	require.NoError(t, app.Err())
}

func TestFXModuleConsumesSuppliedOptions(t *testing.T) {
	var client *tracer.Client

	app := fx.New(
		fx.NopLogger,
		fx.Supply(tracer.Config{ServiceName: "checkout"}),
		fx.Supply(logger.NewLoggerClient(logger.Config{ServiceName: "checkout"})),
		fx.Supply([]tracer.Option{tracer.WithSampler(sampler.Always)}),
		tracer.FXModule,
		fx.Populate(&client),
	)

	require.NoError(t, app.Err())
	require.NotNil(t, client)
	assert.Equal(t, sampler.Always, client.Sampler())
}
