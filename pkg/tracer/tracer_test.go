package tracer_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Aleph-Alpha/tracing/pkg/baggage"
	"github.com/Aleph-Alpha/tracing/pkg/metrics"
	"github.com/Aleph-Alpha/tracing/pkg/propagation"
	"github.com/Aleph-Alpha/tracing/pkg/sampler"
	"github.com/Aleph-Alpha/tracing/pkg/trace"
	"github.com/Aleph-Alpha/tracing/pkg/tracer"
)

func newTestLogger(t *testing.T) *tracer.MockLogger {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := tracer.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	log.EXPECT().Info(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	log.EXPECT().Error(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	return log
}

func inMemory(t *testing.T, c *tracer.Client) *metrics.InMemoryReporterMetrics {
	t.Helper()
	rm, ok := c.ReporterMetrics().(*metrics.InMemoryReporterMetrics)
	require.True(t, ok, "expected in-memory metrics backend, got %T", c.ReporterMetrics())
	return rm
}

func TestNeverSamplerWhenNoReporterConfigured(t *testing.T) {
	c, err := tracer.NewClient(tracer.Config{ReporterConfigured: false}, newTestLogger(t))
	require.NoError(t, err)

	assert.Equal(t, sampler.Never, c.Sampler())

	_, span := c.StartSpan(context.Background(), "op")
	assert.Equal(t, trace.NotSampled, span.Context.Sampled)
}

func TestRateLimitedSamplerWhenReporterConfigured(t *testing.T) {
	c, err := tracer.NewClient(tracer.Config{ReporterConfigured: true}, newTestLogger(t))
	require.NoError(t, err)

	_, ok := c.Sampler().(*sampler.RateLimiting)
	require.True(t, ok, "expected rate-limiting sampler, got %T", c.Sampler())
}

func TestExplicitSamplerOverrideWins(t *testing.T) {
	override := sampler.NewRateLimiting(1)

	c, err := tracer.NewClient(
		tracer.Config{ReporterConfigured: true, TracesPerSecond: 50},
		newTestLogger(t),
		tracer.WithSampler(override),
	)
	require.NoError(t, err)

	require.Same(t, override, c.Sampler())
}

func TestConflictingSamplerOverridesAreFatal(t *testing.T) {
	_, err := tracer.NewClient(
		tracer.Config{},
		newTestLogger(t),
		tracer.WithSampler(sampler.Always),
		tracer.WithSampler(sampler.Never),
	)

	require.ErrorIs(t, err, tracer.ErrConflictingSamplers)
}

func TestNegativeTracesPerSecondIsFatal(t *testing.T) {
	_, err := tracer.NewClient(tracer.Config{TracesPerSecond: -1}, newTestLogger(t))

	require.Error(t, err)
}

func TestDefaultPropagationFactoryWithoutBaggage(t *testing.T) {
	c, err := tracer.NewClient(tracer.Config{}, newTestLogger(t))
	require.NoError(t, err)

	require.Same(t, propagation.Default, c.PropagationFactory())
}

func TestUserFactoryBuilderWithoutFieldsCollapses(t *testing.T) {
	c, err := tracer.NewClient(
		tracer.Config{},
		newTestLogger(t),
		tracer.WithPropagationFactoryBuilder(propagation.NewFactoryBuilder(propagation.Default)),
	)
	require.NoError(t, err)

	require.Same(t, propagation.Default, c.PropagationFactory())
}

func TestBaggageFieldsFromConfigAndCustomizers(t *testing.T) {
	c, err := tracer.NewClient(
		tracer.Config{Baggage: baggage.Config{LocalFields: "bp"}},
		newTestLogger(t),
		tracer.WithBaggageCustomizer(func(b *baggage.Builder) {
			b.Add(baggage.NewField("country-code"))
		}),
		tracer.WithBaggageCustomizer(func(b *baggage.Builder) {
			b.Add(baggage.NewField("x-vcap-request-id"))
		}),
	)
	require.NoError(t, err)

	assert.ElementsMatch(t,
		[]string{"bp", "country-code", "x-vcap-request-id"},
		c.BaggageRegistry().Names(),
	)

	// The declared set is visible in an extraction from an untouched
	// carrier.
	extraction := c.Extract(propagation.MapCarrier{})
	assert.ElementsMatch(t,
		[]string{"bp", "country-code", "x-vcap-request-id"},
		extraction.Fields,
	)
	assert.False(t, extraction.Context.IsValid())
}

func TestRootSpanSamplingDecisionIsFixedAndInherited(t *testing.T) {
	c, err := tracer.NewClient(tracer.Config{}, newTestLogger(t), tracer.WithSampler(sampler.Always))
	require.NoError(t, err)

	ctx, root := c.StartSpan(context.Background(), "root")
	_, child := c.StartSpan(ctx, "child")

	assert.Equal(t, trace.Sampled, root.Context.Sampled)
	assert.Equal(t, root.Context.TraceID, child.Context.TraceID)
	assert.Equal(t, root.Context.SpanID, child.Context.ParentID)
	assert.Equal(t, trace.Sampled, child.Context.Sampled)
}

func TestRemoteParentContinuesTrace(t *testing.T) {
	c, err := tracer.NewClient(tracer.Config{}, newTestLogger(t), tracer.WithSampler(sampler.Always))
	require.NoError(t, err)

	_, upstream := c.StartSpan(context.Background(), "upstream")
	carrier := propagation.MapCarrier{}
	c.Inject(upstream.Context, carrier)

	_, downstream := c.StartSpan(context.Background(), "downstream",
		tracer.WithRemoteParent(c.Extract(carrier)))

	assert.Equal(t, upstream.Context.TraceID, downstream.Context.TraceID)
	assert.Equal(t, upstream.Context.SpanID, downstream.Context.ParentID)
	assert.Equal(t, trace.Sampled, downstream.Context.Sampled)
}

func TestRemoteFlagsSeedRootDecision(t *testing.T) {
	// Upstream decided not to sample; the local sampler must not
	// re-decide, even when it would say yes.
	c, err := tracer.NewClient(tracer.Config{}, newTestLogger(t), tracer.WithSampler(sampler.Always))
	require.NoError(t, err)

	extraction := c.Extract(propagation.MapCarrier{"b3": "0"})
	_, span := c.StartSpan(context.Background(), "op", tracer.WithRemoteParent(extraction))

	assert.Equal(t, trace.NotSampled, span.Context.Sampled)
}

func TestMalformedCarrierStartsNewRootTrace(t *testing.T) {
	c, err := tracer.NewClient(tracer.Config{}, newTestLogger(t), tracer.WithSampler(sampler.Always))
	require.NoError(t, err)

	extraction := c.Extract(propagation.MapCarrier{"b3": "garbage"})
	require.True(t, extraction.Empty())

	_, span := c.StartSpan(context.Background(), "op", tracer.WithRemoteParent(extraction))

	assert.True(t, span.Context.IsValid())
	assert.Equal(t, trace.Sampled, span.Context.Sampled)
}

func TestEnrichmentHandlersRunBeforeExportRegardlessOfRegistration(t *testing.T) {
	var order []string
	export := &recordingExportHandler{recordingHandler{name: "export", order: &order}}
	enrich := &recordingHandler{name: "enrich", order: &order}

	// Export handler registered first; it must still run last.
	c, err := tracer.NewClient(
		tracer.Config{},
		newTestLogger(t),
		tracer.WithSampler(sampler.Always),
		tracer.WithSpanHandler(export),
		tracer.WithSpanHandler(enrich),
	)
	require.NoError(t, err)

	_, span := c.StartSpan(context.Background(), "op")
	span.Finish()

	assert.Equal(t, []string{"enrich", "export"}, order)
	assert.Equal(t, int64(1), inMemory(t, c).Spans())
}

func TestVetoStopsChainAndCountsDrop(t *testing.T) {
	var order []string
	veto := &recordingHandler{name: "veto", order: &order, vetoes: true}
	export := &recordingExportHandler{recordingHandler{name: "export", order: &order}}

	c, err := tracer.NewClient(
		tracer.Config{},
		newTestLogger(t),
		tracer.WithSampler(sampler.Always),
		tracer.WithSpanHandler(veto),
		tracer.WithSpanHandler(export),
	)
	require.NoError(t, err)

	_, span := c.StartSpan(context.Background(), "op")
	span.Finish()

	assert.Equal(t, []string{"veto"}, order)
	assert.Equal(t, int64(0), inMemory(t, c).Spans())
	assert.Equal(t, int64(1), inMemory(t, c).SpansDropped())
}

func TestPanickingHandlerIsIsolated(t *testing.T) {
	var order []string
	exploding := &recordingHandler{name: "exploding", order: &order, panicked: true}
	export := &recordingExportHandler{recordingHandler{name: "export", order: &order}}

	c, err := tracer.NewClient(
		tracer.Config{},
		newTestLogger(t),
		tracer.WithSampler(sampler.Always),
		tracer.WithSpanHandler(exploding),
		tracer.WithSpanHandler(export),
	)
	require.NoError(t, err)

	_, span := c.StartSpan(context.Background(), "op")
	span.Finish()

	// The failure neither stopped the export handler nor dropped the span.
	assert.Equal(t, []string{"exploding", "export"}, order)
	assert.Equal(t, int64(1), inMemory(t, c).Spans())
	assert.Equal(t, int64(1), inMemory(t, c).HandlerFailures())
	assert.Equal(t, int64(0), inMemory(t, c).SpansDropped())
}

func TestNotSampledSpanSkipsHandlersAndCountsDrop(t *testing.T) {
	var order []string
	export := &recordingExportHandler{recordingHandler{name: "export", order: &order}}

	c, err := tracer.NewClient(
		tracer.Config{ReporterConfigured: false},
		newTestLogger(t),
		tracer.WithSpanHandler(export),
	)
	require.NoError(t, err)

	_, span := c.StartSpan(context.Background(), "op")
	span.Finish()

	assert.Empty(t, order)
	assert.Equal(t, int64(1), inMemory(t, c).SpansDropped())
}

func TestFinishIsIdempotent(t *testing.T) {
	var order []string
	export := &recordingExportHandler{recordingHandler{name: "export", order: &order}}

	c, err := tracer.NewClient(
		tracer.Config{},
		newTestLogger(t),
		tracer.WithSampler(sampler.Always),
		tracer.WithSpanHandler(export),
	)
	require.NoError(t, err)

	_, span := c.StartSpan(context.Background(), "op")
	span.Finish()
	span.Finish()

	assert.Equal(t, []string{"export"}, order)
	assert.Equal(t, int64(1), inMemory(t, c).Spans())
}

func TestNoopHandlersAreDroppedFromChain(t *testing.T) {
	c, err := tracer.NewClient(
		tracer.Config{},
		newTestLogger(t),
		tracer.WithSampler(sampler.Always),
		tracer.WithSpanHandler(tracer.Noop),
	)
	require.NoError(t, err)

	_, span := c.StartSpan(context.Background(), "op")
	span.Finish()

	assert.Equal(t, int64(1), inMemory(t, c).Spans())
}

func TestSetBaggageItemRequiresDeclaredField(t *testing.T) {
	c, err := tracer.NewClient(
		tracer.Config{Baggage: baggage.Config{LocalFields: "bp"}},
		newTestLogger(t),
		tracer.WithSampler(sampler.Always),
	)
	require.NoError(t, err)

	_, span := c.StartSpan(context.Background(), "op")
	span.SetBaggageItem("BP", "42")
	span.SetBaggageItem("undeclared", "x")

	assert.Equal(t, "42", span.BaggageItem("bp"))
	assert.Equal(t, "", span.BaggageItem("undeclared"))
}

func TestStartSpanAppliesKindAndTags(t *testing.T) {
	c, err := tracer.NewClient(tracer.Config{}, newTestLogger(t), tracer.WithSampler(sampler.Always))
	require.NoError(t, err)

	_, span := c.StartSpan(context.Background(), "op",
		tracer.WithSpanKind(tracer.SpanKindServer),
		tracer.WithTags(map[string]string{"http.method": "GET"}),
	)

	assert.Equal(t, tracer.SpanKindServer, span.Kind)
	assert.Equal(t, "GET", span.Tags["http.method"])
}

func TestSpanMutationAfterFinishIsNoop(t *testing.T) {
	c, err := tracer.NewClient(tracer.Config{}, newTestLogger(t), tracer.WithSampler(sampler.Always))
	require.NoError(t, err)

	_, span := c.StartSpan(context.Background(), "op")
	span.Finish()

	span.SetTag("late", "true")
	span.AddEvent("late")

	assert.NotContains(t, span.Tags, "late")
	assert.Empty(t, span.Events)
}

func TestPrometheusBackedMetricsSelection(t *testing.T) {
	m := metrics.NewMetrics(metrics.Config{ServiceName: "checkout"})

	c, err := tracer.NewClient(
		tracer.Config{MetricsEnabled: true, ServiceName: "checkout"},
		newTestLogger(t),
		tracer.WithMetricsRegistry(m.Registry),
	)
	require.NoError(t, err)

	_, ok := c.ReporterMetrics().(*metrics.PrometheusReporterMetrics)
	require.True(t, ok, "expected prometheus backend, got %T", c.ReporterMetrics())
}

func TestInMemoryMetricsWhenRegistryAbsent(t *testing.T) {
	c, err := tracer.NewClient(tracer.Config{MetricsEnabled: true}, newTestLogger(t))
	require.NoError(t, err)

	_, ok := c.ReporterMetrics().(*metrics.InMemoryReporterMetrics)
	require.True(t, ok)
}
