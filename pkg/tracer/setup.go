package tracer

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Aleph-Alpha/tracing/pkg/baggage"
	"github.com/Aleph-Alpha/tracing/pkg/metrics"
	"github.com/Aleph-Alpha/tracing/pkg/propagation"
	"github.com/Aleph-Alpha/tracing/pkg/sampler"
	"github.com/Aleph-Alpha/tracing/pkg/trace"
)

// Logger defines the interface for logging operations in the tracer
// package. This interface allows the package to use any logging
// implementation that conforms to these methods.
//
//go:generate mockgen -source=setup.go -destination=mock_logger.go -package=tracer
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
	Fatal(msg string, err error, fields ...map[string]interface{})
}

// ErrConflictingSamplers is returned when more than one sampler override
// is supplied. The precedence rules cannot arbitrate between two
// explicit overrides, so this is fatal at startup.
var ErrConflictingSamplers = errors.New("tracer: conflicting sampler overrides supplied")

// Client is the assembled tracing pipeline. It is immutable after
// NewClient and safe for concurrent use.
type Client struct {
	cfg      Config
	log      Logger
	registry *baggage.Registry
	factory  propagation.Factory
	codec    propagation.Propagation
	sampler  sampler.Sampler
	handlers []SpanHandler
	metrics  metrics.ReporterMetrics
}

type clientOptions struct {
	samplers           []sampler.Sampler
	customizers        []baggage.Customizer
	factoryBuilder     *propagation.FactoryBuilder
	handlers           []SpanHandler
	prometheusRegistry *prometheus.Registry
}

// Option customizes client resolution.
type Option func(*clientOptions)

// WithSampler supplies an explicit sampler override. It wins
// unconditionally over the reporter-driven defaults. Supplying two
// overrides is a configuration error.
func WithSampler(s sampler.Sampler) Option {
	return func(o *clientOptions) {
		o.samplers = append(o.samplers, s)
	}
}

// WithBaggageCustomizer contributes baggage fields to the process-wide
// registry before it is frozen.
func WithBaggageCustomizer(c baggage.Customizer) Option {
	return func(o *clientOptions) {
		o.customizers = append(o.customizers, c)
	}
}

// WithPropagationFactoryBuilder replaces the default propagation factory
// builder. The configured baggage fields are still added to it; a builder
// that ends up with zero fields collapses to its delegate factory.
func WithPropagationFactoryBuilder(b *propagation.FactoryBuilder) Option {
	return func(o *clientOptions) {
		o.factoryBuilder = b
	}
}

// WithSpanHandler registers a handler on the finish chain. Handlers are
// sorted once at construction: export handlers last, ties broken by
// registration order.
func WithSpanHandler(h SpanHandler) Option {
	return func(o *clientOptions) {
		o.handlers = append(o.handlers, h)
	}
}

// WithMetricsRegistry supplies the Prometheus registry instance for the
// reporter metrics backend. It only takes effect when
// Config.MetricsEnabled is true.
func WithMetricsRegistry(r *prometheus.Registry) Option {
	return func(o *clientOptions) {
		o.prometheusRegistry = r
	}
}

// NewClient resolves every component of the tracing pipeline from the
// configuration, once, before any trace begins. Misconfiguration is
// returned as an error here and never surfaces later on the hot path.
//
// Resolution order:
//  1. Baggage registry: local fields merged with customizer fields,
//     then frozen.
//  2. Propagation factory: registry fields added to the (default or
//     supplied) builder; zero fields collapse to the canonical factory.
//  3. Sampler: resolved through sampler.New, the single shared decision
//     function (override > reporter-present > reporter-absent).
//  4. Reporter metrics: Prometheus-backed when enabled and a registry is
//     present, in-memory otherwise.
//  5. Handler chain: noops dropped, stable-sorted with export handlers
//     last.
func NewClient(cfg Config, log Logger, opts ...Option) (*Client, error) {
	var options clientOptions
	for _, opt := range opts {
		opt(&options)
	}

	if len(options.samplers) > 1 {
		return nil, ErrConflictingSamplers
	}
	if cfg.TracesPerSecond < 0 {
		return nil, fmt.Errorf("tracer: traces per second must not be negative, got %d", cfg.TracesPerSecond)
	}

	registry := baggage.NewRegistry(cfg.Baggage, options.customizers...)

	factoryBuilder := options.factoryBuilder
	if factoryBuilder == nil {
		factoryBuilder = propagation.NewFactoryBuilder(propagation.Default)
	}
	factory := factoryBuilder.AddAll(registry).Build()

	var override sampler.Sampler
	if len(options.samplers) == 1 {
		override = options.samplers[0]
	}
	smp := sampler.New(sampler.Config{
		Override:           override,
		ReporterConfigured: cfg.ReporterConfigured,
		TracesPerSecond:    cfg.TracesPerSecond,
	})

	reporterMetrics := metrics.NewReporterMetrics(metrics.ReporterConfig{
		Enabled:     cfg.MetricsEnabled,
		Registry:    options.prometheusRegistry,
		ServiceName: cfg.ServiceName,
	})

	handlers := composeHandlers(options.handlers)

	log.Info("tracing pipeline resolved", nil, map[string]interface{}{
		"service":         cfg.ServiceName,
		"baggage_fields":  registry.Len(),
		"span_handlers":   len(handlers),
		"reporter":        cfg.ReporterConfigured,
		"metrics_enabled": cfg.MetricsEnabled,
	})

	return &Client{
		cfg:      cfg,
		log:      log,
		registry: registry,
		factory:  factory,
		codec:    factory.Create(),
		sampler:  smp,
		handlers: handlers,
		metrics:  reporterMetrics,
	}, nil
}

// Sampler returns the resolved sampler.
func (c *Client) Sampler() sampler.Sampler {
	return c.sampler
}

// PropagationFactory returns the resolved propagation factory.
func (c *Client) PropagationFactory() propagation.Factory {
	return c.factory
}

// Propagation returns the codec created from the resolved factory.
func (c *Client) Propagation() propagation.Propagation {
	return c.codec
}

// BaggageRegistry returns the frozen baggage registry.
func (c *Client) BaggageRegistry() *baggage.Registry {
	return c.registry
}

// ReporterMetrics returns the resolved metrics backend.
func (c *Client) ReporterMetrics() metrics.ReporterMetrics {
	return c.metrics
}

// finishSpan routes a finished span through the handler chain and counts
// the outcome. Runs on the finishing goroutine.
func (c *Client) finishSpan(span *Span) {
	if span.Context.Sampled != trace.Sampled {
		c.metrics.IncrementSpansDropped(1)
		return
	}

	for _, h := range c.handlers {
		cont, failed := c.safeHandle(h, span)
		if failed {
			continue
		}
		if !cont {
			c.metrics.IncrementSpansDropped(1)
			return
		}
	}
	c.metrics.IncrementSpans(1)
}

// safeHandle isolates one handler invocation. A panic is recovered,
// logged and counted; it neither drops the span nor stops the chain.
func (c *Client) safeHandle(h SpanHandler, span *Span) (cont, failed bool) {
	defer func() {
		if r := recover(); r != nil {
			failed = true
			c.metrics.IncrementHandlerFailures(1)
			c.log.Error("span handler panicked", fmt.Errorf("%v", r), map[string]interface{}{
				"span":  span.Name,
				"trace": span.Context.TraceID.String(),
			})
		}
	}()
	return h.HandleEnd(span.Context, span), false
}
