// Package tracer creates and finishes spans and runs the span handler
// chain.
//
// The Client is the assembled tracing pipeline: it resolves the baggage
// registry, the propagation codec, the sampler, the reporter metrics
// backend, and the ordered handler chain from one configuration struct,
// once, at startup. All selection precedence lives in the resolution
// functions of the component packages; NewClient only composes them.
//
// Basic usage:
//
//	log := logger.NewLoggerClient(logger.Config{Level: "info"})
//
//	client, err := tracer.NewClient(tracer.Config{
//		ServiceName:        "checkout",
//		ReporterConfigured: true,
//	}, log,
//		tracer.WithSpanHandler(tracer.NewReporterHandler(report)),
//	)
//	if err != nil {
//		log.Fatal("tracing misconfigured", err, nil)
//	}
//
//	ctx, span := client.StartSpan(ctx, "charge-card")
//	defer span.Finish()
//	span.SetTag("payment.method", "card")
//
// Crossing a process boundary:
//
//	carrier := propagation.MapCarrier{}
//	client.Inject(span.Context, carrier)
//	// ... transmit carrier; on the receiving side:
//	ctx, span := client.StartSpan(ctx, "handle-request",
//		tracer.WithRemoteParent(client.Extract(carrier)))
//
// Handler ordering:
//
// Handlers registered via WithSpanHandler are sorted once, stably, by the
// two-tier key (exports-spans, registration index). Handlers that ship
// spans out of the process therefore always run last, and user-supplied
// enrichment handlers always see a span before it is exported, regardless
// of registration order. A handler that panics is isolated: the panic is
// recovered, logged, and counted, and the remaining handlers still run.
//
// Thread safety:
//
// The Client is safe for concurrent use. Spans are owned by the creating
// call until Finish and must not be mutated from multiple goroutines;
// span contexts are immutable values and may be shared freely.
package tracer
