package propagation

import (
	"github.com/Aleph-Alpha/tracing/pkg/baggage"
	"github.com/Aleph-Alpha/tracing/pkg/trace"
)

// FactoryBuilder assembles a Factory that propagates a fixed set of
// baggage fields on top of a delegate codec. The builder is mutable until
// Build is called; the produced factory is frozen.
type FactoryBuilder struct {
	delegate Factory
	fields   baggage.Builder
}

// NewFactoryBuilder returns a builder wrapping the given delegate
// factory. A nil delegate means Default.
func NewFactoryBuilder(delegate Factory) *FactoryBuilder {
	if delegate == nil {
		delegate = Default
	}
	return &FactoryBuilder{delegate: delegate}
}

// Add declares a baggage field to propagate. Duplicate names collapse.
func (b *FactoryBuilder) Add(f baggage.Field) *FactoryBuilder {
	b.fields.Add(f)
	return b
}

// AddAll declares every field of the registry.
func (b *FactoryBuilder) AddAll(reg *baggage.Registry) *FactoryBuilder {
	for _, f := range reg.Fields() {
		b.fields.Add(f)
	}
	return b
}

// Build finalizes the builder. When no baggage fields were added the
// delegate is returned as-is, so the no-baggage case collapses to the
// canonical factory instead of paying for an empty wrapper.
func (b *FactoryBuilder) Build() Factory {
	if b.fields.Len() == 0 {
		return b.delegate
	}
	fields := b.fields.Fields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name()
	}
	return &baggageFactory{delegate: b.delegate, names: names}
}

type baggageFactory struct {
	delegate Factory
	names    []string
}

func (f *baggageFactory) Create() Propagation {
	return &baggagePropagation{
		delegate: f.delegate.Create(),
		names:    f.names,
	}
}

type baggagePropagation struct {
	delegate Propagation
	names    []string
}

func (p *baggagePropagation) Fields() []string {
	fields := append([]string(nil), p.delegate.Fields()...)
	for _, name := range p.names {
		fields = append(fields, BaggagePrefix+name)
	}
	return fields
}

func (p *baggagePropagation) Inject(sc trace.SpanContext, carrier Carrier) {
	if !sc.IsValid() {
		return
	}
	p.delegate.Inject(sc, carrier)
	for _, name := range p.names {
		if value := sc.BaggageItem(name); value != "" {
			carrier.Set(BaggagePrefix+name, value)
		}
	}
}

func (p *baggagePropagation) Extract(carrier Carrier) trace.Extraction {
	extraction := p.delegate.Extract(carrier)

	// The declared field set is reported even for an empty carrier; the
	// registry is the single source of truth for what may propagate.
	extraction.Fields = append([]string(nil), p.names...)

	if !extraction.Context.IsValid() {
		return extraction
	}
	for _, name := range p.names {
		if value := carrier.Get(BaggagePrefix + name); value != "" {
			extraction.Context = extraction.Context.WithBaggageItem(name, value)
		}
	}
	return extraction
}
