package baggage

import "strings"

// Field is a single declared baggage field. Names are case-insensitive;
// a Field always carries the lowercase-normalized form.
type Field struct {
	name string
}

// NewField creates a field with the given name. The name is trimmed and
// lowercased; two fields created from "Country-Code" and "country-code"
// are equal.
func NewField(name string) Field {
	return Field{name: strings.ToLower(strings.TrimSpace(name))}
}

// Name returns the normalized field name.
func (f Field) Name() string {
	return f.name
}

// Builder accumulates baggage fields before the registry is frozen. The
// zero value is ready to use. Builder is not safe for concurrent use; it
// exists only during single-threaded startup.
type Builder struct {
	fields []Field
	seen   map[string]struct{}
}

// Add declares a field. Adding a field whose normalized name is already
// declared is a no-op, so customizers may declare overlapping sets freely.
func (b *Builder) Add(f Field) *Builder {
	if f.name == "" {
		return b
	}
	if b.seen == nil {
		b.seen = make(map[string]struct{})
	}
	if _, ok := b.seen[f.name]; ok {
		return b
	}
	b.seen[f.name] = struct{}{}
	b.fields = append(b.fields, f)
	return b
}

// Fields returns the fields declared so far, in declaration order.
func (b *Builder) Fields() []Field {
	out := make([]Field, len(b.fields))
	copy(out, b.fields)
	return out
}

// Len returns the number of fields declared so far.
func (b *Builder) Len() int {
	return len(b.fields)
}

// Customizer mutates the shared builder before it is finalized. Components
// that need extra fields propagated contribute one of these at startup.
type Customizer func(*Builder)

// Registry is the frozen, process-wide set of propagated baggage fields.
// It is immutable after construction and safe for concurrent reads.
type Registry struct {
	fields []Field
	byName map[string]struct{}
}

// NewRegistry merges the configured local field names with the fields
// contributed by the customizers and freezes the result. Finalization is
// one-way: the returned registry cannot grow or shrink.
//
// Merge order is customizers first (in the order given), then local
// fields; duplicates collapse to the first declaration.
func NewRegistry(cfg Config, customizers ...Customizer) *Registry {
	var b Builder
	for _, customize := range customizers {
		if customize != nil {
			customize(&b)
		}
	}
	for _, name := range strings.Split(cfg.LocalFields, ",") {
		b.Add(NewField(name))
	}

	byName := make(map[string]struct{}, len(b.fields))
	for _, f := range b.fields {
		byName[f.name] = struct{}{}
	}
	return &Registry{fields: b.fields, byName: byName}
}

// Fields returns the declared fields in declaration order. The returned
// slice is a copy; callers may not grow the registry through it.
func (r *Registry) Fields() []Field {
	out := make([]Field, len(r.fields))
	copy(out, r.fields)
	return out
}

// Names returns the normalized names of all declared fields in
// declaration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.fields))
	for i, f := range r.fields {
		out[i] = f.name
	}
	return out
}

// Has reports whether the named field is declared. The name is normalized
// before lookup.
func (r *Registry) Has(name string) bool {
	_, ok := r.byName[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// Len returns the number of declared fields.
func (r *Registry) Len() int {
	return len(r.fields)
}
