// Package baggage declares which named fields are propagated as
// trace-scoped key/value baggage.
//
// The set of propagated field names is decided exactly once, at process
// start. Names come from two sources that are merged by set union:
//
//  1. The LocalFields configuration property, a comma-separated list of
//     names resolved by the embedding application.
//  2. Customizer functions contributed by other components, each of which
//     may add fields to the shared builder before it is finalized.
//
// Field names are case-insensitive; uniqueness is by lowercase-normalized
// name and duplicate declarations collapse to one field. After
// NewRegistry returns, the registry is frozen: no field can be added or
// removed for the remaining lifetime of the process, so reads need no
// synchronization.
//
// Example:
//
//	reg := baggage.NewRegistry(
//	    baggage.Config{LocalFields: "bp"},
//	    func(b *baggage.Builder) {
//	        b.Add(baggage.NewField("country-code"))
//	    },
//	)
//	reg.Has("BP") // true
package baggage
