package baggage

// Config carries the configuration-time baggage declarations. Parsing of
// the raw configuration source (yaml file, environment) is owned by the
// embedding application; this package only consumes the resolved values.
type Config struct {
	// LocalFields is a comma-separated list of baggage field names to
	// propagate, e.g. "bp" or "country-code,x-vcap-request-id".
	// Whitespace around names is ignored, empty entries are skipped.
	LocalFields string `yaml:"local_fields" envconfig:"TRACING_BAGGAGE_LOCAL_FIELDS"`
}
