package sampler

// DefaultTracesPerSecond is the rate-limited default applied when a
// reporter is configured but no explicit rate is set.
const DefaultTracesPerSecond = 10

// Config carries the resolved inputs for sampler selection. Parsing is
// owned by the embedding application.
type Config struct {
	// Override, when non-nil, is used verbatim regardless of any other
	// setting. Deployments that must trace everything supply Always here.
	Override Sampler

	// ReporterConfigured reports whether a span reporter is wired up.
	// Without one, recorded traces have nowhere to go and sampling is
	// pointless.
	ReporterConfigured bool `yaml:"reporter_configured" envconfig:"TRACING_REPORTER_CONFIGURED"`

	// TracesPerSecond bounds the rate-limited default. Zero means
	// DefaultTracesPerSecond.
	TracesPerSecond int `yaml:"traces_per_second" envconfig:"TRACING_TRACES_PER_SECOND"`
}

// New resolves the effective sampler for the given configuration. This is
// the single shared decision function: precedence is explicit override,
// then reporter-present (rate-limited), then reporter-absent (never).
// All configuration paths must resolve their sampler through this
// function rather than re-encoding the precedence.
func New(cfg Config) Sampler {
	if cfg.Override != nil {
		return cfg.Override
	}
	if cfg.ReporterConfigured {
		rate := cfg.TracesPerSecond
		if rate == 0 {
			rate = DefaultTracesPerSecond
		}
		return NewRateLimiting(rate)
	}
	return Never
}
