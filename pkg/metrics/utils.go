package metrics

import "github.com/prometheus/client_golang/prometheus"

// createCounter defines a new Counter with standard options.
// Used internally to keep metric construction consistent.
func createCounter(name, help string) prometheus.Counter {
	return prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: name,
			Help: help,
		},
	)
}
