package propagation

import "net/http"

// Carrier is the transport-side view of propagation: a string-keyed set
// of entries the codec reads from and writes to. HTTP headers, message
// headers, and plain maps all adapt to it.
type Carrier interface {
	// Get returns the value for key, or "" when absent.
	Get(key string) string
	// Set stores the value for key, replacing any existing value.
	Set(key, value string)
	// Keys returns all keys present in the carrier.
	Keys() []string
}

// MapCarrier adapts a plain map to the Carrier interface.
type MapCarrier map[string]string

// Get returns the value for key, or "" when absent.
func (c MapCarrier) Get(key string) string {
	return c[key]
}

// Set stores the value for key.
func (c MapCarrier) Set(key, value string) {
	c[key] = value
}

// Keys returns all keys present in the map.
func (c MapCarrier) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	return keys
}

// HeaderCarrier adapts http.Header to the Carrier interface.
type HeaderCarrier http.Header

// Get returns the first value for key, or "" when absent.
func (c HeaderCarrier) Get(key string) string {
	return http.Header(c).Get(key)
}

// Set stores the value for key.
func (c HeaderCarrier) Set(key, value string) {
	http.Header(c).Set(key, value)
}

// Keys returns all header names present in the carrier.
func (c HeaderCarrier) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	return keys
}
