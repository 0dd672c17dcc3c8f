package trace

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// TraceID is a 128-bit identifier naming one logical request.
type TraceID [16]byte

// SpanID is a 64-bit identifier naming one unit of work within a trace.
type SpanID [8]byte

// NewTraceID returns a new random trace identifier.
func NewTraceID() TraceID {
	var id TraceID
	// crypto/rand never fails on supported platforms; a zero ID would be
	// rejected by IsValid anyway.
	_, _ = rand.Read(id[:])
	return id
}

// NewSpanID returns a new random span identifier.
func NewSpanID() SpanID {
	var id SpanID
	_, _ = rand.Read(id[:])
	return id
}

// IsZero reports whether the trace ID is the invalid all-zero value.
func (t TraceID) IsZero() bool {
	return t == TraceID{}
}

// String returns the ID as 32 lowercase hex characters.
func (t TraceID) String() string {
	return hex.EncodeToString(t[:])
}

// IsZero reports whether the span ID is the invalid all-zero value.
func (s SpanID) IsZero() bool {
	return s == SpanID{}
}

// String returns the ID as 16 lowercase hex characters.
func (s SpanID) String() string {
	return hex.EncodeToString(s[:])
}

// TraceIDFromHex parses a 32-character lowercase hex string into a TraceID.
func TraceIDFromHex(h string) (TraceID, error) {
	var id TraceID
	if len(h) != 32 {
		return id, fmt.Errorf("trace id must be 32 hex characters, got %d", len(h))
	}
	decoded, err := hex.DecodeString(h)
	if err != nil {
		return id, fmt.Errorf("malformed trace id %q: %w", h, err)
	}
	copy(id[:], decoded)
	if id.IsZero() {
		return id, fmt.Errorf("trace id is all zeros")
	}
	return id, nil
}

// SpanIDFromHex parses a 16-character lowercase hex string into a SpanID.
func SpanIDFromHex(h string) (SpanID, error) {
	var id SpanID
	if len(h) != 16 {
		return id, fmt.Errorf("span id must be 16 hex characters, got %d", len(h))
	}
	decoded, err := hex.DecodeString(h)
	if err != nil {
		return id, fmt.Errorf("malformed span id %q: %w", h, err)
	}
	copy(id[:], decoded)
	if id.IsZero() {
		return id, fmt.Errorf("span id is all zeros")
	}
	return id, nil
}
