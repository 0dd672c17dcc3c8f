package sampler

import (
	"sync/atomic"
	"time"

	"github.com/Aleph-Alpha/tracing/pkg/trace"
)

// Sampler decides whether a new trace is recorded. Implementations must
// be safe for concurrent use from arbitrary goroutines.
type Sampler interface {
	IsSampled(traceID trace.TraceID) bool
}

// Always samples every trace. Stateless.
var Always Sampler = alwaysSampler{}

// Never samples no trace. Stateless.
var Never Sampler = neverSampler{}

type alwaysSampler struct{}

func (alwaysSampler) IsSampled(trace.TraceID) bool { return true }

type neverSampler struct{}

func (neverSampler) IsSampled(trace.TraceID) bool { return false }

// RateLimiting admits at most a fixed number of traces per second.
// Rates of 10 and above release their allowance in decisecond slices, so
// a burst straddling a window boundary cannot admit two full ceilings
// back to back; rates below 10 keep the whole allowance available
// immediately. Usage is tracked with compare-and-swap, never a mutex.
type RateLimiting struct {
	limit         int64
	perDecisecond int64

	// windowStart holds the UnixNano timestamp of the current one-second
	// window. Whoever CASes it forward resets the usage counter.
	windowStart atomic.Int64
	usage       atomic.Int64

	// now is swapped out in tests for deterministic windows.
	now func() time.Time
}

// NewRateLimiting creates a sampler admitting at most tracesPerSecond
// traces in any one-second window. A zero or negative rate admits
// nothing.
func NewRateLimiting(tracesPerSecond int) *RateLimiting {
	s := &RateLimiting{
		limit:         int64(tracesPerSecond),
		perDecisecond: int64(tracesPerSecond) / 10,
		now:           time.Now,
	}
	s.windowStart.Store(s.now().UnixNano())
	return s
}

// IsSampled takes one unit of the allowance released so far in the
// current window, returning false when it is used up. Exhaustion is a
// normal outcome, not an error.
func (s *RateLimiting) IsSampled(trace.TraceID) bool {
	if s.limit <= 0 {
		return false
	}

	nowNanos := s.now().UnixNano()
	start := s.windowStart.Load()
	if nowNanos-start >= int64(time.Second) {
		// Exactly one caller wins the CAS and resets the usage; losers see
		// the new window on their next Load.
		if s.windowStart.CompareAndSwap(start, nowNanos) {
			s.usage.Store(0)
		}
		start = s.windowStart.Load()
	}

	released := s.limit
	if s.perDecisecond > 0 {
		elapsed := nowNanos - start
		if elapsed < 0 {
			elapsed = 0
		}
		decisecond := elapsed / int64(100*time.Millisecond)
		released = (decisecond+1)*s.perDecisecond + s.limit%10
		if released > s.limit {
			released = s.limit
		}
	}

	for {
		used := s.usage.Load()
		if used >= released {
			return false
		}
		if s.usage.CompareAndSwap(used, used+1) {
			return true
		}
	}
}
