package heuristic

import (
	"sync/atomic"

	"github.com/SeamusWaldron/gocube_solver/internal/cube"
)

// MaxOf is the largest estimate of its parts. The maximum of admissible
// bounds is admissible.
type MaxOf []Heuristic

// Max combines hs by taking the largest estimate.
func Max(hs ...Heuristic) MaxOf {
	return MaxOf(hs)
}

func (m MaxOf) Estimate(s cube.State) int {
	best := 0
	for _, h := range m {
		if e := h.Estimate(s); e > best {
			best = e
		}
	}
	return best
}

func (m MaxOf) Admissible() bool {
	for _, h := range m {
		if !IsAdmissible(h) {
			return false
		}
	}
	return true
}

// AverageOf is the mean of its parts rounded up. It never exceeds the
// largest part, so it stays admissible, but it prunes less than MaxOf.
type AverageOf []Heuristic

// Average combines hs by taking the rounded-up mean estimate.
func Average(hs ...Heuristic) AverageOf {
	return AverageOf(hs)
}

func (a AverageOf) Estimate(s cube.State) int {
	if len(a) == 0 {
		return 0
	}
	sum := 0
	for _, h := range a {
		sum += h.Estimate(s)
	}
	return (sum + len(a) - 1) / len(a)
}

func (a AverageOf) Admissible() bool {
	return MaxOf(a).Admissible()
}

// Counter wraps a heuristic and counts its calls. It is safe for
// concurrent use.
type Counter struct {
	h     Heuristic
	calls atomic.Uint64
}

// Counting wraps h with a call counter.
func Counting(h Heuristic) *Counter {
	return &Counter{h: h}
}

func (c *Counter) Estimate(s cube.State) int {
	c.calls.Add(1)
	return c.h.Estimate(s)
}

func (c *Counter) Admissible() bool { return IsAdmissible(c.h) }

// Calls returns the number of estimates made since the last Reset.
func (c *Counter) Calls() uint64 { return c.calls.Load() }

// Reset sets the call count back to zero.
func (c *Counter) Reset() { c.calls.Store(0) }

// Unwrap returns the counted heuristic.
func (c *Counter) Unwrap() Heuristic { return c.h }
