// Package retry implements a retrying http.RoundTripper used when fetching
// remote renderings.
package retry

import (
	"errors"
	"math"
	"math/rand"
	"time"

	"golang.org/x/exp/constraints"
)

// Backoff decides how long to sleep before the given attempt and whether the
// attempt budget is exhausted.
type Backoff interface {
	Next(attempt uint) (time.Duration, bool)
}

type none struct{}

// NewNone never retries.
func NewNone() *none {
	return &none{}
}

func (n *none) Next(attempt uint) (time.Duration, bool) {
	return 0, true
}

// Entropy injects jitter; nil means rand.Int63n.
type Entropy func(int64) int64

type exponential struct {
	base        time.Duration
	max         time.Duration
	maxAttempts uint
	entropy     Entropy
}

// NewExponential doubles the base delay per attempt, capped at max, with full
// jitter.
func NewExponential(base time.Duration, max time.Duration, maxAttempts uint, entropy Entropy) *exponential {
	return &exponential{
		base:        base,
		max:         max,
		maxAttempts: maxAttempts,
		entropy:     entropy,
	}
}

func (e *exponential) Next(attempt uint) (time.Duration, bool) {
	if attempt >= e.maxAttempts {
		return 0, true
	}

	entropy := e.entropy
	if entropy == nil {
		entropy = rand.Int63n
	}

	if attempt >= 63 {
		return time.Duration(entropy(int64(e.max))), false
	}

	delay, err := checkedMulInt64(1<<attempt, int64(e.base))
	if err != nil {
		return time.Duration(entropy(int64(e.max))), false
	}
	return time.Duration(entropy(min(delay, int64(e.max)))), false
}

func min[T constraints.Ordered](l T, r T) T {
	if l > r {
		return r
	}
	return l
}

var errOverflow = errors.New("overflow")

func checkedMulInt64(l int64, r int64) (int64, error) {
	if l == 0 || r == 0 {
		return l * r, nil
	}
	if l > math.MaxInt64/r {
		return 0, errOverflow
	}
	return l * r, nil
}
