// Package logistic implements the logistic map x_{n+1} = a·x·(1−x).
//
// Every function is pure: no clamping, no input validation and no caching.
// Values that leave [0, 1], overflow or turn NaN are returned as computed.
package logistic

import (
	"math"

	"github.com/san-kum/logmap/internal/dynamo"
)

// Map is Step as a [dynamo.Map].
var Map dynamo.Map = Step

// Step applies the map once.
func Step(x, a float64) float64 {
	return a * x * (1 - x)
}

// Iterate applies Step n times starting from x0. n <= 0 returns x0.
func Iterate(x0, a float64, n int) float64 {
	x := x0
	for i := 0; i < n; i++ {
		x = Step(x, a)
	}
	return x
}

// Orbit returns x0 followed by its first n iterates.
func Orbit(x0, a float64, n int) []float64 {
	if n < 0 {
		n = 0
	}
	orbit := make([]float64, n+1)
	orbit[0] = x0
	for i := 1; i <= n; i++ {
		orbit[i] = Step(orbit[i-1], a)
	}
	return orbit
}

// FixedPoints returns the solutions of x = Step(x, a): 0 always, and
// (a−1)/a when a > 1.
func FixedPoints(a float64) []float64 {
	if a > 1 {
		return []float64{0, (a - 1) / a}
	}
	return []float64{0}
}

// Multiplier is the derivative of the map at x, a·(1−2x).
func Multiplier(x, a float64) float64 {
	return a * (1 - 2*x)
}

// Stability classifies a fixed point by its multiplier.
type Stability int

const (
	Attracting Stability = iota
	Neutral
	Repelling
)

func (s Stability) String() string {
	switch s {
	case Attracting:
		return "attracting"
	case Neutral:
		return "neutral"
	case Repelling:
		return "repelling"
	}
	return "unknown"
}

func (s Stability) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// neutralTol is the band around |multiplier| = 1 treated as neutral.
const neutralTol = 1e-9

// Classify reports the linear stability of x under the map with parameter a.
func Classify(x, a float64) Stability {
	m := math.Abs(Multiplier(x, a))
	switch {
	case math.Abs(m-1) <= neutralTol:
		return Neutral
	case m < 1:
		return Attracting
	default:
		return Repelling
	}
}

// Linspace returns n evenly spaced samples over [lo, hi] with both
// endpoints included. One sample yields lo; n <= 0 yields nil.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	if n == 1 {
		out[0] = lo
		return out
	}
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi
	return out
}

// Curve samples the map over [lo, hi] for plotting: xs and Step(xs[i], a).
func Curve(a, lo, hi float64, n int) (xs, ys []float64) {
	xs = Linspace(lo, hi, n)
	ys = make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = Step(x, a)
	}
	return xs, ys
}
