package analysis

import (
	"math"

	"github.com/san-kum/logmap/internal/logistic"
)

// Landmark marks a known transition on the bifurcation diagram.
type Landmark struct {
	A     float64
	Label string
}

// Landmarks are the period-doubling cascade and the onset of chaos.
var Landmarks = []Landmark{
	{3.0, "Period-1 → Period-2"},
	{3.449, "Period-2 → Period-4"},
	{3.544, "Period-4 → Period-8"},
	{3.57, "Onset of chaos"},
}

// LandmarksIn returns the landmarks with lo <= A <= hi.
func LandmarksIn(lo, hi float64) []Landmark {
	out := make([]Landmark, 0, len(Landmarks))
	for _, l := range Landmarks {
		if l.A >= lo && l.A <= hi {
			out = append(out, l)
		}
	}
	return out
}

// Regime is a representative parameter value and its long-run behaviour.
type Regime struct {
	A           float64 `yaml:"a" json:"a"`
	Description string  `yaml:"description" json:"description"`
}

// Regimes covers extinction, stable fixed points, the doubling cascade,
// chaos and the period-3 window.
var Regimes = []Regime{
	{0.5, "Population dies out (x → 0)"},
	{1.5, "Stable fixed point"},
	{2.8, "Stable fixed point"},
	{3.1, "Period-2 cycle"},
	{3.5, "Period-4 cycle"},
	{3.7, "Chaotic behavior"},
	{3.83, "Period-3 window in chaos"},
	{4.0, "Full chaos"},
}

// FixedPoint is a fixed point together with its linearisation.
type FixedPoint struct {
	X          float64            `json:"x"`
	Multiplier float64            `json:"multiplier"`
	Stability  logistic.Stability `json:"stability"`
}

// FixedPointsIn returns the fixed points for a that lie within [lo, hi].
func FixedPointsIn(a, lo, hi float64) []FixedPoint {
	fps := logistic.FixedPoints(a)
	out := make([]FixedPoint, 0, len(fps))
	for _, x := range fps {
		if x < lo || x > hi {
			continue
		}
		out = append(out, FixedPoint{
			X:          x,
			Multiplier: logistic.Multiplier(x, a),
			Stability:  logistic.Classify(x, a),
		})
	}
	return out
}

// RegimeReport summarises one regime: all fixed points and the first
// iterates from a seed.
type RegimeReport struct {
	Regime
	X0          float64      `json:"x0"`
	FixedPoints []FixedPoint `json:"fixed_points"`
	Orbit       []float64    `json:"orbit"`
}

// Report builds the summary for r starting from x0 with n iterates.
func Report(r Regime, x0 float64, n int) RegimeReport {
	return RegimeReport{
		Regime:      r,
		X0:          x0,
		FixedPoints: FixedPointsIn(r.A, math.Inf(-1), math.Inf(1)),
		Orbit:       logistic.Orbit(x0, r.A, n),
	}
}

// Reports runs Report for every regime in rs.
func Reports(rs []Regime, x0 float64, n int) []RegimeReport {
	out := make([]RegimeReport, len(rs))
	for i, r := range rs {
		out[i] = Report(r, x0, n)
	}
	return out
}
