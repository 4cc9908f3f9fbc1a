package dynamo

import (
	"fmt"
	"math"
)

// Map is a one-dimensional parametrised map x_{n+1} = f(x_n, a).
type Map func(x, a float64) float64

// Point is a single vertex in the (x, y) plane.
type Point struct {
	X, Y float64
}

// Trajectory is an ordered vertex sequence, e.g. a cobweb staircase.
type Trajectory []Point

// Xs returns the x coordinates in order.
func (t Trajectory) Xs() []float64 {
	xs := make([]float64, len(t))
	for i, p := range t {
		xs[i] = p.X
	}
	return xs
}

// Ys returns the y coordinates in order.
func (t Trajectory) Ys() []float64 {
	ys := make([]float64, len(t))
	for i, p := range t {
		ys[i] = p.Y
	}
	return ys
}

// Iterations is the number of completed map applications encoded in the
// staircase: two anchor vertices, then two vertices per iteration.
func (t Trajectory) Iterations() int {
	if len(t) < 2 {
		return 0
	}
	return (len(t) - 2) / 2
}

// Last returns the final vertex. ok is false for an empty trajectory.
func (t Trajectory) Last() (p Point, ok bool) {
	if len(t) == 0 {
		return Point{}, false
	}
	return t[len(t)-1], true
}

// IsFinite reports whether every coordinate is a finite number.
func (t Trajectory) IsFinite() bool {
	for _, p := range t {
		if !finite(p.X) || !finite(p.Y) {
			return false
		}
	}
	return true
}

// SweepResult is the bifurcation point cloud: Params[i] is the parameter
// that produced Values[i]. Both slices always have the same length.
type SweepResult struct {
	Params []float64
	Values []float64
}

func (r *SweepResult) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Values)
}

// Bounds returns the value range ignoring non-finite entries. ok is false
// when nothing finite was recorded.
func (r *SweepResult) Bounds() (lo, hi float64, ok bool) {
	if r == nil {
		return 0, 0, false
	}
	for _, v := range r.Values {
		if !finite(v) {
			continue
		}
		if !ok {
			lo, hi, ok = v, v, true
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi, ok
}

// ProgressFunc receives the number of processed samples out of total.
type ProgressFunc func(done, total int)

// SweepConfig holds the five inputs that fully determine a sweep.
type SweepConfig struct {
	AMin       float64
	AMax       float64
	Samples    int
	X0         float64
	Iterations int
	Transient  int
}

// Retained is the number of recorded iterates per parameter sample.
func (c SweepConfig) Retained() int {
	if c.Iterations <= c.Transient {
		return 0
	}
	return c.Iterations - c.Transient
}

// Total is the expected length of both output sequences.
func (c SweepConfig) Total() int {
	if c.Samples <= 0 {
		return 0
	}
	return c.Samples * c.Retained()
}

func (c SweepConfig) String() string {
	return fmt.Sprintf("a=[%g, %g] samples=%d x0=%g iterations=%d transient=%d",
		c.AMin, c.AMax, c.Samples, c.X0, c.Iterations, c.Transient)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
