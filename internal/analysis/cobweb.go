package analysis

import (
	"github.com/san-kum/logmap/internal/dynamo"
	"github.com/san-kum/logmap/internal/logistic"
)

// Cobweb traces the staircase between the logistic curve and the identity
// line. It starts with (x0, lo), (x0, x0) and appends (x_n, x_{n+1}),
// (x_{n+1}, x_{n+1}) per iteration.
//
// The walk stops right after the first iterate that leaves [lo, hi]; that
// iterate is still recorded so the escape is visible. The result always
// holds 2 + 2k vertices with k <= iterations, and k < iterations only when
// the orbit escaped.
func Cobweb(x0, a float64, iterations int, lo, hi float64) dynamo.Trajectory {
	return CobwebMap(logistic.Map, x0, a, iterations, lo, hi)
}

// CobwebMap is Cobweb for an arbitrary one-dimensional map.
func CobwebMap(f dynamo.Map, x0, a float64, iterations int, lo, hi float64) dynamo.Trajectory {
	if iterations < 0 {
		iterations = 0
	}

	traj := make(dynamo.Trajectory, 0, 2+2*iterations)
	traj = append(traj, dynamo.Point{X: x0, Y: lo}, dynamo.Point{X: x0, Y: x0})

	x := x0
	for i := 0; i < iterations; i++ {
		next := f(x, a)
		traj = append(traj,
			dynamo.Point{X: x, Y: next},
			dynamo.Point{X: next, Y: next},
		)
		x = next

		// NaN is neither below nor above the window and keeps iterating.
		if x < lo || x > hi {
			break
		}
	}

	return traj
}

// Escaped reports whether the last vertex of traj lies outside [lo, hi].
// An escape on the final iteration counts; a NaN vertex does not.
func Escaped(traj dynamo.Trajectory, lo, hi float64) bool {
	last, ok := traj.Last()
	if !ok {
		return false
	}
	return last.X < lo || last.X > hi
}
