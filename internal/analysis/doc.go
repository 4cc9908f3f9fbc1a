// Package analysis turns the logistic map into plottable data.
//
//   - [Cobweb]: staircase trajectory between the curve and y = x, and
//     [Escaped] to tell whether it left its window
//   - [Sweep] / [Bifurcation]: post-transient iterates across a parameter range
//   - [FixedPointsIn]: fixed points with multipliers, for stability plots
//   - [Regimes] / [Report]: representative parameters and their orbits
//   - [Landmarks]: period-doubling and onset-of-chaos marks
//
// # Bifurcation data
//
//	res, err := analysis.Sweep(ctx, cfg,
//	    analysis.WithWorkers(0),
//	    analysis.WithProgress(func(done, total int) { ... }),
//	)
//	// res.Params[i], res.Values[i] is one point of the diagram
package analysis
