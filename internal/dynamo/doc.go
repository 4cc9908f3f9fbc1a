// Package dynamo provides the shared primitives for one-dimensional
// iterated maps.
//
// The package defines the value types passed between the numeric core
// and the rendering layer:
//
//   - [Map]: a parametrised map x_{n+1} = f(x_n, a)
//   - [Trajectory]: ordered (x, y) vertices, e.g. a cobweb staircase
//   - [SweepResult]: parallel parameter/value sequences of a sweep
//   - [SweepConfig]: the inputs that fully determine a sweep
//   - [ProgressFunc]: optional progress callback
//
// # Example
//
//	cfg := dynamo.SweepConfig{AMin: 2.5, AMax: 4, Samples: 1500, X0: 0.5, Iterations: 1000, Transient: 500}
//	res, err := analysis.Sweep(ctx, cfg)
//
// # Thread Safety
//
// All types are plain values. [ParallelFor] is safe to call from multiple
// goroutines as long as fn writes to disjoint ranges.
package dynamo
