// Package viz renders logistic map diagrams in the terminal.
//
// Plots are drawn on a Braille [Canvas], so each character cell holds a
// 2x4 grid of dots. [Plot] maps a data window onto the canvas and clips
// segments that leave it, which keeps escaped cobweb orbits from
// smearing across the frame.
//
//   - [StabilityPlot]: map curve, identity line and fixed points
//   - [CobwebPlot]: curve, identity line and a cobweb trajectory
//   - [BifurcationPlot]: sweep point cloud with period-doubling landmarks
//   - [OrbitPlot]: x_n against n
//
// [RunSweep] drives a sweep under a Bubble Tea program that shows a
// progress bar and then the finished diagram.
//
// # Key Bindings
//
//	q, Esc, Ctrl+C - quit (cancels a running sweep)
package viz
