package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/san-kum/logmap/internal/analysis"
	"github.com/san-kum/logmap/internal/config"
	"github.com/san-kum/logmap/internal/dynamo"
	"github.com/san-kum/logmap/internal/export"
	"github.com/san-kum/logmap/internal/logistic"
	"github.com/san-kum/logmap/internal/viz"
)

// svgScale converts terminal cells to SVG pixels; cells are about twice
// as tall as they are wide.
const svgScale = 10

// shownIterates is how many orbit values the regime table prints.
const shownIterates = 6

func svgSize() (int, int) {
	return width * svgScale, height * 2 * svgScale
}

func unsupported(cmd *cobra.Command) error {
	return fmt.Errorf("%s: format %q not supported", cmd.Name(), format)
}

func writeString(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}

func checkWindow(lo, hi float64) error {
	if !(lo < hi) {
		return fmt.Errorf("invalid window [%g, %g]: lo must be below hi", lo, hi)
	}
	return nil
}

func runStep(cmd *cobra.Command, args []string) error {
	if !cmd.Flags().Changed("a") {
		paramA = cfg.Cobweb.A
	}

	next := logistic.Step(x, paramA)
	logger.Debug("step", "x", x, "a", paramA, "next", next)

	out := cmd.OutOrStdout()
	switch format {
	case formatCSV:
		return export.WriteOrbit(out, []float64{x, next})
	case formatJSON:
		return export.WriteJSON(out, export.StepData{A: export.Number(paramA), X0: export.Number(x), N: 1, X: export.Number(next)})
	case formatSVG:
		return unsupported(cmd)
	}
	fmt.Fprintf(out, "%g\n", next)
	return nil
}

func runIterate(cmd *cobra.Command, args []string) error {
	if !cmd.Flags().Changed("a") {
		paramA = cfg.Cobweb.A
	}
	if !cmd.Flags().Changed("x0") {
		x0 = cfg.Cobweb.X0
	}
	if !cmd.Flags().Changed("steps") {
		steps = cfg.OrbitLength
	}

	orbit := logistic.Orbit(x0, paramA, steps)
	final := logistic.Iterate(x0, paramA, steps)

	out := cmd.OutOrStdout()
	switch format {
	case formatCSV:
		return export.WriteOrbit(out, orbit)
	case formatJSON:
		return export.WriteJSON(out, export.StepData{
			A:     export.Number(paramA),
			X0:    export.Number(x0),
			N:     max(steps, 0),
			X:     export.Number(final),
			Orbit: export.Numbers(orbit),
		})
	case formatSVG:
		w, h := svgSize()
		return writeString(out, export.OrbitSVG(orbit, w, h))
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "n\tx_n")
	for i, v := range orbit {
		fmt.Fprintf(w, "%d\t%.6f\n", i, v)
	}
	w.Flush()

	fmt.Fprintf(out, "\nx_%d = %g\n", max(steps, 0), final)
	if graph := viz.OrbitPlot(orbit, fmt.Sprintf("x_n for a = %g, x0 = %g", paramA, x0), width, height/2); graph != "" {
		fmt.Fprintf(out, "\n%s\n", graph)
	}
	return nil
}

func runFixed(cmd *cobra.Command, args []string) error {
	if !cmd.Flags().Changed("a") {
		paramA = cfg.Stability.A
	}

	fps := analysis.FixedPointsIn(paramA, math.Inf(-1), math.Inf(1))

	out := cmd.OutOrStdout()
	switch format {
	case formatCSV:
		return export.WriteFixedPoints(out, fps)
	case formatJSON:
		return export.WriteJSON(out, export.NewFixedPointData(fps))
	case formatSVG:
		return unsupported(cmd)
	}

	fmt.Fprintf(out, "fixed points of f(x) = %gx(1-x):\n", paramA)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "x\tmultiplier\tstability")
	for _, fp := range fps {
		fmt.Fprintf(w, "%.6f\t%+.6f\t%s\n", fp.X, fp.Multiplier, fp.Stability)
	}
	return w.Flush()
}

func runStability(cmd *cobra.Command, args []string) error {
	s := cfg.Stability
	if !cmd.Flags().Changed("a") {
		paramA = s.A
	}
	if !cmd.Flags().Changed("lo") {
		lo = s.Range.Lo
	}
	if !cmd.Flags().Changed("hi") {
		hi = s.Range.Hi
	}
	if !cmd.Flags().Changed("points") {
		points = s.Points
	}
	if err := checkWindow(lo, hi); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch format {
	case formatCSV:
		xs, ys := logistic.Curve(paramA, lo, hi, points)
		return export.WriteCurve(out, xs, ys)
	case formatJSON:
		xs, ys := logistic.Curve(paramA, lo, hi, points)
		return export.WriteJSON(out, export.StabilityData{
			A:           export.Number(paramA),
			Lo:          export.Number(lo),
			Hi:          export.Number(hi),
			FixedPoints: export.NewFixedPointData(analysis.FixedPointsIn(paramA, lo, hi)),
			X:           export.Numbers(xs),
			Y:           export.Numbers(ys),
		})
	case formatSVG:
		w, h := svgSize()
		return writeString(out, export.StabilitySVG(paramA, lo, hi, points, w, h))
	}
	fmt.Fprintln(out, viz.StabilityPlot(paramA, lo, hi, points, width, height))
	return nil
}

func runCobweb(cmd *cobra.Command, args []string) error {
	if preset != "" {
		if err := cfg.ApplyPreset(config.KindCobweb, preset); err != nil {
			return err
		}
		logger.Debug("preset applied", "kind", config.KindCobweb, "preset", preset)
	}

	c := cfg.Cobweb
	if !cmd.Flags().Changed("a") {
		paramA = c.A
	}
	if !cmd.Flags().Changed("x0") {
		x0 = c.X0
	}
	if !cmd.Flags().Changed("iterations") {
		iterations = c.Iterations
	}
	if !cmd.Flags().Changed("lo") {
		lo = c.Range.Lo
	}
	if !cmd.Flags().Changed("hi") {
		hi = c.Range.Hi
	}
	if !cmd.Flags().Changed("points") {
		points = cfg.Stability.Points
	}
	if err := checkWindow(lo, hi); err != nil {
		return err
	}

	traj := analysis.Cobweb(x0, paramA, iterations, lo, hi)
	logger.Debug("cobweb", "a", paramA, "x0", x0, "iterations", iterations, "vertices", len(traj))
	if analysis.Escaped(traj, lo, hi) {
		last, _ := traj.Last()
		logger.Warn("orbit escaped", "after", traj.Iterations(), "x", last.X, "window", fmt.Sprintf("[%g, %g]", lo, hi))
	}

	out := cmd.OutOrStdout()
	switch format {
	case formatCSV:
		return export.WriteTrajectory(out, traj)
	case formatJSON:
		return export.WriteJSON(out, export.NewCobwebData(paramA, x0, iterations, lo, hi, traj))
	case formatSVG:
		w, h := svgSize()
		return writeString(out, export.CobwebSVG(paramA, traj, lo, hi, points, w, h))
	}
	fmt.Fprintln(out, viz.CobwebPlot(paramA, traj, lo, hi, points, width, height))
	return nil
}

func runBifurcate(cmd *cobra.Command, args []string) error {
	if preset != "" {
		if err := cfg.ApplyPreset(config.KindBifurcation, preset); err != nil {
			return err
		}
		logger.Debug("preset applied", "kind", config.KindBifurcation, "preset", preset)
	}

	b := &cfg.Bifurcation
	if cmd.Flags().Changed("a-min") {
		b.AMin = aMin
	}
	if cmd.Flags().Changed("a-max") {
		b.AMax = aMax
	}
	if cmd.Flags().Changed("samples") {
		b.Samples = samples
	}
	if cmd.Flags().Changed("x0") {
		b.X0 = x0
	}
	if cmd.Flags().Changed("iterations") {
		b.Iterations = iterations
	}
	if cmd.Flags().Changed("transient") {
		b.Transient = transient
	}
	if cmd.Flags().Changed("workers") {
		b.Workers = workers
	}

	sc := b.Sweep()
	if sc.Retained() == 0 {
		logger.Warn("nothing to record: transient is not below iterations", "iterations", sc.Iterations, "transient", sc.Transient)
	}

	res, err := sweep(cmd, sc, b.Workers)
	if err != nil {
		return err
	}

	marks := analysis.LandmarksIn(sc.AMin, sc.AMax)
	out := cmd.OutOrStdout()
	switch format {
	case formatCSV:
		return export.WriteSweep(out, res)
	case formatJSON:
		return export.WriteJSON(out, export.NewSweepData(sc, res))
	case formatSVG:
		w, h := svgSize()
		return writeString(out, export.SweepSVG(res, sc.AMin, sc.AMax, marks, w, h))
	}
	if tui {
		// the diagram is already on screen
		return nil
	}
	fmt.Fprintln(out, viz.BifurcationPlot(res, sc.AMin, sc.AMax, marks, width, height))
	return nil
}

// sweep runs sc either under the progress TUI or with progress logged.
func sweep(cmd *cobra.Command, sc dynamo.SweepConfig, workers int) (*dynamo.SweepResult, error) {
	logger.Info("sweep started", "a", fmt.Sprintf("[%g, %g]", sc.AMin, sc.AMax), "samples", sc.Samples,
		"iterations", sc.Iterations, "transient", sc.Transient, "workers", dynamo.Workers(workers))
	start := time.Now()

	var (
		res *dynamo.SweepResult
		err error
	)
	if tui {
		var opts []tea.ProgramOption
		if format != formatText {
			opts = append(opts, tea.WithOutput(os.Stderr))
		}
		res, err = viz.RunSweep(cmd.Context(), sc, workers, width, height, opts...)
	} else {
		res, err = analysis.Sweep(cmd.Context(), sc,
			analysis.WithWorkers(workers),
			analysis.WithProgress(func(done, total int) {
				logger.Info("sweep progress", "done", done, "total", total)
			}),
		)
	}
	if err != nil {
		var se *dynamo.SweepError
		if errors.As(err, &se) {
			logger.Warn("sweep canceled", "sample", se.Sample, "a", se.Param, "elapsed", time.Since(start).Round(time.Millisecond))
		}
		return nil, fmt.Errorf("bifurcation sweep: %w", err)
	}

	logger.Info("sweep finished", "points", res.Len(), "elapsed", time.Since(start).Round(time.Millisecond))
	return res, nil
}

type compareData struct {
	Cobwebs []export.CobwebData `json:"cobwebs"`
	Sweep   export.SweepData    `json:"sweep"`
}

func runCompare(cmd *cobra.Command, args []string) error {
	if len(compareAs) == 0 {
		return errors.New("compare: at least one parameter is required")
	}
	if format == formatCSV || format == formatSVG {
		return unsupported(cmd)
	}
	if comparePreset != "" {
		if err := cfg.ApplyPreset(config.KindBifurcation, comparePreset); err != nil {
			return err
		}
	}

	r := cfg.Cobweb.Range
	if err := checkWindow(r.Lo, r.Hi); err != nil {
		return err
	}

	trajs := make([]dynamo.Trajectory, len(compareAs))
	marks := make([]analysis.Landmark, len(compareAs))
	for i, a := range compareAs {
		trajs[i] = analysis.Cobweb(compareX0, a, compareIters, r.Lo, r.Hi)
		marks[i] = analysis.Landmark{A: a, Label: fmt.Sprintf("a = %g", a)}
	}

	sc := cfg.Bifurcation.Sweep()
	res, err := sweep(cmd, sc, cfg.Bifurcation.Workers)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if format == formatJSON {
		data := compareData{Sweep: export.NewSweepData(sc, res)}
		for i, a := range compareAs {
			data.Cobwebs = append(data.Cobwebs, export.NewCobwebData(a, compareX0, compareIters, r.Lo, r.Hi, trajs[i]))
		}
		return export.WriteJSON(out, data)
	}

	panels := make([]string, len(trajs))
	for i, traj := range trajs {
		panels[i] = viz.CobwebPlot(compareAs[i], traj, r.Lo, r.Hi, cfg.Stability.Points, max(width/2, 10), max(height/2, 5))
	}
	fmt.Fprintln(out, viz.Grid(panels, 2))
	fmt.Fprintln(out)
	fmt.Fprintln(out, viz.BifurcationPlot(res, sc.AMin, sc.AMax, marks, width, height))
	return nil
}

func runRegimes(cmd *cobra.Command, args []string) error {
	if !cmd.Flags().Changed("steps") {
		steps = cfg.OrbitLength
	}

	reports := analysis.Reports(cfg.Regimes, regimesX0, steps)

	out := cmd.OutOrStdout()
	switch format {
	case formatJSON:
		return export.WriteJSON(out, export.NewRegimeData(reports))
	case formatCSV, formatSVG:
		return unsupported(cmd)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(viz.Subtle).
		Headers("a", "behaviour", "fixed points", fmt.Sprintf("iterates from x0 = %g", regimesX0)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return viz.HeaderStyle
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	for _, r := range reports {
		t.Row(fmt.Sprintf("%g", r.A), r.Description, fixedPointsText(r.FixedPoints), orbitText(r.Orbit))
	}

	fmt.Fprintln(out, viz.Title.Render("Logistic map parameter regimes"))
	fmt.Fprintln(out, t.Render())
	return nil
}

func fixedPointsText(fps []analysis.FixedPoint) string {
	parts := make([]string, len(fps))
	for i, fp := range fps {
		parts[i] = fmt.Sprintf("%.4f (%s)", fp.X, viz.StabilityLabel(fp.Stability.String()))
	}
	return strings.Join(parts, ", ")
}

func orbitText(orbit []float64) string {
	n := min(len(orbit), shownIterates)
	parts := make([]string, n)
	for i := 0; i < n; i++ {
		parts[i] = fmt.Sprintf("%.4f", orbit[i])
	}
	s := strings.Join(parts, " → ")
	if len(orbit) > n {
		s += " …"
	}
	return s
}

func runPresets(cmd *cobra.Command, args []string) error {
	kinds := []string{config.KindCobweb, config.KindBifurcation}
	if len(args) > 0 {
		kinds = args[:1]
	}

	out := cmd.OutOrStdout()
	for _, kind := range kinds {
		names := config.ListPresets(kind)
		if len(names) == 0 {
			return fmt.Errorf("%w: no presets of kind %q", config.ErrUnknownPreset, kind)
		}
		fmt.Fprintf(out, "%s presets:\n", kind)
		for _, name := range names {
			p := config.GetPreset(kind, name)
			switch kind {
			case config.KindCobweb:
				fmt.Fprintf(out, "  %-10s a=%g x0=%g iterations=%d\n", name, p.Cobweb.A, p.Cobweb.X0, p.Cobweb.Iterations)
			case config.KindBifurcation:
				fmt.Fprintf(out, "  %-10s %s\n", name, p.Bifurcation.Sweep())
			}
		}
	}
	return nil
}
