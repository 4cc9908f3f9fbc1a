package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/logmap/internal/analysis"
	"github.com/san-kum/logmap/internal/dynamo"
	"github.com/san-kum/logmap/internal/logistic"
)

const (
	DefaultWidth  = 60
	DefaultHeight = 20
	landmarkDash  = 2
)

// StabilityPlot draws the map curve, the identity line and the fixed
// points of a that fall inside [lo, hi].
func StabilityPlot(a, lo, hi float64, points, w, h int) string {
	p := NewPlot(w, h, lo, hi, lo, hi)
	xs, ys := logistic.Curve(a, lo, hi, points)
	p.Polyline(xs, ys)
	p.Line(lo, lo, hi, hi)

	fps := analysis.FixedPointsIn(a, lo, hi)
	for _, fp := range fps {
		p.Marker(fp.X, fp.X)
	}

	legend := make([]string, 0, len(fps))
	for _, fp := range fps {
		legend = append(legend, fmt.Sprintf("%s %s  %s %s %s",
			MetricLabel.Render("fixed point x ="),
			MetricValue.Render(fmt.Sprintf("%.3f", fp.X)),
			MetricLabel.Render("multiplier"),
			MetricValue.Render(fmt.Sprintf("%+.3f", fp.Multiplier)),
			StabilityLabel(fp.Stability.String()),
		))
	}

	title := fmt.Sprintf("Stability plot: f(x) = %gx(1-x) and y = x", a)
	return frame(p, title, "x_n", "x_n+1", legend...)
}

// CobwebPlot draws the map curve, the identity line and traj.
func CobwebPlot(a float64, traj dynamo.Trajectory, lo, hi float64, points, w, h int) string {
	p := NewPlot(w, h, lo, hi, lo, hi)
	xs, ys := logistic.Curve(a, lo, hi, points)
	p.Polyline(xs, ys)
	p.Line(lo, lo, hi, hi)
	p.Polyline(traj.Xs(), traj.Ys())

	var x0 float64
	if len(traj) > 0 {
		x0 = traj[0].X
		p.Marker(x0, lo)
	}

	info := fmt.Sprintf("%s %s", MetricLabel.Render("iterations:"), MetricValue.Render(fmt.Sprint(traj.Iterations())))
	if last, ok := traj.Last(); ok && analysis.Escaped(traj, lo, hi) {
		info += "  " + ErrorText.Render(fmt.Sprintf("escaped at x = %.4g", last.X))
	}

	title := fmt.Sprintf("Cobweb: a = %g, x0 = %g", a, x0)
	return frame(p, title, "x_n", "x_n+1", info)
}

// BifurcationPlot scatters a sweep over [aMin, aMax] x [0, 1] and marks
// the given landmarks with dashed lines.
func BifurcationPlot(res *dynamo.SweepResult, aMin, aMax float64, marks []analysis.Landmark, w, h int) string {
	p := NewPlot(w, h, aMin, aMax, 0, 1)
	if res != nil {
		p.Scatter(res.Params, res.Values)
	}
	for _, m := range marks {
		p.VLine(m.A, landmarkDash)
	}

	legend := make([]string, 0, len(marks)+1)
	legend = append(legend, fmt.Sprintf("%s %s", MetricLabel.Render("points:"), MetricValue.Render(fmt.Sprint(res.Len()))))
	for _, m := range marks {
		legend = append(legend, Subtle.Render(fmt.Sprintf("┆ a = %-6g %s", m.A, m.Label)))
	}

	return frame(p, "Bifurcation diagram of the logistic map", "a", "x_n", legend...)
}

// OrbitPlot draws x_n against n. Non-finite values become gaps.
func OrbitPlot(orbit []float64, caption string, w, h int) string {
	data := make([]float64, len(orbit))
	finite := false
	for i, v := range orbit {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			data[i] = math.NaN()
			continue
		}
		data[i] = v
		finite = true
	}
	if !finite {
		return ""
	}
	return asciigraph.Plot(data,
		asciigraph.Height(h),
		asciigraph.Width(w),
		asciigraph.Caption(caption),
	)
}

// Grid lays out panels perRow to a row.
func Grid(panels []string, perRow int) string {
	if perRow < 1 {
		perRow = 1
	}
	rows := make([]string, 0, (len(panels)+perRow-1)/perRow)
	for i := 0; i < len(panels); i += perRow {
		end := min(i+perRow, len(panels))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, spaced(panels[i:end])...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func spaced(panels []string) []string {
	out := make([]string, 0, 2*len(panels))
	for i, p := range panels {
		if i > 0 {
			out = append(out, "  ")
		}
		out = append(out, p)
	}
	return out
}

func frame(p *Plot, title, xLabel, yLabel string, footer ...string) string {
	axes := Subtle.Render(fmt.Sprintf("%s ∈ [%.4g, %.4g]   %s ∈ [%.4g, %.4g]",
		xLabel, p.XMin, p.XMax, yLabel, p.YMin, p.YMax))

	parts := []string{Title.Render(title), PlotPanel.Render(p.String()), axes}
	if len(footer) > 0 {
		parts = append(parts, strings.Join(footer, "\n"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
