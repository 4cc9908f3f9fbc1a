package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/logmap/internal/analysis"
	"github.com/san-kum/logmap/internal/dynamo"
	"github.com/san-kum/logmap/internal/logistic"
	"github.com/san-kum/logmap/internal/viz"
)

const (
	background    = "#0a0a0a"
	curveColor    = "#00ccff"
	identityColor = "#666688"
	orbitColor    = "#ff8800"
	pointColor    = "#00ff88"
	markColor     = "#ff4444"
)

// CanvasToSVG converts a Braille canvas to SVG format
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2   // 2 sub-pixels per char
	height := float64(canvas.Height) * scale * 4 // 4 sub-pixels per char

	var sb strings.Builder
	header(&sb, width, height)
	sb.WriteString(`<g fill="#00ff00">` + "\n")

	dotRadius := scale * 0.4

	for py := 0; py < canvas.Height*4; py++ {
		for px := 0; px < canvas.Width*2; px++ {
			if !canvas.IsSet(px, py) {
				continue
			}
			cx := float64(px)*scale + scale/2
			cy := float64(py)*scale + scale/2
			fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f"/>`+"\n", cx, cy, dotRadius)
		}
	}

	sb.WriteString("</g>\n</svg>\n")
	return sb.String()
}

// window maps data coordinates onto a width x height viewport with y
// pointing up.
type window struct {
	xMin, xMax, yMin, yMax float64
	width, height          float64
}

func newWindow(xMin, xMax, yMin, yMax float64, width, height int) window {
	if xMax == xMin {
		xMax = xMin + 1
	}
	if yMax == yMin {
		yMax = yMin + 1
	}
	return window{xMin, xMax, yMin, yMax, float64(width), float64(height)}
}

// project maps (x, y) to viewport coordinates, clamped to one viewport
// beyond each edge so escaped values stay printable. Clamping keeps
// axis-aligned segments on their line.
func (w window) project(x, y float64) (float64, float64) {
	px := (x - w.xMin) / (w.xMax - w.xMin) * w.width
	py := w.height - (y-w.yMin)/(w.yMax-w.yMin)*w.height
	return clamp(px, -w.width, 2*w.width), clamp(py, -w.height, 2*w.height)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// path writes an SVG path through (xs[i], ys[i]). Non-finite points break
// the path into separate runs.
func (w window) path(sb *strings.Builder, xs, ys []float64, stroke, extra string) {
	var d strings.Builder
	pen := false
	for i := 0; i < min(len(xs), len(ys)); i++ {
		if !isFinite(xs[i]) || !isFinite(ys[i]) {
			pen = false
			continue
		}
		x, y := w.project(xs[i], ys[i])
		if pen {
			fmt.Fprintf(&d, " L%.1f,%.1f", x, y)
		} else {
			if d.Len() > 0 {
				d.WriteByte(' ')
			}
			fmt.Fprintf(&d, "M%.1f,%.1f", x, y)
			pen = true
		}
	}
	if d.Len() == 0 {
		return
	}
	fmt.Fprintf(sb, `<path fill="none" stroke="%s" stroke-width="1.5"%s d="%s"/>`+"\n", stroke, extra, d.String())
}

func header(sb *strings.Builder, width, height float64) {
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background)
}

// TrajectoryToSVG draws points as a single polyline fitted to their
// finite bounds with 10% padding.
func TrajectoryToSVG(points dynamo.Trajectory, width, height int, strokeColor string) string {
	var minX, maxX, minY, maxY float64
	n := 0
	for _, p := range points {
		if !isFinite(p.X) || !isFinite(p.Y) {
			continue
		}
		if n == 0 {
			minX, maxX, minY, maxY = p.X, p.X, p.Y, p.Y
		}
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
		n++
	}
	if n < 2 {
		return ""
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	w := newWindow(minX-rangeX*0.1, maxX+rangeX*0.1, minY-rangeY*0.1, maxY+rangeY*0.1, width, height)

	var sb strings.Builder
	header(&sb, float64(width), float64(height))
	w.path(&sb, points.Xs(), points.Ys(), strokeColor, "")
	sb.WriteString("</svg>\n")
	return sb.String()
}

// OrbitSVG plots x_n against n.
func OrbitSVG(orbit []float64, width, height int) string {
	traj := make(dynamo.Trajectory, len(orbit))
	for i, x := range orbit {
		traj[i] = dynamo.Point{X: float64(i), Y: x}
	}
	return TrajectoryToSVG(traj, width, height, orbitColor)
}

// StabilitySVG draws the map curve, the identity line and the fixed
// points in [lo, hi].
func StabilitySVG(a, lo, hi float64, points, width, height int) string {
	w := newWindow(lo, hi, lo, hi, width, height)

	var sb strings.Builder
	header(&sb, float64(width), float64(height))
	mapAndIdentity(&sb, w, a, lo, hi, points)
	for _, fp := range analysis.FixedPointsIn(a, lo, hi) {
		cx, cy := w.project(fp.X, fp.X)
		fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="4" fill="%s"><title>x = %g (%s)</title></circle>`+"\n",
			cx, cy, markColor, fp.X, fp.Stability)
	}
	sb.WriteString("</svg>\n")
	return sb.String()
}

// CobwebSVG draws the map curve, the identity line and traj over the
// square window [lo, hi].
func CobwebSVG(a float64, traj dynamo.Trajectory, lo, hi float64, points, width, height int) string {
	w := newWindow(lo, hi, lo, hi, width, height)

	var sb strings.Builder
	header(&sb, float64(width), float64(height))
	mapAndIdentity(&sb, w, a, lo, hi, points)
	w.path(&sb, traj.Xs(), traj.Ys(), orbitColor, ` stroke-opacity="0.8"`)
	sb.WriteString("</svg>\n")
	return sb.String()
}

func mapAndIdentity(sb *strings.Builder, w window, a, lo, hi float64, points int) {
	xs, ys := logistic.Curve(a, lo, hi, points)
	w.path(sb, xs, ys, curveColor, "")
	w.path(sb, []float64{lo, hi}, []float64{lo, hi}, identityColor, ` stroke-dasharray="4 4"`)
}

// SweepSVG rasterises a sweep over [aMin, aMax] x [0, 1] at one cell per
// SVG pixel, so the file size is bounded by width*height however many
// points the sweep recorded. Landmarks become dashed vertical lines.
func SweepSVG(res *dynamo.SweepResult, aMin, aMax float64, marks []analysis.Landmark, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	w := newWindow(aMin, aMax, 0, 1, width, height)
	lit := make([]bool, width*height)

	for i := 0; i < res.Len(); i++ {
		a, x := res.Params[i], res.Values[i]
		if !(a >= w.xMin && a <= w.xMax && x >= w.yMin && x <= w.yMax) {
			continue
		}
		px, py := w.project(a, x)
		col := min(int(px), width-1)
		row := min(int(py), height-1)
		lit[row*width+col] = true
	}

	var sb strings.Builder
	header(&sb, float64(width), float64(height))
	fmt.Fprintf(&sb, `<g fill="%s">`+"\n", pointColor)
	for i, on := range lit {
		if on {
			fmt.Fprintf(&sb, `<rect x="%d" y="%d" width="1" height="1"/>`+"\n", i%width, i/width)
		}
	}
	sb.WriteString("</g>\n")

	for _, m := range marks {
		if m.A < aMin || m.A > aMax {
			continue
		}
		x, _ := w.project(m.A, 0)
		fmt.Fprintf(&sb, `<line x1="%.1f" y1="0" x2="%.1f" y2="%d" stroke="%s" stroke-dasharray="4 4"><title>%s</title></line>`+"\n",
			x, x, height, markColor, m.Label)
	}
	sb.WriteString("</svg>\n")
	return sb.String()
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
