package viz

import (
	"math"
	"strings"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

// Canvas is a Braille dot grid of Width x Height cells, i.e.
// (Width*2) x (Height*4) addressable sub-pixels.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

// NewCanvas allocates a blank canvas; negative sizes give an empty one.
func NewCanvas(w, h int) *Canvas {
	w, h = max(w, 0), max(h, 0)
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
	return c
}

// Set lights the sub-pixel at (x, y); out-of-range coordinates are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// IsSet reports whether the sub-pixel at (x, y) is lit.
func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

// Dots counts lit sub-pixels.
func (c *Canvas) Dots() int {
	n := 0
	for _, row := range c.Grid {
		for _, r := range row {
			for bits := int(r - brailleBlank); bits != 0; bits &= bits - 1 {
				n++
			}
		}
	}
	return n
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for i, row := range c.Grid {
		b.WriteString(string(row))
		if i < len(c.Grid)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Plot maps a data window onto a Canvas. y grows upwards.
type Plot struct {
	*Canvas
	XMin, XMax float64
	YMin, YMax float64
}

func NewPlot(w, h int, xMin, xMax, yMin, yMax float64) *Plot {
	if xMax == xMin {
		xMax = xMin + 1
	}
	if yMax == yMin {
		yMax = yMin + 1
	}
	return &Plot{Canvas: NewCanvas(w, h), XMin: xMin, XMax: xMax, YMin: yMin, YMax: yMax}
}

func (p *Plot) pixel(x, y float64) (int, int) {
	pw := float64(p.Width*2 - 1)
	ph := float64(p.Height*4 - 1)
	px := math.Round((x - p.XMin) / (p.XMax - p.XMin) * pw)
	py := ph - math.Round((y-p.YMin)/(p.YMax-p.YMin)*ph)
	return int(px), int(py)
}

func (p *Plot) contains(x, y float64) bool {
	return x >= p.XMin && x <= p.XMax && y >= p.YMin && y <= p.YMax
}

// Point lights (x, y) if it lies inside the window.
func (p *Plot) Point(x, y float64) {
	if !p.contains(x, y) {
		return
	}
	p.Set(p.pixel(x, y))
}

// Line draws the part of the segment inside the window.
func (p *Plot) Line(x0, y0, x1, y1 float64) {
	x0, y0, x1, y1, ok := p.clip(x0, y0, x1, y1)
	if !ok {
		return
	}
	ax, ay := p.pixel(x0, y0)
	bx, by := p.pixel(x1, y1)
	p.DrawLine(ax, ay, bx, by)
}

// Polyline connects consecutive (xs[i], ys[i]).
func (p *Plot) Polyline(xs, ys []float64) {
	n := min(len(xs), len(ys))
	if n == 1 {
		p.Point(xs[0], ys[0])
	}
	for i := 1; i < n; i++ {
		p.Line(xs[i-1], ys[i-1], xs[i], ys[i])
	}
}

// Scatter lights each (xs[i], ys[i]).
func (p *Plot) Scatter(xs, ys []float64) {
	n := min(len(xs), len(ys))
	for i := 0; i < n; i++ {
		p.Point(xs[i], ys[i])
	}
}

// VLine draws a vertical line at x, dashed when dash > 0.
func (p *Plot) VLine(x float64, dash int) {
	if x < p.XMin || x > p.XMax {
		return
	}
	px, _ := p.pixel(x, p.YMin)
	for py := 0; py < p.Height*4; py++ {
		if dash > 0 && (py/dash)%2 == 1 {
			continue
		}
		p.Set(px, py)
	}
}

// Marker draws a small cross centred on (x, y).
func (p *Plot) Marker(x, y float64) {
	if !p.contains(x, y) {
		return
	}
	px, py := p.pixel(x, y)
	for d := -2; d <= 2; d++ {
		p.Set(px+d, py)
		p.Set(px, py+d)
	}
}

// clip is Liang-Barsky clipping against the data window. Segments with a
// non-finite endpoint are dropped.
func (p *Plot) clip(x0, y0, x1, y1 float64) (float64, float64, float64, float64, bool) {
	for _, v := range [...]float64{x0, y0, x1, y1} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, 0, 0, 0, false
		}
	}

	t0, t1 := 0.0, 1.0
	dx, dy := x1-x0, y1-y0
	edges := [4][2]float64{
		{-dx, x0 - p.XMin},
		{dx, p.XMax - x0},
		{-dy, y0 - p.YMin},
		{dy, p.YMax - y0},
	}
	for _, e := range edges {
		pe, qe := e[0], e[1]
		if pe == 0 {
			if qe < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := qe / pe
		if pe < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = math.Max(t0, r)
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = math.Min(t1, r)
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}
