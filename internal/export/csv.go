package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/san-kum/logmap/internal/analysis"
	"github.com/san-kum/logmap/internal/dynamo"
)

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func writeRows(w io.Writer, header []string, n int, row func(i int) []string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if err := cw.Write(row(i)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTrajectory writes one x,y row per cobweb vertex.
func WriteTrajectory(w io.Writer, traj dynamo.Trajectory) error {
	return writeRows(w, []string{"x", "y"}, len(traj), func(i int) []string {
		return []string{formatFloat(traj[i].X), formatFloat(traj[i].Y)}
	})
}

// WriteSweep writes one a,x row per recorded point.
func WriteSweep(w io.Writer, res *dynamo.SweepResult) error {
	return writeRows(w, []string{"a", "x"}, res.Len(), func(i int) []string {
		return []string{formatFloat(res.Params[i]), formatFloat(res.Values[i])}
	})
}

// WriteCurve writes sampled map values as x,f(x) rows.
func WriteCurve(w io.Writer, xs, ys []float64) error {
	return writeRows(w, []string{"x", "f(x)"}, min(len(xs), len(ys)), func(i int) []string {
		return []string{formatFloat(xs[i]), formatFloat(ys[i])}
	})
}

// WriteOrbit writes n,x_n rows starting at n = 0.
func WriteOrbit(w io.Writer, orbit []float64) error {
	return writeRows(w, []string{"n", "x"}, len(orbit), func(i int) []string {
		return []string{strconv.Itoa(i), formatFloat(orbit[i])}
	})
}

// WriteFixedPoints writes x,multiplier,stability rows.
func WriteFixedPoints(w io.Writer, fps []analysis.FixedPoint) error {
	return writeRows(w, []string{"x", "multiplier", "stability"}, len(fps), func(i int) []string {
		return []string{formatFloat(fps[i].X), formatFloat(fps[i].Multiplier), fps[i].Stability.String()}
	})
}
