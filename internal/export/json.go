package export

import (
	"encoding/json"
	"io"
	"math"
	"strconv"

	"github.com/san-kum/logmap/internal/analysis"
	"github.com/san-kum/logmap/internal/dynamo"
	"github.com/san-kum/logmap/internal/logistic"
)

// Number is a float64 that encodes NaN and ±Inf as null, since escaped
// orbits routinely produce them and JSON has no spelling for either.
type Number float64

func (n Number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, f, 'g', -1, 64), nil
}

// Numbers converts xs element-wise.
func Numbers(xs []float64) []Number {
	out := make([]Number, len(xs))
	for i, x := range xs {
		out[i] = Number(x)
	}
	return out
}

type StepData struct {
	A     Number   `json:"a"`
	X0    Number   `json:"x0"`
	N     int      `json:"n"`
	X     Number   `json:"x"`
	Orbit []Number `json:"orbit,omitempty"`
}

// FixedPointData is analysis.FixedPoint with null for non-finite values.
type FixedPointData struct {
	X          Number             `json:"x"`
	Multiplier Number             `json:"multiplier"`
	Stability  logistic.Stability `json:"stability"`
}

// NewFixedPointData converts fps; the result is never nil.
func NewFixedPointData(fps []analysis.FixedPoint) []FixedPointData {
	out := make([]FixedPointData, len(fps))
	for i, fp := range fps {
		out[i] = FixedPointData{X: Number(fp.X), Multiplier: Number(fp.Multiplier), Stability: fp.Stability}
	}
	return out
}

type StabilityData struct {
	A           Number                `json:"a"`
	Lo          Number                `json:"lo"`
	Hi          Number                `json:"hi"`
	FixedPoints []FixedPointData `json:"fixed_points"`
	X           []Number         `json:"x"`
	Y           []Number         `json:"y"`
}

type CobwebData struct {
	A          Number   `json:"a"`
	X0         Number   `json:"x0"`
	Iterations int      `json:"iterations"`
	Completed  int      `json:"completed"`
	Escaped    bool     `json:"escaped"`
	Lo         Number   `json:"lo"`
	Hi         Number   `json:"hi"`
	X          []Number `json:"x"`
	Y          []Number `json:"y"`
}

type SweepData struct {
	AMin       Number   `json:"a_min"`
	AMax       Number   `json:"a_max"`
	Samples    int      `json:"samples"`
	X0         Number   `json:"x0"`
	Iterations int      `json:"iterations"`
	Transient  int      `json:"transient"`
	Params     []Number `json:"params"`
	Values     []Number `json:"values"`
}

type RegimeData struct {
	A           Number           `json:"a"`
	Description string           `json:"description"`
	X0          Number           `json:"x0"`
	FixedPoints []FixedPointData `json:"fixed_points"`
	Orbit       []Number         `json:"orbit"`
}

func NewCobwebData(a, x0 float64, iterations int, lo, hi float64, traj dynamo.Trajectory) CobwebData {
	return CobwebData{
		A:          Number(a),
		X0:         Number(x0),
		Iterations: iterations,
		Completed:  traj.Iterations(),
		Escaped:    analysis.Escaped(traj, lo, hi),
		Lo:         Number(lo),
		Hi:         Number(hi),
		X:          Numbers(traj.Xs()),
		Y:          Numbers(traj.Ys()),
	}
}

func NewSweepData(cfg dynamo.SweepConfig, res *dynamo.SweepResult) SweepData {
	d := SweepData{
		AMin:       Number(cfg.AMin),
		AMax:       Number(cfg.AMax),
		Samples:    cfg.Samples,
		X0:         Number(cfg.X0),
		Iterations: cfg.Iterations,
		Transient:  cfg.Transient,
		Params:     []Number{},
		Values:     []Number{},
	}
	if res != nil {
		d.Params = Numbers(res.Params)
		d.Values = Numbers(res.Values)
	}
	return d
}

func NewRegimeData(reports []analysis.RegimeReport) []RegimeData {
	out := make([]RegimeData, len(reports))
	for i, r := range reports {
		out[i] = RegimeData{
			A:           Number(r.A),
			Description: r.Description,
			X0:          Number(r.X0),
			FixedPoints: NewFixedPointData(r.FixedPoints),
			Orbit:       Numbers(r.Orbit),
		}
	}
	return out
}

// WriteJSON encodes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
