package analysis

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/san-kum/logmap/internal/dynamo"
	"github.com/san-kum/logmap/internal/logistic"
)

// progressSteps is how many progress reports a full sweep emits (every 5%).
const progressSteps = 20

// minChunk is the smallest number of parameter samples handed to a worker.
const minChunk = 8

type sweepOptions struct {
	workers  int
	progress dynamo.ProgressFunc
	fn       dynamo.Map
}

// SweepOption configures Sweep.
type SweepOption func(*sweepOptions)

// WithWorkers runs per-sample loops on up to n goroutines. n <= 0 uses one
// worker per CPU. Output is identical to a sequential sweep.
func WithWorkers(n int) SweepOption {
	return func(o *sweepOptions) { o.workers = dynamo.Workers(n) }
}

// WithProgress installs a callback fired at the start, every 5% of
// samples and on completion.
func WithProgress(fn dynamo.ProgressFunc) SweepOption {
	return func(o *sweepOptions) { o.progress = fn }
}

// WithMap sweeps an arbitrary map instead of the logistic map.
func WithMap(fn dynamo.Map) SweepOption {
	return func(o *sweepOptions) { o.fn = fn }
}

// Bifurcation is the sequential, uncancellable sweep over the five inputs.
// For each of samples evenly spaced values a in [aMin, aMax] it starts from
// x0, discards transient iterates and records the remaining
// iterations-transient ones.
func Bifurcation(aMin, aMax float64, samples int, x0 float64, iterations, transient int) *dynamo.SweepResult {
	res, _ := Sweep(context.Background(), dynamo.SweepConfig{
		AMin:       aMin,
		AMax:       aMax,
		Samples:    samples,
		X0:         x0,
		Iterations: iterations,
		Transient:  transient,
	})
	return res
}

// Sweep generates the bifurcation point cloud for cfg.
//
// Both output slices are sized up front to cfg.Total() and each sample
// writes its own contiguous block, so the result is ordered by parameter
// then by iteration regardless of worker count. ctx is checked once per
// sample; on cancellation a *dynamo.SweepError is returned.
func Sweep(ctx context.Context, cfg dynamo.SweepConfig, opts ...SweepOption) (*dynamo.SweepResult, error) {
	o := sweepOptions{workers: 1}
	for _, opt := range opts {
		opt(&o)
	}

	total := cfg.Total()
	res := &dynamo.SweepResult{
		Params: make([]float64, total),
		Values: make([]float64, total),
	}
	if total == 0 {
		if o.progress != nil && cfg.Samples > 0 {
			o.progress(cfg.Samples, cfg.Samples)
		}
		return res, nil
	}

	as := logistic.Linspace(cfg.AMin, cfg.AMax, cfg.Samples)
	keep := cfg.Retained()
	report := newReporter(o.progress, cfg.Samples)
	report.start()

	err := dynamo.ParallelFor(ctx, cfg.Samples, minChunk, o.workers, func(ctx context.Context, start, end int) error {
		for i := start; i < end; i++ {
			if err := ctx.Err(); err != nil {
				return &dynamo.SweepError{Sample: i, Param: as[i], Wrapped: err}
			}
			off := i * keep
			params := res.Params[off : off+keep]
			values := res.Values[off : off+keep]
			if o.fn == nil {
				sampleLogistic(as[i], cfg.X0, cfg.Transient, params, values)
			} else {
				sampleMap(o.fn, as[i], cfg.X0, cfg.Transient, params, values)
			}
			report.done()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

// sampleLogistic is the hot loop; logistic.Step inlines here.
func sampleLogistic(a, x0 float64, transient int, params, values []float64) {
	x := x0
	for j := 0; j < transient; j++ {
		x = logistic.Step(x, a)
	}
	for j := range values {
		x = logistic.Step(x, a)
		params[j] = a
		values[j] = x
	}
}

func sampleMap(f dynamo.Map, a, x0 float64, transient int, params, values []float64) {
	x := x0
	for j := 0; j < transient; j++ {
		x = f(x, a)
	}
	for j := range values {
		x = f(x, a)
		params[j] = a
		values[j] = x
	}
}

// reporter throttles progress callbacks to every interval samples and
// serialises them across workers.
type reporter struct {
	fn       dynamo.ProgressFunc
	total    int
	interval int64
	count    atomic.Int64
	mu       sync.Mutex
	last     int64
}

func newReporter(fn dynamo.ProgressFunc, total int) *reporter {
	return &reporter{
		fn:       fn,
		total:    total,
		interval: int64(max(1, total/progressSteps)),
	}
}

func (r *reporter) start() {
	if r.fn != nil {
		r.fn(0, r.total)
	}
}

func (r *reporter) done() {
	if r.fn == nil {
		return
	}
	n := r.count.Add(1)
	if n%r.interval != 0 && n != int64(r.total) {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if n > r.last {
		r.last = n
		r.fn(int(n), r.total)
	}
}
