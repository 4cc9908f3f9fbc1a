package analysis_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/logmap/internal/analysis"
	"github.com/san-kum/logmap/internal/dynamo"
	"github.com/san-kum/logmap/internal/logistic"
)

var _ = Describe("Sweep", func() {
	var cfg dynamo.SweepConfig

	BeforeEach(func() {
		cfg = dynamo.SweepConfig{AMin: 2.5, AMax: 4.0, Samples: 120, X0: 0.5, Iterations: 400, Transient: 300}
	})

	It("returns parallel sequences of samples × retained iterates", func() {
		res, err := analysis.Sweep(context.Background(), cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Params).To(HaveLen(120 * 100))
		Expect(res.Values).To(HaveLen(len(res.Params)))
	})

	It("settles on the non-zero fixed point below the first doubling", func() {
		cfg.AMin, cfg.AMax, cfg.Samples = 2.8, 2.8, 1
		res, err := analysis.Sweep(context.Background(), cfg)
		Expect(err).NotTo(HaveOccurred())
		for _, v := range res.Values {
			Expect(v).To(BeNumerically("~", 1.8/2.8, 1e-9))
		}
	})

	It("alternates between two values in the period-2 regime", func() {
		cfg.AMin, cfg.AMax, cfg.Samples = 3.2, 3.2, 1
		res, err := analysis.Sweep(context.Background(), cfg)
		Expect(err).NotTo(HaveOccurred())

		lo, hi := res.Values[0], res.Values[1]
		Expect(lo).NotTo(BeNumerically("~", hi, 1e-3))
		for i := 2; i < len(res.Values); i++ {
			Expect(res.Values[i]).To(BeNumerically("~", res.Values[i%2], 1e-9))
		}
	})

	It("produces identical output on any worker count", func() {
		seq, err := analysis.Sweep(context.Background(), cfg)
		Expect(err).NotTo(HaveOccurred())
		par, err := analysis.Sweep(context.Background(), cfg, analysis.WithWorkers(3))
		Expect(err).NotTo(HaveOccurred())
		Expect(par.Params).To(Equal(seq.Params))
		Expect(par.Values).To(Equal(seq.Values))
	})

	It("stops on a deadline with a sweep error", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
		defer cancel()
		time.Sleep(time.Millisecond)

		_, err := analysis.Sweep(ctx, cfg, analysis.WithWorkers(2))
		Expect(err).To(MatchError(dynamo.ErrSweepCanceled))
		Expect(err).To(MatchError(context.DeadlineExceeded))
	})

	Context("when the transient swallows every iteration", func() {
		It("returns empty sequences without error", func() {
			cfg.Transient = cfg.Iterations
			res, err := analysis.Sweep(context.Background(), cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Params).To(BeEmpty())
			Expect(res.Values).To(BeEmpty())
		})
	})
})

var _ = Describe("Cobweb", func() {
	It("keeps the escaping iterate and stops", func() {
		traj := analysis.Cobweb(0.9, 5.0, 10, 0, 1)
		Expect(traj.Iterations()).To(BeNumerically("<", 10))
		last, ok := traj.Last()
		Expect(ok).To(BeTrue())
		Expect(last.X).To(BeNumerically(">", 1.0))
		Expect(analysis.Escaped(traj, 0, 1)).To(BeTrue())
	})

	It("flags an escape on the final iteration", func() {
		traj := analysis.Cobweb(0.9, 5.0, 2, 0, 1)
		Expect(traj).To(HaveLen(6))
		Expect(analysis.Escaped(traj, 0, 1)).To(BeTrue())
	})

	It("runs every iteration when the orbit stays bounded", func() {
		traj := analysis.Cobweb(0.1, 3.7, 50, 0, 1)
		Expect(traj).To(HaveLen(2 + 2*50))
		Expect(analysis.Escaped(traj, 0, 1)).To(BeFalse())
	})
})

var _ = Describe("Regimes", func() {
	It("reports both fixed points above a = 1", func() {
		rep := analysis.Report(analysis.Regime{A: 2.8, Description: "Stable fixed point"}, 0.5, 10)
		Expect(rep.FixedPoints).To(HaveLen(2))
		Expect(rep.FixedPoints[0].X).To(BeZero())
		Expect(rep.FixedPoints[1].X).To(BeNumerically("~", 1.8/2.8, 1e-12))
		Expect(rep.FixedPoints[1].Stability).To(Equal(logistic.Attracting))
		Expect(rep.Orbit).To(HaveLen(11))
		Expect(rep.Orbit[0]).To(Equal(0.5))
	})

	It("reports only the origin when the population dies out", func() {
		rep := analysis.Report(analysis.Regimes[0], 0.5, 10)
		Expect(rep.FixedPoints).To(HaveLen(1))
		Expect(rep.FixedPoints[0].Stability).To(Equal(logistic.Attracting))
	})

	It("covers every regime in order", func() {
		reps := analysis.Reports(analysis.Regimes, 0.5, 5)
		Expect(reps).To(HaveLen(len(analysis.Regimes)))
		for i := 1; i < len(reps); i++ {
			Expect(reps[i].A).To(BeNumerically(">", reps[i-1].A))
		}
	})

	It("filters landmarks to the requested window", func() {
		Expect(analysis.LandmarksIn(2.5, 4.0)).To(HaveLen(4))
		Expect(analysis.LandmarksIn(3.4, 3.55)).To(HaveLen(2))
		Expect(analysis.LandmarksIn(0.5, 2.9)).To(BeEmpty())
	})

	It("drops fixed points outside the plotting range", func() {
		Expect(analysis.FixedPointsIn(2.8, 0.1, 1)).To(HaveLen(1))
		Expect(analysis.FixedPointsIn(0.5, 0, 1)).To(HaveLen(1))
	})
})
