package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/logmap/internal/analysis"
	"github.com/san-kum/logmap/internal/dynamo"
)

const (
	DefaultStabilityA  = 2.5
	DefaultCurvePoints = 1000
	DefaultCobwebA     = 3.2
	DefaultCobwebX0    = 0.1
	DefaultCobwebIters = 50
	DefaultSweepAMin   = 2.5
	DefaultSweepAMax   = 4.0
	DefaultSweepN      = 2000
	DefaultSweepX0     = 0.5
	DefaultSweepIters  = 1000
	DefaultTransient   = 500
	DefaultOrbitLen    = 10
)

type Config struct {
	Stability   StabilityConfig   `yaml:"stability"`
	Cobweb      CobwebConfig      `yaml:"cobweb"`
	Bifurcation BifurcationConfig `yaml:"bifurcation"`
	Regimes     []analysis.Regime `yaml:"regimes"`
	OrbitLength int               `yaml:"orbit_length"`
}

// Range is a closed interval [Lo, Hi].
type Range struct {
	Lo float64 `yaml:"lo"`
	Hi float64 `yaml:"hi"`
}

type StabilityConfig struct {
	A      float64 `yaml:"a"`
	Range  Range   `yaml:"range"`
	Points int     `yaml:"points"`
}

type CobwebConfig struct {
	A          float64 `yaml:"a"`
	X0         float64 `yaml:"x0"`
	Iterations int     `yaml:"iterations"`
	Range      Range   `yaml:"range"`
}

type BifurcationConfig struct {
	AMin       float64 `yaml:"a_min"`
	AMax       float64 `yaml:"a_max"`
	Samples    int     `yaml:"samples"`
	X0         float64 `yaml:"x0"`
	Iterations int     `yaml:"iterations"`
	Transient  int     `yaml:"transient"`
	Workers    int     `yaml:"workers"`
}

func DefaultConfig() *Config {
	unit := Range{Lo: 0, Hi: 1}
	return &Config{
		Stability: StabilityConfig{
			A:      DefaultStabilityA,
			Range:  unit,
			Points: DefaultCurvePoints,
		},
		Cobweb: CobwebConfig{
			A:          DefaultCobwebA,
			X0:         DefaultCobwebX0,
			Iterations: DefaultCobwebIters,
			Range:      unit,
		},
		Bifurcation: BifurcationConfig{
			AMin:       DefaultSweepAMin,
			AMax:       DefaultSweepAMax,
			Samples:    DefaultSweepN,
			X0:         DefaultSweepX0,
			Iterations: DefaultSweepIters,
			Transient:  DefaultTransient,
		},
		Regimes:     append([]analysis.Regime(nil), analysis.Regimes...),
		OrbitLength: DefaultOrbitLen,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Sweep converts the bifurcation section into the engine's input.
func (b BifurcationConfig) Sweep() dynamo.SweepConfig {
	return dynamo.SweepConfig{
		AMin:       b.AMin,
		AMax:       b.AMax,
		Samples:    b.Samples,
		X0:         b.X0,
		Iterations: b.Iterations,
		Transient:  b.Transient,
	}
}
