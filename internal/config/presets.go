package config

import (
	"errors"
	"fmt"
	"sort"
)

var ErrUnknownPreset = errors.New("config: unknown preset")

const (
	KindCobweb      = "cobweb"
	KindBifurcation = "bifurcation"
)

var unit = Range{Lo: 0, Hi: 1}

var Presets = map[string]map[string]*Config{
	KindCobweb: {
		"stable": {
			Cobweb: CobwebConfig{A: 2.8, X0: 0.1, Iterations: 20, Range: unit},
		},
		"period2": {
			Cobweb: CobwebConfig{A: 3.1, X0: 0.1, Iterations: 30, Range: unit},
		},
		"chaos": {
			Cobweb: CobwebConfig{A: 3.7, X0: 0.1, Iterations: 50, Range: unit},
		},
		"runaway": {
			Cobweb: CobwebConfig{A: 5.0, X0: 0.9, Iterations: 10, Range: unit},
		},
	},
	KindBifurcation: {
		"standard": {
			Bifurcation: BifurcationConfig{AMin: 2.5, AMax: 4.0, Samples: 1500, X0: 0.5, Iterations: 1000, Transient: 500},
		},
		"full": {
			Bifurcation: BifurcationConfig{AMin: 0.5, AMax: 4.0, Samples: 2000, X0: 0.5, Iterations: 1000, Transient: 500},
		},
		"overview": {
			Bifurcation: BifurcationConfig{AMin: 1.0, AMax: 4.0, Samples: 1000, X0: 0.5, Iterations: 500, Transient: 250},
		},
	},
}

func GetPreset(kind, preset string) *Config {
	kindPresets, ok := Presets[kind]
	if !ok {
		return nil
	}
	cfg, ok := kindPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

// ListPresets returns the preset names for kind in sorted order.
func ListPresets(kind string) []string {
	kindPresets, ok := Presets[kind]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(kindPresets))
	for name := range kindPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyPreset copies the section of the named preset that kind refers to
// into c, leaving the other sections untouched.
func (c *Config) ApplyPreset(kind, preset string) error {
	p := GetPreset(kind, preset)
	if p == nil {
		return fmt.Errorf("%w: %s/%s (available: %v)", ErrUnknownPreset, kind, preset, ListPresets(kind))
	}
	switch kind {
	case KindCobweb:
		c.Cobweb = p.Cobweb
	case KindBifurcation:
		workers := c.Bifurcation.Workers
		c.Bifurcation = p.Bifurcation
		c.Bifurcation.Workers = workers
	}
	return nil
}
