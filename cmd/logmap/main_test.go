package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/logmap/internal/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := root.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "logmap.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestStepCommand(t *testing.T) {
	out, err := execute(t, "step", "--x", "0.5", "--a", "3")
	if err != nil {
		t.Fatalf("step failed: %v", err)
	}
	if out != "0.75\n" {
		t.Errorf("got %q, want 0.75", out)
	}
}

func TestFixedCommandJSON(t *testing.T) {
	out, err := execute(t, "fixed", "--a", "2.5", "-f", "json")
	if err != nil {
		t.Fatalf("fixed failed: %v", err)
	}

	var fps []struct {
		X         float64 `json:"x"`
		Stability string  `json:"stability"`
	}
	if err := json.Unmarshal([]byte(out), &fps); err != nil {
		t.Fatalf("bad json: %v\n%s", err, out)
	}
	if len(fps) != 2 {
		t.Fatalf("expected 2 fixed points, got %d", len(fps))
	}
	if fps[1].X != 0.6 || fps[1].Stability != "attracting" {
		t.Errorf("unexpected fixed point %+v", fps[1])
	}
	if fps[0].Stability != "repelling" {
		t.Errorf("origin should repel at a = 2.5, got %s", fps[0].Stability)
	}
}

func TestFixedCommandInfiniteParameter(t *testing.T) {
	out, err := execute(t, "fixed", "--a", "+Inf", "-f", "json")
	if err != nil {
		t.Fatalf("fixed failed: %v", err)
	}
	if !strings.Contains(out, `"x": null`) {
		t.Errorf("expected null fixed point:\n%s", out)
	}
}

func TestCobwebPresetEscapes(t *testing.T) {
	out, err := execute(t, "cobweb", "--preset", "runaway", "-f", "json")
	if err != nil {
		t.Fatalf("cobweb failed: %v", err)
	}

	var data struct {
		A          float64 `json:"a"`
		Iterations int     `json:"iterations"`
		Completed  int     `json:"completed"`
		Escaped    bool    `json:"escaped"`
	}
	if err := json.Unmarshal([]byte(out), &data); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if data.A != 5 || data.Iterations != 10 {
		t.Errorf("preset not applied: %+v", data)
	}
	if !data.Escaped || data.Completed != 2 {
		t.Errorf("expected escape after 2 iterations, got %+v", data)
	}
}

func TestCobwebFlagOverridesPreset(t *testing.T) {
	out, err := execute(t, "cobweb", "--preset", "stable", "--iterations", "3", "-f", "csv")
	if err != nil {
		t.Fatalf("cobweb failed: %v", err)
	}
	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1+2+2*3 {
		t.Errorf("expected header and 8 vertices, got %d records", len(records))
	}
}

func TestCobwebUnknownPreset(t *testing.T) {
	_, err := execute(t, "cobweb", "--preset", "nope")
	if !errors.Is(err, config.ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestCobwebInvalidWindow(t *testing.T) {
	if _, err := execute(t, "cobweb", "--lo", "1", "--hi", "0"); err == nil {
		t.Error("expected error for inverted window")
	}
}

func TestBifurcateCSV(t *testing.T) {
	out, err := execute(t, "bifurcate",
		"--a-min", "3", "--a-max", "3", "--samples", "1",
		"--x0", "0.5", "--iterations", "4", "--transient", "2",
		"--workers", "1", "-f", "csv")
	if err != nil {
		t.Fatalf("bifurcate failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 || lines[0] != "a,x" {
		t.Errorf("unexpected output %q", out)
	}
	if !strings.HasPrefix(lines[1], "3,") {
		t.Errorf("expected a = 3 in %q", lines[1])
	}
}

func TestBifurcateText(t *testing.T) {
	out, err := execute(t, "bifurcate", "--samples", "20", "--iterations", "40", "--transient", "20", "--width", "30", "--height", "8")
	if err != nil {
		t.Fatalf("bifurcate failed: %v", err)
	}
	if !strings.Contains(out, "Bifurcation diagram") || !strings.Contains(out, "Onset of chaos") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestConfigFileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
cobweb:
  a: 3.9
  iterations: 5
`)
	out, err := execute(t, "--config", path, "cobweb", "-f", "json")
	if err != nil {
		t.Fatalf("cobweb failed: %v", err)
	}

	var data struct {
		A          float64 `json:"a"`
		X0         float64 `json:"x0"`
		Iterations int     `json:"iterations"`
	}
	if err := json.Unmarshal([]byte(out), &data); err != nil {
		t.Fatal(err)
	}
	if data.A != 3.9 || data.Iterations != 5 {
		t.Errorf("config not applied: %+v", data)
	}
	if data.X0 != config.DefaultCobwebX0 {
		t.Errorf("x0 should keep its default, got %v", data.X0)
	}
}

func TestMissingConfigFile(t *testing.T) {
	if _, err := execute(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "step"); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestUnknownFormat(t *testing.T) {
	if _, err := execute(t, "step", "-f", "xml"); err == nil {
		t.Error("expected error for unknown format")
	}
	if _, err := execute(t, "fixed", "-f", "svg"); err == nil {
		t.Error("fixed has no svg rendering")
	}
}

func TestInvalidPlotSize(t *testing.T) {
	for _, args := range [][]string{
		{"cobweb", "--width", "-3"},
		{"stability", "--height", "-1"},
		{"bifurcate", "--samples", "5", "--width", "0"},
	} {
		if _, err := execute(t, args...); err == nil || !strings.Contains(err.Error(), "plot size") {
			t.Errorf("%v: expected plot size error, got %v", args, err)
		}
	}
}

func TestIterateCommand(t *testing.T) {
	out, err := execute(t, "iterate", "--a", "2", "--x0", "0.5", "-n", "3", "-f", "csv")
	if err != nil {
		t.Fatalf("iterate failed: %v", err)
	}
	if out != "n,x\n0,0.5\n1,0.5\n2,0.5\n3,0.5\n" {
		t.Errorf("unexpected orbit %q", out)
	}

	out, err = execute(t, "iterate", "--a", "2.8", "-n", "20")
	if err != nil {
		t.Fatalf("iterate failed: %v", err)
	}
	if !strings.Contains(out, "x_20 =") {
		t.Errorf("expected final value line:\n%s", out)
	}
}

func TestStabilitySVG(t *testing.T) {
	out, err := execute(t, "stability", "--a", "3.2", "-f", "svg")
	if err != nil {
		t.Fatalf("stability failed: %v", err)
	}
	if !strings.HasPrefix(out, "<?xml") || !strings.Contains(out, "</svg>") {
		t.Errorf("expected svg, got %q", out[:min(len(out), 80)])
	}
}

func TestRegimesJSON(t *testing.T) {
	out, err := execute(t, "regimes", "-f", "json", "-n", "4")
	if err != nil {
		t.Fatalf("regimes failed: %v", err)
	}
	var data []struct {
		A     float64   `json:"a"`
		Orbit []float64 `json:"orbit"`
	}
	if err := json.Unmarshal([]byte(out), &data); err != nil {
		t.Fatal(err)
	}
	if len(data) != len(config.DefaultConfig().Regimes) {
		t.Errorf("expected every regime, got %d", len(data))
	}
	if len(data[0].Orbit) != 5 {
		t.Errorf("expected 5 orbit values, got %d", len(data[0].Orbit))
	}
}

func TestRegimesText(t *testing.T) {
	out, err := execute(t, "regimes")
	if err != nil {
		t.Fatalf("regimes failed: %v", err)
	}
	for _, want := range []string{"behaviour", "fixed points", "Period-3 window in chaos", "0.5000", "…"} {
		if !strings.Contains(out, want) {
			t.Errorf("regime table missing %q:\n%s", want, out)
		}
	}
}

func TestCompareJSON(t *testing.T) {
	path := writeConfig(t, `
bifurcation:
  a_min: 2.5
  a_max: 4.0
  samples: 10
  iterations: 20
  transient: 10
`)
	out, err := execute(t, "--config", path, "compare", "--preset", "", "--a", "2.8,3.7", "-f", "json")
	if err != nil {
		t.Fatalf("compare failed: %v", err)
	}

	var data struct {
		Cobwebs []json.RawMessage `json:"cobwebs"`
		Sweep   struct {
			Values []float64 `json:"values"`
		} `json:"sweep"`
	}
	if err := json.Unmarshal([]byte(out), &data); err != nil {
		t.Fatal(err)
	}
	if len(data.Cobwebs) != 2 {
		t.Errorf("expected 2 cobwebs, got %d", len(data.Cobwebs))
	}
	if len(data.Sweep.Values) != 100 {
		t.Errorf("expected 100 sweep values, got %d", len(data.Sweep.Values))
	}
}

func TestPresetsCommand(t *testing.T) {
	out, err := execute(t, "presets")
	if err != nil {
		t.Fatalf("presets failed: %v", err)
	}
	for _, want := range []string{"runaway", "period2", "overview", "standard"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing preset %q:\n%s", want, out)
		}
	}

	if _, err := execute(t, "presets", "nonexistent"); !errors.Is(err, config.ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestInitConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	if _, err := execute(t, "init-config", path); err != nil {
		t.Fatalf("init-config failed: %v", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("written config does not load: %v", err)
	}
	if cfg.Bifurcation.Samples != config.DefaultSweepN {
		t.Errorf("unexpected samples %d", cfg.Bifurcation.Samples)
	}
}
