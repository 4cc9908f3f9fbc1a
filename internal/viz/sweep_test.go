package viz

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/logmap/internal/analysis"
	"github.com/san-kum/logmap/internal/dynamo"
)

func testSweepConfig() dynamo.SweepConfig {
	return dynamo.SweepConfig{AMin: 2.5, AMax: 4.0, Samples: 40, X0: 0.5, Iterations: 60, Transient: 30}
}

func update(t *testing.T, m SweepModel, msg tea.Msg) (SweepModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	sm, ok := next.(SweepModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return sm, cmd
}

func TestSweepModelProgress(t *testing.T) {
	m := NewSweepModel(testSweepConfig(), nil)
	if m.Fraction() != 0 {
		t.Errorf("initial fraction = %v", m.Fraction())
	}

	m, _ = update(t, m, ProgressMsg{Done: 20, Total: 40})
	if m.Fraction() != 0.5 {
		t.Errorf("fraction = %v, want 0.5", m.Fraction())
	}

	m, _ = update(t, m, ProgressMsg{Done: 10, Total: 40})
	if m.Fraction() != 0.5 {
		t.Error("progress should never move backwards")
	}

	view := m.View()
	if !strings.Contains(view, "20/40") || !strings.Contains(view, "50.0%") {
		t.Errorf("unexpected view:\n%s", view)
	}
}

func TestSweepModelTick(t *testing.T) {
	m := NewSweepModel(testSweepConfig(), nil)
	m, cmd := update(t, m, TickMsg{})
	if cmd == nil {
		t.Error("running sweep should keep ticking")
	}
	if m.frame != 1 {
		t.Errorf("frame = %d, want 1", m.frame)
	}

	m, _ = update(t, m, SweepDoneMsg{})
	if _, cmd = update(t, m, TickMsg{}); cmd != nil {
		t.Error("finished sweep should stop ticking")
	}
}

func TestSweepModelDone(t *testing.T) {
	cfg := testSweepConfig()
	res := analysis.Bifurcation(cfg.AMin, cfg.AMax, cfg.Samples, cfg.X0, cfg.Iterations, cfg.Transient)

	m := NewSweepModel(cfg, nil)
	m, _ = update(t, m, SweepDoneMsg{Result: res})

	got, err := m.Result()
	if err != nil || got != res {
		t.Errorf("Result() = %v, %v", got, err)
	}
	if m.Fraction() != 1 {
		t.Errorf("fraction = %v, want 1", m.Fraction())
	}
	if view := m.View(); !strings.Contains(view, "Bifurcation diagram") {
		t.Errorf("expected diagram:\n%s", view)
	}
}

func TestSweepModelWithSize(t *testing.T) {
	cfg := testSweepConfig()
	res := analysis.Bifurcation(cfg.AMin, cfg.AMax, cfg.Samples, cfg.X0, cfg.Iterations, cfg.Transient)

	small := NewSweepModel(cfg, nil).WithSize(24, 6)
	small, _ = update(t, small, SweepDoneMsg{Result: res})
	full := NewSweepModel(cfg, nil).WithSize(0, -1)
	full, _ = update(t, full, SweepDoneMsg{Result: res})

	want := BifurcationPlot(res, cfg.AMin, cfg.AMax, analysis.LandmarksIn(cfg.AMin, cfg.AMax), 24, 6)
	if !strings.Contains(small.View(), want) {
		t.Errorf("sized view should hold the 24x6 diagram:\n%s", small.View())
	}
	if strings.Count(small.View(), "\n") >= strings.Count(full.View(), "\n") {
		t.Error("non-positive sizes should keep the default diagram size")
	}
}

func TestSweepModelError(t *testing.T) {
	m := NewSweepModel(testSweepConfig(), nil)
	m, _ = update(t, m, SweepDoneMsg{Err: errors.New("boom")})

	if view := m.View(); !strings.Contains(view, "boom") {
		t.Errorf("expected error in view:\n%s", view)
	}
}

func TestSweepModelQuitCancels(t *testing.T) {
	canceled := false
	m := NewSweepModel(testSweepConfig(), func() { canceled = true })

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if !canceled {
		t.Error("quitting a running sweep should cancel it")
	}
}

func TestSweepModelQuitAfterDone(t *testing.T) {
	canceled := false
	m := NewSweepModel(testSweepConfig(), func() { canceled = true })
	m, _ = update(t, m, SweepDoneMsg{})

	update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if canceled {
		t.Error("finished sweep should not be canceled")
	}
}
