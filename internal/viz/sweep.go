package viz

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/logmap/internal/analysis"
	"github.com/san-kum/logmap/internal/dynamo"
)

const (
	barWidth     = 40
	tickInterval = time.Second / 15
)

type TickMsg time.Time

// ProgressMsg carries a progress report from the running sweep.
type ProgressMsg struct {
	Done, Total int
}

// SweepDoneMsg is sent once the sweep returns.
type SweepDoneMsg struct {
	Result *dynamo.SweepResult
	Err    error
}

// SweepModel shows sweep progress and, once finished, the diagram.
type SweepModel struct {
	cfg       dynamo.SweepConfig
	done      int
	total     int
	start     time.Time
	elapsed   time.Duration
	frame     int
	finished  bool
	result    *dynamo.SweepResult
	err       error
	cancel    context.CancelFunc
	landmarks []analysis.Landmark
	width     int
	height    int
}

// NewSweepModel prepares a model for cfg. cancel is called when the user
// quits before the sweep finishes.
func NewSweepModel(cfg dynamo.SweepConfig, cancel context.CancelFunc) SweepModel {
	return SweepModel{
		cfg:       cfg,
		total:     cfg.Samples,
		start:     time.Now(),
		cancel:    cancel,
		landmarks: analysis.LandmarksIn(cfg.AMin, cfg.AMax),
		width:     DefaultWidth,
		height:    DefaultHeight,
	}
}

// WithSize sets the diagram size in terminal cells. Non-positive values
// keep the current size.
func (m SweepModel) WithSize(w, h int) SweepModel {
	if w > 0 {
		m.width = w
	}
	if h > 0 {
		m.height = h
	}
	return m
}

func (m SweepModel) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m SweepModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			if !m.finished && m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		}
	case ProgressMsg:
		if msg.Done > m.done {
			m.done = msg.Done
		}
		if msg.Total > 0 {
			m.total = msg.Total
		}
	case SweepDoneMsg:
		m.finished = true
		m.result = msg.Result
		m.err = msg.Err
		m.elapsed = time.Since(m.start)
		if msg.Err == nil {
			m.done = m.total
		}
		return m, nil
	case TickMsg:
		if m.finished {
			return m, nil
		}
		m.frame++
		m.elapsed = time.Since(m.start)
		return m, tick()
	}
	return m, nil
}

// Fraction is the completed share of samples in [0, 1].
func (m SweepModel) Fraction() float64 {
	if m.total <= 0 {
		return 0
	}
	return min(1, float64(m.done)/float64(m.total))
}

func (m SweepModel) View() string {
	var b strings.Builder
	b.WriteString(Title.Render("Bifurcation sweep"))
	b.WriteString("\n")
	b.WriteString(Subtle.Render(m.cfg.String()))
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(ErrorText.Render(m.err.Error()))
		b.WriteString("\n")
	case m.finished:
		b.WriteString(BifurcationPlot(m.result, m.cfg.AMin, m.cfg.AMax, m.landmarks, m.width, m.height))
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("%s %s\n", MetricLabel.Render("elapsed:"), MetricValue.Render(m.elapsed.Round(time.Millisecond).String())))
	default:
		fmt.Fprintf(&b, "%s %s %s\n",
			AnimatedSpinner(m.frame),
			ProgressBar(m.Fraction(), barWidth),
			MetricValue.Render(fmt.Sprintf("%5.1f%%", 100*m.Fraction())),
		)
		fmt.Fprintf(&b, "%s %s  %s %s\n",
			MetricLabel.Render("samples:"),
			MetricValue.Render(fmt.Sprintf("%d/%d", m.done, m.total)),
			MetricLabel.Render("elapsed:"),
			MetricValue.Render(m.elapsed.Round(time.Second).String()),
		)
	}

	b.WriteString("\n")
	b.WriteString(KeyHint.Render("q: quit"))
	return b.String()
}

// Result returns the finished sweep, or nil while it is still running.
func (m SweepModel) Result() (*dynamo.SweepResult, error) {
	return m.result, m.err
}

// RunSweep runs the sweep under a bubbletea program, feeding progress
// reports to the model, and draws the finished diagram at w x h cells.
// Quitting early cancels the sweep and returns its *dynamo.SweepError.
func RunSweep(ctx context.Context, cfg dynamo.SweepConfig, workers, w, h int, opts ...tea.ProgramOption) (*dynamo.SweepResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(NewSweepModel(cfg, cancel).WithSize(w, h), opts...)
	out := make(chan SweepDoneMsg, 1)

	go func() {
		res, err := analysis.Sweep(ctx, cfg,
			analysis.WithWorkers(workers),
			analysis.WithProgress(func(done, total int) {
				p.Send(ProgressMsg{Done: done, Total: total})
			}),
		)
		msg := SweepDoneMsg{Result: res, Err: err}
		out <- msg
		p.Send(msg)
	}()

	if _, err := p.Run(); err != nil {
		cancel()
		<-out
		return nil, err
	}
	cancel()
	msg := <-out
	return msg.Result, msg.Err
}
