package ui

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type statusMsg string

type doneMsg struct{ err error }

// waitModel shows a spinner with a label and the latest status line until
// the wrapped work finishes.
type waitModel struct {
	spinner spinner.Model
	label   string
	status  string
	started time.Time
	done    bool
	cancel  context.CancelFunc
}

func newWaitModel(label string, cancel context.CancelFunc) waitModel {
	return waitModel{
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(SpinnerStyle)),
		label:   label,
		started: time.Now(),
		cancel:  cancel,
	}
}

// Init implements tea.Model
func (m waitModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update implements tea.Model
func (m waitModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			// the work sees the cancellation and reports back with doneMsg
			m.cancel()
			m.status = "cancelling"
		}
		return m, nil
	case statusMsg:
		m.status = string(msg)
		return m, nil
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model
func (m waitModel) View() string {
	if m.done {
		return ""
	}
	line := "  " + m.spinner.View() + " " + HeaderParamValueStyle.Render(m.label)
	elapsed := time.Since(m.started).Round(time.Second)
	line += " " + StepNoteStyle.Render("("+elapsed.String()+")")
	if m.status != "" {
		line += "\n    " + StepPendingStyle.Render(m.status)
	}
	return line + "\n"
}

// WaitFunc is long-running work shown behind a spinner. status replaces the
// line under the spinner.
type WaitFunc func(ctx context.Context, status func(string)) error

// RunWithSpinner runs fn while a spinner is shown on out. Pressing ctrl+c
// cancels the context passed to fn. When out is not a terminal fn runs
// without any animation.
func RunWithSpinner(ctx context.Context, out io.Writer, label string, fn WaitFunc) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if !IsTerminal(out) {
		return fn(ctx, func(string) {})
	}

	p := tea.NewProgram(newWaitModel(label, cancel), tea.WithOutput(out))

	errCh := make(chan error, 1)
	go func() {
		err := fn(ctx, func(s string) { p.Send(statusMsg(s)) })
		errCh <- err
		p.Send(doneMsg{err: err})
	}()

	if _, err := p.Run(); err != nil {
		cancel()
		<-errCh
		return err
	}
	return <-errCh
}
