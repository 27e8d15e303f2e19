package tui

import (
	"context"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// spinnerDoneMsg carries the finished work out of the program
type spinnerDoneMsg struct{}

type spinnerModel struct {
	spinner spinner.Model
	title   string
	done    bool
}

func newSpinnerModel(title string) spinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	return spinnerModel{spinner: s, title: title}
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerDoneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m spinnerModel) View() string {
	if m.done {
		return ""
	}
	return m.spinner.View() + " " + m.title + "\n"
}

// RunWithSpinner runs work while showing a spinner on stderr. The spinner is
// only drawn when stderr is a terminal and enabled is true; otherwise work
// runs directly. Signals are left to the caller's context.
func RunWithSpinner[T any](ctx context.Context, enabled bool, title string, work func(context.Context) (T, error)) (T, error) {
	if !enabled || !IsStderrTTY() {
		return work(ctx)
	}

	p := tea.NewProgram(newSpinnerModel(title),
		tea.WithInput(nil),
		tea.WithOutput(os.Stderr),
		tea.WithoutSignalHandler(),
		tea.WithContext(ctx),
	)

	var (
		result T
		err    error
	)
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		defer p.Send(spinnerDoneMsg{})
		result, err = work(ctx)
	}()

	// The program exits on spinnerDoneMsg or when ctx is cancelled; either
	// way the work goroutine owns the result.
	_, _ = p.Run()
	<-finished
	return result, err
}
