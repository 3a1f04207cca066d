package tui

import (
	"context"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type spinnerDoneMsg struct{}

type spinnerModel struct {
	spinner spinner.Model
	title   string
	cancel  context.CancelFunc
	done    bool
}

func newSpinnerModel(title string, cancel context.CancelFunc) *spinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return &spinnerModel{spinner: s, title: title, cancel: cancel}
}

func (m *spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m *spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.cancel()
			m.done = true
			return m, tea.Quit
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case spinnerDoneMsg:
		m.done = true
		return m, tea.Quit
	}

	return m, nil
}

func (m *spinnerModel) View() string {
	if m.done {
		return ""
	}
	return m.spinner.View() + " " + m.title + "...\n"
}

// WithSpinner runs fn while a spinner is shown on the terminal. Console
// logging is held back until fn returns; ctrl+c cancels the context passed
// to fn. Without a terminal fn simply runs.
func WithSpinner(ctx context.Context, splog *Splog, title string, fn func(ctx context.Context) error) error {
	if !IsTTY() {
		splog.Debug("%s...", title)
		return fn(ctx)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	program := tea.NewProgram(newSpinnerModel(title, cancel), tea.WithInput(os.Stdin), tea.WithOutput(os.Stdout))
	go func() {
		_, _ = program.Run()
	}()

	splog.SetQuiet(true)
	err := fn(ctx)
	splog.SetQuiet(false)

	program.Send(spinnerDoneMsg{})
	program.Wait()
	return err
}
