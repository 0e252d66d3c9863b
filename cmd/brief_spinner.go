package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type briefStageMsg string

type briefDoneMsg struct {
	err error
}

type briefSpinnerModel struct {
	spinner spinner.Model
	label   string
	run     tea.Cmd
	err     error
	done    bool
}

func newBriefSpinnerModel(label string, run tea.Cmd) briefSpinnerModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return briefSpinnerModel{
		spinner: s,
		label:   label,
		run:     run,
	}
}

func (m briefSpinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.run)
}

func (m briefSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case briefStageMsg:
		m.label = string(msg)
		return m, nil
	case briefDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m briefSpinnerModel) View() string {
	if m.done {
		return ""
	}

	return fmt.Sprintf("%s %s", m.spinner.View(), m.label)
}

func runBriefSpinner(ctx context.Context, output io.Writer, run func(context.Context, func(string)) error) error {
	var program *tea.Program

	runCmd := func() tea.Msg {
		return briefDoneMsg{err: run(ctx, func(stage string) {
			program.Send(briefStageMsg(stage))
		})}
	}

	program = tea.NewProgram(
		newBriefSpinnerModel("Analyzing repository...", runCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := program.Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(briefSpinnerModel)
	if !ok {
		return fmt.Errorf("unexpected final spinner model type %T", finalModel)
	}

	return result.err
}
