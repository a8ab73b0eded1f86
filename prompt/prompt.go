// Package prompt implements the interactive prompts for values missing from
// the command line, plus the styled pre-flight summary.
package prompt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type (
	// TUI asks questions on the terminal, one small bubbletea program per
	// question. It satisfies project.Asker.
	TUI struct{}

	inputModel struct {
		validate func(string) (string, error)
		label    string
		errMsg   string
		value    string
		ti       textinput.Model
		done     bool
		aborted  bool
	}
)

var (
	// ErrAborted reports that the user bailed out with Esc or Ctrl+C.
	ErrAborted = errors.New("prompt aborted by user")

	labelStyle = lipgloss.NewStyle().Bold(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	fieldStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
)

func New() *TUI {
	return &TUI{}
}

func newInputModel(label string, secret bool, validate func(string) (string, error)) inputModel {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 50
	ti.Prompt = "> "

	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}

	ti.Focus()

	return inputModel{label: label, validate: validate, ti: ti}
}

func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd

		m.ti, cmd = m.ti.Update(msg)

		return m, cmd
	}

	switch keyMsg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.aborted = true

		return m, tea.Quit
	case tea.KeyEnter:
		value, err := m.validate(strings.TrimSpace(m.ti.Value()))
		if err != nil {
			m.errMsg = err.Error()
			m.ti.SetValue("")

			return m, nil
		}

		m.value = value
		m.done = true

		return m, tea.Quit
	default:
		var cmd tea.Cmd

		m.ti, cmd = m.ti.Update(msg)

		return m, cmd
	}
}

func (m inputModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder

	b.WriteString(labelStyle.Render(m.label))
	b.WriteString("\n")
	b.WriteString(m.ti.View())
	b.WriteString("\n")

	if m.errMsg != "" {
		b.WriteString(errorStyle.Render(" - Error: " + m.errMsg))
		b.WriteString("\n")
	}

	return b.String()
}

func run(m inputModel) (string, error) {
	out, err := tea.NewProgram(m).Run()
	if err != nil {
		return "", fmt.Errorf("prompt failed: %w", err)
	}

	final, ok := out.(inputModel)
	if !ok || final.aborted {
		return "", ErrAborted
	}

	return final.value, nil
}

// Ask prompts for a value and re-prompts until validate accepts it.
func (t *TUI) Ask(label string, validate func(string) (string, error)) (string, error) {
	return run(newInputModel(label, false, validate))
}

// Secret prompts for a masked value twice and loops until both entries match.
func (t *TUI) Secret(label string) (string, error) {
	anything := func(raw string) (string, error) {
		if raw == "" {
			return "", errors.New("value can't be empty")
		}

		return raw, nil
	}

	for {
		first, err := run(newInputModel(label, true, anything))
		if err != nil {
			return "", err
		}

		second, err := run(newInputModel("Please re-enter to confirm", true, anything))
		if err != nil {
			return "", err
		}

		if first == second {
			return first, nil
		}

		fmt.Println(errorStyle.Render(" - Error: entries do not match."))
	}
}

// Confirm asks a yes/no question; anything but y/yes is no.
func (t *TUI) Confirm(label string) (bool, error) {
	answer, err := run(newInputModel(label+" (y/N)", false, func(raw string) (string, error) {
		return strings.ToLower(raw), nil
	}))
	if err != nil {
		return false, err
	}

	return answer == "y" || answer == "yes", nil
}

// Summary renders aligned label/value rows for the pre-flight check.
func Summary(rows [][2]string) string {
	width := 0

	for _, row := range rows {
		if len(row[0]) > width {
			width = len(row[0])
		}
	}

	var b strings.Builder

	for _, row := range rows {
		b.WriteString(fmt.Sprintf("%*s: %s\n", width+2, row[0], fieldStyle.Render(row[1])))
	}

	return b.String()
}
