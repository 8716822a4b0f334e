// Package prompt asks the line-oriented questions around typing attempts.
package prompt

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrAborted is returned when the user leaves a prompt with Esc or Ctrl+C.
var ErrAborted = errors.New("prompt aborted")

type mode uint8

const (
	modeText mode = iota
	modeSecret
	modeConfirm
)

var (
	questionStyle = lipgloss.NewStyle().Bold(true)
	answerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// Model is a single-question bubbletea program.
type Model struct {
	question string
	mode     mode
	input    textinput.Model

	answer  string
	hint    string
	done    bool
	aborted bool
}

func newModel(question string, m mode) Model {
	input := textinput.New()
	input.Prompt = "> "
	input.Focus()
	switch m {
	case modeSecret:
		input.EchoMode = textinput.EchoPassword
		input.EchoCharacter = '*'
	case modeConfirm:
		input.Placeholder = "y/n"
		input.CharLimit = 3
	}
	return Model{question: question, mode: m, input: input}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.aborted = true
		return m, tea.Quit
	case tea.KeyEnter:
		return m.submit()
	}
	m.hint = ""
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.input.Value())
	if m.mode == modeConfirm {
		if _, ok := parseYesNo(value); !ok {
			m.hint = "Please answer y or n."
			m.input.Reset()
			return m, nil
		}
	} else if value == "" {
		m.hint = "A value is required."
		return m, nil
	}
	m.answer = value
	m.done = true
	return m, tea.Quit
}

// View implements tea.Model.
func (m Model) View() string {
	question := questionStyle.Render(m.question)
	if m.done {
		shown := m.answer
		if m.mode == modeSecret {
			shown = strings.Repeat("*", min(len(shown), 8))
		}
		return question + " " + answerStyle.Render(shown) + "\n"
	}
	if m.aborted {
		return question + "\n"
	}
	view := question + "\n" + m.input.View() + "\n"
	if m.hint != "" {
		view += hintStyle.Render(m.hint) + "\n"
	}
	return view
}

// parseYesNo accepts y/yes/n/no in any case.
func parseYesNo(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes":
		return true, true
	case "n", "no":
		return false, true
	default:
		return false, false
	}
}

// Console runs prompts on a terminal. Zero values use stdin and stdout.
type Console struct {
	In  io.Reader
	Out io.Writer
}

// Ask returns a non-empty line of text.
func (c *Console) Ask(question string) (string, error) {
	m, err := c.run(newModel(question, modeText))
	if err != nil {
		return "", err
	}
	return m.answer, nil
}

// AskSecret is Ask with the input masked.
func (c *Console) AskSecret(question string) (string, error) {
	m, err := c.run(newModel(question, modeSecret))
	if err != nil {
		return "", err
	}
	return m.answer, nil
}

// Confirm asks a y/n question.
func (c *Console) Confirm(question string) (bool, error) {
	m, err := c.run(newModel(question+" (y/n)", modeConfirm))
	if err != nil {
		return false, err
	}
	yes, _ := parseYesNo(m.answer)
	return yes, nil
}

func (c *Console) run(m Model) (Model, error) {
	in, out := c.In, c.Out
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	program := tea.NewProgram(m, tea.WithInput(in), tea.WithOutput(out))
	final, err := program.Run()
	if err != nil {
		return Model{}, fmt.Errorf("failed to run prompt: %w", err)
	}
	result, ok := final.(Model)
	if !ok {
		return Model{}, fmt.Errorf("unexpected prompt model %T", final)
	}
	if result.aborted {
		return Model{}, ErrAborted
	}
	return result, nil
}
