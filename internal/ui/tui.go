package ui

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/momo-go/internal/command"
)

// maxTranscript bounds the number of transcript lines kept in memory.
const maxTranscript = 1000

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	inputStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	footerStyle = lipgloss.NewStyle().Faint(true)
)

// TUI is a full-screen command shell. Command output is collected from its
// Display and appended to a scrolling transcript.
type TUI struct {
	out     *bytes.Buffer
	console *Console
	prompt  string
}

// NewTUI returns a TUI with the given input prompt.
func NewTUI(prompt string) *TUI {
	out := &bytes.Buffer{}
	return &TUI{
		out:     out,
		console: NewConsole(out, WithFrame(false)),
		prompt:  prompt,
	}
}

// Display returns the command.Display whose output the TUI shows.
func (t *TUI) Display() command.Display {
	return t.console
}

// Run starts the program and blocks until the user quits, enters bye, or a
// storage error occurs. The storage error is returned.
func (t *TUI) Run(ctx context.Context, h Handler) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	model := newTUIModel(h, t.out, t.console, t.prompt)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	finalModel, err := program.Run()
	if err != nil {
		return err
	}
	if m, ok := finalModel.(*tuiModel); ok && m.fatal != nil {
		return m.fatal
	}
	return nil
}

type tuiModel struct {
	handler    Handler
	out        *bytes.Buffer
	console    *Console
	input      textinput.Model
	transcript []string
	height     int
	fatal      error
	quitting   bool
}

func newTUIModel(h Handler, out *bytes.Buffer, console *Console, prompt string) *tuiModel {
	ti := textinput.New()
	ti.Prompt = prompt
	ti.Placeholder = "todo read book"
	ti.CharLimit = 512
	ti.Width = 60
	ti.Focus()

	m := &tuiModel{
		handler: h,
		out:     out,
		console: console,
		input:   ti,
		height:  24,
	}
	console.ShowWelcome()
	m.drain()
	return m
}

func (m *tuiModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height
		if msg.Width > 10 {
			m.input.Width = msg.Width - 10
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit runs the current input line through the handler.
func (m *tuiModel) submit() (tea.Model, tea.Cmd) {
	line := m.input.Value()
	m.input.Reset()
	if strings.TrimSpace(line) == "" {
		return m, nil
	}
	m.append(inputStyle.Render(m.input.Prompt + line))

	exit, err := m.handler.Handle(line)
	m.drain()
	if err != nil {
		if command.IsFatal(err) {
			m.fatal = err
			m.append(errorStyle.Render(ErrorMessage(err)))
			m.quitting = true
			return m, tea.Quit
		}
		m.append(errorStyle.Render(ErrorMessage(err)))
		return m, nil
	}
	if exit {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// drain moves pending console output into the transcript.
func (m *tuiModel) drain() {
	for _, line := range splitLines(m.out.String()) {
		m.append(line)
	}
	m.out.Reset()
}

func (m *tuiModel) append(line string) {
	m.transcript = append(m.transcript, line)
	if over := len(m.transcript) - maxTranscript; over > 0 {
		m.transcript = m.transcript[over:]
	}
}

func (m *tuiModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Momo"))
	b.WriteString("\n\n")

	// Title, blank line, input, footer and two spacers.
	visible := m.height - 6
	if visible < 1 {
		visible = 1
	}
	lines := m.transcript
	if len(lines) > visible {
		lines = lines[len(lines)-visible:]
	}
	for _, line := range lines {
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.quitting {
		return b.String()
	}
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(footerStyle.Render("enter to run | esc or ctrl+c to quit"))
	b.WriteString("\n")
	return b.String()
}
