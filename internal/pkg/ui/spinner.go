package ui

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// bubbleSpinner implements Spinner using Bubble Tea.
type bubbleSpinner struct {
	out     io.Writer
	styles  *styles
	model   spinnerModel
	program *tea.Program
	done    chan struct{}
	mu      sync.Mutex
}

// spinnerModel is the Bubble Tea model for simple spinner.
type spinnerModel struct {
	spinner  spinner.Model
	text     string
	quitting bool
}

// spinnerTextMsg is sent to update spinner text from outside.
type spinnerTextMsg struct {
	text string
}

// spinnerQuitMsg signals the spinner to quit.
type spinnerQuitMsg struct{}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerTextMsg:
		m.text = msg.text
		return m, nil
	case spinnerQuitMsg:
		m.quitting = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m spinnerModel) View() string {
	if m.quitting {
		return ""
	}
	return fmt.Sprintf("%s %s", m.spinner.View(), m.text)
}

func newBubbleSpinner(out io.Writer, text string, st *styles) *bubbleSpinner {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return &bubbleSpinner{
		out:    out,
		styles: st,
		model: spinnerModel{
			spinner: s,
			text:    text,
		},
	}
}

func (s *bubbleSpinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.program != nil {
		return
	}

	// No input: the spinner must not compete for the terminal's stdin
	s.program = tea.NewProgram(s.model, tea.WithOutput(s.out), tea.WithInput(nil))
	s.done = make(chan struct{})
	go func(p *tea.Program, done chan struct{}) {
		defer close(done)
		_, _ = p.Run()
	}(s.program, s.done)
}

// stop quits the program and waits for it to release the terminal.
func (s *bubbleSpinner) stop() {
	if s.program == nil {
		return
	}
	s.program.Send(spinnerQuitMsg{})
	<-s.done
	s.program = nil
}

func (s *bubbleSpinner) UpdateText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.model.text = text
	if s.program != nil {
		s.program.Send(spinnerTextMsg{text: text})
	}
}

func (s *bubbleSpinner) Succeed(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stop()
	fmt.Fprintln(s.out, s.styles.success.Render("✔ "+text))
}

func (s *bubbleSpinner) Fail(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stop()
	fmt.Fprintln(s.out, s.styles.errorStyle.Render("✖ "+text))
}
