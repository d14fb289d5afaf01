// Package ui provides terminal output for aicommit.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

const (
	// Title is printed once at startup.
	Title = "AI Commit Message Generator"

	ruleWidth = 50
)

// Spinner provides loading animation functionality.
type Spinner interface {
	Start()
	UpdateText(text string)
	// Succeed stops the spinner and reports success.
	Succeed(text string)
	// Fail stops the spinner and reports failure.
	Fail(text string)
}

// Manager defines the terminal output used by the commit pipeline.
type Manager interface {
	ShowTitle()
	ShowSpinner(text string) Spinner
	ShowInfo(message string)
	ShowWarning(message string)
	DisplayMessage(message, command string, copied bool)
}

// styles holds the lipgloss styles for UI rendering.
type styles struct {
	title      lipgloss.Style
	rule       lipgloss.Style
	message    lipgloss.Style
	success    lipgloss.Style
	errorStyle lipgloss.Style
	warning    lipgloss.Style
	dim        lipgloss.Style
	command    lipgloss.Style
}

func newStyles(colorEnabled bool) *styles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return &styles{
			title:      plain,
			rule:       plain,
			message:    plain,
			success:    plain,
			errorStyle: plain,
			warning:    plain,
			dim:        plain,
			command:    plain,
		}
	}

	return &styles{
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")),
		rule: lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")),
		message: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("220")),
		success: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42")),
		errorStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")),
		warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")),
		dim: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")),
		command: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),
	}
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// NewManager returns the animated manager when stdout is a terminal and
// the plain one otherwise. Colour is only used on a terminal.
func NewManager(colorEnabled bool) Manager {
	if IsTerminal(os.Stdout) {
		return NewDefaultManager(os.Stdout, colorEnabled)
	}
	return NewPlainManager(os.Stdout, os.Stderr)
}

// DefaultManager renders styled output and an animated spinner.
type DefaultManager struct {
	out    io.Writer
	styles *styles
}

// NewDefaultManager creates a new DefaultManager writing to out.
func NewDefaultManager(out io.Writer, colorEnabled bool) *DefaultManager {
	return &DefaultManager{
		out:    out,
		styles: newStyles(colorEnabled),
	}
}

// ShowTitle prints the application banner.
func (m *DefaultManager) ShowTitle() {
	fmt.Fprintln(m.out, m.styles.title.Render(Title))
}

// ShowSpinner creates a spinner for a loading state. Call Start to show it.
func (m *DefaultManager) ShowSpinner(text string) Spinner {
	return newBubbleSpinner(m.out, text, m.styles)
}

// ShowInfo displays an informational line.
func (m *DefaultManager) ShowInfo(message string) {
	fmt.Fprintln(m.out, message)
}

// ShowWarning displays a warning line.
func (m *DefaultManager) ShowWarning(message string) {
	fmt.Fprintln(m.out, m.styles.warning.Render(message))
}

// DisplayMessage shows the commit message between rules, followed by the
// ready-to-run command and the clipboard note.
func (m *DefaultManager) DisplayMessage(message, command string, copied bool) {
	rule := m.styles.rule.Render(strings.Repeat("-", ruleWidth))

	fmt.Fprintln(m.out)
	fmt.Fprintln(m.out, rule)
	fmt.Fprintln(m.out, m.styles.message.Render(message))
	fmt.Fprintln(m.out, rule)
	fmt.Fprintln(m.out)

	fmt.Fprintln(m.out, m.styles.dim.Render("To use this message:"))
	fmt.Fprintln(m.out, m.styles.command.Render(command))
	fmt.Fprintln(m.out, m.styles.dim.Render(clipboardNote(copied)))
}

// clipboardNote tells the user whether the command is on the clipboard.
func clipboardNote(copied bool) string {
	if copied {
		return "The commit message has also been copied to your clipboard."
	}
	return "The clipboard was not updated; copy the command above."
}

// PlainManager writes unstyled output for pipes and CI logs.
type PlainManager struct {
	out    io.Writer
	errOut io.Writer
}

// NewPlainManager creates a new PlainManager.
func NewPlainManager(out, errOut io.Writer) *PlainManager {
	return &PlainManager{out: out, errOut: errOut}
}

// ShowTitle prints the application banner.
func (m *PlainManager) ShowTitle() {
	fmt.Fprintln(m.out, Title)
}

// ShowSpinner returns a spinner that prints only its final state.
func (m *PlainManager) ShowSpinner(text string) Spinner {
	return &lineSpinner{out: m.out, errOut: m.errOut}
}

// ShowInfo displays an informational line.
func (m *PlainManager) ShowInfo(message string) {
	fmt.Fprintln(m.out, message)
}

// ShowWarning displays a warning line.
func (m *PlainManager) ShowWarning(message string) {
	fmt.Fprintln(m.errOut, message)
}

// DisplayMessage shows the commit message, the command and the clipboard note.
func (m *PlainManager) DisplayMessage(message, command string, copied bool) {
	rule := strings.Repeat("-", ruleWidth)
	fmt.Fprintf(m.out, "\n%s\n%s\n%s\n\n", rule, message, rule)
	fmt.Fprintln(m.out, "To use this message:")
	fmt.Fprintln(m.out, command)
	fmt.Fprintln(m.out, clipboardNote(copied))
}

// lineSpinner reports only the final state of an operation.
type lineSpinner struct {
	out    io.Writer
	errOut io.Writer
}

func (s *lineSpinner) Start()            {}
func (s *lineSpinner) UpdateText(string) {}

func (s *lineSpinner) Succeed(text string) {
	fmt.Fprintln(s.out, text)
}

func (s *lineSpinner) Fail(text string) {
	fmt.Fprintln(s.errOut, text)
}
