// Package clipboard copies text to the system clipboard.
package clipboard

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// Writer writes text to a clipboard.
type Writer interface {
	Write(text string) error
}

// System writes to the operating system clipboard.
type System struct{}

// NewSystem returns the system clipboard writer.
func NewSystem() *System {
	return &System{}
}

// Write copies text to the clipboard. It fails when no clipboard utility
// is available, e.g. on a headless Linux box without xclip or xsel.
func (System) Write(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("clipboard is not supported on this system")
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("failed to write clipboard: %w", err)
	}
	return nil
}

// Disabled is a Writer that never touches the clipboard.
type Disabled struct{}

// Write always reports that the clipboard is disabled.
func (Disabled) Write(string) error {
	return fmt.Errorf("clipboard disabled by configuration")
}

// New returns the system clipboard when enabled and Disabled otherwise.
func New(enabled bool) Writer {
	if enabled {
		return NewSystem()
	}
	return Disabled{}
}
