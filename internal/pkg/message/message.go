// Package message provides commit message parsing, validation and cleanup for aicommit.
package message

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// ValidCommitTypes contains the Conventional Commits types the generator may use.
var ValidCommitTypes = []string{
	"feat", "fix", "docs", "style", "refactor",
	"perf", "test", "build", "ci", "chore", "revert",
}

// conventionalCommitRegex matches <type>(<scope>): <subject> or <type>: <subject>.
var conventionalCommitRegex = regexp.MustCompile(
	`^(` + strings.Join(ValidCommitTypes, "|") + `)(\([^)]+\))?!?:\s*(.+)$`,
)

// ValidationError represents a commit message validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationResult contains the result of commit message validation.
type ValidationResult struct {
	IsValid  bool
	Errors   []ValidationError
	Warnings []string
}

// Issues returns every error and warning as display strings.
func (r *ValidationResult) Issues() []string {
	issues := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		issues = append(issues, e.Error())
	}
	return append(issues, r.Warnings...)
}

// CommitMessage represents a structured Conventional Commits message.
type CommitMessage struct {
	Type    string
	Scope   string
	Subject string
	Body    string
}

// NewCommitMessage creates a new CommitMessage from raw text.
func NewCommitMessage(rawText string) *CommitMessage {
	cm := &CommitMessage{}
	cm.Parse(rawText)
	return cm
}

// Parse parses raw text into the CommitMessage structure.
func (cm *CommitMessage) Parse(rawText string) {
	rawText = strings.TrimSpace(rawText)
	if rawText == "" {
		return
	}

	lines := strings.Split(rawText, "\n")
	cm.parseSubject(strings.TrimSpace(lines[0]))

	if len(lines) > 1 {
		cm.Body = strings.TrimSpace(strings.Join(lines[1:], "\n"))
	}
}

func (cm *CommitMessage) parseSubject(subject string) {
	matches := conventionalCommitRegex.FindStringSubmatch(subject)
	if matches == nil {
		// Keep the text so length checks still apply
		cm.Subject = subject
		return
	}
	cm.Type = matches[1]
	if matches[2] != "" {
		cm.Scope = strings.Trim(matches[2], "()")
	}
	cm.Subject = strings.TrimSpace(matches[3])
}

// String returns the full formatted commit message.
func (cm *CommitMessage) String() string {
	if cm.Body == "" {
		return cm.FormatSubject()
	}
	return cm.FormatSubject() + "\n\n" + cm.Body
}

// FormatSubject formats the subject line in Conventional Commits format.
func (cm *CommitMessage) FormatSubject() string {
	if cm.Type == "" {
		return cm.Subject
	}

	if cm.Scope != "" {
		return cm.Type + "(" + cm.Scope + "): " + cm.Subject
	}
	return cm.Type + ": " + cm.Subject
}

// ValidateWithWarnings validates the message against the grammar and the
// subject length limit of the given format.
func (cm *CommitMessage) ValidateWithWarnings(f Format) *ValidationResult {
	result := &ValidationResult{
		IsValid:  true,
		Errors:   []ValidationError{},
		Warnings: []string{},
	}

	if cm.Type == "" {
		result.IsValid = false
		result.Errors = append(result.Errors, ValidationError{
			Field:   "type",
			Message: fmt.Sprintf("missing commit type (valid types: %s)", strings.Join(ValidCommitTypes, ", ")),
		})
	}

	if cm.Subject == "" {
		result.IsValid = false
		result.Errors = append(result.Errors, ValidationError{
			Field:   "subject",
			Message: "missing commit subject",
		})
	}

	limit := f.MaxSubjectLength()
	if n := utf8.RuneCountInString(cm.FormatSubject()); n > limit {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"subject line exceeds %d characters (%d chars)", limit, n,
		))
	}

	if cm.Body != "" && !f.AllowsBody() {
		result.Warnings = append(result.Warnings, "message spans multiple lines")
	}

	return result
}

// Check parses raw text and returns every validation issue for the format.
// An empty result means the message is well formed.
func Check(rawText string, f Format) []string {
	return NewCommitMessage(rawText).ValidateWithWarnings(f).Issues()
}
