// Package errors provides error types and logging utilities for aicommit.
package errors

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrorCode represents the category of an error.
type ErrorCode int

const (
	// Configuration errors
	ErrMissingAPIKey ErrorCode = iota + 100
	ErrInvalidConfig

	// Repository errors
	ErrRepositoryAccess ErrorCode = iota + 200
	ErrCommitFailed
	ErrPushFailed

	// Generation errors
	ErrGenerationFailed ErrorCode = iota + 300

	// ErrNoStagedChanges is informational and never fails a run.
	ErrNoStagedChanges ErrorCode = 900
)

// ExitCode returns the process exit code for an error code.
// Every failure category exits with 1.
func (c ErrorCode) ExitCode() int {
	if c == ErrNoStagedChanges {
		return 0
	}
	return 1
}

// String returns a human-readable name for the error code.
func (c ErrorCode) String() string {
	switch c {
	case ErrMissingAPIKey:
		return "MissingAPIKey"
	case ErrInvalidConfig:
		return "InvalidConfig"
	case ErrRepositoryAccess:
		return "RepositoryAccess"
	case ErrCommitFailed:
		return "CommitFailed"
	case ErrPushFailed:
		return "PushFailed"
	case ErrGenerationFailed:
		return "GenerationFailed"
	case ErrNoStagedChanges:
		return "NoStagedChanges"
	default:
		return "Unknown"
	}
}

// AppError represents an application error with context.
type AppError struct {
	Code       ErrorCode
	Message    string
	Cause      error
	Context    map[string]interface{}
	Suggestion string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error.
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// WithSuggestion adds a suggestion to the error.
func (e *AppError) WithSuggestion(suggestion string) *AppError {
	e.Suggestion = suggestion
	return e
}

// New creates a new AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with context.
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError extracts an AppError from an error chain.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// HasCode reports whether err carries the given code anywhere in its chain.
func HasCode(err error, code ErrorCode) bool {
	for err != nil {
		var appErr *AppError
		if !errors.As(err, &appErr) {
			return false
		}
		if appErr.Code == code {
			return true
		}
		err = appErr.Cause
	}
	return false
}

// GetExitCode returns the process exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return 0
	}
	if appErr := GetAppError(err); appErr != nil {
		return appErr.Code.ExitCode()
	}
	return 1
}

// NewMissingAPIKeyError creates the configuration error for an absent credential.
func NewMissingAPIKeyError(envVar string) *AppError {
	return &AppError{
		Code:       ErrMissingAPIKey,
		Message:    fmt.Sprintf("%s is missing", envVar),
		Suggestion: fmt.Sprintf("Set it in your environment or a .env file: export %s=\"your_key_here\"", envVar),
	}
}

// NewInvalidConfigError creates an error for invalid configuration.
func NewInvalidConfigError(message string) *AppError {
	return &AppError{
		Code:       ErrInvalidConfig,
		Message:    message,
		Suggestion: "Run 'aicommit config list' to inspect the effective configuration",
	}
}

// NewRepositoryError creates an error for a failed repository query.
func NewRepositoryError(err error, output string) *AppError {
	appErr := Wrap(err, ErrRepositoryAccess, "git command failed").
		WithSuggestion("Make sure you are inside a git repository")
	if output != "" {
		appErr.WithContext("output", output)
	}
	return appErr
}

// NewGenerationError wraps any failure of the completion call.
// The underlying diagnostic is preserved in the message.
func NewGenerationError(err error) *AppError {
	return &AppError{
		Code:    ErrGenerationFailed,
		Message: "AI generation failed",
		Cause:   err,
	}
}

// NewCommitError creates an error for a failed git commit.
func NewCommitError(err error) *AppError {
	return &AppError{
		Code:    ErrCommitFailed,
		Message: "failed to create git commit",
		Cause:   err,
	}
}

// NewPushError creates an error for a failed push to remote.
func NewPushError(err error, remote string) *AppError {
	return Wrap(err, ErrPushFailed, fmt.Sprintf("failed to push to %s", remote)).
		WithContext("remote", remote).
		WithSuggestion(fmt.Sprintf("Check that remote '%s' exists and that you can push to it", remote))
}

// commandOutput returns the captured output stored on a git error, if any.
func commandOutput(err error) string {
	appErr := GetAppError(err)
	if appErr == nil || appErr.Context == nil {
		return ""
	}
	if out, ok := appErr.Context["output"].(string); ok {
		return strings.TrimSpace(out)
	}
	return ""
}

// FormatError formats an error for user display.
// API keys and other sensitive data are automatically masked.
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	var sb strings.Builder

	appErr := GetAppError(err)
	if appErr != nil {
		sb.WriteString("Error: ")
		sb.WriteString(SanitizeErrorMessage(appErr.Message))

		if appErr.Cause != nil {
			sb.WriteString("\n  Cause: ")
			sb.WriteString(SanitizeErrorMessage(appErr.Cause.Error()))
		}

		out := commandOutput(appErr)
		if out == "" {
			out = commandOutput(appErr.Cause)
		}
		if out != "" {
			sb.WriteString("\n  Output: ")
			sb.WriteString(SanitizeErrorMessage(out))
		}

		if appErr.Suggestion != "" {
			sb.WriteString("\n  Suggestion: ")
			sb.WriteString(appErr.Suggestion)
		}
	} else {
		sb.WriteString("Error: ")
		sb.WriteString(SanitizeErrorMessage(err.Error()))
	}

	return sb.String()
}

// FormatErrorVerbose formats an error with full details for verbose mode.
// API keys and other sensitive data are automatically masked.
func FormatErrorVerbose(err error) string {
	if err == nil {
		return ""
	}

	var sb strings.Builder

	appErr := GetAppError(err)
	if appErr != nil {
		sb.WriteString(fmt.Sprintf("Error [%s]: %s\n", appErr.Code.String(), SanitizeErrorMessage(appErr.Message)))

		if appErr.Cause != nil {
			sb.WriteString(fmt.Sprintf("  Cause: %v\n", SanitizeErrorMessage(appErr.Cause.Error())))
			sb.WriteString("  Error chain:\n")
			printErrorChain(&sb, appErr.Cause, 2)
		}

		if len(appErr.Context) > 0 {
			sb.WriteString("  Context:\n")
			for k, v := range appErr.Context {
				sb.WriteString(fmt.Sprintf("    %s: %v\n", k, SanitizeErrorMessage(fmt.Sprintf("%v", v))))
			}
		}

		if appErr.Suggestion != "" {
			sb.WriteString(fmt.Sprintf("  Suggestion: %s\n", appErr.Suggestion))
		}
	} else {
		sb.WriteString(fmt.Sprintf("Error: %v\n", SanitizeErrorMessage(err.Error())))
		sb.WriteString("  Error chain:\n")
		printErrorChain(&sb, err, 2)
	}

	return sb.String()
}

// printErrorChain prints the error chain with indentation.
func printErrorChain(sb *strings.Builder, err error, indent int) {
	if err == nil {
		return
	}

	prefix := strings.Repeat("  ", indent)
	errMsg := SanitizeErrorMessage(err.Error())
	sb.WriteString(fmt.Sprintf("%s- %T: %v\n", prefix, err, errMsg))

	if unwrapped := errors.Unwrap(err); unwrapped != nil {
		printErrorChain(sb, unwrapped, indent+1)
	}
}

// SanitizeErrorMessage masks any API keys in error messages.
func SanitizeErrorMessage(msg string) string {
	return apiKeyPattern.ReplaceAllStringFunc(msg, MaskAPIKey)
}

// apiKeyPattern matches OpenAI and OpenRouter style keys (sk-..., sk-or-v1-...).
var apiKeyPattern = regexp.MustCompile(`sk-[a-zA-Z0-9_-]{20,}`)
