package message

import (
	"fmt"
	"strings"
)

// Format selects the output contract for generated commit messages.
// A format bundles the prompt shape, the cleanup applied to the
// completion and the subject length limit.
type Format int

const (
	// FormatStrictSingleLine produces exactly one line and is the default.
	FormatStrictSingleLine Format = iota
	// FormatConventionalWithBody allows a short subject and a bullet body.
	FormatConventionalWithBody
)

// Subject length limits per format.
const (
	StrictMaxSubjectLength = 150
	BodyMaxSubjectLength   = 50
)

var formatNames = map[Format]string{
	FormatStrictSingleLine:     "strict-single-line",
	FormatConventionalWithBody: "conventional-with-body",
}

// String returns the configuration name of the format.
func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return "unknown"
}

// MaxSubjectLength returns the subject length limit for the format.
func (f Format) MaxSubjectLength() int {
	if f == FormatConventionalWithBody {
		return BodyMaxSubjectLength
	}
	return StrictMaxSubjectLength
}

// AllowsBody reports whether the format keeps lines after the subject.
func (f Format) AllowsBody() bool {
	return f == FormatConventionalWithBody
}

// ParseFormat parses a format name. An empty name selects the default.
func ParseFormat(name string) (Format, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return FormatStrictSingleLine, nil
	}
	for f, n := range formatNames {
		if n == name {
			return f, nil
		}
	}
	return FormatStrictSingleLine, fmt.Errorf("unknown output format %q (valid: %s, %s)",
		name, FormatStrictSingleLine, FormatConventionalWithBody)
}
