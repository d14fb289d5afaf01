package message

import (
	"strings"
)

var quotePairs = [][2]string{
	{`"`, `"`},
	{"'", "'"},
	{"`", "`"},
	{"“", "”"},
}

// Clean normalises a raw completion into a commit message.
// Surrounding whitespace, code fence markers and wrapping quotes are removed.
// The strict format keeps only the first non-empty line.
func Clean(raw string, f Format) string {
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")

	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		kept = append(kept, strings.TrimRight(line, " \t"))
	}

	text := strings.TrimSpace(strings.Join(kept, "\n"))
	if !f.AllowsBody() {
		text = firstLine(text)
	}

	return unquote(text)
}

func firstLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}

func unquote(text string) string {
	for {
		stripped := false
		for _, q := range quotePairs {
			if len(text) >= len(q[0])+len(q[1]) &&
				strings.HasPrefix(text, q[0]) && strings.HasSuffix(text, q[1]) {
				text = strings.TrimSpace(text[len(q[0]) : len(text)-len(q[1])])
				stripped = true
			}
		}
		if !stripped {
			return text
		}
	}
}

// shellEscaper escapes the characters that stay special inside double quotes.
var shellEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	`$`, `\$`,
	"`", "\\`",
)

// EscapeDoubleQuoted escapes a message for use between double quotes in a
// POSIX shell.
func EscapeDoubleQuoted(msg string) string {
	return shellEscaper.Replace(msg)
}

// ShellCommand renders the ready-to-run commit command for a message.
func ShellCommand(msg string) string {
	return `git commit -m "` + EscapeDoubleQuoted(msg) + `"`
}
