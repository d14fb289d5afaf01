package ai

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/aicommit/aicommit/internal/pkg/message"
)

// UserPromptPrefix introduces the diff in the user message.
const UserPromptPrefix = "Here is the git diff to analyze:\n"

// strictSystemPrompt allows exactly one line of output.
const strictSystemPrompt = `You are an expert developer using the Conventional Commits specification.
Review the provided git diff and generate a commit message.

STRICT RULES:
1. Output MUST be a SINGLE LINE. No body, no bullets, no explanations.
2. Format: <type>(<optional scope>): <description>
3. Types must be one of: {{.Types}}.
4. Subject MUST be under {{.MaxSubject}} characters.
5. No markdown formatting. No code blocks. No quotes. No multi-line output.
6. Be brutally concise. Summarize the core change only.

Example output:
feat(auth): add google login`

// bodySystemPrompt allows a short subject followed by bullets.
const bodySystemPrompt = `You are an expert developer using the Conventional Commits specification.
Review the provided git diff and generate a commit message.

RULES:
1. First line format: <type>(<optional scope>): <description>
2. Types must be one of: {{.Types}}.
3. The first line MUST be at most {{.MaxSubject}} characters, imperative mood, no trailing period.
4. For complex changes add a blank line and then a short list of "- " bullets explaining what changed and why.
5. No markdown headings. No code blocks. No quotes around the message.

Example output:
feat(auth): add google login

- add OAuth callback handler
- store refresh tokens encrypted`

// promptData is rendered into the system prompt templates.
type promptData struct {
	Types      string
	MaxSubject int
}

// PromptTemplate renders the instructions for one output format.
type PromptTemplate struct {
	format message.Format
	tmpl   *template.Template
}

// NewPromptTemplate creates the prompt template for a format.
func NewPromptTemplate(f message.Format) *PromptTemplate {
	text := strictSystemPrompt
	if f.AllowsBody() {
		text = bodySystemPrompt
	}
	return &PromptTemplate{
		format: f,
		tmpl:   template.Must(template.New(f.String()).Parse(text)),
	}
}

// SystemPrompt renders the system instruction.
func (pt *PromptTemplate) SystemPrompt() string {
	var buf bytes.Buffer
	// The templates are constant and the data always matches them.
	_ = pt.tmpl.Execute(&buf, promptData{
		Types:      strings.Join(message.ValidCommitTypes, ", "),
		MaxSubject: pt.format.MaxSubjectLength(),
	})
	return buf.String()
}

// UserPrompt embeds the diff verbatim after the fixed prefix.
func (pt *PromptTemplate) UserPrompt(diff string) string {
	return UserPromptPrefix + diff
}
