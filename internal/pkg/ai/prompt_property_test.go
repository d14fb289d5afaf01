package ai

import (
	"strings"
	"testing"

	"github.com/aicommit/aicommit/internal/pkg/message"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestProperty_PromptInstructionInclusion verifies that both prompts list
// every commit type and that any diff is embedded without alteration.
func TestProperty_PromptInstructionInclusion(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	genFormat := gen.OneConstOf(message.FormatStrictSingleLine, message.FormatConventionalWithBody)

	properties.Property("system prompt lists every commit type", prop.ForAll(
		func(f message.Format) bool {
			prompt := NewPromptTemplate(f).SystemPrompt()
			for _, ct := range message.ValidCommitTypes {
				if !strings.Contains(prompt, ct) {
					return false
				}
			}
			return true
		},
		genFormat,
	))

	properties.Property("user prompt ends with the diff verbatim", prop.ForAll(
		func(f message.Format, diff string) bool {
			got := NewPromptTemplate(f).UserPrompt(diff)
			return strings.HasPrefix(got, UserPromptPrefix) && strings.TrimPrefix(got, UserPromptPrefix) == diff
		},
		genFormat,
		gen.AnyString(),
	))

	properties.TestingRun(t)
}
