package cmd

import (
	"testing"

	"github.com/aicommit/aicommit/internal/app"
	"github.com/aicommit/aicommit/internal/pkg/config"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// genNoiseFlag generates flags the CLI does not know about.
func genNoiseFlag() gopter.Gen {
	return gen.OneConstOf(
		"--dry-run",
		"--yes",
		"--no-verify",
		"--amend",
		"-x",
		"--signoff",
	)
}

// TestFlagPresence_Property checks that --commit and --push are detected by
// presence alone, whatever else is on the command line.
func TestFlagPresence_Property(t *testing.T) {
	h := newHarness(t)
	t.Setenv(config.APIKeyEnvVar, "sk-or-v1-test")

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	parameters.Rng.Seed(7)

	properties := gopter.NewProperties(parameters)

	properties.Property("options mirror flag presence", prop.ForAll(
		func(commit, push bool, noise []string) bool {
			var args []string
			args = append(args, noise...)
			if commit {
				args = append(args, "--commit")
			}
			if push {
				args = append(args, "--push")
			}

			h.runner.called = false
			h.runner.opts = app.Options{}
			if err := h.execute(args...); err != nil {
				t.Logf("args %v: %v", args, err)
				return false
			}
			return h.runner.called && h.runner.opts == app.Options{Commit: commit, Push: push}
		},
		gen.Bool(),
		gen.Bool(),
		gen.SliceOfN(3, genNoiseFlag()),
	))

	properties.TestingRun(t)
}
