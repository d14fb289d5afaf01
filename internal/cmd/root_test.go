package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/aicommit/aicommit/internal/app"
	"github.com/aicommit/aicommit/internal/pkg/config"
	apperrors "github.com/aicommit/aicommit/internal/pkg/errors"
	"github.com/aicommit/aicommit/internal/pkg/message"
	"github.com/aicommit/aicommit/internal/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRunner records the options it was run with.
type fakeRunner struct {
	opts   app.Options
	called bool
	err    error
}

func (f *fakeRunner) Run(ctx context.Context, opts app.Options) error {
	f.called = true
	f.opts = opts
	return f.err
}

type harness struct {
	runner       *fakeRunner
	factoryCalls int
	cfg          *config.Config
	out          bytes.Buffer
	configPath   string
}

// newHarness swaps the service and UI factories for fakes and isolates
// the configuration from the user's environment.
func newHarness(t *testing.T) *harness {
	t.Helper()

	for _, key := range []string{
		config.APIKeyEnvVar,
		"AICOMMIT_PROVIDER_API_KEY",
		"AICOMMIT_PROVIDER_MODEL",
		"AICOMMIT_OUTPUT_FORMAT",
	} {
		t.Setenv(key, "")
	}

	h := &harness{
		runner:     &fakeRunner{},
		configPath: filepath.Join(t.TempDir(), "config.yaml"),
	}

	origService, origUI := newCommitService, newUIManager
	t.Cleanup(func() {
		newCommitService, newUIManager = origService, origUI
		apperrors.SetVerbose(false)
	})

	newCommitService = func(cfg *config.Config, uiMgr ui.Manager) (commitRunner, error) {
		h.factoryCalls++
		h.cfg = cfg
		return h.runner, nil
	}
	newUIManager = func(bool) ui.Manager {
		return ui.NewPlainManager(&h.out, &h.out)
	}
	return h
}

func (h *harness) execute(args ...string) error {
	rootCmd := NewRootCmd("1.2.3", "abc123", "2026-01-01")
	rootCmd.SetArgs(append([]string{"--config", h.configPath}, args...))
	rootCmd.SetOut(&h.out)
	rootCmd.SetErr(&h.out)
	return rootCmd.ExecuteContext(context.Background())
}

func TestRoot_MissingAPIKey(t *testing.T) {
	h := newHarness(t)

	err := h.execute("--commit", "--push")

	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrMissingAPIKey))
	assert.Equal(t, 1, apperrors.GetExitCode(err))
	assert.Contains(t, apperrors.FormatError(err), `export OPENROUTER_API_KEY="your_key_here"`)
	assert.Zero(t, h.factoryCalls, "no service may be built without a credential")
	assert.False(t, h.runner.called)
}

func TestRoot_RunsPipeline(t *testing.T) {
	h := newHarness(t)
	t.Setenv(config.APIKeyEnvVar, "sk-or-v1-test")

	require.NoError(t, h.execute())

	assert.Equal(t, 1, h.factoryCalls)
	assert.True(t, h.runner.called)
	assert.Equal(t, app.Options{}, h.runner.opts)
	assert.Equal(t, config.DefaultModel, h.cfg.Provider.Model)
	assert.Equal(t, message.FormatStrictSingleLine, h.cfg.Format())
	assert.Contains(t, h.out.String(), ui.Title)
}

func TestRoot_CommitAndPushFlags(t *testing.T) {
	h := newHarness(t)
	t.Setenv(config.APIKeyEnvVar, "sk-or-v1-test")

	require.NoError(t, h.execute("--push", "--commit"))

	assert.Equal(t, app.Options{Commit: true, Push: true}, h.runner.opts)
}

func TestRoot_IgnoresUnknownFlagsAndArgs(t *testing.T) {
	h := newHarness(t)
	t.Setenv(config.APIKeyEnvVar, "sk-or-v1-test")

	require.NoError(t, h.execute("--commit", "--amend-everything", "stray"))

	assert.True(t, h.runner.called)
	assert.Equal(t, app.Options{Commit: true}, h.runner.opts)
}

func TestRoot_Overrides(t *testing.T) {
	h := newHarness(t)
	t.Setenv(config.APIKeyEnvVar, "sk-or-v1-test")

	require.NoError(t, h.execute("--model", "anthropic/claude-3.5-haiku", "--format", "conventional-with-body"))

	assert.Equal(t, "anthropic/claude-3.5-haiku", h.cfg.Provider.Model)
	assert.Equal(t, message.FormatConventionalWithBody, h.cfg.Format())
}

func TestRoot_InvalidFormat(t *testing.T) {
	h := newHarness(t)
	t.Setenv(config.APIKeyEnvVar, "sk-or-v1-test")

	err := h.execute("--format", "haiku")

	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrInvalidConfig))
	assert.Zero(t, h.factoryCalls)
}

func TestRoot_PropagatesPipelineError(t *testing.T) {
	h := newHarness(t)
	t.Setenv(config.APIKeyEnvVar, "sk-or-v1-test")
	h.runner.err = apperrors.NewPushError(assert.AnError, "origin")

	err := h.execute("--push")

	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrPushFailed))
	assert.Equal(t, 1, apperrors.GetExitCode(err))
}

func TestRoot_Verbose(t *testing.T) {
	h := newHarness(t)
	t.Setenv(config.APIKeyEnvVar, "sk-or-v1-test")

	require.NoError(t, h.execute("-v"))
	assert.True(t, apperrors.IsVerbose())
}

func TestVersionCmd(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.execute("version"))

	assert.Equal(t, "aicommit 1.2.3\nCommit: abc123\nBuilt:  2026-01-01\n", h.out.String())
	assert.Zero(t, h.factoryCalls)
}
