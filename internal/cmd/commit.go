package cmd

import (
	"context"

	"github.com/aicommit/aicommit/internal/app"
	"github.com/aicommit/aicommit/internal/pkg/ai"
	"github.com/aicommit/aicommit/internal/pkg/clipboard"
	"github.com/aicommit/aicommit/internal/pkg/config"
	apperrors "github.com/aicommit/aicommit/internal/pkg/errors"
	"github.com/aicommit/aicommit/internal/pkg/git"
	"github.com/aicommit/aicommit/internal/pkg/ui"
	"github.com/spf13/cobra"
)

// CommitFlags holds the flags for the default action.
type CommitFlags struct {
	Commit bool
	Push   bool
}

// commitRunner runs the commit pipeline.
type commitRunner interface {
	Run(ctx context.Context, opts app.Options) error
}

// newCommitService builds the pipeline. It is only called once the
// configuration, including the credential, has been validated.
var newCommitService = func(cfg *config.Config, uiMgr ui.Manager) (commitRunner, error) {
	provider, err := ai.NewProvider(cfg)
	if err != nil {
		return nil, err
	}
	apperrors.Debug("AI provider created: %s", provider.Name())

	return app.NewCommitService(
		git.NewClientWithWorkDir(cfg.Git.WorkDir),
		provider,
		uiMgr,
		clipboard.New(cfg.UI.Clipboard),
		cfg,
	), nil
}

// newUIManager selects the terminal output.
var newUIManager = ui.NewManager

// runCommit executes the default action.
func runCommit(cmd *cobra.Command, flags *CommitFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	apperrors.SetVerbose(verbose)

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	uiMgr := newUIManager(cfg.UI.ColorEnabled)
	uiMgr.ShowTitle()

	// The credential is checked before any repository or network access
	if err := cfg.Validate(); err != nil {
		return err
	}

	apperrors.Debug("Using model: %s", cfg.Provider.Model)
	apperrors.Debug("Using format: %s", cfg.Output.Format)
	apperrors.Debug("API key: %s", config.MaskAPIKey(cfg.Provider.APIKey))

	service, err := newCommitService(cfg, uiMgr)
	if err != nil {
		apperrors.Error("Failed to create AI provider: %v", err)
		return apperrors.Wrap(err, apperrors.ErrInvalidConfig, "failed to create AI provider")
	}

	return service.Run(ctx, app.Options{
		Commit: flags.Commit,
		Push:   flags.Push,
	})
}

// loadConfig reads the configuration and applies command-line overrides.
// Flags take priority over env, file and defaults and are never persisted.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	modelOverride, _ := cmd.Flags().GetString("model")
	formatOverride, _ := cmd.Flags().GetString("format")

	cfgMgr, err := config.NewManager(configPath)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrInvalidConfig, "failed to create config manager")
	}
	if configPath != "" {
		apperrors.Debug("Using custom config path: %s", configPath)
	}

	if modelOverride != "" {
		cfgMgr.SetOverride("provider.model", modelOverride)
		apperrors.Debug("Model overridden via flag: %s", modelOverride)
	}
	if formatOverride != "" {
		cfgMgr.SetOverride("output.format", formatOverride)
	}

	cfg, err := cfgMgr.Load()
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrInvalidConfig, "failed to load config")
	}
	return cfg, nil
}
