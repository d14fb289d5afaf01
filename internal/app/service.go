// Package app contains the application layer with business orchestration logic.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/aicommit/aicommit/internal/pkg/ai"
	"github.com/aicommit/aicommit/internal/pkg/clipboard"
	"github.com/aicommit/aicommit/internal/pkg/config"
	apperrors "github.com/aicommit/aicommit/internal/pkg/errors"
	"github.com/aicommit/aicommit/internal/pkg/git"
	"github.com/aicommit/aicommit/internal/pkg/message"
	"github.com/aicommit/aicommit/internal/pkg/ui"
)

// Options holds the per-run switches from the command line.
type Options struct {
	Commit bool
	Push   bool
}

// CommitService orchestrates the commit message generation workflow.
type CommitService struct {
	repo       git.Repository
	reader     *git.DiffReader
	aiProvider ai.Provider
	uiManager  ui.Manager
	clip       clipboard.Writer
	config     *config.Config
}

// NewCommitService creates a new CommitService with the given dependencies.
func NewCommitService(
	repo git.Repository,
	aiProvider ai.Provider,
	uiManager ui.Manager,
	clip clipboard.Writer,
	cfg *config.Config,
) *CommitService {
	if cfg == nil {
		cfg = &config.Config{}
	}
	if clip == nil {
		clip = clipboard.Disabled{}
	}

	return &CommitService{
		repo:       repo,
		reader:     git.NewDiffReader(repo),
		aiProvider: aiProvider,
		uiManager:  uiManager,
		clip:       clip,
		config:     cfg,
	}
}

// Run executes the pipeline:
// check staged → read diff → generate → clipboard → validate → commit → push → display.
// A run with nothing staged is a successful no-op.
func (s *CommitService) Run(ctx context.Context, opts Options) error {
	if !s.reader.HasStagedChanges(ctx) {
		s.uiManager.ShowInfo("No staged changes found.")
		s.uiManager.ShowInfo("Run `git add <files>` before running this tool.")
		return nil
	}

	spinner := s.uiManager.ShowSpinner("Reading git diff...")
	spinner.Start()

	diff, ok := s.reader.GetStagedDiff(ctx)
	if !ok || diff == "" {
		spinner.Fail("Failed to read diff.")
		return apperrors.NewRepositoryError(fmt.Errorf("failed to read diff"), "")
	}

	stats := git.ParseDiff(diff)
	apperrors.Debug("Staged changes: %s", stats.Summary())
	for _, fc := range stats.Files {
		apperrors.Debug("  %s", fc)
	}

	spinner.UpdateText(fmt.Sprintf("Analyzing %s with OpenRouter AI...", stats.Summary()))

	start := time.Now()
	msg, err := s.aiProvider.GenerateCommitMessage(ctx, diff)
	if err != nil {
		spinner.Fail("Failed to generate commit message.")
		if apperrors.HasCode(err, apperrors.ErrGenerationFailed) {
			return err
		}
		return apperrors.NewGenerationError(err)
	}
	apperrors.Debug("Generated message in %v", time.Since(start).Round(time.Millisecond))
	spinner.Succeed("Commit message generated!")

	command := message.ShellCommand(msg)
	copied := s.copyToClipboard(command)

	for _, warning := range message.Check(msg, s.config.Format()) {
		s.uiManager.ShowWarning("Warning: " + warning)
	}

	// The message is shown even when a side effect fails
	defer s.uiManager.DisplayMessage(msg, command, copied)

	if opts.Commit {
		if err := s.commit(ctx, msg); err != nil {
			return err
		}
	}

	if opts.Push {
		if err := s.push(ctx); err != nil {
			return err
		}
	}

	return nil
}

// copyToClipboard writes the command to the clipboard. Failure is only a warning.
func (s *CommitService) copyToClipboard(command string) bool {
	if err := s.clip.Write(command); err != nil {
		apperrors.Debug("Clipboard write skipped: %v", err)
		if s.config.UI.Clipboard {
			s.uiManager.ShowWarning("Could not copy the commit command to the clipboard.")
		}
		return false
	}
	return true
}

func (s *CommitService) commit(ctx context.Context, msg string) error {
	spinner := s.uiManager.ShowSpinner("Creating git commit...")
	spinner.Start()

	if err := s.repo.Commit(ctx, msg); err != nil {
		spinner.Fail("Failed to create git commit.")
		return apperrors.NewCommitError(err)
	}

	spinner.Succeed("Committed staged changes.")
	return nil
}

func (s *CommitService) push(ctx context.Context) error {
	remote := s.config.Git.Remote
	if remote == "" {
		remote = config.DefaultRemote
	}

	spinner := s.uiManager.ShowSpinner(fmt.Sprintf("Pushing current branch to %s...", remote))
	spinner.Start()

	branch, err := s.repo.CurrentBranch(ctx)
	if err != nil {
		spinner.Fail(fmt.Sprintf("Failed to push to %s.", remote))
		return apperrors.NewPushError(err, remote)
	}
	if branch == "" || branch == git.DetachedHead {
		spinner.Fail(fmt.Sprintf("Failed to push to %s.", remote))
		return apperrors.NewPushError(fmt.Errorf("unable to determine current branch"), remote)
	}

	if err := s.repo.Push(ctx, remote, branch); err != nil {
		spinner.Fail(fmt.Sprintf("Failed to push to %s.", remote))
		return apperrors.NewPushError(err, remote)
	}

	spinner.Succeed(fmt.Sprintf("Pushed %s to %s.", branch, remote))
	return nil
}
