// Package git provides the repository operations used by aicommit.
package git

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	apperrors "github.com/aicommit/aicommit/internal/pkg/errors"
)

const (
	// GitQueryTimeout bounds read-only lookups such as rev-parse.
	// Diff, commit and push are bounded only by the caller's context.
	GitQueryTimeout = 10 * time.Second

	// DetachedHead is what rev-parse reports when no branch is checked out.
	DetachedHead = "HEAD"
)

// Repository is the set of version-control queries and actions the
// pipeline depends on.
type Repository interface {
	StagedDiff(ctx context.Context) (string, error)
	CurrentBranch(ctx context.Context) (string, error)
	Commit(ctx context.Context, message string) error
	Push(ctx context.Context, remote, branch string) error
}

// Client implements Repository by running the git binary.
type Client struct {
	// workDir is the working directory for git commands.
	// If empty, uses the current directory.
	workDir string
}

// NewClientWithWorkDir creates a new Client for workDir. An empty workDir
// means the current directory.
func NewClientWithWorkDir(workDir string) *Client {
	return &Client{workDir: workDir}
}

// run executes git with the given arguments and returns its standard output.
// On failure the returned error carries the command's combined stderr.
// A zero timeout leaves cancellation to ctx alone.
func (c *Client) run(ctx context.Context, timeout time.Duration, args ...string) (string, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	apperrors.LogCommand(c.workDir, args)

	cmd := exec.CommandContext(ctx, "git", args...)
	if c.workDir != "" {
		cmd.Dir = c.workDir
	}

	var stderr strings.Builder
	cmd.Stderr = &stderr

	output, err := cmd.Output()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", apperrors.NewRepositoryError(
				fmt.Errorf("git %s timed out after %s", args[0], timeout), "")
		}
		return "", apperrors.NewRepositoryError(err, string(output)+stderr.String())
	}
	return string(output), nil
}

// StagedDiff returns the output of git diff --cached with trailing
// whitespace removed. An empty string means nothing is staged.
func (c *Client) StagedDiff(ctx context.Context) (string, error) {
	output, err := c.run(ctx, 0, "diff", "--cached")
	if err != nil {
		return "", err
	}
	return strings.TrimRight(output, " \t\r\n"), nil
}

// CurrentBranch returns the abbreviated name of HEAD.
// A detached checkout yields DetachedHead.
func (c *Client) CurrentBranch(ctx context.Context) (string, error) {
	output, err := c.run(ctx, GitQueryTimeout, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(output), nil
}

// Commit records the staged changes with the given message.
// The message is passed as a single argument and never goes through a shell.
func (c *Client) Commit(ctx context.Context, message string) error {
	_, err := c.run(ctx, 0, "commit", "-m", message)
	return err
}

// Push pushes branch to remote.
func (c *Client) Push(ctx context.Context, remote, branch string) error {
	_, err := c.run(ctx, 0, "push", remote, branch)
	return err
}
