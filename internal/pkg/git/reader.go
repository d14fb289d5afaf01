package git

import (
	"context"
	"strings"

	apperrors "github.com/aicommit/aicommit/internal/pkg/errors"
)

// DiffReader reads staged changes and never fails hard. Callers treat an
// unavailable diff the same as an empty one.
type DiffReader struct {
	repo Repository
}

// NewDiffReader creates a DiffReader over the given repository.
func NewDiffReader(repo Repository) *DiffReader {
	return &DiffReader{repo: repo}
}

// GetStagedDiff returns the staged diff. The boolean is false when the
// repository could not be queried; the failure is logged, not returned.
func (r *DiffReader) GetStagedDiff(ctx context.Context) (string, bool) {
	diff, err := r.repo.StagedDiff(ctx)
	if err != nil {
		apperrors.Error("Error reading git diff. Are you in a git repository?")
		apperrors.Debug("%v", err)
		return "", false
	}
	return diff, true
}

// HasStagedChanges reports whether a non-blank staged diff is available.
func (r *DiffReader) HasStagedChanges(ctx context.Context) bool {
	diff, ok := r.GetStagedDiff(ctx)
	return ok && strings.TrimSpace(diff) != ""
}
