package git

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"

	apperrors "github.com/aicommit/aicommit/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockRepository is a mock implementation of Repository.
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) StagedDiff(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockRepository) CurrentBranch(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockRepository) Commit(ctx context.Context, message string) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockRepository) Push(ctx context.Context, remote, branch string) error {
	args := m.Called(ctx, remote, branch)
	return args.Error(0)
}

func TestDiffReader_GetStagedDiff(t *testing.T) {
	repo := new(MockRepository)
	repo.On("StagedDiff", mock.Anything).Return("diff --git a/x b/x", nil)

	diff, ok := NewDiffReader(repo).GetStagedDiff(context.Background())

	assert.True(t, ok)
	assert.Equal(t, "diff --git a/x b/x", diff)
	repo.AssertExpectations(t)
}

func TestDiffReader_GetStagedDiff_FailsSoft(t *testing.T) {
	var buf bytes.Buffer
	apperrors.SetOutput(&buf)
	defer apperrors.SetOutput(os.Stderr)

	repo := new(MockRepository)
	repo.On("StagedDiff", mock.Anything).
		Return("", apperrors.NewRepositoryError(errors.New("exit status 128"), "fatal: not a git repository"))

	diff, ok := NewDiffReader(repo).GetStagedDiff(context.Background())

	assert.False(t, ok)
	assert.Empty(t, diff)
	assert.Contains(t, buf.String(), "Are you in a git repository?")
}

func TestDiffReader_HasStagedChanges(t *testing.T) {
	tests := []struct {
		name string
		diff string
		err  error
		want bool
	}{
		{"non-empty diff", "diff --git a/x b/x\n+1", nil, true},
		{"empty diff", "", nil, false},
		{"whitespace only", " \n\t\n", nil, false},
		{"query failed", "", errors.New("boom"), false},
	}

	apperrors.SetOutput(&bytes.Buffer{})
	defer apperrors.SetOutput(os.Stderr)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			repo.On("StagedDiff", mock.Anything).Return(tt.diff, tt.err)

			got := NewDiffReader(repo).HasStagedChanges(context.Background())

			assert.Equal(t, tt.want, got)
			repo.AssertNumberOfCalls(t, "StagedDiff", 1)
		})
	}
}
