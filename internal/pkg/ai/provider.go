// Package ai turns a staged diff into a commit message through a chat-completion API.
package ai

import (
	"context"
	"time"

	"github.com/aicommit/aicommit/internal/pkg/message"
)

// ProviderConfig contains configuration for an AI provider.
type ProviderConfig struct {
	APIKey      string
	Model       string
	Endpoint    string
	Temperature float32
	MaxTokens   int
	// Timeout bounds the whole HTTP exchange. Zero means no limit.
	Timeout time.Duration
	Format  message.Format
}

// Provider generates a commit message for a diff.
type Provider interface {
	GenerateCommitMessage(ctx context.Context, diff string) (string, error)
	Name() string
}
