package ai

import (
	"fmt"
	"time"

	"github.com/aicommit/aicommit/internal/pkg/config"
)

// NewProvider creates the AI provider described by the configuration.
func NewProvider(cfg *config.Config) (Provider, error) {
	if cfg == nil {
		return nil, fmt.Errorf("provider configuration is required")
	}

	return NewOpenRouterProvider(ProviderConfig{
		APIKey:      cfg.Provider.APIKey,
		Model:       cfg.Provider.Model,
		Endpoint:    cfg.Provider.Endpoint,
		Temperature: cfg.Provider.Temperature,
		MaxTokens:   cfg.Provider.MaxTokens,
		Timeout:     time.Duration(cfg.Provider.TimeoutSeconds) * time.Second,
		Format:      cfg.Format(),
	})
}
