// Package config provides configuration management for aicommit.
package config

import (
	"strings"

	apperrors "github.com/aicommit/aicommit/internal/pkg/errors"
	"github.com/aicommit/aicommit/internal/pkg/message"
)

// APIKeyEnvVar is the environment variable the OpenRouter credential is read from.
const APIKeyEnvVar = "OPENROUTER_API_KEY"

// Config represents the complete aicommit configuration.
// It is built once at startup and passed to the components that need it.
type Config struct {
	Provider ProviderConfig `mapstructure:"provider"`
	Output   OutputConfig   `mapstructure:"output"`
	Git      GitConfig      `mapstructure:"git"`
	UI       UIConfig       `mapstructure:"ui"`
}

// ProviderConfig contains completion endpoint settings.
type ProviderConfig struct {
	APIKey         string  `mapstructure:"api_key"`
	Model          string  `mapstructure:"model"`
	Endpoint       string  `mapstructure:"endpoint"`
	Temperature    float32 `mapstructure:"temperature"`
	MaxTokens      int     `mapstructure:"max_tokens"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds"`
}

// OutputConfig selects the commit message contract.
type OutputConfig struct {
	Format string `mapstructure:"format"`
}

// GitConfig contains Git-related settings.
type GitConfig struct {
	WorkDir string `mapstructure:"work_dir"`
	Remote  string `mapstructure:"remote"`
}

// UIConfig contains presentation settings.
type UIConfig struct {
	ColorEnabled bool `mapstructure:"color_enabled"`
	Clipboard    bool `mapstructure:"clipboard"`
}

// Validate checks the settings required before touching the repository.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Provider.APIKey) == "" {
		return apperrors.NewMissingAPIKeyError(APIKeyEnvVar)
	}
	if _, err := message.ParseFormat(c.Output.Format); err != nil {
		return apperrors.NewInvalidConfigError(err.Error())
	}
	if c.Provider.MaxTokens < 0 {
		return apperrors.NewInvalidConfigError("provider.max_tokens must not be negative")
	}
	return nil
}

// Format returns the parsed output policy. Validate must have succeeded.
func (c *Config) Format() message.Format {
	f, _ := message.ParseFormat(c.Output.Format)
	return f
}

// Manager defines the interface for configuration management.
type Manager interface {
	Load() (*Config, error)
	Set(key string, value string) error
	Get(key string) (string, error)
	Init() error
	List() map[string]interface{}
	GetConfigPath() string
}
