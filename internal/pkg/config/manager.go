package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

const (
	// DefaultConfigDir is the directory under $HOME holding the config file.
	DefaultConfigDir = ".aicommit"
	// DefaultConfigFileExt is the default config file extension.
	DefaultConfigFileExt = "yaml"
	// DefaultEnvFile is the environment file loaded from the working directory.
	DefaultEnvFile = ".env"
)

// Defaults for the completion endpoint.
const (
	DefaultEndpoint  = "https://openrouter.ai/api/v1"
	DefaultModel     = "x-ai/grok-4.1-fast"
	DefaultMaxTokens = 500
	DefaultRemote    = "origin"
)

// ViperManager implements the Manager interface using Viper.
type ViperManager struct {
	v          *viper.Viper
	configPath string
}

// NewManager creates a new configuration manager.
// If configPath is empty, it uses the default path (~/.aicommit/config.yaml).
func NewManager(configPath string) (*ViperManager, error) {
	v := viper.New()

	v.SetConfigType(DefaultConfigFileExt)

	if configPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		configPath = filepath.Join(homeDir, DefaultConfigDir, "config.yaml")
	}

	v.SetConfigFile(configPath)

	v.SetEnvPrefix("AICOMMIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults first, nested env binding depends on them
	setDefaults(v)
	bindEnvVars(v)

	return &ViperManager{
		v:          v,
		configPath: configPath,
	}, nil
}

// bindEnvVars explicitly binds environment variables for all config keys.
// Viper's AutomaticEnv does not resolve nested keys on Unmarshal.
func bindEnvVars(v *viper.Viper) {
	// The provider's own variable comes first so it wins over the prefixed one.
	_ = v.BindEnv("provider.api_key", APIKeyEnvVar, "AICOMMIT_PROVIDER_API_KEY")
	_ = v.BindEnv("provider.model", "AICOMMIT_PROVIDER_MODEL")
	_ = v.BindEnv("provider.endpoint", "AICOMMIT_PROVIDER_ENDPOINT")
	_ = v.BindEnv("provider.temperature", "AICOMMIT_PROVIDER_TEMPERATURE")
	_ = v.BindEnv("provider.max_tokens", "AICOMMIT_PROVIDER_MAX_TOKENS")
	_ = v.BindEnv("provider.timeout_seconds", "AICOMMIT_PROVIDER_TIMEOUT_SECONDS")

	_ = v.BindEnv("output.format", "AICOMMIT_OUTPUT_FORMAT")

	_ = v.BindEnv("git.work_dir", "AICOMMIT_GIT_WORK_DIR")
	_ = v.BindEnv("git.remote", "AICOMMIT_GIT_REMOTE")

	_ = v.BindEnv("ui.color_enabled", "AICOMMIT_UI_COLOR_ENABLED")
	_ = v.BindEnv("ui.clipboard", "AICOMMIT_UI_CLIPBOARD")
}

// setDefaults sets the default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("provider.api_key", "")
	v.SetDefault("provider.model", DefaultModel)
	v.SetDefault("provider.endpoint", DefaultEndpoint)
	v.SetDefault("provider.temperature", 0.0)
	v.SetDefault("provider.max_tokens", DefaultMaxTokens)
	v.SetDefault("provider.timeout_seconds", 0)

	v.SetDefault("output.format", "strict-single-line")

	v.SetDefault("git.work_dir", "")
	v.SetDefault("git.remote", DefaultRemote)

	v.SetDefault("ui.color_enabled", true)
	v.SetDefault("ui.clipboard", true)
}

// LoadEnvFile loads variables from an environment file into the process
// environment. Variables that are already set are left untouched and a
// missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		path = DefaultEnvFile
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := gotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// GetConfigPath returns the path to the configuration file.
func (m *ViperManager) GetConfigPath() string {
	return m.configPath
}

// Load loads the configuration from file, environment, and defaults.
// Priority: flags > env > file > defaults
func (m *ViperManager) Load() (*Config, error) {
	if err := m.readConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := m.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// readConfig reads the config file, tolerating its absence.
func (m *ViperManager) readConfig() error {
	if err := m.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

// ErrConfigExists is returned by Init when the file is already there.
var ErrConfigExists = errors.New("config file already exists")

// fileOnly returns a viper instance that sees the config file and nothing
// else. Writes go through it so environment values never reach the file.
func (m *ViperManager) fileOnly() (*viper.Viper, error) {
	fv := viper.New()
	fv.SetConfigType(DefaultConfigFileExt)
	fv.SetConfigFile(m.configPath)

	if err := fv.ReadInConfig(); err != nil && !os.IsNotExist(err) {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	return fv, nil
}

// Init creates a new configuration file with default values.
// Sets file permissions to 0600 for security.
func (m *ViperManager) Init() error {
	if _, err := os.Stat(m.configPath); err == nil {
		return fmt.Errorf("%w at %s", ErrConfigExists, m.configPath)
	}

	dir := filepath.Dir(m.configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	dv := viper.New()
	dv.SetConfigType(DefaultConfigFileExt)
	setDefaults(dv)

	if err := dv.WriteConfigAs(m.configPath); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	// The file may hold an API key
	if err := os.Chmod(m.configPath, 0600); err != nil {
		return fmt.Errorf("failed to set config file permissions: %w", err)
	}

	return nil
}

// Set sets a configuration value by key and writes the file.
// Supports nested keys using dot notation (e.g., "provider.model").
// Only the file's own contents and the new value are written.
func (m *ViperManager) Set(key string, value string) error {
	fv, err := m.fileOnly()
	if err != nil {
		return err
	}

	// Defaults give the value its type when the file does not set the key
	existingValue := fv.Get(key)
	if existingValue == nil {
		dv := viper.New()
		setDefaults(dv)
		existingValue = dv.Get(key)
	}

	convertedValue, err := convertValue(value, existingValue)
	if err != nil {
		return fmt.Errorf("failed to convert value for key %s: %w", key, err)
	}

	fv.Set(key, convertedValue)

	if err := fv.WriteConfigAs(m.configPath); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// convertValue converts a string value to the type of the existing value.
func convertValue(value string, existingValue interface{}) (interface{}, error) {
	if existingValue == nil {
		return value, nil
	}

	switch existingValue.(type) {
	case bool:
		return strconv.ParseBool(value)
	case int, int64:
		return strconv.ParseInt(value, 10, 64)
	case float32, float64:
		return strconv.ParseFloat(value, 64)
	case []interface{}, []string:
		return strings.Split(value, ","), nil
	default:
		return value, nil
	}
}

// Get retrieves a configuration value by key.
func (m *ViperManager) Get(key string) (string, error) {
	if err := m.readConfig(); err != nil {
		return "", err
	}

	value := m.v.Get(key)
	if value == nil {
		return "", fmt.Errorf("key not found: %s", key)
	}

	return fmt.Sprintf("%v", value), nil
}

// List returns all configuration values as a map.
func (m *ViperManager) List() map[string]interface{} {
	_ = m.readConfig()

	return m.v.AllSettings()
}

// SetOverride sets a temporary override for a configuration key.
// Used for command-line flags; never persisted.
func (m *ViperManager) SetOverride(key string, value interface{}) {
	m.v.Set(key, value)
}

// ConfigExists checks if the configuration file exists.
func (m *ViperManager) ConfigExists() bool {
	_, err := os.Stat(m.configPath)
	return err == nil
}

// MaskAPIKey masks an API key, showing only the last 4 characters.
func MaskAPIKey(key string) string {
	if len(key) <= 4 {
		return "****"
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}
