package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/aicommit/aicommit/internal/pkg/config"
	"github.com/aicommit/aicommit/internal/pkg/ui"
	"github.com/spf13/cobra"
)

// runSetup is the interactive wizard behind 'config init'.
var runSetup = ui.RunInteractiveSetup

// stdinIsTerminal reports whether the wizard can prompt.
var stdinIsTerminal = func() bool { return ui.IsTerminal(os.Stdin) }

// NewConfigCmd creates the config command and its subcommands.
func NewConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage aicommit configuration",
		Long: `Manage aicommit configuration settings.

Use subcommands to initialize, view, or modify configuration values.
Configuration is stored in ~/.aicommit/config.yaml by default.`,
	}

	configCmd.AddCommand(newConfigInitCmd())
	configCmd.AddCommand(newConfigSetCmd())
	configCmd.AddCommand(newConfigListCmd())

	return configCmd
}

// newConfigInitCmd creates the 'config init' subcommand.
func newConfigInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file",
		Long: `Create the configuration file, asking for the OpenRouter key, model
and message format when run in a terminal.

The file is created with permissions 0600 (user read/write only) as it
may contain an API key.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := newConfigManager(cmd)
			if err != nil {
				return err
			}

			if stdinIsTerminal() {
				return runSetup(cmd.OutOrStdout(), mgr)
			}

			if err := mgr.Init(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration file created at %s\n", mgr.GetConfigPath())
			fmt.Fprintf(cmd.OutOrStdout(), "Set %s or edit this file to add your API key.\n", config.APIKeyEnvVar)
			return nil
		},
	}
}

// newConfigSetCmd creates the 'config set' subcommand.
func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: `Set a configuration value by key.

Supports nested keys using dot notation (e.g., "provider.model", "output.format").

Examples:
  aicommit config set provider.model anthropic/claude-3.5-haiku
  aicommit config set provider.api_key sk-or-v1-xxx
  aicommit config set output.format conventional-with-body
  aicommit config set ui.clipboard false`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			value := args[1]

			mgr, err := newConfigManager(cmd)
			if err != nil {
				return err
			}

			if !mgr.ConfigExists() {
				return fmt.Errorf("config file not found. Run 'aicommit config init' first")
			}

			if err := mgr.Set(key, value); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, displayValue(key, value))
			return nil
		},
	}
}

// newConfigListCmd creates the 'config list' subcommand.
func newConfigListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all configuration values",
		Long: `Display the effective configuration (defaults, file and environment).

API keys are masked, showing only the last 4 characters.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := newConfigManager(cmd)
			if err != nil {
				return err
			}

			// Surface a malformed file instead of listing defaults
			if _, err := mgr.Load(); err != nil {
				return err
			}

			printSettings(cmd.OutOrStdout(), "", mgr.List())
			return nil
		},
	}
}

func newConfigManager(cmd *cobra.Command) (*config.ViperManager, error) {
	configPath, _ := cmd.Flags().GetString("config")
	mgr, err := config.NewManager(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create config manager: %w", err)
	}
	return mgr, nil
}

// displayValue masks API keys.
func displayValue(key string, value interface{}) string {
	s := fmt.Sprintf("%v", value)
	if strings.Contains(strings.ToLower(key), "api_key") && s != "" {
		return config.MaskAPIKey(s)
	}
	return s
}

// printSettings recursively prints settings in key order.
func printSettings(w io.Writer, indent string, settings map[string]interface{}) {
	keys := make([]string, 0, len(settings))
	for key := range settings {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		switch v := settings[key].(type) {
		case map[string]interface{}:
			fmt.Fprintf(w, "%s%s:\n", indent, key)
			printSettings(w, indent+"  ", v)
		default:
			fmt.Fprintf(w, "%s%s: %s\n", indent, key, displayValue(key, v))
		}
	}
}
