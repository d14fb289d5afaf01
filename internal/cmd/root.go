// Package cmd contains the CLI command definitions for aicommit.
package cmd

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for the aicommit CLI.
func NewRootCmd(version, commitHash, date string) *cobra.Command {
	flags := &CommitFlags{}

	rootCmd := &cobra.Command{
		Use:   "aicommit",
		Short: "AI-powered git commit message generator",
		Long: `aicommit reads your staged changes, asks an OpenRouter model for a
conventional commit message and prints a ready-to-run git commit command.

Examples:
  aicommit                   # Generate a message for the staged diff
  aicommit --commit          # Generate and commit
  aicommit --commit --push   # Generate, commit and push the current branch`,
		Version: version,
		// Unknown flags and stray arguments are ignored
		Args:               cobra.ArbitraryArgs,
		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommit(cmd, flags)
		},
	}

	rootCmd.SetVersionTemplate(versionString(version, commitHash, date))

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().String("config", "", "Config file path (default: ~/.aicommit/config.yaml)")
	rootCmd.PersistentFlags().String("model", "", "OpenRouter model to use")
	rootCmd.PersistentFlags().String("format", "", "Message format (strict-single-line, conventional-with-body)")

	rootCmd.Flags().BoolVar(&flags.Commit, "commit", false, "Create the commit with the generated message")
	rootCmd.Flags().BoolVar(&flags.Push, "push", false, "Push the current branch after generating (and committing)")

	rootCmd.AddCommand(NewConfigCmd())
	rootCmd.AddCommand(NewVersionCmd(version, commitHash, date))

	return rootCmd
}
