package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func versionString(version, commitHash, date string) string {
	return fmt.Sprintf("aicommit %s\nCommit: %s\nBuilt:  %s\n", version, commitHash, date)
}

// NewVersionCmd creates the version command.
func NewVersionCmd(version, commitHash, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), versionString(version, commitHash, date))
		},
	}
}
