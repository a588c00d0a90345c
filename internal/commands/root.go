package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/debitsync/debitsync/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "debitsync",
		Short:   "Daily reconciliation of bank and payment-app statements",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newReconcileCommand())
	rootCmd.AddCommand(newRecordsCommand())
	rootCmd.AddCommand(newRisksCommand())
	rootCmd.AddCommand(newInitCommand())

	return rootCmd
}
