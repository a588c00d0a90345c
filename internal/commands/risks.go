package commands

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

func newRisksCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "risks <file>",
		Short: "Flag suspicious transactions in a statement export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRisks(cmd.OutOrStdout(), args[0], configPath)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "debitsync.yaml overriding the matching heuristics")

	return cmd
}

func runRisks(w io.Writer, path, configPath string) error {
	parser, cfg, err := buildFromConfig(configPath)
	if err != nil {
		return err
	}

	recs, err := parseSource(parser, path, filepath.Base(path))
	if err != nil {
		return err
	}

	findings := cfg.NewScanner().Scan(recs)
	if len(findings) == 0 {
		fmt.Fprintln(w, "no suspicious transactions found")
		return nil
	}

	for _, f := range findings {
		fmt.Fprintf(w, "%s  %s  %s\n  %s\n",
			f.Record.Time.Format("2006-01-02 15:04"), f.Record.Amount.StringFixed(2),
			f.Record.Description, strings.Join(f.Reasons, "; "))
	}
	fmt.Fprintf(w, "\n%d finding(s); verify these transactions were yours\n", len(findings))
	return nil
}
