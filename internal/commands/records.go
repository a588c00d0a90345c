package commands

import (
	"fmt"
	"io"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newRecordsCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "records <file>",
		Short: "Print the normalized transactions of one statement export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecords(cmd.OutOrStdout(), args[0], configPath)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "debitsync.yaml overriding the matching heuristics")

	return cmd
}

func runRecords(w io.Writer, path, configPath string) error {
	parser, _, err := buildFromConfig(configPath)
	if err != nil {
		return err
	}

	recs, err := parseSource(parser, path, filepath.Base(path))
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tAMOUNT\tDESCRIPTION\tCOUNTERPARTY")
	for _, r := range recs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			r.Time.Format("2006-01-02 15:04:05"), r.Amount.StringFixed(2),
			r.Description, r.Counterparty)
	}
	tw.Flush()

	fmt.Fprintf(w, "\n%d record(s)\n", len(recs))
	return nil
}
