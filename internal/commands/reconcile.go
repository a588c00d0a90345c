package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/debitsync/debitsync/internal/audit"
	"github.com/debitsync/debitsync/internal/config"
	"github.com/debitsync/debitsync/internal/loader"
	"github.com/debitsync/debitsync/internal/model"
	"github.com/debitsync/debitsync/internal/reconcile"
	"github.com/debitsync/debitsync/internal/schema"
)

const confirmDateFormat = "2006-01-02"

func newReconcileCommand() *cobra.Command {
	var configPath string
	var confirms []string

	cmd := &cobra.Command{
		Use:   "reconcile <bank-file> <app-file>",
		Short: "Compare two statement exports day by day",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReconcile(cmd.OutOrStdout(), args[0], args[1], configPath, confirms)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "debitsync.yaml overriding the matching heuristics")
	cmd.Flags().StringArrayVar(&confirms, "confirm", nil, "date (YYYY-MM-DD) to mark as audited; repeatable")

	return cmd
}

func runReconcile(w io.Writer, bankPath, appPath, configPath string, confirms []string) error {
	parser, _, err := buildFromConfig(configPath)
	if err != nil {
		return err
	}

	log := audit.NewLog()
	for _, c := range confirms {
		d, err := time.Parse(confirmDateFormat, c)
		if err != nil {
			return fmt.Errorf("parsing --confirm date %q: %w", c, err)
		}
		log.Confirm(d)
	}

	// The two sources share no state; parse them concurrently. Each
	// failure is reported with its own source label so the user knows
	// which file is malformed.
	sources := []struct {
		path, label string
	}{
		{bankPath, "bank statement"},
		{appPath, "app statement"},
	}
	records := make([][]model.Record, len(sources))
	errs := make([]error, len(sources))

	var wg sync.WaitGroup
	for i, src := range sources {
		i, src := i, src
		wg.Add(1)
		go func() {
			defer wg.Done()
			records[i], errs[i] = parseSource(parser, src.path, src.label)
		}()
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return err
	}

	reports := reconcile.Daily(records[0], records[1])
	renderReports(w, reports, log)
	return nil
}

func parseSource(p *schema.Parser, path, label string) ([]model.Record, error) {
	table, err := loader.Load(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", label, err)
	}
	return p.Parse(table, label)
}

func renderReports(w io.Writer, reports []model.DayReport, log *audit.Log) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tSTATUS\tBANK\tAPP\tMATCHED")
	for _, r := range reports {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n",
			r.Date.Format(confirmDateFormat), log.DisplayStatus(r),
			r.BankCount, r.AppCount, r.MatchedTotal.StringFixed(2))
	}
	tw.Flush()

	for _, r := range reports {
		if r.Status != model.StatusDiscrepant {
			continue
		}
		fmt.Fprintf(w, "\n%s (%s):\n", r.Date.Format(confirmDateFormat), log.DisplayStatus(r))
		if len(r.BankLeftover) > 0 {
			fmt.Fprintf(w, "  unmatched bank amounts: %s\n", formatAmounts(r.BankLeftover))
		}
		if len(r.AppLeftover) > 0 {
			fmt.Fprintf(w, "  unmatched app amounts: %s\n", formatAmounts(r.AppLeftover))
		}
	}

	s := log.Summarize(reports)
	fmt.Fprintf(w, "\ndays: %d  discrepant: %d  matched total: %s\n",
		s.Days, s.DiscrepantDays, s.MatchedTotal.StringFixed(2))
}

func formatAmounts(amts []decimal.Decimal) string {
	parts := make([]string, len(amts))
	for i, a := range amts {
		parts[i] = a.StringFixed(2)
	}
	return strings.Join(parts, ", ")
}

// buildFromConfig loads the optional YAML config and constructs the
// parser and risk scanner from it. An empty path keeps every default.
func buildFromConfig(path string) (*schema.Parser, *config.Config, error) {
	cfg := &config.Config{}
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, nil, err
		}
		cfg = loaded
	}
	parser, err := cfg.NewParser()
	if err != nil {
		return nil, nil, err
	}
	return parser, cfg, nil
}
