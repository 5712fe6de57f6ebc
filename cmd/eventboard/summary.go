package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/spektr-org/eventboard/dashboard"
	"github.com/spektr-org/eventboard/engine"
)

func newSummaryCmd(a *app) *cobra.Command {
	var (
		sel       selectionFlags
		format    string
		showTable bool
	)
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print metrics and rollups for a selection",
		Long: `Print the dashboard for a selection: total and known registrants, number
of events, average registrants per event, and registrant totals by
chapter/group and by event type.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			svc := a.service()
			c, err := sel.criteria(ctx, cmd, svc)
			if err != nil {
				return err
			}
			snap, err := svc.Build(ctx, c)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			switch format {
			case "json", "pretty":
				return writeJSON(w, snap, format == "pretty")
			case "text":
				return writeSummary(w, snap, showTable)
			default:
				return fmt.Errorf("unknown format %q (want text, json or pretty)", format)
			}
		},
	}
	sel.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json, pretty")
	cmd.Flags().BoolVar(&showTable, "table", false, "also print the event table")
	return cmd
}

func writeJSON(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

func writeSummary(w io.Writer, snap *dashboard.Snapshot, showTable bool) error {
	bold := color.New(color.Bold)
	cyan := color.New(color.FgCyan)
	yellow := color.New(color.FgYellow)

	_, _ = bold.Fprintln(w, snap.Title)
	for _, warning := range snap.Warnings {
		_, _ = yellow.Fprintln(w, "! "+warning)
	}
	_, _ = fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	for _, card := range snap.Cards {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t\n", card.Label, cyan.Sprint(card.Value))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if err := writeRollup(w, snap.ChapterTable); err != nil {
		return err
	}
	if err := writeRollup(w, snap.TypeTable); err != nil {
		return err
	}

	if showTable {
		return writeTable(w, snap.Table)
	}
	return nil
}

// writeRollup prints a group rollup table: label, total and event count
// per group, then the total row.
func writeRollup(w io.Writer, table *engine.TableData) error {
	if table == nil {
		return nil
	}
	_, _ = fmt.Fprintf(w, "\n%s\n", color.New(color.Bold).Sprint(table.Title))
	if len(table.Rows) == 0 {
		_, _ = fmt.Fprintln(w, "  (no matching events)")
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, row := range table.Rows {
		_, _ = fmt.Fprintf(tw, "  %s\n", strings.Join(row, "\t"))
	}
	if sum := table.Summary; sum != nil {
		_, _ = fmt.Fprintf(tw, "  %s\t%s\t%s\n", sum.Label, sum.Values["value"], sum.Values["count"])
	}
	return tw.Flush()
}

func writeTable(w io.Writer, table *engine.TableData) error {
	bold := color.New(color.Bold)
	_, _ = fmt.Fprintf(w, "\n%s\n", bold.Sprint(table.Title))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	labels := make([]string, len(table.Columns))
	for i, col := range table.Columns {
		labels[i] = col.Label
	}
	_, _ = fmt.Fprintln(tw, strings.Join(labels, "\t"))
	for _, row := range table.Rows {
		_, _ = fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if table.Summary != nil {
		_, _ = fmt.Fprintln(w, table.Summary.Label)
	}
	return nil
}
