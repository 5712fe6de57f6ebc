package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/spektr-org/eventboard/dashboard"
	"github.com/spektr-org/eventboard/render"
)

func newChartCmd(a *app) *cobra.Command {
	var (
		sel    selectionFlags
		out    string
		format string
	)
	cmd := &cobra.Command{
		Use:       "chart <" + dashboard.ChartChapters + "|" + dashboard.ChartEventTypes + ">",
		Short:     "Render a registrants bar chart to PNG or SVG",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{dashboard.ChartChapters, dashboard.ChartEventTypes},
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = filepath.Ext(out)
			}
			f, err := render.ParseFormat(format)
			if err != nil {
				return err
			}

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
			cfg, ok := snap.Chart(args[0])
			if !ok {
				return fmt.Errorf("unknown chart %q (want %s or %s)", args[0], dashboard.ChartChapters, dashboard.ChartEventTypes)
			}

			var buf bytes.Buffer
			if err := render.BarChart(&buf, cfg, f); err != nil {
				return err
			}
			if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("write chart: %w", err)
			}
			_, _ = color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "Chart written to %s\n", out)
			return nil
		},
	}
	sel.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (required)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "png or svg (default from --out extension)")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}
