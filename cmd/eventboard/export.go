package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/spektr-org/eventboard/export"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		sel    selectionFlags
		out    string
		format string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the filtered event table to CSV or XLSX",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format == "" {
				format = filepath.Ext(out)
			}
			f, err := export.ParseFormat(format)
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

			var buf bytes.Buffer
			if err := export.Write(&buf, snap.Table, f); err != nil {
				return err
			}
			if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			_, _ = color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "%d events written to %s\n", len(snap.Table.Rows), out)
			return nil
		},
	}
	sel.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (required)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "csv or xlsx (default from --out extension)")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}
