package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/spektr-org/eventboard/engine"
)

func newOptionsCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "options",
		Short: "List selectable chapter groups and event types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := a.service().Options(cmd.Context())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if format == "json" || format == "pretty" {
				return writeJSON(w, opts, format == "pretty")
			}

			bold := color.New(color.Bold)
			dim := color.New(color.Faint)
			list := func(title string, values []string, hasNull bool) {
				_, _ = bold.Fprintln(w, title)
				for _, v := range values {
					_, _ = fmt.Fprintf(w, "  %s\n", v)
				}
				if hasNull {
					_, _ = dim.Fprintf(w, "  %s\n", engine.NullLabel)
				}
			}
			list("Chapter/Club/Group", opts.Groups, opts.NullGroup)
			list("Event Type", opts.Types, opts.NullType)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json, pretty")
	return cmd
}
