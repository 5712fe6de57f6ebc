package main

import (
	"log/slog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/spektr-org/eventboard/config"
	"github.com/spektr-org/eventboard/dashboard"
	"github.com/spektr-org/eventboard/logging"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	dataFile   string
	verbose    bool
	quiet      bool
	noColor    bool
}

// app is resolved once per invocation in PersistentPreRunE.
type app struct {
	flags  globalFlags
	cfg    config.Config
	logger *slog.Logger
}

func (a *app) service() *dashboard.Service {
	return dashboard.NewService(a.cfg.DataFile,
		dashboard.WithLogo(a.cfg.LogoFile),
		dashboard.WithTitle(a.cfg.Title),
		dashboard.WithLogger(a.logger))
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "eventboard",
		Short: "Event registration dashboard",
		Long: `eventboard loads an event registration spreadsheet and answers the
dashboard's questions: how many registrants, by chapter/group and by
event type, with optional paid-only filtering.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if a.flags.noColor {
				color.NoColor = true
			}
			cfg, err := config.Load(a.flags.configPath)
			if err != nil {
				return err
			}
			if a.flags.dataFile != "" {
				cfg.DataFile = a.flags.dataFile
			}
			a.cfg = cfg
			a.logger = logging.Setup(logging.Options{
				Level:   cfg.Log.Level,
				Format:  cfg.Log.Format,
				Writer:  cmd.ErrOrStderr(),
				Verbose: a.flags.verbose,
				Quiet:   a.flags.quiet,
			})
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.flags.configPath, "config", "c", "", "config file (default "+config.DefaultFile+" if present)")
	pf.StringVarP(&a.flags.dataFile, "data", "d", "", "registration spreadsheet (.xlsx or .csv); overrides config")
	pf.BoolVarP(&a.flags.verbose, "verbose", "v", false, "enable verbose output")
	pf.BoolVarP(&a.flags.quiet, "quiet", "q", false, "suppress non-essential output")
	pf.BoolVar(&a.flags.noColor, "no-color", false, "disable colored output")

	root.AddCommand(
		newSummaryCmd(a),
		newOptionsCmd(a),
		newChartCmd(a),
		newExportCmd(a),
		newServeCmd(a),
		newVersionCmd(),
	)
	return root
}
