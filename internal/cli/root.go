package cli

import (
	"context"
	"fmt"

	"github.com/odysseus0/rssfeed/internal/config"
	"github.com/odysseus0/rssfeed/internal/logger"
	"github.com/spf13/cobra"
)

// Execute loads configuration and runs the root command.
func Execute() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	defer logger.Sync()
	return NewRootCmd(cfg).ExecuteContext(context.Background())
}

func NewRootCmd(cfg config.Config) *cobra.Command {
	var output string
	var outFmt OutputFormat
	var verbose bool
	var app *App

	output = string(OutputText)

	getApp := func() *App { return app }
	getOutput := func() OutputFormat { return outFmt }

	cmd := &cobra.Command{
		Use:           "rssfeed",
		Short:         "Track RSS feed URLs and list their articles",
		Long:          "Run without a subcommand for the interactive add/view prompt.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			parsedFmt, err := parseOutputFormat(output)
			if err != nil {
				return err
			}
			outFmt = parsedFmt
			if !requiresApp(cmd) {
				return nil
			}

			logCfg := logger.Config{Level: cfg.LogLevel, File: cfg.LogFile}
			if verbose {
				logCfg.Level = "debug"
			}
			if err := logger.InitWriter(logCfg, cmd.ErrOrStderr()); err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			if app != nil {
				return nil
			}
			app = NewApp(cfg)
			if app.loadErr != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error occurred: %v\n", app.loadErr)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			app = nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := requireApp(getApp)
			if err != nil {
				return err
			}
			return NewDriver(a, cmd.InOrStdin(), cmd.OutOrStdout()).Run(cmd.Context())
		},
	}

	cmd.PersistentFlags().StringVar(&cfg.URLsFile, "urls-file", cfg.URLsFile, "Saved feed URL list (one per line)")
	cmd.PersistentFlags().StringVarP(&output, "output", "o", output, "Output format: text, table, json")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(newAddCmd(getApp, getOutput))
	cmd.AddCommand(newListCmd(getApp, getOutput))
	cmd.AddCommand(newViewCmd(getApp, getOutput))
	cmd.AddCommand(newCheckCmd(getApp, getOutput))
	cmd.AddCommand(newImportCmd(getApp, getOutput))
	cmd.AddCommand(newExportCmd(getApp, getOutput))

	return cmd
}

func requiresApp(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		name := c.Name()
		if name == "help" || name == "completion" {
			return false
		}
	}
	return true
}
