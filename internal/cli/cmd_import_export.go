package cli

import (
	"errors"
	"fmt"

	"github.com/odysseus0/rssfeed/internal/opml"
	"github.com/odysseus0/rssfeed/internal/store"
	"github.com/spf13/cobra"
)

func newImportCmd(getApp func() *App, getOutput func() OutputFormat) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.opml|url>",
		Short: "Append feed URLs from an OPML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(getApp)
			if err != nil {
				return err
			}
			urls, err := opml.ReadOPML(cmd.Context(), app.fetcher.HTTPClient(), args[0])
			if err != nil {
				return err
			}

			report := ImportReport{File: args[0], Total: len(urls), Results: make([]ImportResult, 0, len(urls))}
			for _, u := range urls {
				item := ImportResult{URL: u}
				switch err := app.store.Append(u); {
				case err == nil:
					item.Added = true
					report.Added++
				case errors.Is(err, store.ErrDuplicate):
					report.Existing++
				default:
					item.Error = err.Error()
					report.Failed++
				}
				report.Results = append(report.Results, item)
			}

			out := cmd.OutOrStdout()
			if getOutput() == OutputJSON {
				return writeJSON(out, report)
			}
			fmt.Fprintf(out, "Imported %d feeds from %s\n", report.Total, report.File)
			fmt.Fprintf(out, "Added: %d, Existing: %d, Failed: %d\n", report.Added, report.Existing, report.Failed)
			for _, r := range report.Results {
				if r.Error != "" {
					fmt.Fprintf(out, "- %s -> error: %s\n", r.URL, r.Error)
				}
			}
			return nil
		},
	}
}

func newExportCmd(getApp func() *App, getOutput func() OutputFormat) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Export saved feed URLs as OPML to stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(getApp)
			if err != nil {
				return err
			}
			return opml.WriteOPML(cmd.OutOrStdout(), app.store.URLs())
		},
	}
}
