package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newViewCmd(getApp func() *App, getOutput func() OutputFormat) *cobra.Command {
	var saveTo string

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Fetch every saved feed in order and print its articles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(getApp)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("save") {
				saveTo = app.cfg.OutputFile
			}

			out := cmd.OutOrStdout()
			if getOutput() == OutputText {
				app.Display(cmd.Context(), out, saveTo)
				return nil
			}

			rep := app.fetcher.Run(cmd.Context(), app.store.URLs(), func(done, total int, result Result) {
				fmt.Fprintf(cmd.ErrOrStderr(), "[%d/%d] %s -> %s\n", done, total, result.URL, result.Outcome)
			})
			resp := SaveResponse{Report: rep}
			if saveTo != "" {
				n, err := writeArticlesFile(saveTo, rep)
				if err != nil {
					return err
				}
				resp.SavedTo = saveTo
				resp.Articles = n
			}

			if getOutput() == OutputJSON {
				return writeJSON(out, resp)
			}
			writeReportTable(out, rep)
			if resp.SavedTo != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Saved %d articles to %s\n", resp.Articles, resp.SavedTo)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&saveTo, "save", "", "Also write title/link pairs to this file (overwritten)")
	return cmd
}
