package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newListCmd(getApp func() *App, getOutput func() OutputFormat) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved feed URLs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(getApp)
			if err != nil {
				return err
			}
			urls := app.store.URLs()
			out := cmd.OutOrStdout()
			switch getOutput() {
			case OutputJSON:
				return writeJSON(out, urls)
			case OutputTable:
				writeURLsTable(out, urls)
			default:
				if len(urls) == 0 {
					fmt.Fprintln(out, "No URLs saved.")
				}
				for _, u := range urls {
					fmt.Fprintln(out, u)
				}
			}
			return nil
		},
	}
}
