package cli

import (
	"errors"
	"fmt"

	"github.com/odysseus0/rssfeed/internal/store"
	"github.com/spf13/cobra"
)

func newAddCmd(getApp func() *App, getOutput func() OutputFormat) *cobra.Command {
	return &cobra.Command{
		Use:   "add <url>",
		Short: "Save a site; the feed suffix is appended to the URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(getApp)
			if err != nil {
				return err
			}

			url, err := app.AddSite(args[0])
			if err != nil && !errors.Is(err, store.ErrDuplicate) {
				return fmt.Errorf("add site: %w", err)
			}
			added := err == nil

			out := cmd.OutOrStdout()
			if getOutput() == OutputJSON {
				if jsonErr := writeJSON(out, AddSiteResponse{URL: url, Added: added}); jsonErr != nil {
					return jsonErr
				}
			} else if added {
				fmt.Fprintf(out, "✓ Added: %s\n", url)
			}
			if !added {
				return fmt.Errorf("add site: %w", err)
			}
			return nil
		},
	}
}
