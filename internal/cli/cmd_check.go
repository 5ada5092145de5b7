package cli

import (
	"errors"
	"fmt"

	feedpkg "github.com/odysseus0/rssfeed/internal/fetch"
	"github.com/spf13/cobra"
)

func newCheckCmd(getApp func() *App, getOutput func() OutputFormat) *cobra.Command {
	return &cobra.Command{
		Use:   "check <url>",
		Short: "Describe the feed at a URL without saving it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(getApp)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			info, err := app.fetcher.Inspect(cmd.Context(), args[0])
			if err != nil {
				err = fmt.Errorf("check %s: %w", args[0], err)
				if errors.Is(err, feedpkg.ErrInvalidFeed) && len(info.Candidates) > 0 {
					if getOutput() == OutputJSON {
						if jsonErr := writeJSON(out, info); jsonErr != nil {
							return errors.Join(err, jsonErr)
						}
					} else {
						fmt.Fprintln(out, "Not a feed. Feeds advertised by this page:")
						for _, c := range info.Candidates {
							fmt.Fprintf(out, "  %s\n", c)
						}
					}
				}
				return err
			}

			if getOutput() == OutputJSON {
				return writeJSON(out, info)
			}
			writeFeedInfoTable(out, info)
			return nil
		},
	}
}
