package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/odysseus0/rssfeed/internal/config"
	feedpkg "github.com/odysseus0/rssfeed/internal/fetch"
	"github.com/odysseus0/rssfeed/internal/store"
)

type App struct {
	cfg     config.Config
	store   *store.Store
	fetcher *feedpkg.Fetcher
	// loadErr is the error hit while reading the URL file, if any. The
	// store is empty but usable in that case.
	loadErr error
}

func NewApp(cfg config.Config) *App {
	s, err := store.Open(cfg.URLsFile)
	return &App{
		cfg:     cfg,
		store:   s,
		fetcher: feedpkg.NewFetcher(cfg),
		loadErr: err,
	}
}

// AddSite trims raw, appends the configured feed suffix and stores the
// result. The returned URL is the one that was (or would have been) stored.
func (a *App) AddSite(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: url cannot be empty", store.ErrInvalidInput)
	}
	url := raw + a.cfg.FeedSuffix
	if err := a.store.Append(url); err != nil {
		return url, err
	}
	return url, nil
}

// Display fetches every saved URL in order, streaming human-readable
// results to out, and saves the articles when an output file is set.
func (a *App) Display(ctx context.Context, out io.Writer, saveTo string) Report {
	urls := a.store.URLs()
	if len(urls) == 0 {
		fmt.Fprintln(out, "No URLs to display.")
		return Report{}
	}
	rep := a.fetcher.Run(ctx, urls, func(done, total int, result Result) {
		writeResultText(out, result)
	})
	writeTallyText(out, rep)
	a.save(out, saveTo, rep)
	return rep
}

func (a *App) save(out io.Writer, path string, rep Report) {
	if strings.TrimSpace(path) == "" {
		return
	}
	n, err := writeArticlesFile(path, rep)
	if err != nil {
		fmt.Fprintf(out, "Error occurred: %v\n", err)
		return
	}
	fmt.Fprintf(out, "Saved %d articles to %s\n", n, path)
}
