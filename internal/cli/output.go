package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
)

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeResultText(out io.Writer, r Result) {
	fmt.Fprintf(out, "\n📰 Fetching from: %s\n", r.URL)
	if msg := describeFailure(r); msg != "" {
		fmt.Fprintln(out, msg)
	}
	for _, a := range r.Articles {
		fmt.Fprintf(out, "  • %s\n    %s\n\n", plainText(a.Title), strings.TrimSpace(a.Link))
	}
	if len(r.Articles) > 0 {
		fmt.Fprintf(out, "✓ Successfully fetched %d articles\n", len(r.Articles))
		return
	}
	fmt.Fprintln(out, "✗ No articles found")
	if r.Hint != "" {
		fmt.Fprintf(out, "  (%s)\n", r.Hint)
	}
}

func writeTallyText(out io.Writer, rep Report) {
	fmt.Fprintf(out, "\nFetched %d feed(s): %d succeeded, %d empty, %d failed\n",
		len(rep.Results), rep.Succeeded, rep.Empty, rep.Failed)
}

func writeReportTable(out io.Writer, rep Report) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FEED\tSTATUS\tARTICLES\tERROR")
	for _, r := range rep.Results {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n",
			compactText(r.URL, 56),
			r.Outcome,
			len(r.Articles),
			compactText(fallback(describeFailure(r), r.Hint), 60),
		)
	}
	_ = tw.Flush()

	fmt.Fprintln(out)
	tw = tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TITLE\tLINK")
	for _, r := range rep.Results {
		for _, a := range r.Articles {
			fmt.Fprintf(tw, "%s\t%s\n", compactText(plainText(a.Title), 60), strings.TrimSpace(a.Link))
		}
	}
	_ = tw.Flush()
}

func writeURLsTable(out io.Writer, urls []string) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tURL")
	for i, u := range urls {
		fmt.Fprintf(tw, "%d\t%s\n", i+1, u)
	}
	_ = tw.Flush()
}

func writeFeedInfoTable(out io.Writer, info FeedInfo) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FIELD\tVALUE")
	fmt.Fprintf(tw, "url\t%s\n", info.URL)
	fmt.Fprintf(tw, "type\t%s\n", fallback(info.FeedType, "-"))
	fmt.Fprintf(tw, "version\t%s\n", fallback(info.Version, "-"))
	fmt.Fprintf(tw, "title\t%s\n", fallback(plainText(info.Title), "-"))
	fmt.Fprintf(tw, "site\t%s\n", fallback(info.SiteURL, "-"))
	fmt.Fprintf(tw, "items\t%d\n", info.ItemCount)
	fmt.Fprintf(tw, "rss_articles\t%d\n", info.RSSArticles)
	_ = tw.Flush()
}

// writeArticlesFile overwrites path with one title/link block per article
// and returns how many articles were written.
func writeArticlesFile(path string, rep Report) (int, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("create output dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create output file: %w", err)
	}
	w := bufio.NewWriter(f)
	n := 0
	for _, r := range rep.Results {
		for _, a := range r.Articles {
			fmt.Fprintf(w, "%s\n%s\n\n", plainText(a.Title), strings.TrimSpace(a.Link))
			n++
		}
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return 0, fmt.Errorf("write output file: %w", err)
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("close output file: %w", err)
	}
	return n, nil
}
