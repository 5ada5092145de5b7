package fetch

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/odysseus0/rssfeed/internal/config"
)

func newTestFetcher() *Fetcher {
	cfg := config.Default()
	cfg.UserAgent = "rssfeed-test/1.0"
	return NewFetcher(cfg)
}

// serveXML starts a server answering every path with body as RSS.
func serveXML(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func rssWithItems(items string) string {
	return `<?xml version="1.0"?>
<rss version="2.0"><channel>
<title>Test Feed</title><link>https://example.com</link><description>desc</description>
` + items + `
</channel></rss>`
}
