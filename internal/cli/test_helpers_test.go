package cli

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/odysseus0/rssfeed/internal/config"
)

const sampleFeed = `<?xml version="1.0"?>
<rss version="2.0"><channel>
<title>Test Feed</title><link>https://example.com</link><description>desc</description>
<item><title>Entry One</title><link>https://example.com/1</link></item>
<item><title>Entry Two</title><link>https://example.com/2</link></item>
</channel></rss>`

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.URLsFile = filepath.Join(t.TempDir(), "saved_urls.txt")
	cfg.LogLevel = "error"
	return cfg
}

func writeURLs(t *testing.T, path string, urls ...string) {
	t.Helper()
	body := strings.Join(urls, "\n")
	if len(urls) > 0 {
		body += "\n"
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write url file: %v", err)
	}
}

func readURLs(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read url file: %v", err)
	}
	return strings.Fields(string(data))
}

// newFeedServer serves sampleFeed at /feed, an empty RSS channel at
// /empty and 404 for everything else.
func newFeedServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/feed":
			w.Header().Set("Content-Type", "application/rss+xml")
			_, _ = w.Write([]byte(sampleFeed))
		case "/empty":
			_, _ = w.Write([]byte(`<rss version="2.0"><channel><title>x</title></channel></rss>`))
		case "/page":
			_, _ = w.Write([]byte(`<html><head><link rel="alternate" type="application/rss+xml" href="/feed"></head></html>`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func runCLI(t *testing.T, cfg config.Config, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmd(cfg)
	var stdout, stderr bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}
