package opml

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"golang.org/x/net/html/charset"
)

type opmlDoc struct {
	XMLName xml.Name `xml:"opml"`
	Version string   `xml:"version,attr,omitempty"`
	Head    opmlHead `xml:"head"`
	Body    opmlBody `xml:"body"`
}

type opmlHead struct {
	Title string `xml:"title,omitempty"`
}

type opmlBody struct {
	Outlines []opmlOutline `xml:"outline"`
}

type opmlOutline struct {
	Text        string        `xml:"text,attr,omitempty"`
	Title       string        `xml:"title,attr,omitempty"`
	Type        string        `xml:"type,attr,omitempty"`
	XMLURL      string        `xml:"xmlUrl,attr,omitempty"`
	XMLURLLower string        `xml:"xmlurl,attr,omitempty"`
	Outlines    []opmlOutline `xml:"outline,omitempty"`
}

// ReadOPML returns the unique feed URLs of every outline in the document at
// path, which may be a local file or an http(s) URL fetched with client.
func ReadOPML(ctx context.Context, client *http.Client, path string) ([]string, error) {
	r, err := openOPML(ctx, client, path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var doc opmlDoc
	decoder := xml.NewDecoder(r)
	decoder.Strict = false
	decoder.Entity = xml.HTMLEntity
	decoder.CharsetReader = charset.NewReaderLabel
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode opml %s: %w", path, err)
	}

	var urls []string
	seen := make(map[string]struct{})
	var walk func([]opmlOutline)
	walk = func(outlines []opmlOutline) {
		for _, o := range outlines {
			if feedURL := o.feedURL(); feedURL != "" {
				if _, ok := seen[feedURL]; !ok {
					seen[feedURL] = struct{}{}
					urls = append(urls, feedURL)
				}
			}
			walk(o.Outlines)
		}
	}
	walk(doc.Body.Outlines)
	return urls, nil
}

func openOPML(ctx context.Context, client *http.Client, path string) (io.ReadCloser, error) {
	if !strings.HasPrefix(path, "http://") && !strings.HasPrefix(path, "https://") {
		return os.Open(path)
	}
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("fetch %s: %s", path, resp.Status)
	}
	return resp.Body, nil
}

// WriteOPML writes urls as a flat OPML 2.0 subscription list.
func WriteOPML(w io.Writer, urls []string) error {
	outlines := make([]opmlOutline, 0, len(urls))
	for _, u := range urls {
		label := outlineLabel(u)
		outlines = append(outlines, opmlOutline{
			Text:   label,
			Title:  label,
			Type:   "rss",
			XMLURL: u,
		})
	}

	doc := opmlDoc{
		Version: "2.0",
		Head:    opmlHead{Title: "rssfeed subscriptions"},
		Body:    opmlBody{Outlines: outlines},
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return err
	}
	if err := enc.Flush(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func outlineLabel(raw string) string {
	if u, err := url.Parse(raw); err == nil && u.Host != "" {
		return u.Host
	}
	return raw
}

func (o opmlOutline) feedURL() string {
	if v := strings.TrimSpace(o.XMLURL); v != "" {
		return v
	}
	return strings.TrimSpace(o.XMLURLLower)
}
