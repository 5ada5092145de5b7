package fetch

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/mmcdole/gofeed"
	"golang.org/x/net/html"
)

// NormalizeURL trims raw and defaults the scheme to https.
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("url is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" {
		u, err = url.Parse("https://" + raw)
		if err != nil {
			return "", err
		}
	}
	if u.Host == "" {
		return "", fmt.Errorf("invalid url %q", raw)
	}
	return u.String(), nil
}

// Inspect fetches rawURL once and describes it with gofeed's universal
// parser. When the body is not a feed, alternate feed links advertised by
// an HTML page are returned in Candidates alongside ErrInvalidFeed.
func (f *Fetcher) Inspect(ctx context.Context, rawURL string) (FeedInfo, error) {
	normalized, err := NormalizeURL(rawURL)
	if err != nil {
		return FeedInfo{}, err
	}
	info := FeedInfo{URL: normalized}

	body, err := f.FetchBody(ctx, normalized)
	if err != nil {
		return info, err
	}

	parsed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		base, _ := url.Parse(normalized)
		info.Candidates = feedLinkCandidates(body, base)
		return info, fmt.Errorf("%w: %v", ErrInvalidFeed, err)
	}

	info.FeedType = parsed.FeedType
	info.Version = parsed.FeedVersion
	info.Title = strings.TrimSpace(parsed.Title)
	info.SiteURL = strings.TrimSpace(parsed.Link)
	info.ItemCount = len(parsed.Items)
	if rss, rssErr := Parse(body); rssErr == nil {
		info.RSSArticles = len(Aggregate(rss))
	}
	return info, nil
}

// feedLinkCandidates collects <link rel="alternate"> targets that look like
// feeds, resolved against the page's <base href> when present.
func feedLinkCandidates(body []byte, base *url.URL) []string {
	if base == nil {
		return nil
	}
	root, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil
	}

	var links []*html.Node
	baseHref := ""
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "base":
				if baseHref == "" {
					baseHref = strings.TrimSpace(attr(n, "href"))
				}
			case "link":
				links = append(links, n)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	if baseHref != "" {
		if u, err := url.Parse(baseHref); err == nil {
			base = base.ResolveReference(u)
		}
	}

	seen := make(map[string]struct{})
	var out []string
	for _, n := range links {
		href := strings.TrimSpace(attr(n, "href"))
		if href == "" || !hasToken(attr(n, "rel"), "alternate") || !looksLikeFeed(attr(n, "type"), href) {
			continue
		}
		u, err := url.Parse(href)
		if err != nil {
			continue
		}
		abs := base.ResolveReference(u).String()
		if _, ok := seen[abs]; ok {
			continue
		}
		seen[abs] = struct{}{}
		out = append(out, abs)
	}
	return out
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}

func hasToken(list, token string) bool {
	for _, t := range strings.Fields(strings.ToLower(list)) {
		if t == token {
			return true
		}
	}
	return false
}

func looksLikeFeed(typeAttr, href string) bool {
	typeAttr = strings.ToLower(strings.TrimSpace(typeAttr))
	switch typeAttr {
	case "application/rss+xml", "application/atom+xml", "application/xml", "text/xml":
		return true
	case "":
	default:
		return strings.Contains(typeAttr, "rss") || strings.Contains(typeAttr, "atom")
	}

	h := strings.ToLower(href)
	if u, err := url.Parse(href); err == nil && u.Path != "" {
		switch path.Ext(strings.ToLower(u.Path)) {
		case ".rss", ".atom", ".xml":
			return true
		}
	}
	return strings.Contains(h, "/feed") || strings.Contains(h, "rss")
}
