package model

import "time"

type OutputFormat string

const (
	OutputText  OutputFormat = "text"
	OutputTable OutputFormat = "table"
	OutputJSON  OutputFormat = "json"
)

type Article struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}

// Outcome tags how a single feed fetch ended.
type Outcome string

const (
	OutcomeOK              Outcome = "ok"
	OutcomeEmpty           Outcome = "empty"
	OutcomeHTTPError       Outcome = "http_error"
	OutcomeConnectionError Outcome = "connection_error"
	OutcomeParseError      Outcome = "parse_error"
)

// Failed reports whether the outcome is one of the error variants.
func (o Outcome) Failed() bool {
	switch o {
	case OutcomeHTTPError, OutcomeConnectionError, OutcomeParseError:
		return true
	default:
		return false
	}
}

// Result is the outcome of fetching one feed URL. Articles holds the
// title->link mapping in first-seen order; a repeated title keeps its
// position and takes the later link.
type Result struct {
	URL        string    `json:"url"`
	Outcome    Outcome   `json:"outcome"`
	StatusCode int       `json:"status_code,omitempty"`
	Reason     string    `json:"reason,omitempty"`
	Hint       string    `json:"hint,omitempty"`
	Articles   []Article `json:"articles"`
}

func (r Result) Map() map[string]string {
	out := make(map[string]string, len(r.Articles))
	for _, a := range r.Articles {
		out[a.Title] = a.Link
	}
	return out
}

type Report struct {
	StartedAt time.Time `json:"started_at"`
	EndedAt   time.Time `json:"ended_at"`
	Results   []Result  `json:"results"`
	Succeeded int       `json:"succeeded"`
	Empty     int       `json:"empty"`
	Failed    int       `json:"failed"`
}

// Add appends r and updates the tally.
func (rep *Report) Add(r Result) {
	rep.Results = append(rep.Results, r)
	switch {
	case r.Outcome == OutcomeOK:
		rep.Succeeded++
	case r.Outcome.Failed():
		rep.Failed++
	default:
		rep.Empty++
	}
}

// FeedInfo describes a feed as seen by gofeed. RSSArticles counts what the
// channel/item reader would keep from the same document.
type FeedInfo struct {
	URL         string   `json:"url"`
	FeedType    string   `json:"feed_type,omitempty"`
	Version     string   `json:"version,omitempty"`
	Title       string   `json:"title,omitempty"`
	SiteURL     string   `json:"site_url,omitempty"`
	ItemCount   int      `json:"item_count"`
	RSSArticles int      `json:"rss_articles"`
	Candidates  []string `json:"candidates,omitempty"`
}
