package fetch

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/odysseus0/rssfeed/internal/logger"
	"github.com/odysseus0/rssfeed/internal/model"
)

// maxBodyBytes caps how much of a response body is read.
var maxBodyBytes int64 = 16 << 20

type Fetcher struct {
	cfg    Config
	client *http.Client
}

type progressFn func(done, total int, result Result)

// NewFetcher builds a fetcher on the default transport. A zero
// cfg.HTTPTimeout leaves the client without a timeout of its own.
func NewFetcher(cfg Config) *Fetcher {
	return &Fetcher{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.HTTPTimeout},
	}
}

func (f *Fetcher) HTTPClient() *http.Client {
	return f.client
}

// FetchBody performs a single GET and returns the response body. Non-2xx
// responses yield *StatusError; failures without a response yield *ConnError.
func (f *Fetcher) FetchBody(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &ConnError{URL: rawURL, Reason: err.Error(), Err: err}
	}
	if f.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", f.cfg.UserAgent)
	}

	logger.Debugf("[fetch] GET %s", rawURL)
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &ConnError{URL: rawURL, Reason: connReason(err), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Infof("[fetch] %s -> http %d", rawURL, resp.StatusCode)
		return nil, &StatusError{URL: rawURL, Code: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, &ConnError{URL: rawURL, Reason: connReason(err), Err: err}
	}
	if int64(len(data)) > maxBodyBytes {
		logger.Warnf("[fetch] %s -> body larger than %d bytes", rawURL, maxBodyBytes)
		return nil, &ConnError{URL: rawURL, Reason: ErrBodyTooLarge.Error(), Err: ErrBodyTooLarge}
	}
	logger.Debugf("[fetch] %s -> http %d, %d bytes", rawURL, resp.StatusCode, len(data))
	return data, nil
}

func connReason(err error) string {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		return urlErr.Err.Error()
	}
	return err.Error()
}

// FetchAndAggregate fetches one feed and folds its items into an ordered
// title->link mapping. Fetch and parse failures are reported in the result
// and never returned as errors.
func (f *Fetcher) FetchAndAggregate(ctx context.Context, rawURL string) Result {
	result := Result{URL: rawURL, Articles: []Article{}}

	data, err := f.FetchBody(ctx, rawURL)
	if err != nil {
		return classify(result, err)
	}

	items, err := Parse(data)
	if err != nil {
		logger.Infof("[fetch] %s -> %v", rawURL, err)
		return classify(result, err)
	}

	result.Articles = Aggregate(items)
	if len(result.Articles) == 0 {
		result.Outcome = model.OutcomeEmpty
		result.Hint = emptyHint(data)
		return result
	}
	result.Outcome = model.OutcomeOK
	return result
}

func classify(result Result, err error) Result {
	var statusErr *StatusError
	var connErr *ConnError
	switch {
	case errors.As(err, &statusErr):
		result.Outcome = model.OutcomeHTTPError
		result.StatusCode = statusErr.Code
		result.Reason = statusErr.Error()
	case errors.As(err, &connErr):
		result.Outcome = model.OutcomeConnectionError
		result.Reason = connErr.Reason
	case errors.Is(err, ErrInvalidFeed):
		result.Outcome = model.OutcomeParseError
		result.Reason = err.Error()
	default:
		result.Outcome = model.OutcomeConnectionError
		result.Reason = err.Error()
	}
	return result
}

// Aggregate keys items by title. A repeated title keeps its first position
// and takes the later link.
func Aggregate(items []Article) []Article {
	index := make(map[string]int, len(items))
	out := make([]Article, 0, len(items))
	for _, item := range items {
		if i, ok := index[item.Title]; ok {
			out[i].Link = item.Link
			continue
		}
		index[item.Title] = len(out)
		out = append(out, item)
	}
	return out
}

// Run fetches urls one at a time in order and tallies the outcomes.
func (f *Fetcher) Run(ctx context.Context, urls []string, onResult progressFn) Report {
	report := Report{StartedAt: time.Now(), Results: make([]Result, 0, len(urls))}
	total := len(urls)
	for i, u := range urls {
		result := f.FetchAndAggregate(ctx, u)
		report.Add(result)
		if onResult != nil {
			onResult(i+1, total, result)
		}
	}
	report.EndedAt = time.Now()
	logger.Debugf("[fetch] run finished: %d ok, %d empty, %d failed", report.Succeeded, report.Empty, report.Failed)
	return report
}
