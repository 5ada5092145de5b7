package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/odysseus0/rssfeed/internal/model"
)

func TestFetchBody_SendsConfiguredUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	body, err := newTestFetcher().FetchBody(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if string(body) != "ok" {
		t.Fatalf("unexpected body %q", body)
	}
	if gotUA != "rssfeed-test/1.0" {
		t.Fatalf("User-Agent = %q", gotUA)
	}
}

func TestFetchBody_NonSuccessStatusIsStatusError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := newTestFetcher().FetchBody(context.Background(), srv.URL)
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected *StatusError, got %v", err)
	}
	if statusErr.Code != http.StatusNotFound {
		t.Fatalf("Code = %d, want 404", statusErr.Code)
	}
}

func TestFetchBody_UnreachableIsConnError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	_, err := newTestFetcher().FetchBody(context.Background(), addr)
	var connErr *ConnError
	if !errors.As(err, &connErr) {
		t.Fatalf("expected *ConnError, got %v", err)
	}
	if connErr.Reason == "" {
		t.Fatalf("expected a reason")
	}
}

func TestFetchBody_MissingSchemeIsConnError(t *testing.T) {
	_, err := newTestFetcher().FetchBody(context.Background(), "example.com/feed")
	var connErr *ConnError
	if !errors.As(err, &connErr) {
		t.Fatalf("expected *ConnError, got %v", err)
	}
}

func TestFetchAndAggregate_DuplicateTitlesLastWriteWins(t *testing.T) {
	srv := serveXML(t, rssWithItems(`
<item><title>T1</title><link>L1</link></item>
<item><title>T2</title><link>L2</link></item>
<item><title>T1</title><link>L3</link></item>`))

	res := newTestFetcher().FetchAndAggregate(context.Background(), srv.URL+"/feed")
	if res.Outcome != model.OutcomeOK {
		t.Fatalf("Outcome = %s, want ok (%+v)", res.Outcome, res)
	}
	want := map[string]string{"T1": "L3", "T2": "L2"}
	if got := res.Map(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Map() = %v, want %v", got, want)
	}
	if res.Articles[0].Title != "T1" || res.Articles[1].Title != "T2" {
		t.Fatalf("unexpected order %v", res.Articles)
	}
}

func TestFetchAndAggregate_HTTPErrorSkipsParse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(rssWithItems(`<item><title>T</title><link>L</link></item>`)))
	}))
	defer srv.Close()

	res := newTestFetcher().FetchAndAggregate(context.Background(), srv.URL)
	if res.Outcome != model.OutcomeHTTPError || res.StatusCode != http.StatusNotFound {
		t.Fatalf("unexpected result %+v", res)
	}
	if len(res.Articles) != 0 {
		t.Fatalf("expected no articles, got %v", res.Articles)
	}
}

func TestFetchAndAggregate_ConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	res := newTestFetcher().FetchAndAggregate(context.Background(), addr)
	if res.Outcome != model.OutcomeConnectionError || res.Reason == "" {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestFetchAndAggregate_InvalidXMLIsParseError(t *testing.T) {
	srv := serveXML(t, "<rss><channel><item>")
	res := newTestFetcher().FetchAndAggregate(context.Background(), srv.URL)
	if res.Outcome != model.OutcomeParseError {
		t.Fatalf("Outcome = %s, want parse_error", res.Outcome)
	}
}

func TestFetchAndAggregate_ZeroArticlesIsEmpty(t *testing.T) {
	srv := serveXML(t, rssWithItems(`<item><title>No link</title></item>`))
	res := newTestFetcher().FetchAndAggregate(context.Background(), srv.URL)
	if res.Outcome != model.OutcomeEmpty {
		t.Fatalf("Outcome = %s, want empty", res.Outcome)
	}
	if res.Outcome.Failed() {
		t.Fatalf("empty must not count as failure")
	}
	if res.Hint != "" {
		t.Fatalf("RSS document should carry no hint, got %q", res.Hint)
	}
}

func TestFetchAndAggregate_AtomGetsHint(t *testing.T) {
	srv := serveXML(t, `<?xml version="1.0"?><feed xmlns="http://www.w3.org/2005/Atom"><title>A</title><entry><title>E</title><link href="https://example.com/e"/></entry></feed>`)
	res := newTestFetcher().FetchAndAggregate(context.Background(), srv.URL)
	if res.Outcome != model.OutcomeEmpty {
		t.Fatalf("Outcome = %s, want empty", res.Outcome)
	}
	if !strings.Contains(res.Hint, "Atom") {
		t.Fatalf("expected Atom hint, got %q", res.Hint)
	}
}

func TestRun_SequentialInOrderWithTally(t *testing.T) {
	var inFlight, maxInFlight int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&inFlight, 1)
		defer atomic.AddInt32(&inFlight, -1)
		if n > atomic.LoadInt32(&maxInFlight) {
			atomic.StoreInt32(&maxInFlight, n)
		}
		switch r.URL.Path {
		case "/ok/feed":
			_, _ = w.Write([]byte(rssWithItems(`<item><title>A</title><link>https://example.com/a</link></item>`)))
		case "/empty/feed":
			_, _ = w.Write([]byte(rssWithItems("")))
		case "/bad/feed":
			_, _ = w.Write([]byte("not xml"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	urls := []string{
		srv.URL + "/ok/feed",
		srv.URL + "/missing/feed",
		srv.URL + "/empty/feed",
		srv.URL + "/bad/feed",
	}

	var seen []string
	rep := newTestFetcher().Run(context.Background(), urls, func(done, total int, result Result) {
		if total != len(urls) || done != len(seen)+1 {
			t.Errorf("unexpected progress %d/%d", done, total)
		}
		seen = append(seen, result.URL)
	})

	if !reflect.DeepEqual(seen, urls) {
		t.Fatalf("callback order = %v, want %v", seen, urls)
	}
	if len(rep.Results) != len(urls) {
		t.Fatalf("expected %d results, got %d", len(urls), len(rep.Results))
	}
	wantOutcomes := []model.Outcome{model.OutcomeOK, model.OutcomeHTTPError, model.OutcomeEmpty, model.OutcomeParseError}
	for i, want := range wantOutcomes {
		if rep.Results[i].Outcome != want {
			t.Fatalf("result %d outcome = %s, want %s", i, rep.Results[i].Outcome, want)
		}
	}
	if rep.Succeeded != 1 || rep.Empty != 1 || rep.Failed != 2 {
		t.Fatalf("unexpected tally %+v", rep)
	}
	if atomic.LoadInt32(&maxInFlight) != 1 {
		t.Fatalf("expected strictly sequential fetching, saw %d in flight", maxInFlight)
	}
	if rep.EndedAt.Before(rep.StartedAt) {
		t.Fatalf("EndedAt before StartedAt")
	}
}

func TestRun_EmptyList(t *testing.T) {
	rep := newTestFetcher().Run(context.Background(), nil, nil)
	if len(rep.Results) != 0 || rep.Succeeded+rep.Empty+rep.Failed != 0 {
		t.Fatalf("unexpected report %+v", rep)
	}
}

func TestFetchBody_OversizedBodyIsConnError(t *testing.T) {
	old := maxBodyBytes
	maxBodyBytes = 64
	t.Cleanup(func() { maxBodyBytes = old })

	srv := serveXML(t, rssWithItems(strings.Repeat("<item><title>T</title><link>L</link></item>", 4)))
	f := newTestFetcher()

	_, err := f.FetchBody(context.Background(), srv.URL)
	var connErr *ConnError
	if !errors.As(err, &connErr) || !errors.Is(err, ErrBodyTooLarge) {
		t.Fatalf("expected ConnError wrapping ErrBodyTooLarge, got %v", err)
	}

	result := f.FetchAndAggregate(context.Background(), srv.URL)
	if result.Outcome != model.OutcomeConnectionError || result.Reason != ErrBodyTooLarge.Error() {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestFetchBody_BodyAtLimitIsRead(t *testing.T) {
	old := maxBodyBytes
	maxBodyBytes = 8
	t.Cleanup(func() { maxBodyBytes = old })

	srv := serveXML(t, "12345678")
	body, err := newTestFetcher().FetchBody(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if string(body) != "12345678" {
		t.Fatalf("unexpected body %q", body)
	}
}
