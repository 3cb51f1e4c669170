package youtube

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpclient "ytscribe/http"
)

const sampleJSON3 = `{
  "events": [
    {"tStartMs": 0, "dDurationMs": 1000, "segs": [{"utf8": "hi"}]},
    {"tStartMs": 1500, "dDurationMs": 2250, "segs": [{"utf8": "merhaba "}, {"utf8": "dünya"}]},
    {"tStartMs": 4000, "dDurationMs": 500}
  ]
}`

// newTestFetcher points a fetcher at a local server with rate limiting off.
func newTestFetcher(t *testing.T, handler http.Handler) *TimedtextFetcher {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := httpclient.New(&httpclient.Config{Timeout: 5 * time.Second})
	client.RateLimiter().SetCustomRate("127.0.0.1", 0)

	fetcher := NewTimedtextFetcherWithClient(client)
	fetcher.SetBaseURL(server.URL)
	fetcher.SetLogger(discardLogger())
	return fetcher
}

func TestTimedtextFetcherParsesSegments(t *testing.T) {
	fetcher := newTestFetcher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("v"); got != "v1" {
			t.Errorf("request video ID = %q, want %q", got, "v1")
		}
		if got := r.URL.Query().Get("fmt"); got != "json3" {
			t.Errorf("request fmt = %q, want json3", got)
		}
		w.Write([]byte(sampleJSON3))
	}))

	result := fetcher.Fetch(context.Background(), "v1", []string{"en"})
	if !result.Available() {
		t.Fatalf("Fetch() unavailable, reason = %q", result.Reason)
	}
	if result.Language != "en" {
		t.Errorf("Language = %q, want %q", result.Language, "en")
	}

	want := []Segment{
		{Text: "hi", Start: 0.0, Duration: 1.0},
		{Text: "merhaba dünya", Start: 1.5, Duration: 2.25},
	}
	if len(result.Segments) != len(want) {
		t.Fatalf("got %d segments, want %d", len(result.Segments), len(want))
	}
	for i, seg := range result.Segments {
		if seg != want[i] {
			t.Errorf("segment %d = %+v, want %+v", i, seg, want[i])
		}
	}
}

func TestTimedtextFetcherLanguagePriority(t *testing.T) {
	var requested []string
	fetcher := newTestFetcher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lang := r.URL.Query().Get("lang")
		requested = append(requested, lang)
		if lang != "en" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(sampleJSON3))
	}))

	result := fetcher.Fetch(context.Background(), "v1", []string{"tr", "en"})
	if !result.Available() {
		t.Fatalf("Fetch() unavailable, reason = %q", result.Reason)
	}
	if result.Language != "en" {
		t.Errorf("Language = %q, want fallback %q", result.Language, "en")
	}
	if len(requested) != 2 || requested[0] != "tr" || requested[1] != "en" {
		t.Errorf("languages requested = %v, want [tr en]", requested)
	}
}

func TestTimedtextFetcherNoTranscript(t *testing.T) {
	fetcher := newTestFetcher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))

	result := fetcher.Fetch(context.Background(), "v1", []string{"tr", "en"})
	if result.Available() {
		t.Fatal("Fetch() available, want unavailable")
	}
	if result.Reason != ReasonNoTranscript {
		t.Errorf("Reason = %q, want %q", result.Reason, ReasonNoTranscript)
	}
}

func TestTimedtextFetcherEmptyBodyMeansNoTrack(t *testing.T) {
	fetcher := newTestFetcher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The real endpoint answers 200 with an empty body for missing tracks.
	}))

	result := fetcher.Fetch(context.Background(), "v1", []string{"en"})
	if result.Available() {
		t.Fatal("Fetch() available, want unavailable")
	}
	if result.Reason != ReasonNoTranscript {
		t.Errorf("Reason = %q, want %q", result.Reason, ReasonNoTranscript)
	}
}

func TestTimedtextFetcherDisabled(t *testing.T) {
	var calls int
	fetcher := newTestFetcher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusForbidden)
	}))

	result := fetcher.Fetch(context.Background(), "v1", []string{"tr", "en"})
	if result.Reason != ReasonDisabled {
		t.Errorf("Reason = %q, want %q", result.Reason, ReasonDisabled)
	}
	if calls != 1 {
		t.Errorf("request count = %d, want 1 (disabled applies to the whole video)", calls)
	}
}

func TestTimedtextFetcherServerErrorIsContained(t *testing.T) {
	fetcher := newTestFetcher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	result := fetcher.Fetch(context.Background(), "v1", []string{"en"})
	if result.Available() {
		t.Fatal("Fetch() available, want unavailable")
	}
	if result.Reason != ReasonFetchError {
		t.Errorf("Reason = %q, want %q", result.Reason, ReasonFetchError)
	}
}

func TestTimedtextFetcherGarbageResponseIsContained(t *testing.T) {
	fetcher := newTestFetcher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))

	result := fetcher.Fetch(context.Background(), "v1", []string{"en"})
	if result.Reason != ReasonFetchError {
		t.Errorf("Reason = %q, want %q", result.Reason, ReasonFetchError)
	}
}

func TestTimedtextFetcherEmptyVideoID(t *testing.T) {
	fetcher := NewTimedtextFetcher()
	fetcher.SetLogger(discardLogger())

	result := fetcher.Fetch(context.Background(), "", []string{"en"})
	if result.Available() {
		t.Fatal("Fetch() available for empty video ID")
	}
}

func TestParseTimedtextSkipsEmptyEvents(t *testing.T) {
	segments, err := parseTimedtext([]byte(`{"events":[{"tStartMs":0,"dDurationMs":100,"segs":[{"utf8":"\n"}]}]}`))
	if err != nil {
		t.Fatalf("parseTimedtext() error = %v", err)
	}
	if len(segments) != 0 {
		t.Errorf("got %d segments from whitespace-only events, want 0", len(segments))
	}
}
