package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	httpclient "ytscribe/http"
)

// Segment is a single timed transcript line. The JSON field names are the
// on-disk document format and must not change.
type Segment struct {
	// Text is the transcript line content.
	Text string `json:"text"`
	// Start is the playback offset of the line in seconds.
	Start float64 `json:"start"`
	// Duration is how long the line is displayed, in seconds.
	Duration float64 `json:"duration"`
}

// UnavailableReason classifies why no transcript could be fetched.
type UnavailableReason string

const (
	// ReasonNone means the transcript was fetched successfully.
	ReasonNone UnavailableReason = ""
	// ReasonNoTranscript means no track exists in any requested language.
	ReasonNoTranscript UnavailableReason = "no transcript in requested languages"
	// ReasonDisabled means captions are disabled or the video is
	// region-blocked, private, or removed.
	ReasonDisabled UnavailableReason = "transcripts disabled or video unavailable"
	// ReasonFetchError covers every other provider failure. It is deliberately
	// broad: a single item's fetch failure must never abort a batch run.
	ReasonFetchError UnavailableReason = "unexpected fetch error"
)

// FetchResult is the outcome of a transcript fetch. Exactly one of the two
// variants holds: a non-empty Segments sequence, or a non-empty Reason.
type FetchResult struct {
	// Segments is the transcript in playback order. Empty when unavailable.
	Segments []Segment
	// Language is the language code the segments were fetched in.
	Language string
	// Reason is set when no transcript was obtained.
	Reason UnavailableReason
}

// Available reports whether the fetch produced a usable transcript.
func (r FetchResult) Available() bool {
	return r.Reason == ReasonNone && len(r.Segments) > 0
}

// TranscriptFetcher defines the contract for retrieving timed transcripts.
type TranscriptFetcher interface {
	// Fetch retrieves the transcript for videoID, trying languages in the
	// given priority order. Provider failures never surface as errors; they
	// are folded into the result's Reason.
	Fetch(ctx context.Context, videoID string, languages []string) FetchResult
}

// TimedtextFetcher fetches transcripts from YouTube's timedtext endpoint.
// Both manually authored and auto-generated tracks are served there.
type TimedtextFetcher struct {
	client  *httpclient.Client
	baseURL string
	logger  *log.Logger
}

// NewTimedtextFetcher creates a fetcher backed by a rate-limited HTTP client.
func NewTimedtextFetcher() *TimedtextFetcher {
	return NewTimedtextFetcherWithClient(httpclient.New(&httpclient.Config{
		Timeout:   30 * time.Second,
		UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
	}))
}

// NewTimedtextFetcherWithClient creates a fetcher using the provided client.
func NewTimedtextFetcherWithClient(client *httpclient.Client) *TimedtextFetcher {
	return &TimedtextFetcher{
		client:  client,
		baseURL: "https://www.youtube.com/api/timedtext",
		logger:  log.Default(),
	}
}

// SetLogger replaces the logger used for progress output.
func (f *TimedtextFetcher) SetLogger(logger *log.Logger) {
	if logger != nil {
		f.logger = logger
	}
}

// SetBaseURL overrides the timedtext endpoint. Used by tests.
func (f *TimedtextFetcher) SetBaseURL(baseURL string) {
	f.baseURL = baseURL
}

// Fetch tries each language in priority order and returns the first track the
// endpoint can supply. Every failure mode maps to an Unavailable result.
func (f *TimedtextFetcher) Fetch(ctx context.Context, videoID string, languages []string) FetchResult {
	if videoID == "" {
		return FetchResult{Reason: ReasonFetchError}
	}
	if len(languages) == 0 {
		languages = []string{"en"}
	}

	sawError := false
	for _, lang := range languages {
		segments, err := f.fetchLanguage(ctx, videoID, lang)
		switch {
		case err == nil && len(segments) > 0:
			return FetchResult{Segments: segments, Language: lang}
		case err == nil:
			// 200 with no events: no track in this language, try the next.
			continue
		case errors.Is(err, errTrackNotFound):
			continue
		case errors.Is(err, errCaptionsDisabled):
			f.logger.Printf("youtube: captions unavailable for %s: %v", videoID, err)
			return FetchResult{Reason: ReasonDisabled}
		default:
			f.logger.Printf("youtube: transcript fetch failed for %s lang %s: %v", videoID, lang, err)
			sawError = true
		}
	}

	if sawError {
		return FetchResult{Reason: ReasonFetchError}
	}
	return FetchResult{Reason: ReasonNoTranscript}
}

// Sentinel errors internal to language iteration.
var (
	errTrackNotFound    = errors.New("track not found")
	errCaptionsDisabled = errors.New("captions disabled")
)

// fetchLanguage fetches and parses one language track.
func (f *TimedtextFetcher) fetchLanguage(ctx context.Context, videoID, lang string) ([]Segment, error) {
	params := url.Values{}
	params.Set("v", videoID)
	params.Set("lang", lang)
	params.Set("fmt", "json3")

	response, err := f.client.Get(ctx, f.baseURL+"?"+params.Encode())
	if err != nil {
		var httpErr *httpclient.HTTPError
		if errors.As(err, &httpErr) {
			switch httpErr.StatusCode {
			case http.StatusNotFound:
				return nil, errTrackNotFound
			case http.StatusForbidden, http.StatusGone:
				return nil, fmt.Errorf("%w: status %d", errCaptionsDisabled, httpErr.StatusCode)
			}
		}
		return nil, fmt.Errorf("timedtext request failed: %w", err)
	}

	// The endpoint answers 200 with an empty body when no track exists.
	if len(response.Body) == 0 {
		return nil, errTrackNotFound
	}

	segments, err := parseTimedtext(response.Body)
	if err != nil {
		return nil, fmt.Errorf("parse timedtext response: %w", err)
	}
	return segments, nil
}

// timedtextResponse is the raw json3 timedtext payload.
type timedtextResponse struct {
	Events []timedtextEvent `json:"events"`
}

// timedtextEvent is a single timed event. Events without segs carry window
// metadata and are skipped.
type timedtextEvent struct {
	StartMs    int64          `json:"tStartMs"`
	DurationMs int64          `json:"dDurationMs"`
	Segs       []timedtextSeg `json:"segs,omitempty"`
}

// timedtextSeg is one text fragment within an event.
type timedtextSeg struct {
	UTF8 string `json:"utf8"`
}

// parseTimedtext converts a json3 payload into ordered segments.
func parseTimedtext(data []byte) ([]Segment, error) {
	var resp timedtextResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal timedtext JSON: %w", err)
	}

	var segments []Segment
	for _, event := range resp.Events {
		if len(event.Segs) == 0 {
			continue
		}

		var text strings.Builder
		for _, seg := range event.Segs {
			text.WriteString(seg.UTF8)
		}
		if strings.TrimSpace(text.String()) == "" {
			continue
		}

		segments = append(segments, Segment{
			Text:     text.String(),
			Start:    float64(event.StartMs) / 1000.0,
			Duration: float64(event.DurationMs) / 1000.0,
		})
	}

	return segments, nil
}
