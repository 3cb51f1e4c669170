// Package youtube provides playlist enumeration and transcript retrieval.
package youtube

import (
	"context"
	"errors"
)

// Sentinel errors for enumeration operations.
var (
	// ErrSourceUnavailable indicates the playlist or video reference could not
	// be resolved at all. This is the only error that aborts a run.
	ErrSourceUnavailable = errors.New("youtube: source unavailable")
	// ErrInvalidURL indicates the provided reference is not a recognizable
	// YouTube playlist or video reference.
	ErrInvalidURL = errors.New("youtube: invalid URL")
)

// PlaylistLister enumerates the videos of a playlist reference.
// Different implementations may use different strategies (Data API, scraping).
type PlaylistLister interface {
	// List resolves ref (a playlist URL, video URL, or bare video ID) into an
	// ordered sequence of playlist items, in provider order. Entries with no
	// resolvable video ID are silently dropped. A reference that cannot be
	// resolved at all fails with an error wrapping ErrSourceUnavailable.
	List(ctx context.Context, ref string) ([]PlaylistItem, error)
}

// PlaylistItem is one enumerated playlist entry.
type PlaylistItem struct {
	// ID is the YouTube video ID (e.g., "dQw4w9WgXcQ"). Never empty.
	ID string
	// Title is the video title as reported by the provider. May be empty and
	// is not guaranteed to be unique or filesystem-safe.
	Title string
}

// VideoURL returns the full YouTube URL for this item.
func (p PlaylistItem) VideoURL() string {
	return "https://www.youtube.com/watch?v=" + p.ID
}

// ListerError wraps enumeration errors with context about what failed.
// Use errors.As() to extract this error type and get operation details:
//
//	var listerErr *youtube.ListerError
//	if errors.As(err, &listerErr) {
//		fmt.Printf("Listing %s failed: %v\n", listerErr.Reference, listerErr.Err)
//	}
type ListerError struct {
	// Source indicates which lister produced the error ("api", "ytdlp").
	Source string
	// Reference is the playlist or video reference that was being listed.
	Reference string
	// Err is the underlying error that occurred.
	Err error
}

// Error returns a string representation of the enumeration error.
func (e *ListerError) Error() string {
	return "youtube: " + e.Source + " listing " + e.Reference + ": " + e.Err.Error()
}

// Unwrap returns the underlying error for use with errors.Is() and errors.As().
func (e *ListerError) Unwrap() error { return e.Err }
