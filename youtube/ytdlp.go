package youtube

import (
	"context"
	"fmt"
	"log"

	"github.com/ytget/ytdlp/v2"
)

// YtdlpLister implements PlaylistLister using the ytdlp scraping library.
// It needs no API key, which makes it the default enumerator; playlist order
// and titles come from YouTube's web listing.
type YtdlpLister struct {
	downloader *ytdlp.Downloader
	logger     *log.Logger
}

// NewYtdlpLister creates a new ytdlp-library-based playlist lister.
func NewYtdlpLister() *YtdlpLister {
	return &YtdlpLister{
		downloader: ytdlp.New(),
		logger:     log.Default(),
	}
}

// SetLogger replaces the logger used for progress output.
func (y *YtdlpLister) SetLogger(logger *log.Logger) {
	if logger != nil {
		y.logger = logger
	}
}

// List resolves ref and enumerates its items in playlist order.
// A single-video reference degenerates to a one-element sequence; without an
// API key the title is left empty (naming falls back to "untitled").
func (y *YtdlpLister) List(ctx context.Context, ref string) ([]PlaylistItem, error) {
	parsed, err := ParseReference(ref)
	if err != nil {
		return nil, &ListerError{Source: "ytdlp", Reference: ref, Err: fmt.Errorf("%w: %v", ErrSourceUnavailable, err)}
	}

	if !parsed.IsPlaylist() {
		return []PlaylistItem{{ID: parsed.VideoID}}, nil
	}

	entries, err := y.downloader.GetPlaylistItemsAll(ctx, parsed.PlaylistID, 0)
	if err != nil {
		return nil, &ListerError{
			Source:    "ytdlp",
			Reference: ref,
			Err:       fmt.Errorf("%w: playlist %s: %v", ErrSourceUnavailable, parsed.PlaylistID, err),
		}
	}

	items := make([]PlaylistItem, 0, len(entries))
	for _, entry := range entries {
		if entry.VideoID == "" {
			// Entries without a resolvable video ID are dropped, not an error.
			continue
		}
		items = append(items, PlaylistItem{ID: entry.VideoID, Title: entry.Title})
	}

	y.logger.Printf("youtube: ytdlp enumerated %d item(s) from playlist %s", len(items), parsed.PlaylistID)
	return items, nil
}
