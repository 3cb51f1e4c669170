package youtube

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// APILister implements PlaylistLister using YouTube Data API v3.
// Playlist enumeration costs 1 quota unit per page of 50 items.
type APILister struct {
	service *youtube.Service
	logger  *log.Logger
}

// NewAPILister creates a new YouTube Data API v3-based playlist lister.
func NewAPILister(ctx context.Context, apiKey string) (*APILister, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("api key required")
	}

	service, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}

	return &APILister{
		service: service,
		logger:  log.Default(),
	}, nil
}

// SetLogger replaces the logger used for progress output.
func (a *APILister) SetLogger(logger *log.Logger) {
	if logger != nil {
		a.logger = logger
	}
}

// List resolves ref and enumerates its items in playlist order.
// A single-video reference degenerates to a one-element sequence.
func (a *APILister) List(ctx context.Context, ref string) ([]PlaylistItem, error) {
	parsed, err := ParseReference(ref)
	if err != nil {
		return nil, &ListerError{Source: "api", Reference: ref, Err: fmt.Errorf("%w: %v", ErrSourceUnavailable, err)}
	}

	var items []PlaylistItem
	if parsed.IsPlaylist() {
		items, err = a.listPlaylistItems(ctx, parsed.PlaylistID)
	} else {
		items, err = a.lookupVideo(ctx, parsed.VideoID)
	}
	if err != nil {
		return nil, &ListerError{Source: "api", Reference: ref, Err: err}
	}

	return items, nil
}

// listPlaylistItems fetches all entries of a playlist using pagination.
func (a *APILister) listPlaylistItems(ctx context.Context, playlistID string) ([]PlaylistItem, error) {
	var items []PlaylistItem

	pageToken := ""
	for {
		call := a.service.PlaylistItems.List([]string{"snippet", "contentDetails"}).
			PlaylistId(playlistID).
			MaxResults(50).
			PageToken(pageToken).
			Context(ctx)

		resp, err := call.Do()
		if err != nil {
			return nil, classifyAPIError(err, "playlist "+playlistID)
		}

		for _, entry := range resp.Items {
			if entry.ContentDetails == nil || entry.ContentDetails.VideoId == "" {
				// Entries without a resolvable video ID are dropped, not an error.
				continue
			}
			item := PlaylistItem{ID: entry.ContentDetails.VideoId}
			if entry.Snippet != nil {
				item.Title = entry.Snippet.Title
			}
			items = append(items, item)
		}

		pageToken = resp.NextPageToken
		if pageToken == "" {
			break
		}
		a.logger.Printf("youtube: fetched %d item(s) from playlist %s, continuing", len(items), playlistID)
	}

	return items, nil
}

// lookupVideo resolves a single-video reference to a one-element sequence.
func (a *APILister) lookupVideo(ctx context.Context, videoID string) ([]PlaylistItem, error) {
	call := a.service.Videos.List([]string{"snippet"}).
		Id(videoID).
		Context(ctx)

	resp, err := call.Do()
	if err != nil {
		return nil, classifyAPIError(err, "video "+videoID)
	}

	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("%w: video %s not found", ErrSourceUnavailable, videoID)
	}

	item := PlaylistItem{ID: videoID}
	if resp.Items[0].Snippet != nil {
		item.Title = resp.Items[0].Snippet.Title
	}
	return []PlaylistItem{item}, nil
}

// classifyAPIError maps Data API errors onto the lister's error taxonomy.
// Unknown and private playlists surface as 404 (or 403) from the API.
func classifyAPIError(err error, what string) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusForbidden, http.StatusNotFound:
			return fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, what, err)
		}
	}
	return fmt.Errorf("%s: %w", what, err)
}
