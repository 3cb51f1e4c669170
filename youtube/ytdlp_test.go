package youtube

import (
	"context"
	"errors"
	"testing"
)

func TestYtdlpListerSingleVideo(t *testing.T) {
	lister := NewYtdlpLister()
	lister.SetLogger(discardLogger())

	// Single-video references degenerate to a one-element sequence without
	// touching the network.
	items, err := lister.List(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
	if items[0].ID != "dQw4w9WgXcQ" {
		t.Errorf("item ID = %q, want %q", items[0].ID, "dQw4w9WgXcQ")
	}
	if items[0].Title != "" {
		t.Errorf("item Title = %q, want empty (keyless lister)", items[0].Title)
	}
}

func TestYtdlpListerInvalidReference(t *testing.T) {
	lister := NewYtdlpLister()
	lister.SetLogger(discardLogger())

	_, err := lister.List(context.Background(), "https://example.com/nope")
	if err == nil {
		t.Fatal("List() error = nil, want error")
	}
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Errorf("List() error = %v, want ErrSourceUnavailable", err)
	}
}

func TestPlaylistItemVideoURL(t *testing.T) {
	item := PlaylistItem{ID: "dQw4w9WgXcQ", Title: "x"}
	want := "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
	if got := item.VideoURL(); got != want {
		t.Errorf("VideoURL() = %q, want %q", got, want)
	}
}
