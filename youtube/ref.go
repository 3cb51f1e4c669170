package youtube

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var (
	videoIDRegex    = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)
	playlistIDRegex = regexp.MustCompile(`^[A-Za-z0-9_-]{13,42}$`)
)

// Reference is a parsed playlist or video reference. Exactly one of
// PlaylistID and VideoID is set: a URL carrying both a "list" and a "v"
// parameter resolves to the playlist.
type Reference struct {
	PlaylistID string
	VideoID    string
}

// IsPlaylist reports whether the reference expands to a playlist.
func (r Reference) IsPlaylist() bool { return r.PlaylistID != "" }

// ParseReference parses a YouTube playlist URL, video URL, or bare video ID.
// Supported shapes:
//
//	https://www.youtube.com/playlist?list=PLxxxx
//	https://www.youtube.com/watch?v=VIDEOID&list=PLxxxx   (playlist wins)
//	https://www.youtube.com/watch?v=VIDEOID
//	https://youtu.be/VIDEOID
//	VIDEOID
func ParseReference(ref string) (Reference, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Reference{}, fmt.Errorf("%w: empty reference", ErrInvalidURL)
	}

	// Bare video ID
	if videoIDRegex.MatchString(ref) {
		return Reference{VideoID: ref}, nil
	}

	u, err := url.Parse(ref)
	if err != nil {
		return Reference{}, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	if list := u.Query().Get("list"); list != "" {
		if !playlistIDRegex.MatchString(list) {
			return Reference{}, fmt.Errorf("%w: malformed playlist ID %q", ErrInvalidURL, list)
		}
		return Reference{PlaylistID: list}, nil
	}

	if v := u.Query().Get("v"); v != "" {
		if !videoIDRegex.MatchString(v) {
			return Reference{}, fmt.Errorf("%w: malformed video ID %q", ErrInvalidURL, v)
		}
		return Reference{VideoID: v}, nil
	}

	// Short links: https://youtu.be/VIDEOID
	if strings.Contains(u.Host, "youtu.be") {
		id, _, _ := strings.Cut(strings.TrimPrefix(u.Path, "/"), "/")
		if videoIDRegex.MatchString(id) {
			return Reference{VideoID: id}, nil
		}
	}

	return Reference{}, fmt.Errorf("%w: cannot resolve reference from %q", ErrInvalidURL, ref)
}
