// Package storage persists transcript documents as JSON files and derives
// the deterministic per-video paths that double as resume markers.
package storage

import "ytscribe/youtube"

// Document is the unit of persistence: exactly one per successfully fetched
// video, stored as one JSON file. The field names are the on-disk format.
type Document struct {
	// VideoID is the YouTube video ID, stored verbatim.
	VideoID string `json:"video_id"`
	// Title is the unsanitized video title as reported by the enumerator.
	Title string `json:"title"`
	// Segments is the transcript in playback order.
	Segments []youtube.Segment `json:"segments"`
}
