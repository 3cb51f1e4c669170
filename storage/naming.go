package storage

import (
	"path/filepath"
	"strings"
)

// maxNameLength caps the sanitized title component of a file name.
const maxNameLength = 150

// untitledName is used when a title sanitizes down to nothing.
const untitledName = "untitled"

// reservedChars are characters invalid in file names on at least one
// supported platform. Each occurrence is replaced with an underscore.
const reservedChars = `<>:"/\|?*`

// SafeFileName derives a filesystem-safe, length-bounded name component from
// a video title. Reserved characters become underscores, surrounding
// whitespace is trimmed, and the result is capped at 150 characters; a title
// that sanitizes to nothing yields "untitled".
func SafeFileName(title string) string {
	var b strings.Builder
	b.Grow(len(title))
	for _, r := range title {
		if strings.ContainsRune(reservedChars, r) {
			b.WriteRune('_')
		} else {
			b.WriteRune(r)
		}
	}

	name := strings.TrimSpace(b.String())
	if runes := []rune(name); len(runes) > maxNameLength {
		name = string(runes[:maxNameLength])
	}
	if name == "" {
		return untitledName
	}
	return name
}

// DocumentPath derives the output path for a video. It is a pure function:
// identical (title, videoID) pairs always map to the identical path within a
// directory, which is what makes the skip-if-exists check sound. The video ID
// is appended verbatim, never sanitized or truncated.
func DocumentPath(dir, title, videoID string) string {
	return filepath.Join(dir, SafeFileName(title)+"__"+videoID+".json")
}
