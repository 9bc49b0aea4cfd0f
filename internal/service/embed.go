package service

import "strings"

const youTubeIDLen = 11

// EmbedURL normalizes any recognized YouTube URL shape to an embeddable
// autoplay URL. Non-YouTube URLs pass through unchanged for direct embedding.
func EmbedURL(raw string) string {
	id := youTubeID(raw)
	if id == "" {
		return raw
	}
	return "https://www.youtube.com/embed/" + id + "?autoplay=1&rel=0&modestbranding=1"
}

// IsYouTubeURL reports whether the URL carries an extractable video ID.
func IsYouTubeURL(raw string) bool {
	return youTubeID(raw) != ""
}

// youTubeID extracts the 11-character video ID from watch, short-link,
// shorts, embed and /v/ URL shapes. Any 11-character match is accepted.
func youTubeID(raw string) string {
	raw = strings.TrimSpace(raw)

	markers := []string{"youtu.be/", "/shorts/", "/embed/", "/v/", "v="}
	for _, marker := range markers {
		_, rest, found := strings.Cut(raw, marker)
		if !found || rest == "" {
			continue
		}
		id := rest
		if cut := strings.IndexAny(id, "?&#"); cut >= 0 {
			id = id[:cut]
		}
		if len(id) == youTubeIDLen {
			return id
		}
	}
	return ""
}
