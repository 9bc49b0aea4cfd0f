package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmbedURL(t *testing.T) {
	const want = "https://www.youtube.com/embed/dQw4w9WgXcQ?autoplay=1&rel=0&modestbranding=1"

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"watch url", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", want},
		{"watch url with extra params", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s", want},
		{"short link", "https://youtu.be/dQw4w9WgXcQ", want},
		{"short link with query", "https://youtu.be/dQw4w9WgXcQ?si=abc", want},
		{"shorts", "https://www.youtube.com/shorts/dQw4w9WgXcQ", want},
		{"embed already", "https://www.youtube.com/embed/dQw4w9WgXcQ", want},
		{"old v path", "https://www.youtube.com/v/dQw4w9WgXcQ", want},
		{"fragment delimiter", "https://youtu.be/dQw4w9WgXcQ#t=10", want},
		{"non-youtube passthrough", "https://example.com/page", "https://example.com/page"},
		{"youtube without id passthrough", "https://www.youtube.com/feed/trending", "https://www.youtube.com/feed/trending"},
		{"wrong id length passthrough", "https://youtu.be/short", "https://youtu.be/short"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EmbedURL(tt.in))
		})
	}
}

func TestIsYouTubeURL(t *testing.T) {
	assert.True(t, IsYouTubeURL("https://youtu.be/dQw4w9WgXcQ"))
	assert.False(t, IsYouTubeURL("https://example.com/watch"))
}
