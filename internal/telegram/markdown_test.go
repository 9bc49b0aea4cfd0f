package telegram

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitMessageShortPassthrough(t *testing.T) {
	parts := SplitMessage("hello", 100)
	assert.Equal(t, []string{"hello"}, parts)
}

func TestSplitMessagePrefersNewlines(t *testing.T) {
	text := strings.Repeat("line one\n", 20)
	parts := SplitMessage(text, 100)

	assert.Greater(t, len(parts), 1)
	for _, part := range parts[:len(parts)-1] {
		assert.True(t, strings.HasSuffix(part, "\n"), "parts should break at newlines")
		assert.LessOrEqual(t, len([]rune(part)), 100)
	}
	assert.Equal(t, text, strings.Join(parts, ""))
}

func TestSplitMessageHardBreakWithoutNewlines(t *testing.T) {
	text := strings.Repeat("a", 250)
	parts := SplitMessage(text, 100)

	assert.Len(t, parts, 3)
	assert.Equal(t, text, strings.Join(parts, ""))
}

func TestFixMarkdownClosesCodeBlocks(t *testing.T) {
	assert.Equal(t, "```go\ncode\n```", FixMarkdown("```go\ncode\n```"))
	assert.True(t, strings.HasSuffix(FixMarkdown("```go\ncode"), "```"))
}

func TestFixMarkdownClosesInlineCode(t *testing.T) {
	fixed := FixMarkdown("balance is `500")
	assert.Equal(t, 2, strings.Count(fixed, "`"))

	// Balanced input is untouched.
	assert.Equal(t, "use `code` here", FixMarkdown("use `code` here"))
}
