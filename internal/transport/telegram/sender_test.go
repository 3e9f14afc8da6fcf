package telegram

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitHTML(t *testing.T) {
	t.Run("short text is untouched", func(t *testing.T) {
		chunks := splitHTML("hello", 100)
		assert.Equal(t, []string{"hello"}, chunks)
	})

	t.Run("splits at newline when one is available", func(t *testing.T) {
		text := strings.Repeat("a", 80) + "\n" + strings.Repeat("b", 80)
		chunks := splitHTML(text, 100)
		assert.Len(t, chunks, 2)
		assert.Equal(t, strings.Repeat("a", 80), chunks[0])
		assert.Equal(t, strings.Repeat("b", 80), chunks[1])
	})

	t.Run("hard splits when no newline fits", func(t *testing.T) {
		text := strings.Repeat("a", 250)
		chunks := splitHTML(text, 100)
		assert.Len(t, chunks, 3)
		for _, chunk := range chunks {
			assert.LessOrEqual(t, len(chunk), 100)
		}
		assert.Equal(t, text, strings.Join(chunks, ""))
	})

	t.Run("never cuts through a tag", func(t *testing.T) {
		text := strings.Repeat("a", 98) + "<code>covbot</code>"
		chunks := splitHTML(text, 100)
		assert.Len(t, chunks, 2)
		assert.Equal(t, strings.Repeat("a", 98), chunks[0])
		assert.Equal(t, "<code>covbot</code>", chunks[1])
	})

	t.Run("never cuts through an entity", func(t *testing.T) {
		text := strings.Repeat("a", 98) + "&amp; more text here"
		chunks := splitHTML(text, 100)
		assert.Len(t, chunks, 2)
		assert.Equal(t, strings.Repeat("a", 98), chunks[0])
		assert.Equal(t, "&amp; more text here", chunks[1])
	})

	t.Run("cut after a closed tag stays put", func(t *testing.T) {
		text := "<b>x</b>" + strings.Repeat("a", 200)
		chunks := splitHTML(text, 100)
		assert.Equal(t, 100, len(chunks[0]))
		assert.Equal(t, text, strings.Join(chunks, ""))
	})

	t.Run("ignores newlines too early in the chunk", func(t *testing.T) {
		text := "ab\n" + strings.Repeat("c", 200)
		chunks := splitHTML(text, 100)
		// Break point at index 2 is below the maxLen/3 threshold, so the
		// first chunk is cut at the limit instead.
		assert.Len(t, chunks, 3)
		assert.Equal(t, 100, len(chunks[0]))
	})
}
