package osdialog

import (
	"strings"
	"testing"
	"unicode/utf16"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncatePrompt(t *testing.T) {
	assert.Equal(t, "short", truncatePrompt("short"))

	long := strings.Repeat("a", PromptCapacity+100)
	assert.Len(t, truncatePrompt(long), PromptCapacity-1)

	// A surrogate pair that would straddle the limit is dropped whole.
	edge := strings.Repeat("a", PromptCapacity-2) + "🎉"
	got := truncatePrompt(edge)
	assert.Equal(t, strings.Repeat("a", PromptCapacity-2), got)
	assert.LessOrEqual(t, len(utf16.Encode([]rune(got))), PromptCapacity-1)
}

func TestResetPromptBuffer(t *testing.T) {
	promptBuffer.mu.Lock()
	defer promptBuffer.mu.Unlock()

	resetPromptBuffer("a much longer previous value")
	resetPromptBuffer("hi")

	got, err := fromWide(promptBuffer.text[:])
	require.NoError(t, err)
	assert.Equal(t, "hi", got)
	assert.Equal(t, uint16(0), promptBuffer.text[5], "old contents cleared")

	resetPromptBuffer(strings.Repeat("z", PromptCapacity*2))
	assert.Equal(t, uint16(0), promptBuffer.text[PromptCapacity-1], "always terminated")
}
