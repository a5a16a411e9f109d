package osdialog

import (
	"sync"
	"unicode/utf16"
)

// PromptCapacity is the size, in UTF-16 code units and including the NUL
// terminator, of the prompt edit buffer. Longer input is truncated.
const PromptCapacity = 1 << 13

// promptBuffer backs the prompt dialog's edit control. There is one per
// process; dialogs are modal so only one prompt is ever in flight, and mu
// serialises callers from different goroutines. Not reentrant.
var promptBuffer struct {
	mu   sync.Mutex
	text [PromptCapacity]uint16
}

// resetPromptBuffer clears the buffer and loads prefill into it, truncated
// to fit. The caller holds promptBuffer.mu.
func resetPromptBuffer(prefill string) {
	clear(promptBuffer.text[:])
	w, err := toWide(truncatePrompt(prefill))
	if err != nil {
		return
	}
	copy(promptBuffer.text[:PromptCapacity-1], w)
}

// truncatePrompt cuts s so that it fits PromptCapacity-1 UTF-16 code units
// without splitting a surrogate pair.
func truncatePrompt(s string) string {
	units := 0
	for i, r := range s {
		n := utf16.RuneLen(r)
		if n < 0 {
			n = 1
		}
		if units+n > PromptCapacity-1 {
			return s[:i]
		}
		units += n
	}
	return s
}
