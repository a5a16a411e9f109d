// Package main - history.go tracks recent dialog results for the tray menu.
//
// Menu handlers record results while the refresh loop reads them, so all
// access goes through an RWMutex. Picked folders carry a dirhash fingerprint
// of their content at the time they were chosen.
package main

import (
	"fmt"
	"math"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"golang.org/x/mod/sumdb/dirhash"
)

// maxStatusValue bounds the value shown in a menu title.
const maxStatusValue = 48

// Entry is one dialog result.
type Entry struct {
	Action      string    // "open", "save", "folder", "prompt" or "color"
	Value       string    // path, text, #rrggbb or answer
	Fingerprint string    // h1: hash for folders, empty otherwise
	At          time.Time // when the dialog closed
}

// History is a bounded, newest-first list of results.
type History struct {
	mu      sync.RWMutex
	entries []Entry
	size    int
}

func newHistory(size int) *History {
	if size < 1 {
		size = 1
	}
	return &History{size: size}
}

// record adds e as the newest entry, dropping the oldest beyond capacity.
func (h *History) record(e Entry) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = append([]Entry{e}, h.entries...)
	if len(h.entries) > h.size {
		h.entries = h.entries[:h.size]
	}
}

// list returns a copy of the entries, newest first.
func (h *History) list() []Entry {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]Entry, len(h.entries))
	copy(out, h.entries)
	return out
}

// lastValue returns the newest value recorded for action.
func (h *History) lastValue(action string) (string, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, e := range h.entries {
		if e.Action == action {
			return e.Value, true
		}
	}
	return "", false
}

// lastStatus renders the "Last: ..." menu title for the newest entry.
func (h *History) lastStatus(now time.Time) string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.entries) == 0 {
		return "Last: Never"
	}
	e := h.entries[0]
	return fmt.Sprintf("Last: %s (%s) %s", ago(now.Sub(e.At)), e.Action, shorten(e.Value, maxStatusValue))
}

// summary renders every entry on its own line for the history message box.
func (h *History) summary(now time.Time) string {
	entries := h.list()
	if len(entries) == 0 {
		return "No dialogs have been used yet."
	}

	var sb strings.Builder
	for i, e := range entries {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "%s, %s: %s", ago(now.Sub(e.At)), e.Action, e.Value)
		if e.Fingerprint != "" {
			fmt.Fprintf(&sb, " [%s]", e.Fingerprint)
		}
	}
	return sb.String()
}

// ago formats d as "Just now", "1 minute ago" or "N minutes ago".
func ago(d time.Duration) string {
	minutes := int(math.Round(d.Minutes()))
	switch {
	case minutes <= 0:
		return "Just now"
	case minutes == 1:
		return "1 minute ago"
	default:
		return fmt.Sprintf("%d minutes ago", minutes)
	}
}

// shorten cuts s to at most n runes, marking the cut with "...".
func shorten(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-3]) + "..."
}

// fingerprint hashes the content of the directory tree at dir.
func fingerprint(dir string) (string, error) {
	return dirhash.HashDir(dir, "", dirhash.Hash1)
}
