package osdialog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWideRoundTrip(t *testing.T) {
	for _, s := range []string{
		"",
		"plain ascii",
		`C:\Users\Zoë\Documents\résumé.docx`,
		"/home/用户/照片",
		"emoji 🎉 outside the BMP",
		"Ελληνικά ∑ math",
	} {
		w, err := toWide(s)
		require.NoError(t, err)
		require.Equal(t, uint16(0), w[len(w)-1], "terminated")

		got, err := fromWide(w)
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
}

func TestToWideSurrogatePair(t *testing.T) {
	w, err := toWide("🎉")
	require.NoError(t, err)
	assert.Equal(t, []uint16{0xD83C, 0xDF89, 0}, w)
}

func TestToWideRejectsNUL(t *testing.T) {
	_, err := toWide("a\x00b")
	assert.ErrorIs(t, err, ErrEmbeddedNUL)
}

func TestToWideBufferKeepsNUL(t *testing.T) {
	w, err := toWideBuffer([]byte("a\x00é\x00\x00"))
	require.NoError(t, err)
	assert.Equal(t, []uint16{'a', 0, 0xE9, 0, 0}, w)
}

func TestFromWideStopsAtNUL(t *testing.T) {
	got, err := fromWide([]uint16{'o', 'k', 0, 'x'})
	require.NoError(t, err)
	assert.Equal(t, "ok", got)

	got, err = fromWide([]uint16{'n', 'o', 'n', 'u', 'l'})
	require.NoError(t, err)
	assert.Equal(t, "nonul", got)
}
