//go:build !windows

package osdialog

import (
	"path/filepath"
	"testing"

	"github.com/ncruces/zenity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartPath(t *testing.T) {
	got, err := startPath("", "")
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = startPath("", "name.txt")
	require.NoError(t, err)
	assert.Equal(t, "name.txt", got)

	got, err = startPath("/tmp", "")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/", got)

	got, err = startPath("/tmp", "report")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/report", got)

	got, err = startPath("rel", "")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got), "relative directories are resolved: %q", got)
}

func TestZenityFilters(t *testing.T) {
	filters := Filters{
		{Name: "Images (*.png)", Patterns: []string{"png", "jpg"}},
		{Name: "All Files (*.*)", Patterns: []string{"*"}},
	}
	assert.Equal(t, zenity.FileFilters{
		{Name: "Images (*.png)", Patterns: []string{"*.png", "*.jpg"}},
		{Name: "All Files (*.*)", Patterns: []string{"*"}},
	}, zenityFilters(filters))
}

func TestZenityIcon(t *testing.T) {
	assert.Equal(t, zenity.InfoIcon, zenityIcon(LevelInfo))
	assert.Equal(t, zenity.WarningIcon, zenityIcon(LevelWarning))
	assert.Equal(t, zenity.ErrorIcon, zenityIcon(LevelError))
}
