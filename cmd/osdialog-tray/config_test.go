package main

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chadsten/osdialog"
)

const testConfigPath = "/home/user/.config/osdialog/tray.json"

func TestLoadConfigWritesExample(t *testing.T) {
	fs := afero.NewMemMapFs()

	config, err := loadConfig(fs, testConfigPath)
	require.NoError(t, err)
	assert.Equal(t, "txt", config.DefaultExt)
	assert.NotEmpty(t, config.Filters)

	exists, err := afero.Exists(fs, testConfigPath)
	require.NoError(t, err)
	assert.True(t, exists, "example written")

	// The written example loads back cleanly.
	again, err := loadConfig(fs, testConfigPath)
	require.NoError(t, err)
	assert.Equal(t, config.Filters, again.Filters)
}

func TestLoadConfigDefaults(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeConfig(t, fs, `{"start_dir": "/srv/data", "filters": []}`)

	config, err := loadConfig(fs, testConfigPath)
	require.NoError(t, err)
	assert.Equal(t, filepath.Clean("/srv/data"), config.StartDir)
	assert.Nil(t, config.HistorySize)
	assert.Equal(t, 5, config.GetHistorySize())
	assert.Equal(t, 7, config.GetLogRetentionDays())
}

func TestLoadConfigExplicitZeroRetention(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeConfig(t, fs, `{"history_size": 10, "log_retention_days": 0}`)

	config, err := loadConfig(fs, testConfigPath)
	require.NoError(t, err)
	assert.Equal(t, 10, config.GetHistorySize())
	assert.Equal(t, 0, config.GetLogRetentionDays())
}

func TestLoadConfigRelativeStartDir(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeConfig(t, fs, `{"start_dir": "docs/../notes"}`)

	config, err := loadConfig(fs, testConfigPath)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(config.StartDir))
	assert.Equal(t, "notes", filepath.Base(config.StartDir))
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"malformed json", `{"start_dir": `},
		{"filter without display", `{"filters": [{"extension": "png"}]}`},
		{"filter extension with dot", `{"filters": [{"display": "Images", "extension": ".png"}]}`},
		{"filter extension with separator", `{"filters": [{"display": "Images", "extension": "png;jpg"}]}`},
		{"default ext with colon", `{"default_ext": "a:b"}`},
		{"history size zero", `{"history_size": 0}`},
		{"negative retention", `{"log_retention_days": -1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			writeConfig(t, fs, tt.json)

			_, err := loadConfig(fs, testConfigPath)
			assert.Error(t, err)
		})
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	size := 3
	config := &Config{
		StartDir:    "/tmp",
		Filters:     []osdialog.FilterType{{Display: "CSV", Extension: "csv"}},
		HistorySize: &size,
	}
	require.NoError(t, saveConfig(fs, testConfigPath, config))

	data, err := afero.ReadFile(fs, testConfigPath)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, float64(3), raw["history_size"])
	assert.NotContains(t, raw, "log_retention_days")
}

func writeConfig(t *testing.T, fs afero.Fs, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, testConfigPath, []byte(content), 0o644))
}
