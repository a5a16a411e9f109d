// Package main - logger.go implements the tray's daily log files with
// retention management.
//
// Logs live under the XDG state directory, one file per day named
// tray_DD-MM-YYYY.log. Files older than the configured retention are removed
// when the logger is created.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/afero"
)

// LogDateFormat is the DD-MM-YYYY date embedded in daily log names.
const LogDateFormat = "02-01-2006"

const logRelDir = "osdialog/logs"

// LoggerConfig defines the configuration for creating a logger instance.
type LoggerConfig struct {
	Name          string     // Descriptive name for error reporting
	Path          string     // File path for log output
	Level         slog.Level // Minimum level written
	RetentionDays *int       // Days to retain logs (nil = no cleanup)
}

// createLogger opens config.Path for appending, after removing stale logs
// next to it, and returns a text logger writing there. The returned closer
// releases the file.
func createLogger(fs afero.Fs, config LoggerConfig, now time.Time) (*slog.Logger, io.Closer, error) {
	dir := filepath.Dir(config.Path)
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}

	if config.RetentionDays != nil {
		if err := cleanupOldLogs(fs, dir, *config.RetentionDays, now); err != nil {
			// Non-fatal
			fmt.Fprintf(os.Stderr, "Warning: failed to clean up old logs for %s: %v\n", config.Name, err)
		}
	}

	logFile, err := fs.OpenFile(config.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log %s: %w", config.Path, err)
	}

	handler := slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: config.Level})
	return slog.New(handler), logFile, nil
}

// getTodayLogPath returns baseDir/prefix_DD-MM-YYYY.log for now.
func getTodayLogPath(baseDir, prefix string, now time.Time) string {
	return filepath.Join(baseDir, fmt.Sprintf("%s_%s.log", prefix, now.Format(LogDateFormat)))
}

// cleanupOldLogs removes dated .log files in logDir whose date is more than
// retentionDays calendar days before now. Files without a date in their
// name are kept. Individual delete failures are reported and skipped.
func cleanupOldLogs(fs afero.Fs, logDir string, retentionDays int, now time.Time) error {
	entries, err := afero.ReadDir(fs, logDir)
	if err != nil {
		return err
	}

	year, month, day := now.Date()
	cutoff := time.Date(year, month, day-retentionDays, 0, 0, 0, 0, now.Location())
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".log") {
			continue
		}

		dateStr := extractDateFromLogName(entry.Name())
		if dateStr == "" {
			continue
		}
		logDate, err := time.ParseInLocation(LogDateFormat, dateStr, now.Location())
		if err != nil || !logDate.Before(cutoff) {
			continue
		}

		logPath := filepath.Join(logDir, entry.Name())
		if err := fs.Remove(logPath); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to delete old log file %s: %v\n", logPath, err)
		}
	}
	return nil
}

var logNameDate = regexp.MustCompile(`(\d{2}-\d{2}-\d{4})\.log$`)

// extractDateFromLogName extracts "10-08-2025" from "tray_10-08-2025.log".
func extractDateFromLogName(filename string) string {
	if matches := logNameDate.FindStringSubmatch(filename); len(matches) > 1 {
		return matches[1]
	}
	return ""
}

// initTrayLogger creates today's tray log under the XDG state directory.
func initTrayLogger(fs afero.Fs, config *Config, level slog.Level) (*slog.Logger, io.Closer, error) {
	logDir := filepath.Join(xdg.StateHome, logRelDir)
	retentionDays := config.GetLogRetentionDays()
	now := time.Now()

	return createLogger(fs, LoggerConfig{
		Name:          "tray",
		Path:          getTodayLogPath(logDir, "tray", now),
		Level:         level,
		RetentionDays: &retentionDays,
	}, now)
}
