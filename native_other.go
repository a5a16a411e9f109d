//go:build !windows && !sqweek

package osdialog

import "log/slog"

// NewNativeProvider returns the zenity provider.
func NewNativeProvider(logger *slog.Logger) Provider {
	return newZenityProvider(logger)
}
