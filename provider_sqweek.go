//go:build !windows && sqweek

// provider_sqweek.go uses GTK or Cocoa through github.com/sqweek/dialog for
// file, folder and message dialogs. sqweek has no text entry or color
// chooser, so those go through zenity.

package osdialog

import (
	"errors"
	"log/slog"
	"path/filepath"

	"github.com/sqweek/dialog"
)

type sqweekProvider struct {
	*zenityProvider
}

// NewNativeProvider returns the sqweek provider.
func NewNativeProvider(logger *slog.Logger) Provider {
	return &sqweekProvider{zenityProvider: newZenityProvider(logger)}
}

func (p *sqweekProvider) finish(op, path string, err error) (string, bool) {
	if err != nil {
		if !errors.Is(err, dialog.ErrCancelled) {
			p.logger.Debug("dialog failed", "op", op, "err", err)
		}
		return "", false
	}
	return path, path != ""
}

func (p *sqweekProvider) File(action Action, dir, filename string, filters Filters) (string, bool) {
	if action == ActionOpenDir {
		return p.Directory(dir)
	}

	b := dialog.File()
	if dir != "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			p.logger.Debug("resolve initial directory", "dir", dir, "err", err)
			return "", false
		}
		b = b.SetStartDir(abs)
	}
	if filename != "" {
		b = b.SetStartFile(filename)
	}
	for _, f := range filters {
		b = b.Filter(f.Name, f.Patterns...)
	}

	if action == ActionSave {
		path, err := b.Save()
		return p.finish(action.String(), path, err)
	}
	path, err := b.Load()
	return p.finish(action.String(), path, err)
}

func (p *sqweekProvider) Directory(dir string) (string, bool) {
	b := dialog.Directory()
	if dir != "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			p.logger.Debug("resolve initial directory", "dir", dir, "err", err)
			return "", false
		}
		b = b.SetStartDir(abs)
	}
	path, err := b.Browse()
	return p.finish("open-dir", path, err)
}

// Message maps OKCancel onto sqweek's yes/no box; it has no other
// two-button variant.
func (p *sqweekProvider) Message(level Level, buttons Buttons, text string) bool {
	msg := dialog.Message("%s", text).Title(level.String())
	switch buttons {
	case ButtonsOKCancel, ButtonsYesNo:
		return msg.YesNo()
	}

	if level == LevelError {
		msg.Error()
	} else {
		msg.Info()
	}
	return true
}
