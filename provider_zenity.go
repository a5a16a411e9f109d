//go:build !windows

// provider_zenity.go drives zenity, kdialog or osascript through
// github.com/ncruces/zenity on Linux, the BSDs and macOS.

package osdialog

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ncruces/zenity"
)

type zenityProvider struct {
	logger *slog.Logger
}

func newZenityProvider(logger *slog.Logger) *zenityProvider {
	if logger == nil {
		logger = slog.Default()
	}
	return &zenityProvider{logger: logger}
}

// done turns a zenity error into the ok flag, logging anything that is not
// a cancellation.
func (p *zenityProvider) done(op string, err error) bool {
	if err == nil {
		return true
	}
	if !errors.Is(err, zenity.ErrCanceled) {
		p.logger.Debug("dialog failed", "op", op, "err", err)
	}
	return false
}

// startPath combines the initial directory and file into zenity's Filename
// option. A trailing separator marks a directory.
func startPath(dir, filename string) (string, error) {
	if dir == "" {
		return filename, nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	if filename == "" {
		return abs + string(os.PathSeparator), nil
	}
	return filepath.Join(abs, filename), nil
}

// zenityFilters converts parsed filters into zenity's form. "*" stays a
// bare "*" so files without an extension still match.
func zenityFilters(filters Filters) zenity.FileFilters {
	out := make(zenity.FileFilters, 0, len(filters))
	for _, f := range filters {
		globs := f.Globs()
		for i, p := range f.Patterns {
			if p == "*" {
				globs[i] = "*"
			}
		}
		out = append(out, zenity.FileFilter{Name: f.Name, Patterns: globs})
	}
	return out
}

func (p *zenityProvider) File(action Action, dir, filename string, filters Filters) (string, bool) {
	if action == ActionOpenDir {
		return p.Directory(dir)
	}

	start, err := startPath(dir, filename)
	if err != nil {
		p.logger.Debug("resolve initial directory", "dir", dir, "err", err)
		return "", false
	}

	opts := []zenity.Option{zenity.Filename(start)}
	if len(filters) > 0 {
		opts = append(opts, zenityFilters(filters))
	}

	var path string
	if action == ActionSave {
		path, err = zenity.SelectFileSave(append(opts, zenity.ConfirmOverwrite())...)
	} else {
		path, err = zenity.SelectFile(opts...)
	}
	if !p.done(action.String(), err) || path == "" {
		return "", false
	}
	return path, true
}

func (p *zenityProvider) Directory(dir string) (string, bool) {
	start, err := startPath(dir, "")
	if err != nil {
		p.logger.Debug("resolve initial directory", "dir", dir, "err", err)
		return "", false
	}

	path, err := zenity.SelectFile(zenity.Directory(), zenity.Filename(start))
	if !p.done("open-dir", err) || path == "" {
		return "", false
	}
	return path, true
}

func zenityIcon(level Level) zenity.DialogIcon {
	switch level {
	case LevelWarning:
		return zenity.WarningIcon
	case LevelError:
		return zenity.ErrorIcon
	default:
		return zenity.InfoIcon
	}
}

func (p *zenityProvider) Message(level Level, buttons Buttons, text string) bool {
	icon := zenity.Icon(zenityIcon(level))

	var err error
	switch buttons {
	case ButtonsOKCancel:
		err = zenity.Question(text, icon, zenity.OKLabel("OK"), zenity.CancelLabel("Cancel"))
	case ButtonsYesNo:
		err = zenity.Question(text, icon, zenity.OKLabel("Yes"), zenity.CancelLabel("No"))
	default:
		switch level {
		case LevelWarning:
			err = zenity.Warning(text, icon)
		case LevelError:
			err = zenity.Error(text, icon)
		default:
			err = zenity.Info(text, icon)
		}
	}
	return p.done("message", err)
}

func (p *zenityProvider) Prompt(level Level, text, prefill string) (string, bool) {
	out, err := zenity.Entry(text,
		zenity.Icon(zenityIcon(level)),
		zenity.EntryText(truncatePrompt(prefill)),
	)
	if !p.done("prompt", err) {
		return "", false
	}
	return truncatePrompt(out), true
}

func (p *zenityProvider) Color(c *Color) bool {
	if c == nil {
		return false
	}

	picked, err := zenity.SelectColor(zenity.Color(c.NRGBA()))
	if !p.done("color", err) || picked == nil {
		return false
	}

	*c = ColorFrom(picked)
	c.A = 0xFF
	return true
}
