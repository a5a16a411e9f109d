// Package osdialog shows native operating-system dialogs: file open and save
// pickers, folder pickers, message boxes, single-line text prompts and color
// pickers.
//
// The package is split in two layers:
//
//  1. Providers talk to the OS. There is one Provider per platform, chosen
//     at build time: Win32 on Windows, zenity elsewhere, or sqweek/dialog on
//     non-Windows builds tagged "sqweek".
//
//  2. Dialogs is the facade applications use. It builds filter lists, applies
//     the default-extension policy for save dialogs and hides the provider.
//
// Every call blocks the calling goroutine until the user closes the dialog.
// A cancelled or failed dialog is reported as ok == false; failures are
// logged at debug level and never returned as errors.
package osdialog

import (
	"fmt"
	"image/color"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
)

// Action selects the flavour of a file dialog.
type Action int

const (
	ActionOpen Action = iota
	ActionSave
	ActionOpenDir
)

func (a Action) String() string {
	switch a {
	case ActionOpen:
		return "open"
	case ActionSave:
		return "save"
	case ActionOpenDir:
		return "open-dir"
	default:
		return "unknown"
	}
}

// Level is the severity shown by message and prompt dialogs.
type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Buttons is the button set of a message dialog.
type Buttons int

const (
	ButtonsOK Buttons = iota
	ButtonsOKCancel
	ButtonsYesNo
)

func (b Buttons) String() string {
	switch b {
	case ButtonsOKCancel:
		return "okcancel"
	case ButtonsYesNo:
		return "yesno"
	default:
		return "ok"
	}
}

// Color is an 8-bit RGBA value. PickColor mutates it in place.
type Color struct {
	R, G, B, A uint8
}

// NRGBA converts c to the image/color representation.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// ColorFrom converts any color.Color to a Color.
func ColorFrom(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{R: n.R, G: n.G, B: n.B, A: n.A}
}

// Provider is the native side of a dialog request. Implementations block
// until the dialog is dismissed and must release every native resource they
// acquire before returning.
type Provider interface {
	// File shows an open or save dialog. dir and filename may be empty.
	File(action Action, dir, filename string, filters Filters) (string, bool)
	// Directory shows a folder picker starting at dir, which may be empty.
	Directory(dir string) (string, bool)
	// Message reports true when the user chose OK or Yes.
	Message(level Level, buttons Buttons, text string) bool
	// Prompt asks for one line of text, pre-filled with prefill.
	Prompt(level Level, text, prefill string) (string, bool)
	// Color lets the user pick a color starting from c.
	Color(c *Color) bool
}

// Dialogs is the facade over a Provider.
type Dialogs struct {
	provider Provider
	logger   *slog.Logger
}

// Option configures a Dialogs.
type Option func(*Dialogs)

// WithProvider replaces the native provider.
func WithProvider(p Provider) Option {
	return func(d *Dialogs) {
		d.provider = p
	}
}

// WithLogger sets the logger used by the facade and the native provider.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dialogs) {
		d.logger = l
	}
}

// New returns a Dialogs backed by the platform's native provider unless
// WithProvider says otherwise.
func New(opts ...Option) *Dialogs {
	d := &Dialogs{}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = slog.Default()
	}
	if d.provider == nil {
		d.provider = NewNativeProvider(d.logger)
	}
	return d
}

// File is the generic file request. OpenFile, SaveFile and OpenDirectory
// all delegate to it. defaultExt is appended to results without an
// extension; pass "" to disable that.
func (d *Dialogs) File(action Action, folder, defaultFile, defaultExt string, filters Filters) (string, bool) {
	if action == ActionOpenDir {
		path, ok := d.provider.Directory(folder)
		if !ok {
			d.logger.Debug("folder dialog returned nothing", "action", action)
			return "", false
		}
		return path, true
	}

	path, ok := d.provider.File(action, folder, defaultFile, filters)
	if !ok {
		d.logger.Debug("file dialog returned nothing", "action", action)
		return "", false
	}
	return withDefaultExt(path, defaultExt), true
}

// OpenFile asks for an existing file.
func (d *Dialogs) OpenFile(folder, defaultFile string, filters ...FilterType) (string, bool) {
	return d.File(ActionOpen, folder, defaultFile, "", d.filters(filters))
}

// OpenFileFilters is OpenFile with a readable filter string such as
// "Source:c,cpp;Header:h".
func (d *Dialogs) OpenFileFilters(folder, defaultFile, filters string) (string, bool) {
	parsed, ok := d.parse(filters)
	if !ok {
		return "", false
	}
	return d.File(ActionOpen, folder, defaultFile, "", parsed)
}

// SaveFile asks for a destination path. If the chosen path has no extension
// and defaultExt is not empty, "."+defaultExt is appended.
func (d *Dialogs) SaveFile(folder, defaultFile, defaultExt string, filters ...FilterType) (string, bool) {
	return d.File(ActionSave, folder, defaultFile, defaultExt, d.filters(filters))
}

// SaveFileFilters is SaveFile with a readable filter string.
func (d *Dialogs) SaveFileFilters(folder, defaultFile, defaultExt, filters string) (string, bool) {
	parsed, ok := d.parse(filters)
	if !ok {
		return "", false
	}
	return d.File(ActionSave, folder, defaultFile, defaultExt, parsed)
}

// OpenDirectory asks for a folder.
func (d *Dialogs) OpenDirectory(folder string) (string, bool) {
	return d.File(ActionOpenDir, folder, "", "", nil)
}

// Message shows a message box and reports whether the user answered OK or Yes.
func (d *Dialogs) Message(level Level, buttons Buttons, text string) bool {
	return d.provider.Message(level, buttons, text)
}

// Prompt asks for one line of text. Input longer than PromptCapacity-1
// UTF-16 code units is truncated.
func (d *Dialogs) Prompt(level Level, text, prefill string) (string, bool) {
	return d.provider.Prompt(level, text, prefill)
}

// PickColor shows a color chooser preselecting c. On success c holds the
// chosen color with full opacity.
func (d *Dialogs) PickColor(c *Color) bool {
	if c == nil {
		return false
	}
	return d.provider.Color(c)
}

// filters builds one group per type, in order, followed by All Files. Types
// without an extension are skipped. Labels are used verbatim, so they may
// contain characters that are separators in the readable form.
func (d *Dialogs) filters(types []FilterType) Filters {
	filters := make(Filters, 0, len(types)+1)
	for _, t := range types {
		if t.Extension == "" {
			d.logger.Debug("skipping filter without extension", "display", t.Display)
			continue
		}
		filters = append(filters, Filter{
			Name:     fmt.Sprintf("%s (*.%s)", t.Display, t.Extension),
			Patterns: []string{t.Extension},
		})
	}
	return append(filters, allFilesFilter())
}

func (d *Dialogs) parse(s string) (Filters, bool) {
	parsed, err := ParseFilters(s)
	if err != nil {
		d.logger.Debug("invalid filter string", "filters", s, "err", err)
		return nil, false
	}
	return parsed, true
}

// withDefaultExt appends ext to path when path has no extension.
func withDefaultExt(path, ext string) string {
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" || hasExtension(path) {
		return path
	}
	return path + "." + ext
}

// hasExtension reports whether the last path element has an extension.
// A leading dot alone (".profile") does not count.
func hasExtension(path string) bool {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	return ext != "" && ext != base
}

var (
	defaultMu      sync.Mutex
	defaultDialogs *Dialogs
)

// Default returns the package-level Dialogs, creating it on first use.
func Default() *Dialogs {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultDialogs == nil {
		defaultDialogs = New()
	}
	return defaultDialogs
}

// SetDefault replaces the package-level Dialogs.
func SetDefault(d *Dialogs) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultDialogs = d
}

func OpenFile(folder, defaultFile string, filters ...FilterType) (string, bool) {
	return Default().OpenFile(folder, defaultFile, filters...)
}

func SaveFile(folder, defaultFile, defaultExt string, filters ...FilterType) (string, bool) {
	return Default().SaveFile(folder, defaultFile, defaultExt, filters...)
}

func OpenDirectory(folder string) (string, bool) {
	return Default().OpenDirectory(folder)
}

func Message(level Level, buttons Buttons, text string) bool {
	return Default().Message(level, buttons, text)
}

func Prompt(level Level, text, prefill string) (string, bool) {
	return Default().Prompt(level, text, prefill)
}

func PickColor(c *Color) bool {
	return Default().PickColor(c)
}
