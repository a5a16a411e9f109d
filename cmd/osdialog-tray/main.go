// Package main implements osdialog-tray, a desktop system tray launcher for
// the native dialogs.
//
// Every dialog kind is one menu entry. Results are kept in a short in-memory
// history shown at the top of the menu, and every action is written to a
// daily log file. Only one instance runs per user session.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/atotto/clipboard"
	"github.com/getlantern/systray"
	"github.com/spf13/afero"

	"github.com/chadsten/osdialog"
)

const statusRefreshInterval = 30 * time.Second

func main() {
	os.Exit(run())
}

// run starts the tray and returns the process exit code.
//
// Startup happens in this order:
// 1. The per-session instance lock is taken before anything else
// 2. The configuration is loaded and validated
// 3. The daily log file is opened and becomes the default slog logger
// 4. systray.Run blocks until Exit is chosen or a signal arrives
//
// A second instance shows a warning box and exits with 1. Any other startup
// failure is printed to stderr.
func run() int {
	// Enforce single instance before any other initialization
	lock, err := acquireInstanceLock()
	if errors.Is(err, errAlreadyRunning) {
		osdialog.Message(osdialog.LevelWarning, osdialog.ButtonsOK,
			"osdialog-tray is already running.\n\nPlease close the existing instance before starting a new one.")
		return 1
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer lock.release()

	fs := afero.NewOsFs()
	config, path, err := loadTrayConfig(fs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		osdialog.Message(osdialog.LevelError, osdialog.ButtonsOK, fmt.Sprintf("Could not load configuration.\n\n%v", err))
		return 1
	}

	logger, logFile, err := initTrayLogger(fs, config, slog.LevelInfo)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return 1
	}
	defer logFile.Close()
	slog.SetDefault(logger)

	logger.Info("Application starting", "config", path, "start_dir", config.StartDir)

	t := newTray(config, osdialog.New(osdialog.WithLogger(logger)), logger)
	systray.Run(t.onReady, t.onExit)
	return 0
}

// loadTrayConfig reads the configuration from its XDG location. A missing
// file yields the defaults.
func loadTrayConfig(fs afero.Fs) (*Config, string, error) {
	path, err := configPath()
	if err != nil {
		return nil, "", fmt.Errorf("locate config: %w", err)
	}
	config, err := loadConfig(fs, path)
	return config, path, err
}

// tray owns the menu actions. Actions run one at a time on the menu loop
// goroutine, so a dialog blocks further clicks until it is closed.
//
// The clock and the clipboard writer are fields so that actions can run
// without a desktop session.
type tray struct {
	config  *Config
	dialogs *osdialog.Dialogs
	history *History
	logger  *slog.Logger
	color   osdialog.Color
	now     func() time.Time
	copy    func(string) error
}

func newTray(config *Config, dialogs *osdialog.Dialogs, logger *slog.Logger) *tray {
	return &tray{
		config:  config,
		dialogs: dialogs,
		history: newHistory(config.GetHistorySize()),
		logger:  logger,
		color:   osdialog.Color{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		now:     time.Now,
		copy:    clipboard.WriteAll,
	}
}

// onReady builds the menu and serves clicks until Exit or a signal.
//
// It is called by systray once the tray icon exists. Menu layout and loop:
// 1. The first item shows the most recent result and is disabled (read-only)
// 2. One item per dialog kind, followed by the history and clipboard items
// 3. The status item is refreshed after every click and every 30 seconds
// 4. SIGINT and SIGTERM quit the tray the same way Exit does
func (t *tray) onReady() {
	systray.SetIcon(trayIcon())
	systray.SetTitle("osdialog")
	systray.SetTooltip("osdialog: native dialogs")

	mLast := systray.AddMenuItem(t.history.lastStatus(t.now()), "Most recent result")
	mLast.Disable()

	systray.AddSeparator()

	mOpen := systray.AddMenuItem("Open file...", "Pick an existing file")
	mSave := systray.AddMenuItem("Save file...", "Pick a destination file")
	mFolder := systray.AddMenuItem("Pick folder...", "Pick a folder and fingerprint its content")
	mPrompt := systray.AddMenuItem("Prompt...", "Ask for one line of text")
	mColor := systray.AddMenuItem("Pick color...", "Pick a color")
	mMessage := systray.AddMenuItem("Recent results...", "Show the result history in a message box")
	mCopy := systray.AddMenuItem("Copy last result", "Copy the most recent result to the clipboard")

	systray.AddSeparator()

	mQuit := systray.AddMenuItem("Exit", "Exit the application")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	refresh := func() {
		mLast.SetTitle(t.history.lastStatus(t.now()))
	}

	go func() {
		ticker := time.NewTicker(statusRefreshInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				refresh()
			}
		}
	}()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		select {
		case <-sigChan:
			t.logger.Info("Signal received, exiting")
			cancel()
			systray.Quit()
		case <-ctx.Done():
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-mOpen.ClickedCh:
			t.openFile()
		case <-mSave.ClickedCh:
			t.saveFile()
		case <-mFolder.ClickedCh:
			t.pickFolder()
		case <-mPrompt.ClickedCh:
			t.prompt()
		case <-mColor.ClickedCh:
			t.pickColor()
		case <-mMessage.ClickedCh:
			t.showHistory()
		case <-mCopy.ClickedCh:
			t.copyLast()
		case <-mQuit.ClickedCh:
			cancel()
			systray.Quit()
			return
		}
		refresh()
	}
}

// onExit runs after the tray is torn down. Deferred cleanup in run closes
// the log file and releases the instance lock.
func (t *tray) onExit() {
	t.logger.Info("Application exiting")
}

// openFile and saveFile offer the configured file types. saveFile applies
// the configured default extension to a bare file name.
func (t *tray) openFile() {
	path, ok := t.dialogs.OpenFile(t.config.StartDir, t.config.DefaultFile, t.config.Filters...)
	t.done("open", path, ok)
}

func (t *tray) saveFile() {
	path, ok := t.dialogs.SaveFile(t.config.StartDir, t.config.DefaultFile, t.config.DefaultExt, t.config.Filters...)
	t.done("save", path, ok)
}

// pickFolder records the chosen folder with a fingerprint of its content.
// A folder that cannot be hashed is still recorded, without fingerprint.
func (t *tray) pickFolder() {
	dir, ok := t.dialogs.OpenDirectory(t.config.StartDir)
	if !ok {
		t.logger.Debug("Dialog closed without a result", "action", "folder")
		return
	}

	start := t.now()
	sum, err := fingerprint(dir)
	if err != nil {
		t.logger.Warn("Failed to fingerprint folder", "path", dir, "error", err)
	}

	t.history.record(Entry{Action: "folder", Value: dir, Fingerprint: sum, At: t.now()})
	t.logger.Info("Folder picked", "path", dir, "hash", sum, "elapsed", t.now().Sub(start))
}

// prompt pre-fills the dialog with the previous answer.
func (t *tray) prompt() {
	prefill, _ := t.history.lastValue("prompt")
	text, ok := t.dialogs.Prompt(osdialog.LevelInfo, "Enter text", prefill)
	t.done("prompt", text, ok)
}

// pickColor starts from the previously picked color.
func (t *tray) pickColor() {
	ok := t.dialogs.PickColor(&t.color)
	t.done("color", hexColor(t.color), ok)
}

// showHistory lists the remembered results, newest first, with relative
// times.
func (t *tray) showHistory() {
	t.dialogs.Message(osdialog.LevelInfo, osdialog.ButtonsOK, t.history.summary(t.now()))
}

// copyLast puts the newest result on the clipboard and reports a failure in
// a message box.
func (t *tray) copyLast() {
	entries := t.history.list()
	if len(entries) == 0 {
		return
	}
	if err := t.copy(entries[0].Value); err != nil {
		t.logger.Warn("Failed to copy to clipboard", "error", err)
		t.dialogs.Message(osdialog.LevelError, osdialog.ButtonsOK, fmt.Sprintf("Could not copy to the clipboard.\n\n%v", err))
		return
	}
	t.logger.Info("Copied to clipboard", "action", entries[0].Action)
}

// done records an accepted dialog result. A cancelled dialog leaves the
// history untouched and is logged at debug level.
func (t *tray) done(action, value string, ok bool) {
	if !ok {
		t.logger.Debug("Dialog closed without a result", "action", action)
		return
	}
	t.history.record(Entry{Action: action, Value: value, At: t.now()})
	t.logger.Info("Dialog result", "action", action, "value", value)
}

func hexColor(c osdialog.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
