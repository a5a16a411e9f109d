package main

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chadsten/osdialog"
)

// scriptedProvider answers every dialog with fixed values and records the
// requests it saw.
type scriptedProvider struct {
	path    string
	text    string
	color   osdialog.Color
	ok      bool
	dirs    []string
	prefill []string
	message string
}

func (p *scriptedProvider) File(action osdialog.Action, dir, filename string, filters osdialog.Filters) (string, bool) {
	p.dirs = append(p.dirs, dir)
	return p.path, p.ok
}

func (p *scriptedProvider) Directory(dir string) (string, bool) {
	p.dirs = append(p.dirs, dir)
	return p.path, p.ok
}

func (p *scriptedProvider) Message(level osdialog.Level, buttons osdialog.Buttons, text string) bool {
	p.message = text
	return true
}

func (p *scriptedProvider) Prompt(level osdialog.Level, text, prefill string) (string, bool) {
	p.prefill = append(p.prefill, prefill)
	return p.text, p.ok
}

func (p *scriptedProvider) Color(c *osdialog.Color) bool {
	if p.ok {
		*c = p.color
	}
	return p.ok
}

func newTestTray(p osdialog.Provider, config *Config) *tray {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	t := newTray(config, osdialog.New(osdialog.WithProvider(p), osdialog.WithLogger(logger)), logger)
	t.now = func() time.Time { return base }
	return t
}

func TestTraySaveAppliesDefaultExt(t *testing.T) {
	p := &scriptedProvider{path: "/tmp/report", ok: true}
	tr := newTestTray(p, &Config{StartDir: "/tmp", DefaultExt: "csv"})

	tr.saveFile()

	require.Len(t, tr.history.list(), 1)
	assert.Equal(t, Entry{Action: "save", Value: "/tmp/report.csv", At: base}, tr.history.list()[0])
	assert.Equal(t, []string{"/tmp"}, p.dirs)
}

func TestTrayCancelledRecordsNothing(t *testing.T) {
	p := &scriptedProvider{ok: false}
	tr := newTestTray(p, &Config{})

	tr.openFile()
	tr.saveFile()
	tr.pickFolder()
	tr.prompt()
	tr.pickColor()

	assert.Empty(t, tr.history.list())
	assert.Equal(t, "Last: Never", tr.history.lastStatus(base))
}

func TestTrayPromptPrefillsPreviousAnswer(t *testing.T) {
	p := &scriptedProvider{text: "hello", ok: true}
	tr := newTestTray(p, &Config{})

	tr.prompt()
	p.text = "again"
	tr.prompt()

	assert.Equal(t, []string{"", "hello"}, p.prefill)
	v, _ := tr.history.lastValue("prompt")
	assert.Equal(t, "again", v)
}

func TestTrayPickColorKeepsSelection(t *testing.T) {
	p := &scriptedProvider{color: osdialog.Color{R: 0x10, G: 0x20, B: 0x30, A: 0xff}, ok: true}
	tr := newTestTray(p, &Config{})

	tr.pickColor()

	assert.Equal(t, p.color, tr.color)
	v, _ := tr.history.lastValue("color")
	assert.Equal(t, "#102030", v)
}

func TestTrayPickFolderFingerprints(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("hi"), 0o644))

	tr := newTestTray(&scriptedProvider{path: dir, ok: true}, &Config{})
	tr.pickFolder()

	entries := tr.history.list()
	require.Len(t, entries, 1)
	want, err := fingerprint(dir)
	require.NoError(t, err)
	assert.Equal(t, want, entries[0].Fingerprint)
}

func TestTrayPickFolderUnreadable(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "gone")
	tr := newTestTray(&scriptedProvider{path: missing, ok: true}, &Config{})
	tr.pickFolder()

	entries := tr.history.list()
	require.Len(t, entries, 1)
	assert.Equal(t, missing, entries[0].Value)
	assert.Empty(t, entries[0].Fingerprint)
}

func TestTrayShowHistory(t *testing.T) {
	p := &scriptedProvider{path: "/a.png", ok: true}
	tr := newTestTray(p, &Config{})

	tr.showHistory()
	assert.Equal(t, "No dialogs have been used yet.", p.message)

	tr.openFile()
	tr.showHistory()
	assert.Equal(t, "Just now, open: /a.png", p.message)
}

func TestTrayCopyLast(t *testing.T) {
	p := &scriptedProvider{path: "/a.png", ok: true}
	tr := newTestTray(p, &Config{})
	var copied []string
	tr.copy = func(s string) error {
		copied = append(copied, s)
		return nil
	}

	tr.copyLast()
	assert.Empty(t, copied, "nothing to copy yet")

	tr.openFile()
	tr.copyLast()
	assert.Equal(t, []string{"/a.png"}, copied)

	tr.copy = func(string) error { return errors.New("no clipboard utility") }
	tr.copyLast()
	assert.Contains(t, p.message, "no clipboard utility")
}

func TestTrayIconEncodes(t *testing.T) {
	data := trayIcon()
	require.NotEmpty(t, data)

	if bytes.HasPrefix(data, []byte{0, 0, 1, 0}) {
		data = data[22:]
	}
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, iconSize, img.Bounds().Dx())
}

func TestWrapICOHeader(t *testing.T) {
	payload := []byte("png-bytes")
	ico := wrapICO(payload, 32)

	require.Len(t, ico, 22+len(payload))
	le := binary.LittleEndian
	assert.Equal(t, uint16(1), le.Uint16(ico[2:]), "type icon")
	assert.Equal(t, uint16(1), le.Uint16(ico[4:]), "one image")
	assert.Equal(t, byte(32), ico[6])
	assert.Equal(t, uint32(len(payload)), le.Uint32(ico[14:]))
	assert.Equal(t, uint32(22), le.Uint32(ico[18:]))
	assert.Equal(t, payload, ico[22:])
}

func TestHexColor(t *testing.T) {
	assert.Equal(t, "#00ff7f", hexColor(osdialog.Color{G: 0xff, B: 0x7f}))
}
