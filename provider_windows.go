//go:build windows

// provider_windows.go talks to the Win32 common dialogs through lazily
// loaded DLL procs. All strings cross the boundary as UTF-16.

package osdialog

import (
	"log/slog"
	"runtime"
	"unsafe"

	"golang.org/x/sys/windows"
)

// Win32 constants used by the common dialogs.
const (
	mbApplModal       = 0x00000000
	mbOK              = 0x00000000
	mbOKCancel        = 0x00000001
	mbYesNo           = 0x00000004
	mbIconError       = 0x00000010
	mbIconWarning     = 0x00000030
	mbIconInformation = 0x00000040

	idYes = 6

	ofnOverwritePrompt = 0x00000002
	ofnNoChangeDir     = 0x00000008
	ofnPathMustExist   = 0x00000800
	ofnFileMustExist   = 0x00001000
	ofnExplorer        = 0x00080000
)

var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	comdlg32 = windows.NewLazySystemDLL("comdlg32.dll")
	shell32  = windows.NewLazySystemDLL("shell32.dll")
	ole32    = windows.NewLazySystemDLL("ole32.dll")

	procMessageBoxW            = user32.NewProc("MessageBoxW")
	procGetActiveWindow        = user32.NewProc("GetActiveWindow")
	procDialogBoxIndirectParam = user32.NewProc("DialogBoxIndirectParamW")
	procEndDialog              = user32.NewProc("EndDialog")
	procSendDlgItemMessageW    = user32.NewProc("SendDlgItemMessageW")
	procSendMessageW           = user32.NewProc("SendMessageW")

	procGetOpenFileNameW     = comdlg32.NewProc("GetOpenFileNameW")
	procGetSaveFileNameW     = comdlg32.NewProc("GetSaveFileNameW")
	procChooseColorW         = comdlg32.NewProc("ChooseColorW")
	procCommDlgExtendedError = comdlg32.NewProc("CommDlgExtendedError")

	procSHBrowseForFolderW          = shell32.NewProc("SHBrowseForFolderW")
	procSHGetPathFromIDListW        = shell32.NewProc("SHGetPathFromIDListW")
	procSHCreateItemFromParsingName = shell32.NewProc("SHCreateItemFromParsingName")

	procCoCreateInstance = ole32.NewProc("CoCreateInstance")
)

// openFileName mirrors OPENFILENAMEW.
type openFileName struct {
	structSize      uint32
	owner           windows.HWND
	instance        windows.Handle
	filter          *uint16
	customFilter    *uint16
	maxCustomFilter uint32
	filterIndex     uint32
	file            *uint16
	maxFile         uint32
	fileTitle       *uint16
	maxFileTitle    uint32
	initialDir      *uint16
	title           *uint16
	flags           uint32
	fileOffset      uint16
	fileExtension   uint16
	defExt          *uint16
	custData        uintptr
	hook            uintptr
	templateName    *uint16
	reserved        unsafe.Pointer
	reserved2       uint32
	flagsEx         uint32
}

type winProvider struct {
	logger *slog.Logger
}

// NewNativeProvider returns the Win32 provider.
func NewNativeProvider(logger *slog.Logger) Provider {
	if logger == nil {
		logger = slog.Default()
	}
	return &winProvider{logger: logger}
}

func activeWindow() uintptr {
	hwnd, _, _ := procGetActiveWindow.Call()
	return hwnd
}

// fullPath converts dir to an absolute UTF-16 path. The common dialogs
// behave inconsistently with relative initial directories.
func fullPath(dir string) (*uint16, error) {
	abs, err := windows.FullPath(dir)
	if err != nil {
		return nil, err
	}
	return windows.UTF16PtrFromString(abs)
}

func (p *winProvider) File(action Action, dir, filename string, filters Filters) (string, bool) {
	if action == ActionOpenDir {
		return p.Directory(dir)
	}

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	file := make([]uint16, windows.MAX_LONG_PATH)
	if filename != "" {
		w, err := toWide(filename)
		if err != nil {
			p.logger.Debug("encode filename", "filename", filename, "err", err)
			return "", false
		}
		// Truncate to the buffer, keeping the terminator.
		copy(file[:len(file)-1], w)
	}

	ofn := openFileName{
		owner:   windows.HWND(activeWindow()),
		file:    &file[0],
		maxFile: uint32(len(file)),
		flags:   ofnExplorer | ofnNoChangeDir | ofnPathMustExist,
	}
	ofn.structSize = uint32(unsafe.Sizeof(ofn))

	if dir != "" {
		initial, err := fullPath(dir)
		if err != nil {
			p.logger.Debug("resolve initial directory", "dir", dir, "err", err)
			return "", false
		}
		ofn.initialDir = initial
	}

	if native := encodeFilters(filters, filterBufferSize); native != nil {
		w, err := toWideBuffer(native)
		if err != nil {
			p.logger.Debug("encode filters", "filters", filters.String(), "err", err)
			return "", false
		}
		ofn.filter = &w[0]
		ofn.filterIndex = 1
	}

	proc := procGetOpenFileNameW
	if action == ActionSave {
		proc = procGetSaveFileNameW
		ofn.flags |= ofnOverwritePrompt
	} else {
		ofn.flags |= ofnFileMustExist
	}

	ret, _, _ := proc.Call(uintptr(unsafe.Pointer(&ofn)))
	runtime.KeepAlive(file)
	if ret == 0 {
		// Zero extended error means the user cancelled.
		if code, _, _ := procCommDlgExtendedError.Call(); code != 0 {
			p.logger.Debug("file dialog failed", "action", action, "code", code)
		}
		return "", false
	}

	path, err := fromWide(file)
	if err != nil {
		p.logger.Debug("decode file dialog result", "err", err)
		return "", false
	}
	return path, true
}

func (p *winProvider) Message(level Level, buttons Buttons, text string) bool {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	msg, err := toWide(text)
	if err != nil {
		p.logger.Debug("encode message", "err", err)
		return false
	}
	caption := []uint16{0}

	ret, _, _ := procMessageBoxW.Call(
		activeWindow(),
		uintptr(unsafe.Pointer(&msg[0])),
		uintptr(unsafe.Pointer(&caption[0])),
		uintptr(messageBoxType(level, buttons)),
	)
	return messageAccepted(int(ret))
}

// messageBoxType maps level and buttons to MessageBoxW flags.
func messageBoxType(level Level, buttons Buttons) uint32 {
	t := uint32(mbApplModal)
	switch level {
	case LevelWarning:
		t |= mbIconWarning
	case LevelError:
		t |= mbIconError
	default:
		t |= mbIconInformation
	}

	switch buttons {
	case ButtonsOKCancel:
		t |= mbOKCancel
	case ButtonsYesNo:
		t |= mbYesNo
	default:
		t |= mbOK
	}
	return t
}

// messageAccepted reports whether a MessageBoxW result is affirmative.
func messageAccepted(ret int) bool {
	return ret == idOK || ret == idYes
}
