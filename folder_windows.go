//go:build windows

package osdialog

import (
	"errors"
	"fmt"
	"runtime"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	coinitApartmentThreaded = 0x2
	coinitDisableOLE1DDE    = 0x4
	clsctxInprocServer      = 0x1

	fosPickFolders     = 0x00000020
	fosForceFileSystem = 0x00000040
	sigdnFileSysPath   = 0x80058000

	bifReturnOnlyFSDirs = 0x00000001
	bifUseNewUI         = 0x00000050
	bffmInitialized     = 1
	wmUser              = 0x0400
	bffmSetSelectionW   = wmUser + 103
	bffmSetExpanded     = wmUser + 106
)

var (
	clsidFileOpenDialog = windows.GUID{Data1: 0xDC1C5A9C, Data2: 0xE88A, Data3: 0x4DDE, Data4: [8]byte{0xA5, 0xA1, 0x60, 0xF8, 0x2A, 0x20, 0xAE, 0xF7}}
	iidIFileOpenDialog  = windows.GUID{Data1: 0xD57C7288, Data2: 0xD4AD, Data3: 0x4768, Data4: [8]byte{0xBE, 0x02, 0x9D, 0x96, 0x95, 0x32, 0xD9, 0x60}}
	iidIShellItem       = windows.GUID{Data1: 0x43826D1E, Data2: 0xE718, Data3: 0x42EE, Data4: [8]byte{0xBC, 0x55, 0xA1, 0xE2, 0x61, 0xC3, 0x7B, 0xFE}}
)

// errNoFileDialog means the common item dialog could not be created and the
// legacy folder browser should be used instead.
var errNoFileDialog = errors.New("common item dialog unavailable")

// comObject is the memory layout of a COM interface: a pointer to its
// vtable. Interface pointers are held as *comObject.
type comObject struct {
	vtbl unsafe.Pointer
}

// call invokes the vtable method at index with the object as first argument.
func (o *comObject) call(index int, args ...uintptr) uintptr {
	fn := *(*uintptr)(unsafe.Add(o.vtbl, index*int(unsafe.Sizeof(uintptr(0)))))
	ret, _, _ := syscall.SyscallN(fn, append([]uintptr{uintptr(unsafe.Pointer(o))}, args...)...)
	return ret
}

func (o *comObject) release() {
	if o != nil {
		o.call(2)
	}
}

// Vtable slots of IFileOpenDialog and IShellItem.
const (
	slotShow           = 3
	slotSetOptions     = 9
	slotGetOptions     = 10
	slotSetFolder      = 12
	slotGetResult      = 20
	slotGetDisplayName = 5
)

func failed(hr uintptr) bool {
	return int32(hr) < 0
}

type hresultError uintptr

func (e hresultError) Error() string {
	return fmt.Sprintf("HRESULT 0x%08X", uint32(e))
}

// cancelled is HRESULT_FROM_WIN32(ERROR_CANCELLED).
const cancelled = hresultError(0x800704C7)

func (p *winProvider) Directory(dir string) (string, bool) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	// CoInitializeEx reports S_FALSE as Errno(1) when COM is already up on
	// this thread; both need a matching CoUninitialize.
	var path string
	err := windows.CoInitializeEx(0, coinitApartmentThreaded|coinitDisableOLE1DDE)
	if err == nil || err == windows.Errno(1) {
		defer windows.CoUninitialize()
		path, err = p.pickFolder(dir)
	} else {
		err = fmt.Errorf("%w: CoInitializeEx: %v", errNoFileDialog, err)
	}

	if errors.Is(err, errNoFileDialog) {
		p.logger.Debug("falling back to folder browser", "err", err)
		path, err = p.browseFolder(dir)
	}
	switch {
	case errors.Is(err, cancelled):
		return "", false
	case err != nil:
		p.logger.Debug("folder dialog failed", "dir", dir, "err", err)
		return "", false
	case path == "":
		return "", false
	}
	return path, true
}

// pickFolder shows IFileOpenDialog in folder mode. COM must be initialised
// on the calling thread. Every COM reference is released on the way out,
// whichever step fails.
func (p *winProvider) pickFolder(dir string) (string, error) {
	var dlg *comObject
	hr, _, _ := procCoCreateInstance.Call(
		uintptr(unsafe.Pointer(&clsidFileOpenDialog)),
		0,
		clsctxInprocServer,
		uintptr(unsafe.Pointer(&iidIFileOpenDialog)),
		uintptr(unsafe.Pointer(&dlg)),
	)
	if failed(hr) {
		return "", fmt.Errorf("%w: CoCreateInstance: %v", errNoFileDialog, hresultError(hr))
	}
	defer dlg.release()

	var opts uint32
	if hr := dlg.call(slotGetOptions, uintptr(unsafe.Pointer(&opts))); failed(hr) {
		return "", fmt.Errorf("GetOptions: %w", hresultError(hr))
	}
	if hr := dlg.call(slotSetOptions, uintptr(opts|fosPickFolders|fosForceFileSystem)); failed(hr) {
		return "", fmt.Errorf("SetOptions: %w", hresultError(hr))
	}

	if dir != "" {
		if err := setInitialFolder(dlg, dir); err != nil {
			p.logger.Debug("initial folder ignored", "dir", dir, "err", err)
		}
	}

	if hr := dlg.call(slotShow, activeWindow()); failed(hr) {
		return "", hresultError(hr)
	}

	var item *comObject
	if hr := dlg.call(slotGetResult, uintptr(unsafe.Pointer(&item))); failed(hr) {
		return "", fmt.Errorf("GetResult: %w", hresultError(hr))
	}
	defer item.release()

	var name *uint16
	if hr := item.call(slotGetDisplayName, sigdnFileSysPath, uintptr(unsafe.Pointer(&name))); failed(hr) {
		return "", fmt.Errorf("GetDisplayName: %w", hresultError(hr))
	}
	defer windows.CoTaskMemFree(unsafe.Pointer(name))

	return windows.UTF16PtrToString(name), nil
}

func setInitialFolder(dlg *comObject, dir string) error {
	abs, err := fullPath(dir)
	if err != nil {
		return err
	}

	var folder *comObject
	hr, _, _ := procSHCreateItemFromParsingName.Call(
		uintptr(unsafe.Pointer(abs)),
		0,
		uintptr(unsafe.Pointer(&iidIShellItem)),
		uintptr(unsafe.Pointer(&folder)),
	)
	if failed(hr) {
		return hresultError(hr)
	}
	defer folder.release()

	if hr := dlg.call(slotSetFolder, uintptr(unsafe.Pointer(folder))); failed(hr) {
		return hresultError(hr)
	}
	return nil
}

// browseInfo mirrors BROWSEINFOW.
type browseInfo struct {
	owner       windows.HWND
	root        uintptr
	displayName *uint16
	title       *uint16
	flags       uint32
	callback    uintptr
	param       uintptr
	image       int32
}

// browseCallback selects and expands the initial folder once the browser
// is up. lParam carries the UTF-16 path.
var browseCallback = windows.NewCallback(func(hwnd, msg, lParam, data uintptr) uintptr {
	if msg == bffmInitialized && data != 0 {
		procSendMessageW.Call(hwnd, bffmSetSelectionW, 1, data)
		procSendMessageW.Call(hwnd, bffmSetExpanded, 1, data)
	}
	return 0
})

// browseFolder is the SHBrowseForFolderW fallback.
func (p *winProvider) browseFolder(dir string) (string, error) {
	display := make([]uint16, windows.MAX_PATH)
	bi := browseInfo{
		owner:       windows.HWND(activeWindow()),
		displayName: &display[0],
		flags:       bifReturnOnlyFSDirs | bifUseNewUI,
	}

	if dir != "" {
		initial, err := fullPath(dir)
		if err != nil {
			return "", err
		}
		bi.callback = browseCallback
		bi.param = uintptr(unsafe.Pointer(initial))
		defer runtime.KeepAlive(initial)
	}

	pidl, _, _ := procSHBrowseForFolderW.Call(uintptr(unsafe.Pointer(&bi)))
	if pidl == 0 {
		return "", cancelled
	}
	// The PIDL is allocated by the shell outside the Go heap.
	defer windows.CoTaskMemFree(unsafe.Pointer(pidl))

	path := make([]uint16, windows.MAX_LONG_PATH)
	if ok, _, _ := procSHGetPathFromIDListW.Call(pidl, uintptr(unsafe.Pointer(&path[0]))); ok == 0 {
		return "", errors.New("SHGetPathFromIDListW: not a file system folder")
	}
	return fromWide(path)
}
