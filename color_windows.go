//go:build windows

package osdialog

import (
	"runtime"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	ccRGBInit  = 0x00000001
	ccFullOpen = 0x00000002
	ccAnyColor = 0x00000100
)

// chooseColor mirrors CHOOSECOLORW.
type chooseColor struct {
	structSize   uint32
	owner        windows.HWND
	instance     windows.Handle
	rgbResult    uint32
	customColors *[16]uint32
	flags        uint32
	custData     uintptr
	hook         uintptr
	templateName *uint16
}

// customColors is the palette of the "Custom colors" row. It lives for the
// whole process so user-defined slots survive between calls.
var customColors struct {
	mu      sync.Mutex
	palette [16]uint32
}

func (p *winProvider) Color(c *Color) bool {
	if c == nil {
		return false
	}

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	customColors.mu.Lock()
	defer customColors.mu.Unlock()

	cc := chooseColor{
		owner:        windows.HWND(activeWindow()),
		rgbResult:    colorRef(*c),
		customColors: &customColors.palette,
		flags:        ccFullOpen | ccAnyColor | ccRGBInit,
	}
	cc.structSize = uint32(unsafe.Sizeof(cc))

	ret, _, _ := procChooseColorW.Call(uintptr(unsafe.Pointer(&cc)))
	if ret == 0 {
		if code, _, _ := procCommDlgExtendedError.Call(); code != 0 {
			p.logger.Debug("color dialog failed", "code", code)
		}
		return false
	}

	*c = fromColorRef(cc.rgbResult)
	return true
}

// colorRef packs c as a COLORREF (0x00BBGGRR). Alpha is dropped.
func colorRef(c Color) uint32 {
	return uint32(c.R) | uint32(c.G)<<8 | uint32(c.B)<<16
}

// fromColorRef unpacks a COLORREF as an opaque Color.
func fromColorRef(ref uint32) Color {
	return Color{R: uint8(ref), G: uint8(ref >> 8), B: uint8(ref >> 16), A: 0xFF}
}
