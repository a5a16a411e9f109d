//go:build windows

package osdialog

import (
	"runtime"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	wmClose      = 0x0010
	wmSetText    = 0x000C
	wmGetText    = 0x000D
	wmInitDialog = 0x0110
	wmCommand    = 0x0111
)

// promptProc is the dialog procedure of the prompt dialog. It reads and
// writes promptBuffer, which the caller has reset and locked.
var promptProc = windows.NewCallback(func(hwnd, msg, wParam, lParam uintptr) uintptr {
	switch msg {
	case wmInitDialog:
		procSendDlgItemMessageW.Call(hwnd, idEdit, wmSetText, 0, uintptr(unsafe.Pointer(&promptBuffer.text[0])))
		return 1

	case wmClose:
		procEndDialog.Call(hwnd, 0)
		return 1

	case wmCommand:
		switch wParam & 0xFFFF {
		case idOK:
			procSendDlgItemMessageW.Call(hwnd, idEdit, wmGetText, PromptCapacity, uintptr(unsafe.Pointer(&promptBuffer.text[0])))
			procEndDialog.Call(hwnd, 1)
			return 1
		case idCancel:
			procEndDialog.Call(hwnd, 0)
			return 1
		}
	}
	return 0
})

func (p *winProvider) Prompt(level Level, text, prefill string) (string, bool) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	// The prompt text becomes the dialog caption.
	tmpl, err := promptTemplate(text)
	if err != nil {
		p.logger.Debug("build prompt template", "err", err)
		return "", false
	}
	// DLGTEMPLATE must be DWORD aligned.
	aligned := make([]uint32, (len(tmpl)+3)/4)
	copy(unsafe.Slice((*byte)(unsafe.Pointer(&aligned[0])), len(aligned)*4), tmpl)

	promptBuffer.mu.Lock()
	defer promptBuffer.mu.Unlock()
	resetPromptBuffer(prefill)

	ret, _, callErr := procDialogBoxIndirectParam.Call(
		0,
		uintptr(unsafe.Pointer(&aligned[0])),
		activeWindow(),
		promptProc,
		0,
	)
	runtime.KeepAlive(aligned)

	switch int(ret) {
	case 1:
		result, err := fromWide(promptBuffer.text[:])
		if err != nil {
			p.logger.Debug("decode prompt result", "err", err)
			return "", false
		}
		return result, true
	case -1:
		p.logger.Debug("prompt dialog failed", "level", level, "err", callErr)
	}
	return "", false
}
