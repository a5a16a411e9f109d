//go:build windows

package main

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows"
)

const mutexName = `Local\osdialog-tray_SingleInstance`

var errAlreadyRunning = errors.New("another instance is already running")

// instanceLock is a named mutex held for the life of the process.
type instanceLock struct {
	handle windows.Handle
}

// acquireInstanceLock creates the named mutex for the current session.
//
// The mutex lives in the Local\ namespace, so each logged-in user gets one
// tray. The kernel drops the mutex when the process exits, even after a
// crash, so there is no stale lock to clean up.
//
// Returns errAlreadyRunning when another process already owns the name.
func acquireInstanceLock() (*instanceLock, error) {
	name, err := windows.UTF16PtrFromString(mutexName)
	if err != nil {
		return nil, fmt.Errorf("mutex name: %w", err)
	}

	handle, err := windows.CreateMutex(nil, false, name)
	if errors.Is(err, windows.ERROR_ALREADY_EXISTS) {
		windows.CloseHandle(handle)
		return nil, errAlreadyRunning
	}
	if err != nil {
		return nil, fmt.Errorf("create mutex: %w", err)
	}
	return &instanceLock{handle: handle}, nil
}

// release closes the mutex handle. Calling it twice is a no-op.
func (l *instanceLock) release() {
	if l.handle != 0 {
		windows.CloseHandle(l.handle)
		l.handle = 0
	}
}
