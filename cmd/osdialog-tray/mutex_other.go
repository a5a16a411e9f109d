//go:build !windows

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const lockFileName = "osdialog-tray.lock"

var errAlreadyRunning = errors.New("another instance is already running")

// instanceLock is an exclusive lock file in the XDG runtime directory.
type instanceLock struct {
	lockFile *os.File
}

// acquireInstanceLock takes the lock file in the XDG runtime directory.
//
// The runtime directory is per user and is emptied at logout, so a lock
// left behind by a crash does not outlive the session.
func acquireInstanceLock() (*instanceLock, error) {
	return acquireLockFile(filepath.Join(xdg.RuntimeDir, lockFileName))
}

// acquireLockFile creates path with O_EXCL and writes the PID into it.
//
// O_EXCL makes the check and the creation one atomic step. The PID in the
// file identifies the owner if the lock ever has to be removed by hand. A
// file whose PID cannot be written is removed again before returning.
//
// Returns errAlreadyRunning when path already exists.
func acquireLockFile(path string) (*instanceLock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create runtime dir: %w", err)
	}

	lockFile, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return nil, errAlreadyRunning
		}
		return nil, fmt.Errorf("create lock file: %w", err)
	}

	if _, err := fmt.Fprintf(lockFile, "%d\n", os.Getpid()); err != nil {
		lockFile.Close()
		os.Remove(path)
		return nil, fmt.Errorf("write lock file: %w", err)
	}
	return &instanceLock{lockFile: lockFile}, nil
}

// release closes and removes the lock file. Calling it twice is a no-op.
func (l *instanceLock) release() {
	if l.lockFile != nil {
		l.lockFile.Close()
		os.Remove(l.lockFile.Name())
		l.lockFile = nil
	}
}
