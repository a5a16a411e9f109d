//go:build windows

package osdialog

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"golang.org/x/sys/windows"
)

func TestMessageBoxType(t *testing.T) {
	assert.Equal(t, uint32(mbIconInformation|mbOK), messageBoxType(LevelInfo, ButtonsOK))
	assert.Equal(t, uint32(mbIconWarning|mbOKCancel), messageBoxType(LevelWarning, ButtonsOKCancel))
	assert.Equal(t, uint32(mbIconError|mbYesNo), messageBoxType(LevelError, ButtonsYesNo))
}

func TestMessageAccepted(t *testing.T) {
	assert.True(t, messageAccepted(idOK))
	assert.True(t, messageAccepted(idYes))
	assert.False(t, messageAccepted(idCancel))
	assert.False(t, messageAccepted(7)) // IDNO
	assert.False(t, messageAccepted(0))
}

func TestColorRef(t *testing.T) {
	c := Color{R: 0x11, G: 0x22, B: 0x33, A: 0x44}
	assert.Equal(t, uint32(0x00332211), colorRef(c))
	assert.Equal(t, Color{R: 0x11, G: 0x22, B: 0x33, A: 0xFF}, fromColorRef(colorRef(c)))
}

func TestComObjectCallDispatchesThroughVtable(t *testing.T) {
	var self, arg uintptr
	released := 0
	vtbl := [3]uintptr{
		0,
		windows.NewCallback(func(this, a uintptr) uintptr {
			self, arg = this, a
			return 42
		}),
		windows.NewCallback(func(this uintptr) uintptr {
			released++
			return 0
		}),
	}
	obj := &comObject{vtbl: unsafe.Pointer(&vtbl[0])}

	assert.Equal(t, uintptr(42), obj.call(1, 7))
	assert.Equal(t, uintptr(unsafe.Pointer(obj)), self)
	assert.Equal(t, uintptr(7), arg)

	obj.release()
	assert.Equal(t, 1, released)

	var none *comObject
	none.release()
	assert.Equal(t, 1, released)
}
