package osdialog

import (
	"bytes"
	"encoding/binary"
)

// Dialog template constants from winuser.h. They are plain numbers so the
// template can be built and checked on any platform.
const (
	wsPopup    = 0x80000000
	wsChild    = 0x40000000
	wsVisible  = 0x10000000
	wsCaption  = 0x00C00000
	wsBorder   = 0x00800000
	wsSysMenu  = 0x00080000
	wsTabStop  = 0x00010000
	dsModal    = 0x00000080
	dsCenter   = 0x00000800
	dsShell    = 0x00000048 // DS_SETFONT | DS_FIXEDSYS
	esLeft     = 0x00000000
	esAutoHS   = 0x00000080
	bsPush     = 0x00000000
	bsDefPush  = 0x00000001
	wsExNoNote = 0x00000004

	classButton = 0x0080
	classEdit   = 0x0081

	idOK     = 1
	idCancel = 2
	idEdit   = 42
)

const (
	promptFont     = "MS Shell Dlg"
	promptFontSize = 8
	promptMargin   = 5
	promptEditW    = 200
	promptButtonW  = 50
	promptRowH     = 14
)

// dlgItem is one control of an in-memory DLGTEMPLATE.
type dlgItem struct {
	style      uint32
	x, y, w, h int16
	id         uint16
	class      uint16
	title      string
}

// promptItems lays out the edit box and the two buttons on one row.
func promptItems() []dlgItem {
	okX := int16(promptMargin + promptEditW + 2*promptMargin)
	cancelX := okX + promptButtonW + promptMargin
	return []dlgItem{
		{wsChild | wsVisible | wsTabStop | wsBorder | esLeft | esAutoHS, promptMargin, promptMargin, promptEditW, promptRowH, idEdit, classEdit, ""},
		{wsChild | wsVisible | wsTabStop | bsDefPush, okX, promptMargin, promptButtonW, promptRowH, idOK, classButton, "&OK"},
		{wsChild | wsVisible | wsTabStop | bsPush, cancelX, promptMargin, promptButtonW, promptRowH, idCancel, classButton, "&Cancel"},
	}
}

// promptTemplate builds the DLGTEMPLATE of the text prompt dialog with the
// given caption. Every item starts on a DWORD boundary.
func promptTemplate(caption string) ([]byte, error) {
	items := promptItems()
	width := int16(promptMargin + promptEditW + 2*promptMargin + 2*(promptButtonW+promptMargin))
	height := int16(promptMargin + promptRowH + promptMargin)

	t := &templateWriter{}
	t.put(uint32(wsPopup | wsVisible | wsCaption | wsSysMenu | dsModal | dsCenter | dsShell))
	t.put(uint32(0))
	t.put(uint16(len(items)))
	t.put([]int16{0, 0, width, height})
	t.put([]uint16{0, 0}) // no menu, default class
	if err := t.str(caption); err != nil {
		return nil, err
	}
	t.put(uint16(promptFontSize))
	if err := t.str(promptFont); err != nil {
		return nil, err
	}

	for _, it := range items {
		t.align()
		t.put(it.style)
		t.put(uint32(wsExNoNote))
		t.put([]int16{it.x, it.y, it.w, it.h})
		t.put(it.id)
		t.put([]uint16{0xFFFF, it.class})
		if err := t.str(it.title); err != nil {
			return nil, err
		}
		t.put(uint16(0)) // no creation data
	}
	return t.buf.Bytes(), nil
}

type templateWriter struct {
	buf bytes.Buffer
}

func (t *templateWriter) put(v any) {
	// bytes.Buffer writes never fail.
	_ = binary.Write(&t.buf, binary.LittleEndian, v)
}

func (t *templateWriter) str(s string) error {
	w, err := toWide(s)
	if err != nil {
		return err
	}
	t.put(w)
	return nil
}

func (t *templateWriter) align() {
	for t.buf.Len()%4 != 0 {
		t.put(uint16(0))
	}
}
