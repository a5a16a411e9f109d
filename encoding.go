package osdialog

import (
	"encoding/binary"
	"errors"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// ErrEmbeddedNUL is returned when a string meant for a NUL-terminated
// native API contains a NUL byte.
var ErrEmbeddedNUL = errors.New("string contains NUL byte")

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// toWide converts s to a NUL-terminated UTF-16 string.
func toWide(s string) ([]uint16, error) {
	if strings.IndexByte(s, 0) >= 0 {
		return nil, ErrEmbeddedNUL
	}
	w, err := toWideBuffer([]byte(s))
	if err != nil {
		return nil, err
	}
	return append(w, 0), nil
}

// toWideBuffer converts b to UTF-16 as is, embedded NULs included.
func toWideBuffer(b []byte) ([]uint16, error) {
	raw, err := utf16le.NewEncoder().Bytes(b)
	if err != nil {
		return nil, err
	}
	w := make([]uint16, len(raw)/2)
	for i := range w {
		w[i] = binary.LittleEndian.Uint16(raw[2*i:])
	}
	return w, nil
}

// fromWide converts UTF-16 up to the first NUL back to UTF-8.
func fromWide(w []uint16) (string, error) {
	n := 0
	for n < len(w) && w[n] != 0 {
		n++
	}
	raw := make([]byte, 2*n)
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint16(raw[2*i:], w[i])
	}
	s, err := utf16le.NewDecoder().Bytes(raw)
	if err != nil {
		return "", err
	}
	return string(s), nil
}
