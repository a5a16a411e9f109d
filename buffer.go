package osdialog

// filterBufferSize is the initial capacity of a native filter buffer.
const filterBufferSize = 1024

// nativeBuffer is an append-only byte buffer with explicit geometric growth.
// Capacity is checked before every write.
type nativeBuffer struct {
	data  []byte
	pos   int
	grows int
}

func newNativeBuffer(size int) *nativeBuffer {
	if size < 0 {
		size = 0
	}
	return &nativeBuffer{data: make([]byte, size)}
}

// ensure makes room for n more bytes, growing to
// max(64, size+over, 2*size) when short.
func (b *nativeBuffer) ensure(n int) {
	remaining := len(b.data) - b.pos
	if remaining < 0 {
		panic("osdialog: native buffer position past capacity")
	}
	if n <= remaining {
		return
	}

	over := n - remaining
	size := max(64, len(b.data)+over, len(b.data)*2)
	grown := make([]byte, size)
	copy(grown, b.data[:b.pos])
	b.data = grown
	b.grows++

	if n > len(b.data)-b.pos {
		panic("osdialog: native buffer too small after growth")
	}
}

// WriteString appends s without a terminator.
func (b *nativeBuffer) WriteString(s string) {
	b.ensure(len(s))
	b.pos += copy(b.data[b.pos:], s)
}

// WriteNull appends a single NUL byte.
func (b *nativeBuffer) WriteNull() {
	b.ensure(1)
	b.data[b.pos] = 0
	b.pos++
}

// Bytes returns the written portion of the buffer.
func (b *nativeBuffer) Bytes() []byte {
	return b.data[:b.pos]
}

// encodeFilters lays filters out the way the legacy Windows file dialog
// expects: for each group a NUL-terminated label, then a NUL-terminated
// ";"-joined list of "*.ext" patterns, and one final NUL.
// It returns nil for an empty list.
func encodeFilters(filters Filters, size int) []byte {
	if len(filters) == 0 {
		return nil
	}

	b := newNativeBuffer(size)
	for _, f := range filters {
		b.WriteString(f.Name)
		b.WriteNull()

		for i, glob := range f.Globs() {
			if i > 0 {
				b.WriteString(";")
			}
			b.WriteString(glob)
		}
		b.WriteNull()
	}
	b.WriteNull()
	return b.Bytes()
}
