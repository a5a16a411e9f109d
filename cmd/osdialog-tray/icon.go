package main

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"runtime"
)

const iconSize = 32

// trayIcon draws the tray icon: a blue folder with a white slot. Windows
// gets the PNG wrapped in an ICO container.
func trayIcon() []byte {
	img := image.NewNRGBA(image.Rect(0, 0, iconSize, iconSize))
	blue := color.NRGBA{R: 0x2d, G: 0x6c, B: 0xdf, A: 0xff}
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

	fill(img, image.Rect(2, 4, 14, 8), blue)
	fill(img, image.Rect(2, 7, 30, 28), blue)
	fill(img, image.Rect(7, 15, 25, 18), white)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil
	}
	if runtime.GOOS == "windows" {
		return wrapICO(buf.Bytes(), iconSize)
	}
	return buf.Bytes()
}

func fill(img *image.NRGBA, r image.Rectangle, c color.NRGBA) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
}

type iconDir struct {
	Reserved uint16
	Type     uint16
	Count    uint16
}

type iconDirEntry struct {
	Width      uint8
	Height     uint8
	ColorCount uint8
	Reserved   uint8
	Planes     uint16
	BitCount   uint16
	BytesInRes uint32
	Offset     uint32
}

// wrapICO returns a single-image ICO file embedding pngData.
func wrapICO(pngData []byte, size int) []byte {
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, iconDir{Type: 1, Count: 1})
	binary.Write(&buf, binary.LittleEndian, iconDirEntry{
		Width:      uint8(size),
		Height:     uint8(size),
		Planes:     1,
		BitCount:   32,
		BytesInRes: uint32(len(pngData)),
		Offset:     6 + 16,
	})
	buf.Write(pngData)
	return buf.Bytes()
}
