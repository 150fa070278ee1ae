// Copyright 2021-2024 Sebastian Lederer. See the file LICENSE.md for details

// Package framebuffer holds every visible pixel packed three bits to a
// pixel, ten pixels to a 32 bit word. The top two bits of each word are
// never used.
//
// The word holding a pixel is one word before the one its bit position
// suggests because the serializer emits a word one fetch after the DMA
// delivers it. The pixels in the first ten bit positions of the frame live
// in the last word.
package framebuffer

import (
	"github.com/pkg/errors"

	"picovga/hardware/bus"
)

const (
	ScreenWidth  = 640
	ScreenHeight = 480

	BitsPerPixel = 3
	PixelMask    = 0b111
	UsableBits   = 30
	PixelPerWord = UsableBits / BitsPerPixel

	// bits in one row of pixels
	RowBits = ScreenWidth * BitsPerPixel

	// number of words needed for the whole screen
	Words = (ScreenWidth*ScreenHeight*BitsPerPixel + UsableBits - 1) / UsableBits

	// words per row of pixels
	WordsPerLine = Words / ScreenHeight

	// every usable bit in a word
	UsableMask = 1<<UsableBits - 1
)

// Framebuffer is the packed pixel store. It is the context for every
// drawing operation.
type Framebuffer struct {
	vmem []uint32
}

// New allocates a zero filled framebuffer.
func New() *Framebuffer {
	return &Framebuffer{vmem: make([]uint32, Words)}
}

// Len is the number of words in the framebuffer.
func (f *Framebuffer) Len() int {
	return len(f.vmem)
}

// Word returns the word at index i.
func (f *Framebuffer) Word(i int) uint32 {
	return f.vmem[i]
}

// SetWord replaces the word at index i.
func (f *Framebuffer) SetWord(i int, w uint32) {
	f.vmem[i] = w
}

// Size of the framebuffer in bytes.
func (f *Framebuffer) Size() bus.Word {
	return bus.Word(len(f.vmem) * bus.WordBytes)
}

// PixelIndex returns the word index and bit offset of the pixel at (x, y).
// The word index is always in [0, Len()-1] when n is inside the frame.
func (f *Framebuffer) PixelIndex(x, y int) (int, int) {
	return f.index(y*RowBits + x*BitsPerPixel)
}

func (f *Framebuffer) index(n int) (int, int) {
	k := n/UsableBits - 1
	if n/UsableBits == 0 {
		k = len(f.vmem) - 1
	}
	return k, n % UsableBits
}

// Pixel reads back the colour of the pixel at (x, y). Coordinates outside
// the screen read as Black.
func (f *Framebuffer) Pixel(x, y int) Color {
	if x < 0 || x >= ScreenWidth || y < 0 || y >= ScreenHeight {
		return Black
	}
	k, p := f.PixelIndex(x, y)
	return Color(f.vmem[k]>>p) & PixelMask
}

// Read implements bus.Handler. The DMA engine fetches the framebuffer
// through this.
func (f *Framebuffer) Read(addr bus.Word) (bus.Word, error) {
	i, err := f.wordAddr(addr)
	if err != nil {
		return 0, err
	}
	return bus.Word(f.vmem[i]), nil
}

// Write implements bus.Handler.
func (f *Framebuffer) Write(value bus.Word, addr bus.Word) error {
	i, err := f.wordAddr(addr)
	if err != nil {
		return err
	}
	f.vmem[i] = uint32(value)
	return nil
}

func (f *Framebuffer) wordAddr(addr bus.Word) (int, error) {
	if addr%bus.WordBytes != 0 || int(addr/bus.WordBytes) >= len(f.vmem) {
		return 0, errors.Errorf("framebuffer: invalid address %08X", addr)
	}
	return int(addr / bus.WordBytes), nil
}
