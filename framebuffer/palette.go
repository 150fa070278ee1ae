// Copyright 2021-2024 Sebastian Lederer. See the file LICENSE.md for details

package framebuffer

import (
	"fmt"
	"image/color"
)

// Color is a 3 bit colour. Bit 0 drives red, bit 1 green and bit 2 blue.
type Color uint8

const (
	Black   Color = 0b000
	Red     Color = 0b001
	Green   Color = 0b010
	Yellow  Color = 0b011
	Blue    Color = 0b100
	Magenta Color = 0b101
	Cyan    Color = 0b110
	White   Color = 0b111
)

// PaletteSlots is the number of colours.
const PaletteSlots = 8

var names = [PaletteSlots]string{"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white"}

func (c Color) String() string {
	if c >= PaletteSlots {
		return fmt.Sprintf("color(%d)", uint8(c))
	}
	return names[c]
}

// ToRGBA is the colour a monitor shows for c.
func (c Color) ToRGBA() color.RGBA {
	var r, g, b uint8
	if c&0b001 != 0 {
		r = 0xff
	}
	if c&0b010 != 0 {
		g = 0xff
	}
	if c&0b100 != 0 {
		b = 0xff
	}
	return color.RGBA{r, g, b, 0xff}
}

// Palette lists the RGBA colour of every Color in order, suitable for an
// image.Paletted.
func Palette() color.Palette {
	p := make(color.Palette, PaletteSlots)
	for i := range p {
		p[i] = Color(i).ToRGBA()
	}
	return p
}
