// Copyright 2021-2024 Sebastian Lederer. See the file LICENSE.md for details

// Package display decodes the video output pins back into pictures, the
// way a monitor would. It is attached to the sequencer block as a probe.
package display

import (
	"image"

	"picovga/framebuffer"
	"picovga/hardware/bus"
	"picovga/hardware/pio"
)

const (
	hsyncMask = 1 << pio.PinHSync
	vsyncMask = 1 << pio.PinVSync
	rgbMask   = 1<<pio.PinRed | 1<<pio.PinGreen | 1<<pio.PinBlue
)

// Stats describes the most recently completed frame.
type Stats struct {
	// Frames is the number of frames completed so far
	Frames int

	// lines holding at least one pixel and the number of pixels in them
	Lines  int
	Pixels int

	// the periods of the two sync signals in system clocks, measured
	// between falling edges
	LineTicks  uint64
	FrameTicks uint64
}

// Display is a pio.Probe that rebuilds frames from the pins. Pixels are
// counted from the start of the line, which is the falling edge of the
// horizontal sync. A frame closes on the falling edge of the vertical sync.
type Display struct {
	work *image.Paletted
	last *image.Paletted

	x, y   int
	pins   bus.Word
	lines  int
	pixels int

	lastHSync uint64
	lastVSync uint64

	stats Stats
}

// New is the preferred method of initialisation for the Display type.
func New() *Display {
	r := image.Rect(0, 0, framebuffer.ScreenWidth, framebuffer.ScreenHeight)
	return &Display{
		work: image.NewPaletted(r, framebuffer.Palette()),
		last: image.NewPaletted(r, framebuffer.Palette()),
	}
}

// PinsChanged implements the pio.Probe interface.
func (d *Display) PinsChanged(tick uint64, pins bus.Word) {
	fell := d.pins &^ pins
	d.pins = pins

	if fell&hsyncMask != 0 {
		if d.lastHSync != 0 {
			d.stats.LineTicks = tick - d.lastHSync
		}
		d.lastHSync = tick
		if d.x > 0 {
			d.y++
			d.lines++
		}
		d.x = 0
	}

	if fell&vsyncMask != 0 {
		if d.lastVSync != 0 {
			d.stats.FrameTicks = tick - d.lastVSync
		}
		d.lastVSync = tick
		d.endFrame()
	}
}

// PinsOut implements the pio.Probe interface.
func (d *Display) PinsOut(tick uint64, pins bus.Word) {
	if d.x < framebuffer.ScreenWidth && d.y < framebuffer.ScreenHeight {
		d.work.Pix[d.y*d.work.Stride+d.x] = uint8(pins & rgbMask >> pio.PinRed)
		d.pixels++
	}
	d.x++
}

func (d *Display) endFrame() {
	// a line still in progress belongs to this frame
	if d.x > 0 {
		d.lines++
	}

	d.work, d.last = d.last, d.work
	d.stats.Frames++
	d.stats.Lines = d.lines
	d.stats.Pixels = d.pixels

	d.x = 0
	d.y = 0
	d.lines = 0
	d.pixels = 0
}

// Frame is the last complete frame. The image is reused, so it is only
// valid until the next frame completes.
func (d *Display) Frame() *image.Paletted {
	return d.last
}

// Color is the colour of a pixel in the last complete frame.
func (d *Display) Color(x, y int) framebuffer.Color {
	if !image.Pt(x, y).In(d.last.Rect) {
		return framebuffer.Black
	}
	return framebuffer.Color(d.last.ColorIndexAt(x, y))
}

// Stats describes the decoded signal.
func (d *Display) Stats() Stats {
	return d.stats
}
