// Copyright 2021-2024 Sebastian Lederer. See the file LICENSE.md for details

package display_test

import (
	"testing"

	"picovga/display"
	"picovga/framebuffer"
	"picovga/hardware/bus"
	"picovga/hardware/pio"
	"picovga/test"
)

const (
	hsync = 1 << pio.PinHSync
	vsync = 1 << pio.PinVSync
)

// signal drives a display the way the sequencer block would
type signal struct {
	d    *display.Display
	tick uint64
	pins bus.Word
}

func (s *signal) set(pins bus.Word) {
	s.tick++
	if pins != s.pins {
		s.pins = pins
		s.d.PinsChanged(s.tick, pins)
	}
}

func (s *signal) out(c framebuffer.Color) {
	s.tick++
	pins := s.pins&^0b111 | bus.Word(c)
	if pins != s.pins {
		s.pins = pins
		s.d.PinsChanged(s.tick, pins)
	}
	s.d.PinsOut(s.tick, pins)
}

func (s *signal) line(colors ...framebuffer.Color) {
	s.set(s.pins &^ hsync)
	s.set(s.pins | hsync)
	for _, c := range colors {
		s.out(c)
	}
	s.set(s.pins &^ 0b111)
}

func (s *signal) frame() {
	s.set(s.pins &^ vsync)
	s.set(s.pins | vsync)
}

func TestDecode(t *testing.T) {
	s := &signal{d: display.New()}
	s.set(hsync | vsync)

	s.line(framebuffer.Red, framebuffer.Green, framebuffer.Blue)
	s.line(framebuffer.White, framebuffer.Cyan)
	s.line()
	s.line()

	// nothing is visible until the frame completes
	test.ExpectEquality(t, s.d.Stats().Frames, 0)
	test.ExpectEquality(t, s.d.Color(0, 0), framebuffer.Black)

	s.frame()

	st := s.d.Stats()
	test.ExpectEquality(t, st.Frames, 1)
	test.ExpectEquality(t, st.Lines, 2)
	test.ExpectEquality(t, st.Pixels, 5)

	test.ExpectEquality(t, s.d.Color(0, 0), framebuffer.Red)
	test.ExpectEquality(t, s.d.Color(1, 0), framebuffer.Green)
	test.ExpectEquality(t, s.d.Color(2, 0), framebuffer.Blue)
	test.ExpectEquality(t, s.d.Color(3, 0), framebuffer.Black)
	test.ExpectEquality(t, s.d.Color(0, 1), framebuffer.White)
	test.ExpectEquality(t, s.d.Color(1, 1), framebuffer.Cyan)
	test.ExpectEquality(t, s.d.Color(0, 2), framebuffer.Black)
	test.ExpectEquality(t, s.d.Color(-1, 0), framebuffer.Black)
	test.ExpectEquality(t, s.d.Color(0, framebuffer.ScreenHeight), framebuffer.Black)

	img := s.d.Frame()
	test.ExpectEquality(t, img.Bounds().Dx(), framebuffer.ScreenWidth)
	test.ExpectEquality(t, img.Bounds().Dy(), framebuffer.ScreenHeight)
	test.ExpectEquality(t, img.ColorIndexAt(1, 1), uint8(framebuffer.Cyan))
}

func TestSyncPeriods(t *testing.T) {
	s := &signal{d: display.New()}
	s.set(hsync | vsync)

	for f := 0; f < 3; f++ {
		for l := 0; l < 4; l++ {
			s.line(framebuffer.Yellow)
		}
		s.frame()
	}

	// every line is three pin changes and an out, plus blanking
	st := s.d.Stats()
	test.ExpectEquality(t, st.Frames, 3)
	test.ExpectEquality(t, st.LineTicks, uint64(4))
	test.ExpectEquality(t, st.FrameTicks, uint64(4*4+2))
	test.ExpectEquality(t, st.Lines, 4)
}

func TestClipping(t *testing.T) {
	s := &signal{d: display.New()}
	s.set(hsync | vsync)

	long := make([]framebuffer.Color, framebuffer.ScreenWidth+20)
	for i := range long {
		long[i] = framebuffer.Magenta
	}
	for l := 0; l < framebuffer.ScreenHeight+5; l++ {
		s.line(long...)
	}
	s.frame()

	st := s.d.Stats()
	test.ExpectEquality(t, st.Pixels, framebuffer.ScreenWidth*framebuffer.ScreenHeight)
	test.ExpectEquality(t, st.Lines, framebuffer.ScreenHeight+5)
	test.ExpectEquality(t, s.d.Color(framebuffer.ScreenWidth-1, framebuffer.ScreenHeight-1), framebuffer.Magenta)
}
