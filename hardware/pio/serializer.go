// Copyright 2021-2024 Sebastian Lederer. See the file LICENSE.md for details

package pio

import (
	"picovga/hardware/bus"
)

const (
	// bits shifted onto the colour pins for each pixel
	PixelBits = 3

	// serializer cycles for each pixel: out, a nop lasting two cycles and
	// the loop jump
	PixelCycles = 4

	// initial count for the serializer
	PixelCount = HActive - 1
)

type sstate int

const (
	srPull sstate = iota
	srLoad
	srLine
	srWait
	srOut
	srNop
	srJmp
)

var sstateNames = [...]string{"pull", "load", "line", "wait", "out", "nop", "jmp"}

func (s sstate) String() string {
	return sstateNames[s]
}

// Serializer shifts packed pixels out of its TX FIFO onto the three colour
// pins. It waits for IRQVisible, emits one scanline of pixels and then
// blanks the colour pins through side-set until the next visible line.
//
// The TX FIFO is fed by DMA. An empty FIFO stalls the serializer mid line.
type Serializer struct {
	state     sstate
	x         bus.Word
	y         bus.Word
	remaining int
}

// NewSerializer returns the pixel serializer program.
func NewSerializer() *Serializer {
	return &Serializer{}
}

// SerializerConfig is the state machine configuration for the pixel
// serializer. Autopull happens after ten pixels, leaving the top two bits
// of every word unused.
func SerializerConfig() Config {
	return Config{
		OutBase:       PinRed,
		OutCount:      PixelBits,
		SideBase:      PinRed,
		SideCount:     PixelBits,
		Autopull:      true,
		PullThreshold: 30,
	}
}

func (s *Serializer) Name() string {
	return "serializer"
}

func (s *Serializer) State() string {
	return s.state.String()
}

func (s *Serializer) Reset(env Env) {
	s.state = srPull
	s.x = 0
	s.y = 0
	s.remaining = 0
	env.SideSet(0)
}

func (s *Serializer) Step(env Env) {
	switch s.state {
	case srPull:
		if env.Pull() {
			s.state = srLoad
		}
	case srLoad:
		s.y = env.OSR()
		s.state = srLine
	case srLine:
		env.SideSet(0)
		s.x = s.y
		s.state = srWait
	case srWait:
		if env.WaitIRQ(IRQVisible) {
			s.state = srOut
		}
	case srOut:
		v, ok := env.Out(PixelBits)
		if !ok {
			return
		}
		env.OutPins(v)
		s.state = srNop
		s.remaining = PixelCycles - 2
	case srNop:
		if s.remaining--; s.remaining == 0 {
			s.state = srJmp
		}
	case srJmp:
		if s.x != 0 {
			s.x--
			s.state = srOut
		} else {
			s.state = srLine
		}
	}
}
