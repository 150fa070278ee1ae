// Copyright 2021-2024 Sebastian Lederer. See the file LICENSE.md for details

package clocks

import (
	"github.com/pkg/errors"
)

// Profile is a build time choice of core clock and sequencer clocks.
type Profile struct {
	Name string

	// core clock. zero leaves the clock at its reset value
	SystemClock int

	HSync      int
	VSync      int
	Serializer int
}

// The two supported profiles.
var (
	Standard = Profile{
		Name:       "standard",
		HSync:      25_175_000,
		VSync:      125_000_000,
		Serializer: 100_700_000,
	}

	// TODO: the overclocked hsync rate is half the pixel clock; confirm on
	// hardware that line length is still 800 pixel clocks.
	Overclocked = Profile{
		Name:        "overclocked",
		SystemClock: 250_000_000,
		HSync:       12_587_500,
		VSync:       125_000_000,
		Serializer:  113_287_500,
	}
)

// Divider is a sequencer clock divider in 16.8 fixed point, as held in a
// state machine's CLKDIV register.
type Divider struct {
	Int  uint16
	Frac uint8
}

// Fixed returns the divider as a single 16.8 fixed point value.
func (d Divider) Fixed() uint32 {
	return uint32(d.Int)<<8 | uint32(d.Frac)
}

// NewDivider returns the divider that gets closest to freq from sys.
func NewDivider(sys int, freq int) (Divider, error) {
	if freq <= 0 || sys <= 0 {
		return Divider{}, errors.Errorf("invalid frequency %d from %d", freq, sys)
	}
	if freq > sys {
		return Divider{}, errors.Errorf("frequency %d is above the system clock %d", freq, sys)
	}

	fixed := (uint64(sys)*256 + uint64(freq)/2) / uint64(freq)
	if fixed>>8 > 0xffff {
		return Divider{}, errors.Errorf("frequency %d too slow for system clock %d", freq, sys)
	}
	return Divider{Int: uint16(fixed >> 8), Frac: uint8(fixed)}, nil
}

// Register is the divider as laid out in a state machine's CLKDIV
// register.
func (d Divider) Register() uint32 {
	return uint32(d.Int)<<16 | uint32(d.Frac)<<8
}

// DividerFromRegister is the inverse of Register.
func DividerFromRegister(v uint32) Divider {
	return Divider{Int: uint16(v >> 16), Frac: uint8(v >> 8)}
}
