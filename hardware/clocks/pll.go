// Copyright 2021-2024 Sebastian Lederer. See the file LICENSE.md for details

package clocks

import (
	"picovga/hardware/bus"
)

// PLL is the simulated system PLL. It reports itself locked at all times.
type PLL struct {
	fbdiv bus.Word
	prim  bus.Word
	pwr   bus.Word
}

// NewPLL returns a PLL in its reset configuration.
func NewPLL() *PLL {
	return &PLL{
		fbdiv: 125,
		prim:  6<<16 | 2<<12,
	}
}

func (p *PLL) Read(addr bus.Word) (bus.Word, error) {
	switch addr {
	case PLL_CS:
		return PLL_CS_LOCK | 1, nil
	case PLL_PWR:
		return p.pwr, nil
	case PLL_FBDV:
		return p.fbdiv, nil
	case PLL_PRIM:
		return p.prim, nil
	}
	return 0, nil
}

func (p *PLL) Write(value bus.Word, addr bus.Word) error {
	switch addr {
	case PLL_PWR:
		p.pwr = value
	case PLL_FBDV:
		p.fbdiv = value & 0xfff
	case PLL_PRIM:
		p.prim = value & (0x7<<16 | 0x7<<12)
	}
	return nil
}

// Frequency is the system clock produced by the current settings, in Hz.
func (p *PLL) Frequency() int {
	pd1 := int(p.prim>>16) & 0x7
	pd2 := int(p.prim>>12) & 0x7
	if pd1 == 0 || pd2 == 0 {
		return 0
	}
	return int(p.fbdiv) * RefMHz * 1_000_000 / (pd1 * pd2)
}
