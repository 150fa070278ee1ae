// Copyright 2021-2024 Sebastian Lederer. See the file LICENSE.md for details

// Package pio simulates a programmable sequencer block: four state
// machines sharing IRQ flags and a bank of output pins, each fed by its own
// TX FIFO and clocked through its own fractional divider. The video timing
// programs are found in hsync.go, vsync.go and serializer.go.
package pio

import (
	"github.com/pkg/errors"

	"picovga/hardware/bus"
	"picovga/hardware/clocks"
)

// Register map of PIO0. Offsets are from Base.
const (
	Base = 0x50200000
	Size = 0x148

	CTRL      = 0x000
	FSTAT     = 0x004
	FDEBUG    = 0x008
	FLEVEL    = 0x00c
	TXF0      = 0x010
	RXF0      = 0x020
	IRQ       = 0x030
	IRQ_FORCE = 0x034

	SM0_CLKDIV = 0x0c8
	SMStride   = 0x18
)

// CTRL fields.
const (
	CTRL_SM_ENABLE      = 0x00f
	CTRL_SM_RESTART     = 0x0f0
	CTRL_CLKDIV_RESTART = 0xf00
)

// FSTAT and FDEBUG fields, shifted by state machine number.
const (
	fstatTxFull  = 16
	fstatTxEmpty = 24
	txover       = 1 << 16
	txstall      = 1 << 24
)

// StateMachines is the number of state machines in a block.
const StateMachines = 4

// GPIO numbers driven by the video programs.
const (
	PinRed   = 0
	PinGreen = 1
	PinBlue  = 2
	PinHSync = 4
	PinVSync = 5
)

// Probe is notified of activity on the output pins.
type Probe interface {
	// PinsChanged is called whenever the level of any pin changes.
	PinsChanged(tick uint64, pins bus.Word)

	// PinsOut is called every time a state machine shifts data onto its
	// out pins, whether or not the levels change.
	PinsOut(tick uint64, pins bus.Word)
}

// Block is a simulated PIO block. It implements bus.Handler for its
// registers.
type Block struct {
	sm [StateMachines]StateMachine

	irq    uint8
	fdebug bus.Word
	pins   bus.Word

	tick   uint64
	probes []Probe
}

// NewBlock is the preferred method of initialisation for the Block type.
func NewBlock() *Block {
	b := &Block{}
	for i := range b.sm {
		b.sm[i].block = b
		b.sm[i].num = i
		b.sm[i].div = clocks.Divider{Int: 1}
		b.sm[i].tx = make([]bus.Word, 0, FIFODepth)
		b.sm[i].shiftCount = 32
	}
	return b
}

// Load installs a program in state machine n. The state machine is left
// disabled and its initial pin levels are applied.
func (b *Block) Load(n int, prog Program, cfg Config) error {
	if n < 0 || n >= StateMachines {
		return errors.Errorf("pio: no state machine %d", n)
	}
	if cfg.Autopull && (cfg.PullThreshold <= 0 || cfg.PullThreshold > 32) {
		return errors.Errorf("pio: invalid pull threshold %d", cfg.PullThreshold)
	}
	sm := &b.sm[n]
	sm.prog = prog
	sm.cfg = cfg
	sm.enabled = false
	sm.tx = sm.tx[:0]
	sm.reset()
	return nil
}

// AddProbe attaches an observer to the output pins.
func (b *Block) AddProbe(p Probe) {
	b.probes = append(b.probes, p)
}

// StateMachine returns state machine n.
func (b *Block) StateMachine(n int) *StateMachine {
	return &b.sm[n]
}

// Pins is the current level of every output pin.
func (b *Block) Pins() bus.Word {
	return b.pins
}

// Tick advances the block by one system clock.
func (b *Block) Tick() {
	b.tick++
	for i := range b.sm {
		b.sm[i].clock()
	}
}

// Ready reports whether the TX FIFO of state machine dreq can take another
// word. DREQ numbers 0 to 3 are the TX FIFOs.
func (b *Block) Ready(dreq int) bool {
	if dreq < 0 || dreq >= StateMachines {
		return false
	}
	return len(b.sm[dreq].tx) < FIFODepth
}

func (b *Block) drive(base int, count int, v bus.Word, out bool) {
	if count == 0 {
		return
	}
	mask := (bus.Word(1)<<count - 1) << base
	pins := b.pins&^mask | (v<<base)&mask
	changed := pins != b.pins
	b.pins = pins
	if changed {
		for _, p := range b.probes {
			p.PinsChanged(b.tick, pins)
		}
	}
	if out {
		for _, p := range b.probes {
			p.PinsOut(b.tick, pins)
		}
	}
}

func (b *Block) Read(addr bus.Word) (bus.Word, error) {
	switch {
	case addr == CTRL:
		var v bus.Word
		for i := range b.sm {
			if b.sm[i].enabled {
				v |= 1 << i
			}
		}
		return v, nil
	case addr == FSTAT:
		var v bus.Word
		for i := range b.sm {
			if len(b.sm[i].tx) >= FIFODepth {
				v |= 1 << (fstatTxFull + i)
			}
			if len(b.sm[i].tx) == 0 {
				v |= 1 << (fstatTxEmpty + i)
			}
			// RX FIFOs are never used and always empty
			v |= 1 << (8 + i)
		}
		return v, nil
	case addr == FDEBUG:
		return b.fdebug, nil
	case addr == FLEVEL:
		var v bus.Word
		for i := range b.sm {
			v |= bus.Word(len(b.sm[i].tx)) << (8 * i)
		}
		return v, nil
	case addr >= TXF0 && addr < RXF0:
		// TX FIFOs are write only
		return 0, nil
	case addr >= RXF0 && addr < IRQ:
		return 0, nil
	case addr == IRQ:
		return bus.Word(b.irq), nil
	case addr >= SM0_CLKDIV && addr < SM0_CLKDIV+StateMachines*SMStride:
		off := addr - SM0_CLKDIV
		if off%SMStride == 0 {
			return bus.Word(b.sm[off/SMStride].div.Register()), nil
		}
		return 0, nil
	}
	return 0, nil
}

func (b *Block) Write(value bus.Word, addr bus.Word) error {
	switch {
	case addr == CTRL:
		for i := range b.sm {
			if value&(1<<(4+i)) != 0 {
				b.sm[i].reset()
			}
			if value&(1<<(8+i)) != 0 {
				b.sm[i].acc = 0
			}
			b.sm[i].enabled = value&(1<<i) != 0
		}
	case addr == FDEBUG:
		// write one to clear
		b.fdebug &^= value
	case addr >= TXF0 && addr < RXF0:
		if addr%bus.WordBytes != 0 {
			return errors.Errorf("pio: unaligned FIFO write %08X", addr)
		}
		n := int(addr-TXF0) / bus.WordBytes
		if !b.sm[n].push(value) {
			b.fdebug |= txover << n
		}
	case addr == IRQ:
		// write one to clear
		b.irq &^= uint8(value)
	case addr == IRQ_FORCE:
		b.irq |= uint8(value)
	case addr >= SM0_CLKDIV && addr < SM0_CLKDIV+StateMachines*SMStride:
		off := addr - SM0_CLKDIV
		if off%SMStride == 0 {
			b.sm[off/SMStride].div = clocks.DividerFromRegister(uint32(value))
		}
	}
	return nil
}

// ClkDiv is the offset of the CLKDIV register of state machine n.
func ClkDiv(n int) bus.Word {
	return SM0_CLKDIV + bus.Word(n)*SMStride
}

// TxFIFO is the offset of the TX FIFO register of state machine n.
func TxFIFO(n int) bus.Word {
	return TXF0 + bus.Word(n)*bus.WordBytes
}
