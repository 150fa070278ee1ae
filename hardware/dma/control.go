// Copyright 2021-2024 Sebastian Lederer. See the file LICENSE.md for details

package dma

import (
	"picovga/hardware/bus"
)

// Bit positions in a channel CTRL register.
const (
	ctrlEN           = 0
	ctrlHighPriority = 1
	ctrlDataSize     = 2
	ctrlIncrRead     = 4
	ctrlIncrWrite    = 5
	ctrlRingSize     = 6
	ctrlRingSel      = 10
	ctrlChainTo      = 11
	ctrlTreqSel      = 15
	ctrlIRQQuiet     = 21
	ctrlBusy         = 24
	ctrlWriteError   = 29
	ctrlReadError    = 30
	ctrlAHBError     = 31
)

// Transfer sizes.
const (
	SizeByte     = 0
	SizeHalfword = 1
	SizeWord     = 2
)

// Transfer request signals.
const (
	TreqPIO0TX0 = 0
	TreqPIO0TX1 = 1
	TreqPIO0TX2 = 2
	TreqPIO0TX3 = 3
	TreqUnpaced = 0x3f
)

// Control is the unpacked form of a channel CTRL register.
type Control struct {
	Enable       bool
	HighPriority bool
	DataSize     int
	IncrRead     bool
	IncrWrite    bool
	RingSize     int
	RingSel      bool
	ChainTo      int
	Treq         int
	IRQQuiet     bool
}

func bit(b bool, pos int) bus.Word {
	if b {
		return 1 << pos
	}
	return 0
}

// Word packs the control fields into a register value.
func (c Control) Word() bus.Word {
	return bit(c.IRQQuiet, ctrlIRQQuiet) |
		bus.Word(c.Treq&0x3f)<<ctrlTreqSel |
		bus.Word(c.ChainTo&0xf)<<ctrlChainTo |
		bit(c.RingSel, ctrlRingSel) |
		bus.Word(c.RingSize&0xf)<<ctrlRingSize |
		bit(c.IncrWrite, ctrlIncrWrite) |
		bit(c.IncrRead, ctrlIncrRead) |
		bus.Word(c.DataSize&0x3)<<ctrlDataSize |
		bit(c.HighPriority, ctrlHighPriority) |
		bit(c.Enable, ctrlEN)
}

// ParseControl unpacks a CTRL register value. Status bits are ignored.
func ParseControl(w bus.Word) Control {
	return Control{
		Enable:       w&(1<<ctrlEN) != 0,
		HighPriority: w&(1<<ctrlHighPriority) != 0,
		DataSize:     int(w>>ctrlDataSize) & 0x3,
		IncrRead:     w&(1<<ctrlIncrRead) != 0,
		IncrWrite:    w&(1<<ctrlIncrWrite) != 0,
		RingSize:     int(w>>ctrlRingSize) & 0xf,
		RingSel:      w&(1<<ctrlRingSel) != 0,
		ChainTo:      int(w>>ctrlChainTo) & 0xf,
		Treq:         int(w>>ctrlTreqSel) & 0x3f,
		IRQQuiet:     w&(1<<ctrlIRQQuiet) != 0,
	}
}
