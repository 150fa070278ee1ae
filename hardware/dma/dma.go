// Copyright 2021-2024 Sebastian Lederer. See the file LICENSE.md for details

// Package dma simulates the DMA engine and configures the two channel
// chain that streams the framebuffer to the pixel serializer.
package dma

import (
	"picovga/hardware/bus"
	"picovga/logger"
)

// Register map. Offsets are from Base.
const (
	Base = 0x50000000
	Size = 0x800

	Channels      = 12
	ChannelStride = 0x40

	READ_ADDR            = 0x00
	WRITE_ADDR           = 0x04
	TRANS_COUNT          = 0x08
	CTRL_TRIG            = 0x0c
	AL1_CTRL             = 0x10
	AL1_READ_ADDR        = 0x14
	AL1_WRITE_ADDR       = 0x18
	AL1_TRANS_COUNT_TRIG = 0x1c
	AL2_CTRL             = 0x20
	AL2_TRANS_COUNT      = 0x24
	AL2_READ_ADDR        = 0x28
	AL2_WRITE_ADDR_TRIG  = 0x2c
	AL3_CTRL             = 0x30
	AL3_WRITE_ADDR       = 0x34
	AL3_TRANS_COUNT      = 0x38
	AL3_READ_ADDR_TRIG   = 0x3c

	MULTI_CHAN_TRIGGER = 0x430
	CHAN_ABORT         = 0x444
)

// Reg is the offset of register reg of channel ch.
func Reg(ch int, reg bus.Word) bus.Word {
	return bus.Word(ch)*ChannelStride + reg
}

type register int

const (
	regRead register = iota
	regWrite
	regCount
	regCtrl
)

// the four aliases of the channel registers. the last register of each
// alias is a trigger
var aliases = [4][4]register{
	{regRead, regWrite, regCount, regCtrl},
	{regCtrl, regRead, regWrite, regCount},
	{regCtrl, regCount, regRead, regWrite},
	{regCtrl, regWrite, regCount, regRead},
}

// Pacer tells the engine whether the peripheral behind a transfer request
// signal can take data.
type Pacer interface {
	Ready(dreq int) bool
}

// Channel is one DMA channel.
type Channel struct {
	readAddr  bus.Word
	writeAddr bus.Word
	count     bus.Word
	remaining bus.Word
	ctrl      bus.Word
	busy      bool

	// statistics
	Transfers   uint64
	Completions uint64
	Aborts      uint64
}

// Busy returns true while the channel has transfers outstanding.
func (c *Channel) Busy() bool {
	return c.busy
}

// ReadAddr is the address of the next read.
func (c *Channel) ReadAddr() bus.Word {
	return c.readAddr
}

// Remaining is the number of transfers left before the channel completes.
func (c *Channel) Remaining() bus.Word {
	return c.remaining
}

// Engine is the DMA controller. It implements bus.Handler for its
// registers and moves data over the bus it is given.
type Engine struct {
	ch    [Channels]Channel
	mem   bus.Handler
	pacer Pacer

	// round robin position
	next int
}

// NewEngine is the preferred method of initialisation for the Engine type.
// Transfers are made over mem and paced by pacer.
func NewEngine(mem bus.Handler, pacer Pacer) *Engine {
	return &Engine{mem: mem, pacer: pacer}
}

// Channel returns channel n.
func (e *Engine) Channel(n int) *Channel {
	return &e.ch[n]
}

func (e *Engine) trigger(n int) {
	c := &e.ch[n]
	if c.busy {
		return
	}
	if c.ctrl&(1<<ctrlEN) == 0 {
		return
	}
	c.remaining = c.count
	if c.remaining == 0 {
		return
	}
	c.busy = true
}

func (e *Engine) ready(c *Channel) bool {
	treq := int(c.ctrl>>ctrlTreqSel) & 0x3f
	if treq == TreqUnpaced {
		return true
	}
	return e.pacer != nil && e.pacer.Ready(treq)
}

// Tick performs at most one transfer. Channels take turns, high priority
// channels first.
func (e *Engine) Tick() {
	for _, high := range []bool{true, false} {
		for i := 0; i < Channels; i++ {
			n := (e.next + i) % Channels
			c := &e.ch[n]
			if !c.busy || (c.ctrl&(1<<ctrlHighPriority) != 0) != high || !e.ready(c) {
				continue
			}
			e.next = (n + 1) % Channels
			e.transfer(n)
			return
		}
	}
}

func (e *Engine) transfer(n int) {
	c := &e.ch[n]
	ctrl := ParseControl(c.ctrl)

	v, err := e.mem.Read(c.readAddr)
	if err != nil {
		logger.Logf("dma", "channel %d: %v", n, err)
		c.ctrl |= 1<<ctrlReadError | 1<<ctrlAHBError
		c.busy = false
		return
	}
	err = e.mem.Write(v, c.writeAddr)
	if err != nil {
		logger.Logf("dma", "channel %d: %v", n, err)
		c.ctrl |= 1<<ctrlWriteError | 1<<ctrlAHBError
		c.busy = false
		return
	}

	size := bus.Word(1) << ctrl.DataSize
	if ctrl.IncrRead {
		c.readAddr += size
	}
	if ctrl.IncrWrite {
		c.writeAddr += size
	}
	c.Transfers++

	// the write may have retriggered this channel through its own
	// registers. that only happens once it has completed
	c.remaining--
	if c.remaining > 0 {
		return
	}
	c.busy = false
	c.Completions++
	if ctrl.ChainTo != n {
		e.trigger(ctrl.ChainTo)
	}
}

func (e *Engine) Read(addr bus.Word) (bus.Word, error) {
	switch addr {
	case MULTI_CHAN_TRIGGER, CHAN_ABORT:
		return 0, nil
	}
	if addr >= Channels*ChannelStride {
		return 0, nil
	}
	c := &e.ch[addr/ChannelStride]
	off := addr % ChannelStride
	switch aliases[off/16][(off%16)/4] {
	case regRead:
		return c.readAddr, nil
	case regWrite:
		return c.writeAddr, nil
	case regCount:
		return c.remaining, nil
	case regCtrl:
		return c.ctrl | bit(c.busy, ctrlBusy), nil
	}
	return 0, nil
}

func (e *Engine) Write(value bus.Word, addr bus.Word) error {
	switch addr {
	case MULTI_CHAN_TRIGGER:
		for n := 0; n < Channels; n++ {
			if value&(1<<n) != 0 {
				e.trigger(n)
			}
		}
		return nil
	case CHAN_ABORT:
		for n := 0; n < Channels; n++ {
			if value&(1<<n) != 0 && e.ch[n].busy {
				e.ch[n].busy = false
				e.ch[n].Aborts++
			}
		}
		return nil
	}
	if addr >= Channels*ChannelStride {
		return nil
	}

	n := int(addr / ChannelStride)
	c := &e.ch[n]
	off := addr % ChannelStride
	switch aliases[off/16][(off%16)/4] {
	case regRead:
		c.readAddr = value
	case regWrite:
		c.writeAddr = value
	case regCount:
		c.count = value
		if !c.busy {
			c.remaining = value
		}
	case regCtrl:
		// status bits are read only. errors are cleared by writing them
		errs := value & (1<<ctrlReadError | 1<<ctrlWriteError)
		c.ctrl = value&^(1<<ctrlBusy|1<<ctrlAHBError|1<<ctrlReadError|1<<ctrlWriteError) |
			c.ctrl&(1<<ctrlReadError|1<<ctrlWriteError)&^errs
		if c.ctrl&(1<<ctrlReadError|1<<ctrlWriteError) != 0 {
			c.ctrl |= 1 << ctrlAHBError
		}
	}

	// the last register of each alias triggers the channel
	if off%16 == 12 {
		e.trigger(n)
	}
	return nil
}
