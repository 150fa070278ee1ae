// Copyright 2021-2024 Sebastian Lederer. See the file LICENSE.md for details

package dma

import (
	"github.com/pkg/errors"

	"picovga/hardware/bus"
)

// Chain describes the pair of channels that loop over a frame buffer. The
// inner channel streams the frame to a peripheral, paced by its transfer
// request signal. When it completes it triggers the outer channel, which
// copies the frame address from BaseCell into the inner channel's
// READ_ADDR trigger alias, restarting it at word 0.
type Chain struct {
	Outer int
	Inner int

	// Frame is the address of the first word and Words the number of
	// words streamed per frame
	Frame bus.Word
	Words int

	// BaseCell is the address of a memory word holding Frame
	BaseCell bus.Word

	// Dest is the address every word is written to and Treq the request
	// signal pacing the inner channel
	Dest bus.Word
	Treq int
}

// InnerControl is the CTRL value of the inner channel.
func (c Chain) InnerControl() Control {
	return Control{
		Enable:       true,
		HighPriority: true,
		DataSize:     SizeWord,
		IncrRead:     true,
		ChainTo:      c.Outer,
		Treq:         c.Treq,
	}
}

// OuterControl is the CTRL value of the outer channel. Chaining to itself
// disables chaining.
func (c Chain) OuterControl() Control {
	return Control{
		Enable:       true,
		HighPriority: true,
		DataSize:     SizeWord,
		ChainTo:      c.Outer,
		Treq:         TreqUnpaced,
	}
}

// Configure programs both channels through h, which must map the DMA
// registers at Base. Nothing is triggered.
func (c Chain) Configure(h bus.Handler) error {
	if c.Outer == c.Inner {
		return errors.Errorf("dma chain: outer and inner are both channel %d", c.Outer)
	}
	for _, ch := range []int{c.Outer, c.Inner} {
		if ch < 0 || ch >= Channels {
			return errors.Errorf("dma chain: no channel %d", ch)
		}
	}
	if c.Words <= 0 {
		return errors.Errorf("dma chain: bad word count %d", c.Words)
	}

	writes := []struct {
		addr  bus.Word
		value bus.Word
	}{
		{c.BaseCell, c.Frame},

		// the inner read address is filled in by the outer channel
		{Base + Reg(c.Inner, READ_ADDR), 0},
		{Base + Reg(c.Inner, WRITE_ADDR), c.Dest},
		{Base + Reg(c.Inner, TRANS_COUNT), bus.Word(c.Words)},
		{Base + Reg(c.Inner, AL2_CTRL), c.InnerControl().Word()},

		{Base + Reg(c.Outer, READ_ADDR), c.BaseCell},
		{Base + Reg(c.Outer, WRITE_ADDR), Base + Reg(c.Inner, AL3_READ_ADDR_TRIG)},
		{Base + Reg(c.Outer, TRANS_COUNT), 1},
		{Base + Reg(c.Outer, AL1_CTRL), c.OuterControl().Word()},
	}
	for _, w := range writes {
		if err := h.Write(w.value, w.addr); err != nil {
			return errors.Wrap(err, "dma chain")
		}
	}
	return nil
}
