// Copyright 2021-2024 Sebastian Lederer. See the file LICENSE.md for details

// Package vga starts and stops video output and assembles the simulated
// machine it runs on.
package vga

import (
	"github.com/pkg/errors"

	"picovga/framebuffer"
	"picovga/hardware/bus"
	"picovga/hardware/dma"
	"picovga/hardware/pio"
)

// State machine and DMA channel assignment.
const (
	SMHSync      = 0
	SMVSync      = 1
	SMSerializer = 2

	OuterChannel = 0
	InnerChannel = 1
)

// sequencer enable bits in the PIO CTRL register
const smEnable = 1<<SMHSync | 1<<SMVSync | 1<<SMSerializer

// Controller starts and stops the sequencers and the DMA chain. It only
// touches the hardware through a bus.Handler, which must map the PIO
// registers at pio.Base and the DMA registers at dma.Base.
type Controller struct {
	regs    bus.Handler
	running bool

	// initial counts for the three sequencers
	HCount     bus.Word
	VCount     bus.Word
	PixelCount bus.Word
}

// NewController is the preferred method of initialisation for the
// Controller type.
func NewController(regs bus.Handler) *Controller {
	return &Controller{
		regs:       regs,
		HCount:     pio.HActiveCount,
		VCount:     framebuffer.ScreenHeight - 1,
		PixelCount: framebuffer.ScreenWidth - 1,
	}
}

// Running returns true between Start and Stop.
func (c *Controller) Running() bool {
	return c.running
}

// Start primes the sequencers with their counts, enables them and then
// triggers the outer DMA channel. The sequencers are enabled first so that
// the serializer is waiting when the first word arrives. Calling Start
// while running does nothing.
func (c *Controller) Start() error {
	if c.running {
		return nil
	}

	counts := []struct {
		sm    int
		count bus.Word
	}{
		{SMHSync, c.HCount},
		{SMVSync, c.VCount},
		{SMSerializer, c.PixelCount},
	}
	for _, p := range counts {
		if err := c.regs.Write(p.count, pio.Base+pio.TxFIFO(p.sm)); err != nil {
			return errors.Wrap(err, "vga start")
		}
	}

	if err := bus.Set(c.regs, pio.Base+pio.CTRL, smEnable); err != nil {
		return errors.Wrap(err, "vga start")
	}
	if err := bus.Set(c.regs, dma.Base+dma.MULTI_CHAN_TRIGGER, 1<<OuterChannel); err != nil {
		return errors.Wrap(err, "vga start")
	}

	c.running = true
	return nil
}

// Stop aborts both DMA channels and then disables the sequencers. Nothing
// is drained and the state machines are not reset, so a later Start
// resumes from wherever they stopped.
func (c *Controller) Stop() error {
	if err := bus.Set(c.regs, dma.Base+dma.CHAN_ABORT, 1<<OuterChannel|1<<InnerChannel); err != nil {
		return errors.Wrap(err, "vga stop")
	}
	if err := bus.Clear(c.regs, pio.Base+pio.CTRL, smEnable); err != nil {
		return errors.Wrap(err, "vga stop")
	}
	c.running = false
	return nil
}
