// Copyright 2021-2024 Sebastian Lederer. See the file LICENSE.md for details

package vga

import (
	"context"

	"github.com/pkg/errors"

	"picovga/framebuffer"
	"picovga/hardware/bus"
	"picovga/hardware/clocks"
	"picovga/hardware/dma"
	"picovga/hardware/pio"
	"picovga/logger"
)

// Memory map of the simulated machine.
const (
	RAMBase = 0x20000000

	// the frame buffer sits at the start of RAM, followed by a small
	// region for variables. the first of those holds the frame buffer
	// address for the outer DMA channel
	FrameBase = RAMBase
	VarBase   = FrameBase + framebuffer.Words*bus.WordBytes
	VarWords  = 64
	BaseCell  = VarBase
)

// how often Run checks its context
const runCheck = 4096

// Machine is a simulated microcontroller with everything video output
// needs. All parts are clocked from one system clock by Tick.
type Machine struct {
	Profile clocks.Profile

	Bus   bus.Bus
	Frame *framebuffer.Framebuffer
	Vars  *bus.Memory
	PLL   *clocks.PLL
	PIO   *pio.Block
	DMA   *dma.Engine

	Controller *Controller

	ticks uint64
}

// NewMachine is the preferred method of initialisation for the Machine
// type. The machine is powered but nothing has been configured; see Boot.
func NewMachine(p clocks.Profile) *Machine {
	m := &Machine{
		Profile: p,
		Frame:   framebuffer.New(),
		Vars:    bus.NewMemory(VarWords),
		PLL:     clocks.NewPLL(),
		PIO:     pio.NewBlock(),
	}
	m.DMA = dma.NewEngine(&m.Bus, m.PIO)

	m.Bus.Attach(m.Frame, "framebuffer", FrameBase, m.Frame.Size())
	m.Bus.Attach(m.Vars, "vars", VarBase, m.Vars.Size())
	m.Bus.Attach(m.PLL, "pll_sys", clocks.PLLBase, clocks.PLLSize)
	m.Bus.Attach(m.PIO, "pio0", pio.Base, pio.Size)
	m.Bus.Attach(m.DMA, "dma", dma.Base, dma.Size)

	m.Controller = NewController(&m.Bus)
	return m
}

// Chain is the DMA chain feeding the serializer from the frame buffer.
func Chain() dma.Chain {
	return dma.Chain{
		Outer:    OuterChannel,
		Inner:    InnerChannel,
		Frame:    FrameBase,
		Words:    framebuffer.Words,
		BaseCell: BaseCell,
		Dest:     pio.Base + pio.TxFIFO(SMSerializer),
		Treq:     dma.TreqPIO0TX2,
	}
}

// Boot sets the core clock for the profile, loads the three sequencer
// programs with dividers for the resulting clock and configures the DMA
// chain. A rejected core clock is logged and the reset clock is kept.
func (m *Machine) Boot() error {
	if m.Profile.SystemClock != 0 {
		err := clocks.SetSystemClock(&m.Bus, m.Profile.SystemClock)
		if err != nil {
			logger.Logf("vga", "keeping %d Hz: %v", m.PLL.Frequency(), err)
		}
	}
	sys := m.PLL.Frequency()

	progs := []struct {
		sm   int
		prog pio.Program
		cfg  pio.Config
		freq int
	}{
		{SMHSync, pio.NewHSync(), pio.HSyncConfig(), m.Profile.HSync},
		{SMVSync, pio.NewVSync(), pio.VSyncConfig(), m.Profile.VSync},
		{SMSerializer, pio.NewSerializer(), pio.SerializerConfig(), m.Profile.Serializer},
	}
	for _, p := range progs {
		div, err := clocks.NewDivider(sys, p.freq)
		if err != nil {
			return errors.Wrapf(err, "%s", p.prog.Name())
		}
		err = m.PIO.Load(p.sm, p.prog, p.cfg)
		if err != nil {
			return err
		}
		err = m.Bus.Write(bus.Word(div.Register()), pio.Base+pio.ClkDiv(p.sm))
		if err != nil {
			return errors.Wrapf(err, "%s", p.prog.Name())
		}
		logger.Logf("vga", "%s: %d Hz, divider %d+%d/256", p.prog.Name(), p.freq, div.Int, div.Frac)
	}

	return Chain().Configure(&m.Bus)
}

// Ticks is the number of system clocks since the machine was created.
func (m *Machine) Ticks() uint64 {
	return m.ticks
}

// AddProbe attaches an observer to the output pins.
func (m *Machine) AddProbe(p pio.Probe) {
	m.PIO.AddProbe(p)
}

// Tick advances the machine by one system clock.
func (m *Machine) Tick() {
	m.ticks++
	m.PIO.Tick()
	m.DMA.Tick()
}

// TicksPerFrame is the number of system clocks in one video frame, going by
// the divider of the horizontal sequencer.
func (m *Machine) TicksPerFrame() int {
	div := clocks.DividerFromRegister(uint32(mustRead(m.PIO, pio.ClkDiv(SMHSync))))
	cycles := uint64(pio.HTotal * pio.VTotal)
	return int((cycles*uint64(div.Fixed()) + 255) / 256)
}

func mustRead(h bus.Handler, addr bus.Word) bus.Word {
	v, err := h.Read(addr)
	if err != nil {
		panic(err)
	}
	return v
}

// RunFrame advances the machine by one video frame.
func (m *Machine) RunFrame() {
	for i := m.TicksPerFrame(); i > 0; i-- {
		m.Tick()
	}
}

// Run advances the machine by n system clocks or until ctx is done.
func (m *Machine) Run(ctx context.Context, n int) error {
	for i := 0; i < n; i++ {
		if i%runCheck == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		m.Tick()
	}
	return nil
}
