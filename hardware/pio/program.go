// Copyright 2021-2024 Sebastian Lederer. See the file LICENSE.md for details

package pio

import (
	"picovga/hardware/bus"
)

// Env is the execution context a sequencer program runs in. Every method
// that can stall returns false when the state machine has to wait; the
// program then stays in its current state and tries again next cycle.
type Env interface {
	// Pull moves the next TX FIFO word into the OSR. With autopull enabled
	// it does nothing while the OSR still holds unshifted data.
	Pull() bool

	// OSR is the current content of the output shift register.
	OSR() bus.Word

	// Out shifts bits out of the OSR, refilling it from the TX FIFO first
	// when autopull is enabled and the threshold has been reached.
	Out(bits int) (bus.Word, bool)

	// WaitIRQ waits for IRQ flag n to be raised and clears it.
	WaitIRQ(n int) bool

	// SetIRQ raises IRQ flag n.
	SetIRQ(n int)

	// SetPins drives the set pin group.
	SetPins(v bus.Word)

	// OutPins drives the out pin group.
	OutPins(v bus.Word)

	// SideSet drives the side-set pin group.
	SideSet(v bus.Word)
}

// Program is a sequencer program written as a finite state machine. Step
// executes one state machine cycle.
type Program interface {
	Name() string
	Reset(env Env)
	Step(env Env)
	State() string
}

// Config is the pin mapping and shift configuration of a state machine.
type Config struct {
	SetBase   int
	SetCount  int
	OutBase   int
	OutCount  int
	SideBase  int
	SideCount int

	Autopull      bool
	PullThreshold int
}
