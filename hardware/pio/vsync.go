// Copyright 2021-2024 Sebastian Lederer. See the file LICENSE.md for details

package pio

import (
	"picovga/hardware/bus"
)

// Vertical timing in lines.
const (
	VActive    = 480
	VSyncPulse = 2
	VTotal     = 525

	// initial count for the vertical sequencer
	VActiveCount = VActive - 1

	// porch loop counters. each loop runs count+1 line waits. the pulse
	// starts as soon as the front porch loop ends, so the blank lines
	// before it number vFrontCount; the back porch loop is followed by one
	// more wait to bring the frame to VTotal lines
	vFrontCount = 9
	vBackCount  = 31
)

type vstate int

const (
	vsPull vstate = iota
	vsLoad
	vsActiveWait
	vsActiveIRQ
	vsActiveJmp
	vsFrontSet
	vsFrontWait
	vsFrontJmp
	vsSyncWait
	vsSyncHold
	vsBackSet
	vsBackWait
	vsBackJmp
	vsTrail
)

var vstateNames = [...]string{
	"pull", "load",
	"active", "active irq", "active jmp",
	"frontporch set", "frontporch", "frontporch jmp",
	"sync", "sync hold",
	"backporch set", "backporch", "backporch jmp",
	"trail",
}

func (s vstate) String() string {
	return vstateNames[s]
}

// VSync is the vertical timing sequencer. It advances once for every
// IRQLine raised by the horizontal sequencer, raises IRQVisible on each of
// the active lines and drives the vertical sync pin through side-set.
type VSync struct {
	state vstate
	x     bus.Word
	y     bus.Word
}

// NewVSync returns the vertical sequencer program.
func NewVSync() *VSync {
	return &VSync{}
}

// VSyncConfig is the state machine configuration for the vertical
// sequencer.
func VSyncConfig() Config {
	return Config{
		SideBase:      PinVSync,
		SideCount:     1,
		Autopull:      true,
		PullThreshold: 32,
	}
}

func (v *VSync) Name() string {
	return "vsync"
}

func (v *VSync) State() string {
	return v.state.String()
}

func (v *VSync) Reset(env Env) {
	v.state = vsPull
	v.x = 0
	v.y = 0
	env.SideSet(1)
}

func (v *VSync) Step(env Env) {
	switch v.state {
	case vsPull:
		if env.Pull() {
			v.state = vsLoad
		}
	case vsLoad:
		v.x = env.OSR()
		v.state = vsActiveWait

	// active lines
	case vsActiveWait:
		if env.WaitIRQ(IRQLine) {
			v.state = vsActiveIRQ
		}
	case vsActiveIRQ:
		env.SetIRQ(IRQVisible)
		v.state = vsActiveJmp
	case vsActiveJmp:
		if v.x != 0 {
			v.x--
			v.state = vsActiveWait
		} else {
			v.state = vsFrontSet
		}

	// front porch
	case vsFrontSet:
		v.y = vFrontCount
		v.state = vsFrontWait
	case vsFrontWait:
		if env.WaitIRQ(IRQLine) {
			v.state = vsFrontJmp
		}
	case vsFrontJmp:
		if v.y != 0 {
			v.y--
			v.state = vsFrontWait
		} else {
			v.state = vsSyncWait
		}

	// sync pulse. side-set applies even while the wait stalls
	case vsSyncWait:
		env.SideSet(0)
		if env.WaitIRQ(IRQLine) {
			v.state = vsSyncHold
		}
	case vsSyncHold:
		if env.WaitIRQ(IRQLine) {
			v.state = vsBackSet
		}

	// back porch
	case vsBackSet:
		v.y = vBackCount
		v.state = vsBackWait
	case vsBackWait:
		env.SideSet(1)
		if env.WaitIRQ(IRQLine) {
			v.state = vsBackJmp
		}
	case vsBackJmp:
		if v.y != 0 {
			v.y--
			v.state = vsBackWait
		} else {
			v.state = vsTrail
		}
	case vsTrail:
		if env.WaitIRQ(IRQLine) {
			v.state = vsLoad
		}
	}
}
