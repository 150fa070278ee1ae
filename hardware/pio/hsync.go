// Copyright 2021-2024 Sebastian Lederer. See the file LICENSE.md for details

package pio

import (
	"picovga/hardware/bus"
)

// Horizontal timing in pixel clocks. The active and front porch periods are
// counted down from a value written to the TX FIFO before the state
// machine is enabled.
const (
	HActive     = 640
	HFrontPorch = 16
	HSyncPulse  = 96
	HBackPorch  = 48
	HTotal      = HActive + HFrontPorch + HSyncPulse + HBackPorch

	// initial count for the horizontal sequencer. the loop runs count+1
	// times
	HActiveCount = HActive + HFrontPorch - 1
)

type hstate int

const (
	hsLoad hstate = iota
	hsActive
	hsSync
	hsBack
	hsLine
)

var hstateNames = [...]string{"load", "active+frontporch", "sync", "backporch", "line"}

func (s hstate) String() string {
	return hstateNames[s]
}

// cycles spent in each fixed length state. the load at the top of the next
// line accounts for the last cycle of the back porch
var hstateCycles = [...]int{
	hsLoad: 1,
	hsSync: HSyncPulse,
	hsBack: HBackPorch - 2,
	hsLine: 1,
}

// HSync is the horizontal timing sequencer. It runs at the pixel clock and
// drives the horizontal sync pin through its set group: high through the
// active period and front porch, low for the sync pulse, high again for the
// back porch. At the end of the back porch it raises IRQLine.
type HSync struct {
	state     hstate
	x         bus.Word
	remaining int
}

// NewHSync returns the horizontal sequencer program.
func NewHSync() *HSync {
	return &HSync{}
}

// HSyncConfig is the state machine configuration for the horizontal
// sequencer.
func HSyncConfig() Config {
	return Config{
		SetBase:       PinHSync,
		SetCount:      1,
		Autopull:      true,
		PullThreshold: 32,
	}
}

func (h *HSync) Name() string {
	return "hsync"
}

func (h *HSync) State() string {
	return h.state.String()
}

func (h *HSync) Reset(env Env) {
	h.state = hsLoad
	h.x = 0
	h.remaining = 0
	env.SetPins(1)
}

func (h *HSync) enter(s hstate) {
	h.state = s
	h.remaining = hstateCycles[s]
}

func (h *HSync) Step(env Env) {
	switch h.state {
	case hsLoad:
		h.x = env.OSR()
		h.state = hsActive
	case hsActive:
		if h.x != 0 {
			h.x--
			return
		}
		h.enter(hsSync)
	case hsSync:
		env.SetPins(0)
		if h.remaining--; h.remaining == 0 {
			h.enter(hsBack)
		}
	case hsBack:
		env.SetPins(1)
		if h.remaining--; h.remaining == 0 {
			h.enter(hsLine)
		}
	case hsLine:
		env.SetIRQ(IRQLine)
		h.enter(hsLoad)
	}
}
