// Copyright 2021-2024 Sebastian Lederer. See the file LICENSE.md for details

package pio

import (
	"picovga/hardware/bus"
	"picovga/hardware/clocks"
)

// FIFODepth is the number of entries in a TX FIFO.
const FIFODepth = 4

// StateMachine is one of the four execution units of a Block. It
// implements Env for the program loaded into it.
type StateMachine struct {
	block *Block
	num   int

	prog Program
	cfg  Config

	enabled bool

	// 16.8 fixed point clock divider and the accumulator that spreads
	// program cycles over system ticks
	div clocks.Divider
	acc uint32

	tx []bus.Word

	osr        bus.Word
	shiftCount int

	// set for the cycle being executed when the program has to wait
	stalled bool

	// statistics
	Cycles      uint64
	StallCycles uint64
	Pulled      uint64

	// cycles spent waiting on an empty TX FIFO
	Starved uint64
}

func (sm *StateMachine) reset() {
	sm.osr = 0
	sm.shiftCount = 32
	sm.acc = 0
	sm.stalled = false
	if sm.prog != nil {
		sm.prog.Reset(sm)
	}
}

// Program returns the program loaded into the state machine.
func (sm *StateMachine) Program() Program {
	return sm.prog
}

// Enabled returns true when the state machine is running.
func (sm *StateMachine) Enabled() bool {
	return sm.enabled
}

// TxLevel is the number of words waiting in the TX FIFO.
func (sm *StateMachine) TxLevel() int {
	return len(sm.tx)
}

func (sm *StateMachine) push(v bus.Word) bool {
	if len(sm.tx) >= FIFODepth {
		return false
	}
	sm.tx = append(sm.tx, v)
	return true
}

func (sm *StateMachine) pop() (bus.Word, bool) {
	if len(sm.tx) == 0 {
		return 0, false
	}
	v := sm.tx[0]
	copy(sm.tx, sm.tx[1:])
	sm.tx = sm.tx[:len(sm.tx)-1]
	sm.Pulled++
	return v, true
}

func (sm *StateMachine) refill() bool {
	v, ok := sm.pop()
	if !ok {
		return false
	}
	sm.osr = v
	sm.shiftCount = 0
	return true
}

// clock advances the state machine by one system tick. The program is only
// stepped on the ticks the clock divider lets through.
func (sm *StateMachine) clock() {
	if !sm.enabled || sm.prog == nil {
		return
	}

	div := sm.div.Fixed()
	if div == 0 {
		div = 1 << 24
	}
	sm.acc += 256
	if sm.acc < div {
		return
	}
	sm.acc -= div

	// background autopull
	if sm.cfg.Autopull && sm.shiftCount >= sm.cfg.PullThreshold {
		sm.refill()
	}

	sm.stalled = false
	sm.prog.Step(sm)
	sm.Cycles++
	if sm.stalled {
		sm.StallCycles++
	}
}

func (sm *StateMachine) starve() {
	sm.stalled = true
	sm.Starved++
	sm.block.fdebug |= txstall << sm.num
}

// Pull implements the Env interface.
func (sm *StateMachine) Pull() bool {
	if sm.cfg.Autopull && sm.shiftCount < sm.cfg.PullThreshold {
		return true
	}
	if !sm.refill() {
		sm.starve()
		return false
	}
	return true
}

// OSR implements the Env interface.
func (sm *StateMachine) OSR() bus.Word {
	return sm.osr
}

// Out implements the Env interface. Bits are shifted out to the right.
func (sm *StateMachine) Out(bits int) (bus.Word, bool) {
	if sm.cfg.Autopull && sm.shiftCount >= sm.cfg.PullThreshold {
		if !sm.refill() {
			sm.starve()
			return 0, false
		}
	}
	mask := bus.Word(1)<<bits - 1
	v := sm.osr & mask
	sm.osr >>= bits
	sm.shiftCount += bits
	if sm.shiftCount > 32 {
		sm.shiftCount = 32
	}
	return v, true
}

// WaitIRQ implements the Env interface.
func (sm *StateMachine) WaitIRQ(n int) bool {
	if !sm.block.irqRaised(n) {
		sm.stalled = true
		return false
	}
	sm.block.irqClear(n)
	return true
}

// SetIRQ implements the Env interface.
func (sm *StateMachine) SetIRQ(n int) {
	sm.block.irqRaise(n)
}

// SetPins implements the Env interface.
func (sm *StateMachine) SetPins(v bus.Word) {
	sm.block.drive(sm.cfg.SetBase, sm.cfg.SetCount, v, false)
}

// OutPins implements the Env interface.
func (sm *StateMachine) OutPins(v bus.Word) {
	sm.block.drive(sm.cfg.OutBase, sm.cfg.OutCount, v, true)
}

// SideSet implements the Env interface.
func (sm *StateMachine) SideSet(v bus.Word) {
	sm.block.drive(sm.cfg.SideBase, sm.cfg.SideCount, v, false)
}
