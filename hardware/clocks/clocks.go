// Copyright 2021-2024 Sebastian Lederer. See the file LICENSE.md for details

// Package clocks sets the core clock and derives the sequencer clock
// dividers from it.
package clocks

import (
	"github.com/pkg/errors"

	"picovga/hardware/bus"
	"picovga/logger"
)

// PLL_SYS register block.
const (
	PLLBase  = 0x40028000
	PLLSize  = 0x10
	PLL_CS   = 0x000
	PLL_PWR  = 0x004
	PLL_FBDV = 0x008
	PLL_PRIM = 0x00c

	PLL_CS_LOCK = 1 << 31
)

// Reference crystal frequency in MHz.
const RefMHz = 12

// Range accepted by SetSystemClock.
const (
	MinSystemClock = 100_000_000
	MaxSystemClock = 250_000_000
)

// DefaultSystemClock is the core frequency at reset.
const DefaultSystemClock = 125_000_000

// ErrClockRange is the cause of the error returned by SetSystemClock for a
// frequency outside [MinSystemClock, MaxSystemClock].
var ErrClockRange = errors.New("clock speed must be set between 100MHz and 250MHz")

// SetSystemClock programs the system PLL for hz. An out of range value is
// logged and skipped; the PLL keeps its previous setting and the returned
// error says why.
func SetSystemClock(h bus.Handler, hz int) error {
	if hz < MinSystemClock || hz > MaxSystemClock {
		logger.Logf("clocks", "invalid clock speed %d", hz)
		return errors.Wrapf(ErrClockRange, "%d Hz", hz)
	}

	var fbdiv, postdiv1, postdiv2 int
	if hz <= 130_000_000 {
		fbdiv = hz / 1_000_000
		postdiv1 = 6
		postdiv2 = 2
	} else {
		fbdiv = hz / 2_000_000
		postdiv1 = 3
		postdiv2 = 2
	}

	err := h.Write(bus.Word(postdiv1<<16|postdiv2<<12), PLLBase+PLL_PRIM)
	if err != nil {
		return errors.Wrap(err, "clocks")
	}
	err = h.Write(bus.Word(fbdiv), PLLBase+PLL_FBDV)
	if err != nil {
		return errors.Wrap(err, "clocks")
	}

	logger.Logf("clocks", "clock speed %d MHz", fbdiv*RefMHz/(postdiv1*postdiv2))
	return nil
}
