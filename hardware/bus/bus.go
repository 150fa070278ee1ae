// Copyright 2021-2024 Sebastian Lederer. See the file LICENSE.md for details

// Package bus models the memory-mapped register space. Every peripheral
// block (sequencers, DMA, clocks) and every RAM region is a Handler
// attached to a window of the address space. Software only ever talks to
// the hardware through a Handler, which lets an in-memory Registers value
// stand in for the real thing.
package bus

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"
)

// Word is a 32 bit register or memory cell.
type Word uint32

// WordBytes is the size of a Word in the address space.
const WordBytes = 4

// Handler is implemented by anything that can be mapped into the address
// space. Addresses passed to a Handler attached to a Bus are offsets from
// the start of its window.
type Handler interface {
	Read(addr Word) (Word, error)
	Write(value Word, addr Word) error
}

// ErrUnmapped is the cause of errors returned for accesses that fall
// outside every attached window.
var ErrUnmapped = errors.New("unmapped address")

type window struct {
	base Word
	size Word
	h    Handler
	name string
}

func (w window) contains(addr Word) bool {
	return addr >= w.base && addr-w.base < w.size
}

// Bus routes accesses to attached handlers.
type Bus struct {
	windows []window
}

// Attach maps h at [base, base+size). Overlapping windows are a
// programming error.
func (b *Bus) Attach(h Handler, name string, base Word, size Word) {
	for _, w := range b.windows {
		if base < w.base+w.size && w.base < base+size {
			panic(fmt.Sprintf("bus: %s at %08X overlaps %s at %08X", name, base, w.name, w.base))
		}
	}
	b.windows = append(b.windows, window{base: base, size: size, h: h, name: name})
	sort.Slice(b.windows, func(i, j int) bool { return b.windows[i].base < b.windows[j].base })
}

func (b *Bus) find(addr Word) (window, bool) {
	i := sort.Search(len(b.windows), func(i int) bool {
		return b.windows[i].base+b.windows[i].size > addr
	})
	if i < len(b.windows) && b.windows[i].contains(addr) {
		return b.windows[i], true
	}
	return window{}, false
}

func (b *Bus) Read(addr Word) (Word, error) {
	w, ok := b.find(addr)
	if !ok {
		return 0, errors.Wrapf(ErrUnmapped, "read %08X", addr)
	}
	return w.h.Read(addr - w.base)
}

func (b *Bus) Write(value Word, addr Word) error {
	w, ok := b.find(addr)
	if !ok {
		return errors.Wrapf(ErrUnmapped, "write %08X to %08X", value, addr)
	}
	return w.h.Write(value, addr-w.base)
}

// Set ORs bits into the register at addr. This is the read-modify-write
// the firmware uses to assert enable bits.
func Set(h Handler, addr Word, bits Word) error {
	v, err := h.Read(addr)
	if err != nil {
		return err
	}
	return h.Write(v|bits, addr)
}

// Clear removes bits from the register at addr.
func Clear(h Handler, addr Word, bits Word) error {
	v, err := h.Read(addr)
	if err != nil {
		return err
	}
	return h.Write(v&^bits, addr)
}
