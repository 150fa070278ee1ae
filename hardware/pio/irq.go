// Copyright 2021-2024 Sebastian Lederer. See the file LICENSE.md for details

package pio

// The block has eight IRQ flags shared by all state machines. The video
// programs use flag 0 for the end of every line and flag 1 for the start of
// every visible line.
const (
	IRQLine    = 0
	IRQVisible = 1
)

func (b *Block) irqRaised(n int) bool {
	return b.irq&(1<<(n&7)) != 0
}

func (b *Block) irqRaise(n int) {
	b.irq |= 1 << (n & 7)
}

func (b *Block) irqClear(n int) {
	b.irq &^= 1 << (n & 7)
}
