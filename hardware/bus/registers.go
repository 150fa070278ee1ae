// Copyright 2021-2024 Sebastian Lederer. See the file LICENSE.md for details

package bus

// Access records a single write to a Registers value.
type Access struct {
	Addr  Word
	Value Word
}

// Registers is a plain register file. Unwritten cells read as zero. Every
// write is recorded, so a Registers value can be used as a mock of a real
// peripheral.
type Registers struct {
	cells  map[Word]Word
	Writes []Access
}

// NewRegisters is the preferred method of initialisation for the Registers
// type.
func NewRegisters() *Registers {
	return &Registers{cells: make(map[Word]Word)}
}

func (r *Registers) Read(addr Word) (Word, error) {
	return r.cells[addr], nil
}

func (r *Registers) Write(value Word, addr Word) error {
	r.cells[addr] = value
	r.Writes = append(r.Writes, Access{Addr: addr, Value: value})
	return nil
}

// Peek returns the value at addr without going through the Handler
// interface.
func (r *Registers) Peek(addr Word) Word {
	return r.cells[addr]
}

// WritesTo returns every value written to addr, oldest first.
func (r *Registers) WritesTo(addr Word) []Word {
	var v []Word
	for _, a := range r.Writes {
		if a.Addr == addr {
			v = append(v, a.Value)
		}
	}
	return v
}
