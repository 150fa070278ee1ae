// Copyright 2021-2024 Sebastian Lederer. See the file LICENSE.md for details

package bus

import (
	"github.com/pkg/errors"
)

// Memory is word addressed RAM.
type Memory struct {
	ram []Word
}

// NewMemory allocates zero filled RAM of the given number of words.
func NewMemory(sizewords int) *Memory {
	return &Memory{ram: make([]Word, sizewords)}
}

// Size of the memory in bytes.
func (m *Memory) Size() Word {
	return Word(len(m.ram) * WordBytes)
}

func (m *Memory) wordAddr(byteaddr Word) (int, error) {
	if byteaddr%WordBytes != 0 {
		return 0, errors.Errorf("unaligned address %08X", byteaddr)
	}
	wordaddr := int(byteaddr / WordBytes)
	if wordaddr >= len(m.ram) {
		return 0, errors.Errorf("invalid address %08X", byteaddr)
	}
	return wordaddr, nil
}

func (m *Memory) Read(byteaddr Word) (Word, error) {
	wordaddr, err := m.wordAddr(byteaddr)
	if err != nil {
		return 0, err
	}
	return m.ram[wordaddr], nil
}

func (m *Memory) Write(value Word, byteaddr Word) error {
	wordaddr, err := m.wordAddr(byteaddr)
	if err != nil {
		return err
	}
	m.ram[wordaddr] = value
	return nil
}
