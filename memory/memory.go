// Package memory provides the 4K of RAM within which the
// CHIP-8 interpreter executes its programs.
//
// Addresses wrap: every access is taken modulo the 4096 byte
// address space, so nothing a program does can reach outside it.
package memory

import (
	"errors"
	"fmt"
	"os"
)

const (
	// Size is the number of addressable bytes.
	Size = 4096

	// Mask is applied to every address before it is used.
	Mask = Size - 1
)

var (
	// ErrTooLarge is returned when a block of data will not fit
	// between its load address and the end of RAM.
	ErrTooLarge = errors.New("data too large for memory")
)

// Memory provides 4K bytes array memory.
type Memory struct {
	buf [Size]uint8
}

// Set sets a byte at addr of memory.
func (m *Memory) Set(addr uint16, value uint8) {
	m.buf[addr&Mask] = value
}

// Get returns a byte at addr of memory.
func (m *Memory) Get(addr uint16) uint8 {
	return m.buf[addr&Mask]
}

// GetU16 returns the big-endian word stored at the given address,
// which is how CHIP-8 instructions are laid out.
func (m *Memory) GetU16(addr uint16) uint16 {
	h := m.Get(addr)
	l := m.Get(addr + 1)
	return (uint16(h) << 8) | uint16(l)
}

// SetRange copies bytes from the given data to the specified
// starting address in RAM, wrapping at the end of memory.
func (m *Memory) SetRange(addr uint16, data ...uint8) {
	for _, d := range data {
		m.Set(addr, d)
		addr++
	}
}

// FillRange fills an area of memory with the given byte
func (m *Memory) FillRange(addr uint16, size int, char uint8) {
	for size > 0 {
		m.Set(addr, char)
		addr++
		size--
	}
}

// GetRange returns the contents of a given range
func (m *Memory) GetRange(addr uint16, size int) []uint8 {
	ret := make([]uint8, 0, size)
	for size > 0 {
		ret = append(ret, m.Get(addr))
		addr++
		size--
	}
	return ret
}

// Clear zeroes all of memory.
func (m *Memory) Clear() {
	m.buf = [Size]uint8{}
}

// Load copies data into memory at the given address.
//
// Unlike SetRange the data must fit before the end of RAM, if it
// doesn't ErrTooLarge is returned and memory is left untouched.
func (m *Memory) Load(addr uint16, data []uint8) error {
	avail := Size - int(addr&Mask)
	if len(data) > avail {
		return fmt.Errorf("%d bytes at 0x%03X, %d available: %w", len(data), addr&Mask, avail, ErrTooLarge)
	}
	copy(m.buf[int(addr&Mask):], data)
	return nil
}

// LoadFile loads the named file into memory at the given address.
func (m *Memory) LoadFile(addr uint16, name string) error {

	// Load the binary
	prog, err := os.ReadFile(name)
	if err != nil {
		return err
	}

	return m.Load(addr, prog)
}
