// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package memory implements the byte tape a Brainfuck program runs against.
//
// The tape is a fixed number of 8-bit cells and a cursor. Cell arithmetic
// wraps modulo 256. What happens when the cursor leaves the tape is set by
// the Bounds policy.
package memory

import (
	"fmt"
)

const (
	MEM_SIZE = 30_000 // Default number of cells.
)

// Bounds is the policy for cursor movement past either end of the tape.
type Bounds int

const (
	BOUNDS_WRAP  = Bounds(0) // wrap
	BOUNDS_FATAL = Bounds(1) // fatal
)

var boundsName = [...]string{
	BOUNDS_WRAP:  "wrap",
	BOUNDS_FATAL: "fatal",
}

func (b Bounds) String() string {
	if b < 0 || int(b) >= len(boundsName) {
		return fmt.Sprintf("Bounds(%d)", int(b))
	}
	return boundsName[b]
}

// ParseBounds converts a policy name to a Bounds.
func ParseBounds(name string) (b Bounds, err error) {
	for n, text := range boundsName {
		if text == name {
			b = Bounds(n)
			return
		}
	}

	err = fmt.Errorf("%w: %q", ErrBoundsPolicy, name)
	return
}

// MarshalText implements encoding.TextMarshaler.
func (b Bounds) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Bounds) UnmarshalText(text []byte) (err error) {
	*b, err = ParseBounds(string(text))
	return
}

// Memory is the data tape of a running program.
type Memory struct {
	Bounds Bounds // Cursor policy at the tape edges.

	data   []byte
	cursor int
}

// New creates a zeroed tape of size cells.
func New(size int, bounds Bounds) (mem *Memory, err error) {
	if size <= 0 {
		err = fmt.Errorf("%w: %d", ErrSize, size)
		return
	}

	mem = &Memory{
		Bounds: bounds,
		data:   make([]byte, size),
	}

	return
}

// Reset zeros every cell and returns the cursor to the first cell.
func (mem *Memory) Reset() {
	clear(mem.data)
	mem.cursor = 0
}

// Size returns the number of cells.
func (mem *Memory) Size() int {
	return len(mem.data)
}

// Cursor returns the current cell index.
func (mem *Memory) Cursor() int {
	return mem.cursor
}

// Cells returns the tape contents. The slice aliases the tape.
func (mem *Memory) Cells() []byte {
	return mem.data
}

// Index resolves a cell relative to the cursor under the bounds policy.
func (mem *Memory) Index(offset int) (index int, err error) {
	size := len(mem.data)
	index = mem.cursor + offset

	if index >= 0 && index < size {
		return
	}

	switch mem.Bounds {
	case BOUNDS_FATAL:
		err = fmt.Errorf("%w: %d", ErrBounds, index)
	default:
		index %= size
		if index < 0 {
			index += size
		}
	}

	return
}

// Seek moves the cursor by amount cells.
func (mem *Memory) Seek(amount int) (err error) {
	index, err := mem.Index(amount)
	if err != nil {
		return
	}

	mem.cursor = index
	return
}

// Inc adds amount to the current cell, modulo 256.
func (mem *Memory) Inc(amount int) {
	mem.data[mem.cursor] += byte(amount)
}

// Add adds delta to the cell at offset from the cursor, modulo 256.
func (mem *Memory) Add(offset int, delta int) (err error) {
	index, err := mem.Index(offset)
	if err != nil {
		return
	}

	mem.data[index] += byte(delta)
	return
}

// Read returns the current cell.
func (mem *Memory) Read() byte {
	return mem.data[mem.cursor]
}

// Write replaces the current cell.
func (mem *Memory) Write(value byte) {
	mem.data[mem.cursor] = value
}

// IsZero is true when the current cell is zero.
func (mem *Memory) IsZero() bool {
	return mem.data[mem.cursor] == 0
}

// SetZero clears the current cell.
func (mem *Memory) SetZero() {
	mem.data[mem.cursor] = 0
}
