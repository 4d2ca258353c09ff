package machine

import (
	"fmt"
	"strings"
)

// Tape is the machine's growable row of byte cells. It never shrinks.
type Tape struct {
	Cells []uint8
}

// Reset the tape to a single zero cell.
func (tape *Tape) Reset() {
	tape.Cells = append(tape.Cells[:0], 0)
}

// Len returns the number of cells.
func (tape *Tape) Len() int {
	return len(tape.Cells)
}

// Extend appends one zero cell if index is just past the end.
func (tape *Tape) Extend(index int) {
	if index == len(tape.Cells) {
		tape.Cells = append(tape.Cells, 0)
	}
}

// Get returns the value of a cell.
func (tape *Tape) Get(index int) (value uint8, err error) {
	if index < 0 || index >= len(tape.Cells) {
		err = &ErrTapeRange{Index: index, Length: len(tape.Cells)}
		return
	}

	value = tape.Cells[index]
	return
}

// Set stores the value of a cell.
func (tape *Tape) Set(index int, value uint8) (err error) {
	if index < 0 || index >= len(tape.Cells) {
		err = &ErrTapeRange{Index: index, Length: len(tape.Cells)}
		return
	}

	tape.Cells[index] = value
	return
}

// Add adds delta to a cell, wrapping modulo 256.
func (tape *Tape) Add(index int, delta uint8) (err error) {
	value, err := tape.Get(index)
	if err != nil {
		return
	}

	return tape.Set(index, value+delta)
}

// String renders the cells as three digit decimals.
func (tape *Tape) String() string {
	cells := make([]string, len(tape.Cells))
	for n, cell := range tape.Cells {
		cells[n] = fmt.Sprintf("%03d", cell)
	}
	return strings.Join(cells, " ")
}
