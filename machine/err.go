package machine

import (
	"errors"

	"github.com/ezrec/bfkit/program"
	"github.com/ezrec/bfkit/translate"
)

var f = translate.From

var (
	// Machine errors
	ErrRange          = errors.New(f("out of range"))
	ErrChannelMissing = errors.New(f("no channel attached"))
	ErrEOFPolicy      = errors.New(f("unknown eof policy"))
)

// ErrCounterRange is a program counter, or a jump target, outside the program.
type ErrCounterRange struct {
	Counter int
	Length  int
}

func (err *ErrCounterRange) Error() string {
	return f("program counter %d outside program of length %d", err.Counter, err.Length)
}

func (err *ErrCounterRange) Unwrap() error {
	return ErrRange
}

// ErrTapeRange is a cell access outside the tape.
type ErrTapeRange struct {
	Index  int
	Length int
}

func (err *ErrTapeRange) Error() string {
	return f("cell %d outside tape of length %d", err.Index, err.Length)
}

func (err *ErrTapeRange) Unwrap() error {
	return ErrRange
}

// ErrPointerUnderflow is a move left from cell 0.
type ErrPointerUnderflow struct {
	Length int // Tape length at the time of the move.
}

func (err *ErrPointerUnderflow) Error() string {
	return f("pointer moved left of cell 0 (tape length %d)", err.Length)
}

func (err *ErrPointerUnderflow) Unwrap() error {
	return ErrRange
}

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Counter int
	Pos     program.Pos
	Op      program.Operator
	Err     error
}

func (err *ErrRuntime) Error() string {
	return f("%v: instruction %d '%v': %v", err.Pos.String(), err.Counter, err.Op.Kind.String(), err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
