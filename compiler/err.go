package compiler

import (
	"errors"

	"github.com/ezrec/bfkit/program"
	"github.com/ezrec/bfkit/translate"
)

var f = translate.From

var (
	// Emission errors
	ErrEmit = errors.New(f("emit"))
)

// ErrUnknownInstruction is an operator the emitter has no statement for.
type ErrUnknownInstruction struct {
	Index int
	Kind  program.Kind
}

func (err *ErrUnknownInstruction) Error() string {
	return f("instruction %d: unknown instruction %v", err.Index, err.Kind.String())
}

func (err *ErrUnknownInstruction) Is(target error) bool {
	return target == ErrEmit
}

// ErrNesting is a loop-close with no open block, or a block left open.
type ErrNesting struct {
	Index int // Operator index, or the program length for an unclosed block.
	Depth int
}

func (err *ErrNesting) Error() string {
	return f("instruction %d: loop nesting depth %d", err.Index, err.Depth)
}

func (err *ErrNesting) Is(target error) bool {
	return target == ErrEmit
}
