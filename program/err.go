package program

import (
	"errors"
	"strings"

	"github.com/ezrec/bfkit/translate"
)

var f = translate.From

var (
	// Parse errors
	ErrParse = errors.New(f("parse"))

	// Program errors
	ErrJump     = errors.New(f("jump target invalid"))
	ErrOperator = errors.New(f("operator invalid"))
)

// ErrUnmatchedClose is a loop-close with no pending loop-open.
type ErrUnmatchedClose struct {
	Index int // Operator index.
	Pos   Pos
}

func (err *ErrUnmatchedClose) Error() string {
	return f("%v: unmatched ']' at instruction %d", err.Pos.String(), err.Index)
}

func (err *ErrUnmatchedClose) Is(target error) bool {
	return target == ErrParse
}

// ErrUnmatchedOpen lists every loop-open left without a loop-close.
type ErrUnmatchedOpen struct {
	Indexes   []int // Operator indexes, outermost first.
	Positions []Pos
}

func (err *ErrUnmatchedOpen) Error() string {
	where := make([]string, len(err.Positions))
	for n, pos := range err.Positions {
		where[n] = pos.String()
	}
	return f("unmatched '[' at %v", strings.Join(where, ", "))
}

func (err *ErrUnmatchedOpen) Is(target error) bool {
	return target == ErrParse
}

// ErrIllegalCharacter is a filtered symbol with no operator.
type ErrIllegalCharacter struct {
	Char rune
	Pos  Pos
}

func (err *ErrIllegalCharacter) Error() string {
	return f("%v: illegal character %q", err.Pos.String(), err.Char)
}

func (err *ErrIllegalCharacter) Is(target error) bool {
	return target == ErrParse
}

// ErrJumpTarget is a loop operator whose target is not its partner.
type ErrJumpTarget struct {
	Index  int
	Target int
}

func (err *ErrJumpTarget) Error() string {
	return f("instruction %d: jump target %d invalid", err.Index, err.Target)
}

func (err *ErrJumpTarget) Unwrap() error {
	return ErrJump
}

// ErrOperatorInvalid is an operator kind outside the known set.
type ErrOperatorInvalid struct {
	Index int
	Kind  Kind
}

func (err *ErrOperatorInvalid) Error() string {
	return f("instruction %d: %v", err.Index, err.Kind.String())
}

func (err *ErrOperatorInvalid) Unwrap() error {
	return ErrOperator
}
