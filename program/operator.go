package program

import (
	"fmt"
)

// Kind is the operator class of an instruction.
type Kind int

//go:generate go tool stringer -linecomment -type=Kind
const (
	OP_RIGHT  = Kind(0) // >
	OP_LEFT   = Kind(1) // <
	OP_INC    = Kind(2) // +
	OP_DEC    = Kind(3) // -
	OP_OUTPUT = Kind(4) // .
	OP_INPUT  = Kind(5) // ,
	OP_OPEN   = Kind(6) // [
	OP_CLOSE  = Kind(7) // ]
	OP_HALT   = Kind(8) // ~
)

const (
	ALPHABET    = "><+-.,[]" // Symbols recognised by every parser.
	HALT_SYMBOL = '~'        // Symbol recognised when Parser.Halt is set.
)

// KindOf maps a source symbol to its operator kind.
func KindOf(symbol rune) (kind Kind, ok bool) {
	ok = true
	switch symbol {
	case '>':
		kind = OP_RIGHT
	case '<':
		kind = OP_LEFT
	case '+':
		kind = OP_INC
	case '-':
		kind = OP_DEC
	case '.':
		kind = OP_OUTPUT
	case ',':
		kind = OP_INPUT
	case '[':
		kind = OP_OPEN
	case ']':
		kind = OP_CLOSE
	case HALT_SYMBOL:
		kind = OP_HALT
	default:
		ok = false
	}
	return
}

// Valid returns true if the kind is one of the nine operators.
func (kind Kind) Valid() bool {
	return kind >= OP_RIGHT && kind <= OP_HALT
}

// Jumps returns true for the loop operators, which carry a Target.
func (kind Kind) Jumps() bool {
	return kind == OP_OPEN || kind == OP_CLOSE
}

// Operator is a single resolved instruction.
type Operator struct {
	Kind   Kind
	Target int // Index of the partner loop operator, for OP_OPEN and OP_CLOSE.
}

// String returns the source symbol, with the jump target for loop operators.
func (op Operator) String() string {
	if op.Kind.Jumps() {
		return fmt.Sprintf("%v%d", op.Kind, op.Target)
	}
	return op.Kind.String()
}

// Pos is a location in the source text.
type Pos struct {
	Offset int // Byte offset, from 0.
	Line   int // Line number, from 1.
	Column int // Column in runes, from 1.
}

func (pos Pos) String() string {
	return fmt.Sprintf("%d:%d", pos.Line, pos.Column)
}
