package program

import (
	"iter"
	"strings"
)

// Program is a resolved instruction sequence. It is not modified once the
// parser has returned it.
type Program struct {
	Operators []Operator
	Positions []Pos // Source position of each operator, if known.
}

// Debug locates an operator in the source.
type Debug struct {
	Operator
	Index int
	Pos   Pos
}

// Len returns the number of operators.
func (prog *Program) Len() int {
	if prog == nil {
		return 0
	}
	return len(prog.Operators)
}

// At returns the operator at index.
func (prog *Program) At(index int) (op Operator, ok bool) {
	if index < 0 || index >= prog.Len() {
		return
	}

	return prog.Operators[index], true
}

// Debug returns the operator and its source position at index.
func (prog *Program) Debug(index int) (dbg Debug) {
	dbg.Index = index

	op, ok := prog.At(index)
	if !ok {
		return
	}
	dbg.Operator = op

	if index < len(prog.Positions) {
		dbg.Pos = prog.Positions[index]
	}

	return
}

// All iterates over the operators with their indexes.
func (prog *Program) All() iter.Seq2[int, Operator] {
	return func(yield func(index int, op Operator) bool) {
		if prog == nil {
			return
		}
		for index, op := range prog.Operators {
			if !yield(index, op) {
				return
			}
		}
	}
}

// String renders the program as filtered source text.
func (prog *Program) String() string {
	var sb strings.Builder
	for _, op := range prog.All() {
		sb.WriteString(op.Kind.String())
	}
	return sb.String()
}

// Validate checks that every operator is known and that the jump table
// pairs each loop-open with a later loop-close pointing back at it.
func (prog *Program) Validate() (err error) {
	length := prog.Len()

	for index, op := range prog.All() {
		if !op.Kind.Valid() {
			err = &ErrOperatorInvalid{Index: index, Kind: op.Kind}
			return
		}

		if !op.Kind.Jumps() {
			continue
		}

		if op.Target < 0 || op.Target >= length {
			err = &ErrJumpTarget{Index: index, Target: op.Target}
			return
		}

		partner := prog.Operators[op.Target]
		switch op.Kind {
		case OP_OPEN:
			if op.Target <= index || partner.Kind != OP_CLOSE || partner.Target != index {
				err = &ErrJumpTarget{Index: index, Target: op.Target}
				return
			}
		case OP_CLOSE:
			if op.Target >= index || partner.Kind != OP_OPEN || partner.Target != index {
				err = &ErrJumpTarget{Index: index, Target: op.Target}
				return
			}
		}
	}

	return
}
