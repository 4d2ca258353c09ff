package machine

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/ezrec/bfkit/program"
)

// State is a snapshot of a machine between two steps.
type State struct {
	Counter int
	Pointer int
	Steps   int
	Op      program.Operator // Operator about to run.
	HasOp   bool             // False once the counter is past the program.
	Cells   []uint8
}

// State returns a snapshot of the machine. The cells are copied.
func (m *Machine) State() (state State) {
	state = State{
		Counter: m.Counter,
		Pointer: m.Pointer,
		Steps:   m.Steps,
		Cells:   slices.Clone(m.Tape.Cells),
	}

	state.Op, state.HasOp = m.Program.At(m.Counter)

	return
}

// String renders the state with the whole tape and a marker under the
// current cell.
func (state State) String() (text string) {
	op := "-"
	if state.HasOp {
		op = state.Op.String()
	}

	tape := Tape{Cells: state.Cells}

	text += fmt.Sprintf("% 5s: %v\n", "pc", state.Counter)
	text += fmt.Sprintf("% 5s: %v\n", "ptr", state.Pointer)
	text += fmt.Sprintf("% 5s: %v\n", "op", op)
	text += fmt.Sprintf("% 5s: %v\n", "tape", tape.String())
	text += strings.Repeat(" ", 7+4*state.Pointer) + "^^^\n"

	return
}

// TraceTo returns a RunTrace function that writes each state to w.
func TraceTo(w io.Writer) func(state State) error {
	return func(state State) (err error) {
		_, err = io.WriteString(w, state.String())
		return
	}
}
