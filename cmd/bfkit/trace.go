package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/ezrec/bfkit/machine"
)

// isTerminal returns true if w is a terminal.
func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}

// newTracer returns a trace function writing to w. Terminals get a compact
// highlighted rendering; anything else gets the plain machine state.
func newTracer(w io.Writer) func(state machine.State) error {
	if !isTerminal(w) {
		return machine.TraceTo(w)
	}

	renderer := lipgloss.NewRenderer(w)
	label := renderer.NewStyle().Faint(true)
	op := renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	current := renderer.NewStyle().Reverse(true)

	return func(state machine.State) (err error) {
		symbol := "-"
		if state.HasOp {
			symbol = state.Op.Kind.String()
		}

		cells := make([]string, len(state.Cells))
		for n, cell := range state.Cells {
			cells[n] = fmt.Sprintf("%03d", cell)
			if n == state.Pointer {
				cells[n] = current.Render(cells[n])
			}
		}

		_, err = fmt.Fprintf(w, "%s %-5d %s %-5d %s %s  %s\n",
			label.Render("pc"), state.Counter,
			label.Render("ptr"), state.Pointer,
			label.Render("op"), op.Render(symbol),
			strings.Join(cells, " "))
		return
	}
}
