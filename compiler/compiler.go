// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package compiler translates a resolved program into a C program.
//
// The emitted program uses a fixed array of Capacity cells. Moving the
// pointer past either end of that array is undefined behaviour in C; unlike
// the machine, the emitted code does not check it.
package compiler

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/ezrec/bfkit/program"
)

const (
	DEFAULT_CAPACITY = 1000 // Tape cells in the emitted program.
	DEFAULT_INDENT   = "\t" // One level of block indentation.
)

// statement is the C statement for each operator that is not a loop.
var statement = map[program.Kind]string{
	program.OP_RIGHT:  "ptr++;",
	program.OP_LEFT:   "ptr--;",
	program.OP_INC:    "(*ptr)++;",
	program.OP_DEC:    "(*ptr)--;",
	program.OP_OUTPUT: "putchar(*ptr);",
	program.OP_INPUT:  "*ptr = getchar();",
	program.OP_HALT:   "return 0;",
}

// Compiler emits C source for a program.
type Compiler struct {
	Verbose  bool         // If set, logs a summary of each compile.
	Logger   *slog.Logger // Destination for verbose logs; nil uses slog.Default().
	Capacity int          // Tape cells; DEFAULT_CAPACITY if not positive.
	Indent   string       // Indentation unit; DEFAULT_INDENT if empty.
}

func (c *Compiler) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// emitter accumulates indented lines.
type emitter struct {
	sb     strings.Builder
	indent string
	depth  int
}

func (em *emitter) line(text string) {
	if len(text) != 0 {
		em.sb.WriteString(strings.Repeat(em.indent, em.depth))
		em.sb.WriteString(text)
	}
	em.sb.WriteByte('\n')
}

// Compile walks prog once and returns the complete C program.
//
// Loop operators become native while blocks; their jump targets are not
// consulted. The nesting depth only drives indentation, and must be back to
// zero when the walk ends.
func (c *Compiler) Compile(prog *program.Program) (text string, err error) {
	capacity := c.Capacity
	if capacity <= 0 {
		capacity = DEFAULT_CAPACITY
	}

	indent := c.Indent
	if len(indent) == 0 {
		indent = DEFAULT_INDENT
	}

	em := &emitter{indent: indent}

	// Prologue
	em.line("#include <stdio.h>")
	em.line("")
	em.line("int main(void) {")
	em.depth++
	em.line(fmt.Sprintf("unsigned char tape[%d] = {0};", capacity))
	em.line("unsigned char *ptr;")
	em.line("ptr = &tape[0];")
	em.line("setvbuf(stdout, NULL, _IONBF, 0);")

	// Body
	loops := 0
	for index, op := range prog.All() {
		switch op.Kind {
		case program.OP_OPEN:
			em.line("while (*ptr) {")
			em.depth++
			loops++
		case program.OP_CLOSE:
			if em.depth <= 1 {
				err = &ErrNesting{Index: index, Depth: em.depth - 1}
				return
			}
			em.depth--
			em.line("}")
		default:
			stmt, ok := statement[op.Kind]
			if !ok {
				err = &ErrUnknownInstruction{Index: index, Kind: op.Kind}
				return
			}
			em.line(stmt)
		}
	}

	if em.depth != 1 {
		err = &ErrNesting{Index: prog.Len(), Depth: em.depth - 1}
		return
	}

	// Epilogue
	em.line("return 0;")
	em.depth--
	em.line("}")

	if c.Verbose {
		c.logger().Debug("compiler: emitted", "operators", prog.Len(), "loops", loops, "capacity", capacity)
	}

	text = em.sb.String()

	return
}
