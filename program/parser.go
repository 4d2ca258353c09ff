// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package program

import (
	"bufio"
	"errors"
	"io"
	"log/slog"
	"slices"
	"strings"
)

// Parser is a single pass resolver from source text to a Program.
type Parser struct {
	Verbose bool         // If set, logs each resolved loop.
	Halt    bool         // If set, '~' is the halt operator instead of a comment.
	Logger  *slog.Logger // Destination for verbose logs; nil uses slog.Default().
}

func (p *Parser) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}

// recognised returns true if the symbol is part of this parser's alphabet.
func (p *Parser) recognised(symbol rune) bool {
	if symbol == HALT_SYMBOL {
		return p.Halt
	}
	return strings.ContainsRune(ALPHABET, symbol)
}

// ParseString parses source text held in a string.
func (p *Parser) ParseString(src string) (prog *Program, err error) {
	return p.Parse(strings.NewReader(src))
}

// Parse reads the whole source, keeping only alphabet symbols, and resolves
// the loop jump table.
//
// Each loop-open is emitted with a placeholder target and its index pushed on
// a stack. A loop-close pops the stack, points at the popped index, and the
// popped loop-open is back-patched to point at the loop-close.
func (p *Parser) Parse(in io.Reader) (prog *Program, err error) {
	reader := bufio.NewReader(in)

	prog = &Program{}
	pending := Stack{}
	pos := Pos{Line: 1, Column: 1}

	for {
		symbol, size, rerr := reader.ReadRune()
		if errors.Is(rerr, io.EOF) {
			break
		}
		if rerr != nil {
			return nil, rerr
		}

		here := pos
		pos.Offset += size
		if symbol == '\n' {
			pos.Line++
			pos.Column = 1
		} else {
			pos.Column++
		}

		if !p.recognised(symbol) {
			continue
		}

		kind, ok := KindOf(symbol)
		if !ok {
			return nil, &ErrIllegalCharacter{Char: symbol, Pos: here}
		}

		index := len(prog.Operators)
		op := Operator{Kind: kind}

		switch kind {
		case OP_OPEN:
			pending.Push(index)
		case OP_CLOSE:
			open, ok := pending.Pop()
			if !ok {
				return nil, &ErrUnmatchedClose{Index: index, Pos: here}
			}
			op.Target = open
			prog.Operators[open].Target = index
			if p.Verbose {
				p.logger().Debug("program: loop resolved", "open", open, "close", index, "at", here.String())
			}
		}

		prog.Operators = append(prog.Operators, op)
		prog.Positions = append(prog.Positions, here)
	}

	if !pending.Empty() {
		unmatched := &ErrUnmatchedOpen{
			Indexes: slices.Clone(pending.Data),
		}
		for _, index := range unmatched.Indexes {
			unmatched.Positions = append(unmatched.Positions, prog.Positions[index])
		}
		return nil, unmatched
	}

	if p.Verbose {
		p.logger().Debug("program: parsed", "operators", len(prog.Operators))
	}

	return
}
