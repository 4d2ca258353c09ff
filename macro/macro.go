// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package macro expands compile-time $(...) expressions in source text.
//
// Each expression is evaluated as Starlark and must produce a string, which
// replaces the whole $(...) span before the text is parsed. The expander
// predeclares helpers that build operator runs:
//
//	move(n)   ">" * n, or "<" * -n
//	add(n)    "+" * n, or "-" * -n
//	set(n)    "[-]" followed by add(n)
//	repeat(s, n)
//
// Integer defines are predeclared by name.
package macro

import (
	"log/slog"
	"maps"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Expander evaluates $(...) expressions in source text.
type Expander struct {
	Verbose bool         // If set, logs each expansion.
	Logger  *slog.Logger // Destination for verbose logs; nil uses slog.Default().

	define map[string]int
}

// Define defines a new integer constant or redefines an existing one.
func (ex *Expander) Define(name string, value int) {
	if ex.define == nil {
		ex.define = map[string]int{name: value}
	} else {
		ex.define[name] = value
	}
}

// Defines returns a copy of the defined constants.
func (ex *Expander) Defines() map[string]int {
	return maps.Clone(ex.define)
}

func (ex *Expander) logger() *slog.Logger {
	if ex.Logger != nil {
		return ex.Logger
	}
	return slog.Default()
}

// run returns symbol repeated n times, or negative repeated -n times.
func run(symbol, negative string, n int) string {
	if n < 0 {
		return strings.Repeat(negative, -n)
	}
	return strings.Repeat(symbol, n)
}

func runBuiltin(name, symbol, negative, prefix string) *starlark.Builtin {
	return starlark.NewBuiltin(name, func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var n int
		err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &n)
		if err != nil {
			return nil, err
		}
		return starlark.String(prefix + run(symbol, negative, n)), nil
	})
}

func repeatBuiltin(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var text string
	var n int
	err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 2, &text, &n)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		n = 0
	}
	return starlark.String(strings.Repeat(text, n)), nil
}

// predeclared returns the global environment for an expression.
func (ex *Expander) predeclared() starlark.StringDict {
	pred := starlark.StringDict{
		"move":   runBuiltin("move", ">", "<", ""),
		"add":    runBuiltin("add", "+", "-", ""),
		"set":    runBuiltin("set", "+", "-", "[-]"),
		"repeat": starlark.NewBuiltin("repeat", repeatBuiltin),
	}

	for key, value := range ex.define {
		pred[key] = starlark.MakeInt(value)
	}

	return pred
}

// eval does a single $(...) evaluation.
func (ex *Expander) eval(expr string, pred starlark.StringDict) (text string, err error) {
	thread := &starlark.Thread{Name: "macro"}
	opts := &syntax.FileOptions{}

	value, err := starlark.EvalOptions(opts, thread, "macro", expr, pred)
	if err != nil {
		return
	}

	str, ok := value.(starlark.String)
	if !ok {
		err = ErrValue{Expr: expr, Type: value.Type()}
		return
	}

	text = string(str)
	return
}

// span returns the length of the expression starting just after "$(", up to
// but excluding its closing parenthesis. Parentheses inside string literals
// are not counted.
func span(text string) (length int, ok bool) {
	depth := 1
	var quote byte
	for n := 0; n < len(text); n++ {
		c := text[n]
		switch {
		case quote != 0:
			if c == '\\' {
				n++
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '(':
			depth++
		case c == ')':
			depth--
			if depth == 0 {
				return n, true
			}
		}
	}
	return
}

// Expand replaces every $(...) in src with its evaluated string.
func (ex *Expander) Expand(src string) (out string, err error) {
	pred := ex.predeclared()

	var sb strings.Builder
	rest := src
	offset := 0

	for {
		start := strings.Index(rest, "$(")
		if start < 0 {
			sb.WriteString(rest)
			break
		}

		sb.WriteString(rest[:start])

		length, ok := span(rest[start+2:])
		if !ok {
			err = ErrSyntax{Offset: offset + start}
			return
		}

		expr := rest[start+2 : start+2+length]
		var text string
		text, err = ex.eval(expr, pred)
		if err != nil {
			err = ErrMacro{Offset: offset + start, Expr: expr, Err: err}
			return
		}

		if ex.Verbose {
			ex.logger().Debug("macro: expanded", "expr", expr, "length", len(text))
		}

		sb.WriteString(text)

		consumed := start + 2 + length + 1
		rest = rest[consumed:]
		offset += consumed
	}

	out = sb.String()
	return
}
