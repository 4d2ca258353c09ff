package macro

import (
	"github.com/ezrec/bfkit/translate"
)

var f = translate.From

// ErrSyntax is a $( with no closing parenthesis.
type ErrSyntax struct {
	Offset int
}

func (err ErrSyntax) Error() string {
	return f("offset %d: $( without closing )", err.Offset)
}

// ErrValue is an expression that did not produce a string.
type ErrValue struct {
	Expr string
	Type string
}

func (err ErrValue) Error() string {
	return f("$(%v) is a %v, not a string", err.Expr, err.Type)
}

// ErrMacro locates a failed expansion.
type ErrMacro struct {
	Offset int
	Expr   string
	Err    error
}

func (err ErrMacro) Error() string {
	return f("offset %d $(%v) %v", err.Offset, err.Expr, err.Err.Error())
}

func (err ErrMacro) Unwrap() error {
	return err.Err
}
