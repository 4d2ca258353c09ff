package program

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// balance reports whether the brackets of src are well nested.
func balance(src string) bool {
	depth := 0
	for _, c := range src {
		switch c {
		case '[':
			depth++
		case ']':
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}

func FuzzParser(f *testing.F) {
	f.Add("")
	f.Add("[]")
	f.Add("+[->+<]")
	f.Add("[[[]]][")
	f.Add("]")
	f.Add("comment [ with ] words ~")

	f.Fuzz(func(t *testing.T, src string) {
		assert := assert.New(t)

		p := &Parser{Halt: true}
		prog, err := p.ParseString(src)

		if !balance(src) {
			assert.True(errors.Is(err, ErrParse))
			return
		}

		assert.NoError(err)
		if err != nil {
			return
		}

		assert.NoError(prog.Validate())
		for index, op := range prog.All() {
			if !op.Kind.Jumps() {
				continue
			}
			assert.True(op.Target >= 0 && op.Target < prog.Len())
			assert.Equal(index, prog.Operators[op.Target].Target)
		}
	})
}
