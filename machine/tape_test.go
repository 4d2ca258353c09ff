package machine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTape(t *testing.T) {
	assert := assert.New(t)

	tape := &Tape{}
	assert.Equal(0, tape.Len())

	_, err := tape.Get(0)
	assert.True(errors.Is(err, ErrRange))

	tape.Reset()
	assert.Equal([]uint8{0}, tape.Cells)

	// Only a cell just past the end is appended.
	tape.Extend(0)
	assert.Equal(1, tape.Len())
	tape.Extend(1)
	assert.Equal(2, tape.Len())
	tape.Extend(5)
	assert.Equal(2, tape.Len())

	assert.NoError(tape.Set(1, 200))
	assert.NoError(tape.Add(1, 100))
	value, err := tape.Get(1)
	assert.NoError(err)
	assert.Equal(uint8(44), value)

	var rangeErr *ErrTapeRange
	assert.True(errors.As(tape.Set(2, 1), &rangeErr))
	assert.Equal(2, rangeErr.Index)
	assert.Equal(2, rangeErr.Length)
	assert.Error(tape.Add(-1, 1))

	assert.Equal("000 044", tape.String())

	tape.Reset()
	assert.Equal([]uint8{0}, tape.Cells)
}

func TestEOFPolicy(t *testing.T) {
	assert := assert.New(t)

	for _, name := range []string{"error", "zero", "keep"} {
		policy, err := ParseEOFPolicy(name)
		assert.NoError(err)
		assert.Equal(name, policy.String())
	}

	policy, err := ParseEOFPolicy("")
	assert.NoError(err)
	assert.Equal(EOF_ERROR, policy)

	_, err = ParseEOFPolicy("wrap")
	assert.True(errors.Is(err, ErrEOFPolicy))

	assert.Equal("EOFPolicy(?)", EOFPolicy(9).String())
}
