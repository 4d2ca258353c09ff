package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("unmatched ']'", From("unmatched ']'"))
	assert.Equal("cell 7", From("cell %d", 7))
}
