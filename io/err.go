package io

import (
	"errors"

	"github.com/ezrec/bfkit/translate"
)

var f = translate.From

var (
	// Channel errors
	ErrChannelFull    = errors.New(f("channel full"))
	ErrChannelClosed  = errors.New(f("channel closed"))
	ErrInputExhausted = errors.New(f("input exhausted"))
)
