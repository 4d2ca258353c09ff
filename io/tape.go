package io

import (
	"errors"
	"io"
)

// Flusher is implemented by writers that buffer, such as *bufio.Writer.
type Flusher interface {
	Flush() error
}

// Tape provides sequential byte I/O over an io.Reader and an io.Writer.
// Every sent byte is flushed before Send returns.
type Tape struct {
	Input  io.Reader
	Output io.Writer

	Received int // Bytes received since Rewind.
	Sent     int // Bytes sent since Rewind.
}

var _ Channel = (*Tape)(nil)

// Rewind clears the counters. The underlying streams cannot be rewound.
func (tc *Tape) Rewind() {
	tc.Received = 0
	tc.Sent = 0
}

// Receive reads exactly one byte from the input, blocking as the reader does.
// A reader at EOF, or no reader at all, reports ErrInputExhausted.
func (tc *Tape) Receive() (value byte, err error) {
	if tc.Input == nil {
		err = ErrInputExhausted
		return
	}

	var one [1]byte
	for {
		var n int
		n, err = tc.Input.Read(one[:])
		if n == 1 {
			value = one[0]
			tc.Received++
			err = nil
			return
		}
		if errors.Is(err, io.EOF) {
			err = ErrInputExhausted
			return
		}
		if err != nil {
			return
		}
	}
}

// Send writes one byte to the output and flushes it.
func (tc *Tape) Send(value byte) (err error) {
	if tc.Output == nil {
		err = ErrChannelClosed
		return
	}

	_, err = tc.Output.Write([]byte{value})
	if err != nil {
		return
	}

	if flusher, ok := tc.Output.(Flusher); ok {
		err = flusher.Flush()
		if err != nil {
			return
		}
	}

	tc.Sent++

	return
}
