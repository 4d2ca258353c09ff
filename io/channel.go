// Package io provides the byte channels a bfkit machine reads its input from
// and writes its output to.
//
// A Tape wraps an io.Reader and io.Writer, and is what hosts normally attach.
// A Temporary is a bounded in-memory FIFO that loops output back to input.
package io

// Channel is the machine's view of its terminal. Receive blocks until one byte
// is available; Send must have delivered the byte when it returns.
type Channel interface {
	// Rewind resets the channel to its initial state.
	Rewind()
	// Receive returns the next input byte, or ErrInputExhausted.
	Receive() (value byte, err error)
	// Send writes a single byte to the channel.
	Send(value byte) error
}
