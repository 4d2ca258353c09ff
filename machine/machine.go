// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package machine implements the tape machine that interprets a resolved
// program.
//
// The machine is single threaded. The only point where it blocks is an input
// operator waiting on its channel; a host that needs cancellation wraps the
// channel, not the machine.
package machine

import (
	"errors"
	"log/slog"

	"github.com/ezrec/bfkit/io"
	"github.com/ezrec/bfkit/program"
)

// Machine state. Program + tape + I/O channel.
type Machine struct {
	Verbose bool         // If set, logs every executed step.
	Logger  *slog.Logger // Destination for verbose logs; nil uses slog.Default().

	Program *program.Program // Reference to the running program.
	Channel io.Channel       // Terminal for the input and output operators.
	EOF     EOFPolicy        // Input behaviour once the channel is exhausted.

	Tape    Tape // Cell tape.
	Pointer int  // Index of the current cell.
	Counter int  // Index of the next operator.
	Halted  bool // Set by the halt operator.
	Steps   int  // Operators executed since Reset.
}

// NewMachine creates a machine, reset and ready to run prog.
func NewMachine(prog *program.Program, channel io.Channel) (m *Machine) {
	m = &Machine{
		Program: prog,
		Channel: channel,
	}

	m.Reset()

	return
}

func (m *Machine) logger() *slog.Logger {
	if m.Logger != nil {
		return m.Logger
	}
	return slog.Default()
}

// Reset the machine state.
// - Tape is a single zero cell.
// - Pointer, counter and step count are zero.
// - The channel is rewound.
func (m *Machine) Reset() {
	m.Tape.Reset()
	m.Pointer = 0
	m.Counter = 0
	m.Halted = false
	m.Steps = 0

	if m.Channel != nil {
		m.Channel.Rewind()
	}

	if m.Verbose {
		m.logger().Debug("machine: reset", "operators", m.Program.Len())
	}
}

// Load replaces the program and restarts it from the first operator, keeping
// the tape and pointer. The program's jump table is checked first.
func (m *Machine) Load(prog *program.Program) (err error) {
	err = prog.Validate()
	if err != nil {
		return
	}

	m.Program = prog
	m.Counter = 0
	m.Halted = false

	return
}

// Done returns true once the program has halted or run off its end.
func (m *Machine) Done() bool {
	return m.Halted || m.Counter == m.Program.Len()
}

// Tick executes a single operator.
//
// done is set when the machine has finished: the counter moved past the last
// operator, a halt operator ran, or the step failed. Only the last case sets
// err.
func (m *Machine) Tick() (done bool, err error) {
	if m.Done() {
		done = true
		return
	}

	counter := m.Counter
	defer func() {
		if err != nil {
			dbg := m.Program.Debug(counter)
			err = &ErrRuntime{Counter: counter, Pos: dbg.Pos, Op: dbg.Operator, Err: err}
			done = true
		}
	}()

	op, ok := m.Program.At(m.Counter)
	if !ok {
		err = &ErrCounterRange{Counter: m.Counter, Length: m.Program.Len()}
		return
	}

	if m.Verbose {
		m.logger().Debug("machine: step", "pc", m.Counter, "op", op.String(), "ptr", m.Pointer)
	}

	err = m.Execute(op)
	if err != nil {
		return
	}

	m.Steps++
	done = m.Done()

	return
}

// jump returns the counter following a taken jump to target.
func (m *Machine) jump(target int) (next int, err error) {
	if target < 0 || target >= m.Program.Len() {
		err = &ErrCounterRange{Counter: target, Length: m.Program.Len()}
		return
	}

	next = target + 1
	return
}

// Execute executes a single operator at the current counter.
func (m *Machine) Execute(op program.Operator) (err error) {
	next := m.Counter + 1

	switch op.Kind {
	case program.OP_RIGHT:
		m.Pointer++
		m.Tape.Extend(m.Pointer)
	case program.OP_LEFT:
		if m.Pointer == 0 {
			err = &ErrPointerUnderflow{Length: m.Tape.Len()}
			return
		}
		m.Pointer--
	case program.OP_INC:
		err = m.Tape.Add(m.Pointer, 1)
	case program.OP_DEC:
		err = m.Tape.Add(m.Pointer, 0xff)
	case program.OP_OUTPUT:
		err = m.output()
	case program.OP_INPUT:
		err = m.input()
	case program.OP_OPEN:
		var cell uint8
		cell, err = m.Tape.Get(m.Pointer)
		if err == nil && cell == 0 {
			next, err = m.jump(op.Target)
		}
	case program.OP_CLOSE:
		var cell uint8
		cell, err = m.Tape.Get(m.Pointer)
		if err == nil && cell != 0 {
			next, err = m.jump(op.Target)
		}
	case program.OP_HALT:
		m.Halted = true
		return
	default:
		err = &program.ErrOperatorInvalid{Index: m.Counter, Kind: op.Kind}
	}

	if err != nil {
		return
	}

	m.Counter = next

	return
}

func (m *Machine) output() (err error) {
	if m.Channel == nil {
		err = ErrChannelMissing
		return
	}

	cell, err := m.Tape.Get(m.Pointer)
	if err != nil {
		return
	}

	return m.Channel.Send(cell)
}

func (m *Machine) input() (err error) {
	if m.Channel == nil {
		err = ErrChannelMissing
		return
	}

	_, err = m.Tape.Get(m.Pointer)
	if err != nil {
		return
	}

	value, err := m.Channel.Receive()
	if errors.Is(err, io.ErrInputExhausted) {
		switch m.EOF {
		case EOF_ZERO:
			value, err = 0, nil
		case EOF_KEEP:
			return nil
		}
	}
	if err != nil {
		return
	}

	return m.Tape.Set(m.Pointer, value)
}

// Run ticks the machine until it is done.
func (m *Machine) Run() (err error) {
	for done := false; !done; {
		done, err = m.Tick()
	}

	if m.Verbose && err == nil {
		m.logger().Debug("machine: program has ended", "steps", m.Steps, "tape", m.Tape.Len())
	}

	return
}

// RunTrace runs like Run, calling trace with the machine state before every
// step. An error from trace stops the run and is returned.
func (m *Machine) RunTrace(trace func(state State) error) (err error) {
	for !m.Done() {
		err = trace(m.State())
		if err != nil {
			return
		}

		_, err = m.Tick()
		if err != nil {
			return
		}
	}

	return
}
