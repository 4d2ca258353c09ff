package machine

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/bfkit/internal/testutil"
	"github.com/ezrec/bfkit/io"
	"github.com/ezrec/bfkit/program"
)

func doParse(t *testing.T, src string) *program.Program {
	t.Helper()

	p := &program.Parser{Halt: true}
	prog, err := p.ParseString(src)
	if err != nil {
		t.Fatal(err)
	}
	return prog
}

func doRun(t *testing.T, src string, input string) (m *Machine, output string, err error) {
	t.Helper()

	out := &bytes.Buffer{}
	tape := &io.Tape{Input: strings.NewReader(input), Output: out}

	m = NewMachine(doParse(t, src), tape)
	m.Verbose = true
	m.Logger = testutil.NewTestLogger(t)

	err = m.Run()
	output = out.String()
	return
}

func TestMachine(t *testing.T) {
	assert := assert.New(t)

	m := NewMachine(&program.Program{}, nil)

	assert.False(m.Verbose)
	assert.Equal([]uint8{0}, m.Tape.Cells)
	assert.Equal(0, m.Pointer)
	assert.Equal(0, m.Counter)
	assert.False(m.Halted)
	assert.True(m.Done())

	done, err := m.Tick()
	assert.True(done)
	assert.NoError(err)
}

func TestMachineIncrementOutput(t *testing.T) {
	assert := assert.New(t)

	for _, n := range []int{0, 1, 65, 255} {
		_, output, err := doRun(t, strings.Repeat("+", n)+".", "")
		assert.NoError(err)
		assert.Equal(string([]byte{byte(n)}), output)
	}
}

func TestMachineWrap(t *testing.T) {
	assert := assert.New(t)

	m, _, err := doRun(t, "-", "")
	assert.NoError(err)
	assert.Equal(uint8(255), m.Tape.Cells[0])

	m, _, err = doRun(t, strings.Repeat("+", 256), "")
	assert.NoError(err)
	assert.Equal(uint8(0), m.Tape.Cells[0])
}

func TestMachineClearLoop(t *testing.T) {
	assert := assert.New(t)

	m, _, err := doRun(t, "+++++[-]", "")
	assert.NoError(err)
	assert.Equal([]uint8{0}, m.Tape.Cells)
	assert.Equal(5+1+5*2, m.Steps)

	// Body never runs on a zero cell.
	m, _, err = doRun(t, "[-]", "")
	assert.NoError(err)
	assert.Equal([]uint8{0}, m.Tape.Cells)
	assert.Equal(1, m.Steps)
}

func TestMachineCopy(t *testing.T) {
	assert := assert.New(t)

	m := NewMachine(doParse(t, "[->+<]"), nil)
	m.Tape.Cells = []uint8{3, 0}

	err := m.Run()
	assert.NoError(err)
	assert.Equal([]uint8{0, 3}, m.Tape.Cells)
	assert.Equal(0, m.Pointer)
}

func TestMachineGrow(t *testing.T) {
	assert := assert.New(t)

	m := NewMachine(doParse(t, ">>><>"), nil)

	for n, length := range []int{2, 3, 4, 4, 4} {
		done, err := m.Tick()
		assert.NoError(err)
		assert.Equal(n == 4, done)
		assert.Equal(length, m.Tape.Len(), "step %d", n)
	}
	assert.Equal(3, m.Pointer)
}

func TestMachineUnderflow(t *testing.T) {
	assert := assert.New(t)

	m, _, err := doRun(t, "+>+<<", "")
	assert.True(errors.Is(err, ErrRange))

	var underflow *ErrPointerUnderflow
	assert.True(errors.As(err, &underflow))
	assert.Equal(2, underflow.Length)

	var runtime *ErrRuntime
	assert.True(errors.As(err, &runtime))
	assert.Equal(4, runtime.Counter)
	assert.Equal(program.OP_LEFT, runtime.Op.Kind)
	assert.Equal(program.Pos{Offset: 4, Line: 1, Column: 5}, runtime.Pos)

	// State is left at the failing operator.
	assert.Equal(0, m.Pointer)
	assert.Equal(4, m.Counter)
}

func TestMachineOutputNotRolledBack(t *testing.T) {
	assert := assert.New(t)

	_, output, err := doRun(t, "+.+.<", "")
	assert.Error(err)
	assert.Equal("\x01\x02", output)
}

func TestMachineEcho(t *testing.T) {
	assert := assert.New(t)

	_, output, err := doRun(t, ",.,.,.", "abc")
	assert.NoError(err)
	assert.Equal("abc", output)
}

func TestMachineInputExhausted(t *testing.T) {
	assert := assert.New(t)

	_, output, err := doRun(t, ",.,.", "a")
	assert.True(errors.Is(err, io.ErrInputExhausted))
	assert.Equal("a", output)
}

func TestMachineEOFPolicy(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		policy EOFPolicy
		cell   uint8
	}{
		{EOF_ZERO, 0},
		{EOF_KEEP, 7},
	}

	for _, tt := range table {
		m := NewMachine(doParse(t, "+++++++,"), &io.Tape{Input: strings.NewReader("")})
		m.EOF = tt.policy

		err := m.Run()
		assert.NoError(err, tt.policy.String())
		assert.Equal(tt.cell, m.Tape.Cells[0], tt.policy.String())
	}
}

func TestMachineNoChannel(t *testing.T) {
	assert := assert.New(t)

	m := NewMachine(doParse(t, "."), nil)
	assert.True(errors.Is(m.Run(), ErrChannelMissing))

	m = NewMachine(doParse(t, ","), nil)
	assert.True(errors.Is(m.Run(), ErrChannelMissing))
}

func TestMachineHalt(t *testing.T) {
	assert := assert.New(t)

	m, output, err := doRun(t, "+.~+.", "")
	assert.NoError(err)
	assert.Equal("\x01", output)
	assert.True(m.Halted)
	assert.Equal(2, m.Counter)
	assert.Equal(uint8(1), m.Tape.Cells[0])

	// Halted machines stay done.
	done, err := m.Tick()
	assert.True(done)
	assert.NoError(err)
	assert.Equal(2, m.Counter)
}

func TestMachineHelloWorld(t *testing.T) {
	assert := assert.New(t)

	src := `++++++++[>++++[>++>+++>+++>+<<<<-]>+>+>->>+[<]<-]>>.
		>---.+++++++..+++.>>.<-.<.+++.------.--------.>>+.>++.`

	_, output, err := doRun(t, src, "")
	assert.NoError(err)
	assert.Equal("Hello World!\n", output)
}

func TestMachineNested(t *testing.T) {
	assert := assert.New(t)

	// 3 * 4 via nested loops.
	m, _, err := doRun(t, "+++[>++++[>+<-]<-]", "")
	assert.NoError(err)
	assert.Equal([]uint8{0, 0, 12}, m.Tape.Cells)
}

func TestMachineBadJump(t *testing.T) {
	assert := assert.New(t)

	prog := &program.Program{Operators: []program.Operator{
		{Kind: program.OP_OPEN, Target: 9},
		{Kind: program.OP_CLOSE, Target: 0},
	}}

	m := NewMachine(prog, nil)
	err := m.Run()

	var counter *ErrCounterRange
	assert.True(errors.As(err, &counter))
	assert.Equal(9, counter.Counter)
	assert.Equal(2, counter.Length)

	// Load refuses the same program.
	m = NewMachine(&program.Program{}, nil)
	assert.True(errors.Is(m.Load(prog), program.ErrJump))
}

func TestMachineBadCounter(t *testing.T) {
	assert := assert.New(t)

	m := NewMachine(doParse(t, "+"), nil)
	m.Counter = 5

	done, err := m.Tick()
	assert.True(done)
	assert.True(errors.Is(err, ErrRange))

	var counter *ErrCounterRange
	assert.True(errors.As(err, &counter))
	assert.Equal(5, counter.Counter)
}

func TestMachineBadPointer(t *testing.T) {
	assert := assert.New(t)

	m := NewMachine(doParse(t, "+"), nil)
	m.Pointer = 3

	err := m.Run()
	var tape *ErrTapeRange
	assert.True(errors.As(err, &tape))
	assert.Equal(3, tape.Index)
	assert.Equal(1, tape.Length)
}

func TestMachineBadOperator(t *testing.T) {
	assert := assert.New(t)

	prog := &program.Program{Operators: []program.Operator{{Kind: program.Kind(77)}}}
	m := NewMachine(prog, nil)

	err := m.Run()
	assert.True(errors.Is(err, program.ErrOperator))
}

func TestMachineLoad(t *testing.T) {
	assert := assert.New(t)

	m := NewMachine(doParse(t, "+++>"), nil)
	assert.NoError(m.Run())

	assert.NoError(m.Load(doParse(t, "++")))
	assert.False(m.Done())
	assert.NoError(m.Run())

	// Tape and pointer survive a Load.
	assert.Equal([]uint8{3, 2}, m.Tape.Cells)
	assert.Equal(1, m.Pointer)

	m.Reset()
	assert.Equal([]uint8{0}, m.Tape.Cells)
	assert.Equal(0, m.Pointer)
	assert.Equal(0, m.Steps)
}

func TestMachineLoopback(t *testing.T) {
	assert := assert.New(t)

	temp := &io.Temporary{Capacity: 4}
	m := NewMachine(doParse(t, "++.>,+."), temp)

	assert.NoError(m.Run())
	assert.Equal([]uint8{2, 3}, m.Tape.Cells)
	assert.Equal([]byte{3}, temp.Bytes())
}
