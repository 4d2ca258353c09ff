package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/ezrec/bfkit/config"
	bfio "github.com/ezrec/bfkit/io"
	"github.com/ezrec/bfkit/machine"
	"github.com/ezrec/bfkit/program"
)

// REPL prompts.
const (
	PROMPT          = "bf> "
	CONTINUE_PROMPT = "..> "
	INPUT_PROMPT    = "in> "
	HISTORY_FILE    = ".bfkit_history"
)

const replHelp = `Each line is run on the same tape as the lines before it.
A line with an open loop continues on the next line.

  :tape    show the tape
  :reset   clear the tape
  :help    show this text
  :quit    leave
`

var errQuit = errors.New("quit")

func newReplCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Run programs interactively on a persistent tape",
		Args:  cobra.NoArgs,
		RunE:  runRepl,
	}

	cmd.Flags().String("eof", machine.EOF_ERROR.String(), "Input at end of stream: error, zero or keep")

	return cmd
}

// session is the state of an interactive session: a machine whose tape
// survives from one line to the next, plus any incomplete source.
type session struct {
	cmd     *cobra.Command
	cfg     *config.Config
	tape    *bfio.Tape
	machine *machine.Machine
	out     io.Writer
	pending strings.Builder
}

func newSession(cmd *cobra.Command, cfg *config.Config, tape *bfio.Tape, out io.Writer) (s *session, err error) {
	policy, err := cfg.EOFPolicy()
	if err != nil {
		return
	}

	s = &session{
		cmd:     cmd,
		cfg:     cfg,
		tape:    tape,
		machine: machine.NewMachine(&program.Program{}, tape),
		out:     out,
	}
	s.machine.Verbose = cfg.Verbose
	s.machine.EOF = policy

	return
}

// Pending returns true while an open loop waits for more lines.
func (s *session) Pending() bool {
	return s.pending.Len() > 0
}

// Discard drops any incomplete source.
func (s *session) Discard() {
	s.pending.Reset()
}

// Feed runs one line of input, or holds it until its loops are closed.
func (s *session) Feed(line string) (err error) {
	if !s.Pending() {
		if command, ok := strings.CutPrefix(strings.TrimSpace(line), ":"); ok {
			return s.command(command)
		}
	}

	s.pending.WriteString(line)
	s.pending.WriteByte('\n')

	prog, err := parseSource(s.cmd, s.cfg, s.pending.String())
	var open *program.ErrUnmatchedOpen
	if errors.As(err, &open) {
		return nil
	}

	s.pending.Reset()
	if err != nil {
		return
	}

	err = s.machine.Load(prog)
	if err != nil {
		return
	}

	sent := s.tape.Sent
	err = s.machine.Run()
	if s.tape.Sent != sent {
		fmt.Fprintln(s.out)
	}

	return
}

func (s *session) command(command string) (err error) {
	switch strings.TrimSpace(command) {
	case "q", "quit":
		err = errQuit
	case "tape":
		_, err = fmt.Fprint(s.out, s.machine.State().String())
	case "reset":
		s.machine.Reset()
		s.Discard()
	case "h", "help":
		_, err = fmt.Fprint(s.out, replHelp)
	default:
		err = fmt.Errorf("unknown command :%s", command)
	}

	return
}

// lineReader feeds the input operator from the line editor, one line at a
// time.
type lineReader struct {
	rl  *readline.Instance
	buf []byte
}

func (lr *lineReader) Read(p []byte) (n int, err error) {
	if len(lr.buf) == 0 {
		prompt := lr.rl.Config.Prompt
		lr.rl.SetPrompt(INPUT_PROMPT)
		line, rerr := lr.rl.Readline()
		lr.rl.SetPrompt(prompt)

		if errors.Is(rerr, readline.ErrInterrupt) {
			rerr = io.EOF
		}
		if rerr != nil {
			return 0, rerr
		}

		lr.buf = []byte(line + "\n")
	}

	n = copy(p, lr.buf)
	lr.buf = lr.buf[n:]

	return
}

func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, HISTORY_FILE)
}

func runRepl(cmd *cobra.Command, _ []string) error {
	cfg := getConfig(cmd)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          PROMPT,
		HistoryFile:     historyFile(),
		InterruptPrompt: "^C",
		EOFPrompt:       ":quit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	tape := &bfio.Tape{
		Input:  &lineReader{rl: rl},
		Output: rl.Stdout(),
	}

	s, err := newSession(cmd, cfg, tape, rl.Stdout())
	if err != nil {
		return err
	}

	for {
		if s.Pending() {
			rl.SetPrompt(CONTINUE_PROMPT)
		} else {
			rl.SetPrompt(PROMPT)
		}

		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			s.Discard()
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		err = s.Feed(line)
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(rl.Stderr(), "error: %v\n", err)
		}
	}
}
