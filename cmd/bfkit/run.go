package main

import (
	"bufio"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	bfio "github.com/ezrec/bfkit/io"
	"github.com/ezrec/bfkit/machine"
)

func newRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [file]",
		Short: "Interpret a program",
		Long: `Interpret a program on a growable tape. The input operator reads bytes
from stdin; the output operator writes bytes to stdout as they are produced.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runRun,
	}

	addSourceFlags(cmd)
	cmd.Flags().Bool("trace", false, "Print the machine state to stderr before every step")
	cmd.Flags().String("eof", machine.EOF_ERROR.String(), "Input at end of stream: error, zero or keep")

	return cmd
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg := getConfig(cmd)

	policy, err := cfg.EOFPolicy()
	if err != nil {
		return err
	}

	name, prog, err := loadSource(cmd, args)
	if err != nil {
		return err
	}

	channel := &bfio.Tape{
		Input:  bufio.NewReader(cmd.InOrStdin()),
		Output: cmd.OutOrStdout(),
	}

	m := machine.NewMachine(prog, channel)
	m.Verbose = cfg.Verbose
	m.EOF = policy

	if cfg.Trace {
		err = m.RunTrace(newTracer(cmd.ErrOrStderr()))
	} else {
		err = m.Run()
	}
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	slog.Info("program has ended",
		"program", name,
		"steps", m.Steps,
		"cells", m.Tape.Len(),
		"received", channel.Received,
		"sent", channel.Sent)

	return nil
}
