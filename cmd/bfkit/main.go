// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Command bfkit runs, traces, compiles and lists brainfuck programs.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/tebeka/atexit"

	"github.com/ezrec/bfkit/compiler"
	"github.com/ezrec/bfkit/machine"
	"github.com/ezrec/bfkit/program"
)

// Process exit codes.
const (
	EXIT_OK      = 0
	EXIT_FAILURE = 1
	EXIT_PARSE   = 2
	EXIT_RUNTIME = 3
)

// exitCode maps an error from a command to the process exit code.
func exitCode(err error) int {
	var runtime *machine.ErrRuntime

	switch {
	case err == nil:
		return EXIT_OK
	case errors.Is(err, program.ErrParse):
		return EXIT_PARSE
	case errors.As(err, &runtime), errors.Is(err, compiler.ErrEmit):
		return EXIT_RUNTIME
	default:
		return EXIT_FAILURE
	}
}

func main() {
	err := newRootCmd().Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "bfkit: %v\n", err)
	}

	atexit.Exit(exitCode(err))
}
