package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ezrec/bfkit/config"
	"github.com/ezrec/bfkit/macro"
	"github.com/ezrec/bfkit/program"
)

// Source names used in messages when the program has no file.
const (
	EXPR_SOURCE  = "<expr>"
	STDIN_SOURCE = "<stdin>"
)

var errNoSource = errors.New("no program: pass a file, '-' for stdin, or --expr")

// addSourceFlags adds the flags shared by commands that read a program.
func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("expr", "e", "", "Program text, instead of a file")
}

// readSource returns the program text and a name for it.
func readSource(cmd *cobra.Command, args []string) (name string, text string, err error) {
	expr, _ := cmd.Flags().GetString("expr")

	switch {
	case expr != "":
		if len(args) > 0 {
			err = fmt.Errorf("--expr cannot be combined with %q", args[0])
			return
		}
		name, text = EXPR_SOURCE, expr
	case len(args) == 0:
		err = errNoSource
	case args[0] == "-":
		var data []byte
		data, err = io.ReadAll(cmd.InOrStdin())
		name, text = STDIN_SOURCE, string(data)
	default:
		var data []byte
		data, err = os.ReadFile(args[0])
		name, text = args[0], string(data)
	}

	return
}

// newExpander returns a macro expander holding the configured defines, with
// those given by -D taking precedence.
func newExpander(cmd *cobra.Command, cfg *config.Config) *macro.Expander {
	ex := &macro.Expander{Verbose: cfg.Verbose}

	for name, value := range cfg.Defines {
		ex.Define(name, value)
	}

	defines, _ := cmd.Flags().GetStringToInt("define")
	for name, value := range defines {
		ex.Define(name, value)
	}

	return ex
}

// parseSource expands macros, if enabled, and parses text.
func parseSource(cmd *cobra.Command, cfg *config.Config, text string) (prog *program.Program, err error) {
	if cfg.Macros {
		text, err = newExpander(cmd, cfg).Expand(text)
		if err != nil {
			return
		}
	}

	parser := &program.Parser{
		Verbose: cfg.Verbose,
		Halt:    cfg.Halt,
	}

	return parser.ParseString(text)
}

// loadSource reads and parses the program named by args or --expr.
func loadSource(cmd *cobra.Command, args []string) (name string, prog *program.Program, err error) {
	cfg := getConfig(cmd)

	name, text, err := readSource(cmd, args)
	if err != nil {
		return
	}

	prog, err = parseSource(cmd, cfg, text)
	if err != nil {
		err = fmt.Errorf("%s: %w", name, err)
	}

	return
}
