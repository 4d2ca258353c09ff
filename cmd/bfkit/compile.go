package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/ezrec/bfkit/compiler"
)

func newCompileCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile [file]",
		Short: "Translate a program to C",
		Long: `Translate a program to an equivalent C program.

The output is written to the input's base name with a ".c" extension in the
current directory, or to --output ("-" for stdout). Programs given by --expr
or on stdin are written to stdout unless --output is set.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCompile,
	}

	addSourceFlags(cmd)
	cmd.Flags().StringP("output", "o", "", "Output file, '-' for stdout")
	cmd.Flags().Int("tape-capacity", compiler.DEFAULT_CAPACITY, "Cells in the compiled program's tape")
	cmd.Flags().String("indent", compiler.DEFAULT_INDENT, "Indentation unit")
	cmd.Flags().Bool("watch", false, "Recompile whenever the source file changes")

	return cmd
}

// outputName returns the output file for input: its base name with the
// extension replaced by ext. Sources without a file go to stdout.
func outputName(input string, ext string) string {
	switch input {
	case "", "-", EXPR_SOURCE, STDIN_SOURCE:
		return "-"
	}

	base := filepath.Base(input)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ext
}

func compileOnce(cmd *cobra.Command, args []string) (err error) {
	cfg := getConfig(cmd)

	name, prog, err := loadSource(cmd, args)
	if err != nil {
		return
	}

	c := &compiler.Compiler{
		Verbose:  cfg.Verbose,
		Capacity: cfg.TapeCapacity,
		Indent:   cfg.Indent,
	}

	text, err := c.Compile(prog)
	if err != nil {
		err = fmt.Errorf("%s: %w", name, err)
		return
	}

	output := cfg.Output
	if output == "" {
		output = outputName(name, ".c")
	}

	if output == "-" {
		_, err = fmt.Fprint(cmd.OutOrStdout(), text)
		return
	}

	err = os.WriteFile(output, []byte(text), 0o644)
	if err != nil {
		return
	}

	slog.Info("compiled", "input", name, "output", output, "operators", prog.Len())

	return
}

func runCompile(cmd *cobra.Command, args []string) error {
	watch, _ := cmd.Flags().GetBool("watch")
	if !watch {
		return compileOnce(cmd, args)
	}

	if len(args) != 1 || args[0] == "-" {
		return errors.New("--watch needs a source file")
	}

	if err := compileOnce(cmd, args); err != nil {
		slog.Error("compile failed", "error", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	return watchFile(ctx, args[0], func() {
		if err := compileOnce(cmd, args); err != nil {
			slog.Error("compile failed", "error", err)
		}
	})
}

// watchFile calls changed after every write to path, until ctx is done.
// The parent directory is watched so editors that replace the file on save
// are followed.
func watchFile(ctx context.Context, path string, changed func()) (err error) {
	path, err = filepath.Abs(path)
	if err != nil {
		return
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return
	}
	defer watcher.Close()

	err = watcher.Add(filepath.Dir(path))
	if err != nil {
		return
	}

	slog.Info("watching", "file", path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			changed()
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watch", "error", werr)
		}
	}
}
