package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ezrec/bfkit/config"
)

// Version information (set at build time).
var Version = "0.1.0"

// configKey is used to store config in context.
type configKey struct{}

// newRootCmd creates the root command and its subcommands.
func newRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "bfkit",
		Short: "bfkit - brainfuck interpreter and C compiler",
		Long: `bfkit runs brainfuck programs on a growable tape, traces them step by
step, or translates them into an equivalent C program.

Every character outside "><+-.,[]" is a comment. With --halt (the default)
"~" stops the program.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}

			slog.SetDefault(newLogger(cmd.ErrOrStderr(), cfg.Verbose))

			cmd.SetContext(context.WithValue(cmd.Context(), configKey{}, cfg))

			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./"+config.DefaultConfigFile+")")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().Bool("halt", true, "Treat '~' as the halt operator")
	rootCmd.PersistentFlags().Bool("macros", false, "Expand $(...) Starlark expressions before parsing")
	rootCmd.PersistentFlags().StringToIntP("define", "D", nil, "Integer constant for macros (NAME=VALUE)")

	rootCmd.AddCommand(newRunCommand())
	rootCmd.AddCommand(newCompileCommand())
	rootCmd.AddCommand(newDumpCommand())
	rootCmd.AddCommand(newReplCommand())

	return rootCmd
}

// newLogger returns a text logger on w; debug level when verbose, warnings
// only otherwise.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// getConfig retrieves the config from the command context.
func getConfig(cmd *cobra.Command) *config.Config {
	if cfg, ok := cmd.Context().Value(configKey{}).(*config.Config); ok {
		return cfg
	}

	// Loading the defaults alone cannot fail.
	cfg, _ := config.Load("", nil)
	return cfg
}
