package main

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newDumpCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump [file]",
		Short: "List the resolved operators of a program",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runDump,
	}

	addSourceFlags(cmd)

	return cmd
}

func runDump(cmd *cobra.Command, args []string) error {
	name, prog, err := loadSource(cmd, args)
	if err != nil {
		return err
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(cmd.OutOrStdout())
	tw.SetStyle(table.StyleLight)
	tw.SetTitle("%s", name)
	tw.AppendHeader(table.Row{"#", "Op", "Target", "Line", "Col"})

	for index, op := range prog.All() {
		target := ""
		if op.Kind.Jumps() {
			target = strconv.Itoa(op.Target)
		}

		pos := prog.Debug(index).Pos
		tw.AppendRow(table.Row{index, op.Kind.String(), target, pos.Line, pos.Column})
	}

	tw.AppendFooter(table.Row{"", "", "", "Total", prog.Len()})
	tw.Render()

	return nil
}
