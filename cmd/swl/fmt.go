package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/wippyai/swl/errors"
	"github.com/wippyai/swl/pretty"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [input]",
	Short: "Pretty print module text without linking",
	Long: `Reformat module text. Comments are kept and unlinked sources are
accepted. An input of "-" (the default) reads from stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFmt,
}

func runFmt(cmd *cobra.Command, args []string) error {
	var (
		src []byte
		err error
	)
	if len(args) == 0 || args[0] == "-" {
		src, err = readStdin()
	} else {
		src, err = os.ReadFile(args[0])
		if err != nil {
			err = errors.IO(args[0], err)
		}
	}
	if err != nil {
		return err
	}

	out, err := pretty.Format(string(src))
	if err != nil {
		return err
	}

	output := "-"
	if cmd.Flags().Changed("output") {
		output = flags.output
	}
	return writeOutput(output, []byte(out))
}
