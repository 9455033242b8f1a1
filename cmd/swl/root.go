package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/wippyai/swl/config"
	"github.com/wippyai/swl/errors"
	"github.com/wippyai/swl/features"
)

var flags struct {
	config        string
	output        string
	root          string
	features      string
	wat2wasmFlags string
	pretty        bool
	emitBinary    bool
	rejectCycles  bool
	watch         bool
	interactive   bool
	verbose       bool
}

var rootCmd = &cobra.Command{
	Use:   "swl [input]",
	Short: "Link WebAssembly text modules",
	Long: `swl links WebAssembly text modules.

The input is parsed and run through the link passes in order. Available
passes: ` + strings.Join(features.Names(), ", ") + `.

An input of "-" (the default) reads from stdin. Settings come from swl.yaml
in the working directory or --config, then SWL_* environment variables,
then flags.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runLink,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.config, "config", "", "config file path (default ./"+config.DefaultFile+" if present)")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "verbose logging")
	pf.StringVarP(&flags.output, "output", "o", "", `output path, "-" for stdout`)
	pf.BoolVarP(&flags.pretty, "pretty", "p", false, "pretty print the output")

	f := rootCmd.Flags()
	f.StringVarP(&flags.root, "root", "r", "", "root for import path resolution (default the working directory)")
	f.StringVar(&flags.features, "features", "", "comma separated pass list (default all)")
	f.BoolVarP(&flags.emitBinary, "emit-binary", "c", false, "compile to a binary with wat2wasm")
	f.StringVar(&flags.wat2wasmFlags, "wat2wasm-flags", "", "additional flags for wat2wasm")
	f.BoolVar(&flags.rejectCycles, "reject-import-cycles", false, "fail on circular file imports")
	f.BoolVar(&flags.watch, "watch", false, "relink whenever an input file changes")
	f.BoolVarP(&flags.interactive, "interactive", "i", false, "toggle passes in a terminal UI")

	rootCmd.AddCommand(fmtCmd)
}

// loadConfig resolves the configuration file, environment and flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path := flags.config
	if path == "" {
		if _, err := os.Stat(config.DefaultFile); err == nil {
			path = config.DefaultFile
		}
	}
	cfg, err := config.LoadConfigWithEnvOverrides(path)
	if err != nil {
		return nil, err
	}

	changed := cmd.Flags().Changed
	if changed("root") {
		cfg.Root = flags.root
	}
	if changed("output") {
		cfg.Output = flags.output
	}
	if changed("features") {
		cfg.Features = []string{}
		for _, name := range strings.Split(flags.features, ",") {
			if name = strings.TrimSpace(name); name != "" {
				cfg.Features = append(cfg.Features, name)
			}
		}
	}
	if changed("pretty") {
		cfg.Pretty = flags.pretty
	}
	if changed("emit-binary") {
		cfg.EmitBinary = flags.emitBinary
	}
	if changed("wat2wasm-flags") {
		cfg.Wat2Wasm.Flags = strings.Fields(flags.wat2wasmFlags)
	}
	if changed("reject-import-cycles") {
		cfg.RejectImportCycles = flags.rejectCycles
	}
	if err := config.Validate(cfg); err != nil {
		return nil, errors.New(errors.PhaseConfig, errors.KindInvalidConfig).
			Cause(err).
			Detail("command line flags").
			Build()
	}
	return cfg, nil
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// readStdin reads the whole of stdin, refusing to wait on a terminal.
func readStdin() ([]byte, error) {
	if isTerminal(os.Stdin) {
		return nil, fmt.Errorf("refusing to read a module from a terminal, pass a file or pipe input")
	}
	return io.ReadAll(os.Stdin)
}
