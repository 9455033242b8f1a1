package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/swl/ast"
	"github.com/wippyai/swl/config"
	"github.com/wippyai/swl/errors"
	"github.com/wippyai/swl/features"
	"github.com/wippyai/swl/linker"
	"github.com/wippyai/swl/loader"
	"github.com/wippyai/swl/pretty"
	"github.com/wippyai/swl/wat"
	"github.com/wippyai/swl/watch"
)

func runLink(cmd *cobra.Command, args []string) error {
	input := "-"
	if len(args) == 1 {
		input = args[0]
	}

	log, err := setupLogging(flags.verbose)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	switch {
	case flags.interactive:
		if input == "-" {
			return fmt.Errorf("interactive mode needs an input file")
		}
		if !isTerminal(os.Stdout) {
			return fmt.Errorf("interactive mode needs a terminal")
		}
		return runInteractive(ctx, cfg, input)

	case flags.watch:
		if input == "-" {
			return fmt.Errorf("watch mode needs an input file")
		}
		return runWatch(ctx, cfg, input, log)
	}

	var src []byte
	if input == "-" {
		if src, err = readStdin(); err != nil {
			return err
		}
	}
	res, err := build(ctx, cfg, input, src)
	if err != nil {
		return err
	}
	return writeOutput(cfg.Output, res.output)
}

// result is one finished link.
type result struct {
	output []byte
	files  []string
}

// build links input, or src when input is "-", and renders the output
// cfg asks for. The files read are returned even on failure.
func build(ctx context.Context, cfg *config.Config, input string, src []byte) (result, error) {
	feats, err := features.Resolve(cfg.Features)
	if err != nil {
		return result{}, err
	}
	l := linker.New(loader.NewFileSystemLoader(cfg.Root), linker.Options{
		Features:           feats,
		RejectImportCycles: cfg.RejectImportCycles,
	})
	defer l.Close(ctx)

	var module *ast.Node
	if input == "-" {
		module, err = l.LinkSource(ctx, string(src))
	} else {
		module, err = l.LinkFile(ctx, input)
	}
	res := result{files: l.Files()}
	if err != nil {
		return res, err
	}

	text := module.String() + "\n"
	if cfg.Pretty {
		if text, err = pretty.Format(text); err != nil {
			return res, err
		}
	}
	res.output = []byte(text)

	if cfg.EmitBinary {
		if res.output, err = assemble(ctx, cfg.Wat2Wasm, res.output); err != nil {
			return res, err
		}
	}
	return res, nil
}

// assemble compiles module text with the configured wat2wasm, or in
// process when the command is config.BuiltinAssembler.
func assemble(ctx context.Context, tool config.Wat2WasmConfig, text []byte) ([]byte, error) {
	if tool.Command == config.BuiltinAssembler {
		bin, err := wat.Compile(string(text))
		if err != nil {
			return nil, errors.Wrap(errors.PhaseLink, errors.KindCompile, err, "assemble linked module")
		}
		return bin, nil
	}

	dir, err := os.MkdirTemp("", "swl-")
	if err != nil {
		return nil, errors.Wrap(errors.PhaseLink, errors.KindIO, err, "create temporary directory")
	}
	defer os.RemoveAll(dir)

	in := filepath.Join(dir, "module.wat")
	out := filepath.Join(dir, "module.wasm")
	if err := os.WriteFile(in, text, 0o600); err != nil {
		return nil, errors.IO(in, err)
	}

	args := append(append([]string{}, tool.Flags...), in, "-o", out)
	var stderr bytes.Buffer
	c := exec.CommandContext(ctx, tool.Command, args...)
	c.Stderr = &stderr
	if err := c.Run(); err != nil {
		return nil, errors.New(errors.PhaseLink, errors.KindIO).
			Cause(err).
			Detail("%s failed: %s", tool.Command, bytes.TrimSpace(stderr.Bytes())).
			Build()
	}

	bin, err := os.ReadFile(out)
	if err != nil {
		return nil, errors.IO(out, err)
	}
	return bin, nil
}

// writeOutput writes data to path, or stdout for "-".
func writeOutput(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(errors.PhaseLink, errors.KindIO, err, "create output directory")
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.PhaseLink, errors.KindIO, err, "write "+path)
	}
	return nil
}

func runWatch(ctx context.Context, cfg *config.Config, input string, log *zap.Logger) error {
	w, err := watch.New(watch.Options{Debounce: cfg.Watch.Debounce, Logger: log})
	if err != nil {
		return err
	}
	defer w.Close()

	return w.Run(ctx, func(ctx context.Context) ([]string, error) {
		start := time.Now()
		res, err := build(ctx, cfg, input, nil)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return res.files, err
		}
		if err := writeOutput(cfg.Output, res.output); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return res.files, err
		}
		if cfg.Output != "-" {
			fmt.Fprintf(os.Stderr, "linked %s -> %s in %s\n", input, cfg.Output, time.Since(start).Round(time.Millisecond))
		}
		return res.files, nil
	})
}
