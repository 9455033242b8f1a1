package swl

import (
	"context"

	"github.com/wippyai/swl/ast"
	"github.com/wippyai/swl/features"
	"github.com/wippyai/swl/linker"
	"github.com/wippyai/swl/loader"
	"github.com/wippyai/swl/pretty"
)

// Options tune the one-call helpers.
type Options struct {
	// Features lists pass names in run order. Nil means every feature.
	Features []string
	// Pretty formats the result.
	Pretty bool
	// RejectImportCycles fails on circular file imports.
	RejectImportCycles bool
}

// LinkFile links path, resolving imports against root, with every feature.
func LinkFile(ctx context.Context, root, path string) (string, error) {
	return LinkFileWithOptions(ctx, loader.NewFileSystemLoader(root), path, Options{})
}

// LinkString links module text with every feature. Imports resolve against
// root.
func LinkString(ctx context.Context, root, src string) (string, error) {
	return link(ctx, loader.NewFileSystemLoader(root), Options{}, func(l *linker.Linker) (*ast.Node, error) {
		return l.LinkSource(ctx, src)
	})
}

// LinkFileWithOptions links path from ld.
func LinkFileWithOptions(ctx context.Context, ld loader.Loader, path string, opts Options) (string, error) {
	return link(ctx, ld, opts, func(l *linker.Linker) (*ast.Node, error) {
		return l.LinkFile(ctx, path)
	})
}

func link(ctx context.Context, ld loader.Loader, opts Options, run func(*linker.Linker) (*ast.Node, error)) (string, error) {
	feats := features.Default()
	if opts.Features != nil {
		var err error
		if feats, err = features.Resolve(opts.Features); err != nil {
			return "", err
		}
	}

	l := linker.New(ld, linker.Options{Features: feats, RejectImportCycles: opts.RejectImportCycles})
	defer l.Close(ctx)

	module, err := run(l)
	if err != nil {
		return "", err
	}
	if opts.Pretty {
		return pretty.Format(module.String())
	}
	return module.String(), nil
}

// Format pretty prints module text without linking it.
func Format(src string) (string, error) {
	return pretty.Format(src)
}
