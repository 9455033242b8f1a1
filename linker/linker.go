package linker

import (
	"context"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/wippyai/swl/ast"
	"github.com/wippyai/swl/errors"
	"github.com/wippyai/swl/eval"
	"github.com/wippyai/swl/loader"
	"github.com/wippyai/swl/parser"
)

// Feature is a named transform over a top-level module. Apply may mutate
// module in place and may call back into the linker to load other files.
type Feature struct {
	Name  string
	Apply func(ctx context.Context, module *ast.Node, l *Linker) error
}

// Evaluator runs a module source exporting a zero-argument "main" and
// returns its single result.
type Evaluator interface {
	Eval(ctx context.Context, source string) (eval.Value, error)
}

// Options configures linker behavior.
type Options struct {
	// Evaluator is used by features that fold constant expressions. When
	// nil, a wazero evaluator is created on first use and released by
	// Close.
	Evaluator Evaluator
	// Logger overrides the package logger.
	Logger   *zap.Logger
	Features []Feature
	// RejectImportCycles makes Load fail when a file imports one of the
	// files currently being resolved.
	RejectImportCycles bool
}

// DefaultOptions returns default linker configuration: no features and
// silent deduplication.
func DefaultOptions() Options {
	return Options{}
}

// Linker orchestrates loading and the feature pipeline.
type Linker struct {
	loader    loader.Loader
	evaluator Evaluator
	ownEval   *eval.Evaluator
	log       *zap.Logger
	loaded    map[string]struct{}
	files     []string
	stack     []string
	options   Options
}

var _ loader.Loader = (*Linker)(nil)

// New creates a Linker over ld.
func New(ld loader.Loader, opts Options) *Linker {
	log := opts.Logger
	if log == nil {
		log = Logger()
	}
	return &Linker{
		loader:    ld,
		evaluator: opts.Evaluator,
		log:       log,
		loaded:    make(map[string]struct{}),
		options:   opts,
	}
}

// NewWithDefaults creates a Linker with default options.
func NewWithDefaults(ld loader.Loader) *Linker {
	return New(ld, DefaultOptions())
}

// Loader returns the underlying loader.
func (l *Linker) Loader() loader.Loader {
	return l.loader
}

// Options returns the configuration.
func (l *Linker) Options() Options {
	return l.options
}

// Log returns the logger used by this linker and its features.
func (l *Linker) Log() *zap.Logger {
	return l.log
}

// Files returns the canonical identities of every file read so far, in
// first-read order. Raw data files are included.
func (l *Linker) Files() []string {
	return slices.Clone(l.files)
}

// LinkFile loads path and runs every feature over it.
func (l *Linker) LinkFile(ctx context.Context, path string) (*ast.Node, error) {
	canonical, err := l.loader.Canonicalize(path)
	if err != nil {
		return nil, err
	}
	module, err := l.Load(path)
	if err != nil {
		return nil, err
	}
	l.stack = append(l.stack, canonical)
	defer l.pop()
	return l.link(ctx, module, canonical)
}

// LinkSource parses src and runs every feature over it. Relative imports
// resolve against the loader.
func (l *Linker) LinkSource(ctx context.Context, src string) (*ast.Node, error) {
	module, err := parser.Parse(src)
	if err != nil {
		return nil, err
	}
	return l.link(ctx, module, "")
}

// LinkModule runs every feature over an already parsed module.
func (l *Linker) LinkModule(ctx context.Context, module *ast.Node) (*ast.Node, error) {
	return l.link(ctx, module, "")
}

func (l *Linker) link(ctx context.Context, module *ast.Node, path string) (*ast.Node, error) {
	for _, f := range l.options.Features {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		start := time.Now()
		l.log.Debug("feature started", zap.String("feature", f.Name), zap.String("path", path))
		if err := f.Apply(ctx, module, l); err != nil {
			return nil, featureError(f.Name, path, err)
		}
		l.log.Debug("feature finished",
			zap.String("feature", f.Name),
			zap.Duration("elapsed", time.Since(start)),
		)
	}
	return module, nil
}

// Load returns the parsed module at path. A path whose canonical identity
// was loaded before in this run yields an empty (module).
func (l *Linker) Load(path string) (*ast.Node, error) {
	canonical, err := l.loader.Canonicalize(path)
	if err != nil {
		return nil, err
	}
	if l.options.RejectImportCycles && slices.Contains(l.stack, canonical) {
		chain := append(slices.Clone(l.stack), canonical)
		return nil, errors.New(errors.PhaseLoad, errors.KindImportCycle).
			Path(chain...).
			Detail("%q imports itself", path).
			Build()
	}
	if _, ok := l.loaded[canonical]; ok {
		l.log.Debug("duplicate import skipped", zap.String("path", path), zap.String("identity", canonical))
		return ast.NewModule(), nil
	}

	module, err := loader.LoadModule(l, path)
	if err != nil {
		return nil, err
	}
	l.loaded[canonical] = struct{}{}
	l.log.Debug("module loaded", zap.String("path", path), zap.String("identity", canonical))
	return module, nil
}

// Import loads path and calls resolve on the result while path is on the
// import stack, so nested imports of path are recognised as cycles.
func (l *Linker) Import(path string, resolve func(module *ast.Node) error) (*ast.Node, error) {
	canonical, err := l.loader.Canonicalize(path)
	if err != nil {
		return nil, err
	}
	module, err := l.Load(path)
	if err != nil {
		return nil, err
	}
	l.stack = append(l.stack, canonical)
	defer l.pop()
	if err := resolve(module); err != nil {
		return nil, err
	}
	return module, nil
}

// Canonicalize resolves path through the underlying loader. Together with
// LoadRaw it makes the linker a loader.Loader that records what it reads.
func (l *Linker) Canonicalize(path string) (string, error) {
	return l.loader.Canonicalize(path)
}

// LoadRaw returns the bytes at path without parsing or deduplication. The
// file is recorded in Files even when its contents later fail to parse.
func (l *Linker) LoadRaw(path string) ([]byte, error) {
	data, err := l.loader.LoadRaw(path)
	if err != nil {
		return nil, err
	}
	if canonical, err := l.loader.Canonicalize(path); err == nil && !slices.Contains(l.files, canonical) {
		l.files = append(l.files, canonical)
	}
	l.log.Debug("file read", zap.String("path", path), zap.Int("bytes", len(data)))
	return data, nil
}

// Evaluator returns the configured evaluator, creating the default wazero
// evaluator on first use.
func (l *Linker) Evaluator(ctx context.Context) Evaluator {
	if l.evaluator == nil {
		l.ownEval = eval.New(ctx)
		l.evaluator = l.ownEval
	}
	return l.evaluator
}

// Close releases the default evaluator if the linker created one.
func (l *Linker) Close(ctx context.Context) error {
	if l.ownEval == nil {
		return nil
	}
	err := l.ownEval.Close(ctx)
	l.ownEval = nil
	l.evaluator = l.options.Evaluator
	return err
}

func (l *Linker) pop() {
	l.stack = l.stack[:len(l.stack)-1]
}
