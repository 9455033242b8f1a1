package linker

import (
	"context"
	"strings"
	"testing"

	"github.com/wippyai/swl/ast"
	"github.com/wippyai/swl/errors"
	"github.com/wippyai/swl/eval"
	"github.com/wippyai/swl/loader"
)

func rename(from, to string) Feature {
	return Feature{
		Name: "rename-" + from,
		Apply: func(_ context.Context, module *ast.Node, _ *Linker) error {
			for n := range module.Nodes() {
				if n.Name == from {
					n.Name = to
				}
			}
			return nil
		},
	}
}

func TestLinkFile_FeatureOrder(t *testing.T) {
	ld := loader.NewMemoryLoader(map[string]string{
		"main": "(module (a) (b))",
	})
	l := New(ld, Options{Features: []Feature{rename("a", "b"), rename("b", "c")}})

	got, err := l.LinkFile(context.Background(), "main")
	if err != nil {
		t.Fatalf("LinkFile: %v", err)
	}
	if want := "(module (c) (c))"; got.String() != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestLinkFile_FailFast(t *testing.T) {
	ld := loader.NewMemoryLoader(map[string]string{"main": "(module)"})
	ran := false
	l := New(ld, Options{Features: []Feature{
		{Name: "fail", Apply: func(context.Context, *ast.Node, *Linker) error {
			return errors.NotAModule("fail", "(x)")
		}},
		{Name: "after", Apply: func(context.Context, *ast.Node, *Linker) error {
			ran = true
			return nil
		}},
	}})

	_, err := l.LinkFile(context.Background(), "main")
	if !errors.Is(err, errors.ErrNotAModule) {
		t.Fatalf("error = %v, want not a module", err)
	}
	var fe *FeatureError
	if !errors.As(err, &fe) || fe.Feature != "fail" || fe.Path != "main" {
		t.Errorf("error = %#v, want FeatureError for fail in main", err)
	}
	if ran {
		t.Error("feature after failure ran")
	}
}

func TestLoad_Dedup(t *testing.T) {
	ld := loader.NewMemoryLoader(map[string]string{"b": "(module (func $c))"})
	l := NewWithDefaults(ld)

	first, err := l.Load("b")
	if err != nil {
		t.Fatal(err)
	}
	if first.String() != "(module (func $c))" {
		t.Errorf("first load = %s", first)
	}
	second, err := l.Load("b")
	if err != nil {
		t.Fatal(err)
	}
	if second.String() != "(module)" {
		t.Errorf("second load = %s, want (module)", second)
	}
	if files := l.Files(); len(files) != 1 || files[0] != "b" {
		t.Errorf("Files() = %v, want [b]", files)
	}
}

func TestImport_Cycle(t *testing.T) {
	files := map[string]string{
		"a": "(module)",
		"b": "(module)",
	}
	resolveA := func(l *Linker) error {
		_, err := l.Import("b", func(*ast.Node) error {
			_, err := l.Import("a", func(*ast.Node) error { return nil })
			return err
		})
		return err
	}

	t.Run("silent by default", func(t *testing.T) {
		l := NewWithDefaults(loader.NewMemoryLoader(files))
		if _, err := l.Import("a", func(*ast.Node) error { return resolveA(l) }); err != nil {
			t.Fatalf("Import: %v", err)
		}
	})

	t.Run("rejected", func(t *testing.T) {
		l := New(loader.NewMemoryLoader(files), Options{RejectImportCycles: true})
		_, err := l.Import("a", func(*ast.Node) error { return resolveA(l) })
		if !errors.Is(err, errors.ErrImportCycle) {
			t.Fatalf("error = %v, want import cycle", err)
		}
		if !strings.Contains(err.Error(), "a -> b -> a") {
			t.Errorf("error %q does not show the chain", err)
		}
		if len(l.stack) != 0 {
			t.Errorf("stack not unwound: %v", l.stack)
		}
	})
}

func TestLinkSource_ParseError(t *testing.T) {
	l := NewWithDefaults(loader.NewMemoryLoader(nil))
	_, err := l.LinkSource(context.Background(), "(module")
	if !errors.Is(err, errors.ErrUnexpectedEOF) {
		t.Errorf("error = %v, want unexpected eof", err)
	}
}

func TestLoad_ParseErrorCarriesPath(t *testing.T) {
	l := NewWithDefaults(loader.NewMemoryLoader(map[string]string{"bad": "(module))"}))
	_, err := l.Load("bad")
	if !errors.Is(err, errors.ErrStrayData) {
		t.Fatalf("error = %v, want stray data", err)
	}
	if !strings.Contains(err.Error(), "bad") {
		t.Errorf("error %q does not name the file", err)
	}
	if files := l.Files(); len(files) != 1 || files[0] != "bad" {
		t.Errorf("Files() = %v, want the broken file", files)
	}
	if _, err := l.Load("bad"); !errors.Is(err, errors.ErrStrayData) {
		t.Errorf("second load error = %v, want the parse error again", err)
	}
}

func TestLinker_AsLoader(t *testing.T) {
	l := NewWithDefaults(loader.NewMemoryLoader(map[string]string{
		"lib":  "(module (func $f))",
		"blob": "raw",
	}))

	m, err := loader.LoadModule(l, "lib")
	if err != nil {
		t.Fatal(err)
	}
	if m.String() != "(module (func $f))" {
		t.Errorf("LoadModule = %s", m)
	}
	if _, err := l.LoadRaw("blob"); err != nil {
		t.Fatal(err)
	}
	if files := l.Files(); len(files) != 2 || files[0] != "lib" || files[1] != "blob" {
		t.Errorf("Files() = %v, want [lib blob]", files)
	}
}

type constEvaluator struct{ v eval.Value }

func (c constEvaluator) Eval(context.Context, string) (eval.Value, error) { return c.v, nil }

func TestEvaluator(t *testing.T) {
	ctx := context.Background()

	custom := constEvaluator{eval.Value{Type: eval.I32, Bits: 7}}
	l := New(loader.NewMemoryLoader(nil), Options{Evaluator: custom})
	if l.Evaluator(ctx) != Evaluator(custom) {
		t.Error("custom evaluator not used")
	}
	if err := l.Close(ctx); err != nil {
		t.Errorf("Close: %v", err)
	}

	l = NewWithDefaults(loader.NewMemoryLoader(nil))
	v, err := l.Evaluator(ctx).Eval(ctx, `(module (func (export "main") (result i32) (i32.const 7)))`)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if v.String() != "7" {
		t.Errorf("Eval = %s, want 7", v)
	}
	if err := l.Close(ctx); err != nil {
		t.Errorf("Close: %v", err)
	}
}
