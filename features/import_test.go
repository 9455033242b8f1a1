package features

import (
	"context"
	"testing"

	"github.com/wippyai/swl/errors"
	"github.com/wippyai/swl/linker"
)

func TestImport(t *testing.T) {
	tests := []struct {
		name    string
		sources []string
		want    string
	}{
		{
			name: "simple",
			sources: []string{
				`(module
					(import "1" (file))
					(func $a)
					(func $b))`,
				`(module
					(func $c)
					(func $d))`,
			},
			want: `(module (func $a) (func $b) (func $c) (func $d))`,
		},
		{
			name: "dedupe",
			sources: []string{
				`(module
					(import "1" (file))
					(import "1" (file))
					(func $a)
					(func $b))`,
				`(module (func $c) (func $d))`,
			},
			want: `(module (func $a) (func $b) (func $c) (func $d))`,
		},
		{
			name: "cascade",
			sources: []string{
				`(module (import "1" (file)) (func $a) (func $b))`,
				`(module (import "2" (file)) (func $c) (func $d))`,
				`(module (func $e))`,
			},
			want: `(module (func $a) (func $b) (func $c) (func $d) (func $e))`,
		},
		{
			name: "diamond",
			sources: []string{
				`(module (import "1" (file)) (import "2" (file)) (func $main))`,
				`(module (import "3" (file)) (func $left))`,
				`(module (import "3" (file)) (func $right))`,
				`(module (func $shared))`,
			},
			want: `(module (func $main) (func $left) (func $shared) (func $right))`,
		},
		{
			name: "wasm imports untouched",
			sources: []string{
				`(module (import "env" "f" (func $f)) (import "env" (memory 1)))`,
			},
			want: `(module (import "env" "f" (func $f)) (import "env" (memory 1)))`,
		},
		{
			name: "silent cycle",
			sources: []string{
				`(module (import "1" (file)) (func $a))`,
				`(module (import "0" (file)) (func $b))`,
			},
			want: `(module (func $a) (func $b))`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustRun(t, tt.sources, feature(t, "import"))
			if got != tt.want {
				t.Errorf("got  %s\nwant %s", got, tt.want)
			}
		})
	}
}

func TestImport_Depth(t *testing.T) {
	l := newLinker(t, files(
		`(module (import "1" (file)))`,
		`(module (func $f (block (nop))))`,
	), linker.Options{Features: []linker.Feature{feature(t, "import")}})
	m, err := l.LinkFile(context.Background(), "0")
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]int{"module": 0, "func": 1, "block": 2, "nop": 3}
	for n := range m.Nodes() {
		if n.Depth != want[n.Name] {
			t.Errorf("%s depth = %d, want %d", n.Name, n.Depth, want[n.Name])
		}
	}
}

func TestImport_Errors(t *testing.T) {
	tests := []struct {
		name    string
		sources []string
		opts    linker.Options
		want    error
	}{
		{
			name:    "path not a string",
			sources: []string{`(module (import lib (file)))`},
			want:    errors.ErrInvalidImport,
		},
		{
			name:    "missing file",
			sources: []string{`(module (import "nope" (file)))`},
			want:    errors.ErrNotFound,
		},
		{
			name:    "imported file is not a module",
			sources: []string{`(module (import "1" (file)))`, `(func $x)`},
			want:    errors.ErrNotAModule,
		},
		{
			name:    "imported file does not parse",
			sources: []string{`(module (import "1" (file)))`, `(module`},
			want:    errors.ErrUnexpectedEOF,
		},
		{
			name: "rejected cycle",
			sources: []string{
				`(module (import "1" (file)))`,
				`(module (import "2" (file)))`,
				`(module (import "0" (file)))`,
			},
			opts: linker.Options{RejectImportCycles: true},
			want: errors.ErrImportCycle,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := tt.opts
			opts.Features = []linker.Feature{feature(t, "import")}
			l := newLinker(t, files(tt.sources...), opts)
			_, err := l.LinkFile(context.Background(), "0")
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestImport_NotAModule(t *testing.T) {
	_, err := run(t, []string{`(func)`}, feature(t, "import"))
	if !errors.Is(err, errors.ErrNotAModule) {
		t.Errorf("error = %v, want not a module", err)
	}
}

func TestDataImport(t *testing.T) {
	got := mustRun(t, []string{
		`(module
			(data (i32.const 0) (import "1" (raw))))`,
		"\x41\x42",
	}, feature(t, "data_import"))
	if want := `(module (data (i32.const 0) "\41\42"))`; got != want {
		t.Errorf("got  %s\nwant %s", got, want)
	}
}

func TestDataImport_BinaryBytes(t *testing.T) {
	got := mustRun(t, []string{
		`(module (memory 1) (data (memory 0) (offset (i32.const 8)) (import "1" (raw)) "!"))`,
		"\x00\xff\n",
	}, feature(t, "data_import"))
	if want := `(module (memory 1) (data (memory 0) (offset (i32.const 8)) "\00\ff\0a" "!"))`; got != want {
		t.Errorf("got  %s\nwant %s", got, want)
	}
}

func TestDataImport_Errors(t *testing.T) {
	_, err := run(t, []string{`(module (data (import 1 (raw))))`}, feature(t, "data_import"))
	if !errors.Is(err, errors.ErrInvalidImport) {
		t.Errorf("error = %v, want invalid import", err)
	}
	_, err = run(t, []string{`(module (data (import "missing" (raw))))`}, feature(t, "data_import"))
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("error = %v, want not found", err)
	}
}
