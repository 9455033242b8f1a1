package wat

import (
	"bytes"
	"context"
	"testing"

	"github.com/tetratelabs/wazero"

	"github.com/wippyai/swl/errors"
)

// run compiles source, instantiates it and calls its "main" export.
func run(t *testing.T, source string) []uint64 {
	t.Helper()
	bin, err := Compile(source)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	ctx := context.Background()
	rt := wazero.NewRuntimeWithConfig(ctx, wazero.NewRuntimeConfigInterpreter())
	t.Cleanup(func() { rt.Close(ctx) })

	mod, err := rt.InstantiateWithConfig(ctx, bin, wazero.NewModuleConfig().WithName(""))
	if err != nil {
		t.Fatalf("instantiate: %v", err)
	}
	res, err := mod.ExportedFunction("main").Call(ctx)
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	return res
}

func TestCompile_Empty(t *testing.T) {
	bin, err := Compile("(module)")
	if err != nil {
		t.Fatal(err)
	}
	if want := []byte("\x00asm\x01\x00\x00\x00"); !bytes.Equal(bin, want) {
		t.Errorf("Compile = %x, want %x", bin, want)
	}
}

func TestCompile_Run(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   uint64
	}{
		{
			name:   "folded arithmetic",
			source: `(module (func (export "main") (result i32) (i32.add (i32.const 40) (i32.const 2))))`,
			want:   42,
		},
		{
			name:   "flat arithmetic",
			source: `(module (func (export "main") (result i32) i32.const 40 i32.const 2 i32.sub))`,
			want:   38,
		},
		{
			name:   "block result",
			source: `(module (func (export "main") (result i32) (block (result i32) (i32.const 7))))`,
			want:   7,
		},
		{
			name:   "folded if",
			source: `(module (func (export "main") (result i32) (if (result i32) (i32.const 1) (then (i32.const 2)) (else (i32.const 3)))))`,
			want:   2,
		},
		{
			name: "flat if",
			source: `(module (func (export "main") (result i32)
				i32.const 0
				if (result i32)
					i32.const 2
				else
					i32.const 3
				end))`,
			want: 3,
		},
		{
			name: "mutable global set in body",
			source: `(module
				(global $g (mut i32) (i32.const 0))
				(func (export "main") (result i32)
					(global.set $g (block (result i32) (i32.const 5)))
					(i32.mul (global.get $g) (i32.const 3))))`,
			want: 15,
		},
		{
			name: "br_table",
			source: `(module (func (export "main") (result i32)
				(block $b2 (block $b1 (block $b0
					(br_table $b0 $b1 $b2 (i32.const 1)))
					(return (i32.const 10)))
					(return (i32.const 11)))
				(i32.const 12)))`,
			want: 11,
		},
		{
			name: "call_indirect",
			source: `(module
				(type $unary (func (param i64) (result i64)))
				(table 1 funcref)
				(elem (i32.const 0) $double)
				(func $double (param i64) (result i64) (i64.shl (local.get 0) (i64.const 1)))
				(func (export "main") (result i64) (call_indirect (type $unary) (i64.const 21) (i32.const 0))))`,
			want: 42,
		},
		{
			name: "data and load",
			source: `(module (memory $m 1)
				(data (i32.const 8) "\01\02")
				(func (export "main") (result i32) (i32.load16_u offset=8 (i32.const 0))))`,
			want: 0x0201,
		},
		{
			name: "memory size",
			source: `(module (memory 3)
				(func (export "main") (result i32) (memory.size)))`,
			want: 3,
		},
		{
			name:   "saturating truncation",
			source: `(module (func (export "main") (result i32) (i32.trunc_sat_f32_u (f32.const -1))))`,
			want:   0,
		},
		{
			name:   "hex integer",
			source: `(module (func (export "main") (result i64) (i64.const 0x1_0000)))`,
			want:   0x10000,
		},
		{
			name: "comments",
			source: `(module ;; line
				(; block (; nested ;) ;)
				(func (export "main") (result i32) (i32.const 9)))`,
			want: 9,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := run(t, tt.source)
			if len(res) != 1 || res[0] != tt.want {
				t.Errorf("main() = %v, want [%d]", res, tt.want)
			}
		})
	}
}

func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		pos    errors.Position
	}{
		{"not a module", `(func)`, errors.Position{Line: 1, Column: 2}},
		{"unknown instruction", "(module\n (func (i32.frobnicate)))", errors.Position{Line: 2, Column: 9}},
		{"unknown value type", `(module (func (param i33)))`, errors.Position{Line: 1, Column: 22}},
		{"unknown label", `(module (func (br $nowhere)))`, errors.Position{Line: 1, Column: 19}},
		{"bad escape", `(module (memory 1) (data (i32.const 0) "\q"))`, errors.Position{Line: 1, Column: 40}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.source)
			if !errors.Is(err, errors.ErrCompile) {
				t.Fatalf("Compile error = %v, want compile error", err)
			}
			var e *errors.Error
			if !errors.As(err, &e) {
				t.Fatalf("Compile error %T is not *errors.Error", err)
			}
			if e.Pos != tt.pos {
				t.Errorf("position = %v, want %v", e.Pos, tt.pos)
			}
		})
	}
}
