package eval

import (
	"context"
	"math"
	"testing"

	"github.com/wippyai/swl/errors"
)

func newEvaluator(t *testing.T) *Evaluator {
	t.Helper()
	ctx := context.Background()
	e := New(ctx)
	t.Cleanup(func() { e.Close(ctx) })
	return e
}

func TestEval(t *testing.T) {
	e := newEvaluator(t)
	ctx := context.Background()

	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "i32 add",
			src:  `(module (func (export "main") (result i32) (i32.add (i32.const 8) (i32.const 4))))`,
			want: "12",
		},
		{
			name: "i32 negative",
			src:  `(module (func (export "main") (result i32) (i32.sub (i32.const 1) (i32.const 3))))`,
			want: "-2",
		},
		{
			name: "i64 add",
			src:  `(module (func (export "main") (result i64) (i64.add (i64.const 8) (i64.const 4))))`,
			want: "12",
		},
		{
			name: "f32",
			src:  `(module (func (export "main") (result f32) (f32.add (f32.const 8.25) (f32.const 4.25))))`,
			want: "12.5",
		},
		{
			name: "f64",
			src:  `(module (func (export "main") (result f64) (f64.mul (f64.const 2.5) (f64.const 5))))`,
			want: "12.5",
		},
		{
			name: "f64 infinity",
			src:  `(module (func (export "main") (result f64) (f64.div (f64.const 1) (f64.const 0))))`,
			want: "inf",
		},
		{
			name: "globals",
			src: `(module
				(global $base i32 (i32.const 1024))
				(global $size (mut i32) (i32.const 0))
				(func (export "main") (result i32)
					(global.set $size (i32.mul (global.get $base) (i32.const 2)))
					(i32.add (global.get $base) (global.get $size))))`,
			want: "3072",
		},
		{
			name: "saturating truncation",
			src:  `(module (func (export "main") (result i32) (i32.trunc_sat_f64_s (f64.const 1e20))))`,
			want: "2147483647",
		},
		{
			name: "block",
			src:  `(module (func (export "main") (result i32) (block (result i32) (i32.const 7))))`,
			want: "7",
		},
		{
			name: "if",
			src:  `(module (func (export "main") (result i32) (if (result i32) (i32.const 0) (then (i32.const 1)) (else (i32.const 2)))))`,
			want: "2",
		},
		{
			name: "loop with locals",
			src: `(module (func (export "main") (result i64) (local $i i32) (local $acc i64)
				(block $done
					(loop $next
						(br_if $done (i32.ge_u (local.get $i) (i32.const 10)))
						(local.set $acc (i64.add (local.get $acc) (i64.extend_i32_u (local.get $i))))
						(local.set $i (i32.add (local.get $i) (i32.const 1)))
						(br $next)))
				(local.get $acc)))`,
			want: "45",
		},
		{
			name: "memory",
			src: `(module (memory 1)
				(data (i32.const 16) "\2a\00\00\00")
				(func (export "main") (result i32) (i32.load offset=16 (i32.const 0))))`,
			want: "42",
		},
		{
			name: "helper function",
			src: `(module
				(func $square (param i32) (result i32) (i32.mul (local.get 0) (local.get 0)))
				(func (export "main") (result i32) (call $square (i32.const 9))))`,
			want: "81",
		},
		{
			name: "shift and mask",
			src:  `(module (func (export "main") (result i64) (i64.and (i64.shl (i64.const 1) (i64.const 40)) (i64.const -1))))`,
			want: "1099511627776",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := e.Eval(ctx, tt.src)
			if err != nil {
				t.Fatalf("Eval: %v", err)
			}
			if got := v.String(); got != tt.want {
				t.Errorf("Eval = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestEval_Errors(t *testing.T) {
	e := newEvaluator(t)
	ctx := context.Background()

	tests := []struct {
		name string
		src  string
	}{
		{"trap", `(module (func (export "main") (result i32) (i32.div_s (i32.const 1) (i32.const 0))))`},
		{"type mismatch", `(module (func (export "main") (result i32) (i64.const 1)))`},
		{"imported global", `(module (global $g (import "env" "g") i32) (func (export "main") (result i32) (global.get $g)))`},
		{"parse", `(module`},
		{"unknown instruction", `(module (func (export "main") (result i32) (i32.bogus)))`},
		{"no entry", `(module (func (export "start") (result i32) (i32.const 1)))`},
		{"entry with params", `(module (func (export "main") (param i32) (result i32) (local.get 0)))`},
		{"no result", `(module (func (export "main")))`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Eval(ctx, tt.src)
			if !errors.Is(err, errors.ErrEvaluation) {
				t.Fatalf("Eval error = %v, want evaluation error", err)
			}
		})
	}
}

func TestEval_CompileErrorPosition(t *testing.T) {
	e := newEvaluator(t)
	_, err := e.Eval(context.Background(), "(module\n  (func (export \"main\") (result i32)\n    (i32.bogus)))")

	var compileErr *errors.Error
	if !errors.As(err, &compileErr) || !errors.Is(err, errors.ErrCompile) {
		t.Fatalf("Eval error = %v, want compile error", err)
	}
	for compileErr.Kind != errors.KindCompile {
		if !errors.As(compileErr.Cause, &compileErr) {
			t.Fatalf("no compile error in chain of %v", err)
		}
	}
	if compileErr.Pos != (errors.Position{Line: 3, Column: 6}) {
		t.Errorf("position = %v, want 3:6", compileErr.Pos)
	}
}

func TestParseType(t *testing.T) {
	for _, name := range []string{"i32", "i64", "f32", "f64"} {
		typ, ok := ParseType(name)
		if !ok || typ.String() != name {
			t.Errorf("ParseType(%q) = %v, %v", name, typ, ok)
		}
	}
	if _, ok := ParseType("v128"); ok {
		t.Error("ParseType accepted v128")
	}
}

func TestValue_String(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{Value{Type: I32, Bits: 0xFFFFFFFF}, "-1"},
		{Value{Type: I64, Bits: math.MaxUint64}, "-1"},
		{Value{Type: F32, Bits: uint64(math.Float32bits(0.1))}, "0.1"},
		{Value{Type: F64, Bits: math.Float64bits(1e21)}, "1000000000000000000000"},
		{Value{Type: F64, Bits: math.Float64bits(math.NaN())}, "nan"},
		{Value{Type: F32, Bits: uint64(math.Float32bits(float32(math.Inf(-1))))}, "-inf"},
	}
	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("%v String() = %q, want %q", tt.v.Bits, got, tt.want)
		}
	}
}
