package features

import (
	"testing"

	"github.com/wippyai/swl/errors"
)

func TestConstExpr(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name: "i64",
			input: `(module
				(data
					(i64.constexpr
						(i64.add
							(i64.const 8)
							(i64.const 4)))
					"lol"))`,
			want: `(module (data (i64.const 12) "lol"))`,
		},
		{
			name:  "i32",
			input: `(module (data (i32.constexpr (i32.add (i32.const 8) (i32.const 4))) "lol"))`,
			want:  `(module (data (i32.const 12) "lol"))`,
		},
		{
			name:  "f32",
			input: `(module (f32.constexpr (f32.add (f32.const 8.2) (f32.const 4.3))))`,
			want:  `(module (f32.const 12.5))`,
		},
		{
			name:  "f64",
			input: `(module (f64.constexpr (f64.add (f64.const 8.2) (f64.const 4.3))))`,
			want:  `(module (f64.const 12.5))`,
		},
		{
			name: "global prelude",
			input: `(module
				(global $OTHER i32 (i32.constexpr (i32.const 7)))
				(global $DATA i32 (i32.const 8))
				(data
					(i32.constexpr
						(i32.add
							(global.get $DATA)
							(i32.const 4)))
					"lol"))`,
			want: `(module (global $OTHER i32 (i32.const 7)) (global $DATA i32 (i32.const 8)) (data (i32.const 12) "lol"))`,
		},
		{
			name: "offset",
			input: `(module
				(i32.store
					offset=(i32.constexpr
							(i32.add
								(i32.const 8)
								(i32.const 4)))
					(i32.const 4)))`,
			want: `(module (i32.store offset=12 (i32.const 4)))`,
		},
		{
			name:  "offset without constexpr wrapper",
			input: `(module (func (i64.load offset=(i32.mul (i32.const 4) (i32.const 16)) (i32.const 0))))`,
			want:  `(module (func (i64.load offset=64 (i32.const 0))))`,
		},
		{
			name:  "plain offset untouched",
			input: `(module (func (i32.load offset=4 align=2 (i32.const 0))))`,
			want:  `(module (func (i32.load offset=4 align=2 (i32.const 0))))`,
		},
		{
			name:  "negative i32",
			input: `(module (i32.constexpr (i32.sub (i32.const 0) (i32.const 5))))`,
			want:  `(module (i32.const -5))`,
		},
		{
			name:  "nested in function body",
			input: `(module (func $f (result i32) (i32.add (local.get 0) (i32.constexpr (i32.shl (i32.const 1) (i32.const 10))))))`,
			want:  `(module (func $f (result i32) (i32.add (local.get 0) (i32.const 1024))))`,
		},
		{
			name:  "block",
			input: `(module (i32.constexpr (block (result i32) (i32.const 7))))`,
			want:  `(module (i32.const 7))`,
		},
		{
			name:  "if",
			input: `(module (i32.constexpr (if (result i32) (i32.const 1) (then (i32.const 2)) (else (i32.const 3)))))`,
			want:  `(module (i32.const 2))`,
		},
		{
			name:  "flat instruction sequence",
			input: `(module (i64.constexpr i64.const 2 i64.const 40 i64.shl))`,
			want:  `(module (i64.const 2199023255552))`,
		},
		{
			name: "global initialised from global",
			input: `(module
				(global $a i32 (i32.const 3))
				(global $b (mut i32) (i32.mul (global.get $a) (i32.const 5)))
				(i32.constexpr (global.get $b)))`,
			want: `(module (global $a i32 (i32.const 3)) (global $b (mut i32) (i32.mul (global.get $a) (i32.const 5))) (i32.const 15))`,
		},
		{
			name: "exported flat global",
			input: `(module
				(global $w (export "w") i64 i64.const 6 i64.const 7 i64.mul)
				(i64.constexpr (global.get $w)))`,
			want: `(module (global $w (export "w") i64 i64.const 6 i64.const 7 i64.mul) (i64.const 42))`,
		},
		{
			name: "unnamed global by index",
			input: `(module
				(global i32 (i32.const 11))
				(global f64 (f64.const 0.5))
				(f64.constexpr (f64.add (global.get 1) (f64.convert_i32_s (global.get 0)))))`,
			want: `(module (global i32 (i32.const 11)) (global f64 (f64.const 0.5)) (f64.const 11.5))`,
		},
		{
			name:  "imported global unused",
			input: `(module (global $g (import "env" "g") i32) (i32.constexpr (i32.const 1)))`,
			want:  `(module (global $g (import "env" "g") i32) (i32.const 1))`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustRun(t, []string{tt.input}, feature(t, "constexpr"))
			if got != tt.want {
				t.Errorf("got  %s\nwant %s", got, tt.want)
			}
		})
	}
}

func TestConstExpr_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"not a module", `(func (i32.constexpr (i32.const 1)))`, errors.ErrNotAModule},
		{"missing expression", `(module (i32.constexpr))`, errors.ErrExpressionMissing},
		{"unknown type", `(module (v128.constexpr (v128.const i32x4 0 0 0 0)))`, errors.ErrUnknownType},
		{"trap", `(module (i32.constexpr (i32.div_u (i32.const 1) (i32.const 0))))`, errors.ErrEvaluation},
		{"type mismatch", `(module (i32.constexpr (i64.const 1)))`, errors.ErrEvaluation},
		{"imported global referenced", `(module (global $g (import "env" "g") i32) (i32.constexpr (global.get $g)))`, errors.ErrEvaluation},
		{"float offset", `(module (f32.store offset=(f32.const 1) (i32.const 0) (f32.const 0)))`, errors.ErrInvalidOffset},
		{"negative offset", `(module (i32.load offset=(i32.const -4) (i32.const 0)))`, errors.ErrInvalidOffset},
		{"empty offset", `(module (i32.load offset= (i32.const 0)))`, errors.ErrExpressionMissing},
		{"empty offset constexpr", `(module (i32.load offset=(i32.constexpr) (i32.const 0)))`, errors.ErrExpressionMissing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, []string{tt.input}, feature(t, "constexpr"))
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}
