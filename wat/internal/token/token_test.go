package token

import (
	"slices"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Token
	}{
		{
			name:  "parens and idents",
			input: "(module $m)",
			want: []Token{
				{"(", LParen, 1, 1},
				{"module", Ident, 1, 2},
				{"$m", Ident, 1, 9},
				{")", RParen, 1, 11},
			},
		},
		{
			name:  "numbers",
			input: "42 -7 0x1F 1.5e-3 0x1p+4",
			want: []Token{
				{"42", Number, 1, 1},
				{"-7", Number, 1, 4},
				{"0x1F", Number, 1, 7},
				{"1.5e-3", Number, 1, 12},
				{"0x1p+4", Number, 1, 19},
			},
		},
		{
			name:  "signed specials are identifiers",
			input: "-inf +nan nan:0x200000",
			want: []Token{
				{"-inf", Ident, 1, 1},
				{"+nan", Ident, 1, 6},
				{"nan:0x200000", Ident, 1, 11},
			},
		},
		{
			name:  "string keeps escapes",
			input: `(data "a\"b\00")`,
			want: []Token{
				{"(", LParen, 1, 1},
				{"data", Ident, 1, 2},
				{`a\"b\00`, String, 1, 7},
				{")", RParen, 1, 16},
			},
		},
		{
			name:  "memarg",
			input: "i32.load offset=8 align=4",
			want: []Token{
				{"i32.load", Ident, 1, 1},
				{"offset=8", Ident, 1, 10},
				{"align=4", Ident, 1, 19},
			},
		},
		{
			name:  "comments and lines",
			input: ";; header\n(; a\n b ;) nop\n  drop",
			want: []Token{
				{"nop", Ident, 3, 7},
				{"drop", Ident, 4, 3},
			},
		},
		{
			name:  "empty",
			input: " \t\n",
			want:  nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Tokenize(%q)\n got  %v\n want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestType_String(t *testing.T) {
	if got := Number.String(); got != "number" {
		t.Errorf("Number.String() = %q", got)
	}
	if got := Type(99).String(); got != "unknown" {
		t.Errorf("Type(99).String() = %q", got)
	}
}
