package ast

import (
	"testing"

	"github.com/wippyai/swl/errors"
)

func TestInterpretedStringLength(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{`1234`, 4},
		{`123\00`, 4},
		{`\01\02\03\04`, 4},
		{`\ff\FF`, 2},
		{`a\nb\t\"\'\\`, 7},
		{`\u{41}`, 1},
		{`\u{e9}`, 1},
		{`\u{1F600}`, 1},
		{`é`, 1},
		{`日本`, 2},
		{`a😀b\0a`, 4},
		{`\\\\`, 2},
		{``, 0},
	}
	for _, tt := range tests {
		got, err := InterpretedStringLength(tt.in)
		if err != nil {
			t.Errorf("InterpretedStringLength(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("InterpretedStringLength(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestInterpretedStringLength_Invalid(t *testing.T) {
	for _, in := range []string{`\`, `\0`, `\q`, `\u41`, `\u{}`, `\u{110000}`} {
		_, err := InterpretedStringLength(in)
		if !errors.Is(err, errors.ErrInvalidEscapeSequence) {
			t.Errorf("InterpretedStringLength(%q) error = %v, want invalid escape", in, err)
		}
	}
}

func TestDecodeString(t *testing.T) {
	got, err := DecodeString(`\41B\n`)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "AB\n" {
		t.Errorf("DecodeString = %q, want %q", got, "AB\n")
	}
}

func TestEncodeBytes(t *testing.T) {
	if got, want := EncodeBytes([]byte{0x41, 0x42, 0xfe}), `"\41\42\fe"`; got != want {
		t.Errorf("EncodeBytes = %s, want %s", got, want)
	}
	if got, want := EncodeBytes(nil), `""`; got != want {
		t.Errorf("EncodeBytes(nil) = %s, want %s", got, want)
	}
}

func TestIsStringLiteral(t *testing.T) {
	tests := map[string]bool{
		`"abc"`: true,
		`""`:    true,
		`"`:     false,
		`abc`:   false,
		`"abc`:  false,
	}
	for in, want := range tests {
		if got := IsStringLiteral(in); got != want {
			t.Errorf("IsStringLiteral(%s) = %v, want %v", in, got, want)
		}
	}
}

func TestFindIDAttribute(t *testing.T) {
	tests := []struct {
		node *Node
		want string
		ok   bool
	}{
		{New("start", Attr("$main")), "$main", true},
		{New("start", Attr("3")), "3", true},
		{New("start", Attr("3"), Attr("$main")), "$main", true},
		{New("start", Attr("main")), "", false},
		{New("start"), "", false},
	}
	for _, tt := range tests {
		got, ok := FindIDAttribute(tt.node)
		if got != tt.want || ok != tt.ok {
			t.Errorf("FindIDAttribute(%s) = %q, %v, want %q, %v", tt.node, got, ok, tt.want, tt.ok)
		}
	}
}

func TestIsModule(t *testing.T) {
	if !IsModule(NewModule()) {
		t.Error("IsModule(module) = false")
	}
	n := New("func", New("module"))
	if IsModule(IntoNode(n.Items[0])) {
		t.Error("nested module reported as top-level")
	}
}
