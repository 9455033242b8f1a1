package pretty

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/wippyai/swl/errors"
	"github.com/wippyai/swl/parser"
)

// lines joins its arguments with newlines and adds the trailing one.
func lines(ls ...string) string {
	return strings.Join(ls, "\n") + "\n"
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty module",
			input: `(module)`,
			want:  lines(`(module)`),
		},
		{
			name:  "func with param",
			input: `(module (func $f (param i32) (drop (local.get 0))))`,
			want: lines(
				"(module",
				"\t(func $f",
				"\t\t(param i32)",
				"\t\t(drop",
				"\t\t\t(local.get 0))))",
			),
		},
		{
			name:  "func header",
			input: `(module (func $f (export "f") (param i32) (result i32) local.get 0) (func $g) (memory 1) (data (i32.const 0) "hi"))`,
			want: lines(
				"(module",
				"\t(func $f (export \"f\")",
				"\t\t(param i32)",
				"\t\t(result i32)",
				"\t\tlocal.get",
				"\t\t0)",
				"",
				"\t(func $g)",
				"\t(memory 1)",
				"\t(data",
				"\t\t(i32.const 0)",
				"\t\t\"hi\"))",
			),
		},
		{
			name:  "single line heads",
			input: `(module (import "env" "log" (func $log (param i32) (param i64))) (global $g (mut i32) (i32.const 0)))`,
			want: lines(
				"(module",
				"\t(import \"env\" \"log\" (func $log (param i32) (param i64)))",
				"\t(global $g (mut i32) (i32.const 0)))",
			),
		},
		{
			name:  "generic header keeps identifiers",
			input: `(call $f (i32.const 1) (i32.const 2))`,
			want: lines(
				"(call $f",
				"\t(i32.const 1)",
				"\t(i32.const 2))",
			),
		},
		{
			name:  "header only",
			input: `(core   module $m)`,
			want:  lines(`(core module $m)`),
		},
		{
			name:  "component",
			input: `(component (core module $m) (instance $i) (alias export $i "f" (func)))`,
			want: lines(
				"(component",
				"\t(core module $m)",
				"",
				"\t(instance $i)",
				"",
				"\t(alias export $i \"f\"",
				"\t\t(func))",
				"",
				")",
			),
		},
		{
			name:  "line comments",
			input: "(module ;; first\n (func) ;; last   \n)",
			want: lines(
				"(module",
				"\t;; first",
				"\t(func)",
				"\t;; last",
				")",
			),
		},
		{
			name:  "line comment breaks single line form",
			input: "(param ;; x\n i32)",
			want: lines(
				"(param",
				"\t;; x",
				"\ti32)",
			),
		},
		{
			name:  "block comment squashed",
			input: `(module (;   note   ;) (func))`,
			want: lines(
				"(module",
				"\t(; note ;)",
				"\t(func))",
			),
		},
		{
			name:  "block comment inline",
			input: `(param (;x;) i32)`,
			want:  lines(`(param (; x ;) i32)`),
		},
		{
			name:  "multi-line block comment",
			input: "(module (; first\n      second\n\n   third ;) (func))",
			want: lines(
				"(module",
				"\t(;",
				"\t\tfirst",
				"\t\t   second",
				"",
				"\t\tthird",
				"\t;)",
				"\t(func))",
			),
		},
		{
			name:  "block comment keeps relative indentation",
			input: "(module (;\n    if x\n      y\n    end\n;) (func))",
			want: lines(
				"(module",
				"\t(;",
				"\t\tif x",
				"\t\t  y",
				"\t\tend",
				"\t;)",
				"\t(func))",
			),
		},
		{
			name:  "nested component",
			input: "(component (component $inner (core module $m)) (instance $i))",
			want: lines(
				"(component",
				"\t(component $inner",
				"\t\t(core module $m)",
				"",
				"\t)",
				"",
				"\t(instance $i)",
				"",
				")",
			),
		},
		{
			name:  "glued offset group",
			input: `(i32.store offset=(i32.constexpr (i32.const 4)) (local.get 0) (local.get 1))`,
			want: lines(
				"(i32.store offset=(i32.constexpr (i32.const 4))",
				"\t(local.get 0)",
				"\t(local.get 1))",
			),
		},
		{
			name:  "top level siblings",
			input: ";; header\n(func $a) (func $b) (memory 1)",
			want: lines(
				";; header",
				"(func $a)",
				"",
				"(func $b)",
				"(memory 1)",
			),
		},
		{
			name:  "empty input",
			input: "  \n",
			want:  "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Format(tt.input)
			if err != nil {
				t.Fatalf("Format: %v", err)
			}
			if got != tt.want {
				t.Errorf("got:\n%s\nwant:\n%s", got, tt.want)
			}
			again, err := Format(got)
			if err != nil {
				t.Fatalf("Format(formatted): %v", err)
			}
			if again != got {
				t.Errorf("not a fixed point:\n%s", again)
			}
		})
	}
}

func TestTokenize(t *testing.T) {
	toks, err := Tokenize(`(module $m "a\"b" ;; c` + "\n" + `(; d ;) x=(y z))`)
	if err != nil {
		t.Fatal(err)
	}
	if len(toks) != 1 || toks[0].Kind != Parens {
		t.Fatalf("tokens = %+v", toks)
	}
	want := []struct {
		kind Kind
		text string
	}{
		{Ident, "module"},
		{Ident, "$m"},
		{StringLiteral, `"a\"b"`},
		{LineComment, ";; c"},
		{BlockComment, " d "},
		{Ident, "x=(y z)"},
	}
	children := toks[0].Children
	if len(children) != len(want) {
		t.Fatalf("got %d children, want %d", len(children), len(want))
	}
	for i, w := range want {
		if children[i].Kind != w.kind || children[i].Text != w.text {
			t.Errorf("child %d = %s %q, want %s %q", i, children[i].Kind, children[i].Text, w.kind, w.text)
		}
	}
	if head, ok := toks[0].Head(); !ok || head != "module" {
		t.Errorf("Head() = %q, %v", head, ok)
	}
}

func TestTokenize_Errors(t *testing.T) {
	tests := []struct {
		input string
		want  error
	}{
		{"(module", errors.ErrUnexpectedEOF},
		{"(module))", errors.ErrUnexpectedToken},
		{`(data "abc)`, errors.ErrUnexpectedEOF},
		{"(; open", errors.ErrUnexpectedEOF},
		{"(a b=(c)", errors.ErrUnexpectedEOF},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Format(tt.input)
			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
			var e *errors.Error
			if !errors.As(err, &e) || e.Phase != errors.PhaseFormat {
				t.Errorf("error %v is not a format error", err)
			}
		})
	}
}

// randomForm generates nested forms mixing the heads the layout rules
// care about.
func randomForm(r *rand.Rand, depth int) string {
	heads := []string{"module", "func", "component", "param", "local", "memory", "call", "i32.add", "block"}
	leaves := []string{"$a", "$b", "i32", "0", "1", `"s"`, "offset=(x y)"}
	var b strings.Builder
	b.WriteString("(" + heads[r.Intn(len(heads))])
	for range r.Intn(5) {
		b.WriteString(" ")
		switch k := r.Intn(10); {
		case k < 4 && depth < 4:
			b.WriteString(randomForm(r, depth+1))
		case k == 4:
			b.WriteString(";; note\n")
		case k == 5:
			b.WriteString("(; a\n b ;)")
		default:
			b.WriteString(leaves[r.Intn(len(leaves))])
		}
	}
	b.WriteString(")")
	return b.String()
}

func TestFormat_Properties(t *testing.T) {
	properties := gopter.NewProperties(nil)
	forms := gen.Int64().Map(func(seed int64) string {
		return randomForm(rand.New(rand.NewSource(seed)), 0)
	})

	properties.Property("formatting is a fixed point", prop.ForAll(
		func(src string) bool {
			once, err := Format(src)
			if err != nil {
				return false
			}
			twice, err := Format(once)
			return err == nil && once == twice
		},
		forms,
	))

	properties.Property("formatting keeps the parsed tree", prop.ForAll(
		func(src string) bool {
			before, err := parser.Parse(src)
			if err != nil {
				return false
			}
			out, err := Format(src)
			if err != nil {
				return false
			}
			after, err := parser.Parse(out)
			return err == nil && before.String() == after.String()
		},
		forms,
	))

	properties.TestingRun(t)
}
