package pretty

import (
	"strings"

	"github.com/turbolent/prettier"
)

// Indent is the indentation unit.
const Indent = "\t"

// lineWidth only matters for soft breaks, which the layout never uses.
const lineWidth = 100

// singleLine heads are always printed on one line.
var singleLine = map[string]bool{
	"param":  true,
	"local":  true,
	"export": true,
	"table":  true,
	"memory": true,
	"import": true,
	"global": true,
}

// Format tokenizes src and lays it out.
func Format(src string) (string, error) {
	tokens, err := Tokenize(src)
	if err != nil {
		return "", err
	}
	return Render(tokens), nil
}

// Render lays out a token sequence. The result ends with a newline unless
// it is empty.
func Render(tokens []Token) string {
	if len(tokens) == 0 {
		return ""
	}
	var b strings.Builder
	prettier.Prettier(&b, sequence(tokens, false), lineWidth, Indent)

	lines := strings.Split(b.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n") + "\n"
}

// sequence puts every token on its own line. Blank lines separate sibling
// funcs, or every sibling when spaced is set. Components are spaced and
// form adds the blank line after their last child.
func sequence(tokens []Token, spaced bool) prettier.Concat {
	docs := make(prettier.Concat, 0, 3*len(tokens))
	for i, t := range tokens {
		if i > 0 {
			docs = append(docs, prettier.HardLine{})
			if spaced || isFunc(tokens[i-1]) && isFunc(t) {
				docs = append(docs, prettier.HardLine{})
			}
		}
		docs = append(docs, layout(t))
	}
	return docs
}

func isFunc(t Token) bool {
	head, _ := t.Head()
	return head == "func"
}

func layout(t Token) prettier.Doc {
	switch t.Kind {
	case BlockComment:
		return blockComment(t.Text)
	case Parens:
		return form(t)
	default:
		return prettier.Text(t.Text)
	}
}

func form(t Token) prettier.Doc {
	head, ok := t.Head()
	if flat(t) && (singleLine[head] || short(t)) {
		return prettier.Text(inline(t))
	}

	n := 0
	if ok {
		n = 1
		for n < len(t.Children) && inHeader(head, t.Children[n]) {
			n++
		}
	}
	header, rest := t.Children[:n], t.Children[n:]

	open := make([]string, len(header))
	for i, h := range header {
		open[i] = inline(h)
	}
	if len(rest) == 0 {
		return prettier.Text("(" + strings.Join(open, " ") + ")")
	}

	doc := prettier.Concat{
		prettier.Text("(" + strings.Join(open, " ")),
		prettier.Indent{
			Doc: prettier.Concat{
				prettier.HardLine{},
				sequence(rest, head == "component"),
			},
		},
	}
	switch {
	case head == "component":
		doc = append(doc, prettier.HardLine{}, prettier.HardLine{})
	case rest[len(rest)-1].Kind == LineComment:
		doc = append(doc, prettier.HardLine{})
	}
	return append(doc, prettier.Text(")"))
}

// short reports whether t holds at most one plain identifier or string
// after its head.
func short(t Token) bool {
	rest := t.Children
	if _, ok := t.Head(); ok {
		rest = rest[1:]
	}
	switch len(rest) {
	case 0:
		return true
	case 1:
		return rest[0].Kind == Ident || rest[0].Kind == StringLiteral
	}
	return false
}

// inHeader reports whether c stays on the opening line of a form headed
// by head.
func inHeader(head string, c Token) bool {
	if head != "func" {
		return c.Kind == Ident || c.Kind == StringLiteral
	}
	switch c.Kind {
	case Ident:
		return strings.HasPrefix(c.Text, "$")
	case Parens:
		h, _ := c.Head()
		return (h == "export" || h == "import") && flat(c)
	}
	return false
}

// flat reports whether t can be printed on one line.
func flat(t Token) bool {
	switch t.Kind {
	case LineComment:
		return false
	case BlockComment:
		return len(commentLines(t.Text)) <= 1
	case Parens:
		for _, c := range t.Children {
			if !flat(c) {
				return false
			}
		}
	}
	return true
}

func inline(t Token) string {
	switch t.Kind {
	case BlockComment:
		return squash(commentLines(t.Text))
	case Parens:
		parts := make([]string, len(t.Children))
		for i, c := range t.Children {
			parts[i] = inline(c)
		}
		return "(" + strings.Join(parts, " ") + ")"
	}
	return t.Text
}

// commentLines returns the lines of a block comment body without leading
// and trailing blank lines. Text on the opening line is trimmed; the other
// lines lose only the indentation they all share.
func commentLines(body string) []string {
	lines := strings.Split(body, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " \t")
	}
	start := 0
	if lines[0] != "" {
		lines[0] = strings.TrimLeft(lines[0], " \t")
		start = 1
	}
	indent := commonIndent(lines[start:])
	for i := start; i < len(lines); i++ {
		lines[i] = strings.TrimPrefix(lines[i], indent)
	}

	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// commonIndent returns the leading whitespace shared by every non-blank
// line.
func commonIndent(lines []string) string {
	indent, found := "", false
	for _, l := range lines {
		if l == "" {
			continue
		}
		ws := l[:len(l)-len(strings.TrimLeft(l, " \t"))]
		if !found {
			indent, found = ws, true
			continue
		}
		n := 0
		for n < len(indent) && n < len(ws) && indent[n] == ws[n] {
			n++
		}
		indent = indent[:n]
	}
	return indent
}

func squash(lines []string) string {
	if len(lines) == 0 {
		return "(; ;)"
	}
	return "(; " + lines[0] + " ;)"
}

func blockComment(body string) prettier.Doc {
	lines := commentLines(body)
	if len(lines) <= 1 {
		return prettier.Text(squash(lines))
	}
	inner := make(prettier.Concat, 0, 2*len(lines))
	for _, l := range lines {
		inner = append(inner, prettier.HardLine{}, prettier.Text(l))
	}
	return prettier.Concat{
		prettier.Text("(;"),
		prettier.Indent{Doc: inner},
		prettier.HardLine{},
		prettier.Text(";)"),
	}
}
