package pretty

import (
	"strings"
	"unicode"

	"github.com/wippyai/swl/errors"
)

// Kind classifies a token.
type Kind int

const (
	Ident Kind = iota
	StringLiteral
	LineComment
	BlockComment
	Parens
)

func (k Kind) String() string {
	switch k {
	case Ident:
		return "ident"
	case StringLiteral:
		return "string"
	case LineComment:
		return "line comment"
	case BlockComment:
		return "block comment"
	case Parens:
		return "parens"
	}
	return "unknown"
}

// Token is one lexical element. Text holds the source text of identifiers,
// strings and line comments, and the body of block comments. Parens
// tokens hold their contents in Children.
type Token struct {
	Kind     Kind
	Text     string
	Children []Token
}

// Head returns the identifier a Parens token starts with.
func (t Token) Head() (string, bool) {
	if t.Kind != Parens || len(t.Children) == 0 || t.Children[0].Kind != Ident {
		return "", false
	}
	return t.Children[0].Text, true
}

type lexer struct {
	src  []rune
	pos  int
	line int
	col  int
}

// Tokenize splits src into a token tree. Any number of top-level tokens is
// accepted.
func Tokenize(src string) ([]Token, error) {
	l := &lexer{src: []rune(src), line: 1, col: 1}
	return l.sequence(false)
}

func (l *lexer) eof() bool {
	return l.pos >= len(l.src)
}

func (l *lexer) at(prefix string) bool {
	i := l.pos
	for _, r := range prefix {
		if i >= len(l.src) || l.src[i] != r {
			return false
		}
		i++
	}
	return true
}

func (l *lexer) advance() {
	if l.src[l.pos] == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	l.pos++
}

func (l *lexer) fail(kind errors.Kind, format string, args ...any) error {
	return errors.New(errors.PhaseFormat, kind).
		Pos(l.line, l.col).
		Detail(format, args...).
		Build()
}

func (l *lexer) sequence(nested bool) ([]Token, error) {
	var out []Token
	for {
		for !l.eof() && unicode.IsSpace(l.src[l.pos]) {
			l.advance()
		}
		if l.eof() {
			if nested {
				return nil, l.fail(errors.KindUnexpectedEOF, "unclosed parenthesis")
			}
			return out, nil
		}

		switch {
		case l.src[l.pos] == ')':
			if !nested {
				return nil, l.fail(errors.KindUnexpectedToken, "unbalanced ')'")
			}
			l.advance()
			return out, nil
		case l.at(";;"):
			start := l.pos
			for !l.eof() && l.src[l.pos] != '\n' {
				l.advance()
			}
			text := strings.TrimRightFunc(string(l.src[start:l.pos]), unicode.IsSpace)
			out = append(out, Token{Kind: LineComment, Text: text})
		case l.at("(;"):
			l.advance()
			l.advance()
			start := l.pos
			for !l.at(";)") {
				if l.eof() {
					return nil, l.fail(errors.KindUnexpectedEOF, "unterminated block comment")
				}
				l.advance()
			}
			out = append(out, Token{Kind: BlockComment, Text: string(l.src[start:l.pos])})
			l.advance()
			l.advance()
		case l.src[l.pos] == '(':
			l.advance()
			children, err := l.sequence(true)
			if err != nil {
				return nil, err
			}
			out = append(out, Token{Kind: Parens, Children: children})
		default:
			kind := Ident
			if l.src[l.pos] == '"' {
				kind = StringLiteral
			}
			start := l.pos
			if err := l.word(); err != nil {
				return nil, err
			}
			out = append(out, Token{Kind: kind, Text: string(l.src[start:l.pos])})
		}
	}
}

// word consumes an identifier or string. Parenthesised groups glued to an
// identifier, as in offset=(i32.const 8), belong to it.
func (l *lexer) word() error {
	for !l.eof() {
		r := l.src[l.pos]
		switch {
		case r == '"':
			return l.str()
		case unicode.IsSpace(r) || r == ')' || l.at(";;") || l.at("(;"):
			return nil
		case r == '(':
			if err := l.group(); err != nil {
				return err
			}
		default:
			l.advance()
		}
	}
	return nil
}

func (l *lexer) str() error {
	l.advance()
	for {
		if l.eof() {
			return l.fail(errors.KindUnexpectedEOF, "unterminated string")
		}
		switch l.src[l.pos] {
		case '"':
			l.advance()
			return nil
		case '\\':
			l.advance()
			if l.eof() {
				return l.fail(errors.KindUnexpectedEOF, "unterminated string")
			}
		}
		l.advance()
	}
}

func (l *lexer) group() error {
	level := 0
	for {
		if l.eof() {
			return l.fail(errors.KindUnexpectedEOF, "unclosed parenthesis")
		}
		switch l.src[l.pos] {
		case '"':
			if err := l.str(); err != nil {
				return err
			}
			continue
		case '(':
			level++
		case ')':
			level--
		}
		l.advance()
		if level == 0 {
			return nil
		}
	}
}
