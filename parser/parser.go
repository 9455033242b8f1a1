package parser

import (
	"unicode"

	"github.com/wippyai/swl/ast"
	"github.com/wippyai/swl/errors"
)

// Parser is a recursive-descent parser over a rune slice with a single
// cursor. A Parser parses one document.
type Parser struct {
	src   []rune
	pos   int
	line  int
	col   int
	depth int
}

// New creates a parser for input.
func New(input string) *Parser {
	return &Parser{src: []rune(input), line: 1, col: 1}
}

// Parse parses a complete document: exactly one top-level form, optionally
// surrounded by whitespace and comments.
func Parse(input string) (*ast.Node, error) {
	return New(input).Parse()
}

// ParseBytes is Parse for raw file contents.
func ParseBytes(data []byte) (*ast.Node, error) {
	return Parse(string(data))
}

// Parse parses the document and fails with StrayData when anything but
// whitespace and comments follows the top-level form.
func (p *Parser) Parse() (*ast.Node, error) {
	node, err := p.parseNode()
	if err != nil {
		return nil, err
	}
	if err := p.skipSpace(); err != nil {
		return nil, err
	}
	if !p.eof() {
		return nil, errors.StrayData(p.position(), string(p.src[p.pos:]))
	}
	return node, nil
}

func (p *Parser) position() errors.Position {
	return errors.Position{Line: p.line, Column: p.col}
}

func (p *Parser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *Parser) peek() (rune, bool) {
	if p.eof() {
		return 0, false
	}
	return p.src[p.pos], true
}

func (p *Parser) peekAt(off int) (rune, bool) {
	if p.pos+off >= len(p.src) {
		return 0, false
	}
	return p.src[p.pos+off], true
}

func (p *Parser) mustPeek() (rune, error) {
	r, ok := p.peek()
	if !ok {
		return 0, errors.UnexpectedEOF(p.position())
	}
	return r, nil
}

func (p *Parser) advance() rune {
	r := p.src[p.pos]
	p.pos++
	if r == '\n' {
		p.line++
		p.col = 1
	} else {
		p.col++
	}
	return r
}

func (p *Parser) expect(want rune) error {
	pos := p.position()
	r, err := p.mustPeek()
	if err != nil {
		return err
	}
	if r != want {
		return errors.UnexpectedToken(pos, "'"+string(want)+"'", string(r))
	}
	p.advance()
	return nil
}

// atLineComment and atBlockComment report whether a comment starts at the
// cursor.
func (p *Parser) atLineComment() bool {
	a, _ := p.peekAt(0)
	b, _ := p.peekAt(1)
	return a == ';' && b == ';'
}

func (p *Parser) atBlockComment() bool {
	a, _ := p.peekAt(0)
	b, _ := p.peekAt(1)
	return a == '(' && b == ';'
}

// skipSpace consumes whitespace and comments.
func (p *Parser) skipSpace() error {
	for !p.eof() {
		switch {
		case unicode.IsSpace(p.src[p.pos]):
			p.advance()
		case p.atLineComment():
			for !p.eof() && p.src[p.pos] != '\n' {
				p.advance()
			}
		case p.atBlockComment():
			p.advance()
			p.advance()
			for {
				if p.eof() {
					return errors.UnexpectedEOF(p.position())
				}
				if r, _ := p.peekAt(1); p.src[p.pos] == ';' && r == ')' {
					p.advance()
					p.advance()
					break
				}
				p.advance()
			}
		default:
			return nil
		}
	}
	return nil
}

func (p *Parser) parseNode() (*ast.Node, error) {
	if err := p.skipSpace(); err != nil {
		return nil, err
	}
	if err := p.expect('('); err != nil {
		return nil, err
	}
	node := &ast.Node{Depth: p.depth}
	p.depth++

	if err := p.skipSpace(); err != nil {
		return nil, err
	}
	name, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	node.Name = name

	for {
		if err := p.skipSpace(); err != nil {
			return nil, err
		}
		r, err := p.mustPeek()
		if err != nil {
			return nil, err
		}
		if r == ')' {
			break
		}
		item, err := p.parseItem()
		if err != nil {
			return nil, err
		}
		node.Items = append(node.Items, item)
	}
	p.advance()
	p.depth--
	return node, nil
}

func isIdentRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' || r == '_' || r == '-'
}

func (p *Parser) parseIdentifier() (string, error) {
	pos := p.position()
	start := p.pos
	for {
		r, err := p.mustPeek()
		if err != nil {
			return "", err
		}
		if !isIdentRune(r) {
			break
		}
		p.advance()
	}
	if p.pos == start {
		r, _ := p.peek()
		return "", errors.UnexpectedToken(pos, "identifier", string(r))
	}
	return string(p.src[start:p.pos]), nil
}

func (p *Parser) parseItem() (ast.Item, error) {
	if r, _ := p.peek(); r == '(' {
		n, err := p.parseNode()
		if err != nil {
			return nil, err
		}
		return n, nil
	}
	start := p.pos
	if err := p.eatToken(); err != nil {
		return nil, err
	}
	return ast.Attr(string(p.src[start:p.pos])), nil
}

// eatToken consumes one attribute token. A string literal ends the token.
func (p *Parser) eatToken() error {
	for {
		r, err := p.mustPeek()
		if err != nil {
			return err
		}
		switch {
		case r == '"':
			return p.eatString()
		case unicode.IsSpace(r) || r == ')' || p.atLineComment() || p.atBlockComment():
			return nil
		case r == '(':
			if err := p.eatGroup(); err != nil {
				return err
			}
		default:
			p.advance()
		}
	}
}

// eatString consumes a quoted string. A backslash escapes the next rune.
func (p *Parser) eatString() error {
	if err := p.expect('"'); err != nil {
		return err
	}
	for {
		r, err := p.mustPeek()
		if err != nil {
			return err
		}
		switch r {
		case '"':
			p.advance()
			return nil
		case '\\':
			p.advance()
			if _, err := p.mustPeek(); err != nil {
				return err
			}
		}
		p.advance()
	}
}

// eatGroup consumes a balanced parenthesised group embedded in a token.
func (p *Parser) eatGroup() error {
	level := 0
	for {
		r, err := p.mustPeek()
		if err != nil {
			return err
		}
		switch r {
		case '"':
			if err := p.eatString(); err != nil {
				return err
			}
			continue
		case '(':
			level++
		case ')':
			level--
		}
		p.advance()
		if level == 0 {
			return nil
		}
	}
}
