package ast

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/wippyai/swl/errors"
)

// IsModule reports whether n is a top-level module form.
func IsModule(n *Node) bool {
	return n.Depth == 0 && n.Name == "module"
}

// IsStringLiteral reports whether s is a double-quoted string literal.
func IsStringLiteral(s string) bool {
	return len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"'
}

// Unquote strips the surrounding quotes of a string literal without
// interpreting escapes.
func Unquote(s string) (string, bool) {
	if !IsStringLiteral(s) {
		return "", false
	}
	return s[1 : len(s)-1], true
}

// DecodeString decodes the body of a string literal (without quotes) into
// the bytes it denotes. Supported escapes: \t \n \r \" \' \\, two hex
// digits \hh, and \u{hex}.
func DecodeString(body string) ([]byte, error) {
	out := make([]byte, 0, len(body))
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' {
			out = append(out, c)
			continue
		}
		if i+1 >= len(body) {
			return nil, errors.InvalidEscapeSequence(body, "escape with no character")
		}
		i++
		switch e := body[i]; e {
		case 't':
			out = append(out, '\t')
		case 'n':
			out = append(out, '\n')
		case 'r':
			out = append(out, '\r')
		case '"', '\'', '\\':
			out = append(out, e)
		case 'u':
			r, n, err := decodeUnicodeEscape(body[i+1:])
			if err != nil {
				return nil, err
			}
			out = utf8.AppendRune(out, r)
			i += n
		default:
			if !isHexDigit(e) {
				return nil, errors.InvalidEscapeSequence(body, "unknown escape \\"+string(e))
			}
			if i+1 >= len(body) || !isHexDigit(body[i+1]) {
				return nil, errors.InvalidEscapeSequence(body, "hex escape with only one digit")
			}
			v, _ := strconv.ParseUint(body[i:i+2], 16, 8)
			out = append(out, byte(v))
			i++
		}
	}
	return out, nil
}

// decodeUnicodeEscape parses "{hex}" at the start of s and returns the
// code point and the number of bytes consumed.
func decodeUnicodeEscape(s string) (rune, int, error) {
	if !strings.HasPrefix(s, "{") {
		return 0, 0, errors.InvalidEscapeSequence(s, "expected '{' after \\u")
	}
	end := strings.IndexByte(s, '}')
	if end < 2 {
		return 0, 0, errors.InvalidEscapeSequence(s, "malformed \\u{...} escape")
	}
	v, err := strconv.ParseUint(strings.ReplaceAll(s[1:end], "_", ""), 16, 32)
	if err != nil || !utf8.ValidRune(rune(v)) {
		return 0, 0, errors.InvalidEscapeSequence(s, "invalid code point in \\u{...} escape")
	}
	return rune(v), end + 1, nil
}

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

// InterpretedStringLength returns the length of the body of a string
// literal in characters: every unescaped character counts one, and so does
// every escape, so a \hh byte escape is a single unit. The body must be a
// valid literal.
func InterpretedStringLength(body string) (int, error) {
	if _, err := DecodeString(body); err != nil {
		return 0, err
	}
	n := 0
	for i := 0; i < len(body); n++ {
		if body[i] != '\\' {
			_, size := utf8.DecodeRuneInString(body[i:])
			i += size
			continue
		}
		i++
		switch e := body[i]; {
		case e == 'u':
			i += strings.IndexByte(body[i:], '}') + 1
		case isHexDigit(e):
			i += 2
		default:
			i++
		}
	}
	return n, nil
}

// EncodeBytes renders data as a string literal made only of \hh escapes.
func EncodeBytes(data []byte) string {
	const hex = "0123456789abcdef"
	var b strings.Builder
	b.Grow(len(data)*3 + 2)
	b.WriteByte('"')
	for _, v := range data {
		b.WriteByte('\\')
		b.WriteByte(hex[v>>4])
		b.WriteByte(hex[v&0x0f])
	}
	b.WriteByte('"')
	return b.String()
}

// FindIDAttribute returns the id attribute of n. A named id ("$x") wins
// over a numeric one.
func FindIDAttribute(n *Node) (string, bool) {
	for _, a := range n.Attributes() {
		if strings.HasPrefix(a.Text, "$") {
			return a.Text, true
		}
	}
	for _, a := range n.Attributes() {
		if _, err := strconv.ParseUint(a.Text, 10, 64); err == nil {
			return a.Text, true
		}
	}
	return "", false
}
