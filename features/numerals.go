package features

import (
	"context"
	"strconv"
	"strings"

	"github.com/wippyai/swl/ast"
	"github.com/wippyai/swl/errors"
	"github.com/wippyai/swl/linker"
)

// Numerals rewrites every attribute starting with 0x or 0b as a decimal
// integer. Underscore separators are allowed. The value must fit a signed
// 64-bit integer.
func Numerals(_ context.Context, module *ast.Node, _ *linker.Linker) error {
	return ast.Walk(module, ast.VisitorFuncs{
		Attribute: func(parent *ast.Node, attr *ast.Attribute) error {
			base := 0
			switch {
			case strings.HasPrefix(attr.Text, "0x"):
				base = 16
			case strings.HasPrefix(attr.Text, "0b"):
				base = 2
			default:
				return nil
			}
			digits := strings.ReplaceAll(attr.Text[2:], "_", "")
			v, err := strconv.ParseInt(digits, base, 64)
			if err != nil {
				return errors.New(errors.PhaseLink, errors.KindInvalidNumericLiteral).
					Value(attr.Text).
					Node(parent.String()).
					Detail("unrecognized numeric literal %s", attr.Text).
					Cause(err).
					Build()
			}
			attr.Text = strconv.FormatInt(v, 10)
			return nil
		},
	})
}
