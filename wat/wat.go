package wat

import (
	"github.com/wippyai/swl/wat/internal/encoder"
	"github.com/wippyai/swl/wat/internal/parser"
	"github.com/wippyai/swl/wat/internal/token"
)

// Compile assembles a single text-format module into a binary module.
// Failures are *errors.Error values in the compile phase, positioned at
// the offending token.
func Compile(source string) ([]byte, error) {
	mod, err := parser.New(token.Tokenize(source)).Parse()
	if err != nil {
		return nil, err
	}
	return encoder.Encode(mod), nil
}
