// Package loader resolves import paths to canonical identities and file
// contents.
package loader

import (
	"github.com/wippyai/swl/ast"
	"github.com/wippyai/swl/errors"
	"github.com/wippyai/swl/parser"
)

// Loader resolves a logical path to a canonical identity and raw bytes.
// The canonical identity is used as the deduplication key by the linker.
type Loader interface {
	Canonicalize(path string) (string, error)
	LoadRaw(path string) ([]byte, error)
}

// LoadModule reads path through l and parses it. Parse failures are
// wrapped with the path.
func LoadModule(l Loader, path string) (*ast.Node, error) {
	data, err := l.LoadRaw(path)
	if err != nil {
		return nil, err
	}
	module, err := parser.ParseBytes(data)
	if err != nil {
		return nil, errors.ParseFailed(path, err)
	}
	return module, nil
}
