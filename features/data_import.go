package features

import (
	"context"

	"github.com/wippyai/swl/ast"
	"github.com/wippyai/swl/linker"
)

// DataImport replaces (import "path" (raw)) items inside top-level data
// segments with a string literal holding the file's bytes, each written as
// a lowercase \xx escape.
func DataImport(_ context.Context, module *ast.Node, l *linker.Linker) error {
	if !ast.IsModule(module) {
		return notAModule("data_import", module)
	}
	for _, data := range module.ChildNodes() {
		if data.Name != "data" {
			continue
		}
		for i, it := range data.Items {
			n, ok := ast.AsNode(it)
			if !ok || !isDirective(n, "raw") {
				continue
			}
			path, err := directivePath(n)
			if err != nil {
				return err
			}
			raw, err := l.LoadRaw(path)
			if err != nil {
				return err
			}
			data.Items[i] = ast.Attr(ast.EncodeBytes(raw))
		}
	}
	return nil
}
