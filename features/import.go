package features

import (
	"context"

	"go.uber.org/zap"

	"github.com/wippyai/swl/ast"
	"github.com/wippyai/swl/errors"
	"github.com/wippyai/swl/linker"
)

// isDirective reports whether n has the shape (import <attr> (kind)).
func isDirective(n *ast.Node, kind string) bool {
	if n.Name != "import" || len(n.Items) != 2 {
		return false
	}
	if _, ok := ast.AsAttribute(n.Items[0]); !ok {
		return false
	}
	target, ok := ast.AsNode(n.Items[1])
	return ok && target.Name == kind
}

// directivePath returns the unquoted path argument of an import directive.
func directivePath(n *ast.Node) (string, error) {
	attr, _ := ast.AsAttribute(n.Items[0])
	path, ok := ast.Unquote(attr.Text)
	if !ok {
		return "", errors.InvalidImport(n.String(), "import directive expects a string path")
	}
	return path, nil
}

// Import replaces every top-level (import "path" (file)) directive with the
// items of the module at path. Imported modules have their own imports
// resolved first; their items are appended after the importer's items in
// directive order. A file imported a second time contributes nothing.
func Import(_ context.Context, module *ast.Node, l *linker.Linker) error {
	if !ast.IsModule(module) {
		return notAModule("import", module)
	}
	return resolveImports(module, l)
}

func resolveImports(module *ast.Node, l *linker.Linker) error {
	n := len(module.Items)
	for i := 0; i < n; i++ {
		node, ok := ast.AsNode(module.Items[i])
		if !ok || !isDirective(node, "file") {
			continue
		}
		path, err := directivePath(node)
		if err != nil {
			return err
		}
		module.Take(i)

		imported, err := l.Import(path, func(m *ast.Node) error {
			if !ast.IsModule(m) {
				return errors.NotAModule("import", m.String()).WithPath(path)
			}
			return resolveImports(m, l)
		})
		if err != nil {
			return err
		}
		l.Log().Debug("module imported",
			zap.String("path", path),
			zap.Int("items", len(imported.Items)),
		)
		module.Append(imported.Items...)
	}
	module.Compact()
	return nil
}
