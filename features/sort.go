package features

import (
	"context"
	"slices"

	"github.com/wippyai/swl/ast"
	"github.com/wippyai/swl/linker"
)

func hasImport(n *ast.Node) bool {
	return n.Any(func(c *ast.Node) bool { return c.Name == "import" })
}

// Sort moves every top-level node whose subtree contains an import node
// before the nodes that contain none, keeping the relative order inside
// both groups. Bare attributes such as the module id stay in the leading
// group.
func Sort(_ context.Context, module *ast.Node, _ *linker.Linker) error {
	if !ast.IsModule(module) {
		return notAModule("sort", module)
	}
	rank := func(it ast.Item) int {
		if n, ok := ast.AsNode(it); ok && !hasImport(n) {
			return 1
		}
		return 0
	}
	slices.SortStableFunc(module.Items, func(a, b ast.Item) int {
		return rank(a) - rank(b)
	})
	return nil
}
