package features

import (
	"context"

	"github.com/wippyai/swl/ast"
	"github.com/wippyai/swl/errors"
	"github.com/wippyai/swl/linker"
)

// StartFunc is the id of the function synthesized by StartMerge.
const StartFunc = "$_swl_start_merger"

// StartMerge replaces two or more top-level start directives with a single
// (start $_swl_start_merger) and a function calling every original target
// in declaration order. A single start directive is moved to the end of
// the module.
func StartMerge(_ context.Context, module *ast.Node, _ *linker.Linker) error {
	if !ast.IsModule(module) {
		return notAModule("start_merge", module)
	}

	var starts []*ast.Node
	for i, n := range module.ChildNodes() {
		if n.Name == "start" {
			starts = append(starts, ast.IntoNode(module.Take(i)))
		}
	}
	module.Compact()

	if len(starts) <= 1 {
		for _, s := range starts {
			module.AppendNode(s)
		}
		return nil
	}

	merger := ast.New("func", ast.Attr(StartFunc))
	for _, s := range starts {
		id, ok := ast.FindIDAttribute(s)
		if !ok {
			return errors.New(errors.PhaseLink, errors.KindInvalidStartDirective).
				Node(s.String()).
				Detail("start directive has no function id").
				Build()
		}
		merger.AppendNode(ast.New("call", ast.Attr(id)))
	}
	module.AppendNode(merger)
	module.AppendNode(ast.New("start", ast.Attr(StartFunc)))
	return nil
}
