package features

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/swl/ast"
	"github.com/wippyai/swl/errors"
	"github.com/wippyai/swl/eval"
	"github.com/wippyai/swl/linker"
	"github.com/wippyai/swl/parser"
)

const constExprSuffix = ".constexpr"

func isConstExpr(n *ast.Node) bool {
	return strings.HasSuffix(n.Name, constExprSuffix)
}

func isMemoryOp(n *ast.Node) bool {
	return strings.Contains(n.Name, ".store") || strings.Contains(n.Name, ".load")
}

// ConstExpr folds every (<type>.constexpr expr) node into (<type>.const v)
// by executing expr, and rewrites offset=(expr) memory arguments of load
// and store instructions to offset=v. Top-level globals that contain no
// constexpr are available to the expressions through global.get.
func ConstExpr(ctx context.Context, module *ast.Node, l *linker.Linker) error {
	if !ast.IsModule(module) {
		return notAModule("constexpr", module)
	}
	f := &folder{
		l:       l,
		log:     l.Log(),
		prelude: newPrelude(module),
	}
	for n := range module.NodesMut() {
		switch {
		case isConstExpr(n):
			if err := f.foldNode(ctx, n); err != nil {
				return err
			}
		case isMemoryOp(n):
			if err := f.foldOffset(ctx, n); err != nil {
				return err
			}
		}
	}
	return nil
}

// prelude is the part of every evaluation module that exposes the
// module's constant globals. Numeric globals are declared mutable with a
// zero value and assigned at the start of main, so an initialiser may use
// any instruction and read the globals declared before it. Imported
// globals have no value to read and are left out.
type prelude struct {
	decls []string
	inits []string
}

func newPrelude(module *ast.Node) prelude {
	var p prelude
	for _, n := range module.ChildNodes() {
		if n.Name != "global" || n.Any(isConstExpr) || isImportedGlobal(n) {
			continue
		}
		id, typ, init, ok := splitGlobal(n)
		if !ok {
			p.decls = append(p.decls, n.String())
			continue
		}
		ref := id
		if id == "" {
			ref = strconv.Itoa(len(p.decls))
		} else {
			id += " "
		}
		p.decls = append(p.decls, fmt.Sprintf("(global %s(mut %s) (%s.const 0))", id, typ, typ))
		p.inits = append(p.inits, fmt.Sprintf("(global.set %s (block (result %s) %s))", ref, typ, init))
	}
	return p
}

func isImportedGlobal(n *ast.Node) bool {
	for _, c := range n.ChildNodes() {
		if c.Name == "import" {
			return true
		}
	}
	return false
}

// splitGlobal takes (global $id? (export ...)* type init...) apart. ok is
// false for non-numeric types and globals without an initialiser.
func splitGlobal(n *ast.Node) (id, typ, init string, ok bool) {
	var items []ast.Item
	for _, it := range n.Items {
		if _, nothing := it.(ast.Nothing); !nothing {
			items = append(items, it)
		}
	}

	i := 0
	for ; i < len(items); i++ {
		if a, isAttr := ast.AsAttribute(items[i]); isAttr && id == "" && strings.HasPrefix(a.Text, "$") {
			id = a.Text
			continue
		}
		if c, isNode := ast.AsNode(items[i]); isNode && c.Name == "export" {
			continue
		}
		break
	}
	if i >= len(items) {
		return "", "", "", false
	}

	switch t := items[i].(type) {
	case *ast.Attribute:
		typ = t.Text
	case *ast.Node:
		if t.Name == "mut" && len(t.Items) == 1 {
			if a, isAttr := ast.AsAttribute(t.Items[0]); isAttr {
				typ = a.Text
			}
		}
	}
	if _, numeric := eval.ParseType(typ); !numeric || i+1 >= len(items) {
		return "", "", "", false
	}

	parts := make([]string, 0, len(items)-i-1)
	for _, it := range items[i+1:] {
		parts = append(parts, it.String())
	}
	return id, typ, strings.Join(parts, " "), true
}

type folder struct {
	l       *linker.Linker
	log     *zap.Logger
	prelude prelude
}

func (f *folder) foldNode(ctx context.Context, n *ast.Node) error {
	typName := strings.TrimSuffix(n.Name, constExprSuffix)
	typ, ok := eval.ParseType(typName)
	if !ok {
		return unknownType(typName, n)
	}
	body, ok := expression(n)
	if !ok {
		return expressionMissing(n)
	}
	v, err := f.eval(ctx, typ, body)
	if err != nil {
		return err
	}
	n.Name = typName + ".const"
	n.Items = []ast.Item{ast.Attr(v.String())}
	return nil
}

func (f *folder) foldOffset(ctx context.Context, n *ast.Node) error {
	for _, attr := range n.Attributes() {
		arg, ok := strings.CutPrefix(attr.Text, "offset=")
		if !ok {
			continue
		}
		if arg == "" {
			return expressionMissing(n)
		}
		if !strings.HasPrefix(arg, "(") {
			continue
		}
		expr, err := parser.Parse(arg)
		if err != nil {
			return errors.New(errors.PhaseLink, errors.KindInvalidOffset).
				Node(n.String()).
				Detail("malformed offset expression").
				Cause(err).
				Build()
		}

		typName, body := "", expr.String()
		if isConstExpr(expr) {
			typName = strings.TrimSuffix(expr.Name, constExprSuffix)
			if body, ok = expression(expr); !ok {
				return expressionMissing(n)
			}
		} else {
			typName, _, _ = strings.Cut(expr.Name, ".")
		}
		typ, ok := eval.ParseType(typName)
		if !ok {
			return unknownType(typName, n)
		}
		if typ == eval.F32 || typ == eval.F64 {
			return errors.New(errors.PhaseLink, errors.KindInvalidOffset).
				Node(n.String()).
				Detail("offset must be an integer, got %s", typName).
				Build()
		}

		v, err := f.eval(ctx, typ, body)
		if err != nil {
			return err
		}
		if v.Int64() < 0 {
			return errors.New(errors.PhaseLink, errors.KindInvalidOffset).
				Value(v.Int64()).
				Node(n.String()).
				Detail("offset evaluates to negative value %s", v).
				Build()
		}
		attr.Text = "offset=" + v.String()
	}
	return nil
}

// eval wraps body into an evaluation module next to the prelude and runs
// it.
func (f *folder) eval(ctx context.Context, typ eval.Type, body string) (eval.Value, error) {
	var b strings.Builder
	b.WriteString("(module")
	for _, d := range f.prelude.decls {
		b.WriteByte(' ')
		b.WriteString(d)
	}
	b.WriteString(` (func (export "main") (result `)
	b.WriteString(typ.String())
	b.WriteByte(')')
	for _, init := range f.prelude.inits {
		b.WriteByte(' ')
		b.WriteString(init)
	}
	b.WriteByte(' ')
	b.WriteString(body)
	b.WriteString("))")

	v, err := f.l.Evaluator(ctx).Eval(ctx, b.String())
	if err != nil {
		return eval.Value{}, err
	}
	f.log.Debug("constexpr folded",
		zap.Stringer("type", typ),
		zap.String("expr", body),
		zap.Stringer("value", v),
	)
	return v, nil
}

// expression serializes the items of a constexpr node as an instruction
// sequence.
func expression(n *ast.Node) (string, bool) {
	var parts []string
	for _, it := range n.Items {
		if _, ok := it.(ast.Nothing); ok {
			continue
		}
		parts = append(parts, it.String())
	}
	return strings.Join(parts, " "), len(parts) > 0
}

func unknownType(typ string, n *ast.Node) error {
	return errors.New(errors.PhaseLink, errors.KindUnknownType).
		Value(typ).
		Node(n.String()).
		Detail("unknown constexpr type %q", typ).
		Build()
}

func expressionMissing(n *ast.Node) error {
	return errors.New(errors.PhaseLink, errors.KindExpressionMissing).
		Node(n.String()).
		Detail("constexpr is missing an expression").
		Build()
}
