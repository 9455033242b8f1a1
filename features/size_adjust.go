package features

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/wippyai/swl/ast"
	"github.com/wippyai/swl/errors"
	"github.com/wippyai/swl/linker"
)

// PageSize is the size of a linear memory page in bytes.
const PageSize = 64 * 1024

// SizeAdjust sets the first memory's initial size to the number of pages
// needed by the active data segments, at least one. The page count
// replaces the memory's first numeric attribute or is appended. Modules
// without a memory are left unchanged.
func SizeAdjust(_ context.Context, module *ast.Node, l *linker.Linker) error {
	if !ast.IsModule(module) {
		return notAModule("size_adjust", module)
	}

	var maxAddr uint64
	for _, data := range module.ChildNodes() {
		if data.Name != "data" || !isActiveSegment(data) {
			continue
		}
		offset, err := segmentOffset(data)
		if err != nil {
			return err
		}
		size, err := segmentSize(data)
		if err != nil {
			return err
		}
		maxAddr = max(maxAddr, offset+size)
	}

	memory, ok := module.FindChild("memory")
	if !ok {
		return nil
	}
	pages := max((maxAddr+PageSize-1)/PageSize, 1)
	text := strconv.FormatUint(pages, 10)

	patched := false
	for _, attr := range memory.Attributes() {
		if _, err := strconv.ParseUint(attr.Text, 10, 64); err == nil {
			attr.Text = text
			patched = true
			break
		}
	}
	if !patched {
		memory.AppendAttribute(text)
	}
	l.Log().Debug("memory size adjusted", zap.Uint64("max_addr", maxAddr), zap.Uint64("pages", pages))
	return nil
}

// isActiveSegment reports whether data names a memory or has an explicit
// or implicit offset.
func isActiveSegment(data *ast.Node) bool {
	for _, c := range data.ChildNodes() {
		switch c.Name {
		case "memory", "offset", "i32.const":
			return true
		}
	}
	return false
}

// segmentOffset returns N from (offset (i32.const N)) or (i32.const N), or
// 0 when the segment has neither.
func segmentOffset(data *ast.Node) (uint64, error) {
	for _, c := range data.ChildNodes() {
		if c.Name != "offset" && c.Name != "i32.const" {
			continue
		}
		expr := c
		if c.Name == "offset" {
			inner, ok := firstChildNode(c)
			if !ok || inner.Name != "i32.const" {
				return 0, invalidOffset(data, "offset must be an (i32.const N) expression")
			}
			expr = inner
		}
		text := "0"
		for _, a := range expr.Attributes() {
			text = a.Text
			break
		}
		v, err := strconv.ParseUint(text, 10, 32)
		if err != nil {
			return 0, invalidOffset(data, "offset "+strconv.Quote(text)+" is not a decimal address")
		}
		return v, nil
	}
	return 0, nil
}

// segmentSize sums the decoded lengths of the segment's string literals.
func segmentSize(data *ast.Node) (uint64, error) {
	var size uint64
	for _, attr := range data.Attributes() {
		body, ok := ast.Unquote(attr.Text)
		if !ok {
			continue
		}
		n, err := ast.InterpretedStringLength(body)
		if err != nil {
			return 0, err
		}
		size += uint64(n)
	}
	return size, nil
}

func firstChildNode(n *ast.Node) (*ast.Node, bool) {
	for _, c := range n.ChildNodes() {
		return c, true
	}
	return nil, false
}

func invalidOffset(data *ast.Node, detail string) error {
	return errors.New(errors.PhaseLink, errors.KindInvalidOffset).
		Node(data.String()).
		Detail("%s", detail).
		Build()
}
