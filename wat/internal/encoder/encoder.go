// Package encoder writes a parsed module in the binary format.
package encoder

import (
	"github.com/wippyai/swl/wat/internal/ast"
)

var header = []byte{0x00, 0x61, 0x73, 0x6D, 0x01, 0x00, 0x00, 0x00}

// section pairs a presence check with its encoder. Order is the binary
// format's section order.
type section struct {
	present func(*ast.Module) bool
	encode  func(*Buffer, *ast.Module)
}

var sections = []section{
	{func(m *ast.Module) bool { return len(m.Types) > 0 }, encodeTypeSection},
	{func(m *ast.Module) bool { return len(m.Imports) > 0 }, encodeImportSection},
	{func(m *ast.Module) bool { return len(m.Funcs) > 0 }, encodeFuncSection},
	{func(m *ast.Module) bool { return len(m.Tables) > 0 }, encodeTableSection},
	{func(m *ast.Module) bool { return len(m.Memories) > 0 }, encodeMemorySection},
	{func(m *ast.Module) bool { return len(m.Globals) > 0 }, encodeGlobalSection},
	{func(m *ast.Module) bool { return len(m.Exports) > 0 }, encodeExportSection},
	{func(m *ast.Module) bool { return m.Start != nil }, encodeStartSection},
	{func(m *ast.Module) bool { return len(m.Elems) > 0 }, encodeElemSection},
	// data count must precede code when passive segments exist
	{func(m *ast.Module) bool { return hasPassiveData(m) && len(m.Code) > 0 }, encodeDataCountSection},
	{func(m *ast.Module) bool { return len(m.Code) > 0 }, encodeCodeSection},
	{func(m *ast.Module) bool { return len(m.Data) > 0 }, encodeDataSection},
}

// Encode returns the binary form of m. Empty sections are omitted.
func Encode(m *ast.Module) []byte {
	buf := &Buffer{}
	buf.WriteBytes(header)
	for _, s := range sections {
		if s.present(m) {
			s.encode(buf, m)
		}
	}
	return buf.Bytes
}

func hasPassiveData(m *ast.Module) bool {
	for _, d := range m.Data {
		if d.Passive {
			return true
		}
	}
	return false
}
