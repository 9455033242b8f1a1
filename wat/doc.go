// Package wat assembles text-format modules into binary modules.
//
// It is the compiler behind constant expression evaluation: the linker
// synthesizes a module holding the top-level globals and a single exported
// function, assembles it here and runs it on wazero. It also backs the
// built-in assembler used by "swl link --emit-binary" when no external
// tool is configured.
//
//	wasm, err := wat.Compile(`(module
//		(func (export "main") (result i32)
//			(block (result i32) (i32.const 7))))`)
//
// Supported:
//   - Functions with params, results, named and indexed locals
//   - Memory, global and table declarations with imports and exports
//   - Structured control flow in folded and flat form, br_table, call_indirect
//   - The full scalar numeric instruction set, memory access with offset/align
//   - Bulk memory, table operations, reference types and saturating truncation
//   - Data and elem segments (active, passive, declarative)
//
// Not supported: SIMD, threads, exception handling, GC types.
package wat
