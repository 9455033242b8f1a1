// Package swl links WebAssembly text modules.
//
// Sources are S-expression modules extended with link-time directives:
// file imports, raw data imports, hex and binary numerals, constant
// expressions evaluated at link time, automatic memory sizing, merged start
// functions and import-first ordering. The linker resolves these and emits
// plain module text.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	swl/                 Root package with one-call helpers
//	├── ast/             Node and item model, traversal and literal helpers
//	├── parser/          Recursive-descent parser
//	├── loader/          Path canonicalization and file access
//	├── linker/          Dedup ledger, import stack and feature pipeline
//	├── features/        The link passes and their name registry
//	├── eval/            Constant expression execution on wazero
//	├── pretty/          Comment-preserving formatter
//	├── config/          swl.yaml loading
//	├── watch/           Relink on file change
//	├── errors/          Structured error types for debugging
//	└── cmd/swl/         Command line tool
//
// # Quick Start
//
//	out, err := swl.LinkFile(ctx, "./src", "main.wat")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(out)
//
// # Features
//
// Passes run in registration order and mutate the module in place:
//
//   - import: (import "path" (file)) splices the imported module's items
//   - data_import: (import "path" (raw)) inside data inlines file bytes
//   - numerals: 0x and 0b literals become decimal
//   - constexpr: (T.constexpr expr) and offset=(expr) are evaluated
//   - size_adjust: the memory's initial size covers every data segment
//   - start_merge: several start directives become one
//   - sort: items containing imports move first
//
// # Thread Safety
//
// A Linker is single-use and NOT thread-safe. The helpers in this package
// create one per call and may be used concurrently.
package swl
