// Package features implements the linker's transform passes.
//
// Each pass is a linker.Feature working on a top-level module:
//
//   - import: splices (import "path" (file)) modules into the importer
//   - data_import: replaces (import "path" (raw)) inside data segments with
//     the file's bytes as an escaped string
//   - numerals: rewrites 0x and 0b integer literals to decimal
//   - constexpr: folds (<type>.constexpr expr) nodes and offset=(...)
//     memory arguments by executing them
//   - size_adjust: sets the memory's initial page count from active data
//   - start_merge: merges several start directives into one function
//   - sort: moves forms containing imports before all others
//
// Default returns them in the order above.
package features
