// Package linker loads module files and runs feature passes over them.
//
// # Main Types
//
//   - Linker: owns a loader, the per-run deduplication ledger and the
//     ordered feature list
//   - Feature: a named transform applied to a top-level module
//   - Evaluator: executes constant-expression modules for features that
//     fold expressions
//
// # Deduplication
//
// Load canonicalizes every path. The first load of an identity parses the
// file; every later load of the same identity in the same run returns an
// empty (module) instead. Importing a file twice is therefore a no-op.
// With Options.RejectImportCycles, loading a file that is still being
// resolved higher up the import chain fails with an import_cycle error.
//
// # Thread Safety
//
// Linker is NOT safe for concurrent use. Create one per link run.
//
// # Example
//
//	l := linker.New(loader.NewFileSystemLoader("."), linker.Options{
//	    Features: features.Default(),
//	})
//	defer l.Close(ctx)
//	module, err := l.LinkFile(ctx, "main.wat")
package linker
