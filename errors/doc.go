// Package errors provides the structured error type used by every stage of
// the linker: parsing, loading, the feature passes, evaluation and formatting.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type carries the offending file path, the offending
// node text, a source position for parse errors and the cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseLink, errors.KindInvalidImport).
//		Path("lib/math.wat").
//		Node(`(import 42 (file))`).
//		Detail("import path must be a string literal").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.NotAModule("sort", node.String())
//	err := errors.Evaluation("i32", source, cause)
//
// Sentinels such as ErrNotAModule match any error of the same Kind through
// errors.Is, regardless of phase.
package errors
