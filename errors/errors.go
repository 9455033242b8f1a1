package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseParse   Phase = "parse"   // text to tree
	PhaseLoad    Phase = "load"    // path resolution and file reads
	PhaseLink    Phase = "link"    // feature passes
	PhaseEval    Phase = "eval"    // constant expression execution
	PhaseCompile Phase = "compile" // text format to binary module
	PhaseFormat  Phase = "format"  // pretty printing
	PhaseConfig  Phase = "config"  // configuration loading
)

// Kind categorizes the error
type Kind string

const (
	KindUnexpectedEOF         Kind = "unexpected_eof"
	KindUnexpectedToken       Kind = "unexpected_token"
	KindStrayData             Kind = "stray_data"
	KindInvalidEscapeSequence Kind = "invalid_escape_sequence"
	KindNotAModule            Kind = "not_a_module"
	KindExpressionMissing     Kind = "expression_missing"
	KindUnknownType           Kind = "unknown_type"
	KindInvalidImport         Kind = "invalid_import"
	KindInvalidStartDirective Kind = "invalid_start_directive"
	KindInvalidOffset         Kind = "invalid_offset"
	KindInvalidNumericLiteral Kind = "invalid_numeric_literal"
	KindImportCycle           Kind = "import_cycle"
	KindNotFound              Kind = "not_found"
	KindIO                    Kind = "io"
	KindEvaluation            Kind = "evaluation"
	KindCompile               Kind = "compile"
	KindUnsupported           Kind = "unsupported"
	KindUnknownFeature        Kind = "unknown_feature"
	KindInvalidConfig         Kind = "invalid_config"
)

// Sentinels for errors.Is. They carry no phase, so they match on Kind only.
var (
	ErrUnexpectedEOF         = &Error{Kind: KindUnexpectedEOF}
	ErrUnexpectedToken       = &Error{Kind: KindUnexpectedToken}
	ErrStrayData             = &Error{Kind: KindStrayData}
	ErrInvalidEscapeSequence = &Error{Kind: KindInvalidEscapeSequence}
	ErrNotAModule            = &Error{Kind: KindNotAModule}
	ErrExpressionMissing     = &Error{Kind: KindExpressionMissing}
	ErrUnknownType           = &Error{Kind: KindUnknownType}
	ErrInvalidImport         = &Error{Kind: KindInvalidImport}
	ErrInvalidStartDirective = &Error{Kind: KindInvalidStartDirective}
	ErrInvalidOffset         = &Error{Kind: KindInvalidOffset}
	ErrInvalidNumericLiteral = &Error{Kind: KindInvalidNumericLiteral}
	ErrImportCycle           = &Error{Kind: KindImportCycle}
	ErrNotFound              = &Error{Kind: KindNotFound}
	ErrEvaluation            = &Error{Kind: KindEvaluation}
	ErrCompile               = &Error{Kind: KindCompile}
	ErrUnknownFeature        = &Error{Kind: KindUnknownFeature}
	ErrInvalidConfig         = &Error{Kind: KindInvalidConfig}
)

// Position is a 1-based line/column location in source text.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsZero reports whether the position was never set.
func (p Position) IsZero() bool {
	return p.Line == 0
}

// Error is the structured error type used throughout the linker
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Node   string
	Detail string
	Path   []string
	Pos    Position
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" in ")
		b.WriteString(strings.Join(e.Path, " -> "))
	}

	if !e.Pos.IsZero() {
		b.WriteString(" at ")
		b.WriteString(e.Pos.String())
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Node != "" {
		b.WriteString(" (node: ")
		b.WriteString(truncate(e.Node, 120))
		b.WriteByte(')')
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error. A target without a phase
// matches any phase.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Phase != "" && t.Phase != e.Phase {
		return false
	}
	return e.Kind == t.Kind
}

// WithPath returns a copy of e with path prepended to its path chain.
// Used when an error bubbles out of a nested import.
func (e *Error) WithPath(path string) *Error {
	c := *e
	c.Path = append([]string{path}, e.Path...)
	return &c
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the file path chain
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Node sets the offending node text
func (b *Builder) Node(text string) *Builder {
	b.err.Node = text
	return b
}

// Pos sets the source position
func (b *Builder) Pos(line, column int) *Builder {
	b.err.Pos = Position{Line: line, Column: column}
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// UnexpectedEOF creates a parse error for input that ended inside a form
func UnexpectedEOF(pos Position) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindUnexpectedEOF,
		Pos:    pos,
		Detail: "unexpected end of input",
	}
}

// UnexpectedToken creates a parse error for a mismatched character or token
func UnexpectedToken(pos Position, expected, got string) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindUnexpectedToken,
		Pos:    pos,
		Detail: fmt.Sprintf("expected %s, got %q", expected, got),
		Value:  got,
	}
}

// StrayData creates a parse error for content after the top-level form
func StrayData(pos Position, remainder string) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindStrayData,
		Pos:    pos,
		Detail: fmt.Sprintf("unexpected data after top-level form: %q", truncate(remainder, 40)),
		Value:  remainder,
	}
}

// InvalidEscapeSequence creates an error for a malformed string escape
func InvalidEscapeSequence(literal, detail string) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindInvalidEscapeSequence,
		Detail: detail,
		Value:  literal,
	}
}

// NotAModule creates an error for a pass applied to something other than a
// top-level module
func NotAModule(feature, node string) *Error {
	return &Error{
		Phase:  PhaseLink,
		Kind:   KindNotAModule,
		Detail: fmt.Sprintf("%s can only be applied to top-level modules", feature),
		Node:   node,
	}
}

// InvalidImport creates an error for a malformed import directive
func InvalidImport(node, detail string) *Error {
	return &Error{
		Phase:  PhaseLink,
		Kind:   KindInvalidImport,
		Detail: detail,
		Node:   node,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
		Value:  name,
	}
}

// IO wraps a failed read or write
func IO(path string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindIO,
		Path:   []string{path},
		Detail: "read failed",
		Cause:  cause,
	}
}

// ParseFailed wraps a parse error raised while loading path
func ParseFailed(path string, cause error) *Error {
	kind := KindUnexpectedToken
	if e, ok := cause.(*Error); ok {
		kind = e.Kind
	}
	return &Error{
		Phase:  PhaseLoad,
		Kind:   kind,
		Path:   []string{path},
		Detail: "parse module",
		Cause:  cause,
	}
}

// Evaluation wraps a failed constant expression execution
func Evaluation(typ, source string, cause error) *Error {
	return &Error{
		Phase:  PhaseEval,
		Kind:   KindEvaluation,
		Detail: fmt.Sprintf("evaluate %s expression", typ),
		Node:   source,
		Cause:  cause,
	}
}

// Unsupported creates an unsupported construct error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}
