// Package eval executes constant-expression modules on wazero.
//
// A source module is assembled by the wat package and run in a wazero
// runtime. Every evaluation instantiates a fresh anonymous module, so
// evaluations never share state.
package eval

import (
	"context"

	"github.com/tetratelabs/wazero"
	"go.uber.org/zap"

	"github.com/wippyai/swl/errors"
	"github.com/wippyai/swl/wat"
)

// Entry is the export evaluated by Eval.
const Entry = "main"

// Config holds configuration for evaluator creation.
type Config struct {
	// Compiler selects wazero's optimizing compiler instead of the
	// interpreter. Evaluation modules are tiny, so the interpreter is
	// usually faster end to end.
	Compiler bool
}

// Evaluator runs evaluation modules. It is safe for concurrent use.
type Evaluator struct {
	runtime wazero.Runtime
}

// New creates an evaluator backed by the wazero interpreter.
func New(ctx context.Context) *Evaluator {
	return NewWithConfig(ctx, nil)
}

// NewWithConfig creates an evaluator with custom configuration.
func NewWithConfig(ctx context.Context, cfg *Config) *Evaluator {
	runtimeCfg := wazero.NewRuntimeConfigInterpreter()
	if cfg != nil && cfg.Compiler {
		runtimeCfg = wazero.NewRuntimeConfigCompiler()
	}
	runtimeCfg = runtimeCfg.WithCloseOnContextDone(true)
	return &Evaluator{runtime: wazero.NewRuntimeWithConfig(ctx, runtimeCfg)}
}

// Eval compiles source, calls its exported "main" function and returns the
// single result. Compile failures, instantiation failures and traps are
// returned as evaluation errors carrying the source text.
func (e *Evaluator) Eval(ctx context.Context, source string) (Value, error) {
	bin, err := wat.Compile(source)
	if err != nil {
		return Value{}, errors.Evaluation("module", source, err)
	}

	compiled, err := e.runtime.CompileModule(ctx, bin)
	if err != nil {
		return Value{}, errors.Evaluation("module", source, err)
	}
	defer compiled.Close(ctx)

	def, ok := compiled.ExportedFunctions()[Entry]
	if !ok {
		return Value{}, errors.Evaluation("module", source, errors.NotFound(errors.PhaseEval, "export", Entry))
	}
	if len(def.ParamTypes()) != 0 || len(def.ResultTypes()) != 1 {
		return Value{}, errors.Evaluation("module", source, errors.New(errors.PhaseEval, errors.KindEvaluation).
			Detail("%s must take no parameters and return one value, has %d and %d", Entry, len(def.ParamTypes()), len(def.ResultTypes())).
			Build())
	}
	typ := Type(def.ResultTypes()[0])
	if !typ.valid() {
		return Value{}, errors.Evaluation("module", source, errors.Unsupported(errors.PhaseEval, "result type "+typ.String()))
	}

	instance, err := e.runtime.InstantiateModule(ctx, compiled, wazero.NewModuleConfig().WithName(""))
	if err != nil {
		return Value{}, errors.Evaluation(typ.String(), source, err)
	}
	defer instance.Close(ctx)

	results, err := instance.ExportedFunction(Entry).Call(ctx)
	if err != nil {
		return Value{}, errors.Evaluation(typ.String(), source, err)
	}

	v := Value{Type: typ, Bits: results[0]}
	Logger().Debug("evaluated",
		zap.Stringer("type", typ),
		zap.Stringer("value", v),
	)
	return v, nil
}

// Close releases the wazero runtime.
func (e *Evaluator) Close(ctx context.Context) error {
	return e.runtime.Close(ctx)
}
