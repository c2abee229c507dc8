package vm

import (
	"fmt"

	"github.com/feltvm/sierra-emu/internal/sierraemu/ir"
	"github.com/feltvm/sierra-emu/internal/sierraemu/value"
)

// EvalAction is what a libfunc handler returns: either a branch selection
// with its result values, or a request to call another function.
type EvalAction interface{ isEvalAction() }

// NormalBranch selects branch index Branch and supplies its Results.
type NormalBranch struct {
	Branch  int
	Results []value.Value
}

func (NormalBranch) isEvalAction() {}

// FunctionCall requests the engine push a new frame for Target with Args.
type FunctionCall struct {
	Target ir.FunctionID
	Args   []value.Value
}

func (FunctionCall) isEvalAction() {}

// Context carries everything a libfunc handler needs beyond its own
// arguments: the engine (for gas/syscalls), the libfunc descriptor, the
// current statement index, and the raw invocation (for branch shapes that
// depend on declared arity).
type Context struct {
	Engine *Engine
	Info   *ir.LibfuncDescriptor
	PC     ir.StatementIndex
	Invoke *ir.Invocation
}

// handlerFunc is the per-family entry point signature.
type handlerFunc func(reg *ir.Registry, info *ir.LibfuncDescriptor, args []value.Value, ctx *Context) (EvalAction, error)

var familyHandlers = map[string]handlerFunc{
	"ap_tracking":   evalApTracking,
	"branch_align":  evalBranchAlign,
	"mem":           evalMem,
	"const":         evalConst,
	"drop":          evalDrop,
	"dup":           evalDup,
	"function_call": evalFunctionCall,
	"enum":          evalEnum,
	"struct":        evalStruct,
	"array":         evalArray,
	"felt252_dict":  evalFeltDict,
	"u8":            evalInteger,
	"u16":           evalInteger,
	"u32":           evalInteger,
	"u64":           evalInteger,
	"u128":          evalInteger,
	"i8":            evalInteger,
	"i16":           evalInteger,
	"i32":           evalInteger,
	"i64":           evalInteger,
	"i128":          evalInteger,
	"bounded_int":   evalBoundedInt,
	"uint256":       evalUint256,
	"felt252":       evalFelt252,
	"ec":            evalEc,
	"gas":           evalGas,
	"starknet":      evalStarknet,
	"circuit":       evalCircuit,
	"cast":          evalCast,
	"box":           evalBox,
	"snapshot_take": evalSnapshotTake,
	"jump":          evalJump,
}

// Dispatch maps a libfunc's family discriminant to its handler. Unknown
// families and selectors are fatal (spec.md §7 closing paragraph: carry an
// explicit marker naming family and selector).
func Dispatch(reg *ir.Registry, info *ir.LibfuncDescriptor, args []value.Value, ctx *Context) (EvalAction, error) {
	h, ok := familyHandlers[info.Family]
	if !ok {
		return nil, &UnimplementedLibfuncError{Family: info.Family, Selector: info.Selector}
	}
	return h(reg, info, args, ctx)
}

// UnimplementedLibfuncError is the fatal marker produced for any libfunc
// family/selector combination the dispatch table does not (yet) cover.
type UnimplementedLibfuncError struct {
	Family, Selector string
}

func (e *UnimplementedLibfuncError) Error() string {
	return fmt.Sprintf("vm: unimplemented libfunc %s.%s", e.Family, e.Selector)
}

func branch0(results ...value.Value) (EvalAction, error) {
	return NormalBranch{Branch: 0, Results: results}, nil
}

func branch1(results ...value.Value) (EvalAction, error) {
	return NormalBranch{Branch: 1, Results: results}, nil
}
