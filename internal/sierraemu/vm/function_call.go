package vm

import (
	"fmt"

	"github.com/feltvm/sierra-emu/internal/sierraemu/ir"
	"github.com/feltvm/sierra-emu/internal/sierraemu/value"
)

// evalFunctionCall asserts args match the callee's parameter types and
// hands control back to the engine to push a new frame; the engine
// performs the actual push (function_call itself never touches the frame
// stack directly, keeping the handler signature uniform with every other
// libfunc).
func evalFunctionCall(reg *ir.Registry, info *ir.LibfuncDescriptor, args []value.Value, _ *Context) (EvalAction, error) {
	target, ok := info.Data.(ir.FunctionID)
	if !ok {
		return nil, fmt.Errorf("function_call: libfunc data is not a FunctionID")
	}
	fn, err := reg.FunctionOf(target)
	if err != nil {
		return nil, err
	}
	if len(args) != len(fn.Params) {
		return nil, fmt.Errorf("function_call: expected %d args, got %d", len(fn.Params), len(args))
	}
	for i, p := range fn.Params {
		ok, err := value.IsOf(reg, args[i], p.Type)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("function_call: arg %d does not conform to declared type %d", i, p.Type)
		}
	}
	return FunctionCall{Target: target, Args: args}, nil
}
