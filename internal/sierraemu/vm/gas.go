package vm

import (
	"fmt"

	"github.com/feltvm/sierra-emu/internal/sierraemu/ir"
	"github.com/feltvm/sierra-emu/internal/sierraemu/value"
)

// evalGas handles withdraw_gas, builtin_withdraw_gas, redeposit_gas, and
// get_builtin_costs. Gas itself flows through the program as an opaque
// GasBuiltin token (represented as Unit, like every other builtin
// resource); the actual counter lives on the Engine and is consulted and
// mutated here directly.
func evalGas(_ *ir.Registry, info *ir.LibfuncDescriptor, args []value.Value, ctx *Context) (EvalAction, error) {
	switch info.Selector {
	case "withdraw_gas", "builtin_withdraw_gas":
		if len(args) != 2 {
			return nil, fmt.Errorf("gas.%s: expected (range_check, gas)", info.Selector)
		}
		cost := costAt(ctx)
		available := ctx.Engine.AvailableGas()
		if available >= uint64(cost) {
			ctx.Engine.SetAvailableGas(available - uint64(cost))
			if info.Selector == "builtin_withdraw_gas" {
				return branch0(args[0], args[1], value.Unit)
			}
			return branch0(args[0], args[1])
		}
		return branch1(args[0], args[1])

	case "redeposit_gas":
		if len(args) != 1 {
			return nil, fmt.Errorf("gas.redeposit_gas: expected (gas)")
		}
		ctx.Engine.SetAvailableGas(ctx.Engine.AvailableGas() + uint64(costAt(ctx)))
		return branch0(args[0])

	case "get_builtin_costs":
		if len(args) != 0 {
			return nil, fmt.Errorf("gas.get_builtin_costs: expected no args")
		}
		return branch0(value.Unit)
	}
	return nil, &UnimplementedLibfuncError{Family: "gas", Selector: info.Selector}
}

// costAt sums the per-token cost of the current statement across every
// token type this platform exposes. Absent gas metadata (no GasMetadata
// computed at startup), every withdrawal is free and prefers branch 0.
func costAt(ctx *Context) int64 {
	if ctx.Engine.Gas == nil {
		return 0
	}
	return ctx.Engine.Gas.CostAt(ctx.PC).Sum()
}
