package vm

import (
	"fmt"

	"github.com/feltvm/sierra-emu/internal/sierraemu/ir"
	"github.com/feltvm/sierra-emu/internal/sierraemu/value"
)

// evalFelt252 handles the field binary operators: +, -, *, and / (which
// computes the multiplicative inverse of the non-zero divisor).
func evalFelt252(_ *ir.Registry, info *ir.LibfuncDescriptor, args []value.Value, _ *Context) (EvalAction, error) {
	if len(args) != 2 || args[0].Kind != value.KindFelt || args[1].Kind != value.KindFelt {
		return nil, fmt.Errorf("felt252.%s: expected two Felt args", info.Selector)
	}
	a, b := args[0].Felt, args[1].Felt

	switch info.Selector {
	case "add":
		return branch0(value.NewFelt(a.Add(b)))
	case "sub":
		return branch0(value.NewFelt(a.Sub(b)))
	case "mul":
		return branch0(value.NewFelt(a.Mul(b)))
	case "div":
		if b.IsZero() {
			return nil, fmt.Errorf("felt252.div: division by zero")
		}
		r, err := a.Div(b)
		if err != nil {
			return nil, fmt.Errorf("felt252.div: %w", err)
		}
		return branch0(value.NewFelt(r))
	}
	return nil, &UnimplementedLibfuncError{Family: "felt252", Selector: info.Selector}
}
