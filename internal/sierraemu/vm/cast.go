package vm

import (
	"fmt"

	"github.com/feltvm/sierra-emu/internal/sierraemu/ir"
	"github.com/feltvm/sierra-emu/internal/sierraemu/value"
)

// evalCast handles downcast (range_check, value) and upcast (value) between
// the fixed-width integer widths, reusing the shape table and wrap helpers
// evalInteger relies on.
func evalCast(_ *ir.Registry, info *ir.LibfuncDescriptor, args []value.Value, _ *Context) (EvalAction, error) {
	target, ok := info.Data.(string)
	if !ok {
		return nil, fmt.Errorf("cast.%s: libfunc data is not a target width name", info.Selector)
	}
	shape, ok := intShapes[target]
	if !ok {
		return nil, fmt.Errorf("cast.%s: unknown target width %q", info.Selector, target)
	}

	switch info.Selector {
	case "upcast":
		if len(args) != 1 {
			return nil, fmt.Errorf("cast.upcast: expected one arg")
		}
		raw, _, err := intValueOf(args[0])
		if err != nil {
			return nil, fmt.Errorf("cast.upcast: %w", err)
		}
		// Widening never overflows: the source range is always a subset of
		// the destination range by construction of the program.
		return branch0(newIntValue(shape, raw))

	case "downcast":
		if len(args) != 2 {
			return nil, fmt.Errorf("cast.downcast: expected (range_check, value)")
		}
		rangeCheck := args[0]
		raw, _, err := intValueOf(args[1])
		if err != nil {
			return nil, fmt.Errorf("cast.downcast: %w", err)
		}
		wrapped, overflowed := wrap(shape, raw)
		if overflowed {
			return branch1(rangeCheck)
		}
		return branch0(rangeCheck, newIntValue(shape, wrapped))
	}
	return nil, &UnimplementedLibfuncError{Family: "cast", Selector: info.Selector}
}
