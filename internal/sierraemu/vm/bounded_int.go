package vm

import (
	"fmt"
	"math/big"

	"github.com/feltvm/sierra-emu/internal/sierraemu/ir"
	"github.com/feltvm/sierra-emu/internal/sierraemu/value"
)

func boundedOf(v value.Value, who string) (*big.Int, ir.IntRange, error) {
	if v.Kind != value.KindBoundedInt {
		return nil, ir.IntRange{}, fmt.Errorf("%s: argument is not a BoundedInt value", who)
	}
	return v.Big, v.BoundedRange, nil
}

// evalBoundedInt handles add/sub/mul (output range supplied by the
// libfunc's static data), div_rem, constrain, and trim_min/trim_max.
func evalBoundedInt(_ *ir.Registry, info *ir.LibfuncDescriptor, args []value.Value, _ *Context) (EvalAction, error) {
	switch info.Selector {
	case "add", "sub", "mul":
		if len(args) != 2 {
			return nil, fmt.Errorf("bounded_int.%s: expected two args", info.Selector)
		}
		a, _, err := boundedOf(args[0], "bounded_int."+info.Selector)
		if err != nil {
			return nil, err
		}
		b, _, err := boundedOf(args[1], "bounded_int."+info.Selector)
		if err != nil {
			return nil, err
		}
		outRange, ok := info.Data.(ir.IntRange)
		if !ok {
			return nil, fmt.Errorf("bounded_int.%s: libfunc data is not the declared output range", info.Selector)
		}
		var raw *big.Int
		switch info.Selector {
		case "add":
			raw = new(big.Int).Add(a, b)
		case "sub":
			raw = new(big.Int).Sub(a, b)
		case "mul":
			raw = new(big.Int).Mul(a, b)
		}
		return branch0(value.NewBoundedInt(outRange, raw))

	case "div_rem":
		if len(args) != 3 {
			return nil, fmt.Errorf("bounded_int.div_rem: expected (range_check, lhs, rhs)")
		}
		a, aRange, err := boundedOf(args[1], "bounded_int.div_rem")
		if err != nil {
			return nil, err
		}
		b, _, err := boundedOf(args[2], "bounded_int.div_rem")
		if err != nil {
			return nil, err
		}
		if b.Sign() == 0 {
			return nil, fmt.Errorf("bounded_int.div_rem: division by zero")
		}
		q, r := new(big.Int).QuoRem(a, b, new(big.Int))
		return branch0(args[0], value.NewBoundedInt(aRange, q), value.NewBoundedInt(aRange, r))

	case "constrain":
		if len(args) != 1 {
			return nil, fmt.Errorf("bounded_int.constrain: expected one arg")
		}
		v, _, err := boundedOf(args[0], "bounded_int.constrain")
		if err != nil {
			return nil, err
		}
		boundary, ok := info.Data.(int64)
		if !ok {
			return nil, fmt.Errorf("bounded_int.constrain: libfunc data is not an int64 boundary")
		}
		if v.Cmp(big.NewInt(boundary)) < 0 {
			return branch0(args[0])
		}
		return branch1(args[0])

	case "trim_min", "trim_max":
		if len(args) != 1 {
			return nil, fmt.Errorf("bounded_int.%s: expected one arg", info.Selector)
		}
		v, rng, err := boundedOf(args[0], "bounded_int."+info.Selector)
		if err != nil {
			return nil, err
		}
		var trimmed int64
		var newRange ir.IntRange
		if info.Selector == "trim_min" {
			trimmed = rng.Lo
			newRange = ir.IntRange{Lo: rng.Lo + 1, Hi: rng.Hi + 1}
		} else {
			trimmed = rng.Hi - 1
			newRange = ir.IntRange{Lo: rng.Lo - 1, Hi: rng.Hi - 1}
		}
		if v.Cmp(big.NewInt(trimmed)) == 0 {
			return branch0()
		}
		return branch1(value.NewBoundedInt(newRange, v))
	}
	return nil, &UnimplementedLibfuncError{Family: "bounded_int", Selector: info.Selector}
}
