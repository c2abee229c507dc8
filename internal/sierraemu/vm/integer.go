package vm

import (
	"fmt"
	"math/big"

	"github.com/feltvm/sierra-emu/internal/sierraemu/felt"
	"github.com/feltvm/sierra-emu/internal/sierraemu/ir"
	"github.com/feltvm/sierra-emu/internal/sierraemu/value"
)

type intShape struct {
	width  uint
	signed bool
}

var intShapes = map[string]intShape{
	"u8": {8, false}, "u16": {16, false}, "u32": {32, false}, "u64": {64, false}, "u128": {128, false},
	"i8": {8, true}, "i16": {16, true}, "i32": {32, true}, "i64": {64, true}, "i128": {128, true},
}

func intValueOf(v value.Value) (*big.Int, intShape, error) {
	switch v.Kind {
	case value.KindU8:
		return big.NewInt(int64(v.Int)), intShape{8, false}, nil
	case value.KindU16:
		return big.NewInt(int64(v.Int)), intShape{16, false}, nil
	case value.KindU32:
		return big.NewInt(int64(v.Int)), intShape{32, false}, nil
	case value.KindU64:
		return new(big.Int).SetUint64(v.Int), intShape{64, false}, nil
	case value.KindU128:
		return new(big.Int).Set(v.Big), intShape{128, false}, nil
	case value.KindI8:
		return big.NewInt(v.Sig), intShape{8, true}, nil
	case value.KindI16:
		return big.NewInt(v.Sig), intShape{16, true}, nil
	case value.KindI32:
		return big.NewInt(v.Sig), intShape{32, true}, nil
	case value.KindI64:
		return big.NewInt(v.Sig), intShape{64, true}, nil
	case value.KindI128:
		return new(big.Int).Set(v.Big), intShape{128, true}, nil
	}
	return nil, intShape{}, fmt.Errorf("integer: value is not a fixed-width integer")
}

func newIntValue(shape intShape, magnitude *big.Int) value.Value {
	if shape.signed {
		if shape.width == 128 {
			return value.NewSint128Big(magnitude)
		}
		return value.NewSint(int(shape.width), magnitude.Int64())
	}
	if shape.width == 128 {
		return value.NewUint128Big(magnitude)
	}
	return value.NewUint(int(shape.width), magnitude.Uint64())
}

// wrapUnsigned reduces v modulo 2^width and reports whether that changed
// the value (the overflow signal).
func wrapUnsigned(v *big.Int, width uint) (*big.Int, bool) {
	mod := new(big.Int).Lsh(big.NewInt(1), width)
	r := new(big.Int).Mod(v, mod)
	if r.Sign() < 0 {
		r.Add(r, mod)
	}
	return r, r.Cmp(v) != 0
}

// wrapSigned reduces v into the two's-complement range of width bits and
// reports whether that changed the value.
func wrapSigned(v *big.Int, width uint) (*big.Int, bool) {
	mod := new(big.Int).Lsh(big.NewInt(1), width)
	half := new(big.Int).Lsh(big.NewInt(1), width-1)
	r := new(big.Int).Mod(v, mod)
	if r.Sign() < 0 {
		r.Add(r, mod)
	}
	overflowed := false
	if r.Cmp(half) >= 0 {
		r.Sub(r, mod)
	}
	if r.Cmp(v) != 0 {
		overflowed = true
	}
	return r, overflowed
}

func wrap(shape intShape, v *big.Int) (*big.Int, bool) {
	if shape.signed {
		return wrapSigned(v, shape.width)
	}
	return wrapUnsigned(v, shape.width)
}

// evalInteger handles the uniform per-width integer shape: const,
// overflowing_add/sub, equal, is_zero, to_felt252, from_felt252, wide_mul,
// divmod, and (u128 only) bitwise.
func evalInteger(reg *ir.Registry, info *ir.LibfuncDescriptor, args []value.Value, ctx *Context) (EvalAction, error) {
	shape, ok := intShapes[info.Family]
	if !ok {
		return nil, fmt.Errorf("integer: unknown family %s", info.Family)
	}

	switch info.Selector {
	case "const":
		lit, ok := info.Data.(*big.Int)
		if !ok {
			return nil, fmt.Errorf("%s.const: libfunc data is not a literal", info.Family)
		}
		return branch0(newIntValue(shape, lit))

	case "overflowing_add", "overflowing_sub":
		if len(args) != 2 {
			return nil, fmt.Errorf("%s.%s: expected two args", info.Family, info.Selector)
		}
		a, _, err := intValueOf(args[0])
		if err != nil {
			return nil, err
		}
		b, _, err := intValueOf(args[1])
		if err != nil {
			return nil, err
		}
		var raw *big.Int
		if info.Selector == "overflowing_add" {
			raw = new(big.Int).Add(a, b)
		} else {
			raw = new(big.Int).Sub(a, b)
		}
		wrapped, overflowed := wrap(shape, raw)
		result := newIntValue(shape, wrapped)
		if overflowed {
			return branch1(result)
		}
		return branch0(result)

	case "equal":
		if len(args) != 2 {
			return nil, fmt.Errorf("%s.equal: expected two args", info.Family)
		}
		a, _, err := intValueOf(args[0])
		if err != nil {
			return nil, err
		}
		b, _, err := intValueOf(args[1])
		if err != nil {
			return nil, err
		}
		if a.Cmp(b) == 0 {
			return branch0()
		}
		return branch1()

	case "is_zero":
		if len(args) != 1 {
			return nil, fmt.Errorf("%s.is_zero: expected one arg", info.Family)
		}
		a, _, err := intValueOf(args[0])
		if err != nil {
			return nil, err
		}
		if a.Sign() == 0 {
			return branch0()
		}
		return branch1(args[0])

	case "to_felt252":
		if len(args) != 1 {
			return nil, fmt.Errorf("%s.to_felt252: expected one arg", info.Family)
		}
		a, _, err := intValueOf(args[0])
		if err != nil {
			return nil, err
		}
		return branch0(value.NewFelt(felt.FromBigInt(a)))

	case "from_felt252":
		if len(args) != 1 {
			return nil, fmt.Errorf("%s.from_felt252: expected one arg", info.Family)
		}
		if args[0].Kind != value.KindFelt {
			return nil, fmt.Errorf("%s.from_felt252: argument is not a Felt value", info.Family)
		}
		raw := args[0].Felt.Big()
		wrapped, overflowed := wrap(shape, raw)
		if overflowed {
			// Chosen convention (see design notes): branch 1 emits only
			// the remainder, not the raw felt, keeping result arity
			// uniform with the success branch.
			return branch1(newIntValue(shape, wrapped))
		}
		return branch0(newIntValue(shape, wrapped))

	case "wide_mul":
		if len(args) != 2 {
			return nil, fmt.Errorf("%s.wide_mul: expected two args", info.Family)
		}
		a, _, err := intValueOf(args[0])
		if err != nil {
			return nil, err
		}
		b, _, err := intValueOf(args[1])
		if err != nil {
			return nil, err
		}
		product := new(big.Int).Mul(a, b)
		wideWidth := shape.width * 2
		if wideWidth > 128 {
			// u128/i128 wide_mul doubles to 256 bits, past newIntValue's
			// fixed-width ladder. Unsigned has a real 256-bit carrier
			// (U256); signed does not, so fail cleanly instead of
			// reaching into NewSint/NewUint with an unsupported width.
			if shape.signed {
				return nil, fmt.Errorf("%s.wide_mul: 256-bit signed products are unsupported", info.Family)
			}
			return branch0(bigAsU256(product))
		}
		return branch0(newIntValue(intShape{width: wideWidth, signed: shape.signed}, product))

	case "divmod":
		if len(args) != 3 {
			return nil, fmt.Errorf("%s.divmod: expected (range_check, lhs, rhs)", info.Family)
		}
		a, _, err := intValueOf(args[1])
		if err != nil {
			return nil, err
		}
		b, _, err := intValueOf(args[2])
		if err != nil {
			return nil, err
		}
		if b.Sign() == 0 {
			return nil, fmt.Errorf("%s.divmod: division by zero", info.Family)
		}
		q, r := new(big.Int).QuoRem(a, b, new(big.Int))
		return branch0(args[0], newIntValue(shape, q), newIntValue(shape, r))

	case "bitwise":
		if shape.width != 128 {
			return nil, fmt.Errorf("bitwise: only defined for u128")
		}
		if len(args) != 3 {
			return nil, fmt.Errorf("u128.bitwise: expected (bitwise_builtin, lhs, rhs)")
		}
		a, _, err := intValueOf(args[1])
		if err != nil {
			return nil, err
		}
		b, _, err := intValueOf(args[2])
		if err != nil {
			return nil, err
		}
		and := new(big.Int).And(a, b)
		or := new(big.Int).Or(a, b)
		xor := new(big.Int).Xor(a, b)
		return branch0(args[0], newIntValue(shape, and), newIntValue(shape, or), newIntValue(shape, xor))
	}
	_ = ctx
	return nil, &UnimplementedLibfuncError{Family: info.Family, Selector: info.Selector}
}
