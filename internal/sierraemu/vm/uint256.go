package vm

import (
	"fmt"
	"math/big"

	"github.com/holiman/uint256"

	"github.com/feltvm/sierra-emu/internal/sierraemu/ir"
	"github.com/feltvm/sierra-emu/internal/sierraemu/value"
)

const u128Bits = 128

// u256AsBig packs a U256 value's two u128 limbs into a single big.Int
// (bigAsU256 is the inverse, also used by the starknet secp limb
// conversions).
func u256AsBig(v value.Value) *big.Int {
	out := new(big.Int).Lsh(v.Hi, u128Bits)
	out.Or(out, v.Lo)
	return out
}

func bigAsU256(v *big.Int) value.Value {
	mod := new(big.Int).Lsh(big.NewInt(1), u128Bits)
	hi := new(big.Int).Rsh(v, u128Bits)
	lo := new(big.Int).Mod(v, mod)
	return value.NewU256(lo, hi)
}

// toU256Int and fromU256Int round-trip through holiman/uint256, the
// library this platform's u256 arithmetic is grounded on.
func toU256Int(v value.Value) *uint256.Int {
	var buf [32]byte
	u256AsBig(v).FillBytes(buf[:])
	return new(uint256.Int).SetBytes(buf[:])
}

func fromU256Int(u *uint256.Int) value.Value {
	buf := u.Bytes32()
	return bigAsU256(new(big.Int).SetBytes(buf[:]))
}

// evalUint256 handles is_zero and divmod, interpreting the struct-of-two-
// u128 value as a single 256-bit number.
func evalUint256(_ *ir.Registry, info *ir.LibfuncDescriptor, args []value.Value, _ *Context) (EvalAction, error) {
	switch info.Selector {
	case "is_zero":
		if len(args) != 1 || args[0].Kind != value.KindU256 {
			return nil, fmt.Errorf("uint256.is_zero: expected one U256 arg")
		}
		if args[0].Lo.Sign() == 0 && args[0].Hi.Sign() == 0 {
			return branch0()
		}
		return branch1(args[0])

	case "divmod":
		if len(args) != 2 || args[0].Kind != value.KindU256 || args[1].Kind != value.KindU256 {
			return nil, fmt.Errorf("uint256.divmod: expected two U256 args")
		}
		a, b := toU256Int(args[0]), toU256Int(args[1])
		if b.IsZero() {
			return nil, fmt.Errorf("uint256.divmod: division by zero")
		}
		q := new(uint256.Int).Div(a, b)
		r := new(uint256.Int).Mod(a, b)
		return branch0(fromU256Int(q), fromU256Int(r), value.Unit)
	}
	return nil, &UnimplementedLibfuncError{Family: "uint256", Selector: info.Selector}
}
