package vm

import (
	"fmt"
	"math/big"

	"github.com/feltvm/sierra-emu/internal/sierraemu/felt"
	"github.com/feltvm/sierra-emu/internal/sierraemu/ir"
	"github.com/feltvm/sierra-emu/internal/sierraemu/value"
)

// Curve parameters of the target platform's elliptic curve, y^2 = x^3 +
// alpha*x + beta over the felt field.
var (
	ecAlpha = felt.One
	ecBeta  = felt.FromBigInt(mustBigFromDecimal("3141592653589793238462643383279502884197169399375105820974944592307816406665"))
)

func mustBigFromDecimal(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("vm: invalid curve constant")
	}
	return v
}

// evalEc handles is_zero, try_new, point_from_x, and state_add.
func evalEc(_ *ir.Registry, info *ir.LibfuncDescriptor, args []value.Value, _ *Context) (EvalAction, error) {
	switch info.Selector {
	case "is_zero":
		if len(args) != 1 || args[0].Kind != value.KindEcPoint {
			return nil, fmt.Errorf("ec.is_zero: expected one EcPoint arg")
		}
		p := args[0]
		if p.X.IsZero() && p.Y.IsZero() {
			return branch0()
		}
		return branch1(p)

	case "try_new":
		if len(args) != 2 || args[0].Kind != value.KindFelt || args[1].Kind != value.KindFelt {
			return nil, fmt.Errorf("ec.try_new: expected (x, y) Felt args")
		}
		x, y := args[0].Felt, args[1].Felt
		if onCurve(x, y) {
			return branch0(value.NewEcPoint(x, y))
		}
		return branch1()

	case "point_from_x":
		if len(args) != 1 || args[0].Kind != value.KindFelt {
			return nil, fmt.Errorf("ec.point_from_x: expected one Felt arg")
		}
		x := args[0].Felt
		rhs := x.Mul(x).Mul(x).Add(ecAlpha.Mul(x)).Add(ecBeta)
		if y, ok := rhs.Sqrt(); ok {
			return branch0(value.NewEcPoint(x, y))
		}
		// Structural sentinel only (spec.md §14 item 2): not a valid point,
		// never observed as curve-valid by program logic.
		sentinel := rhs.Add(rhs).Add(rhs)
		return branch1(value.NewEcPoint(x, sentinel))

	case "state_add":
		if len(args) != 2 || args[0].Kind != value.KindEcState || args[1].Kind != value.KindEcPoint {
			return nil, fmt.Errorf("ec.state_add: expected (EcState, EcPoint)")
		}
		st, p := args[0], args[1]
		nx, ny := addAffine(st.X, st.Y, p.X, p.Y)
		return branch0(value.NewEcState(nx, ny, st.DX, st.DY))
	}
	return nil, &UnimplementedLibfuncError{Family: "ec", Selector: info.Selector}
}

func onCurve(x, y felt.Element) bool {
	lhs := y.Square()
	rhs := x.Mul(x).Mul(x).Add(ecAlpha.Mul(x)).Add(ecBeta)
	return lhs.Equal(rhs)
}

// addAffine performs ordinary short-Weierstrass point addition, treating
// (0,0) as the point at infinity.
func addAffine(x1, y1, x2, y2 felt.Element) (felt.Element, felt.Element) {
	if x1.IsZero() && y1.IsZero() {
		return x2, y2
	}
	if x2.IsZero() && y2.IsZero() {
		return x1, y1
	}
	var lambda felt.Element
	if x1.Equal(x2) {
		if y1.Equal(y2) && !y1.IsZero() {
			num := x1.Square().Add(x1.Square()).Add(x1.Square()).Add(ecAlpha)
			den := y1.Add(y1)
			inv, err := den.Inv()
			if err != nil {
				return felt.Zero, felt.Zero
			}
			lambda = num.Mul(inv)
		} else {
			return felt.Zero, felt.Zero
		}
	} else {
		num := y2.Sub(y1)
		den := x2.Sub(x1)
		inv, err := den.Inv()
		if err != nil {
			return felt.Zero, felt.Zero
		}
		lambda = num.Mul(inv)
	}
	x3 := lambda.Square().Sub(x1).Sub(x2)
	y3 := lambda.Mul(x1.Sub(x3)).Sub(y1)
	return x3, y3
}
