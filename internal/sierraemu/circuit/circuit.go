// Package circuit implements the arithmetic-circuit subsystem: a staging
// buffer for four-limb 384-bit inputs, modulus packing, and the mixed
// add/mul gate evaluator with subtraction/inverse back-solving.
//
// This is the one subsystem where the upstream Rust evaluator itself is an
// unimplemented stub, so the algorithm here is built directly from the
// specification's description rather than grounded on an existing
// implementation, following this module's own pattern of writing the
// nontrivial algorithm out by hand (as its circle-FFT and barycentric
// polynomial code once did) instead of reaching for a generic solver.
package circuit

import (
	"fmt"
	"math/big"
)

// LimbBits is the width of one packed modulus limb.
const LimbBits = 96

// PackLimbs combines four little-endian 96-bit limbs into one 384-bit
// unsigned integer.
func PackLimbs(limbs [4]*big.Int) *big.Int {
	out := new(big.Int)
	for i := 3; i >= 0; i-- {
		out.Lsh(out, LimbBits)
		out.Or(out, limbs[i])
	}
	return out
}

// Modulus validates and returns a circuit modulus from its four limbs. The
// modulus must be neither 0 nor 1.
func Modulus(limbs [4]*big.Int) (*big.Int, error) {
	m := PackLimbs(limbs)
	if m.Sign() == 0 || m.Cmp(big.NewInt(1)) == 0 {
		return nil, fmt.Errorf("circuit: modulus must be neither 0 nor 1")
	}
	return m, nil
}

// InputBuffer accumulates declared circuit inputs until it reaches its
// declared capacity.
type InputBuffer struct {
	capacity int
	inputs   []*big.Int
}

// NewInputBuffer returns a staging buffer sized to the declared input count.
func NewInputBuffer(capacity int) *InputBuffer {
	return &InputBuffer{capacity: capacity}
}

// AddInput appends one four-limb input packed little-endian to a 384-bit
// integer. It reports full=true once the buffer reaches capacity (branch 1
// in the libfunc contract), full=false while more inputs are expected
// (branch 0).
func (b *InputBuffer) AddInput(limbs [4]*big.Int) (full bool, err error) {
	if len(b.inputs) >= b.capacity {
		return false, fmt.Errorf("circuit: input buffer already full")
	}
	b.inputs = append(b.inputs, PackLimbs(limbs))
	return len(b.inputs) == b.capacity, nil
}

// Inputs returns the accumulated inputs in declaration order.
func (b *InputBuffer) Inputs() []*big.Int {
	return append([]*big.Int(nil), b.inputs...)
}

// Gate is one (lhs, rhs, output) triple indexing into a shared value table.
type Gate struct {
	Lhs, Rhs, Output int
}

// Descriptor lists a circuit's gates in declaration order.
type Descriptor struct {
	AddOffsets []Gate
	MulOffsets []Gate
}

// ErrDivideByZero is returned (as a value, not a panic) when a mul-gate
// inverse pattern hits a non-invertible rhs; the caller surfaces this via
// the libfunc's failure branch rather than a Go error.
var ErrDivideByZero = fmt.Errorf("circuit: inverse does not exist")

// Eval runs the mixed add/mul interleaved evaluator over descriptor against
// the supplied modulus and inputs, returning the fully populated value
// table. ok is false iff an inverse gate could not be solved (division by
// zero), matching the failing-branch-1 contract of the spec.
func Eval(desc Descriptor, modulus *big.Int, inputs []*big.Int) (values []*big.Int, ok bool, err error) {
	// Size the value table to cover every slot any gate references.
	size := len(inputs)
	for _, g := range append(append([]Gate(nil), desc.AddOffsets...), desc.MulOffsets...) {
		for _, slot := range []int{g.Lhs, g.Rhs, g.Output} {
			if slot+1 > size {
				size = slot + 1
			}
		}
	}
	values = make([]*big.Int, size)
	resolved := make([]bool, size)
	for i, v := range inputs {
		values[i] = new(big.Int).Set(v)
		resolved[i] = true
	}

	addQueue := append([]Gate(nil), desc.AddOffsets...)
	mulQueue := append([]Gate(nil), desc.MulOffsets...)
	ok = true

	progress := true
	for progress && (len(addQueue) > 0 || len(mulQueue) > 0) {
		progress = false

		var nextAdd []Gate
		for _, g := range addQueue {
			if done := tryAddGate(g, values, resolved, modulus); done {
				progress = true
				continue
			}
			nextAdd = append(nextAdd, g)
		}
		addQueue = nextAdd

		var nextMul []Gate
		for _, g := range mulQueue {
			done, gateOK := tryMulGate(g, values, resolved, modulus)
			if !gateOK {
				ok = false
				values[g.Lhs] = big.NewInt(0)
				resolved[g.Lhs] = true
				if !resolved[g.Output] {
					values[g.Output] = big.NewInt(0)
					resolved[g.Output] = true
				}
				progress = true
				continue
			}
			if done {
				progress = true
				continue
			}
			nextMul = append(nextMul, g)
		}
		mulQueue = nextMul
	}

	if len(addQueue) > 0 || len(mulQueue) > 0 {
		return values, ok, fmt.Errorf("circuit: gate graph did not fully resolve (stalled with %d add, %d mul gates remaining)", len(addQueue), len(mulQueue))
	}
	return values, ok, nil
}

// tryAddGate attempts to resolve one add gate, handling both the normal
// (lhs+rhs=output) pattern and the subtraction-inverse pattern the IR uses
// to encode x = y - z as y = x + z (solve for lhs given rhs and output).
func tryAddGate(g Gate, values []*big.Int, resolved []bool, m *big.Int) bool {
	lhsR, rhsR, outR := resolved[g.Lhs], resolved[g.Rhs], resolved[g.Output]
	switch {
	case lhsR && rhsR && !outR:
		values[g.Output] = new(big.Int).Mod(new(big.Int).Add(values[g.Lhs], values[g.Rhs]), m)
		resolved[g.Output] = true
		return true
	case outR && rhsR && !lhsR:
		diff := new(big.Int).Sub(values[g.Output], values[g.Rhs])
		diff.Add(diff, m)
		diff.Mod(diff, m)
		values[g.Lhs] = diff
		resolved[g.Lhs] = true
		return true
	case lhsR && outR && !rhsR:
		diff := new(big.Int).Sub(values[g.Output], values[g.Lhs])
		diff.Add(diff, m)
		diff.Mod(diff, m)
		values[g.Rhs] = diff
		resolved[g.Rhs] = true
		return true
	case lhsR && rhsR && outR:
		return true
	default:
		return false
	}
}

// tryMulGate attempts to resolve one mul gate, handling the normal
// (lhs*rhs=output) pattern and the inverse pattern (only rhs known: solve
// lhs = rhs^-1). gateOK is false iff an inverse was attempted against a
// non-invertible rhs (gcd(rhs, m) != 1), in which case lhs (and output, if
// still unresolved) is forced to zero by the caller and the overall circuit
// fails.
func tryMulGate(g Gate, values []*big.Int, resolved []bool, m *big.Int) (done, gateOK bool) {
	lhsR, rhsR, outR := resolved[g.Lhs], resolved[g.Rhs], resolved[g.Output]
	switch {
	case lhsR && rhsR && !outR:
		values[g.Output] = new(big.Int).Mod(new(big.Int).Mul(values[g.Lhs], values[g.Rhs]), m)
		resolved[g.Output] = true
		return true, true
	case rhsR && !lhsR:
		inv := new(big.Int).ModInverse(values[g.Rhs], m)
		if inv == nil {
			return true, false
		}
		values[g.Lhs] = inv
		resolved[g.Lhs] = true
		if !outR {
			values[g.Output] = big.NewInt(1)
			resolved[g.Output] = true
		}
		return true, true
	case lhsR && rhsR && outR:
		return true, true
	default:
		return false, true
	}
}

// GetOutput consults the resolved value table for the slot assigned to an
// output type, returning its 384-bit limb value as U384.
func GetOutput(values []*big.Int, slot int) (*big.Int, error) {
	if slot < 0 || slot >= len(values) || values[slot] == nil {
		return nil, fmt.Errorf("circuit: output slot %d not resolved", slot)
	}
	return new(big.Int).Set(values[slot]), nil
}
