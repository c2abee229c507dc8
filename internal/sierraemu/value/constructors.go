package value

import (
	"math/big"

	"github.com/feltvm/sierra-emu/internal/sierraemu/felt"
	"github.com/feltvm/sierra-emu/internal/sierraemu/ir"
)

// Unit is the single opaque token shared by every builtin-resource value
// and by the sentinel returned where the IR declares no result.
var Unit = Value{Kind: KindUnit}

// NewFelt wraps a field element.
func NewFelt(f felt.Element) Value { return Value{Kind: KindFelt, Felt: f} }

// NewBytes31 wraps a 248-bit short byte string, represented as a felt.
func NewBytes31(f felt.Element) Value { return Value{Kind: KindBytes31, Felt: f} }

var widthKinds = map[int]Kind{8: KindU8, 16: KindU16, 32: KindU32, 64: KindU64}

// NewUint builds an unsigned fixed-width integer value. width must be one
// of 8, 16, 32, 64, 128.
func NewUint(width int, v uint64) Value {
	if width == 128 {
		return Value{Kind: KindU128, Big: new(big.Int).SetUint64(v)}
	}
	k, ok := widthKinds[width]
	if !ok {
		panic("value: unsupported unsigned width")
	}
	return Value{Kind: k, Int: v}
}

// NewUint128Big builds a U128 from an arbitrary-precision magnitude.
func NewUint128Big(v *big.Int) Value {
	return Value{Kind: KindU128, Big: new(big.Int).Set(v)}
}

var sintKinds = map[int]Kind{8: KindI8, 16: KindI16, 32: KindI32, 64: KindI64}

// NewSint builds a signed fixed-width integer value. width must be one of
// 8, 16, 32, 64, 128.
func NewSint(width int, v int64) Value {
	if width == 128 {
		return Value{Kind: KindI128, Big: big.NewInt(v)}
	}
	k, ok := sintKinds[width]
	if !ok {
		panic("value: unsupported signed width")
	}
	return Value{Kind: k, Sig: v}
}

// NewSint128Big builds an I128 from an arbitrary-precision signed value.
func NewSint128Big(v *big.Int) Value {
	return Value{Kind: KindI128, Big: new(big.Int).Set(v)}
}

// NewBoundedInt builds a range-refined integer value.
func NewBoundedInt(rng ir.IntRange, v *big.Int) Value {
	return Value{Kind: KindBoundedInt, BoundedRange: rng, Big: new(big.Int).Set(v)}
}

// NewStruct builds a product value over its ordered members.
func NewStruct(typeID ir.TypeID, members []Value) Value {
	return Value{Kind: KindStruct, StructType: typeID, Fields: members}
}

// NewEnum builds a sum value selecting one variant.
func NewEnum(typeID ir.TypeID, index int, payload Value) Value {
	p := payload
	return Value{Kind: KindEnum, EnumType: typeID, EnumIndex: index, EnumPayload: &p}
}

// NewArray builds a dynamic array of a declared element type.
func NewArray(elemType ir.TypeID, data []Value) Value {
	return Value{Kind: KindArray, ArrayElemType: elemType, Array: data}
}

// NewFeltDictValue wraps a persistent dict.
func NewFeltDictValue(d *FeltDict) Value {
	return Value{Kind: KindFeltDict, DictValueType: d.ValueType, Dict: d}
}

// NewFeltDictEntry builds a transient borrow into a dict for the given key.
func NewFeltDictEntry(d *FeltDict, key felt.Element) Value {
	return Value{Kind: KindFeltDictEntry, DictValueType: d.ValueType, EntryDict: d, EntryKey: key}
}

// NewUninitialized builds a placeholder for a freshly allocated local slot.
func NewUninitialized(t ir.TypeID) Value {
	return Value{Kind: KindUninitialized, Uninit: t}
}

// NewEcPoint builds an affine elliptic-curve point.
func NewEcPoint(x, y felt.Element) Value {
	return Value{Kind: KindEcPoint, X: x, Y: y}
}

// NewEcState builds a partial EC accumulator.
func NewEcState(x, y, dx, dy felt.Element) Value {
	return Value{Kind: KindEcState, X: x, Y: y, DX: dx, DY: dy}
}

// NewU256 builds a 256-bit integer from two u128 limbs.
func NewU256(lo, hi *big.Int) Value {
	return Value{Kind: KindU256, Lo: new(big.Int).Set(lo), Hi: new(big.Int).Set(hi)}
}

// NewCircuitValue wraps an in-progress circuit staging buffer.
func NewCircuitValue(c *CircuitValue) Value {
	return Value{Kind: KindCircuit, Circuit: c}
}

// NewCircuitModulus builds the 384-bit modulus value.
func NewCircuitModulus(m *big.Int) Value {
	return Value{Kind: KindCircuitModulus, Big: new(big.Int).Set(m)}
}

// NewCircuitOutputs wraps a finished circuit's gate-output table.
func NewCircuitOutputs(outputs map[ir.TypeID]*big.Int) Value {
	return Value{Kind: KindCircuitOutputs, Circuit: &CircuitValue{Outputs: outputs}}
}
