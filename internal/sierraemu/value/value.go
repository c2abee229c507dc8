// Package value implements the tagged-union runtime Value and its
// conformance checker against the IR's static type system.
//
// Value is a flat struct with a Kind discriminant and payload fields,
// mirroring this module's long-standing preference for explicit structs
// over interface-heavy polymorphism (the encoded-instruction and
// field-element shapes it always shipped with) rather than one interface
// type per variant.
package value

import (
	"fmt"
	"math/big"

	"github.com/feltvm/sierra-emu/internal/sierraemu/felt"
	"github.com/feltvm/sierra-emu/internal/sierraemu/ir"
)

// Kind discriminates which payload fields of a Value are meaningful.
type Kind int

const (
	KindFelt Kind = iota
	KindBytes31
	KindU8
	KindU16
	KindU32
	KindU64
	KindU128
	KindI8
	KindI16
	KindI32
	KindI64
	KindI128
	KindBoundedInt
	KindStruct
	KindEnum
	KindArray
	KindFeltDict
	KindFeltDictEntry
	KindUninitialized
	KindEcPoint
	KindEcState
	KindU256
	KindCircuit
	KindCircuitModulus
	KindCircuitOutputs
	KindUnit
)

// Value is the tagged-union runtime representation of every IR value.
type Value struct {
	Kind Kind

	Felt felt.Element // KindFelt, KindBytes31

	Int uint64 // KindU8..KindU128 magnitude (U128 uses Big when non-nil)
	Sig int64  // KindI8..KindI64

	// Big holds arbitrary-precision magnitude for U128, I128, and
	// BoundedInt; for BoundedInt it may be negative.
	Big *big.Int

	// BoundedRange is populated for KindBoundedInt.
	BoundedRange ir.IntRange

	// StructType/EnumType is the declared TypeID for Struct/Enum values.
	StructType ir.TypeID
	Fields     []Value // KindStruct members, KindEcState four felts via Fields[0..3] unused (see EcState)

	EnumType    ir.TypeID
	EnumIndex   int
	EnumPayload *Value

	ArrayElemType ir.TypeID
	Array         []Value

	DictValueType ir.TypeID
	Dict          *FeltDict

	// DictEntry fields, valid when Kind == KindFeltDictEntry.
	EntryDict *FeltDict
	EntryKey  felt.Element

	Uninit ir.TypeID

	// EcPoint / EcState: X, Y are the two felts of an affine point;
	// EcState additionally carries DX, DY (the partial-sum accumulator).
	X, Y, DX, DY felt.Element

	// U256: Lo, Hi are the two u128 limbs, stored as Big.
	Lo, Hi *big.Int

	Circuit *CircuitValue
}

// FeltDict is a persistent felt-keyed mapping with insertion-ordered keys,
// mirroring the ordered-frame-state discipline the trace format depends on.
type FeltDict struct {
	ValueType ir.TypeID
	keys      []felt.Element
	data      map[string]Value
}

// NewFeltDict creates an empty dict for values of the given declared type.
func NewFeltDict(valueType ir.TypeID) *FeltDict {
	return &FeltDict{ValueType: valueType, data: make(map[string]Value)}
}

// Get returns the value bound to k, or ok=false if absent.
func (d *FeltDict) Get(k felt.Element) (Value, bool) {
	v, ok := d.data[k.String()]
	return v, ok
}

// Set binds k to v, recording k in insertion order on first use.
func (d *FeltDict) Set(k felt.Element, v Value) {
	key := k.String()
	if _, exists := d.data[key]; !exists {
		d.keys = append(d.keys, k)
	}
	d.data[key] = v
}

// Keys returns the dict's keys in insertion order.
func (d *FeltDict) Keys() []felt.Element {
	return append([]felt.Element(nil), d.keys...)
}

// Clone deep-copies the dict (used by dup on a dict-typed value, which is
// rare since dicts are normally threaded linearly, but must still conform
// to the deep-clone-on-dup rule).
func (d *FeltDict) Clone() *FeltDict {
	c := NewFeltDict(d.ValueType)
	c.keys = append([]felt.Element(nil), d.keys...)
	c.data = make(map[string]Value, len(d.data))
	for k, v := range d.data {
		c.data[k] = v
	}
	return c
}

// CircuitValue is the staging representation of an in-progress circuit
// described in detail by the circuit package; it is opaque here.
type CircuitValue struct {
	InputCount int
	Inputs     []*big.Int
	Modulus    *big.Int
	Outputs    map[ir.TypeID]*big.Int
}

func errf(format string, args ...any) error {
	return fmt.Errorf("value: "+format, args...)
}
