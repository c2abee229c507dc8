package sierraemu

import (
	"github.com/feltvm/sierra-emu/internal/sierraemu/felt"
	"github.com/feltvm/sierra-emu/internal/sierraemu/ir"
	"github.com/feltvm/sierra-emu/internal/sierraemu/value"
)

// builtinResourceKinds are the types the engine represents uniformly as the
// single Unit sentinel.
var builtinResourceKinds = map[ir.TypeKind]bool{
	ir.TypeRangeCheck:   true,
	ir.TypeSegmentArena: true,
	ir.TypeBitwise:      true,
	ir.TypePedersen:     true,
	ir.TypePoseidon:     true,
	ir.TypeEcOp:         true,
	ir.TypeAddMod:       true,
	ir.TypeMulMod:       true,
	ir.TypeBuiltinCosts: true,
	ir.TypeSystem:       true,
}

// BuildEntryArgs constructs the argument vector for entry, following the
// driver convention: a builtin-resource parameter receives Unit, the gas
// builtin receives U128(providedGas), a bare Felt252 parameter consumes one
// literal off calldata, and a struct-of-snapshot-of-array-of-felt parameter
// (the calldata convention) consumes every literal remaining on calldata.
//
// calldata is consumed left to right; BuildEntryArgs fails if a Felt252 or
// calldata-shaped parameter is declared but calldata runs out, or if any
// literal is left over once every parameter has been bound.
func BuildEntryArgs(reg *ir.Registry, entry *ir.Function, calldata []felt.Element, providedGas uint64) ([]value.Value, error) {
	args := make([]value.Value, 0, len(entry.Params))
	cursor := 0

	for _, p := range entry.Params {
		t, err := reg.TypeOf(p.Type)
		if err != nil {
			return nil, wrapf(ErrInvalidInput, err, "resolving type of parameter %d", p.Var)
		}

		switch {
		case builtinResourceKinds[t.Kind]:
			args = append(args, value.Unit)

		case t.Kind == ir.TypeGasBuiltin:
			args = append(args, value.NewUint(128, providedGas))

		case t.Kind == ir.TypeFelt:
			if cursor >= len(calldata) {
				return nil, wrapf(ErrInvalidInput, nil, "parameter %d: calldata exhausted", p.Var)
			}
			args = append(args, value.NewFelt(calldata[cursor]))
			cursor++

		case isCalldataArray(reg, t):
			rest := make([]value.Value, len(calldata)-cursor)
			for i, f := range calldata[cursor:] {
				rest[i] = value.NewFelt(f)
			}
			cursor = len(calldata)
			inner, _ := reg.TypeOf(t.Inner)
			arr, _ := reg.TypeOf(inner.Members[0])
			args = append(args, value.NewArray(arr.Elem, rest))

		default:
			return nil, wrapf(ErrInvalidInput, nil, "parameter %d: unsupported entry-point type kind %v", p.Var, t.Kind)
		}
	}

	if cursor != len(calldata) {
		return nil, wrapf(ErrInvalidInput, nil, "calldata has %d unconsumed literals", len(calldata)-cursor)
	}
	return args, nil
}

// isCalldataArray reports whether t is a Snapshot of a one-member Struct
// whose sole member is an Array of Felt — the calldata convention.
func isCalldataArray(reg *ir.Registry, t *ir.TypeDescriptor) bool {
	if t.Kind != ir.TypeSnapshot {
		return false
	}
	inner, err := reg.TypeOf(t.Inner)
	if err != nil || inner.Kind != ir.TypeStruct || len(inner.Members) != 1 {
		return false
	}
	arr, err := reg.TypeOf(inner.Members[0])
	if err != nil || arr.Kind != ir.TypeArray {
		return false
	}
	elem, err := reg.TypeOf(arr.Elem)
	return err == nil && elem.Kind == ir.TypeFelt
}
