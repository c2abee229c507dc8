package value

import (
	"math/big"

	"github.com/feltvm/sierra-emu/internal/sierraemu/ir"
)

// Conformer resolves TypeIDs to descriptors, satisfied by *ir.Registry.
type Conformer interface {
	TypeOf(id ir.TypeID) (*ir.TypeDescriptor, error)
}

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
	ir.TypeGasBuiltin:   true,
	ir.TypeUnit:         true,
}

var addressFamilyKinds = map[ir.TypeKind]bool{
	ir.TypeClassHash:          true,
	ir.TypeContractAddress:    true,
	ir.TypeStorageBaseAddress: true,
	ir.TypeStorageAddress:     true,
}

// IsOf is the total structural conformance predicate is_of(v, t).
func IsOf(reg Conformer, v Value, t ir.TypeID) (bool, error) {
	td, err := reg.TypeOf(t)
	if err != nil {
		return false, err
	}
	switch td.Kind {
	case ir.TypeNonZero, ir.TypeSnapshot, ir.TypeBox, ir.TypeNullable:
		return IsOf(reg, v, td.Inner)
	case ir.TypeFelt:
		return v.Kind == KindFelt, nil
	case ir.TypeBytes31:
		return v.Kind == KindBytes31, nil
	case ir.TypeU8:
		return v.Kind == KindU8, nil
	case ir.TypeU16:
		return v.Kind == KindU16, nil
	case ir.TypeU32:
		return v.Kind == KindU32, nil
	case ir.TypeU64:
		return v.Kind == KindU64, nil
	case ir.TypeU128, ir.TypeU96Guarantee:
		return v.Kind == KindU128, nil
	case ir.TypeI8:
		return v.Kind == KindI8, nil
	case ir.TypeI16:
		return v.Kind == KindI16, nil
	case ir.TypeI32:
		return v.Kind == KindI32, nil
	case ir.TypeI64:
		return v.Kind == KindI64, nil
	case ir.TypeI128:
		return v.Kind == KindI128, nil
	case ir.TypeBoundedInt:
		if v.Kind != KindBoundedInt {
			return false, nil
		}
		return v.BoundedRange == td.Range, nil
	case ir.TypeStruct:
		if v.Kind != KindStruct || len(v.Fields) != len(td.Members) {
			return false, nil
		}
		for i, mt := range td.Members {
			ok, err := IsOf(reg, v.Fields[i], mt)
			if err != nil || !ok {
				return ok, err
			}
		}
		return true, nil
	case ir.TypeEnum:
		if v.Kind != KindEnum {
			return false, nil
		}
		if v.EnumIndex < 0 || v.EnumIndex >= len(td.Variants) {
			return false, nil
		}
		return IsOf(reg, *v.EnumPayload, td.Variants[v.EnumIndex])
	case ir.TypeArray:
		if v.Kind != KindArray {
			return false, nil
		}
		for _, elem := range v.Array {
			ok, err := IsOf(reg, elem, td.Elem)
			if err != nil || !ok {
				return ok, err
			}
		}
		return true, nil
	case ir.TypeFeltDict:
		return v.Kind == KindFeltDict, nil
	case ir.TypeFeltDictEntry:
		return v.Kind == KindFeltDictEntry, nil
	case ir.TypeEcPoint:
		return v.Kind == KindEcPoint, nil
	case ir.TypeEcState:
		return v.Kind == KindEcState, nil
	case ir.TypeU256:
		return v.Kind == KindU256, nil
	case ir.TypeCircuit:
		return v.Kind == KindCircuit, nil
	case ir.TypeCircuitModulus:
		return v.Kind == KindCircuitModulus, nil
	case ir.TypeCircuitOutputs:
		return v.Kind == KindCircuitOutputs, nil
	}
	if builtinResourceKinds[td.Kind] {
		return v.Kind == KindUnit, nil
	}
	if addressFamilyKinds[td.Kind] {
		return v.Kind == KindFelt, nil
	}
	return false, errf("unimplemented type kind %v in is_of", td.Kind)
}

// DefaultForType returns the zero Value for fixed-width integers and Felt;
// any other type is fatal, per spec.
func DefaultForType(reg Conformer, t ir.TypeID) (Value, error) {
	td, err := reg.TypeOf(t)
	if err != nil {
		return Value{}, err
	}
	switch td.Kind {
	case ir.TypeFelt, ir.TypeBytes31:
		return Value{Kind: kindFor(td.Kind)}, nil
	case ir.TypeU8:
		return NewUint(8, 0), nil
	case ir.TypeU16:
		return NewUint(16, 0), nil
	case ir.TypeU32:
		return NewUint(32, 0), nil
	case ir.TypeU64:
		return NewUint(64, 0), nil
	case ir.TypeU128:
		return NewUint128Big(big.NewInt(0)), nil
	case ir.TypeI8:
		return NewSint(8, 0), nil
	case ir.TypeI16:
		return NewSint(16, 0), nil
	case ir.TypeI32:
		return NewSint(32, 0), nil
	case ir.TypeI64:
		return NewSint(64, 0), nil
	case ir.TypeI128:
		return NewSint128Big(big.NewInt(0)), nil
	}
	return Value{}, errf("no default value for type kind %v", td.Kind)
}

func kindFor(tk ir.TypeKind) Kind {
	if tk == ir.TypeBytes31 {
		return KindBytes31
	}
	return KindFelt
}
