package vm

import (
	"fmt"
	"math/big"

	"github.com/feltvm/sierra-emu/internal/sierraemu/felt"
	"github.com/feltvm/sierra-emu/internal/sierraemu/ir"
	"github.com/feltvm/sierra-emu/internal/sierraemu/value"
)

// ConstDescriptor is the nested (type, inner_data) shape a const libfunc's
// Data field carries: a literal for numeric types, or nested descriptors
// for Struct/NonZero composition.
type ConstDescriptor struct {
	Type    ir.TypeID
	Literal *big.Int
	Fields  []ConstDescriptor
}

// evalConst recursively decodes a ConstDescriptor into a Value.
func evalConst(reg *ir.Registry, info *ir.LibfuncDescriptor, _ []value.Value, _ *Context) (EvalAction, error) {
	desc, ok := info.Data.(ConstDescriptor)
	if !ok {
		return nil, fmt.Errorf("const: libfunc data is not a ConstDescriptor")
	}
	v, err := decodeConst(reg, desc)
	if err != nil {
		return nil, err
	}
	return branch0(v)
}

func decodeConst(reg *ir.Registry, desc ConstDescriptor) (value.Value, error) {
	td, err := reg.TypeOf(desc.Type)
	if err != nil {
		return value.Value{}, err
	}
	switch td.Kind {
	case ir.TypeFelt:
		return value.NewFelt(felt.FromBigInt(desc.Literal)), nil
	case ir.TypeBytes31:
		return value.NewBytes31(felt.FromBigInt(desc.Literal)), nil
	case ir.TypeU8:
		return value.NewUint(8, desc.Literal.Uint64()), nil
	case ir.TypeU16:
		return value.NewUint(16, desc.Literal.Uint64()), nil
	case ir.TypeU32:
		return value.NewUint(32, desc.Literal.Uint64()), nil
	case ir.TypeU64:
		return value.NewUint(64, desc.Literal.Uint64()), nil
	case ir.TypeU128:
		return value.NewUint128Big(desc.Literal), nil
	case ir.TypeI8:
		return value.NewSint(8, desc.Literal.Int64()), nil
	case ir.TypeI16:
		return value.NewSint(16, desc.Literal.Int64()), nil
	case ir.TypeI32:
		return value.NewSint(32, desc.Literal.Int64()), nil
	case ir.TypeI64:
		return value.NewSint(64, desc.Literal.Int64()), nil
	case ir.TypeI128:
		return value.NewSint128Big(desc.Literal), nil
	case ir.TypeBoundedInt:
		if desc.Literal.Cmp(big.NewInt(td.Range.Lo)) < 0 || desc.Literal.Cmp(big.NewInt(td.Range.Hi)) >= 0 {
			return value.Value{}, fmt.Errorf("const: literal %s out of declared range [%d, %d)", desc.Literal, td.Range.Lo, td.Range.Hi)
		}
		return value.NewBoundedInt(td.Range, desc.Literal), nil
	case ir.TypeStruct:
		members := make([]value.Value, len(desc.Fields))
		for i, f := range desc.Fields {
			m, err := decodeConst(reg, f)
			if err != nil {
				return value.Value{}, err
			}
			members[i] = m
		}
		return value.NewStruct(desc.Type, members), nil
	case ir.TypeNonZero:
		inner := ConstDescriptor{Type: td.Inner, Literal: desc.Literal, Fields: desc.Fields}
		return decodeConst(reg, inner)
	}
	return value.Value{}, fmt.Errorf("const: unsupported const type kind %v", td.Kind)
}
