package vm

import (
	"fmt"

	"github.com/feltvm/sierra-emu/internal/sierraemu/ir"
	"github.com/feltvm/sierra-emu/internal/sierraemu/value"
)

// evalStruct handles construct (build a Struct from type-checked members)
// and deconstruct/snapshot_deconstruct (unpack into members).
func evalStruct(reg *ir.Registry, info *ir.LibfuncDescriptor, args []value.Value, _ *Context) (EvalAction, error) {
	switch info.Selector {
	case "construct":
		if len(info.TypeArgs) != 1 {
			return nil, fmt.Errorf("struct.construct: expected one type arg (self_ty)")
		}
		selfTy := info.TypeArgs[0]
		td, err := reg.TypeOf(selfTy)
		if err != nil {
			return nil, err
		}
		if len(args) != len(td.Members) {
			return nil, fmt.Errorf("struct.construct: expected %d members, got %d", len(td.Members), len(args))
		}
		for i, mt := range td.Members {
			ok, err := value.IsOf(reg, args[i], mt)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, fmt.Errorf("struct.construct: member %d does not conform to declared type", i)
			}
		}
		return branch0(value.NewStruct(selfTy, args))

	case "deconstruct", "snapshot_deconstruct":
		if len(args) != 1 {
			return nil, fmt.Errorf("struct.%s: expected exactly one arg", info.Selector)
		}
		if args[0].Kind != value.KindStruct {
			return nil, fmt.Errorf("struct.%s: argument is not a Struct value", info.Selector)
		}
		return branch0(args[0].Fields...)
	}
	return nil, &UnimplementedLibfuncError{Family: "struct", Selector: info.Selector}
}
