package vm

import (
	"fmt"

	"github.com/feltvm/sierra-emu/internal/sierraemu/ir"
	"github.com/feltvm/sierra-emu/internal/sierraemu/value"
)

// evalEnum handles init (wrap a payload under a declared variant) and
// match (branch on the live variant index, emitting its payload).
func evalEnum(reg *ir.Registry, info *ir.LibfuncDescriptor, args []value.Value, _ *Context) (EvalAction, error) {
	switch info.Selector {
	case "init":
		if len(args) != 1 || len(info.TypeArgs) != 1 {
			return nil, fmt.Errorf("enum.init: expected one arg and one type arg (self_ty)")
		}
		variantIdx, ok := info.Data.(int)
		if !ok {
			return nil, fmt.Errorf("enum.init: libfunc data is not a variant index")
		}
		selfTy := info.TypeArgs[0]
		td, err := reg.TypeOf(selfTy)
		if err != nil {
			return nil, err
		}
		if variantIdx < 0 || variantIdx >= len(td.Variants) {
			return nil, fmt.Errorf("enum.init: variant index %d out of range", variantIdx)
		}
		ok2, err := value.IsOf(reg, args[0], td.Variants[variantIdx])
		if err != nil {
			return nil, err
		}
		if !ok2 {
			return nil, fmt.Errorf("enum.init: payload does not conform to variant %d's declared type", variantIdx)
		}
		return branch0(value.NewEnum(selfTy, variantIdx, args[0]))

	case "match":
		if len(args) != 1 {
			return nil, fmt.Errorf("enum.match: expected exactly one arg")
		}
		v := args[0]
		if v.Kind != value.KindEnum {
			return nil, fmt.Errorf("enum.match: argument is not an Enum value")
		}
		return NormalBranch{Branch: v.EnumIndex, Results: []value.Value{*v.EnumPayload}}, nil
	}
	return nil, &UnimplementedLibfuncError{Family: "enum", Selector: info.Selector}
}
