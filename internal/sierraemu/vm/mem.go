package vm

import (
	"fmt"

	"github.com/feltvm/sierra-emu/internal/sierraemu/ir"
	"github.com/feltvm/sierra-emu/internal/sierraemu/value"
)

// evalMem handles store_temp/rename/store_local/alloc_local/finalize_locals:
// all identity-on-value operations whose contract is purely about
// conformance and, for store_local, the Uninitialized-slot precondition.
func evalMem(reg *ir.Registry, info *ir.LibfuncDescriptor, args []value.Value, _ *Context) (EvalAction, error) {
	switch info.Selector {
	case "store_temp", "rename":
		if len(args) != 1 || len(info.TypeArgs) != 1 {
			return nil, fmt.Errorf("mem.%s: expected exactly one arg and one type arg", info.Selector)
		}
		ok, err := value.IsOf(reg, args[0], info.TypeArgs[0])
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("mem.%s: value does not conform to declared type", info.Selector)
		}
		return branch0(args[0])

	case "store_local":
		if len(args) != 2 || len(info.TypeArgs) != 1 {
			return nil, fmt.Errorf("mem.store_local: expected (uninit_slot, value) and one type arg")
		}
		slot, val := args[0], args[1]
		if slot.Kind != value.KindUninitialized || slot.Uninit != info.TypeArgs[0] {
			return nil, fmt.Errorf("mem.store_local: first operand must be Uninitialized{%d}", info.TypeArgs[0])
		}
		ok, err := value.IsOf(reg, val, info.TypeArgs[0])
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("mem.store_local: value does not conform to declared type")
		}
		return branch0(val)

	case "alloc_local":
		if len(info.TypeArgs) != 1 {
			return nil, fmt.Errorf("mem.alloc_local: expected one type arg")
		}
		return branch0(value.NewUninitialized(info.TypeArgs[0]))

	case "finalize_locals":
		return branch0()
	}
	return nil, &UnimplementedLibfuncError{Family: "mem", Selector: info.Selector}
}
