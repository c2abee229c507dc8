package vm

import (
	"fmt"

	"github.com/feltvm/sierra-emu/internal/sierraemu/ir"
	"github.com/feltvm/sierra-emu/internal/sierraemu/value"
)

// evalFeltDict handles get/new/entry/finalize/squash: the persistent
// felt-keyed dict and its transient-entry borrow discipline.
func evalFeltDict(reg *ir.Registry, info *ir.LibfuncDescriptor, args []value.Value, _ *Context) (EvalAction, error) {
	switch info.Selector {
	case "get":
		if len(args) != 2 || len(info.TypeArgs) != 1 {
			return nil, fmt.Errorf("felt252_dict.get: expected (dict, key) and one type arg")
		}
		d, k := args[0], args[1]
		if d.Kind != value.KindFeltDict {
			return nil, fmt.Errorf("felt252_dict.get: first arg is not a FeltDict value")
		}
		if k.Kind != value.KindFelt {
			return nil, fmt.Errorf("felt252_dict.get: key must be a Felt value")
		}
		if v, ok := d.Dict.Get(k.Felt); ok {
			return branch0(v)
		}
		def, err := value.DefaultForType(reg, info.TypeArgs[0])
		if err != nil {
			return nil, err
		}
		return branch0(def)

	case "new":
		if len(args) != 1 || len(info.TypeArgs) != 1 {
			return nil, fmt.Errorf("felt252_dict.new: expected (segment_arena) and one type arg")
		}
		dict := value.NewFeltDict(info.TypeArgs[0])
		return branch0(args[0], value.NewFeltDictValue(dict))

	case "entry":
		if len(args) != 2 {
			return nil, fmt.Errorf("felt252_dict.entry: expected (dict, key)")
		}
		d, k := args[0], args[1]
		if d.Kind != value.KindFeltDict {
			return nil, fmt.Errorf("felt252_dict.entry: first arg is not a FeltDict value")
		}
		if k.Kind != value.KindFelt {
			return nil, fmt.Errorf("felt252_dict.entry: key must be a Felt value")
		}
		return branch0(value.NewFeltDictEntry(d.Dict, k.Felt))

	case "finalize":
		if len(args) != 2 {
			return nil, fmt.Errorf("felt252_dict.finalize: expected (entry, new_value)")
		}
		entry, newVal := args[0], args[1]
		if entry.Kind != value.KindFeltDictEntry {
			return nil, fmt.Errorf("felt252_dict.finalize: first arg is not a FeltDictEntry value")
		}
		entry.EntryDict.Set(entry.EntryKey, newVal)
		return branch0(value.NewFeltDictValue(entry.EntryDict))

	case "squash":
		if len(args) != 1 {
			return nil, fmt.Errorf("felt252_dict.squash: expected exactly one arg")
		}
		if args[0].Kind != value.KindFeltDict {
			return nil, fmt.Errorf("felt252_dict.squash: argument is not a FeltDict value")
		}
		return branch0(args[0])
	}
	return nil, &UnimplementedLibfuncError{Family: "felt252_dict", Selector: info.Selector}
}
