package vm

import (
	"fmt"

	"github.com/feltvm/sierra-emu/internal/sierraemu/ir"
	"github.com/feltvm/sierra-emu/internal/sierraemu/value"
)

func asArray(v value.Value, who string) error {
	if v.Kind != value.KindArray {
		return fmt.Errorf("%s: argument is not an Array value", who)
	}
	return nil
}

func u32Of(v value.Value, who string) (uint64, error) {
	if v.Kind != value.KindU32 {
		return 0, fmt.Errorf("%s: expected a U32 index/length", who)
	}
	return v.Int, nil
}

// evalArray handles new/append/len/get/slice/pop_front and the snapshot
// pop_front/pop_back variants.
func evalArray(reg *ir.Registry, info *ir.LibfuncDescriptor, args []value.Value, _ *Context) (EvalAction, error) {
	switch info.Selector {
	case "new":
		if len(info.TypeArgs) != 1 {
			return nil, fmt.Errorf("array.new: expected one type arg")
		}
		return branch0(value.NewArray(info.TypeArgs[0], nil))

	case "append":
		if len(args) != 2 || len(info.TypeArgs) != 1 {
			return nil, fmt.Errorf("array.append: expected (array, item) and one type arg")
		}
		arr := args[0]
		if err := asArray(arr, "array.append"); err != nil {
			return nil, err
		}
		ok, err := value.IsOf(reg, args[1], info.TypeArgs[0])
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("array.append: item does not conform to declared element type")
		}
		next := append(append([]value.Value(nil), arr.Array...), args[1])
		return branch0(value.NewArray(arr.ArrayElemType, next))

	case "len":
		if len(args) != 1 {
			return nil, fmt.Errorf("array.len: expected exactly one arg")
		}
		if err := asArray(args[0], "array.len"); err != nil {
			return nil, err
		}
		return branch0(value.NewUint(32, uint64(len(args[0].Array))))

	case "get":
		if len(args) != 2 {
			return nil, fmt.Errorf("array.get: expected (array, index)")
		}
		return evalArrayGet(args[0], args[1])

	case "slice":
		if len(args) != 3 {
			return nil, fmt.Errorf("array.slice: expected (array, start, len)")
		}
		return evalArraySlice(args[0], args[1], args[2])

	case "pop_front", "snapshot_pop_front":
		if len(args) != 1 {
			return nil, fmt.Errorf("array.%s: expected exactly one arg", info.Selector)
		}
		return evalArrayPopFront(args[0])

	case "snapshot_pop_back":
		if len(args) != 1 {
			return nil, fmt.Errorf("array.snapshot_pop_back: expected exactly one arg")
		}
		return evalArrayPopBack(args[0])
	}
	return nil, &UnimplementedLibfuncError{Family: "array", Selector: info.Selector}
}

// evalArrayGet takes (array, index) and range-checks index against the
// array's length, threading a Unit range_check token on both branches.
func evalArrayGet(arr, idx value.Value) (EvalAction, error) {
	if err := asArray(arr, "array.get"); err != nil {
		return nil, err
	}
	i, err := u32Of(idx, "array.get")
	if err != nil {
		return nil, err
	}
	if i >= uint64(len(arr.Array)) {
		return branch1(value.Unit)
	}
	return branch0(value.Unit, arr.Array[i])
}

func evalArraySlice(arr, start, length value.Value) (EvalAction, error) {
	if err := asArray(arr, "array.slice"); err != nil {
		return nil, err
	}
	s, err := u32Of(start, "array.slice")
	if err != nil {
		return nil, err
	}
	n, err := u32Of(length, "array.slice")
	if err != nil {
		return nil, err
	}
	if s+n > uint64(len(arr.Array)) {
		return branch1(value.Unit)
	}
	sub := append([]value.Value(nil), arr.Array[s:s+n]...)
	return branch0(value.Unit, value.NewArray(arr.ArrayElemType, sub))
}

func evalArrayPopFront(arr value.Value) (EvalAction, error) {
	if err := asArray(arr, "array.pop_front"); err != nil {
		return nil, err
	}
	if len(arr.Array) == 0 {
		return branch1(arr)
	}
	remainder := value.NewArray(arr.ArrayElemType, append([]value.Value(nil), arr.Array[1:]...))
	return branch0(remainder, arr.Array[0])
}

func evalArrayPopBack(arr value.Value) (EvalAction, error) {
	if err := asArray(arr, "array.snapshot_pop_back"); err != nil {
		return nil, err
	}
	if len(arr.Array) == 0 {
		return branch1(arr)
	}
	last := len(arr.Array) - 1
	remainder := value.NewArray(arr.ArrayElemType, append([]value.Value(nil), arr.Array[:last]...))
	return branch0(remainder, arr.Array[last])
}
