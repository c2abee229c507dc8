package vm

import (
	"fmt"

	"github.com/feltvm/sierra-emu/internal/sierraemu/ir"
	"github.com/feltvm/sierra-emu/internal/sierraemu/value"
)

// evalDrop consumes one value and emits none.
func evalDrop(_ *ir.Registry, _ *ir.LibfuncDescriptor, args []value.Value, _ *Context) (EvalAction, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("drop: expected exactly one arg")
	}
	return branch0()
}

// evalDup consumes one value and emits it twice, deep-cloning any payload
// the value owns so the two copies share no mutable state.
func evalDup(_ *ir.Registry, _ *ir.LibfuncDescriptor, args []value.Value, _ *Context) (EvalAction, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("dup: expected exactly one arg")
	}
	return branch0(args[0], deepClone(args[0]))
}

// deepClone duplicates any owned payload (array contents, struct members,
// dict entries) so the original and the copy can evolve independently.
func deepClone(v value.Value) value.Value {
	c := v
	if len(v.Fields) > 0 {
		c.Fields = make([]value.Value, len(v.Fields))
		for i, f := range v.Fields {
			c.Fields[i] = deepClone(f)
		}
	}
	if v.EnumPayload != nil {
		p := deepClone(*v.EnumPayload)
		c.EnumPayload = &p
	}
	if v.Array != nil {
		c.Array = make([]value.Value, len(v.Array))
		for i, e := range v.Array {
			c.Array[i] = deepClone(e)
		}
	}
	if v.Dict != nil {
		c.Dict = v.Dict.Clone()
	}
	return c
}
