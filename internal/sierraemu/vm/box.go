package vm

import (
	"fmt"

	"github.com/feltvm/sierra-emu/internal/sierraemu/ir"
	"github.com/feltvm/sierra-emu/internal/sierraemu/value"
)

// evalBox handles into_box/unbox/forward_snapshot and the nullable family
// (null, nullable_from_box, match_nullable). Box, Nullable, and NonZero are
// transparent wrappers at the type level (see value.IsOf), so into_box,
// unbox, forward_snapshot and nullable_from_box pass the runtime value
// through unchanged; null yields the Uninitialized sentinel, and
// match_nullable takes branch 0 on that sentinel and branch 1 with the value
// otherwise.
func evalBox(_ *ir.Registry, info *ir.LibfuncDescriptor, args []value.Value, _ *Context) (EvalAction, error) {
	switch info.Selector {
	case "into_box", "unbox", "forward_snapshot":
		if len(args) != 1 {
			return nil, fmt.Errorf("box.%s: expected one arg", info.Selector)
		}
		return branch0(args[0])

	case "null":
		if len(args) != 0 {
			return nil, fmt.Errorf("box.null: expected no args")
		}
		return branch0(value.NewUninitialized(0))

	case "nullable_from_box":
		if len(args) != 1 {
			return nil, fmt.Errorf("box.nullable_from_box: expected one arg")
		}
		return branch0(args[0])

	case "match_nullable":
		if len(args) != 1 {
			return nil, fmt.Errorf("box.match_nullable: expected one arg")
		}
		if args[0].Kind == value.KindUninitialized {
			return branch0()
		}
		return branch1(args[0])
	}
	return nil, &UnimplementedLibfuncError{Family: "box", Selector: info.Selector}
}
