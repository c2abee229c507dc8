package vm

import (
	"fmt"

	"github.com/feltvm/sierra-emu/internal/sierraemu/ir"
	"github.com/feltvm/sierra-emu/internal/sierraemu/value"
)

// evalSnapshotTake is a pure identity passthrough: Snapshot is transparent
// at the type level (see value.IsOf), so taking a snapshot of a value
// changes nothing about its runtime representation.
func evalSnapshotTake(_ *ir.Registry, info *ir.LibfuncDescriptor, args []value.Value, _ *Context) (EvalAction, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("snapshot_take: expected one arg")
	}
	return branch0(deepClone(args[0]))
}
