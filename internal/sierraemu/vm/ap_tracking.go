package vm

import (
	"github.com/feltvm/sierra-emu/internal/sierraemu/ir"
	"github.com/feltvm/sierra-emu/internal/sierraemu/value"
)

// evalApTracking handles the ap_tracking family: pure structural markers
// that pin the IR's static-analysis state. They consume exactly the
// arguments the IR declares and always branch 0 with no results.
func evalApTracking(_ *ir.Registry, _ *ir.LibfuncDescriptor, _ []value.Value, _ *Context) (EvalAction, error) {
	return branch0()
}
