package vm

import (
	"github.com/feltvm/sierra-emu/internal/sierraemu/ir"
	"github.com/feltvm/sierra-emu/internal/sierraemu/value"
)

// evalBranchAlign is the other pure structural marker family: it has no
// runtime effect beyond always taking branch 0 with no results.
func evalBranchAlign(_ *ir.Registry, _ *ir.LibfuncDescriptor, _ []value.Value, _ *Context) (EvalAction, error) {
	return branch0()
}
