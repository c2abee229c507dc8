package vm

import (
	"github.com/feltvm/sierra-emu/internal/sierraemu/ir"
	"github.com/feltvm/sierra-emu/internal/sierraemu/value"
)

// evalJump is the unconditional single-branch jump: a pure structural
// marker with no arguments and no results.
func evalJump(_ *ir.Registry, _ *ir.LibfuncDescriptor, _ []value.Value, _ *Context) (EvalAction, error) {
	return branch0()
}
