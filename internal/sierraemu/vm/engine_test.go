package vm

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/feltvm/sierra-emu/internal/sierraemu/felt"
	"github.com/feltvm/sierra-emu/internal/sierraemu/ir"
	"github.com/feltvm/sierra-emu/internal/sierraemu/value"
)

const testU32Type ir.TypeID = 1

func newTestRegistry(t *testing.T, program *ir.Program) *ir.Registry {
	t.Helper()
	reg, err := ir.NewRegistry(program)
	require.NoError(t, err)
	return reg
}

func TestEngineIdentityReturn(t *testing.T) {
	program := &ir.Program{
		Types: []ir.TypeDescriptor{{ID: testU32Type, Kind: ir.TypeU32}},
		Functions: []ir.Function{
			{ID: 0, Name: "identity", Params: []ir.Param{{Var: 0, Type: testU32Type}}, ReturnTypes: []ir.TypeID{testU32Type}, EntryPC: 0},
		},
		Statements: []ir.Statement{
			{Return: &ir.Return{Vars: []ir.VarID{0}}},
		},
	}
	reg := newTestRegistry(t, program)
	e := NewEngine(reg, nil, nil)

	require.NoError(t, e.PushFrame(0, []value.Value{value.NewUint(32, 42)}))
	require.False(t, e.Done())

	dump, ok, err := e.Step()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, ir.StatementIndex(0), dump.StatementIdx)
	require.True(t, e.Done())

	require.Equal(t, []value.Value{value.NewUint(32, 42)}, e.LastResults())
	require.Len(t, e.Trace().States, 1)
}

func TestEnginePushFrameRejectsArityMismatch(t *testing.T) {
	program := &ir.Program{
		Types: []ir.TypeDescriptor{{ID: testU32Type, Kind: ir.TypeU32}},
		Functions: []ir.Function{
			{ID: 0, Params: []ir.Param{{Var: 0, Type: testU32Type}}, ReturnTypes: []ir.TypeID{testU32Type}},
		},
		Statements: []ir.Statement{{Return: &ir.Return{Vars: []ir.VarID{0}}}},
	}
	reg := newTestRegistry(t, program)
	e := NewEngine(reg, nil, nil)
	require.Error(t, e.PushFrame(0, nil))
}

func TestEnginePushFrameRejectsTypeMismatch(t *testing.T) {
	program := &ir.Program{
		Types: []ir.TypeDescriptor{{ID: testU32Type, Kind: ir.TypeU32}},
		Functions: []ir.Function{
			{ID: 0, Params: []ir.Param{{Var: 0, Type: testU32Type}}, ReturnTypes: []ir.TypeID{testU32Type}},
		},
		Statements: []ir.Statement{{Return: &ir.Return{Vars: []ir.VarID{0}}}},
	}
	reg := newTestRegistry(t, program)
	e := NewEngine(reg, nil, nil)
	require.Error(t, e.PushFrame(0, []value.Value{value.NewFelt(felt.FromInt64(0))}))
}

// TestEngineFunctionCall drives a caller that materializes a constant,
// calls a callee that hands it straight back, and resumes at the caller's
// own call-site statement to return the callee's result — exercising the
// frame-stack push/pop discipline in engine.go's stepInvocation/stepReturn.
func TestEngineFunctionCall(t *testing.T) {
	const callee ir.FunctionID = 2

	program := &ir.Program{
		Types: []ir.TypeDescriptor{{ID: testU32Type, Kind: ir.TypeU32}},
		Libfuncs: []ir.LibfuncDescriptor{
			{ID: 0, Family: "const", Data: ConstDescriptor{Type: testU32Type, Literal: big.NewInt(7)}},
			{ID: 1, Family: "function_call", Data: callee},
		},
		Functions: []ir.Function{
			{ID: 1, Name: "caller", ReturnTypes: []ir.TypeID{testU32Type}, EntryPC: 0},
			{ID: callee, Name: "callee", Params: []ir.Param{{Var: 0, Type: testU32Type}}, ReturnTypes: []ir.TypeID{testU32Type}, EntryPC: 2},
		},
		Statements: []ir.Statement{
			{Invocation: &ir.Invocation{Libfunc: 0, Branches: []ir.Branch{{Target: ir.Fallthrough, ResultVars: []ir.VarID{10}}}}},
			{Invocation: &ir.Invocation{Libfunc: 1, Args: []ir.VarID{10}, Branches: []ir.Branch{{Target: 3, ResultVars: []ir.VarID{20}}}}},
			{Return: &ir.Return{Vars: []ir.VarID{0}}},
			{Return: &ir.Return{Vars: []ir.VarID{20}}},
		},
	}
	reg := newTestRegistry(t, program)
	e := NewEngine(reg, nil, nil)

	require.NoError(t, e.PushFrame(1, nil))
	for !e.Done() {
		_, ok, err := e.Step()
		require.NoError(t, err)
		require.True(t, ok)
	}

	require.Equal(t, []value.Value{value.NewUint(32, 7)}, e.LastResults())
	require.Len(t, e.Trace().States, 4)
}
