package vm

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/feltvm/sierra-emu/internal/sierraemu/circuit"
	"github.com/feltvm/sierra-emu/internal/sierraemu/ir"
	"github.com/feltvm/sierra-emu/internal/sierraemu/value"
)

func u96Limb(n int64) value.Value {
	return value.NewBoundedInt(ir.IntRange{Lo: 0, Hi: 1 << circuit.LimbBits}, big.NewInt(n))
}

func fourLimbs(lo int64) []value.Value {
	return []value.Value{u96Limb(lo), u96Limb(0), u96Limb(0), u96Limb(0)}
}

func TestEvalCircuitAddition(t *testing.T) {
	initInfo := &ir.LibfuncDescriptor{Family: "circuit", Selector: "init_circuit_data", Data: 2}
	action, err := evalCircuit(nil, initInfo, nil, nil)
	require.NoError(t, err)
	cv := action.(NormalBranch).Results[0]

	addInputInfo := &ir.LibfuncDescriptor{Family: "circuit", Selector: "add_input"}
	action, err = evalCircuit(nil, addInputInfo, append([]value.Value{cv}, fourLimbs(3)...), nil)
	require.NoError(t, err)
	branch := action.(NormalBranch)
	require.Equal(t, 0, branch.Branch, "buffer not yet full")
	cv = branch.Results[0]

	action, err = evalCircuit(nil, addInputInfo, append([]value.Value{cv}, fourLimbs(4)...), nil)
	require.NoError(t, err)
	branch = action.(NormalBranch)
	require.Equal(t, 1, branch.Branch, "buffer now full")
	cv = branch.Results[0]

	modInfo := &ir.LibfuncDescriptor{Family: "circuit", Selector: "try_into_circuit_modulus"}
	action, err = evalCircuit(nil, modInfo, fourLimbs(97), nil)
	require.NoError(t, err)
	modulus := action.(NormalBranch).Results[0]

	evalInfo := &ir.LibfuncDescriptor{
		Family:   "circuit",
		Selector: "eval",
		Data: circuit.Descriptor{
			AddOffsets: []circuit.Gate{{Lhs: 0, Rhs: 1, Output: 2}},
		},
	}
	action, err = evalCircuit(nil, evalInfo, []value.Value{value.Unit, value.Unit, cv, modulus}, nil)
	require.NoError(t, err)
	branch = action.(NormalBranch)
	require.Equal(t, 0, branch.Branch, "a fully resolved add-only circuit succeeds")
	outputs := branch.Results[2]

	getOutputInfo := &ir.LibfuncDescriptor{Family: "circuit", Selector: "get_output", Data: 2}
	action, err = evalCircuit(nil, getOutputInfo, []value.Value{outputs}, nil)
	require.NoError(t, err)
	branch = action.(NormalBranch)
	require.Equal(t, 0, branch.Branch)
	require.Equal(t, int64(7), branch.Results[0].Big.Int64())
}

func TestEvalCircuitDivideByZero(t *testing.T) {
	initInfo := &ir.LibfuncDescriptor{Family: "circuit", Selector: "init_circuit_data", Data: 1}
	action, err := evalCircuit(nil, initInfo, nil, nil)
	require.NoError(t, err)
	cv := action.(NormalBranch).Results[0]

	addInputInfo := &ir.LibfuncDescriptor{Family: "circuit", Selector: "add_input"}
	action, err = evalCircuit(nil, addInputInfo, append([]value.Value{cv}, fourLimbs(0)...), nil)
	require.NoError(t, err)
	cv = action.(NormalBranch).Results[0]

	modInfo := &ir.LibfuncDescriptor{Family: "circuit", Selector: "try_into_circuit_modulus"}
	action, err = evalCircuit(nil, modInfo, fourLimbs(97), nil)
	require.NoError(t, err)
	modulus := action.(NormalBranch).Results[0]

	// A mul gate whose rhs (the sole input, 0) is known but lhs is not
	// denotes lhs = rhs^-1; 0 has no inverse modulo 97.
	evalInfo := &ir.LibfuncDescriptor{
		Family:   "circuit",
		Selector: "eval",
		Data: circuit.Descriptor{
			MulOffsets: []circuit.Gate{{Lhs: 1, Rhs: 0, Output: 2}},
		},
	}
	action, err = evalCircuit(nil, evalInfo, []value.Value{value.Unit, value.Unit, cv, modulus}, nil)
	require.NoError(t, err)
	branch := action.(NormalBranch)
	require.Equal(t, 1, branch.Branch, "a non-invertible rhs fails the circuit")
}

func TestEvalCircuitRejectsZeroModulus(t *testing.T) {
	modInfo := &ir.LibfuncDescriptor{Family: "circuit", Selector: "try_into_circuit_modulus"}
	action, err := evalCircuit(nil, modInfo, fourLimbs(0), nil)
	require.NoError(t, err)
	branch := action.(NormalBranch)
	require.Equal(t, 1, branch.Branch)
}
