package vm

import (
	"fmt"
	"math/big"

	"github.com/feltvm/sierra-emu/internal/sierraemu/circuit"
	"github.com/feltvm/sierra-emu/internal/sierraemu/ir"
	"github.com/feltvm/sierra-emu/internal/sierraemu/value"
)

// evalCircuit wires the circuit package into the libfunc dispatch table:
// init_circuit_data, add_input, try_into_circuit_modulus, eval, get_output,
// and the guarantee-verify family (structural no-ops in this
// representation, since back-solved gate values are already consistent by
// construction).
func evalCircuit(_ *ir.Registry, info *ir.LibfuncDescriptor, args []value.Value, _ *Context) (EvalAction, error) {
	switch info.Selector {
	case "init_circuit_data":
		n, ok := info.Data.(int)
		if !ok {
			return nil, fmt.Errorf("circuit.init_circuit_data: libfunc data is not an input count")
		}
		return branch0(value.NewCircuitValue(&value.CircuitValue{InputCount: n}))

	case "add_input":
		if len(args) != 5 || args[0].Kind != value.KindCircuit {
			return nil, fmt.Errorf("circuit.add_input: expected (circuit, limb0..limb3)")
		}
		cv := args[0].Circuit
		var limbs [4]*big.Int
		for i := 0; i < 4; i++ {
			if args[i+1].Kind != value.KindBoundedInt {
				return nil, fmt.Errorf("circuit.add_input: limb %d is not a BoundedInt value", i)
			}
			limbs[i] = args[i+1].Big
		}
		cv.Inputs = append(cv.Inputs, circuit.PackLimbs(limbs))
		if len(cv.Inputs) >= cv.InputCount {
			return branch1(value.NewCircuitValue(cv))
		}
		return branch0(value.NewCircuitValue(cv))

	case "try_into_circuit_modulus":
		if len(args) != 4 {
			return nil, fmt.Errorf("circuit.try_into_circuit_modulus: expected four BoundedInt limbs")
		}
		var limbs [4]*big.Int
		for i := 0; i < 4; i++ {
			if args[i].Kind != value.KindBoundedInt {
				return nil, fmt.Errorf("circuit.try_into_circuit_modulus: limb %d is not a BoundedInt value", i)
			}
			limbs[i] = args[i].Big
		}
		m, err := circuit.Modulus(limbs)
		if err != nil {
			return branch1()
		}
		return branch0(value.NewCircuitModulus(m))

	case "eval":
		if len(args) != 4 {
			return nil, fmt.Errorf("circuit.eval: expected (add_mod, mul_mod, circuit, modulus)")
		}
		addMod, mulMod := args[0], args[1]
		if args[2].Kind != value.KindCircuit || args[3].Kind != value.KindCircuitModulus {
			return nil, fmt.Errorf("circuit.eval: expected (circuit, CircuitModulus) in positions 2,3")
		}
		desc, ok := info.Data.(circuit.Descriptor)
		if !ok {
			return nil, fmt.Errorf("circuit.eval: libfunc data is not a gate Descriptor")
		}
		cv := args[2].Circuit
		modulus := args[3].Big
		values, solved, err := circuit.Eval(desc, modulus, cv.Inputs)
		if err != nil {
			return nil, err
		}
		outputs := make(map[ir.TypeID]*big.Int, len(values))
		for i, v := range values {
			if v != nil {
				outputs[ir.TypeID(i)] = v
			}
		}
		result := value.NewCircuitOutputs(outputs)
		if !solved {
			return branch1(addMod, mulMod, result)
		}
		return branch0(addMod, mulMod, result)

	case "get_output":
		if len(args) != 1 || args[0].Kind != value.KindCircuitOutputs {
			return nil, fmt.Errorf("circuit.get_output: expected a CircuitOutputs value")
		}
		slot, ok := info.Data.(int)
		if !ok {
			return nil, fmt.Errorf("circuit.get_output: libfunc data is not an output slot index")
		}
		v, present := args[0].Circuit.Outputs[ir.TypeID(slot)]
		if !present {
			return branch1()
		}
		return branch0(value.NewCircuitModulus(v))

	case "u96_guarantee_verify", "u96_limbs_less_than_guarantee_verify":
		return branch0(value.Unit)
	}
	return nil, &UnimplementedLibfuncError{Family: "circuit", Selector: info.Selector}
}
