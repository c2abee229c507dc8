package vm

import (
	"fmt"
	"math/big"

	"github.com/feltvm/sierra-emu/internal/sierraemu/felt"
	"github.com/feltvm/sierra-emu/internal/sierraemu/ir"
	"github.com/feltvm/sierra-emu/internal/sierraemu/syscall"
	"github.com/feltvm/sierra-emu/internal/sierraemu/value"
)

// felt252UpperBound is 2^251, the guard used by the *_try_from_felt252
// address-family conversions.
var felt252UpperBound = new(big.Int).Lsh(big.NewInt(1), 251)

// errArray packs a syscall failure payload into the Array{ty=Felt, data}
// shape every failing syscall branch emits. The element TypeID is a
// structural placeholder: this handler operates below the registry's type
// namespace and has no resolvable Felt TypeID of its own to attach.
func errArray(errFelts syscall.Felts) value.Value {
	elems := make([]value.Value, len(errFelts))
	for i, f := range errFelts {
		elems[i] = value.NewFelt(f)
	}
	return value.NewArray(0, elems)
}

func feltArray(vs []value.Value) ([]felt.Element, error) {
	out := make([]felt.Element, len(vs))
	for i, v := range vs {
		if v.Kind != value.KindFelt {
			return nil, fmt.Errorf("starknet: expected Felt array element at %d", i)
		}
		out[i] = v.Felt
	}
	return out, nil
}

func feltsToArray(fs []felt.Element) value.Value {
	elems := make([]value.Value, len(fs))
	for i, f := range fs {
		elems[i] = value.NewFelt(f)
	}
	return value.NewArray(0, elems)
}

// u256ToLimbs4 packs a U256 value's two u128 limbs into four little-endian
// 64-bit words, the shape the secp256k1/secp256r1 syscalls exchange.
func u256ToLimbs4(v value.Value) [4]uint64 {
	whole := new(big.Int).Lsh(v.Hi, u128Bits)
	whole.Or(whole, v.Lo)
	var out [4]uint64
	mask := new(big.Int).SetUint64(^uint64(0))
	tmp := new(big.Int).Set(whole)
	for i := 0; i < 4; i++ {
		word := new(big.Int).And(tmp, mask)
		out[i] = word.Uint64()
		tmp.Rsh(tmp, 64)
	}
	return out
}

func limbs4ToU256(limbs [4]uint64) value.Value {
	whole := new(big.Int)
	for i := 3; i >= 0; i-- {
		whole.Lsh(whole, 64)
		whole.Or(whole, new(big.Int).SetUint64(limbs[i]))
	}
	return bigAsU256(whole)
}

func execInfoValue(info syscall.ExecutionInfo) value.Value {
	return value.NewStruct(0, []value.Value{
		value.NewUint(64, info.BlockNumber),
		value.NewUint(64, info.BlockTimestamp),
		value.NewFelt(info.SequencerAddress),
		value.NewFelt(info.Caller),
		value.NewFelt(info.ContractAddress),
		value.NewFelt(info.EntryPointSelector),
	})
}

// evalStarknet wires every concrete syscall into the uniform
// withdraw-(gas, system, inputs) / invoke / Ok-branch0 / Err-branch1
// contract, plus the pure address-family conversions.
func evalStarknet(_ *ir.Registry, info *ir.LibfuncDescriptor, args []value.Value, ctx *Context) (EvalAction, error) {
	h := ctx.Engine.Syscalls

	switch info.Selector {
	case "storage_read":
		if len(args) != 3 {
			return nil, fmt.Errorf("starknet.storage_read: expected (gas, system, address)")
		}
		g := ctx.Engine.AvailableGas()
		v, errF := h.StorageRead(&g, args[2].Felt)
		ctx.Engine.SetAvailableGas(g)
		if errF != nil {
			return branch1(args[0], args[1], errArray(errF))
		}
		return branch0(args[0], args[1], value.NewFelt(v))

	case "storage_write":
		if len(args) != 4 {
			return nil, fmt.Errorf("starknet.storage_write: expected (gas, system, address, value)")
		}
		g := ctx.Engine.AvailableGas()
		errF := h.StorageWrite(&g, args[2].Felt, args[3].Felt)
		ctx.Engine.SetAvailableGas(g)
		if errF != nil {
			return branch1(args[0], args[1], errArray(errF))
		}
		return branch0(args[0], args[1])

	case "emit_event":
		if len(args) != 4 {
			return nil, fmt.Errorf("starknet.emit_event: expected (gas, system, keys, data)")
		}
		keys, err := feltArray(args[2].Array)
		if err != nil {
			return nil, err
		}
		data, err := feltArray(args[3].Array)
		if err != nil {
			return nil, err
		}
		g := ctx.Engine.AvailableGas()
		errF := h.EmitEvent(&g, syscall.Event{Keys: keys, Data: data})
		ctx.Engine.SetAvailableGas(g)
		if errF != nil {
			return branch1(args[0], args[1], errArray(errF))
		}
		return branch0(args[0], args[1])

	case "get_block_hash":
		if len(args) != 3 {
			return nil, fmt.Errorf("starknet.get_block_hash: expected (gas, system, block_number)")
		}
		bn, _, err := intValueOf(args[2])
		if err != nil {
			return nil, err
		}
		g := ctx.Engine.AvailableGas()
		h2, errF := h.GetBlockHash(&g, bn.Uint64())
		ctx.Engine.SetAvailableGas(g)
		if errF != nil {
			return branch1(args[0], args[1], errArray(errF))
		}
		return branch0(args[0], args[1], value.NewFelt(h2))

	case "get_execution_info":
		if len(args) != 2 {
			return nil, fmt.Errorf("starknet.get_execution_info: expected (gas, system)")
		}
		g := ctx.Engine.AvailableGas()
		ei, errF := h.GetExecutionInfo(&g)
		ctx.Engine.SetAvailableGas(g)
		if errF != nil {
			return branch1(args[0], args[1], errArray(errF))
		}
		return branch0(args[0], args[1], execInfoValue(ei))

	case "get_execution_info_v2":
		if len(args) != 2 {
			return nil, fmt.Errorf("starknet.get_execution_info_v2: expected (gas, system)")
		}
		g := ctx.Engine.AvailableGas()
		ei, errF := h.GetExecutionInfoV2(&g)
		ctx.Engine.SetAvailableGas(g)
		if errF != nil {
			return branch1(args[0], args[1], errArray(errF))
		}
		return branch0(args[0], args[1], execInfoValue(ei))

	case "deploy":
		if len(args) != 6 {
			return nil, fmt.Errorf("starknet.deploy: expected (gas, system, class_hash, salt, calldata, deploy_from_zero)")
		}
		calldata, err := feltArray(args[4].Array)
		if err != nil {
			return nil, err
		}
		fromZero := args[5].Kind == value.KindEnum && args[5].EnumIndex != 0
		g := ctx.Engine.AvailableGas()
		addr, res, errF := h.Deploy(&g, args[2].Felt, args[3].Felt, calldata, fromZero)
		ctx.Engine.SetAvailableGas(g)
		if errF != nil {
			return branch1(args[0], args[1], errArray(errF))
		}
		return branch0(args[0], args[1], value.NewFelt(addr), feltsToArray(res))

	case "library_call":
		if len(args) != 5 {
			return nil, fmt.Errorf("starknet.library_call: expected (gas, system, class_hash, selector, calldata)")
		}
		calldata, err := feltArray(args[4].Array)
		if err != nil {
			return nil, err
		}
		g := ctx.Engine.AvailableGas()
		res, errF := h.LibraryCall(&g, args[2].Felt, args[3].Felt, calldata)
		ctx.Engine.SetAvailableGas(g)
		if errF != nil {
			return branch1(args[0], args[1], errArray(errF))
		}
		return branch0(args[0], args[1], feltsToArray(res))

	case "call_contract":
		if len(args) != 5 {
			return nil, fmt.Errorf("starknet.call_contract: expected (gas, system, address, selector, calldata)")
		}
		calldata, err := feltArray(args[4].Array)
		if err != nil {
			return nil, err
		}
		g := ctx.Engine.AvailableGas()
		res, errF := h.CallContract(&g, args[2].Felt, args[3].Felt, calldata)
		ctx.Engine.SetAvailableGas(g)
		if errF != nil {
			return branch1(args[0], args[1], errArray(errF))
		}
		return branch0(args[0], args[1], feltsToArray(res))

	case "replace_class":
		if len(args) != 3 {
			return nil, fmt.Errorf("starknet.replace_class: expected (gas, system, class_hash)")
		}
		g := ctx.Engine.AvailableGas()
		errF := h.ReplaceClass(&g, args[2].Felt)
		ctx.Engine.SetAvailableGas(g)
		if errF != nil {
			return branch1(args[0], args[1], errArray(errF))
		}
		return branch0(args[0], args[1])

	case "send_message_to_l1":
		if len(args) != 4 {
			return nil, fmt.Errorf("starknet.send_message_to_l1: expected (gas, system, to_address, payload)")
		}
		payload, err := feltArray(args[3].Array)
		if err != nil {
			return nil, err
		}
		g := ctx.Engine.AvailableGas()
		errF := h.SendMessageToL1(&g, args[2].Felt, payload)
		ctx.Engine.SetAvailableGas(g)
		if errF != nil {
			return branch1(args[0], args[1], errArray(errF))
		}
		return branch0(args[0], args[1])

	case "keccak":
		if len(args) != 3 {
			return nil, fmt.Errorf("starknet.keccak: expected (gas, system, input)")
		}
		raw := make([]byte, len(args[2].Array)*8)
		for i, limb := range args[2].Array {
			u, _, err := intValueOf(limb)
			if err != nil {
				return nil, err
			}
			v := u.Uint64()
			for b := 0; b < 8; b++ {
				raw[i*8+b] = byte(v >> (8 * b))
			}
		}
		g := ctx.Engine.AvailableGas()
		out, errF := h.Keccak(&g, raw)
		ctx.Engine.SetAvailableGas(g)
		if errF != nil {
			return branch1(args[0], args[1], errArray(errF))
		}
		lo := new(big.Int).SetUint64(out[0])
		hi := new(big.Int).SetUint64(out[1])
		return branch0(args[0], args[1], value.NewU256(lo, hi))

	case "sha256_process_block":
		if len(args) != 4 {
			return nil, fmt.Errorf("starknet.sha256_process_block: expected (gas, system, state, block)")
		}
		var state [8]uint32
		for i, s := range args[2].Array {
			u, _, err := intValueOf(s)
			if err != nil {
				return nil, err
			}
			state[i] = uint32(u.Uint64())
		}
		var block [16]uint32
		for i, b := range args[3].Array {
			u, _, err := intValueOf(b)
			if err != nil {
				return nil, err
			}
			block[i] = uint32(u.Uint64())
		}
		g := ctx.Engine.AvailableGas()
		out, errF := h.Sha256ProcessBlock(&g, state, block)
		ctx.Engine.SetAvailableGas(g)
		if errF != nil {
			return branch1(args[0], args[1], errArray(errF))
		}
		elems := make([]value.Value, len(out))
		for i, w := range out {
			elems[i] = value.NewUint(32, uint64(w))
		}
		return branch0(args[0], args[1], value.NewArray(0, elems))

	case "secp256k1_new", "secp256r1_new":
		if len(args) != 4 {
			return nil, fmt.Errorf("starknet.%s: expected (gas, system, x, y)", info.Selector)
		}
		x, y := u256ToLimbs4(args[2]), u256ToLimbs4(args[3])
		g := ctx.Engine.AvailableGas()
		var handle int
		var ok bool
		var errF syscall.Felts
		if info.Selector == "secp256k1_new" {
			handle, ok, errF = h.Secp256k1New(&g, x, y)
		} else {
			handle, ok, errF = h.Secp256r1New(&g, x, y)
		}
		ctx.Engine.SetAvailableGas(g)
		if errF != nil {
			return branch1(args[0], args[1], errArray(errF))
		}
		if !ok {
			return branch0(args[0], args[1], value.NewUninitialized(0))
		}
		return branch0(args[0], args[1], value.NewUint(64, uint64(handle)))

	case "secp256k1_add", "secp256r1_add":
		if len(args) != 4 {
			return nil, fmt.Errorf("starknet.%s: expected (gas, system, p0, p1)", info.Selector)
		}
		g := ctx.Engine.AvailableGas()
		var handle int
		var errF syscall.Felts
		if info.Selector == "secp256k1_add" {
			handle, errF = h.Secp256k1Add(&g, int(args[2].Int), int(args[3].Int))
		} else {
			handle, errF = h.Secp256r1Add(&g, int(args[2].Int), int(args[3].Int))
		}
		ctx.Engine.SetAvailableGas(g)
		if errF != nil {
			return branch1(args[0], args[1], errArray(errF))
		}
		return branch0(args[0], args[1], value.NewUint(64, uint64(handle)))

	case "secp256k1_mul", "secp256r1_mul":
		if len(args) != 4 {
			return nil, fmt.Errorf("starknet.%s: expected (gas, system, p, scalar)", info.Selector)
		}
		scalar := u256ToLimbs4(args[3])
		g := ctx.Engine.AvailableGas()
		var handle int
		var errF syscall.Felts
		if info.Selector == "secp256k1_mul" {
			handle, errF = h.Secp256k1Mul(&g, int(args[2].Int), scalar)
		} else {
			handle, errF = h.Secp256r1Mul(&g, int(args[2].Int), scalar)
		}
		ctx.Engine.SetAvailableGas(g)
		if errF != nil {
			return branch1(args[0], args[1], errArray(errF))
		}
		return branch0(args[0], args[1], value.NewUint(64, uint64(handle)))

	case "secp256k1_get_point_from_x", "secp256r1_get_point_from_x":
		if len(args) != 4 {
			return nil, fmt.Errorf("starknet.%s: expected (gas, system, x, y_parity)", info.Selector)
		}
		x := u256ToLimbs4(args[2])
		yParity := args[3].Kind == value.KindEnum && args[3].EnumIndex != 0
		g := ctx.Engine.AvailableGas()
		var handle int
		var ok bool
		var errF syscall.Felts
		if info.Selector == "secp256k1_get_point_from_x" {
			handle, ok, errF = h.Secp256k1GetPointFromX(&g, x, yParity)
		} else {
			handle, ok, errF = h.Secp256r1GetPointFromX(&g, x, yParity)
		}
		ctx.Engine.SetAvailableGas(g)
		if errF != nil {
			return branch1(args[0], args[1], errArray(errF))
		}
		if !ok {
			return branch0(args[0], args[1], value.NewUninitialized(0))
		}
		return branch0(args[0], args[1], value.NewUint(64, uint64(handle)))

	case "secp256k1_get_xy", "secp256r1_get_xy":
		if len(args) != 3 {
			return nil, fmt.Errorf("starknet.%s: expected (gas, system, p)", info.Selector)
		}
		g := ctx.Engine.AvailableGas()
		var x, y [4]uint64
		var errF syscall.Felts
		if info.Selector == "secp256k1_get_xy" {
			x, y, errF = h.Secp256k1GetXY(&g, int(args[2].Int))
		} else {
			x, y, errF = h.Secp256r1GetXY(&g, int(args[2].Int))
		}
		ctx.Engine.SetAvailableGas(g)
		if errF != nil {
			return branch1(args[0], args[1], errArray(errF))
		}
		return branch0(args[0], args[1], limbs4ToU256(x), limbs4ToU256(y))

	case "class_hash_const", "contract_address_const":
		lit, ok := info.Data.(*big.Int)
		if !ok {
			return nil, fmt.Errorf("starknet.%s: libfunc data is not a literal", info.Selector)
		}
		return branch0(value.NewFelt(felt.FromBigInt(lit)))

	case "class_hash_try_from_felt252", "contract_address_try_from_felt252", "storage_address_try_from_felt252":
		if len(args) != 1 || args[0].Kind != value.KindFelt {
			return nil, fmt.Errorf("starknet.%s: expected one Felt arg", info.Selector)
		}
		if args[0].Felt.Big().Cmp(felt252UpperBound) >= 0 {
			return branch1()
		}
		return branch0(args[0])

	case "class_hash_to_felt252", "contract_address_to_felt252", "storage_address_to_felt252", "storage_base_address_to_felt252":
		if len(args) != 1 {
			return nil, fmt.Errorf("starknet.%s: expected one arg", info.Selector)
		}
		return branch0(value.NewFelt(args[0].Felt))

	case "storage_base_address_from_felt252":
		if len(args) != 2 {
			return nil, fmt.Errorf("starknet.storage_base_address_from_felt252: expected (range_check, value)")
		}
		mod := new(big.Int).Lsh(big.NewInt(1), 251)
		reduced := new(big.Int).Mod(args[1].Felt.Big(), mod)
		return branch0(args[0], value.NewFelt(felt.FromBigInt(reduced)))

	case "storage_address_from_base_and_offset":
		if len(args) != 2 || args[1].Kind != value.KindU8 {
			return nil, fmt.Errorf("starknet.storage_address_from_base_and_offset: expected (base, offset: u8)")
		}
		sum := new(big.Int).Add(args[0].Felt.Big(), big.NewInt(int64(args[1].Int)))
		return branch0(value.NewFelt(felt.FromBigInt(sum)))
	}
	return nil, &UnimplementedLibfuncError{Family: "starknet", Selector: info.Selector}
}
