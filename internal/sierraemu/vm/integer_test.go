package vm

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/feltvm/sierra-emu/internal/sierraemu/ir"
	"github.com/feltvm/sierra-emu/internal/sierraemu/value"
)

func TestEvalIntegerOverflowingAdd(t *testing.T) {
	t.Run("u32 add within range takes branch 0", func(t *testing.T) {
		info := &ir.LibfuncDescriptor{Family: "u32", Selector: "overflowing_add"}
		action, err := evalInteger(nil, info, []value.Value{
			value.NewUint(32, 10),
			value.NewUint(32, 20),
		}, &Context{})
		require.NoError(t, err)

		branch := action.(NormalBranch)
		require.Equal(t, 0, branch.Branch)
		require.Equal(t, uint64(30), branch.Results[0].Int)
	})

	t.Run("u32 add past the width wraps and takes branch 1", func(t *testing.T) {
		info := &ir.LibfuncDescriptor{Family: "u32", Selector: "overflowing_add"}
		maxU32 := uint64(1)<<32 - 1
		action, err := evalInteger(nil, info, []value.Value{
			value.NewUint(32, maxU32),
			value.NewUint(32, 5),
		}, &Context{})
		require.NoError(t, err)

		branch := action.(NormalBranch)
		require.Equal(t, 1, branch.Branch)
		require.Equal(t, uint64(4), branch.Results[0].Int)
	})
}

func TestEvalIntegerDivmod(t *testing.T) {
	info := &ir.LibfuncDescriptor{Family: "u64", Selector: "divmod"}
	action, err := evalInteger(nil, info, []value.Value{
		value.Unit,
		value.NewUint(64, 17),
		value.NewUint(64, 5),
	}, &Context{})
	require.NoError(t, err)

	branch := action.(NormalBranch)
	require.Equal(t, 0, branch.Branch)
	require.Equal(t, value.Unit, branch.Results[0])
	require.Equal(t, uint64(3), branch.Results[1].Int)
	require.Equal(t, uint64(2), branch.Results[2].Int)

	t.Run("division by zero is fatal", func(t *testing.T) {
		_, err := evalInteger(nil, info, []value.Value{
			value.Unit,
			value.NewUint(64, 17),
			value.NewUint(64, 0),
		}, &Context{})
		require.Error(t, err)
	})
}

func TestEvalIntegerWideMul(t *testing.T) {
	info := &ir.LibfuncDescriptor{Family: "u64", Selector: "wide_mul"}
	action, err := evalInteger(nil, info, []value.Value{
		value.NewUint(64, 1<<40),
		value.NewUint(64, 1<<40),
	}, &Context{})
	require.NoError(t, err)

	branch := action.(NormalBranch)
	want := new(big.Int).Lsh(big.NewInt(1), 80)
	require.Equal(t, value.KindU128, branch.Results[0].Kind)
	require.Equal(t, 0, branch.Results[0].Big.Cmp(want))
}

func TestEvalIntegerWideMulU128OverflowsToU256(t *testing.T) {
	info := &ir.LibfuncDescriptor{Family: "u128", Selector: "wide_mul"}
	half := new(big.Int).Lsh(big.NewInt(1), 100)
	action, err := evalInteger(nil, info, []value.Value{
		value.NewUint128Big(half),
		value.NewUint128Big(half),
	}, &Context{})
	require.NoError(t, err)

	branch := action.(NormalBranch)
	require.Equal(t, value.KindU256, branch.Results[0].Kind)
	require.Equal(t, 0, u256AsBig(branch.Results[0]).Cmp(new(big.Int).Lsh(big.NewInt(1), 200)))
}

func TestEvalIntegerWideMulI128RejectsUnsupported256(t *testing.T) {
	info := &ir.LibfuncDescriptor{Family: "i128", Selector: "wide_mul"}
	_, err := evalInteger(nil, info, []value.Value{
		value.NewSint128Big(big.NewInt(5)),
		value.NewSint128Big(big.NewInt(5)),
	}, &Context{})
	require.Error(t, err)
}
