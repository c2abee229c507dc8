package vm

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/feltvm/sierra-emu/internal/sierraemu/ir"
	"github.com/feltvm/sierra-emu/internal/sierraemu/value"
)

func TestEvalGas(t *testing.T) {
	t.Run("withdraw_gas succeeds when unmetered", func(t *testing.T) {
		e := NewEngine(nil, nil, nil)
		e.SetAvailableGas(10)
		ctx := &Context{Engine: e, PC: 0}
		info := &ir.LibfuncDescriptor{Family: "gas", Selector: "withdraw_gas"}

		action, err := evalGas(nil, info, []value.Value{value.Unit, value.Unit}, ctx)
		require.NoError(t, err)

		branch, ok := action.(NormalBranch)
		require.True(t, ok)
		require.Equal(t, 0, branch.Branch)
		require.Equal(t, uint64(10), e.AvailableGas(), "unmetered withdrawal costs nothing")
	})

	t.Run("builtin_withdraw_gas appends the builtin-costs token", func(t *testing.T) {
		e := NewEngine(nil, nil, nil)
		ctx := &Context{Engine: e, PC: 0}
		info := &ir.LibfuncDescriptor{Family: "gas", Selector: "builtin_withdraw_gas"}

		action, err := evalGas(nil, info, []value.Value{value.Unit, value.Unit}, ctx)
		require.NoError(t, err)

		branch := action.(NormalBranch)
		require.Equal(t, 0, branch.Branch)
		require.Len(t, branch.Results, 3)
	})

	t.Run("redeposit_gas adds back the statement's cost", func(t *testing.T) {
		e := NewEngine(nil, nil, nil)
		e.SetAvailableGas(5)
		ctx := &Context{Engine: e, PC: 0}
		info := &ir.LibfuncDescriptor{Family: "gas", Selector: "redeposit_gas"}

		_, err := evalGas(nil, info, []value.Value{value.Unit}, ctx)
		require.NoError(t, err)
		require.Equal(t, uint64(5), e.AvailableGas(), "zero-cost statement redeposits nothing")
	})

	t.Run("get_builtin_costs returns a Unit token", func(t *testing.T) {
		e := NewEngine(nil, nil, nil)
		ctx := &Context{Engine: e, PC: 0}
		info := &ir.LibfuncDescriptor{Family: "gas", Selector: "get_builtin_costs"}

		action, err := evalGas(nil, info, nil, ctx)
		require.NoError(t, err)
		branch := action.(NormalBranch)
		require.Equal(t, []value.Value{value.Unit}, branch.Results)
	})

	t.Run("unknown selector is fatal", func(t *testing.T) {
		e := NewEngine(nil, nil, nil)
		ctx := &Context{Engine: e, PC: 0}
		info := &ir.LibfuncDescriptor{Family: "gas", Selector: "bogus"}

		_, err := evalGas(nil, info, nil, ctx)
		require.Error(t, err)
	})
}
