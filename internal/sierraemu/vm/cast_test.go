package vm

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/feltvm/sierra-emu/internal/sierraemu/ir"
	"github.com/feltvm/sierra-emu/internal/sierraemu/value"
)

func TestEvalCastUpcast(t *testing.T) {
	info := &ir.LibfuncDescriptor{Family: "cast", Selector: "upcast", Data: "u64"}
	action, err := evalCast(nil, info, []value.Value{value.NewUint(32, 9)}, nil)
	require.NoError(t, err)
	branch := action.(NormalBranch)
	require.Equal(t, 0, branch.Branch)
	require.Equal(t, value.KindU64, branch.Results[0].Kind)
	require.Equal(t, uint64(9), branch.Results[0].Int)
}

func TestEvalCastDowncast(t *testing.T) {
	info := &ir.LibfuncDescriptor{Family: "cast", Selector: "downcast", Data: "u8"}

	t.Run("in range threads the range_check token through branch 0", func(t *testing.T) {
		action, err := evalCast(nil, info, []value.Value{value.Unit, value.NewUint(32, 200)}, nil)
		require.NoError(t, err)
		branch := action.(NormalBranch)
		require.Equal(t, 0, branch.Branch)
		require.Equal(t, value.Unit, branch.Results[0])
		require.Equal(t, uint64(200), branch.Results[1].Int)
	})

	t.Run("out of range takes branch 1 with only the range_check token", func(t *testing.T) {
		action, err := evalCast(nil, info, []value.Value{value.Unit, value.NewUint(32, 300)}, nil)
		require.NoError(t, err)
		branch := action.(NormalBranch)
		require.Equal(t, 1, branch.Branch)
		require.Equal(t, []value.Value{value.Unit}, branch.Results)
	})
}
