package vm

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/feltvm/sierra-emu/internal/sierraemu/ir"
	"github.com/feltvm/sierra-emu/internal/sierraemu/value"
)

func TestEvalBoundedIntTrimMin(t *testing.T) {
	i8Range := ir.IntRange{Lo: -128, Hi: 128}
	info := &ir.LibfuncDescriptor{Family: "bounded_int", Selector: "trim_min"}

	t.Run("value at the minimum takes branch 0 and is dropped", func(t *testing.T) {
		action, err := evalBoundedInt(nil, info, []value.Value{
			value.NewBoundedInt(i8Range, big.NewInt(-128)),
		}, nil)
		require.NoError(t, err)

		branch := action.(NormalBranch)
		require.Equal(t, 0, branch.Branch)
		require.Empty(t, branch.Results)
	})

	t.Run("value above the minimum takes branch 1 with a shifted range", func(t *testing.T) {
		action, err := evalBoundedInt(nil, info, []value.Value{
			value.NewBoundedInt(i8Range, big.NewInt(5)),
		}, nil)
		require.NoError(t, err)

		branch := action.(NormalBranch)
		require.Equal(t, 1, branch.Branch)
		require.Equal(t, ir.IntRange{Lo: -127, Hi: 129}, branch.Results[0].BoundedRange)
		require.Equal(t, int64(5), branch.Results[0].Big.Int64())
	})
}

func TestEvalBoundedIntDivRemByZeroIsFatal(t *testing.T) {
	rng := ir.IntRange{Lo: 0, Hi: 1000}
	info := &ir.LibfuncDescriptor{Family: "bounded_int", Selector: "div_rem"}
	_, err := evalBoundedInt(nil, info, []value.Value{
		value.Unit,
		value.NewBoundedInt(rng, big.NewInt(10)),
		value.NewBoundedInt(rng, big.NewInt(0)),
	}, nil)
	require.Error(t, err)
}
