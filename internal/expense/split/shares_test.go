package split_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okadri/splitmate/internal/expense/split"
)

func TestSharesStrategy_Calculate(t *testing.T) {
	strategy := newStrategy(t, split.SplitTypeShares)

	t.Run("OneToThree", func(t *testing.T) {
		inputs := map[int64]split.Input{
			1: {Shares: sharesPtr(1)},
			2: {Shares: sharesPtr(3)},
		}

		allocations := strategy.Calculate(50, inputs)

		require.Len(t, allocations, 2)
		assert.InDelta(t, 12.5, allocations[1].Amount, 1e-9)
		assert.InDelta(t, 37.5, allocations[2].Amount, 1e-9)
		assert.InDelta(t, 25.0, allocations[1].Percentage, 1e-9)
		assert.InDelta(t, 75.0, allocations[2].Percentage, 1e-9)
		assert.Equal(t, 1, allocations[1].Shares)
		assert.Equal(t, 3, allocations[2].Shares)
	})

	t.Run("MissingSharesDefaultToOne", func(t *testing.T) {
		inputs := map[int64]split.Input{1: {}, 2: {}}

		allocations := strategy.Calculate(50, inputs)

		assert.InDelta(t, 25.0, allocations[1].Amount, 1e-9)
		assert.Equal(t, 1, allocations[1].Shares)
	})

	t.Run("SharesClampedToCeiling", func(t *testing.T) {
		inputs := map[int64]split.Input{
			1: {Shares: sharesPtr(50)},
			2: {Shares: sharesPtr(10)},
		}

		allocations := strategy.Calculate(100, inputs)

		assert.Equal(t, 10, allocations[1].Shares)
		assert.InDelta(t, 50.0, allocations[1].Amount, 1e-9)
	})

	t.Run("AllZeroSharesYieldsEmptyMap", func(t *testing.T) {
		// Unreachable through the clamped setter, but hand-built
		// inputs must not divide by zero.
		inputs := map[int64]split.Input{
			1: {Shares: sharesPtr(0)},
			2: {Shares: sharesPtr(-4)},
		}

		assert.Empty(t, strategy.Calculate(100, inputs))
	})

	t.Run("ZeroTotal", func(t *testing.T) {
		inputs := map[int64]split.Input{1: {Shares: sharesPtr(2)}}
		assert.Empty(t, strategy.Calculate(0, inputs))
	})
}
