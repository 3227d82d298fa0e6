package split_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okadri/splitmate/internal/expense/split"
)

func TestAdjustmentStrategy_Calculate(t *testing.T) {
	strategy := newStrategy(t, split.SplitTypeAdjustment)

	t.Run("PlusTenMinusTen", func(t *testing.T) {
		inputs := map[int64]split.Input{
			1: {Adjustment: amountPtr(10)},
			2: {Adjustment: amountPtr(-10)},
		}

		allocations := strategy.Calculate(100, inputs)

		require.Len(t, allocations, 2)
		assert.InDelta(t, 60.0, allocations[1].Amount, 1e-9)
		assert.InDelta(t, 40.0, allocations[2].Amount, 1e-9)
		assert.InDelta(t, 60.0, allocations[1].Percentage, 1e-9)
		assert.Equal(t, 10.0, allocations[1].Adjustment)
		assert.Equal(t, -10.0, allocations[2].Adjustment)
	})

	t.Run("MissingAdjustmentDefaultsToZero", func(t *testing.T) {
		inputs := map[int64]split.Input{1: {}, 2: {}}

		allocations := strategy.Calculate(100, inputs)

		assert.InDelta(t, 50.0, allocations[1].Amount, 1e-9)
		assert.InDelta(t, 50.0, allocations[2].Amount, 1e-9)
	})

	t.Run("LargeNegativeAdjustmentClampsToZero", func(t *testing.T) {
		// base = (100 - (-200)) / 2 = 150; participant 1 lands at
		// 150 - 200 = -50 and is clamped to 0.
		inputs := map[int64]split.Input{
			1: {Adjustment: amountPtr(-200)},
			2: {Adjustment: amountPtr(0)},
		}

		allocations := strategy.Calculate(100, inputs)

		assert.Zero(t, allocations[1].Amount)
		assert.InDelta(t, 150.0, allocations[2].Amount, 1e-9)
		// Clamping breaks the reconciliation with the total; the
		// validator reports that, the strategy does not hide it.
		assert.NotEqual(t, 100.0, allocations[1].Amount+allocations[2].Amount)
	})

	t.Run("NoParticipants", func(t *testing.T) {
		assert.Empty(t, strategy.Calculate(100, map[int64]split.Input{}))
	})
}
