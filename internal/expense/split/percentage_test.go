package split_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okadri/splitmate/internal/expense/split"
)

func TestPercentageStrategy_Calculate(t *testing.T) {
	strategy := newStrategy(t, split.SplitTypePercentage)

	t.Run("FortyFortyTwenty", func(t *testing.T) {
		inputs := map[int64]split.Input{
			1: {Percentage: amountPtr(40)},
			2: {Percentage: amountPtr(40)},
			3: {Percentage: amountPtr(20)},
		}

		allocations := strategy.Calculate(90, inputs)

		require.Len(t, allocations, 3)
		assert.InDelta(t, 36.0, allocations[1].Amount, 1e-9)
		assert.InDelta(t, 36.0, allocations[2].Amount, 1e-9)
		assert.InDelta(t, 18.0, allocations[3].Amount, 1e-9)
		assert.Equal(t, 40.0, allocations[1].Percentage)
		assert.Equal(t, 20.0, allocations[3].Percentage)
	})

	t.Run("PercentageClampedToRange", func(t *testing.T) {
		inputs := map[int64]split.Input{
			1: {Percentage: amountPtr(150)},
			2: {Percentage: amountPtr(-30)},
		}

		allocations := strategy.Calculate(200, inputs)

		assert.Equal(t, 100.0, allocations[1].Percentage)
		assert.Equal(t, 200.0, allocations[1].Amount)
		assert.Zero(t, allocations[2].Percentage)
		assert.Zero(t, allocations[2].Amount)
	})

	t.Run("MissingPercentageDefaultsToZero", func(t *testing.T) {
		inputs := map[int64]split.Input{1: {Percentage: amountPtr(100)}, 2: {}}

		allocations := strategy.Calculate(80, inputs)

		assert.Zero(t, allocations[2].Amount)
	})

	t.Run("NoParticipants", func(t *testing.T) {
		assert.Empty(t, strategy.Calculate(80, map[int64]split.Input{}))
	})
}

func TestPercentageStrategy_DefaultInput(t *testing.T) {
	strategy := newStrategy(t, split.SplitTypePercentage)

	in := strategy.DefaultInput(90, 4)
	require.NotNil(t, in.Percentage)
	assert.Equal(t, 25.0, *in.Percentage)
}
