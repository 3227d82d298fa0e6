package split_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okadri/splitmate/internal/expense/split"
)

func amountPtr(v float64) *float64 { return &v }
func sharesPtr(v int) *int         { return &v }

func TestExactStrategy_Calculate(t *testing.T) {
	strategy := newStrategy(t, split.SplitTypeExact)

	t.Run("UsesEnteredAmounts", func(t *testing.T) {
		inputs := map[int64]split.Input{
			1: {Amount: amountPtr(60)},
			2: {Amount: amountPtr(40)},
		}

		allocations := strategy.Calculate(100, inputs)

		require.Len(t, allocations, 2)
		assert.Equal(t, 60.0, allocations[1].Amount)
		assert.Equal(t, 60.0, allocations[1].Percentage)
		assert.Equal(t, 40.0, allocations[2].Amount)
		assert.Equal(t, 40.0, allocations[2].Percentage)
	})

	t.Run("MissingAmountDefaultsToZero", func(t *testing.T) {
		inputs := map[int64]split.Input{
			1: {Amount: amountPtr(100)},
			2: {},
		}

		allocations := strategy.Calculate(100, inputs)

		assert.Zero(t, allocations[2].Amount)
		assert.Zero(t, allocations[2].Percentage)
	})

	t.Run("NegativeAmountClampedToZero", func(t *testing.T) {
		inputs := map[int64]split.Input{
			1: {Amount: amountPtr(-20)},
			2: {Amount: amountPtr(50)},
		}

		allocations := strategy.Calculate(100, inputs)

		assert.Zero(t, allocations[1].Amount)
	})

	t.Run("AmountsMayExceedTotal", func(t *testing.T) {
		// Imbalance is the validator's concern, not the strategy's.
		inputs := map[int64]split.Input{
			1: {Amount: amountPtr(90)},
			2: {Amount: amountPtr(90)},
		}

		allocations := strategy.Calculate(100, inputs)

		assert.Equal(t, 90.0, allocations[1].Amount)
		assert.Equal(t, 90.0, allocations[2].Amount)
	})

	t.Run("ZeroTotal", func(t *testing.T) {
		inputs := map[int64]split.Input{1: {Amount: amountPtr(10)}}
		assert.Empty(t, strategy.Calculate(0, inputs))
	})
}

func TestExactStrategy_DefaultInput(t *testing.T) {
	strategy := newStrategy(t, split.SplitTypeExact)

	in := strategy.DefaultInput(90, 3)
	require.NotNil(t, in.Amount)
	assert.Equal(t, 30.0, *in.Amount)
}
