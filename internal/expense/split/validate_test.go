package split_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okadri/splitmate/internal/expense/split"
)

func TestValidator_IsValid(t *testing.T) {
	factory := split.NewFactory(split.DefaultLimits())
	validator := split.NewValidator(0.01, 0.1)

	type testCase struct {
		name      string
		splitType split.SplitType
		total     float64
		inputs    map[int64]split.Input
		want      bool
	}

	tests := []testCase{
		{
			name:      "EqualTwoParticipants",
			splitType: split.SplitTypeEqual,
			total:     100,
			inputs:    map[int64]split.Input{1: {}, 2: {}},
			want:      true,
		},
		{
			name:      "EqualSingleParticipant",
			splitType: split.SplitTypeEqual,
			total:     100,
			inputs:    map[int64]split.Input{1: {}},
			want:      false,
		},
		{
			name:      "ExactBalanced",
			splitType: split.SplitTypeExact,
			total:     100,
			inputs: map[int64]split.Input{
				1: {Amount: amountPtr(60)},
				2: {Amount: amountPtr(40)},
			},
			want: true,
		},
		{
			name:      "ExactOffByMoreThanACent",
			splitType: split.SplitTypeExact,
			total:     100,
			inputs: map[int64]split.Input{
				1: {Amount: amountPtr(60)},
				2: {Amount: amountPtr(39.98)},
			},
			want: false,
		},
		{
			name:      "ExactWithinTolerance",
			splitType: split.SplitTypeExact,
			total:     100,
			inputs: map[int64]split.Input{
				1: {Amount: amountPtr(60)},
				2: {Amount: amountPtr(39.995)},
			},
			want: true,
		},
		{
			name:      "PercentagesSumToHundred",
			splitType: split.SplitTypePercentage,
			total:     90,
			inputs: map[int64]split.Input{
				1: {Percentage: amountPtr(40)},
				2: {Percentage: amountPtr(40)},
				3: {Percentage: amountPtr(20)},
			},
			want: true,
		},
		{
			name:      "PercentagesShort",
			splitType: split.SplitTypePercentage,
			total:     90,
			inputs: map[int64]split.Input{
				1: {Percentage: amountPtr(40)},
				2: {Percentage: amountPtr(40)},
			},
			want: false,
		},
		{
			name:      "SharesTwoParticipants",
			splitType: split.SplitTypeShares,
			total:     50,
			inputs: map[int64]split.Input{
				1: {Shares: sharesPtr(1)},
				2: {Shares: sharesPtr(3)},
			},
			want: true,
		},
		{
			name:      "SharesAllZero",
			splitType: split.SplitTypeShares,
			total:     50,
			inputs: map[int64]split.Input{
				1: {Shares: sharesPtr(0)},
				2: {Shares: sharesPtr(0)},
			},
			want: false,
		},
		{
			name:      "AdjustmentAlwaysValid",
			splitType: split.SplitTypeAdjustment,
			total:     100,
			inputs: map[int64]split.Input{
				1: {Adjustment: amountPtr(-200)},
				2: {},
			},
			want: true,
		},
		{
			name:      "ZeroTotalNeverValid",
			splitType: split.SplitTypeExact,
			total:     0,
			inputs: map[int64]split.Input{
				1: {Amount: amountPtr(0)},
				2: {Amount: amountPtr(0)},
			},
			want: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			strategy, err := factory.Create(tc.splitType)
			require.NoError(t, err)

			allocations := strategy.Calculate(tc.total, tc.inputs)

			assert.Equal(t, tc.want, validator.IsValid(tc.splitType, tc.total, allocations))
		})
	}
}

func TestValidator_PercentageRoundTrip(t *testing.T) {
	// Assigning every participant 100/n should always validate,
	// including counts where 100/n is not exact in binary.
	factory := split.NewFactory(split.DefaultLimits())
	validator := split.NewValidator(0.01, 0.1)
	strategy, err := factory.Create(split.SplitTypePercentage)
	require.NoError(t, err)

	for n := 2; n <= 9; n++ {
		inputs := make(map[int64]split.Input, n)
		for id := int64(1); id <= int64(n); id++ {
			inputs[id] = split.Input{Percentage: amountPtr(100 / float64(n))}
		}

		allocations := strategy.Calculate(120, inputs)

		assert.True(t, validator.IsValid(split.SplitTypePercentage, 120, allocations), "n=%d", n)
	}
}

func TestValidator_Remainder(t *testing.T) {
	factory := split.NewFactory(split.DefaultLimits())
	validator := split.NewValidator(0.01, 0.1)

	t.Run("ExactReportsUnallocated", func(t *testing.T) {
		strategy, err := factory.Create(split.SplitTypeExact)
		require.NoError(t, err)

		inputs := map[int64]split.Input{
			1: {Amount: amountPtr(30)},
			2: {Amount: amountPtr(20)},
		}
		allocations := strategy.Calculate(100, inputs)

		assert.InDelta(t, 50.0, validator.Remainder(split.SplitTypeExact, 100, allocations), 1e-9)
	})

	t.Run("OverAllocationFloorsAtZero", func(t *testing.T) {
		strategy, err := factory.Create(split.SplitTypeExact)
		require.NoError(t, err)

		inputs := map[int64]split.Input{
			1: {Amount: amountPtr(90)},
			2: {Amount: amountPtr(90)},
		}
		allocations := strategy.Calculate(100, inputs)

		assert.Zero(t, validator.Remainder(split.SplitTypeExact, 100, allocations))
	})

	t.Run("PercentageRemaining", func(t *testing.T) {
		strategy, err := factory.Create(split.SplitTypePercentage)
		require.NoError(t, err)

		inputs := map[int64]split.Input{
			1: {Percentage: amountPtr(40)},
			2: {Percentage: amountPtr(35)},
		}
		allocations := strategy.Calculate(200, inputs)

		assert.InDelta(t, 50.0, validator.Remainder(split.SplitTypePercentage, 200, allocations), 1e-9)
		assert.InDelta(t, 25.0, validator.RemainingPercentage(split.SplitTypePercentage, allocations), 1e-9)
	})

	t.Run("EqualHasNoRemainder", func(t *testing.T) {
		strategy, err := factory.Create(split.SplitTypeEqual)
		require.NoError(t, err)

		allocations := strategy.Calculate(100, map[int64]split.Input{1: {}, 2: {}, 3: {}})

		assert.Zero(t, validator.Remainder(split.SplitTypeEqual, 100, allocations))
		assert.Zero(t, validator.RemainingPercentage(split.SplitTypeEqual, allocations))
	})
}
