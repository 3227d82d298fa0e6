package split_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okadri/splitmate/internal/expense/split"
)

func TestFactory_Create(t *testing.T) {
	factory := split.NewFactory(split.DefaultLimits())

	for _, splitType := range []split.SplitType{
		split.SplitTypeEqual,
		split.SplitTypeExact,
		split.SplitTypePercentage,
		split.SplitTypeShares,
		split.SplitTypeAdjustment,
	} {
		strategy, err := factory.Create(splitType)
		require.NoError(t, err)
		assert.Equal(t, splitType, strategy.Type())
	}
}

func TestFactory_CreateFromString(t *testing.T) {
	factory := split.NewFactory(split.DefaultLimits())

	strategy, err := factory.CreateFromString("SHARES")
	require.NoError(t, err)
	assert.Equal(t, split.SplitTypeShares, strategy.Type())

	_, err = factory.CreateFromString("FIBONACCI")
	assert.ErrorIs(t, err, split.ErrUnknownSplitType)
}

func TestNewFactory_NormalizesLimits(t *testing.T) {
	factory := split.NewFactory(split.Limits{MinShares: 0, MaxShares: -5})

	limits := factory.Limits()
	assert.Equal(t, 1, limits.MinShares)
	assert.GreaterOrEqual(t, limits.MaxShares, limits.MinShares)
}

func TestFactory_ConfigurableSharesCeiling(t *testing.T) {
	factory := split.NewFactory(split.Limits{MinShares: 1, MaxShares: 3})
	strategy, err := factory.Create(split.SplitTypeShares)
	require.NoError(t, err)

	inputs := map[int64]split.Input{
		1: {Shares: sharesPtr(9)},
		2: {Shares: sharesPtr(1)},
	}

	allocations := strategy.Calculate(100, inputs)

	assert.Equal(t, 3, allocations[1].Shares)
	assert.InDelta(t, 75.0, allocations[1].Amount, 1e-9)
}
