package expense_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okadri/splitmate/internal/expense"
	"github.com/okadri/splitmate/internal/expense/split"
)

func TestBuildSplitRows(t *testing.T) {
	t.Run("SkipsPayerAndOrdersByBorrower", func(t *testing.T) {
		allocations := map[int64]split.Allocation{
			3: {Amount: 25},
			1: {Amount: 25}, // payer
			2: {Amount: 25},
			4: {Amount: 25},
		}

		rows := expense.BuildSplitRows(1, allocations)

		require.Len(t, rows, 3)
		assert.Equal(t, int64(2), rows[0].BorrowerID)
		assert.Equal(t, int64(3), rows[1].BorrowerID)
		assert.Equal(t, int64(4), rows[2].BorrowerID)
		for _, row := range rows {
			assert.Equal(t, 25.0, row.AmountOwed)
		}
	})

	t.Run("RoundsToCents", func(t *testing.T) {
		// 100 / 3 is not representable in cents; persisted rows are.
		allocations := map[int64]split.Allocation{
			1: {Amount: 100.0 / 3},
			2: {Amount: 100.0 / 3},
			3: {Amount: 100.0 / 3},
		}

		rows := expense.BuildSplitRows(1, allocations)

		require.Len(t, rows, 2)
		assert.Equal(t, 33.33, rows[0].AmountOwed)
		assert.Equal(t, 33.33, rows[1].AmountOwed)
	})

	t.Run("DropsZeroShares", func(t *testing.T) {
		// A share clamped to zero by a large negative adjustment owes
		// nothing and gets no debt row.
		allocations := map[int64]split.Allocation{
			1: {Amount: 150},
			2: {Amount: 0, Adjustment: -200},
		}

		rows := expense.BuildSplitRows(1, allocations)

		assert.Empty(t, rows)
	})
}
