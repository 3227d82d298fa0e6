package split

// =============================================================================
// EXACT SPLIT STRATEGY
// Each participant owes the specific amount entered for them
// =============================================================================

// ExactStrategy implements the Strategy interface for exact amount splits
type ExactStrategy struct{}

// Type returns the split type identifier
func (s *ExactStrategy) Type() SplitType {
	return SplitTypeExact
}

// Calculate takes each participant's entered amount verbatim. The
// amounts are not forced to sum to the total; the validator reports
// the mismatch as a remainder instead.
func (s *ExactStrategy) Calculate(total float64, inputs map[int64]Input) map[int64]Allocation {
	total = sanitizeAmount(total)
	if len(inputs) == 0 || total <= 0 {
		return map[int64]Allocation{}
	}

	out := make(map[int64]Allocation, len(inputs))
	for id, in := range inputs {
		var amount float64
		if in.Amount != nil {
			amount = sanitizeAmount(*in.Amount)
		}
		out[id] = Allocation{
			Amount:     amount,
			Percentage: amount / total * 100,
			Shares:     1,
		}
	}
	return out
}

// DefaultInput starts a joining participant at an even share of the
// total, so the draft opens balanced.
func (s *ExactStrategy) DefaultInput(total float64, n int) Input {
	if n <= 0 {
		return Input{Amount: amountPtr(0)}
	}
	return Input{Amount: amountPtr(sanitizeAmount(total) / float64(n))}
}
