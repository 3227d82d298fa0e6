package split

// =============================================================================
// PERCENTAGE SPLIT STRATEGY
// Divides the total based on the percentage entered for each participant
// =============================================================================

// PercentageStrategy implements the Strategy interface for percentage-based splits
type PercentageStrategy struct{}

// Type returns the split type identifier
func (s *PercentageStrategy) Type() SplitType {
	return SplitTypePercentage
}

// Calculate allocates each participant their percentage of the total.
// Raw percentages are clamped to [0, 100]; they are not forced to sum
// to 100 here, the validator reports that.
func (s *PercentageStrategy) Calculate(total float64, inputs map[int64]Input) map[int64]Allocation {
	total = sanitizeAmount(total)
	if len(inputs) == 0 || total <= 0 {
		return map[int64]Allocation{}
	}

	out := make(map[int64]Allocation, len(inputs))
	for id, in := range inputs {
		var percentage float64
		if in.Percentage != nil {
			percentage = clampPercentage(*in.Percentage)
		}
		out[id] = Allocation{
			Amount:     percentage / 100 * total,
			Percentage: percentage,
			Shares:     1,
		}
	}
	return out
}

// DefaultInput starts a joining participant at an even percentage.
func (s *PercentageStrategy) DefaultInput(total float64, n int) Input {
	if n <= 0 {
		return Input{Percentage: amountPtr(0)}
	}
	return Input{Percentage: amountPtr(100 / float64(n))}
}
