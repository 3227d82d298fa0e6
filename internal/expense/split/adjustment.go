package split

// =============================================================================
// ADJUSTMENT SPLIT STRATEGY
// Splits evenly after setting aside per-participant plus/minus deltas
// =============================================================================

// AdjustmentStrategy implements the Strategy interface for adjusted even splits
type AdjustmentStrategy struct{}

// Type returns the split type identifier
func (s *AdjustmentStrategy) Type() SplitType {
	return SplitTypeAdjustment
}

// Calculate subtracts the sum of all adjustments from the total,
// splits the rest evenly, then applies each participant's adjustment
// on top of their even base. A large negative adjustment can drive a
// share below zero; it is clamped to 0, which leaves the displayed
// amounts summing above the total. That drift is visible in the
// summary rather than hidden.
func (s *AdjustmentStrategy) Calculate(total float64, inputs map[int64]Input) map[int64]Allocation {
	total = sanitizeAmount(total)
	n := len(inputs)
	if n == 0 || total <= 0 {
		return map[int64]Allocation{}
	}

	adjustments := make(map[int64]float64, n)
	var adjusted float64
	for id, in := range inputs {
		var delta float64
		if in.Adjustment != nil {
			delta = sanitizeSigned(*in.Adjustment)
		}
		adjustments[id] = delta
		adjusted += delta
	}

	base := (total - adjusted) / float64(n)

	out := make(map[int64]Allocation, n)
	for id, delta := range adjustments {
		amount := base + delta
		if amount < 0 {
			amount = 0
		}
		out[id] = Allocation{
			Amount:     amount,
			Percentage: amount / total * 100,
			Shares:     1,
			Adjustment: delta,
		}
	}
	return out
}

// DefaultInput starts a joining participant with no adjustment.
func (s *AdjustmentStrategy) DefaultInput(total float64, n int) Input {
	return Input{Adjustment: amountPtr(0)}
}
