package split

// =============================================================================
// SHARES SPLIT STRATEGY
// Divides the total proportionally to each participant's share count
// =============================================================================

// SharesStrategy implements the Strategy interface for share-based splits
type SharesStrategy struct {
	limits Limits
}

// Type returns the split type identifier
func (s *SharesStrategy) Type() SplitType {
	return SplitTypeShares
}

// Calculate weights each participant by their share count. A missing
// share count defaults to 1. Counts above the ceiling are clamped
// down; negative counts clamp to 0 so a hand-built zero-share input
// set yields an empty map instead of a division by zero.
func (s *SharesStrategy) Calculate(total float64, inputs map[int64]Input) map[int64]Allocation {
	total = sanitizeAmount(total)
	if len(inputs) == 0 || total <= 0 {
		return map[int64]Allocation{}
	}

	counts := make(map[int64]int, len(inputs))
	sum := 0
	for id, in := range inputs {
		count := 1
		if in.Shares != nil {
			count = *in.Shares
			if count < 0 {
				count = 0
			}
			if count > s.limits.MaxShares {
				count = s.limits.MaxShares
			}
		}
		counts[id] = count
		sum += count
	}
	if sum == 0 {
		return map[int64]Allocation{}
	}

	out := make(map[int64]Allocation, len(inputs))
	for id, count := range counts {
		weight := float64(count) / float64(sum)
		out[id] = Allocation{
			Amount:     weight * total,
			Percentage: weight * 100,
			Shares:     count,
		}
	}
	return out
}

// DefaultInput starts a joining participant at a single share.
func (s *SharesStrategy) DefaultInput(total float64, n int) Input {
	return Input{Shares: sharesPtr(1)}
}
