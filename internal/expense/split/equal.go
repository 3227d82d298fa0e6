package split

// =============================================================================
// EQUAL SPLIT STRATEGY
// Divides the total evenly among all participants
// =============================================================================

// EqualStrategy implements the Strategy interface for even splits
type EqualStrategy struct{}

// Type returns the split type identifier
func (s *EqualStrategy) Type() SplitType {
	return SplitTypeEqual
}

// Calculate gives every participant an identical share of the total.
// No raw input is consulted.
func (s *EqualStrategy) Calculate(total float64, inputs map[int64]Input) map[int64]Allocation {
	total = sanitizeAmount(total)
	n := len(inputs)
	if n == 0 || total <= 0 {
		return map[int64]Allocation{}
	}

	share := total / float64(n)
	percentage := 100 / float64(n)

	out := make(map[int64]Allocation, n)
	for id := range inputs {
		out[id] = Allocation{
			Amount:     share,
			Percentage: percentage,
			Shares:     1,
		}
	}
	return out
}

// DefaultInput returns an empty input; equal splits need none.
func (s *EqualStrategy) DefaultInput(total float64, n int) Input {
	return Input{}
}
