package split

import "math"

// Validator decides whether a computed allocation is balanced against
// the total, and reports how much remains unallocated. Tolerances are
// injected so the balance epsilons are a configuration decision.
type Validator struct {
	amountTolerance  float64
	percentTolerance float64
}

// NewValidator creates a validator. Non-positive tolerances fall back
// to the defaults: 0.01 on amounts, 0.1 on percentages.
func NewValidator(amountTolerance, percentTolerance float64) *Validator {
	if amountTolerance <= 0 {
		amountTolerance = 0.01
	}
	if percentTolerance <= 0 {
		percentTolerance = 0.1
	}
	return &Validator{
		amountTolerance:  amountTolerance,
		percentTolerance: percentTolerance,
	}
}

// IsValid reports whether the allocation is balanced and fit to
// finalize. An empty allocation map is never valid: it means the
// split is not yet computable (no participants, zero total, or zero
// total shares).
func (v *Validator) IsValid(splitType SplitType, total float64, allocations map[int64]Allocation) bool {
	if len(allocations) == 0 {
		return false
	}

	switch splitType {
	case SplitTypeEqual:
		return len(allocations) >= 2
	case SplitTypeExact:
		return math.Abs(sumAmounts(allocations)-sanitizeAmount(total)) < v.amountTolerance
	case SplitTypePercentage:
		return math.Abs(sumPercentages(allocations)-100) < v.percentTolerance
	case SplitTypeShares:
		return len(allocations) >= 2
	case SplitTypeAdjustment:
		// Adjustments are optional; the even base always resolves.
		return true
	default:
		return false
	}
}

// Remainder returns how much of the total is still unallocated,
// floored at 0. For EXACT and PERCENTAGE it feeds a "still need to
// allocate X" indicator. Purely informational: IsValid is the gate
// for finalization.
func (v *Validator) Remainder(splitType SplitType, total float64, allocations map[int64]Allocation) float64 {
	switch splitType {
	case SplitTypeExact, SplitTypePercentage, SplitTypeAdjustment:
		remaining := sanitizeAmount(total) - sumAmounts(allocations)
		if remaining < 0 {
			return 0
		}
		return remaining
	default:
		return 0
	}
}

// RemainingPercentage returns the percentage of the total still
// unassigned, floored at 0.
func (v *Validator) RemainingPercentage(splitType SplitType, allocations map[int64]Allocation) float64 {
	switch splitType {
	case SplitTypeExact, SplitTypePercentage:
		remaining := 100 - sumPercentages(allocations)
		if remaining < 0 {
			return 0
		}
		return remaining
	default:
		return 0
	}
}

func sumAmounts(allocations map[int64]Allocation) float64 {
	var sum float64
	for _, a := range allocations {
		sum += a.Amount
	}
	return sum
}

func sumPercentages(allocations map[int64]Allocation) float64 {
	var sum float64
	for _, a := range allocations {
		sum += a.Percentage
	}
	return sum
}
