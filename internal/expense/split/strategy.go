package split

import (
	"errors"
	"fmt"
	"math"
)

// SplitType identifies one of the five allocation strategies.
type SplitType string

const (
	SplitTypeEqual      SplitType = "EQUAL"
	SplitTypeExact      SplitType = "EXACT"
	SplitTypePercentage SplitType = "PERCENTAGE"
	SplitTypeShares     SplitType = "SHARES"
	SplitTypeAdjustment SplitType = "ADJUSTMENT"
)

// Input holds the raw per-participant values entered by the user.
// Only the field matching the active strategy is read; the others are
// retained untouched so switching back to a strategy is cheap.
type Input struct {
	Amount     *float64 `json:"amount,omitempty"`     // EXACT
	Percentage *float64 `json:"percentage,omitempty"` // PERCENTAGE
	Shares     *int     `json:"shares,omitempty"`     // SHARES, defaults to 1
	Adjustment *float64 `json:"adjustment,omitempty"` // ADJUSTMENT, signed, defaults to 0
}

// Allocation is the computed result for a single participant. It is
// always derived from Inputs, never edited directly.
type Allocation struct {
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
	Shares     int     `json:"shares"`
	Adjustment float64 `json:"adjustment"`
}

// Limits carries the clamping bounds the strategies apply to raw
// inputs. Passed in explicitly rather than read from a global.
type Limits struct {
	MinShares int
	MaxShares int
}

// DefaultLimits returns the standard bounds: between 1 and 10 shares
// per participant.
func DefaultLimits() Limits {
	return Limits{MinShares: 1, MaxShares: 10}
}

// Strategy is the interface all five split strategies implement.
type Strategy interface {
	// Type returns the strategy identifier.
	Type() SplitType

	// Calculate allocates total across the participants keyed in
	// inputs. An empty participant set or a non-positive total yields
	// an empty map, which callers treat as "not yet computable".
	Calculate(total float64, inputs map[int64]Input) map[int64]Allocation

	// DefaultInput returns the raw input a participant joining a
	// split of n people should start with under this strategy.
	DefaultInput(total float64, n int) Input
}

// Factory creates split strategies based on the requested type.
type Factory struct {
	limits Limits
}

// NewFactory creates a strategy factory with the given clamping bounds.
func NewFactory(limits Limits) *Factory {
	if limits.MinShares < 1 {
		limits.MinShares = 1
	}
	if limits.MaxShares < limits.MinShares {
		limits.MaxShares = limits.MinShares
	}
	return &Factory{limits: limits}
}

// Create returns the strategy implementation for the given type.
func (f *Factory) Create(splitType SplitType) (Strategy, error) {
	switch splitType {
	case SplitTypeEqual:
		return &EqualStrategy{}, nil
	case SplitTypeExact:
		return &ExactStrategy{}, nil
	case SplitTypePercentage:
		return &PercentageStrategy{}, nil
	case SplitTypeShares:
		return &SharesStrategy{limits: f.limits}, nil
	case SplitTypeAdjustment:
		return &AdjustmentStrategy{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownSplitType, splitType)
	}
}

// CreateFromString creates a strategy from a string type (useful for API requests)
func (f *Factory) CreateFromString(splitType string) (Strategy, error) {
	return f.Create(SplitType(splitType))
}

// Limits returns the clamping bounds this factory hands to its strategies.
func (f *Factory) Limits() Limits {
	return f.limits
}

var ErrUnknownSplitType = errors.New("unknown split type")

// sanitizeAmount maps non-finite or negative monetary values to 0.
func sanitizeAmount(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// sanitizeSigned maps non-finite values to 0 but keeps the sign.
func sanitizeSigned(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// clampPercentage keeps a raw percentage within [0, 100].
func clampPercentage(v float64) float64 {
	v = sanitizeSigned(v)
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func amountPtr(v float64) *float64 { return &v }
func sharesPtr(v int) *int         { return &v }
