package expense

import (
	"time"

	"github.com/okadri/splitmate/internal/expense/split"
)

// SplitStatus represents the status of a split
type SplitStatus string

const (
	SplitStatusPending   SplitStatus = "PENDING"
	SplitStatusPaid      SplitStatus = "PAID"
	SplitStatusConfirmed SplitStatus = "CONFIRMED"
	SplitStatusDisputed  SplitStatus = "DISPUTED"
)

// Expense represents a finalized shared expense
type Expense struct {
	ID          int64     `json:"id"`
	GroupID     int64     `json:"group_id"`
	PayerID     int64     `json:"payer_id"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	SplitType   string    `json:"split_type"` // EQUAL, EXACT, PERCENTAGE, SHARES, ADJUSTMENT
	CreatedAt   time.Time `json:"created_at"`

	// Populated via JOIN
	PayerName string `json:"payer_name,omitempty"`
}

// Split represents an individual debt from an expense
type Split struct {
	ID            int64       `json:"id"`
	ExpenseID     int64       `json:"expense_id"`
	BorrowerID    int64       `json:"borrower_id"`
	AmountOwed    float64     `json:"amount_owed"`
	Status        SplitStatus `json:"status"`
	DisputeReason *string     `json:"dispute_reason,omitempty"`
	UpdatedAt     time.Time   `json:"updated_at"`

	// Populated via JOIN
	BorrowerName string `json:"borrower_name,omitempty"`
}

// ExpenseWithSplits combines an expense with its calculated splits
type ExpenseWithSplits struct {
	Expense *Expense
	Splits  []*Split
}

// SplitParticipant is one participant's raw values when creating an
// expense directly (without going through a draft)
type SplitParticipant struct {
	PersonID   int64    `json:"person_id"`
	Amount     *float64 `json:"amount,omitempty"`     // For EXACT split
	Percentage *float64 `json:"percentage,omitempty"` // For PERCENTAGE split
	Shares     *int     `json:"shares,omitempty"`     // For SHARES split
	Adjustment *float64 `json:"adjustment,omitempty"` // For ADJUSTMENT split
}

// ToSplitInput converts to the split package's input type
func (p *SplitParticipant) ToSplitInput() split.Input {
	return split.Input{
		Amount:     p.Amount,
		Percentage: p.Percentage,
		Shares:     p.Shares,
		Adjustment: p.Adjustment,
	}
}
