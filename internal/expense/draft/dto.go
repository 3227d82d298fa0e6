package draft

// CreateDraftRequest starts a new split draft
type CreateDraftRequest struct {
	GroupID   int64   `json:"group_id" validate:"required"`
	Total     float64 `json:"total"`
	SplitType string  `json:"split_type,omitempty" validate:"omitempty,oneof=EQUAL EXACT PERCENTAGE SHARES ADJUSTMENT"`
}

// SetAmountRequest carries the raw amount string as typed by the user
type SetAmountRequest struct {
	Amount string `json:"amount"`
}

// SetStrategyRequest switches the active split strategy
type SetStrategyRequest struct {
	SplitType string `json:"split_type" validate:"required,oneof=EQUAL EXACT PERCENTAGE SHARES ADJUSTMENT"`
}

// ParticipantRequest adds a person to the draft or selects the payer
type ParticipantRequest struct {
	PersonID int64 `json:"person_id" validate:"required"`
}

// UpdateInputRequest sets one raw field for one participant
type UpdateInputRequest struct {
	Field string  `json:"field" validate:"required,oneof=amount percentage shares adjustment"`
	Value float64 `json:"value"`
}

// FinalizeRequest turns a balanced draft into a persisted expense
type FinalizeRequest struct {
	Description string `json:"description" validate:"required,min=1,max=255"`
}

// ParticipantResponse is one participant's computed slice of the draft
type ParticipantResponse struct {
	PersonID   int64   `json:"person_id"`
	IsPayer    bool    `json:"is_payer"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
	Shares     int     `json:"shares"`
	Adjustment float64 `json:"adjustment"`
}

// DraftResponse is the full draft state returned after every mutation
type DraftResponse struct {
	ID                  string                 `json:"id"`
	GroupID             int64                  `json:"group_id"`
	Total               float64                `json:"total"`
	SplitType           string                 `json:"split_type"`
	PayerID             int64                  `json:"payer_id,omitempty"`
	Participants        []*ParticipantResponse `json:"participants"`
	Balanced            bool                   `json:"balanced"`
	Allocated           float64                `json:"allocated"`
	Remainder           float64                `json:"remainder"`
	RemainingPercentage float64                `json:"remaining_percentage"`
	PendingAmount       bool                   `json:"pending_amount"`
	Blocked             bool                   `json:"blocked,omitempty"`
	UpdatedAt           string                 `json:"updated_at"`
}

// FinalizeResponse reports the expense created from a draft
type FinalizeResponse struct {
	ExpenseID int64 `json:"expense_id"`
}

// ToResponse converts a Snapshot to a DraftResponse DTO
func (s *Snapshot) ToResponse() *DraftResponse {
	participants := make([]*ParticipantResponse, 0, len(s.ParticipantIDs))
	for _, pid := range s.ParticipantIDs {
		allocation := s.Allocations[pid]
		participants = append(participants, &ParticipantResponse{
			PersonID:   pid,
			IsPayer:    pid == s.PayerID,
			Amount:     allocation.Amount,
			Percentage: allocation.Percentage,
			Shares:     allocation.Shares,
			Adjustment: allocation.Adjustment,
		})
	}

	return &DraftResponse{
		ID:                  s.ID,
		GroupID:             s.GroupID,
		Total:               s.Total,
		SplitType:           string(s.Strategy),
		PayerID:             s.PayerID,
		Participants:        participants,
		Balanced:            s.Summary.Balanced,
		Allocated:           s.Summary.Allocated,
		Remainder:           s.Summary.Remainder,
		RemainingPercentage: s.Summary.RemainingPercentage,
		PendingAmount:       s.PendingAmount,
		UpdatedAt:           s.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
