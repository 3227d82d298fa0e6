package draft

import (
	"sync"
	"time"

	"github.com/okadri/splitmate/internal/expense/split"
)

// Draft is the working state of an in-progress shared-expense split.
// The participant set and the per-participant raw inputs live in one
// map, so a removed participant's inputs are gone by construction.
// Drafts are never persisted; only a finalized draft reaches the
// expense service.
type Draft struct {
	ID       string
	GroupID  int64
	Total    float64
	Strategy split.SplitType
	PayerID  int64

	// Inputs keys are the current participant ids.
	Inputs      map[int64]split.Input
	Allocations map[int64]split.Allocation

	CreatedAt time.Time
	UpdatedAt time.Time

	mu sync.Mutex

	// Amount edits are debounced; the latest raw string waits here
	// until the timer fires or a structural edit flushes it.
	pendingAmount *string
	pendingGen    uint64
	cancelPending func()
}

// Summary is the validation read-out shown next to an allocation.
type Summary struct {
	Balanced            bool    `json:"balanced"`
	Allocated           float64 `json:"allocated"`
	Remainder           float64 `json:"remainder"`
	RemainingPercentage float64 `json:"remaining_percentage"`
}

// Snapshot is a consistent copy of a draft handed out of the service.
type Snapshot struct {
	ID             string
	GroupID        int64
	Total          float64
	Strategy       split.SplitType
	PayerID        int64
	ParticipantIDs []int64
	Inputs         map[int64]split.Input
	Allocations    map[int64]split.Allocation
	Summary        Summary
	PendingAmount  bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Finalization is what a balanced draft hands to the
// transaction-creation collaborator.
type Finalization struct {
	GroupID     int64
	PayerID     int64
	Description string
	Total       float64
	SplitType   split.SplitType
	Allocations map[int64]split.Allocation
}
