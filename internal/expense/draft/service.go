package draft

import (
	"context"
	"errors"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/okadri/splitmate/internal/expense/split"
)

// Common errors
var (
	ErrDraftNotFound       = errors.New("draft not found")
	ErrParticipantNotFound = errors.New("participant is not part of this draft")
	ErrNoPayer             = errors.New("draft has no payer")
	ErrUnbalanced          = errors.New("split is not balanced")
	ErrUnknownInputField   = errors.New("unknown raw input field")
)

// Input field names accepted by UpdateInput.
const (
	FieldAmount     = "amount"
	FieldPercentage = "percentage"
	FieldShares     = "shares"
	FieldAdjustment = "adjustment"
)

// minParticipants is the floor for a shared expense: a split of one
// person is not a split.
const minParticipants = 2

// Finalizer turns a balanced draft into a persisted expense and
// returns the new expense id. Implemented by the expense service.
type Finalizer interface {
	CreateFromDraft(ctx context.Context, fin Finalization) (int64, error)
}

// Service owns draft lifecycle and every mutation of the split state.
// All map writes go through here, so after each call the payer is a
// participant and raw inputs exist only for current participants.
type Service struct {
	store     *Store
	factory   *split.Factory
	validator *split.Validator
	finalizer Finalizer
	debounce  time.Duration
	schedule  Scheduler
}

// NewService creates a draft service. A nil scheduler falls back to
// the timer-backed one.
func NewService(store *Store, factory *split.Factory, validator *split.Validator, finalizer Finalizer, debounce time.Duration, schedule Scheduler) *Service {
	if schedule == nil {
		schedule = TimerScheduler
	}
	return &Service{
		store:     store,
		factory:   factory,
		validator: validator,
		finalizer: finalizer,
		debounce:  debounce,
		schedule:  schedule,
	}
}

// Create starts a fresh draft for a group.
func (s *Service) Create(groupID int64, total float64, splitType split.SplitType) (*Snapshot, error) {
	if splitType == "" {
		splitType = split.SplitTypeEqual
	}
	if _, err := s.factory.Create(splitType); err != nil {
		return nil, err
	}

	now := time.Now()
	d := &Draft{
		ID:          uuid.NewString(),
		GroupID:     groupID,
		Total:       clampAmount(total),
		Strategy:    splitType,
		Inputs:      make(map[int64]split.Input),
		Allocations: make(map[int64]split.Allocation),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.store.Put(d)

	d.mu.Lock()
	defer d.mu.Unlock()
	s.recomputeLocked(d)
	return s.snapshotLocked(d), nil
}

// Get returns the current state of a draft.
func (s *Service) Get(id string) (*Snapshot, error) {
	d := s.store.Get(id)
	if d == nil {
		return nil, ErrDraftNotFound
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return s.snapshotLocked(d), nil
}

// SetAmount records a raw amount edit. Parsing and recomputation are
// debounced so rapid keystrokes collapse into one recalculation; the
// returned snapshot still reflects the previous total.
func (s *Service) SetAmount(id string, raw string) (*Snapshot, error) {
	d := s.store.Get(id)
	if d == nil {
		return nil, ErrDraftNotFound
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cancelPending != nil {
		d.cancelPending()
		d.cancelPending = nil
	}
	d.pendingAmount = &raw
	d.pendingGen++
	gen := d.pendingGen

	d.cancelPending = s.schedule(s.debounce, func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		// A later edit or a structural flush superseded this firing.
		if gen != d.pendingGen || d.pendingAmount == nil {
			return
		}
		s.flushPendingLocked(d)
		s.recomputeLocked(d)
	})

	return s.snapshotLocked(d), nil
}

// SetStrategy switches the active strategy. Every participant's raw
// inputs are reset to the new strategy's defaults; there is no
// attempt to convert the old numbers.
func (s *Service) SetStrategy(id string, splitType split.SplitType) (*Snapshot, error) {
	strategy, err := s.factory.Create(splitType)
	if err != nil {
		return nil, err
	}

	d := s.store.Get(id)
	if d == nil {
		return nil, ErrDraftNotFound
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	s.flushPendingLocked(d)

	d.Strategy = splitType
	n := len(d.Inputs)
	for pid := range d.Inputs {
		d.Inputs[pid] = strategy.DefaultInput(d.Total, n)
	}
	s.recomputeLocked(d)
	return s.snapshotLocked(d), nil
}

// AddParticipant inserts a person into the split with the active
// strategy's default raw input. The first participant becomes the
// payer when none is set. Adding an existing participant is a no-op.
func (s *Service) AddParticipant(id string, personID int64) (*Snapshot, error) {
	d := s.store.Get(id)
	if d == nil {
		return nil, ErrDraftNotFound
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	s.flushPendingLocked(d)
	s.addParticipantLocked(d, personID)
	s.recomputeLocked(d)
	return s.snapshotLocked(d), nil
}

// RemoveParticipant drops a person from the split, purging their raw
// input and reassigning the payer if needed. Shrinking the set below
// the two-participant floor is refused: the draft is left unchanged
// and blocked is true so the caller can surface the refusal.
func (s *Service) RemoveParticipant(id string, personID int64) (snapshot *Snapshot, blocked bool, err error) {
	d := s.store.Get(id)
	if d == nil {
		return nil, false, ErrDraftNotFound
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	s.flushPendingLocked(d)

	if _, ok := d.Inputs[personID]; !ok {
		return s.snapshotLocked(d), false, nil
	}
	if len(d.Inputs) <= minParticipants {
		return s.snapshotLocked(d), true, nil
	}

	delete(d.Inputs, personID)
	if d.PayerID == personID {
		d.PayerID = lowestID(d.Inputs)
	}
	s.recomputeLocked(d)
	return s.snapshotLocked(d), false, nil
}

// SelectPayer marks a person as the payer, adding them to the
// participant set first if needed.
func (s *Service) SelectPayer(id string, personID int64) (*Snapshot, error) {
	d := s.store.Get(id)
	if d == nil {
		return nil, ErrDraftNotFound
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	s.flushPendingLocked(d)

	if _, ok := d.Inputs[personID]; !ok {
		s.addParticipantLocked(d, personID)
	}
	d.PayerID = personID
	s.recomputeLocked(d)
	return s.snapshotLocked(d), nil
}

// UpdateInput sets one raw field for one participant and recomputes
// immediately. Values are clamped, never rejected: negative amounts
// go to 0, percentages into [0, 100], shares into the configured
// bounds. The other fields of the participant's input are retained.
func (s *Service) UpdateInput(id string, personID int64, field string, value float64) (*Snapshot, error) {
	d := s.store.Get(id)
	if d == nil {
		return nil, ErrDraftNotFound
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	s.flushPendingLocked(d)

	in, ok := d.Inputs[personID]
	if !ok {
		return nil, ErrParticipantNotFound
	}

	switch strings.ToLower(field) {
	case FieldAmount:
		v := clampAmount(value)
		in.Amount = &v
	case FieldPercentage:
		v := clampPercentage(value)
		in.Percentage = &v
	case FieldShares:
		v := s.clampShares(value)
		in.Shares = &v
	case FieldAdjustment:
		v := clampSigned(value)
		in.Adjustment = &v
	default:
		return nil, ErrUnknownInputField
	}

	d.Inputs[personID] = in
	s.recomputeLocked(d)
	return s.snapshotLocked(d), nil
}

// Finalize gates on validity, hands the allocation to the expense
// service, and discards the draft. Returns the new expense id.
func (s *Service) Finalize(ctx context.Context, id string, description string) (int64, error) {
	d := s.store.Get(id)
	if d == nil {
		return 0, ErrDraftNotFound
	}

	d.mu.Lock()
	s.flushPendingLocked(d)
	s.recomputeLocked(d)

	if !s.validator.IsValid(d.Strategy, d.Total, d.Allocations) {
		d.mu.Unlock()
		return 0, ErrUnbalanced
	}
	if d.PayerID == 0 {
		d.mu.Unlock()
		return 0, ErrNoPayer
	}

	fin := Finalization{
		GroupID:     d.GroupID,
		PayerID:     d.PayerID,
		Description: description,
		Total:       d.Total,
		SplitType:   d.Strategy,
		Allocations: copyAllocations(d.Allocations),
	}
	d.mu.Unlock()

	expenseID, err := s.finalizer.CreateFromDraft(ctx, fin)
	if err != nil {
		return 0, err
	}

	s.store.Delete(id)
	return expenseID, nil
}

// Cancel discards a draft without finalizing.
func (s *Service) Cancel(id string) error {
	d := s.store.Get(id)
	if d == nil {
		return ErrDraftNotFound
	}
	d.mu.Lock()
	if d.cancelPending != nil {
		d.cancelPending()
		d.cancelPending = nil
	}
	d.pendingAmount = nil
	d.mu.Unlock()
	s.store.Delete(id)
	return nil
}

func (s *Service) addParticipantLocked(d *Draft, personID int64) {
	if _, ok := d.Inputs[personID]; ok {
		return
	}
	strategy, err := s.factory.Create(d.Strategy)
	if err != nil {
		return
	}
	d.Inputs[personID] = strategy.DefaultInput(d.Total, len(d.Inputs)+1)
	if d.PayerID == 0 {
		d.PayerID = personID
	}
}

// flushPendingLocked applies a not-yet-fired amount edit. Structural
// edits call this first so they never compute against a stale total.
func (s *Service) flushPendingLocked(d *Draft) {
	if d.pendingAmount == nil {
		return
	}
	d.Total = parseAmount(*d.pendingAmount)
	d.pendingAmount = nil
	d.pendingGen++
	if d.cancelPending != nil {
		d.cancelPending()
		d.cancelPending = nil
	}
}

func (s *Service) recomputeLocked(d *Draft) {
	strategy, err := s.factory.Create(d.Strategy)
	if err != nil {
		d.Allocations = map[int64]split.Allocation{}
		return
	}
	d.Allocations = strategy.Calculate(d.Total, d.Inputs)
	d.UpdatedAt = time.Now()
}

func (s *Service) snapshotLocked(d *Draft) *Snapshot {
	ids := make([]int64, 0, len(d.Inputs))
	for pid := range d.Inputs {
		ids = append(ids, pid)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	allocations := copyAllocations(d.Allocations)
	var allocated float64
	for _, a := range allocations {
		allocated += a.Amount
	}

	inputs := make(map[int64]split.Input, len(d.Inputs))
	for pid, in := range d.Inputs {
		inputs[pid] = in
	}

	return &Snapshot{
		ID:             d.ID,
		GroupID:        d.GroupID,
		Total:          d.Total,
		Strategy:       d.Strategy,
		PayerID:        d.PayerID,
		ParticipantIDs: ids,
		Inputs:         inputs,
		Allocations:    allocations,
		Summary: Summary{
			Balanced:            s.validator.IsValid(d.Strategy, d.Total, d.Allocations),
			Allocated:           allocated,
			Remainder:           s.validator.Remainder(d.Strategy, d.Total, d.Allocations),
			RemainingPercentage: s.validator.RemainingPercentage(d.Strategy, d.Allocations),
		},
		PendingAmount: d.pendingAmount != nil,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

func (s *Service) clampShares(value float64) int {
	limits := s.factory.Limits()
	value = clampSigned(value)
	if value < float64(limits.MinShares) {
		return limits.MinShares
	}
	if value > float64(limits.MaxShares) {
		return limits.MaxShares
	}
	return int(value)
}

// parseAmount turns a raw amount string into money. Junk, negative
// and non-finite values all collapse to 0 rather than erroring.
func parseAmount(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return clampAmount(v)
}

func clampAmount(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

func clampSigned(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func clampPercentage(v float64) float64 {
	v = clampSigned(v)
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func lowestID(inputs map[int64]split.Input) int64 {
	var lowest int64
	for pid := range inputs {
		if lowest == 0 || pid < lowest {
			lowest = pid
		}
	}
	return lowest
}

func copyAllocations(src map[int64]split.Allocation) map[int64]split.Allocation {
	out := make(map[int64]split.Allocation, len(src))
	for pid, a := range src {
		out[pid] = a
	}
	return out
}
