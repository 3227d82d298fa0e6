package expense

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"sort"

	"github.com/okadri/splitmate/internal/expense/draft"
	"github.com/okadri/splitmate/internal/expense/split"
)

// Common errors
var (
	ErrExpenseNotFound     = errors.New("expense not found")
	ErrSplitNotFound       = errors.New("split not found")
	ErrNotBorrower         = errors.New("only the borrower can mark as paid")
	ErrNotPayer            = errors.New("only the payer can perform this action")
	ErrInvalidStatusChange = errors.New("invalid status change")
	ErrCannotDeleteExpense = errors.New("cannot delete expense with paid/confirmed splits")
	ErrTooFewParticipants  = errors.New("a split needs at least two participants")
	ErrPayerNotParticipant = errors.New("payer must be one of the participants")
	ErrUnbalancedSplit     = errors.New("split does not reconcile with the total amount")
)

// Notifier delivers owed-amount notifications to debtors.
// Implemented by the notification service; a nil notifier is allowed.
type Notifier interface {
	Notify(ctx context.Context, recipientID int64, message, entityType string, entityID int64) error
}

// Service handles expense business logic
type Service struct {
	repo         *Repository
	splitFactory *split.Factory
	validator    *split.Validator
	notifier     Notifier
}

// NewService creates a new expense service with dependencies injected
func NewService(repo *Repository, splitFactory *split.Factory, validator *split.Validator, notifier Notifier) *Service {
	return &Service{
		repo:         repo,
		splitFactory: splitFactory,
		validator:    validator,
		notifier:     notifier,
	}
}

// CreateExpense creates an expense directly from raw per-participant
// values, running the allocation engine and the balance gate in one
// shot. The interactive path goes through the draft service instead.
func (s *Service) CreateExpense(ctx context.Context, payerID int64, req *CreateExpenseRequest) (*ExpenseWithSplits, error) {
	strategy, err := s.splitFactory.CreateFromString(req.SplitType)
	if err != nil {
		return nil, err
	}

	inputs := make(map[int64]split.Input, len(req.Participants))
	for _, p := range req.Participants {
		inputs[p.PersonID] = p.ToSplitInput()
	}
	if len(inputs) < 2 {
		return nil, ErrTooFewParticipants
	}
	if _, ok := inputs[payerID]; !ok {
		return nil, ErrPayerNotParticipant
	}

	allocations := strategy.Calculate(req.Amount, inputs)
	if !s.validator.IsValid(strategy.Type(), req.Amount, allocations) {
		return nil, ErrUnbalancedSplit
	}

	return s.persist(ctx, req.GroupID, payerID, req.Description, req.Amount, string(strategy.Type()), allocations)
}

// CreateFromDraft persists a finalized draft. The draft service has
// already gated on validity; this is the transaction-creation side of
// the handoff.
func (s *Service) CreateFromDraft(ctx context.Context, fin draft.Finalization) (int64, error) {
	result, err := s.persist(ctx, fin.GroupID, fin.PayerID, fin.Description, fin.Total, string(fin.SplitType), fin.Allocations)
	if err != nil {
		return 0, err
	}
	return result.Expense.ID, nil
}

func (s *Service) persist(ctx context.Context, groupID, payerID int64, description string, amount float64, splitType string, allocations map[int64]split.Allocation) (*ExpenseWithSplits, error) {
	expense, err := s.repo.CreateExpense(ctx, groupID, payerID, description, amount, splitType)
	if err != nil {
		return nil, err
	}

	// The payer already covered their own share; only the others get
	// debt rows. Amounts round to cents at this boundary, the engine
	// itself stays full precision.
	var splits []*Split
	for _, row := range BuildSplitRows(payerID, allocations) {
		created, err := s.repo.CreateSplit(ctx, expense.ID, row.BorrowerID, row.AmountOwed)
		if err != nil {
			// TODO: Should rollback expense creation in a transaction
			return nil, err
		}
		splits = append(splits, created)
	}

	s.notifyDebtors(ctx, expense, splits)

	return &ExpenseWithSplits{
		Expense: expense,
		Splits:  splits,
	}, nil
}

// SplitRow is a debt row derived from an allocation map.
type SplitRow struct {
	BorrowerID int64
	AmountOwed float64
}

// BuildSplitRows turns an allocation map into the debt rows to
// persist: the payer's own share is skipped, amounts are rounded to
// cents, and shares that round to zero produce no row. Rows come back
// ordered by borrower id.
func BuildSplitRows(payerID int64, allocations map[int64]split.Allocation) []SplitRow {
	rows := make([]SplitRow, 0, len(allocations))
	for borrowerID, allocation := range allocations {
		if borrowerID == payerID {
			continue
		}
		owed := roundToCents(allocation.Amount)
		if owed == 0 {
			continue
		}
		rows = append(rows, SplitRow{BorrowerID: borrowerID, AmountOwed: owed})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].BorrowerID < rows[j].BorrowerID })
	return rows
}

func (s *Service) notifyDebtors(ctx context.Context, expense *Expense, splits []*Split) {
	if s.notifier == nil {
		return
	}
	for _, row := range splits {
		message := fmt.Sprintf("You owe %.2f for %q", row.AmountOwed, expense.Description)
		if err := s.notifier.Notify(ctx, row.BorrowerID, message, "EXPENSE", expense.ID); err != nil {
			log.Printf("failed to notify person %d for expense %d: %v", row.BorrowerID, expense.ID, err)
		}
	}
}

// GetExpenseByID retrieves an expense with its splits
func (s *Service) GetExpenseByID(ctx context.Context, id int64) (*ExpenseWithSplits, error) {
	expense, err := s.repo.GetExpenseByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, ErrExpenseNotFound
	}

	splits, err := s.repo.GetSplitsByExpenseID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &ExpenseWithSplits{
		Expense: expense,
		Splits:  splits,
	}, nil
}

// ListExpensesByGroupID retrieves expenses for a group
func (s *Service) ListExpensesByGroupID(ctx context.Context, groupID int64, page, perPage int) ([]*Expense, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.ListExpensesByGroupID(ctx, groupID, perPage, offset)
}

// MarkSplitAsPaid allows the borrower to mark their split as paid
func (s *Service) MarkSplitAsPaid(ctx context.Context, splitID, borrowerID int64) (*Split, error) {
	row, err := s.repo.GetSplitByID(ctx, splitID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrSplitNotFound
	}

	if row.BorrowerID != borrowerID {
		return nil, ErrNotBorrower
	}

	// Can only mark as paid from PENDING status
	if row.Status != SplitStatusPending {
		return nil, ErrInvalidStatusChange
	}

	return s.repo.UpdateSplitStatus(ctx, splitID, SplitStatusPaid, nil)
}

// ConfirmSplitPayment allows the payer to confirm they received the payment
func (s *Service) ConfirmSplitPayment(ctx context.Context, splitID, payerID int64) (*Split, error) {
	row, err := s.repo.GetSplitByID(ctx, splitID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrSplitNotFound
	}

	expense, err := s.repo.GetExpenseByID(ctx, row.ExpenseID)
	if err != nil {
		return nil, err
	}
	if expense.PayerID != payerID {
		return nil, ErrNotPayer
	}

	// Can only confirm from PAID status
	if row.Status != SplitStatusPaid {
		return nil, ErrInvalidStatusChange
	}

	return s.repo.UpdateSplitStatus(ctx, splitID, SplitStatusConfirmed, nil)
}

// DisputeSplit allows the borrower to dispute a split
func (s *Service) DisputeSplit(ctx context.Context, splitID, borrowerID int64, reason string) (*Split, error) {
	row, err := s.repo.GetSplitByID(ctx, splitID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrSplitNotFound
	}

	if row.BorrowerID != borrowerID {
		return nil, ErrNotBorrower
	}

	// Can dispute from PENDING or PAID status
	if row.Status != SplitStatusPending && row.Status != SplitStatusPaid {
		return nil, ErrInvalidStatusChange
	}

	return s.repo.UpdateSplitStatus(ctx, splitID, SplitStatusDisputed, &reason)
}

// DeleteExpense deletes an expense if no splits are paid/confirmed
func (s *Service) DeleteExpense(ctx context.Context, id, personID int64) error {
	expense, err := s.repo.GetExpenseByID(ctx, id)
	if err != nil {
		return err
	}
	if expense == nil {
		return ErrExpenseNotFound
	}

	// Only the payer can delete
	if expense.PayerID != personID {
		return ErrNotPayer
	}

	splits, err := s.repo.GetSplitsByExpenseID(ctx, id)
	if err != nil {
		return err
	}
	for _, row := range splits {
		if row.Status == SplitStatusPaid || row.Status == SplitStatusConfirmed {
			return ErrCannotDeleteExpense
		}
	}

	return s.repo.DeleteExpense(ctx, id)
}

// roundToCents rounds a monetary value to 2 decimal places
func roundToCents(value float64) float64 {
	return math.Round(value*100) / 100
}
