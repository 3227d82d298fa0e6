package expense

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles expense and split data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new expense repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateExpense inserts a new expense into the database
func (r *Repository) CreateExpense(ctx context.Context, groupID, payerID int64, description string, amount float64, splitType string) (*Expense, error) {
	query := `
		INSERT INTO expenses (group_id, payer_id, description, amount, split_type)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, group_id, payer_id, description, amount, split_type, created_at
	`

	expense := &Expense{}
	err := r.db.QueryRowContext(ctx, query,
		groupID,
		payerID,
		description,
		amount,
		splitType,
	).Scan(
		&expense.ID,
		&expense.GroupID,
		&expense.PayerID,
		&expense.Description,
		&expense.Amount,
		&expense.SplitType,
		&expense.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	return expense, nil
}

// CreateSplit inserts a new split into the database
func (r *Repository) CreateSplit(ctx context.Context, expenseID, borrowerID int64, amountOwed float64) (*Split, error) {
	query := `
		INSERT INTO splits (expense_id, borrower_id, amount_owed, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, expense_id, borrower_id, amount_owed, status, dispute_reason, updated_at
	`

	row := &Split{}
	err := r.db.QueryRowContext(ctx, query, expenseID, borrowerID, amountOwed, SplitStatusPending).Scan(
		&row.ID,
		&row.ExpenseID,
		&row.BorrowerID,
		&row.AmountOwed,
		&row.Status,
		&row.DisputeReason,
		&row.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create split: %w", err)
	}

	return row, nil
}

// GetExpenseByID retrieves an expense by its ID
func (r *Repository) GetExpenseByID(ctx context.Context, id int64) (*Expense, error) {
	query := `
		SELECT e.id, e.group_id, e.payer_id, e.description, e.amount, e.split_type, e.created_at, p.name
		FROM expenses e
		JOIN persons p ON e.payer_id = p.id
		WHERE e.id = $1
	`

	expense := &Expense{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&expense.ID,
		&expense.GroupID,
		&expense.PayerID,
		&expense.Description,
		&expense.Amount,
		&expense.SplitType,
		&expense.CreatedAt,
		&expense.PayerName,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	return expense, nil
}

// GetSplitsByExpenseID retrieves all splits for an expense
func (r *Repository) GetSplitsByExpenseID(ctx context.Context, expenseID int64) ([]*Split, error) {
	query := `
		SELECT s.id, s.expense_id, s.borrower_id, s.amount_owed, s.status, s.dispute_reason, s.updated_at, p.name
		FROM splits s
		JOIN persons p ON s.borrower_id = p.id
		WHERE s.expense_id = $1
		ORDER BY s.id
	`

	rows, err := r.db.QueryContext(ctx, query, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get splits: %w", err)
	}
	defer rows.Close()

	var splits []*Split
	for rows.Next() {
		row := &Split{}
		if err := rows.Scan(
			&row.ID,
			&row.ExpenseID,
			&row.BorrowerID,
			&row.AmountOwed,
			&row.Status,
			&row.DisputeReason,
			&row.UpdatedAt,
			&row.BorrowerName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		splits = append(splits, row)
	}

	return splits, nil
}

// ListExpensesByGroupID retrieves all expenses for a group
func (r *Repository) ListExpensesByGroupID(ctx context.Context, groupID int64, limit, offset int) ([]*Expense, int, error) {
	// Get total count
	var total int
	countQuery := `SELECT COUNT(*) FROM expenses WHERE group_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, groupID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count expenses: %w", err)
	}

	query := `
		SELECT e.id, e.group_id, e.payer_id, e.description, e.amount, e.split_type, e.created_at, p.name
		FROM expenses e
		JOIN persons p ON e.payer_id = p.id
		WHERE e.group_id = $1
		ORDER BY e.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, groupID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*Expense
	for rows.Next() {
		expense := &Expense{}
		if err := rows.Scan(
			&expense.ID,
			&expense.GroupID,
			&expense.PayerID,
			&expense.Description,
			&expense.Amount,
			&expense.SplitType,
			&expense.CreatedAt,
			&expense.PayerName,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}

	return expenses, total, nil
}

// GetSplitByID retrieves a split by its ID
func (r *Repository) GetSplitByID(ctx context.Context, id int64) (*Split, error) {
	query := `
		SELECT s.id, s.expense_id, s.borrower_id, s.amount_owed, s.status, s.dispute_reason, s.updated_at, p.name
		FROM splits s
		JOIN persons p ON s.borrower_id = p.id
		WHERE s.id = $1
	`

	row := &Split{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&row.ID,
		&row.ExpenseID,
		&row.BorrowerID,
		&row.AmountOwed,
		&row.Status,
		&row.DisputeReason,
		&row.UpdatedAt,
		&row.BorrowerName,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get split: %w", err)
	}

	return row, nil
}

// UpdateSplitStatus updates the status of a split
func (r *Repository) UpdateSplitStatus(ctx context.Context, id int64, status SplitStatus, disputeReason *string) (*Split, error) {
	query := `
		UPDATE splits
		SET status = $2, dispute_reason = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING id, expense_id, borrower_id, amount_owed, status, dispute_reason, updated_at
	`

	row := &Split{}
	err := r.db.QueryRowContext(ctx, query, id, status, disputeReason).Scan(
		&row.ID,
		&row.ExpenseID,
		&row.BorrowerID,
		&row.AmountOwed,
		&row.Status,
		&row.DisputeReason,
		&row.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update split status: %w", err)
	}

	return row, nil
}

// DeleteExpense removes an expense and its splits
func (r *Repository) DeleteExpense(ctx context.Context, id int64) error {
	// Splits cascade via the FK
	result, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return ErrExpenseNotFound
	}

	return nil
}
