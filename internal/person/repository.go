package person

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles person data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new person repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new person into the database
func (r *Repository) Create(ctx context.Context, req *CreatePersonRequest) (*Person, error) {
	query := `
		INSERT INTO persons (name, email, avatar_url)
		VALUES ($1, $2, $3)
		RETURNING id, name, email, avatar_url, created_at
	`

	p := &Person{}
	err := r.db.QueryRowContext(ctx, query, req.Name, req.Email, req.AvatarURL).Scan(
		&p.ID,
		&p.Name,
		&p.Email,
		&p.AvatarURL,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create person: %w", err)
	}

	return p, nil
}

// GetByID retrieves a person by their ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*Person, error) {
	query := `
		SELECT id, name, email, avatar_url, created_at
		FROM persons
		WHERE id = $1
	`

	p := &Person{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID,
		&p.Name,
		&p.Email,
		&p.AvatarURL,
		&p.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get person: %w", err)
	}

	return p, nil
}

// GetByEmail retrieves a person by their email
func (r *Repository) GetByEmail(ctx context.Context, email string) (*Person, error) {
	query := `
		SELECT id, name, email, avatar_url, created_at
		FROM persons
		WHERE email = $1
	`

	p := &Person{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&p.ID,
		&p.Name,
		&p.Email,
		&p.AvatarURL,
		&p.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get person by email: %w", err)
	}

	return p, nil
}

// List retrieves persons with pagination
func (r *Repository) List(ctx context.Context, limit, offset int) ([]*Person, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM persons`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count persons: %w", err)
	}

	query := `
		SELECT id, name, email, avatar_url, created_at
		FROM persons
		ORDER BY name
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list persons: %w", err)
	}
	defer rows.Close()

	var persons []*Person
	for rows.Next() {
		p := &Person{}
		if err := rows.Scan(&p.ID, &p.Name, &p.Email, &p.AvatarURL, &p.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan person: %w", err)
		}
		persons = append(persons, p)
	}

	return persons, total, nil
}

// Update modifies an existing person
func (r *Repository) Update(ctx context.Context, id int64, req *UpdatePersonRequest) (*Person, error) {
	query := `
		UPDATE persons
		SET name = COALESCE($2, name), avatar_url = COALESCE($3, avatar_url)
		WHERE id = $1
		RETURNING id, name, email, avatar_url, created_at
	`

	p := &Person{}
	err := r.db.QueryRowContext(ctx, query, id, req.Name, req.AvatarURL).Scan(
		&p.ID,
		&p.Name,
		&p.Email,
		&p.AvatarURL,
		&p.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update person: %w", err)
	}

	return p, nil
}

// Delete removes a person from the database
func (r *Repository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM persons WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete person: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return ErrPersonNotFound
	}

	return nil
}
