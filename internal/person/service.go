package person

import (
	"context"
	"errors"
)

// Common errors
var (
	ErrPersonNotFound    = errors.New("person not found")
	ErrEmailAlreadyInUse = errors.New("email already in use")
)

// Service handles person business logic
type Service struct {
	repo *Repository
}

// NewService creates a new person service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Create registers a new person
func (s *Service) Create(ctx context.Context, req *CreatePersonRequest) (*Person, error) {
	existing, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyInUse
	}

	return s.repo.Create(ctx, req)
}

// GetByID retrieves a person by their ID
func (s *Service) GetByID(ctx context.Context, id int64) (*Person, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPersonNotFound
	}
	return p, nil
}

// List retrieves all persons with pagination
func (s *Service) List(ctx context.Context, page, perPage int) ([]*Person, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.List(ctx, perPage, offset)
}

// Update modifies an existing person
func (s *Service) Update(ctx context.Context, id int64, req *UpdatePersonRequest) (*Person, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrPersonNotFound
	}

	return s.repo.Update(ctx, id, req)
}

// Delete removes a person
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
