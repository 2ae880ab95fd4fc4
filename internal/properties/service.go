package properties

import (
	"context"
	"errors"
)

// Service applies business rules over the repository.
type Service struct {
	repo Repository
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns a filtered page of properties plus the unfiltered total.
func (s *Service) List(ctx context.Context, filters ListFilters) ([]Property, int, error) {
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.PerPage < 1 {
		filters.PerPage = 20
	}
	return s.repo.List(ctx, filters)
}

// Get fetches one property.
func (s *Service) Get(ctx context.Context, id int64) (Property, error) {
	if id <= 0 {
		return Property{}, errors.New("invalid property ID")
	}
	return s.repo.Get(ctx, id)
}

// Create stores a new property.
func (s *Service) Create(ctx context.Context, property Property) (Property, error) {
	return s.repo.Create(ctx, property)
}

// Update overwrites an existing property.
func (s *Service) Update(ctx context.Context, id int64, property Property) error {
	if id <= 0 {
		return errors.New("invalid property ID")
	}
	return s.repo.Update(ctx, id, property)
}
