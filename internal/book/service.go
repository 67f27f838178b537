package book

import (
	"context"
)

// Service provides catalog query logic.
type Service struct {
	repo Repository
}

// NewService creates a new book service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns books matching the query plus the unpaginated total.
func (s *Service) List(ctx context.Context, q Query) ([]Book, int, error) {
	return s.repo.List(ctx, q)
}

// GetByID returns a single book by its surrogate key.
func (s *Service) GetByID(ctx context.Context, id int64) (Book, error) {
	return s.repo.GetByID(ctx, id)
}

// Categories returns the distinct category names, alphabetical.
func (s *Service) Categories(ctx context.Context, limit, offset int) ([]string, int, error) {
	return s.repo.Categories(ctx, limit, offset)
}
