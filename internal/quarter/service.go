package quarter

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	CreateQuarter(ctx context.Context, q *Quarter) error
	UpdateQuarter(ctx context.Context, q *Quarter) error
	ListQuarters(ctx context.Context) ([]*Quarter, error)
	DeleteQuarter(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, name string) (*Quarter, error) {
	q := &Quarter{Name: name}
	if err := s.repo.CreateQuarter(ctx, q); err != nil {
		return nil, err
	}

	return q, nil
}

func (s *Service) Rename(ctx context.Context, id uuid.UUID, name string) (*Quarter, error) {
	q := &Quarter{ID: id, Name: name}
	if err := s.repo.UpdateQuarter(ctx, q); err != nil {
		return nil, err
	}

	return q, nil
}

func (s *Service) List(ctx context.Context) ([]*Quarter, error) {
	return s.repo.ListQuarters(ctx)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteQuarter(ctx, id)
}
