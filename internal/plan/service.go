package plan

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	CreatePlan(ctx context.Context, p *Plan) error
	GetPlan(ctx context.Context, id uuid.UUID) (*Plan, error)
	UpdatePlan(ctx context.Context, p *Plan) error
	ListPlans(ctx context.Context) ([]*Plan, error)
	DeletePlan(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name  string
	Speed string
	Price float64
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Plan, error) {
	p := &Plan{
		Name:   params.Name,
		Speed:  params.Speed,
		Price:  params.Price,
		Active: true,
	}
	if err := s.repo.CreatePlan(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Plan, error) {
	return s.repo.GetPlan(ctx, id)
}

func (s *Service) Update(ctx context.Context, p *Plan) error {
	return s.repo.UpdatePlan(ctx, p)
}

func (s *Service) List(ctx context.Context) ([]*Plan, error) {
	return s.repo.ListPlans(ctx)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeletePlan(ctx, id)
}
