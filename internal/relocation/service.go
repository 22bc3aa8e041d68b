package relocation

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=relocation
type Repository interface {
	Relocate(ctx context.Context, customerID uuid.UUID, params Params) (*Record, error)
	ListHistory(ctx context.Context) ([]*Record, error)
	ListCustomerHistory(ctx context.Context, customerID uuid.UUID) ([]*Record, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type Params struct {
	NewAddress   string
	NewQuarterID uuid.UUID
	NewDNSN      string
	NewGPS       string
	Remark       string
}

// Relocate moves a customer to a new location. The store captures the
// customer's current address, quarter and equipment identifiers as a
// history record and applies the new values in the same transaction, so
// history and customer state can never drift apart.
func (s *Service) Relocate(ctx context.Context, customerID uuid.UUID, params Params) (*Record, error) {
	if strings.TrimSpace(params.NewAddress) == "" || params.NewQuarterID == uuid.Nil {
		return nil, ErrMissingLocation
	}

	return s.repo.Relocate(ctx, customerID, params)
}

// History returns every recorded relocation, newest first.
func (s *Service) History(ctx context.Context) ([]*Record, error) {
	return s.repo.ListHistory(ctx)
}

// CustomerHistory returns the relocations of one customer, newest first.
func (s *Service) CustomerHistory(ctx context.Context, customerID uuid.UUID) ([]*Record, error) {
	return s.repo.ListCustomerHistory(ctx, customerID)
}
