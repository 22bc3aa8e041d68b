package customer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=customer
type Repository interface {
	CreateCustomer(ctx context.Context, c *Customer) error
	GetCustomer(ctx context.Context, id uuid.UUID) (*Customer, error)
	UpdateCustomer(ctx context.Context, c *Customer) error
	ListCustomers(ctx context.Context, search string) ([]*Customer, error)
	DeleteCustomer(ctx context.Context, id uuid.UUID) error

	BeginImport(ctx context.Context) (ImportTx, error)
}

type ImportTx interface {
	FindDuplicates(ctx context.Context, params []CreateParams) ([]*Customer, error)
	CreateCustomers(ctx context.Context, customers []*Customer) error
	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name           string
	PrimaryPhone   string
	SecondaryPhone string
	Address        string
	QuarterID      uuid.UUID
	PlanID         uuid.UUID
	ONUSerial      string
	DNSN           string
	GPSCoords      string
	InstallDate    time.Time
	ExpiryDate     *time.Time
	Status         Status
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Customer, error) {
	c := paramsToCustomer(params)
	if err := s.repo.CreateCustomer(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Customer, error) {
	return s.repo.GetCustomer(ctx, id)
}

func (s *Service) Update(ctx context.Context, c *Customer) error {
	return s.repo.UpdateCustomer(ctx, c)
}

// List returns customers matching the search term (code, name or phone);
// an empty term returns everyone.
func (s *Service) List(ctx context.Context, search string) ([]*Customer, error) {
	return s.repo.ListCustomers(ctx, search)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteCustomer(ctx, id)
}

type ImportResult struct {
	Imported  []*Customer
	New       []CreateParams
	Conflicts []Conflict
}

type Conflict struct {
	Incoming CreateParams
	Existing *Customer
}

// ImportBatch inserts a parsed CSV batch in one transaction. Rows whose
// ONU serial already belongs to a customer are reported as conflicts and
// nothing is written; the caller resolves them and confirms with the
// remaining rows.
func (s *Service) ImportBatch(ctx context.Context, params []CreateParams) (*ImportResult, error) {
	if len(params) == 0 {
		return &ImportResult{}, nil
	}

	itx, err := s.repo.BeginImport(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer itx.Rollback()

	duplicates, err := itx.FindDuplicates(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("find duplicates: %w", err)
	}

	lookup := make(map[string]*Customer, len(duplicates))
	for _, d := range duplicates {
		lookup[d.ONUSerial] = d
	}

	var newParams []CreateParams

	var conflicts []Conflict

	for _, p := range params {
		existing, found := lookup[p.ONUSerial]
		if found && p.ONUSerial != "" {
			conflicts = append(conflicts, Conflict{Incoming: p, Existing: existing})
			continue
		}

		newParams = append(newParams, p)
	}

	if len(conflicts) > 0 {
		return &ImportResult{New: newParams, Conflicts: conflicts}, nil
	}

	customers := make([]*Customer, len(newParams))
	for i, p := range newParams {
		customers[i] = paramsToCustomer(p)
	}

	if err := itx.CreateCustomers(ctx, customers); err != nil {
		return nil, fmt.Errorf("create customers: %w", err)
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	return &ImportResult{Imported: customers}, nil
}

// CreateBatch inserts pre-confirmed rows without duplicate screening.
func (s *Service) CreateBatch(ctx context.Context, params []CreateParams) ([]*Customer, error) {
	if len(params) == 0 {
		return nil, nil
	}

	itx, err := s.repo.BeginImport(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer itx.Rollback()

	customers := make([]*Customer, len(params))
	for i, p := range params {
		customers[i] = paramsToCustomer(p)
	}

	if err := itx.CreateCustomers(ctx, customers); err != nil {
		return nil, fmt.Errorf("create customers: %w", err)
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	return customers, nil
}

func paramsToCustomer(p CreateParams) *Customer {
	status := p.Status
	if status == "" {
		status = StatusActive
	}

	return &Customer{
		Name:           p.Name,
		PrimaryPhone:   p.PrimaryPhone,
		SecondaryPhone: p.SecondaryPhone,
		Address:        p.Address,
		QuarterID:      p.QuarterID,
		PlanID:         p.PlanID,
		ONUSerial:      p.ONUSerial,
		DNSN:           p.DNSN,
		GPSCoords:      p.GPSCoords,
		InstallDate:    p.InstallDate,
		ExpiryDate:     p.ExpiryDate,
		Status:         status,
	}
}
