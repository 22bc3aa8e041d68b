package invoice

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=invoice
type Repository interface {
	CreateInvoice(ctx context.Context, inv *Invoice) error
	GetInvoice(ctx context.Context, id uuid.UUID) (*Invoice, error)
	UpdateInvoice(ctx context.Context, inv *Invoice) error
	ListInvoices(ctx context.Context, search string) ([]*Invoice, error)
	DeleteInvoice(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns invoices matching the search term; the store decides what
// the term matches against (invoice number, customer name or code).
func (s *Service) List(ctx context.Context, search string) ([]*Invoice, error) {
	return s.repo.ListInvoices(ctx, search)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	return s.repo.GetInvoice(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteInvoice(ctx, id)
}

// Submit validates the draft, freezes its computed totals into an
// Invoice, and persists it: create when the draft has no ID, update
// otherwise. On a store failure the draft moves to Failed but keeps all
// fields so the operator can retry; on success it moves to Saved and the
// caller discards it.
func (s *Service) Submit(ctx context.Context, d *Draft) (*Invoice, error) {
	if d.State() == DraftSubmitting {
		return nil, ErrSubmitInFlight
	}

	if d.Customer == nil {
		return nil, ErrMissingCustomer
	}

	d.state = DraftSubmitting

	inv := &Invoice{
		Customer:       *d.Customer,
		Date:           d.Date,
		SubTotal:       d.SubTotal(),
		DiscountAmount: d.DiscountAmount,
		TotalAmount:    d.GrandTotal(),
		Status:         d.Status,
		Remark:         d.Remark,
		Items:          append([]LineItem(nil), d.Items...),
	}

	var err error

	if d.ID == nil {
		err = s.repo.CreateInvoice(ctx, inv)
	} else {
		inv.ID = *d.ID
		err = s.repo.UpdateInvoice(ctx, inv)
	}

	if err != nil {
		d.state = DraftFailed
		d.lastErr = err

		return nil, fmt.Errorf("submitting invoice: %w", err)
	}

	d.state = DraftSaved

	return inv, nil
}
