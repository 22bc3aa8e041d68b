package invoice

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the payment state of an invoice.
type Status string

const (
	StatusUnpaid Status = "UNPAID"
	StatusPaid   Status = "PAID"
)

// CustomerRef identifies the customer an invoice is billed to.
// Only the fields needed for selection and display are carried.
type CustomerRef struct {
	ID   uuid.UUID
	Code string
	Name string
}

// LineItem is one billed service line on an invoice.
type LineItem struct {
	Description  string
	PeriodStart  *time.Time
	PeriodEnd    *time.Time
	Quantity     float64
	UnitPrice    float64
	ItemDiscount float64
}

// Amount is the billed amount for this line. The item discount is not
// clamped against quantity*unitPrice, so a large discount yields a
// negative amount that flows into the subtotal unchanged.
func (li LineItem) Amount() float64 {
	return li.Quantity*li.UnitPrice - li.ItemDiscount
}

// Invoice is a persisted billing statement.
type Invoice struct {
	ID             uuid.UUID
	Number         string
	Customer       CustomerRef
	Date           time.Time
	SubTotal       float64
	DiscountAmount float64
	TotalAmount    float64
	Status         Status
	Remark         string
	Items          []LineItem
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}
