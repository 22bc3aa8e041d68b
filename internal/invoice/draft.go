package invoice

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DraftState tracks where a draft is in its lifecycle.
type DraftState int

const (
	DraftEmpty DraftState = iota
	DraftEditing
	DraftSubmitting
	DraftSaved
	DraftFailed
)

// ItemField names an editable field of a line item. Form input arrives as
// raw text, so SetItemField owns the parsing for every field kind.
type ItemField string

const (
	FieldDescription  ItemField = "description"
	FieldPeriodStart  ItemField = "period_start"
	FieldPeriodEnd    ItemField = "period_end"
	FieldQuantity     ItemField = "quantity"
	FieldUnitPrice    ItemField = "unit_price"
	FieldItemDiscount ItemField = "item_discount"
)

// Draft is the in-memory working model of an invoice being created or
// edited. It is exclusively owned by the view that created it and is
// discarded after a successful submit or an explicit cancel. A nil ID
// means Submit creates a new invoice; a set ID means it updates one.
type Draft struct {
	ID             *uuid.UUID
	Customer       *CustomerRef
	Date           time.Time
	Items          []LineItem
	DiscountAmount float64
	Status         Status
	Remark         string

	state   DraftState
	lastErr error
}

// NewDraft returns an empty draft for creating an invoice: today's date,
// UNPAID, and a single blank line item so the form always has a row.
func NewDraft() *Draft {
	return &Draft{
		Date:   time.Now().Truncate(24 * time.Hour),
		Status: StatusUnpaid,
		Items:  []LineItem{blankItem()},
		state:  DraftEmpty,
	}
}

// EditDraft hydrates a draft from a persisted invoice. All fields,
// including the item list, are replaced wholesale; there is no merging
// with any previous draft. An invoice with zero items is rejected as a
// data-integrity failure rather than silently padded.
func EditDraft(inv *Invoice) (*Draft, error) {
	if len(inv.Items) == 0 {
		return nil, ErrNoItems
	}

	id := inv.ID
	cust := inv.Customer

	return &Draft{
		ID:             &id,
		Customer:       &cust,
		Date:           inv.Date,
		Items:          append([]LineItem(nil), inv.Items...),
		DiscountAmount: inv.DiscountAmount,
		Status:         inv.Status,
		Remark:         inv.Remark,
		state:          DraftEditing,
	}, nil
}

func blankItem() LineItem {
	return LineItem{Quantity: 1}
}

// State reports the draft's lifecycle state.
func (d *Draft) State() DraftState { return d.state }

// Err returns the error from the last failed submit, if any.
func (d *Draft) Err() error { return d.lastErr }

// CanAddItem reports whether another line may be appended. A new row is
// allowed only once the last row has a description and a positive unit
// price, which keeps the form from accumulating half-filled rows.
func (d *Draft) CanAddItem() bool {
	last := d.Items[len(d.Items)-1]
	return strings.TrimSpace(last.Description) != "" && last.UnitPrice > 0
}

// AddItem appends a blank line item. Callers normally gate the action on
// CanAddItem; invoking it anyway fails with ErrPreconditionNotMet.
func (d *Draft) AddItem() error {
	if !d.CanAddItem() {
		return ErrPreconditionNotMet
	}

	d.Items = append(d.Items, blankItem())
	d.touch()

	return nil
}

// RemoveItem deletes the line at index, preserving the order of the
// remainder. The last remaining line can never be removed; the draft is
// left untouched when the operation is rejected.
func (d *Draft) RemoveItem(index int) error {
	if index < 0 || index >= len(d.Items) {
		return ErrItemIndex
	}

	if len(d.Items) == 1 {
		return ErrMinimumItems
	}

	d.Items = append(d.Items[:index], d.Items[index+1:]...)
	d.touch()

	return nil
}

// SetItemField replaces one field of the line at index with the parsed
// value of raw. Numeric fields that fail to parse are stored as zero so
// totals stay defined while the operator is mid-edit; period dates that
// fail to parse are cleared.
func (d *Draft) SetItemField(index int, field ItemField, raw string) error {
	if index < 0 || index >= len(d.Items) {
		return ErrItemIndex
	}

	item := &d.Items[index]

	switch field {
	case FieldDescription:
		item.Description = raw
	case FieldPeriodStart:
		item.PeriodStart = parseDate(raw)
	case FieldPeriodEnd:
		item.PeriodEnd = parseDate(raw)
	case FieldQuantity:
		item.Quantity = parseAmount(raw)
	case FieldUnitPrice:
		item.UnitPrice = parseAmount(raw)
	case FieldItemDiscount:
		item.ItemDiscount = parseAmount(raw)
	default:
		return ErrUnknownField
	}

	d.touch()

	return nil
}

// SetDiscount sets the header-level discount from raw form text.
func (d *Draft) SetDiscount(raw string) {
	d.DiscountAmount = parseAmount(raw)
	d.touch()
}

// SubTotal is the sum of all line amounts in entry order.
func (d *Draft) SubTotal() float64 {
	var sum float64
	for _, item := range d.Items {
		sum += item.Amount()
	}

	return sum
}

// GrandTotal is the subtotal less the header discount. Like line
// amounts, it is not clamped: an oversized discount produces a negative
// total, which is how credit adjustments are entered today.
func (d *Draft) GrandTotal() float64 {
	return d.SubTotal() - d.DiscountAmount
}

// touch moves the draft into Editing after any mutation, which also
// clears a failed-submit flag so the operator can correct and retry.
func (d *Draft) touch() {
	if d.state == DraftEmpty || d.state == DraftFailed {
		d.state = DraftEditing
		d.lastErr = nil
	}
}

func parseAmount(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}

	return v
}

func parseDate(raw string) *time.Time {
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(raw))
	if err != nil {
		return nil
	}

	return &t
}
