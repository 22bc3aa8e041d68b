package invoice_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zinminlatt/ispbill/internal/invoice"
)

func TestLineItem_Amount(t *testing.T) {
	tests := []struct {
		name string
		item invoice.LineItem
		want float64
	}{
		{
			name: "SingleUnitNoDiscount",
			item: invoice.LineItem{Quantity: 1, UnitPrice: 10000},
			want: 10000,
		},
		{
			name: "QuantityAndItemDiscount",
			item: invoice.LineItem{Quantity: 2, UnitPrice: 5000, ItemDiscount: 1000},
			want: 9000,
		},
		{
			name: "DiscountExceedsLineGoesNegative",
			item: invoice.LineItem{Quantity: 1, UnitPrice: 3000, ItemDiscount: 5000},
			want: -2000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.item.Amount(), 1e-9)
		})
	}
}

func TestDraft_Totals(t *testing.T) {
	d := invoice.NewDraft()
	require.NoError(t, d.SetItemField(0, invoice.FieldDescription, "Monthly Internet Fee"))
	require.NoError(t, d.SetItemField(0, invoice.FieldQuantity, "1"))
	require.NoError(t, d.SetItemField(0, invoice.FieldUnitPrice, "10000"))

	assert.InDelta(t, 10000, d.SubTotal(), 1e-9)
	assert.InDelta(t, 10000, d.GrandTotal(), 1e-9)

	require.NoError(t, d.SetItemField(0, invoice.FieldQuantity, "2"))
	require.NoError(t, d.SetItemField(0, invoice.FieldUnitPrice, "5000"))
	require.NoError(t, d.SetItemField(0, invoice.FieldItemDiscount, "1000"))
	d.SetDiscount("2000")

	assert.InDelta(t, 9000, d.SubTotal(), 1e-9)
	assert.InDelta(t, 7000, d.GrandTotal(), 1e-9)
}

func TestDraft_SubTotalSumsAllItems(t *testing.T) {
	d := invoice.NewDraft()
	require.NoError(t, d.SetItemField(0, invoice.FieldDescription, "Installation"))
	require.NoError(t, d.SetItemField(0, invoice.FieldUnitPrice, "30000"))
	require.NoError(t, d.AddItem())
	require.NoError(t, d.SetItemField(1, invoice.FieldDescription, "Monthly Fee"))
	require.NoError(t, d.SetItemField(1, invoice.FieldQuantity, "3"))
	require.NoError(t, d.SetItemField(1, invoice.FieldUnitPrice, "15000"))

	var want float64
	for _, item := range d.Items {
		want += item.Amount()
	}

	assert.InDelta(t, want, d.SubTotal(), 1e-9)
	assert.InDelta(t, 75000, d.SubTotal(), 1e-9)
}

// An oversized header discount is deliberately not clamped: operators
// enter credit adjustments this way, so the grand total may be negative.
func TestDraft_NegativeGrandTotalPermitted(t *testing.T) {
	d := invoice.NewDraft()
	require.NoError(t, d.SetItemField(0, invoice.FieldUnitPrice, "5000"))
	d.SetDiscount("8000")

	assert.InDelta(t, -3000, d.GrandTotal(), 1e-9)
}

func TestDraft_CanAddItem(t *testing.T) {
	d := invoice.NewDraft()

	// Blank description blocks a new row regardless of the other fields.
	require.NoError(t, d.SetItemField(0, invoice.FieldQuantity, "5"))
	require.NoError(t, d.SetItemField(0, invoice.FieldUnitPrice, "10000"))
	require.NoError(t, d.SetItemField(0, invoice.FieldDescription, "   "))
	assert.False(t, d.CanAddItem())

	require.NoError(t, d.SetItemField(0, invoice.FieldDescription, "Monthly Internet Fee"))
	assert.True(t, d.CanAddItem())

	// Zero unit price blocks it again.
	require.NoError(t, d.SetItemField(0, invoice.FieldUnitPrice, "0"))
	assert.False(t, d.CanAddItem())
}

func TestDraft_AddItemPrecondition(t *testing.T) {
	d := invoice.NewDraft()

	err := d.AddItem()
	assert.ErrorIs(t, err, invoice.ErrPreconditionNotMet)
	assert.Len(t, d.Items, 1)

	require.NoError(t, d.SetItemField(0, invoice.FieldDescription, "Monthly Internet Fee"))
	require.NoError(t, d.SetItemField(0, invoice.FieldUnitPrice, "10000"))
	require.NoError(t, d.AddItem())

	require.Len(t, d.Items, 2)
	assert.Empty(t, d.Items[1].Description)
	assert.InDelta(t, 1, d.Items[1].Quantity, 1e-9)
	assert.Zero(t, d.Items[1].UnitPrice)
}

func TestDraft_RemoveItem(t *testing.T) {
	d := invoice.NewDraft()
	require.NoError(t, d.SetItemField(0, invoice.FieldDescription, "Monthly Internet Fee"))
	require.NoError(t, d.SetItemField(0, invoice.FieldUnitPrice, "10000"))

	// The last remaining row can never be removed; the draft is unchanged.
	before := append([]invoice.LineItem(nil), d.Items...)
	err := d.RemoveItem(0)
	assert.ErrorIs(t, err, invoice.ErrMinimumItems)
	assert.Equal(t, before, d.Items)

	// Add then remove the appended row restores the prior list exactly.
	require.NoError(t, d.AddItem())
	require.NoError(t, d.RemoveItem(len(d.Items)-1))
	assert.Equal(t, before, d.Items)

	err = d.RemoveItem(5)
	assert.ErrorIs(t, err, invoice.ErrItemIndex)
}

func TestDraft_RemoveItemPreservesOrder(t *testing.T) {
	d := invoice.NewDraft()
	descs := []string{"First", "Second", "Third"}

	require.NoError(t, d.SetItemField(0, invoice.FieldDescription, descs[0]))
	require.NoError(t, d.SetItemField(0, invoice.FieldUnitPrice, "1000"))

	for _, desc := range descs[1:] {
		require.NoError(t, d.AddItem())
		idx := len(d.Items) - 1
		require.NoError(t, d.SetItemField(idx, invoice.FieldDescription, desc))
		require.NoError(t, d.SetItemField(idx, invoice.FieldUnitPrice, "1000"))
	}

	require.NoError(t, d.RemoveItem(1))
	require.Len(t, d.Items, 2)
	assert.Equal(t, "First", d.Items[0].Description)
	assert.Equal(t, "Third", d.Items[1].Description)
}

func TestDraft_SetItemField(t *testing.T) {
	d := invoice.NewDraft()

	// Unparseable numeric input computes as zero rather than poisoning
	// the totals.
	require.NoError(t, d.SetItemField(0, invoice.FieldUnitPrice, "abc"))
	assert.Zero(t, d.Items[0].UnitPrice)
	assert.Zero(t, d.SubTotal())

	require.NoError(t, d.SetItemField(0, invoice.FieldUnitPrice, " 2500 "))
	assert.InDelta(t, 2500, d.Items[0].UnitPrice, 1e-9)

	require.NoError(t, d.SetItemField(0, invoice.FieldPeriodStart, "2026-08-01"))
	require.NotNil(t, d.Items[0].PeriodStart)
	assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), *d.Items[0].PeriodStart)

	require.NoError(t, d.SetItemField(0, invoice.FieldPeriodEnd, "not-a-date"))
	assert.Nil(t, d.Items[0].PeriodEnd)

	err := d.SetItemField(9, invoice.FieldDescription, "x")
	assert.ErrorIs(t, err, invoice.ErrItemIndex)

	err = d.SetItemField(0, invoice.ItemField("colour"), "blue")
	assert.ErrorIs(t, err, invoice.ErrUnknownField)
}

func TestEditDraft(t *testing.T) {
	first := &invoice.Invoice{
		ID:       uuid.New(),
		Customer: invoice.CustomerRef{ID: uuid.New(), Code: "CUS-000001", Name: "Aung Aung"},
		Date:     time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		Status:   invoice.StatusUnpaid,
		Remark:   "august cycle",
		Items: []invoice.LineItem{
			{Description: "Monthly Internet Fee", Quantity: 1, UnitPrice: 35000},
			{Description: "Router Rental", Quantity: 1, UnitPrice: 5000},
			{Description: "Late Fee", Quantity: 1, UnitPrice: 2000},
		},
	}

	d, err := invoice.EditDraft(first)
	require.NoError(t, err)
	assert.Equal(t, invoice.DraftEditing, d.State())
	require.NotNil(t, d.ID)
	assert.Equal(t, first.ID, *d.ID)
	assert.Len(t, d.Items, 3)

	// Hydrating from a second invoice replaces everything; nothing from
	// the first draft survives.
	second := &invoice.Invoice{
		ID:             uuid.New(),
		Customer:       invoice.CustomerRef{ID: uuid.New(), Code: "CUS-000002", Name: "Su Su"},
		Date:           time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		DiscountAmount: 500,
		Status:         invoice.StatusPaid,
		Items: []invoice.LineItem{
			{Description: "Monthly Internet Fee", Quantity: 1, UnitPrice: 28000},
		},
	}

	d, err = invoice.EditDraft(second)
	require.NoError(t, err)
	assert.Equal(t, second.ID, *d.ID)
	assert.Equal(t, "Su Su", d.Customer.Name)
	require.Len(t, d.Items, 1)
	assert.InDelta(t, 28000, d.Items[0].UnitPrice, 1e-9)

	// Mutating the draft must not write through to the source invoice.
	require.NoError(t, d.SetItemField(0, invoice.FieldUnitPrice, "99999"))
	assert.InDelta(t, 28000, second.Items[0].UnitPrice, 1e-9)
}

func TestEditDraft_NoItems(t *testing.T) {
	_, err := invoice.EditDraft(&invoice.Invoice{ID: uuid.New()})
	assert.ErrorIs(t, err, invoice.ErrNoItems)
}
