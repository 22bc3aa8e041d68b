package invoice_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zinminlatt/ispbill/internal/invoice"
)

func TestRenderPDF(t *testing.T) {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	inv := &invoice.Invoice{
		ID:     uuid.New(),
		Number: "INV-000042",
		Customer: invoice.CustomerRef{
			ID:   uuid.New(),
			Code: "CUS-000007",
			Name: "U Kyaw Kyaw",
		},
		Date: start,
		Items: []invoice.LineItem{
			{
				Description: "40 Mbps monthly fee",
				PeriodStart: &start,
				PeriodEnd:   &end,
				Quantity:    1,
				UnitPrice:   30000,
			},
		},
		SubTotal:       30000,
		DiscountAmount: 5000,
		TotalAmount:    25000,
		Status:         invoice.StatusUnpaid,
		Remark:         "August billing",
	}

	pdf, err := invoice.RenderPDF(inv)
	require.NoError(t, err)

	assert.NotEmpty(t, pdf)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}
