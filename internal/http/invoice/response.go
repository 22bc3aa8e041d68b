package invoice

import (
	"time"

	"github.com/google/uuid"

	"github.com/zinminlatt/ispbill/internal/invoice"
)

type invoiceResponse struct {
	ID             uuid.UUID          `json:"id"`
	Number         string             `json:"number"`
	Customer       customerRefDTO     `json:"customer"`
	Date           time.Time          `json:"date"`
	SubTotal       float64            `json:"sub_total"`
	DiscountAmount float64            `json:"discount_amount"`
	TotalAmount    float64            `json:"total_amount"`
	Status         invoice.Status     `json:"status"`
	Remark         string             `json:"remark,omitempty"`
	Items          []lineItemResponse `json:"items"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      *time.Time         `json:"updated_at,omitempty"`
}

type customerRefDTO struct {
	ID   uuid.UUID `json:"id"`
	Code string    `json:"code"`
	Name string    `json:"name"`
}

type lineItemResponse struct {
	Description  string     `json:"description"`
	PeriodStart  *time.Time `json:"period_start,omitempty"`
	PeriodEnd    *time.Time `json:"period_end,omitempty"`
	Quantity     float64    `json:"quantity"`
	UnitPrice    float64    `json:"unit_price"`
	ItemDiscount float64    `json:"item_discount"`
	Amount       float64    `json:"amount"`
}

func toResponse(inv *invoice.Invoice) invoiceResponse {
	items := make([]lineItemResponse, len(inv.Items))
	for i, item := range inv.Items {
		items[i] = lineItemResponse{
			Description:  item.Description,
			PeriodStart:  item.PeriodStart,
			PeriodEnd:    item.PeriodEnd,
			Quantity:     item.Quantity,
			UnitPrice:    item.UnitPrice,
			ItemDiscount: item.ItemDiscount,
			Amount:       item.Amount(),
		}
	}

	return invoiceResponse{
		ID:     inv.ID,
		Number: inv.Number,
		Customer: customerRefDTO{
			ID:   inv.Customer.ID,
			Code: inv.Customer.Code,
			Name: inv.Customer.Name,
		},
		Date:           inv.Date,
		SubTotal:       inv.SubTotal,
		DiscountAmount: inv.DiscountAmount,
		TotalAmount:    inv.TotalAmount,
		Status:         inv.Status,
		Remark:         inv.Remark,
		Items:          items,
		CreatedAt:      inv.CreatedAt,
		UpdatedAt:      inv.UpdatedAt,
	}
}

func toResponseList(invoices []*invoice.Invoice) []invoiceResponse {
	resp := make([]invoiceResponse, len(invoices))
	for i, inv := range invoices {
		resp[i] = toResponse(inv)
	}

	return resp
}
