package customer

import (
	"time"

	"github.com/google/uuid"

	"github.com/zinminlatt/ispbill/internal/customer"
)

type customerResponse struct {
	ID             uuid.UUID       `json:"id"`
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	PrimaryPhone   string          `json:"primary_phone"`
	SecondaryPhone string          `json:"secondary_phone,omitempty"`
	Address        string          `json:"address"`
	QuarterID      uuid.UUID       `json:"quarter_id"`
	QuarterName    string          `json:"quarter_name,omitempty"`
	PlanID         uuid.UUID       `json:"plan_id"`
	PlanName       string          `json:"plan_name,omitempty"`
	ONUSerial      string          `json:"onu_serial,omitempty"`
	DNSN           string          `json:"dnsn,omitempty"`
	GPSCoords      string          `json:"gps_coords,omitempty"`
	InstallDate    time.Time       `json:"install_date"`
	ExpiryDate     *time.Time      `json:"expiry_date,omitempty"`
	Status         customer.Status `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      *time.Time      `json:"updated_at,omitempty"`
}

func toResponse(c *customer.Customer) customerResponse {
	return customerResponse{
		ID:             c.ID,
		Code:           c.Code,
		Name:           c.Name,
		PrimaryPhone:   c.PrimaryPhone,
		SecondaryPhone: c.SecondaryPhone,
		Address:        c.Address,
		QuarterID:      c.QuarterID,
		QuarterName:    c.QuarterName,
		PlanID:         c.PlanID,
		PlanName:       c.PlanName,
		ONUSerial:      c.ONUSerial,
		DNSN:           c.DNSN,
		GPSCoords:      c.GPSCoords,
		InstallDate:    c.InstallDate,
		ExpiryDate:     c.ExpiryDate,
		Status:         c.Status,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

func toResponseList(customers []*customer.Customer) []customerResponse {
	resp := make([]customerResponse, len(customers))
	for i, c := range customers {
		resp[i] = toResponse(c)
	}

	return resp
}
