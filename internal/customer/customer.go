package customer

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Status represents the service state of a customer's connection.
type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusSuspended Status = "SUSPENDED"
)

var ErrNotFound = errors.New("customer not found")

// Customer is a subscriber with an installed connection.
type Customer struct {
	ID             uuid.UUID
	Code           string // server-assigned, e.g. CUS-000042
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
	QuarterName    string // Loaded via JOIN
	PlanName       string // Loaded via JOIN
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
}
