package relocation

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrCustomerNotFound = errors.New("customer not found")

	// ErrMissingLocation is returned when a relocation has no new address
	// or no new quarter.
	ErrMissingLocation = errors.New("relocation needs a new address and quarter")
)

// Record is one completed relocation: the customer's location and
// equipment identifiers before the move, and the values that replaced
// them.
type Record struct {
	ID             uuid.UUID
	CustomerID     uuid.UUID
	CustomerCode   string
	CustomerName   string
	OldAddress     string
	OldQuarterID   uuid.UUID
	OldQuarterName string
	OldDNSN        string
	OldGPS         string
	NewAddress     string
	NewQuarterID   uuid.UUID
	NewQuarterName string
	NewDNSN        string
	NewGPS         string
	Remark         string
	MovedAt        time.Time
}
