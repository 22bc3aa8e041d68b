package plan

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("plan not found")

	// ErrInUse is returned when deleting a plan that customers are still
	// subscribed to.
	ErrInUse = errors.New("plan has active customers")
)

// Plan is a sellable internet package.
type Plan struct {
	ID        uuid.UUID
	Name      string
	Speed     string // e.g. "40 Mbps"
	Price     float64
	Active    bool
	CreatedAt time.Time
	UpdatedAt *time.Time
}
