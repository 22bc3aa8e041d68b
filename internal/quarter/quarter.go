package quarter

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("quarter not found")

	// ErrInUse is returned when deleting a quarter that still has
	// customers installed in it.
	ErrInUse = errors.New("quarter has customers")
)

// Quarter is a named geographic service zone.
type Quarter struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
	UpdatedAt *time.Time
}
