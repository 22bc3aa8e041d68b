package user

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/zinminlatt/ispbill/internal/auth"
)

var (
	ErrNotFound      = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already taken")
	ErrDisabled      = errors.New("user account disabled")
)

// User is a back-office operator account. PasswordHash holds the
// encoded Argon2id hash and never leaves the server.
type User struct {
	ID           uuid.UUID
	Username     string
	DisplayName  string
	Role         auth.Role
	PasswordHash string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
