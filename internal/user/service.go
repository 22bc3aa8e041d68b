package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/zinminlatt/ispbill/internal/auth"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=user
type Repository interface {
	CreateUser(ctx context.Context, u *User) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	ListUsers(ctx context.Context) ([]*User, error)
	SetUserActive(ctx context.Context, id uuid.UUID, active bool) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Username    string
	DisplayName string
	Password    string
	Role        auth.Role
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*User, error) {
	if _, ok := auth.ParseRole(string(params.Role)); !ok {
		return nil, fmt.Errorf("unknown role %q", params.Role)
	}

	hash, err := auth.HashPassword(params.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	u := &User{
		Username:     params.Username,
		DisplayName:  params.DisplayName,
		Role:         params.Role,
		PasswordHash: hash,
		Active:       true,
	}

	return s.repo.CreateUser(ctx, u)
}

func (s *Service) List(ctx context.Context) ([]*User, error) {
	return s.repo.ListUsers(ctx)
}

func (s *Service) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	return s.repo.SetUserActive(ctx, id, active)
}

// Login checks the credentials and returns the account on success.
// A wrong username and a wrong password both come back as
// auth.ErrInvalidCredentials so responses do not reveal which one was
// wrong.
func (s *Service) Login(ctx context.Context, username, password string) (*User, error) {
	u, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, auth.ErrInvalidCredentials
		}

		return nil, err
	}

	if !auth.VerifyPassword(password, u.PasswordHash) {
		return nil, auth.ErrInvalidCredentials
	}

	if !u.Active {
		return nil, ErrDisabled
	}

	return u, nil
}
