package user_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/zinminlatt/ispbill/internal/auth"
	"github.com/zinminlatt/ispbill/internal/user"
)

func TestService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := user.NewMockRepository(ctrl)
	repo.EXPECT().
		CreateUser(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, u *user.User) (*user.User, error) {
			assert.Equal(t, "thandar", u.Username)
			assert.Equal(t, auth.RoleStaff, u.Role)
			assert.True(t, u.Active)
			assert.NotEqual(t, "hunter2", u.PasswordHash)
			assert.True(t, auth.VerifyPassword("hunter2", u.PasswordHash))

			created := *u
			created.ID = uuid.New()
			return &created, nil
		})

	svc := user.NewService(repo)

	created, err := svc.Create(context.Background(), user.CreateParams{
		Username:    "thandar",
		DisplayName: "Thandar Win",
		Password:    "hunter2",
		Role:        auth.RoleStaff,
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
}

func TestService_Create_UnknownRole(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := user.NewMockRepository(ctrl)
	svc := user.NewService(repo)

	_, err := svc.Create(context.Background(), user.CreateParams{
		Username: "thandar",
		Password: "hunter2",
		Role:     "superuser",
	})
	assert.Error(t, err)
}

func TestService_Login(t *testing.T) {
	hash, err := auth.HashPassword("hunter2")
	require.NoError(t, err)

	account := &user.User{
		ID:           uuid.New(),
		Username:     "thandar",
		Role:         auth.RoleStaff,
		PasswordHash: hash,
		Active:       true,
	}

	type testCase struct {
		name      string
		username  string
		password  string
		setupMock func(m *user.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name:     "Success",
			username: "thandar",
			password: "hunter2",
			setupMock: func(m *user.MockRepository) {
				m.EXPECT().
					GetUserByUsername(gomock.Any(), "thandar").
					Return(account, nil)
			},
		},
		{
			name:     "WrongPassword",
			username: "thandar",
			password: "hunter3",
			setupMock: func(m *user.MockRepository) {
				m.EXPECT().
					GetUserByUsername(gomock.Any(), "thandar").
					Return(account, nil)
			},
			wantErr: auth.ErrInvalidCredentials,
		},
		{
			name:     "UnknownUsername",
			username: "nobody",
			password: "hunter2",
			setupMock: func(m *user.MockRepository) {
				m.EXPECT().
					GetUserByUsername(gomock.Any(), "nobody").
					Return(nil, user.ErrNotFound)
			},
			wantErr: auth.ErrInvalidCredentials,
		},
		{
			name:     "DisabledAccount",
			username: "thandar",
			password: "hunter2",
			setupMock: func(m *user.MockRepository) {
				disabled := *account
				disabled.Active = false
				m.EXPECT().
					GetUserByUsername(gomock.Any(), "thandar").
					Return(&disabled, nil)
			},
			wantErr: user.ErrDisabled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := user.NewMockRepository(ctrl)
			tt.setupMock(repo)

			svc := user.NewService(repo)
			got, err := svc.Login(context.Background(), tt.username, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, account.ID, got.ID)
		})
	}
}
