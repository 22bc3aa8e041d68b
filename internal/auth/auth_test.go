package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zinminlatt/ispbill/internal/auth"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := auth.HashPassword("s3cret-pa55word")
	require.NoError(t, err)

	assert.True(t, auth.VerifyPassword("s3cret-pa55word", hash))
	assert.False(t, auth.VerifyPassword("wrong-password", hash))
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	first, err := auth.HashPassword("same-password")
	require.NoError(t, err)

	second, err := auth.HashPassword("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	assert.False(t, auth.VerifyPassword("anything", ""))
	assert.False(t, auth.VerifyPassword("anything", "$argon2id$v=19$garbage"))
	assert.False(t, auth.VerifyPassword("anything", "plain-text-hash"))
}

func TestSignAndParseToken(t *testing.T) {
	secret := []byte("test-secret")
	userID := uuid.New()

	token, err := auth.SignToken(secret, userID, "thandar", auth.RoleStaff, time.Hour)
	require.NoError(t, err)

	claims, err := auth.ParseToken(token, secret)
	require.NoError(t, err)

	assert.Equal(t, "thandar", claims.Username)
	assert.Equal(t, string(auth.RoleStaff), claims.Role)
	assert.Equal(t, userID.String(), claims.Subject)
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := auth.SignToken([]byte("real-secret"), uuid.New(), "thandar", auth.RoleStaff, time.Hour)
	require.NoError(t, err)

	_, err = auth.ParseToken(token, []byte("other-secret"))
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestParseToken_Expired(t *testing.T) {
	secret := []byte("test-secret")

	token, err := auth.SignToken(secret, uuid.New(), "thandar", auth.RoleStaff, -time.Minute)
	require.NoError(t, err)

	_, err = auth.ParseToken(token, secret)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestMiddleware(t *testing.T) {
	secret := []byte("test-secret")

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := auth.Middleware(secret)(next)

	t.Run("NoToken", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/invoices", nil)
		resp := httptest.NewRecorder()

		handler.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusUnauthorized, resp.Code)
	})

	t.Run("BadToken", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/invoices", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		resp := httptest.NewRecorder()

		handler.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusUnauthorized, resp.Code)
	})

	t.Run("ValidToken", func(t *testing.T) {
		token, err := auth.SignToken(secret, uuid.New(), "thandar", auth.RoleStaff, time.Hour)
		require.NoError(t, err)

		var gotUsername string
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUsername = auth.UsernameFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/invoices", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp := httptest.NewRecorder()

		auth.Middleware(secret)(inner).ServeHTTP(resp, req)

		assert.Equal(t, http.StatusOK, resp.Code)
		assert.Equal(t, "thandar", gotUsername)
	})
}

func TestRequireAdmin(t *testing.T) {
	secret := []byte("test-secret")

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := auth.Middleware(secret)(auth.RequireAdmin(next))

	t.Run("StaffForbidden", func(t *testing.T) {
		token, err := auth.SignToken(secret, uuid.New(), "thandar", auth.RoleStaff, time.Hour)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp := httptest.NewRecorder()

		handler.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusForbidden, resp.Code)
	})

	t.Run("AdminAllowed", func(t *testing.T) {
		token, err := auth.SignToken(secret, uuid.New(), "aung", auth.RoleAdmin, time.Hour)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp := httptest.NewRecorder()

		handler.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusOK, resp.Code)
	})
}
