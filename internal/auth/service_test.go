package auth

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"vidtube/infrastructure"
	"vidtube/internal/user"
)

func createLoginUser(t *testing.T, users user.Repository, password string) *user.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	u, err := users.Create(context.Background(), &user.User{
		Username:     "arjun",
		Email:        "arjun@example.com",
		FullName:     "Arjun Rao",
		Avatar:       "https://cdn.example.com/arjun.png",
		PasswordHash: string(hash),
	})
	require.NoError(t, err)
	return u
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()
	users := user.NewRepository(newTestDB(t))
	tokens := NewTokenService(testConfig(), users)
	service := NewService(users, tokens)
	createLoginUser(t, users, "correct horse battery staple")

	t.Run("by email", func(t *testing.T) {
		loggedIn, pair, err := service.Login(ctx, "arjun@example.com", "", "correct horse battery staple")
		require.NoError(t, err)
		assert.Equal(t, "arjun", loggedIn.Username)
		assert.NotEmpty(t, pair.AccessToken)
		assert.NotEmpty(t, pair.RefreshToken)
	})

	t.Run("by username, case-insensitive", func(t *testing.T) {
		_, pair, err := service.Login(ctx, "", "ARJUN", "correct horse battery staple")
		require.NoError(t, err)
		assert.NotEmpty(t, pair.RefreshToken)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := service.Login(ctx, "arjun@example.com", "", "nope")
		apiErr := infrastructure.AsAPIError(err)
		assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	})

	t.Run("unknown account", func(t *testing.T) {
		_, _, err := service.Login(ctx, "ghost@example.com", "", "whatever")
		apiErr := infrastructure.AsAPIError(err)
		assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	})

	t.Run("missing identifier", func(t *testing.T) {
		_, _, err := service.Login(ctx, "", "", "whatever")
		apiErr := infrastructure.AsAPIError(err)
		assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	})
}

func TestService_Refresh_SucceedsExactlyOnce(t *testing.T) {
	ctx := context.Background()
	users := user.NewRepository(newTestDB(t))
	tokens := NewTokenService(testConfig(), users)
	service := NewService(users, tokens)
	createLoginUser(t, users, "correct horse battery staple")

	_, pair, err := service.Login(ctx, "arjun@example.com", "", "correct horse battery staple")
	require.NoError(t, err)

	_, err = service.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)

	_, err = service.Refresh(ctx, pair.RefreshToken)
	apiErr := infrastructure.AsAPIError(err)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestService_Logout_InvalidatesRefreshToken(t *testing.T) {
	ctx := context.Background()
	users := user.NewRepository(newTestDB(t))
	tokens := NewTokenService(testConfig(), users)
	service := NewService(users, tokens)
	u := createLoginUser(t, users, "correct horse battery staple")

	_, pair, err := service.Login(ctx, "arjun@example.com", "", "correct horse battery staple")
	require.NoError(t, err)

	require.NoError(t, service.Logout(ctx, u))

	_, err = service.Refresh(ctx, pair.RefreshToken)
	require.Error(t, err)
}
