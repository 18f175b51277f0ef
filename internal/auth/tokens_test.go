package auth

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"vidtube/config"
	"vidtube/infrastructure"
	"vidtube/internal/database"
	"vidtube/internal/user"
)

func newTestDB(t *testing.T) *database.Database {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	// sqlite allows a single writer; concurrent statements on separate
	// connections fail with a lock error instead of queueing
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&user.User{}, &user.WatchHistoryEntry{}))

	return &database.Database{DB: db}
}

func testConfig() *config.Config {
	return &config.Config{
		AccessTokenSecret:  "access-secret",
		RefreshTokenSecret: "refresh-secret",
		AccessTokenTTL:     15 * time.Minute,
		RefreshTokenTTL:    24 * time.Hour,
	}
}

func createTestUser(t *testing.T, users user.Repository) *user.User {
	t.Helper()

	u, err := users.Create(context.Background(), &user.User{
		Username:     "meera",
		Email:        "meera@example.com",
		FullName:     "Meera Iyer",
		Avatar:       "https://cdn.example.com/meera.png",
		PasswordHash: "irrelevant",
	})
	require.NoError(t, err)
	return u
}

func TestTokenService_IssuePair(t *testing.T) {
	ctx := context.Background()
	users := user.NewRepository(newTestDB(t))
	tokens := NewTokenService(testConfig(), users)
	u := createTestUser(t, users)

	pair, err := tokens.IssuePair(ctx, u)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	claims, err := tokens.VerifyAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, u.Email, claims.Email)
	assert.Equal(t, u.Username, claims.Username)
	assert.Equal(t, u.FullName, claims.FullName)

	stored, err := users.ByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, pair.RefreshToken, stored.RefreshToken)
}

func TestTokenService_VerifyAccessToken_Expired(t *testing.T) {
	users := user.NewRepository(newTestDB(t))
	cfg := testConfig()
	cfg.AccessTokenTTL = -time.Minute
	tokens := NewTokenService(cfg, users)
	u := createTestUser(t, users)

	pair, err := tokens.IssuePair(context.Background(), u)
	require.NoError(t, err)

	_, err = tokens.VerifyAccessToken(pair.AccessToken)
	require.ErrorIs(t, err, infrastructure.ErrTokenExpired)
}

func TestTokenService_VerifyAccessToken_WrongSecret(t *testing.T) {
	users := user.NewRepository(newTestDB(t))
	u := createTestUser(t, users)

	other := testConfig()
	other.AccessTokenSecret = "some-other-secret"
	foreign := NewTokenService(other, users)
	pair, err := foreign.IssuePair(context.Background(), u)
	require.NoError(t, err)

	tokens := NewTokenService(testConfig(), users)
	_, err = tokens.VerifyAccessToken(pair.AccessToken)
	require.Error(t, err)
}

func TestTokenService_RotateRefreshToken_SingleUse(t *testing.T) {
	ctx := context.Background()
	users := user.NewRepository(newTestDB(t))
	tokens := NewTokenService(testConfig(), users)
	u := createTestUser(t, users)

	pair, err := tokens.IssuePair(ctx, u)
	require.NoError(t, err)

	rotated, err := tokens.RotateRefreshToken(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, rotated.RefreshToken)

	// the superseded token must lose
	_, err = tokens.RotateRefreshToken(ctx, pair.RefreshToken)
	require.Error(t, err)

	// the fresh one still works
	_, err = tokens.RotateRefreshToken(ctx, rotated.RefreshToken)
	require.NoError(t, err)
}

func TestTokenService_RotateRefreshToken_SameSecond(t *testing.T) {
	ctx := context.Background()
	users := user.NewRepository(newTestDB(t))
	tokens := NewTokenService(testConfig(), users)
	u := createTestUser(t, users)

	pair, err := tokens.IssuePair(ctx, u)
	require.NoError(t, err)

	// jwt timestamps have one-second precision, so issuing and rotating
	// within the same second must still mint a distinct token
	rotated, err := tokens.RotateRefreshToken(ctx, pair.RefreshToken)
	require.NoError(t, err)
	require.NotEqual(t, pair.RefreshToken, rotated.RefreshToken)

	_, err = tokens.RotateRefreshToken(ctx, pair.RefreshToken)
	require.Error(t, err)
}

func TestTokenService_RotateRefreshToken_ConcurrentRotations(t *testing.T) {
	ctx := context.Background()
	users := user.NewRepository(newTestDB(t))
	tokens := NewTokenService(testConfig(), users)
	u := createTestUser(t, users)

	pair, err := tokens.IssuePair(ctx, u)
	require.NoError(t, err)

	results := make(chan error, 2)
	var start sync.WaitGroup
	start.Add(1)
	for i := 0; i < 2; i++ {
		go func() {
			start.Wait()
			_, err := tokens.RotateRefreshToken(ctx, pair.RefreshToken)
			results <- err
		}()
	}
	start.Done()

	var succeeded, rejected int
	for i := 0; i < 2; i++ {
		if err := <-results; err == nil {
			succeeded++
		} else {
			var apiErr *infrastructure.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
			rejected++
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, rejected)
}

func TestTokenService_RotateRefreshToken_AfterRevoke(t *testing.T) {
	ctx := context.Background()
	users := user.NewRepository(newTestDB(t))
	tokens := NewTokenService(testConfig(), users)
	u := createTestUser(t, users)

	pair, err := tokens.IssuePair(ctx, u)
	require.NoError(t, err)

	require.NoError(t, tokens.Revoke(ctx, u))
	require.NoError(t, tokens.Revoke(ctx, u)) // idempotent

	_, err = tokens.RotateRefreshToken(ctx, pair.RefreshToken)
	require.Error(t, err)
}

func TestTokenService_RotateRefreshToken_AccessTokenRejected(t *testing.T) {
	ctx := context.Background()
	users := user.NewRepository(newTestDB(t))
	tokens := NewTokenService(testConfig(), users)
	u := createTestUser(t, users)

	pair, err := tokens.IssuePair(ctx, u)
	require.NoError(t, err)

	// access tokens are signed with a different secret
	_, err = tokens.RotateRefreshToken(ctx, pair.AccessToken)
	require.Error(t, err)
}
