package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"vidtube/config"
	"vidtube/infrastructure"
	"vidtube/internal/user"
)

// TokenService issues and validates the access/refresh token pair. Access
// tokens are verified by signature and expiry alone; refresh tokens are also
// matched against the single value stored on the account, so rotation or
// logout immediately invalidates everything minted before it.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	users         user.Repository
}

func NewTokenService(cfg *config.Config, users user.Repository) *TokenService {
	return &TokenService{
		accessSecret:  []byte(cfg.AccessTokenSecret),
		refreshSecret: []byte(cfg.RefreshTokenSecret),
		accessTTL:     cfg.AccessTokenTTL,
		refreshTTL:    cfg.RefreshTokenTTL,
		users:         users,
	}
}

// IssuePair mints a fresh token pair for the account and persists the
// refresh token onto it, replacing any prior value.
func (s *TokenService) IssuePair(ctx context.Context, u *user.User) (*TokenPair, error) {
	pair, err := s.signPair(u)
	if err != nil {
		return nil, err
	}
	if err := s.users.SetRefreshToken(ctx, u.ID, pair.RefreshToken); err != nil {
		return nil, err
	}
	return pair, nil
}

func (s *TokenService) signPair(u *user.User) (*TokenPair, error) {
	now := time.Now()

	accessClaims := &AccessClaims{
		UserID:   u.ID,
		Email:    u.Email,
		Username: u.Username,
		FullName: u.FullName,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString(s.accessSecret)
	if err != nil {
		return nil, infrastructure.NewInternal("failed to generate access token")
	}

	refreshClaims := &RefreshClaims{
		UserID: u.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			// timestamps have one-second precision; the jti keeps tokens
			// minted within the same second distinct
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.refreshTTL)),
		},
	}
	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString(s.refreshSecret)
	if err != nil {
		return nil, infrastructure.NewInternal("failed to generate refresh token")
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// VerifyAccessToken checks signature and expiry of an access token.
func (s *TokenService) VerifyAccessToken(tokenString string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, infrastructure.ErrInvalidToken
		}
		return s.accessSecret, nil
	})
	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) && ve.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, infrastructure.ErrTokenExpired
		}
		return nil, infrastructure.ErrInvalidToken
	}
	if !token.Valid {
		return nil, infrastructure.ErrInvalidToken
	}
	return claims, nil
}

// RotateRefreshToken exchanges a presented refresh token for a new pair.
// The swap is conditional on the stored value still matching, so a
// superseded token loses even when two rotations race.
func (s *TokenService) RotateRefreshToken(ctx context.Context, presented string) (*TokenPair, error) {
	claims := &RefreshClaims{}
	token, err := jwt.ParseWithClaims(presented, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, infrastructure.ErrInvalidToken
		}
		return s.refreshSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, infrastructure.NewUnauthorized("invalid refresh token")
	}

	u, err := s.users.ByID(ctx, claims.UserID)
	if err != nil {
		return nil, infrastructure.NewUnauthorized("invalid refresh token")
	}

	if subtle.ConstantTimeCompare([]byte(presented), []byte(u.RefreshToken)) != 1 {
		return nil, infrastructure.NewUnauthorized("refresh token expired or used")
	}

	pair, err := s.signPair(u)
	if err != nil {
		return nil, err
	}

	swapped, err := s.users.SwapRefreshToken(ctx, u.ID, presented, pair.RefreshToken)
	if err != nil {
		return nil, err
	}
	if !swapped {
		return nil, infrastructure.NewUnauthorized("refresh token expired or used")
	}
	return pair, nil
}

// Revoke clears the stored refresh token. Safe to call repeatedly.
func (s *TokenService) Revoke(ctx context.Context, u *user.User) error {
	return s.users.ClearRefreshToken(ctx, u.ID)
}
