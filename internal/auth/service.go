package auth

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"vidtube/infrastructure"
	"vidtube/internal/user"
)

// Service is the login/logout/refresh use case on top of the credential
// store and the token service.
type Service struct {
	users  user.Repository
	tokens *TokenService
}

func NewService(users user.Repository, tokens *TokenService) *Service {
	return &Service{users: users, tokens: tokens}
}

// Login verifies the password for the account matching email or username and
// issues a fresh token pair.
func (s *Service) Login(ctx context.Context, email, username, password string) (*user.PublicUser, *TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	username = strings.ToLower(strings.TrimSpace(username))

	if email == "" && username == "" {
		return nil, nil, infrastructure.NewBadRequest("username or email is required")
	}

	u, err := s.users.ByEmailOrUsername(ctx, email, username)
	if err != nil {
		return nil, nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, nil, infrastructure.NewUnauthorized("invalid user credentials")
	}

	pair, err := s.tokens.IssuePair(ctx, u)
	if err != nil {
		return nil, nil, err
	}

	return user.ToPublicUser(u), pair, nil
}

// Logout revokes the account's refresh token.
func (s *Service) Logout(ctx context.Context, u *user.User) error {
	return s.tokens.Revoke(ctx, u)
}

// Refresh rotates the presented refresh token for a new pair.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	if refreshToken == "" {
		return nil, infrastructure.NewUnauthorized("unauthorized request")
	}
	return s.tokens.RotateRefreshToken(ctx, refreshToken)
}
