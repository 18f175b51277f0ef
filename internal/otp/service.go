package otp

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"strings"
	"time"

	"vidtube/config"
	"vidtube/infrastructure"
)

// Sender delivers a generated passcode to its email address.
type Sender interface {
	SendOtpEmail(to, code string) error
}

type Service struct {
	repo   Repository
	sender Sender
	ttl    time.Duration
}

func NewService(repo Repository, sender Sender, cfg *config.Config) *Service {
	return &Service{
		repo:   repo,
		sender: sender,
		ttl:    cfg.OtpTTL,
	}
}

// Generate creates a fresh passcode for the email and mails it. A newer code
// supersedes older ones because verification only consults the latest.
func (s *Service) Generate(ctx context.Context, email string) error {
	email = NormalizeEmail(email)
	if email == "" {
		return infrastructure.NewBadRequest("email is required")
	}

	code := infrastructure.GenerateOtpCode()
	if err := s.repo.Create(ctx, &Otp{Email: email, Code: code}); err != nil {
		return err
	}

	if err := s.sender.SendOtpEmail(email, code); err != nil {
		slog.Error("failed to send otp email", "email", email, "error", err)
		return infrastructure.NewInternal("failed to send otp")
	}
	return nil
}

// Verify checks code against the most recent passcode issued for email.
// Codes older than the configured TTL count as expired.
func (s *Service) Verify(ctx context.Context, email, code string) error {
	email = NormalizeEmail(email)
	latest, err := s.repo.LatestByEmail(ctx, email)
	if err != nil {
		return err
	}

	if time.Since(latest.CreatedAt) > s.ttl {
		return infrastructure.NewBadRequest("otp has expired")
	}

	if subtle.ConstantTimeCompare([]byte(latest.Code), []byte(code)) != 1 {
		return infrastructure.NewUnauthorized("otp is invalid")
	}
	return nil
}

// Consume verifies the passcode and removes every code issued for the email
// so it cannot be replayed.
func (s *Service) Consume(ctx context.Context, email, code string) error {
	if err := s.Verify(ctx, email, code); err != nil {
		return err
	}
	return s.repo.DeleteByEmail(ctx, NormalizeEmail(email))
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
