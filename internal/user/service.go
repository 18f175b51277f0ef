package user

import (
	"context"
	"strings"

	passwordvalidator "github.com/wagslane/go-password-validator"
	"golang.org/x/crypto/bcrypt"

	"vidtube/infrastructure"
	"vidtube/internal/otp"
)

const minPasswordEntropy = 60

// Purgers is the ordered cascade run when an account is deleted.
type Purgers []Purger

type Service struct {
	users   Repository
	otps    *otp.Service
	purgers Purgers
}

func NewService(users Repository, otps *otp.Service, purgers Purgers) *Service {
	return &Service{users: users, otps: otps, purgers: purgers}
}

type RegisterInput struct {
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	Username   string `json:"username"`
	Password   string `json:"password"`
	Otp        string `json:"otp"`
	Avatar     string `json:"avatar"`
	CoverImage string `json:"coverImage"`
}

// Register creates an account after verifying the one-time passcode issued
// for the email. Username and email are normalized before the uniqueness
// check so lookups stay case-insensitive.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*PublicUser, error) {
	input.FullName = strings.TrimSpace(input.FullName)
	input.Email = otp.NormalizeEmail(input.Email)
	input.Username = strings.ToLower(strings.TrimSpace(input.Username))

	if input.FullName == "" || input.Email == "" || input.Username == "" ||
		input.Password == "" || input.Otp == "" {
		return nil, infrastructure.NewBadRequest("all fields are required")
	}
	if input.Avatar == "" {
		return nil, infrastructure.NewBadRequest("avatar is required")
	}

	if err := s.otps.Consume(ctx, input.Email, input.Otp); err != nil {
		return nil, err
	}

	if err := passwordvalidator.Validate(input.Password, minPasswordEntropy); err != nil {
		return nil, infrastructure.NewBadRequest("password is too weak")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, infrastructure.NewInternal("failed to hash password")
	}

	created, err := s.users.Create(ctx, &User{
		Username:     input.Username,
		Email:        input.Email,
		FullName:     input.FullName,
		Avatar:       input.Avatar,
		CoverImage:   input.CoverImage,
		PasswordHash: string(hash),
	})
	if err != nil {
		return nil, err
	}
	return ToPublicUser(created), nil
}

// ChangePassword swaps the password after checking the old one. The context
// account carries no hash, so the record is reloaded first.
func (s *Service) ChangePassword(ctx context.Context, current *User, oldPassword, newPassword string) error {
	u, err := s.users.ByID(ctx, current.ID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(oldPassword)) != nil {
		return infrastructure.NewBadRequest("invalid password")
	}

	if err := passwordvalidator.Validate(newPassword, minPasswordEntropy); err != nil {
		return infrastructure.NewBadRequest("password is too weak")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return infrastructure.NewInternal("failed to hash password")
	}

	u.PasswordHash = string(hash)
	return s.users.Update(ctx, u)
}

func (s *Service) UpdateFullName(ctx context.Context, current *User, fullName string) (*PublicUser, error) {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return nil, infrastructure.NewBadRequest("fullName is required")
	}

	u, err := s.users.ByID(ctx, current.ID)
	if err != nil {
		return nil, err
	}

	u.FullName = fullName
	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return ToPublicUser(u), nil
}

// UpdateEmail changes the account email after verifying an OTP sent to the
// new address.
func (s *Service) UpdateEmail(ctx context.Context, current *User, email, otpCode string) (*PublicUser, error) {
	email = otp.NormalizeEmail(email)
	if email == "" {
		return nil, infrastructure.NewBadRequest("email is required")
	}

	if err := s.otps.Consume(ctx, email, otpCode); err != nil {
		return nil, err
	}

	u, err := s.users.ByID(ctx, current.ID)
	if err != nil {
		return nil, err
	}

	u.Email = email
	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return ToPublicUser(u), nil
}

func (s *Service) UpdateAvatar(ctx context.Context, current *User, avatar string) (*PublicUser, error) {
	if avatar == "" {
		return nil, infrastructure.NewBadRequest("avatar is required")
	}
	return s.updateImage(ctx, current, func(u *User) { u.Avatar = avatar })
}

func (s *Service) UpdateCoverImage(ctx context.Context, current *User, coverImage string) (*PublicUser, error) {
	if coverImage == "" {
		return nil, infrastructure.NewBadRequest("coverImage is required")
	}
	return s.updateImage(ctx, current, func(u *User) { u.CoverImage = coverImage })
}

func (s *Service) updateImage(ctx context.Context, current *User, apply func(*User)) (*PublicUser, error) {
	u, err := s.users.ByID(ctx, current.ID)
	if err != nil {
		return nil, err
	}

	apply(u)
	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return ToPublicUser(u), nil
}

// Delete removes the account after OTP confirmation. Dependent rows go
// first, in the purger order wired at construction, all inside one
// transaction so a mid-cascade failure leaves everything in place.
func (s *Service) Delete(ctx context.Context, current *User, otpCode string) error {
	if err := s.otps.Consume(ctx, current.Email, otpCode); err != nil {
		return err
	}
	return s.users.Delete(ctx, current.ID, s.purgers...)
}
