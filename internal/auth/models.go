package auth

import (
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// AccessClaims is the stateless identity carried by an access token.
// Verification never touches storage.
type AccessClaims struct {
	UserID   uuid.UUID `json:"userId"`
	Email    string    `json:"email"`
	Username string    `json:"username"`
	FullName string    `json:"fullName"`
	jwt.RegisteredClaims
}

// RefreshClaims carries only the account id. The token is additionally
// checked against the value stored on the account, which is what makes
// revocation and single-use rotation work.
type RefreshClaims struct {
	UserID uuid.UUID `json:"userId"`
	jwt.RegisteredClaims
}
