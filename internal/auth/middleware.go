package auth

import (
	"net/http"
	"strings"

	"vidtube/infrastructure"
	"vidtube/internal/user"
)

const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

// Middleware resolves the session identity for incoming requests.
type Middleware struct {
	tokens *TokenService
	users  user.Repository
}

func NewMiddleware(tokens *TokenService, users user.Repository) *Middleware {
	return &Middleware{tokens: tokens, users: users}
}

// Require rejects requests without a valid access token. On success the
// resolved account, with credential fields stripped, is attached to the
// request context.
func (m *Middleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := extractToken(r)
		if raw == "" {
			infrastructure.WriteError(w, infrastructure.ErrMissingToken)
			return
		}

		u, err := m.resolve(r, raw)
		if err != nil {
			infrastructure.WriteError(w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(user.NewContext(r.Context(), u)))
	})
}

// Optional attaches the identity when a valid token is present and lets the
// request through anonymously otherwise. Used by endpoints whose response
// merely varies with the viewer.
func (m *Middleware) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if raw := extractToken(r); raw != "" {
			if u, err := m.resolve(r, raw); err == nil {
				r = r.WithContext(user.NewContext(r.Context(), u))
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (m *Middleware) resolve(r *http.Request, raw string) (*user.User, error) {
	claims, err := m.tokens.VerifyAccessToken(raw)
	if err != nil {
		return nil, err
	}

	u, err := m.users.ByID(r.Context(), claims.UserID)
	if err != nil {
		return nil, infrastructure.ErrInvalidToken
	}

	// downstream handlers never see credential material
	u.PasswordHash = ""
	u.RefreshToken = ""
	return u, nil
}

func extractToken(r *http.Request) string {
	if c, err := r.Cookie(AccessTokenCookie); err == nil && c.Value != "" {
		return c.Value
	}
	header := r.Header.Get("Authorization")
	return strings.TrimPrefix(header, "Bearer ")
}
