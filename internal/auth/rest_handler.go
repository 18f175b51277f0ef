package auth

import (
	"encoding/json"
	"net/http"

	"vidtube/config"
	"vidtube/infrastructure"
	"vidtube/internal/user"
)

type Handler struct {
	service       *Service
	cookieSecure  bool
	accessMaxAge  int
	refreshMaxAge int
}

func NewHandler(service *Service, cfg *config.Config) *Handler {
	return &Handler{
		service:       service,
		cookieSecure:  cfg.CookieSecure,
		accessMaxAge:  int(cfg.AccessTokenTTL.Seconds()),
		refreshMaxAge: int(cfg.RefreshTokenTTL.Seconds()),
	}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		infrastructure.WriteError(w, infrastructure.NewBadRequest("invalid request body"))
		return
	}

	loggedIn, pair, err := h.service.Login(r.Context(), req.Email, req.Username, req.Password)
	if err != nil {
		infrastructure.WriteError(w, err)
		return
	}

	h.setAuthCookies(w, pair)
	infrastructure.WriteJSON(w, http.StatusOK, map[string]any{
		"user":         loggedIn,
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	}, "user logged in successfully")
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	u, ok := user.FromContext(r.Context())
	if !ok {
		infrastructure.WriteError(w, infrastructure.ErrMissingToken)
		return
	}

	if err := h.service.Logout(r.Context(), u); err != nil {
		infrastructure.WriteError(w, err)
		return
	}

	h.clearAuthCookies(w)
	infrastructure.WriteJSON(w, http.StatusOK, nil, "user logged out")
}

func (h *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	incoming := ""
	if c, err := r.Cookie(RefreshTokenCookie); err == nil {
		incoming = c.Value
	}
	if incoming == "" && r.Body != nil {
		var req struct {
			RefreshToken string `json:"refreshToken"`
		}
		// body is optional when the cookie is present
		_ = json.NewDecoder(r.Body).Decode(&req)
		incoming = req.RefreshToken
	}

	pair, err := h.service.Refresh(r.Context(), incoming)
	if err != nil {
		infrastructure.WriteError(w, err)
		return
	}

	h.setAuthCookies(w, pair)
	infrastructure.WriteJSON(w, http.StatusOK, pair, "access token refreshed")
}

func (h *Handler) setAuthCookies(w http.ResponseWriter, pair *TokenPair) {
	http.SetCookie(w, h.cookie(AccessTokenCookie, pair.AccessToken, h.accessMaxAge))
	http.SetCookie(w, h.cookie(RefreshTokenCookie, pair.RefreshToken, h.refreshMaxAge))
}

func (h *Handler) clearAuthCookies(w http.ResponseWriter) {
	http.SetCookie(w, h.cookie(AccessTokenCookie, "", -1))
	http.SetCookie(w, h.cookie(RefreshTokenCookie, "", -1))
}

func (h *Handler) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteStrictMode,
	}
}
