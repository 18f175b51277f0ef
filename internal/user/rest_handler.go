package user

import (
	"encoding/json"
	"net/http"

	"vidtube/infrastructure"
	"vidtube/internal/otp"
)

type Handler struct {
	service *Service
	otps    *otp.Service
}

func NewHandler(service *Service, otps *otp.Service) *Handler {
	return &Handler{service: service, otps: otps}
}

func (h *Handler) GenerateOtp(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		infrastructure.WriteError(w, infrastructure.NewBadRequest("invalid request body"))
		return
	}

	if err := h.otps.Generate(r.Context(), req.Email); err != nil {
		infrastructure.WriteError(w, err)
		return
	}

	infrastructure.WriteJSON(w, http.StatusOK, nil, "otp generated successfully")
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var input RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		infrastructure.WriteError(w, infrastructure.NewBadRequest("invalid request body"))
		return
	}

	created, err := h.service.Register(r.Context(), input)
	if err != nil {
		infrastructure.WriteError(w, err)
		return
	}

	infrastructure.WriteJSON(w, http.StatusCreated, created, "user registered successfully")
}

func (h *Handler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	u, ok := FromContext(r.Context())
	if !ok {
		infrastructure.WriteError(w, infrastructure.ErrMissingToken)
		return
	}
	infrastructure.WriteJSON(w, http.StatusOK, ToPublicUser(u), "user fetched successfully")
}

func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	u, ok := FromContext(r.Context())
	if !ok {
		infrastructure.WriteError(w, infrastructure.ErrMissingToken)
		return
	}

	var req struct {
		OldPassword string `json:"oldPassword"`
		NewPassword string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		infrastructure.WriteError(w, infrastructure.NewBadRequest("invalid request body"))
		return
	}

	if err := h.service.ChangePassword(r.Context(), u, req.OldPassword, req.NewPassword); err != nil {
		infrastructure.WriteError(w, err)
		return
	}

	infrastructure.WriteJSON(w, http.StatusOK, nil, "password changed successfully")
}

func (h *Handler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	u, ok := FromContext(r.Context())
	if !ok {
		infrastructure.WriteError(w, infrastructure.ErrMissingToken)
		return
	}

	var req struct {
		FullName string `json:"fullName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		infrastructure.WriteError(w, infrastructure.NewBadRequest("invalid request body"))
		return
	}

	updated, err := h.service.UpdateFullName(r.Context(), u, req.FullName)
	if err != nil {
		infrastructure.WriteError(w, err)
		return
	}

	infrastructure.WriteJSON(w, http.StatusOK, updated, "account details updated successfully")
}

func (h *Handler) UpdateEmail(w http.ResponseWriter, r *http.Request) {
	u, ok := FromContext(r.Context())
	if !ok {
		infrastructure.WriteError(w, infrastructure.ErrMissingToken)
		return
	}

	var req struct {
		Email string `json:"email"`
		Otp   string `json:"otp"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		infrastructure.WriteError(w, infrastructure.NewBadRequest("invalid request body"))
		return
	}

	updated, err := h.service.UpdateEmail(r.Context(), u, req.Email, req.Otp)
	if err != nil {
		infrastructure.WriteError(w, err)
		return
	}

	infrastructure.WriteJSON(w, http.StatusOK, updated, "email updated successfully")
}

func (h *Handler) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	u, ok := FromContext(r.Context())
	if !ok {
		infrastructure.WriteError(w, infrastructure.ErrMissingToken)
		return
	}

	var req struct {
		Avatar string `json:"avatar"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		infrastructure.WriteError(w, infrastructure.NewBadRequest("invalid request body"))
		return
	}

	updated, err := h.service.UpdateAvatar(r.Context(), u, req.Avatar)
	if err != nil {
		infrastructure.WriteError(w, err)
		return
	}

	infrastructure.WriteJSON(w, http.StatusOK, updated, "avatar updated successfully")
}

func (h *Handler) UpdateCoverImage(w http.ResponseWriter, r *http.Request) {
	u, ok := FromContext(r.Context())
	if !ok {
		infrastructure.WriteError(w, infrastructure.ErrMissingToken)
		return
	}

	var req struct {
		CoverImage string `json:"coverImage"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		infrastructure.WriteError(w, infrastructure.NewBadRequest("invalid request body"))
		return
	}

	updated, err := h.service.UpdateCoverImage(r.Context(), u, req.CoverImage)
	if err != nil {
		infrastructure.WriteError(w, err)
		return
	}

	infrastructure.WriteJSON(w, http.StatusOK, updated, "cover image updated successfully")
}

func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	u, ok := FromContext(r.Context())
	if !ok {
		infrastructure.WriteError(w, infrastructure.ErrMissingToken)
		return
	}

	var req struct {
		Otp string `json:"otp"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		infrastructure.WriteError(w, infrastructure.NewBadRequest("invalid request body"))
		return
	}

	if err := h.service.Delete(r.Context(), u, req.Otp); err != nil {
		infrastructure.WriteError(w, err)
		return
	}

	infrastructure.WriteJSON(w, http.StatusOK, nil, "account deleted successfully")
}
