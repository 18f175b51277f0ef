package content

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"vidtube/infrastructure"
	"vidtube/internal/user"
)

type Handler struct {
	history *HistoryService
}

func NewHandler(history *HistoryService) *Handler {
	return &Handler{history: history}
}

func (h *Handler) WatchHistory(w http.ResponseWriter, r *http.Request) {
	viewer, ok := user.FromContext(r.Context())
	if !ok {
		infrastructure.WriteError(w, infrastructure.ErrMissingToken)
		return
	}

	history, err := h.history.WatchHistory(r.Context(), viewer)
	if err != nil {
		infrastructure.WriteError(w, err)
		return
	}

	infrastructure.WriteJSON(w, http.StatusOK, history, "watch history fetched successfully")
}

func (h *Handler) RecordWatch(w http.ResponseWriter, r *http.Request) {
	viewer, ok := user.FromContext(r.Context())
	if !ok {
		infrastructure.WriteError(w, infrastructure.ErrMissingToken)
		return
	}

	videoID, err := uuid.Parse(mux.Vars(r)["videoId"])
	if err != nil {
		infrastructure.WriteError(w, infrastructure.NewBadRequest("invalid video id"))
		return
	}

	if err := h.history.RecordWatch(r.Context(), viewer, videoID); err != nil {
		infrastructure.WriteError(w, err)
		return
	}

	infrastructure.WriteJSON(w, http.StatusOK, nil, "watch recorded")
}
