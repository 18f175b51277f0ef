package subscription

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"vidtube/infrastructure"
	"vidtube/internal/user"
)

type Handler struct {
	service    *Service
	aggregator *Aggregator
}

func NewHandler(service *Service, aggregator *Aggregator) *Handler {
	return &Handler{service: service, aggregator: aggregator}
}

func (h *Handler) Toggle(w http.ResponseWriter, r *http.Request) {
	viewer, ok := user.FromContext(r.Context())
	if !ok {
		infrastructure.WriteError(w, infrastructure.ErrMissingToken)
		return
	}

	channelID, err := uuid.Parse(mux.Vars(r)["channelId"])
	if err != nil {
		infrastructure.WriteError(w, infrastructure.NewBadRequest("invalid channel id"))
		return
	}

	subscribed, err := h.service.Toggle(r.Context(), viewer.ID, channelID)
	if err != nil {
		infrastructure.WriteError(w, err)
		return
	}

	infrastructure.WriteJSON(w, http.StatusOK, map[string]bool{"subscribed": subscribed},
		"subscription toggled successfully")
}

func (h *Handler) Subscribers(w http.ResponseWriter, r *http.Request) {
	channelID, err := uuid.Parse(mux.Vars(r)["channelId"])
	if err != nil {
		infrastructure.WriteError(w, infrastructure.NewBadRequest("invalid channel id"))
		return
	}

	subscribers, err := h.aggregator.Subscribers(r.Context(), channelID)
	if err != nil {
		infrastructure.WriteError(w, err)
		return
	}

	infrastructure.WriteJSON(w, http.StatusOK, subscribers, "fetched subscriber list of the channel")
}

func (h *Handler) SubscribedChannels(w http.ResponseWriter, r *http.Request) {
	subscriberID, err := uuid.Parse(mux.Vars(r)["subscriberId"])
	if err != nil {
		infrastructure.WriteError(w, infrastructure.NewBadRequest("invalid subscriber id"))
		return
	}

	channels, err := h.aggregator.SubscribedChannels(r.Context(), subscriberID)
	if err != nil {
		infrastructure.WriteError(w, err)
		return
	}

	infrastructure.WriteJSON(w, http.StatusOK, channels, "successfully fetched channels")
}

func (h *Handler) ChannelProfile(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]
	if username == "" {
		infrastructure.WriteError(w, infrastructure.NewBadRequest("username is missing"))
		return
	}

	viewer, _ := user.FromContext(r.Context())

	profile, err := h.aggregator.ChannelProfile(r.Context(), username, viewer)
	if err != nil {
		infrastructure.WriteError(w, err)
		return
	}

	infrastructure.WriteJSON(w, http.StatusOK, profile, "channel profile fetched successfully")
}
