package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"vidtube/config"
	"vidtube/infrastructure"
	"vidtube/internal/auth"
	"vidtube/internal/content"
	"vidtube/internal/subscription"
	"vidtube/internal/user"
)

type Server struct {
	router *mux.Router
	port   string
}

func NewServer(
	cfg *config.Config,
	sessions *auth.Middleware,
	authHandler *auth.Handler,
	userHandler *user.Handler,
	subscriptionHandler *subscription.Handler,
	contentHandler *content.Handler,
) *Server {
	router := mux.NewRouter()
	router.Use(Logger)
	router.Use(RateLimit(cfg.RateLimitRPS))

	router.HandleFunc("/healthz", healthCheck).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()

	users := api.PathPrefix("/users").Subrouter()
	users.HandleFunc("/register/generate-otp", userHandler.GenerateOtp).Methods(http.MethodPost)
	users.HandleFunc("/register", userHandler.Register).Methods(http.MethodPost)
	users.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)
	users.HandleFunc("/refresh-token", authHandler.RefreshToken).Methods(http.MethodPost)

	secured := api.PathPrefix("/users").Subrouter()
	secured.Use(sessions.Require)
	secured.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost)
	secured.HandleFunc("/me", userHandler.CurrentUser).Methods(http.MethodGet)
	secured.HandleFunc("/me", userHandler.DeleteAccount).Methods(http.MethodDelete)
	secured.HandleFunc("/change-password", userHandler.ChangePassword).Methods(http.MethodPost)
	secured.HandleFunc("/update-account", userHandler.UpdateAccount).Methods(http.MethodPatch)
	secured.HandleFunc("/update-email", userHandler.UpdateEmail).Methods(http.MethodPatch)
	secured.HandleFunc("/update-avatar", userHandler.UpdateAvatar).Methods(http.MethodPatch)
	secured.HandleFunc("/update-cover-image", userHandler.UpdateCoverImage).Methods(http.MethodPatch)
	secured.HandleFunc("/watch-history", contentHandler.WatchHistory).Methods(http.MethodGet)

	subs := api.PathPrefix("/subscriptions").Subrouter()
	subs.Use(sessions.Require)
	subs.HandleFunc("/toggle/{channelId}", subscriptionHandler.Toggle).Methods(http.MethodPost)
	subs.HandleFunc("/{channelId}/subscribers", subscriptionHandler.Subscribers).Methods(http.MethodGet)
	subs.HandleFunc("/subscribed/{subscriberId}", subscriptionHandler.SubscribedChannels).Methods(http.MethodGet)

	channels := api.PathPrefix("/channels").Subrouter()
	channels.Use(sessions.Optional)
	channels.HandleFunc("/{username}", subscriptionHandler.ChannelProfile).Methods(http.MethodGet)

	videos := api.PathPrefix("/videos").Subrouter()
	videos.Use(sessions.Require)
	videos.HandleFunc("/{videoId}/watch", contentHandler.RecordWatch).Methods(http.MethodPost)

	return &Server{router: router, port: cfg.Port}
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Run() error {
	return http.ListenAndServe(":"+s.port, s.router)
}

func healthCheck(w http.ResponseWriter, _ *http.Request) {
	infrastructure.WriteJSON(w, http.StatusOK, nil, "ok")
}
