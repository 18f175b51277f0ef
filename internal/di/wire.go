//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"vidtube/config"
	"vidtube/internal/api"
	"vidtube/internal/auth"
	"vidtube/internal/content"
	"vidtube/internal/database"
	"vidtube/internal/email"
	"vidtube/internal/otp"
	"vidtube/internal/subscription"
	"vidtube/internal/user"
)

var AppSet = wire.NewSet(
	database.NewDatabase,
	email.Set,
	otp.Set,
	user.Set,
	auth.Set,
	subscription.Set,
	content.Set,
	ProvidePurgers,
	api.NewServer,
	NewApp,
)

func InitializeApp(cfg *config.Config) (*App, error) {
	wire.Build(AppSet)
	return &App{}, nil
}
