package di

import (
	"vidtube/internal/api"
	"vidtube/internal/content"
	"vidtube/internal/database"
	"vidtube/internal/otp"
	"vidtube/internal/subscription"
	"vidtube/internal/user"
)

// App bundles the wired server with the database handle so the entrypoint
// can run migrations and close the pool on shutdown.
type App struct {
	Server *api.Server
	DB     *database.Database
}

func NewApp(server *api.Server, db *database.Database) *App {
	return &App{Server: server, DB: db}
}

// Models lists every persisted model for schema auto-migration.
func Models() []any {
	return []any{
		&user.User{},
		&user.WatchHistoryEntry{},
		&otp.Otp{},
		&subscription.Subscription{},
		&content.Video{},
		&content.Tweet{},
		&content.Comment{},
		&content.Like{},
	}
}

// ProvidePurgers fixes the account deletion cascade order: authored content
// first, then subscription edges, then the account row itself.
func ProvidePurgers(contents content.Repository, edges subscription.Repository) user.Purgers {
	return user.Purgers{contents, edges}
}
