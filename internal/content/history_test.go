package content

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"vidtube/internal/database"
	"vidtube/internal/user"
)

func newTestDB(t *testing.T) *database.Database {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&user.User{}, &user.WatchHistoryEntry{}, &Video{}))

	return &database.Database{DB: db}
}

func createAccount(t *testing.T, users user.Repository, username string) *user.User {
	t.Helper()

	u, err := users.Create(context.Background(), &user.User{
		Username:     username,
		Email:        username + "@example.com",
		FullName:     "Account " + username,
		Avatar:       "https://cdn.example.com/" + username + ".png",
		PasswordHash: "irrelevant",
	})
	require.NoError(t, err)
	return u
}

func createVideo(t *testing.T, videos Repository, owner *user.User, title string) *Video {
	t.Helper()

	v, err := videos.CreateVideo(context.Background(), &Video{
		OwnerID:   owner.ID,
		VideoFile: "https://cdn.example.com/" + title + ".mp4",
		Thumbnail: "https://cdn.example.com/" + title + ".png",
		Title:     title,
	})
	require.NoError(t, err)
	return v
}

func TestHistoryService_WatchHistory(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := user.NewRepository(db)
	videos := NewRepository(db)
	history := NewHistoryService(users, videos)

	viewer := createAccount(t, users, "viewer")
	owner := createAccount(t, users, "owner")

	first := createVideo(t, videos, owner, "first")
	second := createVideo(t, videos, owner, "second")

	t.Run("empty history", func(t *testing.T) {
		watched, err := history.WatchHistory(ctx, viewer)
		require.NoError(t, err)
		assert.Empty(t, watched)
		assert.NotNil(t, watched)
	})

	require.NoError(t, history.RecordWatch(ctx, viewer, second.ID))
	require.NoError(t, history.RecordWatch(ctx, viewer, first.ID))

	t.Run("stored order with owner projection", func(t *testing.T) {
		watched, err := history.WatchHistory(ctx, viewer)
		require.NoError(t, err)
		require.Len(t, watched, 2)

		assert.Equal(t, "second", watched[0].Title)
		assert.Equal(t, "first", watched[1].Title)

		assert.Equal(t, "Account owner", watched[0].Owner.FullName)
		assert.Equal(t, "owner", watched[0].Owner.Username)
		assert.NotEmpty(t, watched[0].Owner.Avatar)
	})

	t.Run("views are counted", func(t *testing.T) {
		v, err := videos.VideoByID(ctx, second.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), v.Views)
	})

	t.Run("unknown video rejected", func(t *testing.T) {
		err := history.RecordWatch(ctx, viewer, uuid.New())
		require.Error(t, err)
	})
}
