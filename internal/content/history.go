package content

import (
	"context"
	"time"

	"github.com/google/uuid"

	"vidtube/internal/user"
)

// OwnerSummary is the owner projection embedded in watch history entries.
type OwnerSummary struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

type WatchVideo struct {
	ID          uuid.UUID    `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	VideoFile   string       `json:"videoFile"`
	Thumbnail   string       `json:"thumbnail"`
	Duration    float64      `json:"duration"`
	Views       int64        `json:"views"`
	CreatedAt   time.Time    `json:"createdAt"`
	Owner       OwnerSummary `json:"owner"`
}

// HistoryService derives the denormalized watch history view. Reads are
// uncached: every call re-queries the stores.
type HistoryService struct {
	users  user.Repository
	videos Repository
}

func NewHistoryService(users user.Repository, videos Repository) *HistoryService {
	return &HistoryService{users: users, videos: videos}
}

// WatchHistory returns the viewer's watched videos in stored order, each
// joined to its owner projection.
func (s *HistoryService) WatchHistory(ctx context.Context, viewer *user.User) ([]WatchVideo, error) {
	ids, err := s.users.WatchHistoryIDs(ctx, viewer.ID)
	if err != nil {
		return nil, err
	}

	videos, err := s.videos.VideosByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	history := make([]WatchVideo, 0, len(videos))
	for _, v := range videos {
		history = append(history, WatchVideo{
			ID:          v.ID,
			Title:       v.Title,
			Description: v.Description,
			VideoFile:   v.VideoFile,
			Thumbnail:   v.Thumbnail,
			Duration:    v.Duration,
			Views:       v.Views,
			CreatedAt:   v.CreatedAt,
			Owner: OwnerSummary{
				FullName: v.Owner.FullName,
				Username: v.Owner.Username,
				Avatar:   v.Owner.Avatar,
			},
		})
	}
	return history, nil
}

// RecordWatch appends the video to the viewer's history and bumps the view
// counter.
func (s *HistoryService) RecordWatch(ctx context.Context, viewer *user.User, videoID uuid.UUID) error {
	if _, err := s.videos.VideoByID(ctx, videoID); err != nil {
		return err
	}
	if err := s.users.AppendWatchHistory(ctx, viewer.ID, videoID); err != nil {
		return err
	}
	return s.videos.IncrementViews(ctx, videoID)
}
