package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"vidtube/infrastructure"
	"vidtube/internal/database"
)

// Purger removes the rows a feature owns for an account being deleted. It
// runs inside the deletion transaction so a failing step rolls back the
// whole cascade.
type Purger interface {
	PurgeAccount(tx *gorm.DB, accountID uuid.UUID) error
}

type Repository interface {
	Create(ctx context.Context, u *User) (*User, error)
	ByID(ctx context.Context, id uuid.UUID) (*User, error)
	ByUsername(ctx context.Context, username string) (*User, error)
	ByEmailOrUsername(ctx context.Context, email, username string) (*User, error)
	Update(ctx context.Context, u *User) error

	SetRefreshToken(ctx context.Context, id uuid.UUID, token string) error
	SwapRefreshToken(ctx context.Context, id uuid.UUID, current, next string) (bool, error)
	ClearRefreshToken(ctx context.Context, id uuid.UUID) error

	AppendWatchHistory(ctx context.Context, id, videoID uuid.UUID) error
	WatchHistoryIDs(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error)

	Delete(ctx context.Context, id uuid.UUID, purgers ...Purger) error
}

type repository struct {
	db *database.Database
}

func NewRepository(db *database.Database) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, u *User) (*User, error) {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, infrastructure.NewConflict("username or email is already registered")
		}
		return nil, infrastructure.NewInternal("failed to create user")
	}
	return u, nil
}

func (r *repository) ByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var u User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, infrastructure.NewNotFound("user does not exist")
		}
		return nil, infrastructure.NewInternal("failed to load user")
	}
	return &u, nil
}

func (r *repository) ByUsername(ctx context.Context, username string) (*User, error) {
	var u User
	if err := r.db.WithContext(ctx).First(&u, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, infrastructure.NewNotFound("user does not exist")
		}
		return nil, infrastructure.NewInternal("failed to load user")
	}
	return &u, nil
}

func (r *repository) ByEmailOrUsername(ctx context.Context, email, username string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).
		Where("email = ? OR username = ?", email, username).
		First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, infrastructure.NewNotFound("user does not exist")
		}
		return nil, infrastructure.NewInternal("failed to load user")
	}
	return &u, nil
}

func (r *repository) Update(ctx context.Context, u *User) error {
	if err := r.db.WithContext(ctx).Save(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return infrastructure.NewConflict("username or email is already registered")
		}
		return infrastructure.NewInternal("failed to update user")
	}
	return nil
}

func (r *repository) SetRefreshToken(ctx context.Context, id uuid.UUID, token string) error {
	err := r.db.WithContext(ctx).
		Model(&User{}).
		Where("id = ?", id).
		Update("refresh_token", token).Error
	if err != nil {
		return infrastructure.NewInternal("failed to persist refresh token")
	}
	return nil
}

// SwapRefreshToken replaces the stored refresh token only if it still equals
// current. The conditional UPDATE is the per-account compare-and-set that
// serializes concurrent rotations: exactly one wins, the rest see false.
func (r *repository) SwapRefreshToken(ctx context.Context, id uuid.UUID, current, next string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&User{}).
		Where("id = ? AND refresh_token = ?", id, current).
		Update("refresh_token", next)
	if res.Error != nil {
		return false, infrastructure.NewInternal("failed to rotate refresh token")
	}
	return res.RowsAffected == 1, nil
}

func (r *repository) ClearRefreshToken(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).
		Model(&User{}).
		Where("id = ?", id).
		Update("refresh_token", "").Error
	if err != nil {
		return infrastructure.NewInternal("failed to clear refresh token")
	}
	return nil
}

func (r *repository) AppendWatchHistory(ctx context.Context, id, videoID uuid.UUID) error {
	entry := WatchHistoryEntry{UserID: id, VideoID: videoID}
	if err := r.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return infrastructure.NewInternal("failed to record watch history")
	}
	return nil
}

func (r *repository) WatchHistoryIDs(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&WatchHistoryEntry{}).
		Where("user_id = ?", id).
		Order("id").
		Pluck("video_id", &ids).Error
	if err != nil {
		return nil, infrastructure.NewInternal("failed to load watch history")
	}
	return ids, nil
}

// Delete removes the account and everything it owns in one transaction.
// Purgers run in the order given before the account row itself goes.
func (r *repository) Delete(ctx context.Context, id uuid.UUID, purgers ...Purger) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, p := range purgers {
			if err := p.PurgeAccount(tx, id); err != nil {
				return err
			}
		}
		if err := tx.Where("user_id = ?", id).Delete(&WatchHistoryEntry{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&User{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return infrastructure.NewNotFound("user does not exist")
		}
		return nil
	})
	if err != nil {
		var apiErr *infrastructure.APIError
		if errors.As(err, &apiErr) {
			return apiErr
		}
		return infrastructure.NewInternal("failed to delete user")
	}
	return nil
}
