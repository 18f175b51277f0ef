package content

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"vidtube/infrastructure"
	"vidtube/internal/database"
)

type Repository interface {
	CreateVideo(ctx context.Context, v *Video) (*Video, error)
	VideoByID(ctx context.Context, id uuid.UUID) (*Video, error)
	VideosByIDs(ctx context.Context, ids []uuid.UUID) ([]Video, error)
	IncrementViews(ctx context.Context, id uuid.UUID) error

	PurgeAccount(tx *gorm.DB, accountID uuid.UUID) error
}

type repository struct {
	db *database.Database
}

func NewRepository(db *database.Database) Repository {
	return &repository{db: db}
}

func (r *repository) CreateVideo(ctx context.Context, v *Video) (*Video, error) {
	if err := r.db.WithContext(ctx).Create(v).Error; err != nil {
		return nil, infrastructure.NewInternal("failed to create video")
	}
	return v, nil
}

func (r *repository) VideoByID(ctx context.Context, id uuid.UUID) (*Video, error) {
	var v Video
	if err := r.db.WithContext(ctx).First(&v, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, infrastructure.NewNotFound("video does not exist")
		}
		return nil, infrastructure.NewInternal("failed to load video")
	}
	return &v, nil
}

// VideosByIDs loads the videos with their owners, returned in the order of
// ids. Missing ids are skipped.
func (r *repository) VideosByIDs(ctx context.Context, ids []uuid.UUID) ([]Video, error) {
	if len(ids) == 0 {
		return []Video{}, nil
	}

	var videos []Video
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Where("id IN ?", ids).
		Find(&videos).Error
	if err != nil {
		return nil, infrastructure.NewInternal("failed to load videos")
	}

	byID := make(map[uuid.UUID]Video, len(videos))
	for _, v := range videos {
		byID[v.ID] = v
	}

	ordered := make([]Video, 0, len(ids))
	for _, id := range ids {
		if v, ok := byID[id]; ok {
			ordered = append(ordered, v)
		}
	}
	return ordered, nil
}

func (r *repository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).
		Model(&Video{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
	if err != nil {
		return infrastructure.NewInternal("failed to update views")
	}
	return nil
}

// PurgeAccount removes everything the account authored: likes first, then
// comments, tweets and videos, so no row ever references a deleted parent.
func (r *repository) PurgeAccount(tx *gorm.DB, accountID uuid.UUID) error {
	if err := tx.Where("liked_by_id = ?", accountID).Delete(&Like{}).Error; err != nil {
		return err
	}
	if err := tx.Where("owner_id = ?", accountID).Delete(&Comment{}).Error; err != nil {
		return err
	}
	if err := tx.Where("owner_id = ?", accountID).Delete(&Tweet{}).Error; err != nil {
		return err
	}
	return tx.Where("owner_id = ?", accountID).Delete(&Video{}).Error
}
