package otp

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"vidtube/infrastructure"
	"vidtube/internal/database"
)

type Repository interface {
	Create(ctx context.Context, o *Otp) error
	LatestByEmail(ctx context.Context, email string) (*Otp, error)
	DeleteByEmail(ctx context.Context, email string) error
}

type repository struct {
	db *database.Database
}

func NewRepository(db *database.Database) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, o *Otp) error {
	if err := r.db.WithContext(ctx).Create(o).Error; err != nil {
		return infrastructure.NewInternal("failed to store otp")
	}
	return nil
}

func (r *repository) LatestByEmail(ctx context.Context, email string) (*Otp, error) {
	var o Otp
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		Order("created_at DESC").
		First(&o).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, infrastructure.NewBadRequest("otp has expired")
		}
		return nil, infrastructure.NewInternal("failed to load otp")
	}
	return &o, nil
}

func (r *repository) DeleteByEmail(ctx context.Context, email string) error {
	if err := r.db.WithContext(ctx).Where("email = ?", email).Delete(&Otp{}).Error; err != nil {
		return infrastructure.NewInternal("failed to delete otp")
	}
	return nil
}
