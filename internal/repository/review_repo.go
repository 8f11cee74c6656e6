package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/you/hotel-booking/internal/domain"
)

type ReviewRepo struct{ db *gorm.DB }

func NewReviewRepo(db *gorm.DB) *ReviewRepo {
	return &ReviewRepo{db: db}
}

func (r *ReviewRepo) Migrate() error {
	return r.db.AutoMigrate(&domain.Review{})
}

func (r *ReviewRepo) Create(ctx context.Context, rv *domain.Review) error {
	return r.db.WithContext(ctx).Create(rv).Error
}

func (r *ReviewRepo) ListByHotel(ctx context.Context, hotelID uint) ([]domain.Review, error) {
	var out []domain.Review
	err := r.db.WithContext(ctx).
		Where("hotel_id = ?", hotelID).Order("created_at DESC").Find(&out).Error
	return out, err
}
