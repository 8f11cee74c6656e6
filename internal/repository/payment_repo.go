package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/you/hotel-booking/internal/domain"
)

type PaymentRepo struct{ db *gorm.DB }

func NewPaymentRepo(db *gorm.DB) *PaymentRepo {
	return &PaymentRepo{db: db}
}

func (r *PaymentRepo) Migrate() error {
	return r.db.AutoMigrate(&domain.Payment{})
}

func (r *PaymentRepo) Create(ctx context.Context, p *domain.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PaymentRepo) ByID(ctx context.Context, id uint) (*domain.Payment, error) {
	var p domain.Payment
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// ActiveByBooking returns the booking's non-failed payment, if one exists.
// A booking carries at most one active payment at a time.
func (r *PaymentRepo) ActiveByBooking(ctx context.Context, bookingID uint) (*domain.Payment, error) {
	var p domain.Payment
	err := r.db.WithContext(ctx).
		Where("booking_id = ? AND status <> ?", bookingID, domain.PaymentFailed).
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepo) UpdateStatus(ctx context.Context, id uint, to domain.PaymentStatus) (*domain.Payment, error) {
	var p domain.Payment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&p, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		p.Status = to
		return tx.Save(&p).Error
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepo) ListByUser(ctx context.Context, userID uint) ([]domain.Payment, error) {
	var out []domain.Payment
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *PaymentRepo) ListByHotel(ctx context.Context, hotelID uint) ([]domain.Payment, error) {
	var out []domain.Payment
	err := r.db.WithContext(ctx).
		Where("hotel_id = ?", hotelID).Order("created_at DESC").Find(&out).Error
	return out, err
}
