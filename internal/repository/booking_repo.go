package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/you/hotel-booking/internal/domain"
)

// blocking statuses hold a room's interval; CANCELLED frees it.
var blockingStatuses = []domain.BookingStatus{
	domain.BookingPending,
	domain.BookingAccepted,
	domain.BookingConfirmed,
	domain.BookingCompleted,
}

type BookingRepo struct{ db *gorm.DB }

func NewBookingRepo(db *gorm.DB) *BookingRepo {
	return &BookingRepo{db: db}
}

func (r *BookingRepo) Migrate() error {
	return r.db.AutoMigrate(&domain.Booking{}, &domain.EventConsumed{})
}

// CreateIfAvailable checks availability and inserts in one transaction.
// Locking candidate rows is not enough: an empty room has no rows to lock,
// and two concurrent inserts for the same window would both pass the check.
// A per-room advisory lock serializes the check+insert regardless of what
// already exists; the loser gets ErrRoomUnavailable.
func (r *BookingRepo) CreateIfAvailable(ctx context.Context, b *domain.Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", int64(b.RoomID)).Error; err != nil {
			return err
		}
		var n int64
		err := tx.Model(&domain.Booking{}).
			Where("room_id = ? AND status IN ?", b.RoomID, blockingStatuses).
			Where("check_in < ? AND check_out > ?", b.CheckOut, b.CheckIn).
			Count(&n).Error
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.ErrRoomUnavailable
		}
		return tx.Create(b).Error
	})
}

// CountOverlapping is the read-only availability probe. Half-open interval
// semantics: [a,b) and [c,d) overlap iff a < d AND c < b.
func (r *BookingRepo) CountOverlapping(ctx context.Context, roomID uint, checkIn, checkOut time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("room_id = ? AND status IN ?", roomID, blockingStatuses).
		Where("check_in < ? AND check_out > ?", checkOut, checkIn).
		Count(&n).Error
	return n, err
}

func (r *BookingRepo) ByID(ctx context.Context, id uint) (*domain.Booking, error) {
	var b domain.Booking
	if err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// UpdateStatus applies a guarded status transition under a row lock. The
// guard runs against the freshly locked row, so concurrent transition
// requests cannot clobber each other; a guard returning (false, nil) makes
// the call an idempotent no-op.
func (r *BookingRepo) UpdateStatus(ctx context.Context, id uint, to domain.BookingStatus, guard func(*domain.Booking) (bool, error)) (*domain.Booking, error) {
	var b domain.Booking
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&b, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		apply, err := guard(&b)
		if err != nil {
			return err
		}
		if !apply {
			return nil
		}
		b.Status = to
		b.Version++
		return tx.Save(&b).Error
	})
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepo) ListByUser(ctx context.Context, userID uint) ([]domain.Booking, error) {
	var out []domain.Booking
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("check_in ASC").
		Find(&out).Error
	return out, err
}

func (r *BookingRepo) ListByHotel(ctx context.Context, hotelID uint) ([]domain.Booking, error) {
	var out []domain.Booking
	err := r.db.WithContext(ctx).
		Where("hotel_id = ?", hotelID).
		Order("check_in ASC").
		Find(&out).Error
	return out, err
}

// CompleteExpiredByUser promotes the user's stale bookings to COMPLETED in a
// single statement. Terminal rows are left alone.
func (r *BookingRepo) CompleteExpiredByUser(ctx context.Context, userID uint, now time.Time) error {
	return r.completeExpired(ctx, "user_id", userID, now)
}

func (r *BookingRepo) CompleteExpiredByHotel(ctx context.Context, hotelID uint, now time.Time) error {
	return r.completeExpired(ctx, "hotel_id", hotelID, now)
}

func (r *BookingRepo) completeExpired(ctx context.Context, column string, id uint, now time.Time) error {
	return r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where(column+" = ? AND check_out < ?", id, now).
		Where("status NOT IN ?", []domain.BookingStatus{domain.BookingCompleted, domain.BookingCancelled}).
		Updates(map[string]any{
			"status":  domain.BookingCompleted,
			"version": gorm.Expr("version + 1"),
		}).Error
}

// SeenEvent / RecordEvent give the payment consumer at-most-once effects on
// redelivery. Status-level idempotency in the service backs them up.
func (r *BookingRepo) SeenEvent(ctx context.Context, eventID string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.EventConsumed{}).
		Where("id = ?", eventID).Count(&n).Error
	return n > 0, err
}

func (r *BookingRepo) RecordEvent(ctx context.Context, eventID, eventKey string) error {
	rec := domain.EventConsumed{ID: eventID, EventKey: eventKey, ProcessedAt: time.Now().UTC()}
	return r.db.WithContext(ctx).Create(&rec).Error
}

// HasCompletedStay reports whether the user has at least one COMPLETED
// booking at the hotel. Gate for posting reviews.
func (r *BookingRepo) HasCompletedStay(ctx context.Context, userID, hotelID uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("user_id = ? AND hotel_id = ? AND status = ?", userID, hotelID, domain.BookingCompleted).
		Count(&n).Error
	return n > 0, err
}
