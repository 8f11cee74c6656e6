package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/you/hotel-booking/internal/domain"
)

type HotelRepo struct{ db *gorm.DB }

func NewHotelRepo(db *gorm.DB) *HotelRepo {
	return &HotelRepo{db: db}
}

func (r *HotelRepo) Migrate() error {
	return r.db.AutoMigrate(&domain.Hotel{}, &domain.Room{})
}

func (r *HotelRepo) Create(ctx context.Context, h *domain.Hotel) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *HotelRepo) ByID(ctx context.Context, id uint) (*domain.Hotel, error) {
	var h domain.Hotel
	if err := r.db.WithContext(ctx).First(&h, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &h, nil
}

func (r *HotelRepo) List(ctx context.Context, page, size int) ([]domain.Hotel, error) {
	if size <= 0 {
		size = 20
	}
	if page < 0 {
		page = 0
	}
	var out []domain.Hotel
	err := r.db.WithContext(ctx).Model(&domain.Hotel{}).
		Order("id ASC").Limit(size).Offset(page * size).Find(&out).Error
	return out, err
}

func (r *HotelRepo) CreateRoom(ctx context.Context, room *domain.Room) error {
	return r.db.WithContext(ctx).Create(room).Error
}

func (r *HotelRepo) RoomByID(ctx context.Context, id uint) (*domain.Room, error) {
	var room domain.Room
	if err := r.db.WithContext(ctx).First(&room, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &room, nil
}

func (r *HotelRepo) RoomsByHotel(ctx context.Context, hotelID uint) ([]domain.Room, error) {
	var out []domain.Room
	err := r.db.WithContext(ctx).
		Where("hotel_id = ?", hotelID).Order("id ASC").Find(&out).Error
	return out, err
}
