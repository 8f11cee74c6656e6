package service

import (
	"context"
	"fmt"

	"github.com/you/hotel-booking/internal/domain"
)

type HotelStore interface {
	Create(ctx context.Context, h *domain.Hotel) error
	ByID(ctx context.Context, id uint) (*domain.Hotel, error)
	List(ctx context.Context, page, size int) ([]domain.Hotel, error)
	CreateRoom(ctx context.Context, room *domain.Room) error
	RoomByID(ctx context.Context, id uint) (*domain.Room, error)
	RoomsByHotel(ctx context.Context, hotelID uint) ([]domain.Room, error)
}

// CatalogSvc owns the hotel/room side the booking core looks up.
type CatalogSvc struct {
	store HotelStore
}

func NewCatalogSvc(store HotelStore) *CatalogSvc {
	return &CatalogSvc{store: store}
}

func (s *CatalogSvc) CreateHotel(ctx context.Context, h *domain.Hotel, ownerID uint) (*domain.Hotel, error) {
	if h.Name == "" {
		return nil, fmt.Errorf("%w: hotel name is required", domain.ErrValidation)
	}
	h.OwnerID = ownerID
	if err := s.store.Create(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

func (s *CatalogSvc) Hotel(ctx context.Context, id uint) (*domain.Hotel, error) {
	return s.store.ByID(ctx, id)
}

func (s *CatalogSvc) ListHotels(ctx context.Context, page, size int) ([]domain.Hotel, error) {
	return s.store.List(ctx, page, size)
}

// CreateRoom is owner-bound: the actor must own the hotel the room joins.
func (s *CatalogSvc) CreateRoom(ctx context.Context, room *domain.Room, actorID uint) (*domain.Room, error) {
	if room.PriceCents <= 0 {
		return nil, fmt.Errorf("%w: room price must be positive", domain.ErrValidation)
	}
	if room.MaxGuests <= 0 {
		return nil, fmt.Errorf("%w: room capacity must be positive", domain.ErrValidation)
	}
	hotel, err := s.store.ByID(ctx, room.HotelID)
	if err != nil {
		return nil, err
	}
	if hotel.OwnerID != actorID {
		return nil, domain.ErrUnauthorized
	}
	if err := s.store.CreateRoom(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *CatalogSvc) Room(ctx context.Context, id uint) (*domain.Room, error) {
	return s.store.RoomByID(ctx, id)
}

func (s *CatalogSvc) RoomsByHotel(ctx context.Context, hotelID uint) ([]domain.Room, error) {
	if _, err := s.store.ByID(ctx, hotelID); err != nil {
		return nil, err
	}
	return s.store.RoomsByHotel(ctx, hotelID)
}
