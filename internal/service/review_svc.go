package service

import (
	"context"
	"fmt"

	"github.com/you/hotel-booking/internal/domain"
)

type ReviewStore interface {
	Create(ctx context.Context, rv *domain.Review) error
	ListByHotel(ctx context.Context, hotelID uint) ([]domain.Review, error)
}

// StayChecker answers whether a guest has completed a stay at a hotel.
type StayChecker interface {
	HasCompletedStay(ctx context.Context, userID, hotelID uint) (bool, error)
}

type ReviewSvc struct {
	store  ReviewStore
	stays  StayChecker
	hotels HotelLookup
}

func NewReviewSvc(store ReviewStore, stays StayChecker, hotels HotelLookup) *ReviewSvc {
	return &ReviewSvc{store: store, stays: stays, hotels: hotels}
}

// Create accepts a review only from guests with a COMPLETED booking at the
// hotel.
func (s *ReviewSvc) Create(ctx context.Context, hotelID, userID uint, rating int, comment string) (*domain.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", domain.ErrValidation)
	}
	if _, err := s.hotels.ByID(ctx, hotelID); err != nil {
		return nil, err
	}
	stayed, err := s.stays.HasCompletedStay(ctx, userID, hotelID)
	if err != nil {
		return nil, err
	}
	if !stayed {
		return nil, fmt.Errorf("%w: no completed stay at this hotel", domain.ErrUnauthorized)
	}
	rv := &domain.Review{HotelID: hotelID, UserID: userID, Rating: rating, Comment: comment}
	if err := s.store.Create(ctx, rv); err != nil {
		return nil, err
	}
	return rv, nil
}

func (s *ReviewSvc) ListByHotel(ctx context.Context, hotelID uint) ([]domain.Review, error) {
	if _, err := s.hotels.ByID(ctx, hotelID); err != nil {
		return nil, err
	}
	return s.store.ListByHotel(ctx, hotelID)
}
