package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/you/hotel-booking/internal/domain"
)

const (
	RoutingPaymentCompleted = "payment.completed"
	RoutingPaymentFailed    = "payment.failed"
)

type PaymentStore interface {
	Create(ctx context.Context, p *domain.Payment) error
	ByID(ctx context.Context, id uint) (*domain.Payment, error)
	ActiveByBooking(ctx context.Context, bookingID uint) (*domain.Payment, error)
	UpdateStatus(ctx context.Context, id uint, to domain.PaymentStatus) (*domain.Payment, error)
	ListByUser(ctx context.Context, userID uint) ([]domain.Payment, error)
	ListByHotel(ctx context.Context, hotelID uint) ([]domain.Payment, error)
}

type BookingLookup interface {
	ByID(ctx context.Context, id uint) (*domain.Booking, error)
}

type EventPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

type PaymentSvc struct {
	store    PaymentStore
	bookings BookingLookup
	hotels   HotelLookup
	rooms    RoomLookup
	pub      EventPublisher
}

func NewPaymentSvc(store PaymentStore, bookings BookingLookup, hotels HotelLookup, rooms RoomLookup, pub EventPublisher) *PaymentSvc {
	return &PaymentSvc{store: store, bookings: bookings, hotels: hotels, rooms: rooms, pub: pub}
}

// Register opens a PENDING payment for the guest's own booking. The amount
// is computed, never supplied: nights x nightly room price, at least one
// night even for sub-day stays.
func (s *PaymentSvc) Register(ctx context.Context, bookingID, guestID uint) (*domain.Payment, error) {
	b, err := s.bookings.ByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.UserID != guestID {
		return nil, domain.ErrUnauthorized
	}
	if _, err := s.store.ActiveByBooking(ctx, bookingID); err == nil {
		return nil, fmt.Errorf("%w: booking %d already has an active payment", domain.ErrValidation, bookingID)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	room, err := s.rooms.RoomByID(ctx, b.RoomID)
	if err != nil {
		return nil, err
	}

	p := &domain.Payment{
		Reference:   uuid.NewString(),
		BookingID:   b.ID,
		UserID:      b.UserID,
		HotelID:     b.HotelID,
		AmountCents: nights(b.CheckIn, b.CheckOut) * room.PriceCents,
		Status:      domain.PaymentPending,
	}
	if err := s.store.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// UpdateStatus is owner-only: the owner of the booking's hotel settles or
// fails the payment. A settled or failed payment publishes the event that
// drives the booking coordinator.
func (s *PaymentSvc) UpdateStatus(ctx context.Context, paymentID uint, to domain.PaymentStatus, actorID uint, actorRole domain.Role) (*domain.Payment, error) {
	p, err := s.store.ByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	b, err := s.bookings.ByID(ctx, p.BookingID)
	if err != nil {
		return nil, err
	}
	hotel, err := s.hotels.ByID(ctx, b.HotelID)
	if err != nil {
		return nil, err
	}
	if actorRole != domain.RoleOwner || hotel.OwnerID != actorID {
		return nil, domain.ErrUnauthorized
	}

	p, err = s.store.UpdateStatus(ctx, paymentID, to)
	if err != nil {
		return nil, err
	}

	switch to {
	case domain.PaymentCompleted:
		err = s.publish(ctx, RoutingPaymentCompleted, p)
	case domain.PaymentFailed:
		err = s.publish(ctx, RoutingPaymentFailed, p)
	}
	if err != nil {
		return nil, fmt.Errorf("publish payment event: %w", err)
	}
	return p, nil
}

func (s *PaymentSvc) ListByUser(ctx context.Context, userID uint) ([]domain.Payment, error) {
	return s.store.ListByUser(ctx, userID)
}

func (s *PaymentSvc) ListByHotel(ctx context.Context, hotelID uint) ([]domain.Payment, error) {
	return s.store.ListByHotel(ctx, hotelID)
}

func (s *PaymentSvc) publish(ctx context.Context, key string, p *domain.Payment) error {
	if s.pub == nil {
		return nil
	}
	// Every publication gets its own event id. The consumer dedupes on it,
	// so a redelivered message is dropped but a genuine re-flip of the same
	// payment status is a new event and gets applied.
	return s.pub.PublishJSON(ctx, key, map[string]any{
		"event_id":    uuid.NewString(),
		"payment_ref": p.Reference,
		"payment_id":  p.ID,
		"booking_id":  p.BookingID,
		"amount":      p.AmountCents,
		"occurred_at": time.Now().UTC().Format(time.RFC3339),
	})
}

// nights counts whole days between the check-in and check-out dates,
// clamped to a minimum of one night.
func nights(checkIn, checkOut time.Time) int64 {
	in := truncateToDay(checkIn)
	out := truncateToDay(checkOut)
	n := int64(out.Sub(in).Hours() / 24)
	if n <= 0 {
		n = 1
	}
	return n
}

func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
