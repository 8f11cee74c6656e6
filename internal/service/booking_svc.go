package service

import (
	"context"
	"fmt"
	"time"

	"github.com/you/hotel-booking/internal/domain"
)

// BookingStore is the persistence surface the booking core needs. The gorm
// repository implements it; tests use in-memory fakes.
type BookingStore interface {
	CreateIfAvailable(ctx context.Context, b *domain.Booking) error
	CountOverlapping(ctx context.Context, roomID uint, checkIn, checkOut time.Time) (int64, error)
	ByID(ctx context.Context, id uint) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id uint, to domain.BookingStatus, guard func(*domain.Booking) (bool, error)) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID uint) ([]domain.Booking, error)
	ListByHotel(ctx context.Context, hotelID uint) ([]domain.Booking, error)
	CompleteExpiredByUser(ctx context.Context, userID uint, now time.Time) error
	CompleteExpiredByHotel(ctx context.Context, hotelID uint, now time.Time) error
}

type UserLookup interface {
	ByID(ctx context.Context, id uint) (*domain.User, error)
}

type HotelLookup interface {
	ByID(ctx context.Context, id uint) (*domain.Hotel, error)
}

type RoomLookup interface {
	RoomByID(ctx context.Context, id uint) (*domain.Room, error)
}

type BookingSvc struct {
	store  BookingStore
	users  UserLookup
	hotels HotelLookup
	rooms  RoomLookup
	now    func() time.Time
}

func NewBookingSvc(store BookingStore, users UserLookup, hotels HotelLookup, rooms RoomLookup) *BookingSvc {
	return &BookingSvc{store: store, users: users, hotels: hotels, rooms: rooms, now: time.Now}
}

type ReserveInput struct {
	HotelID  uint
	RoomID   uint
	UserID   uint
	CheckIn  time.Time
	CheckOut time.Time
	Guests   int
}

// Reserve validates the request, resolves collaborators and inserts a
// PENDING booking. The availability check and the insert run in one store
// transaction, so concurrent reservations for the same room cannot both
// win an overlapping interval.
func (s *BookingSvc) Reserve(ctx context.Context, in ReserveInput) (*domain.Booking, error) {
	if in.HotelID == 0 || in.RoomID == 0 || in.UserID == 0 {
		return nil, fmt.Errorf("%w: hotel, room and user are required", domain.ErrValidation)
	}
	if in.CheckIn.IsZero() || in.CheckOut.IsZero() {
		return nil, fmt.Errorf("%w: check-in and check-out are required", domain.ErrValidation)
	}
	if !in.CheckIn.Before(in.CheckOut) {
		return nil, fmt.Errorf("%w: check-in must be before check-out", domain.ErrValidation)
	}
	if in.Guests <= 0 {
		return nil, fmt.Errorf("%w: guests must be positive", domain.ErrValidation)
	}

	hotel, err := s.hotels.ByID(ctx, in.HotelID)
	if err != nil {
		return nil, fmt.Errorf("resolve hotel %d: %w", in.HotelID, err)
	}
	room, err := s.rooms.RoomByID(ctx, in.RoomID)
	if err != nil {
		return nil, fmt.Errorf("resolve room %d: %w", in.RoomID, err)
	}
	if room.HotelID != hotel.ID {
		return nil, fmt.Errorf("%w: room %d does not belong to hotel %d", domain.ErrValidation, in.RoomID, in.HotelID)
	}
	if room.MaxGuests > 0 && in.Guests > room.MaxGuests {
		return nil, fmt.Errorf("%w: room sleeps at most %d guests", domain.ErrValidation, room.MaxGuests)
	}
	if _, err := s.users.ByID(ctx, in.UserID); err != nil {
		return nil, fmt.Errorf("resolve user %d: %w", in.UserID, err)
	}

	b := &domain.Booking{
		UserID:   in.UserID,
		HotelID:  in.HotelID,
		RoomID:   in.RoomID,
		CheckIn:  in.CheckIn.UTC(),
		CheckOut: in.CheckOut.UTC(),
		Guests:   in.Guests,
		Status:   domain.BookingPending,
	}
	if err := s.store.CreateIfAvailable(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// IsAvailable is the read-only availability probe.
func (s *BookingSvc) IsAvailable(ctx context.Context, roomID uint, checkIn, checkOut time.Time) (bool, error) {
	if checkIn.IsZero() || checkOut.IsZero() || !checkIn.Before(checkOut) {
		return false, fmt.Errorf("%w: check-in must be before check-out", domain.ErrValidation)
	}
	if _, err := s.rooms.RoomByID(ctx, roomID); err != nil {
		return false, err
	}
	n, err := s.store.CountOverlapping(ctx, roomID, checkIn.UTC(), checkOut.UTC())
	if err != nil {
		return false, err
	}
	return n == 0, nil
}

// ListByUser sweeps stale bookings to COMPLETED before returning, so two
// successive reads agree with wall-clock time.
func (s *BookingSvc) ListByUser(ctx context.Context, userID uint) ([]domain.Booking, error) {
	if err := s.store.CompleteExpiredByUser(ctx, userID, s.now().UTC()); err != nil {
		return nil, fmt.Errorf("sweep user %d: %w", userID, err)
	}
	return s.store.ListByUser(ctx, userID)
}

// ListByHotel sweeps like ListByUser; the two read paths must not disagree
// about which stays have completed.
func (s *BookingSvc) ListByHotel(ctx context.Context, hotelID uint) ([]domain.Booking, error) {
	if _, err := s.hotels.ByID(ctx, hotelID); err != nil {
		return nil, err
	}
	if err := s.store.CompleteExpiredByHotel(ctx, hotelID, s.now().UTC()); err != nil {
		return nil, fmt.Errorf("sweep hotel %d: %w", hotelID, err)
	}
	return s.store.ListByHotel(ctx, hotelID)
}

// Transition applies an actor-initiated status change. The guard re-reads
// the booking under a row lock, so a concurrent transition (owner accepts
// while the guest cancels) cannot be silently clobbered.
//
// Only guest and owner transitions are reachable here; CONFIRMED and
// COMPLETED are system transitions driven by payments and the sweep.
func (s *BookingSvc) Transition(ctx context.Context, bookingID uint, target domain.BookingStatus, actorID uint, actorRole domain.Role) (*domain.Booking, error) {
	if _, err := domain.ParseBookingStatus(string(target)); err != nil {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, string(target))
	}
	return s.store.UpdateStatus(ctx, bookingID, target, func(b *domain.Booking) (bool, error) {
		if !b.Status.CanTransition(target) {
			return false, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, b.Status, target)
		}
		switch target {
		case domain.BookingAccepted:
			// Owner accept. The payment-failed fallback to ACCEPTED is
			// system-only and never comes through here.
			if b.Status != domain.BookingPending {
				return false, domain.ErrUnauthorized
			}
			if actorRole != domain.RoleOwner {
				return false, domain.ErrUnauthorized
			}
			hotel, err := s.hotels.ByID(ctx, b.HotelID)
			if err != nil {
				return false, err
			}
			if hotel.OwnerID != actorID {
				return false, domain.ErrUnauthorized
			}
		case domain.BookingCancelled:
			if b.UserID != actorID {
				return false, domain.ErrUnauthorized
			}
		default:
			return false, domain.ErrUnauthorized
		}
		return true, nil
	})
}

// OnPaymentCompleted drives the booking to CONFIRMED. No-op if already
// CONFIRMED, so replayed payment events are harmless.
func (s *BookingSvc) OnPaymentCompleted(ctx context.Context, bookingID uint) (*domain.Booking, error) {
	return s.paymentTransition(ctx, bookingID, domain.BookingConfirmed)
}

// OnPaymentFailed drops the booking back to ACCEPTED. No-op if already
// ACCEPTED.
func (s *BookingSvc) OnPaymentFailed(ctx context.Context, bookingID uint) (*domain.Booking, error) {
	return s.paymentTransition(ctx, bookingID, domain.BookingAccepted)
}

func (s *BookingSvc) paymentTransition(ctx context.Context, bookingID uint, target domain.BookingStatus) (*domain.Booking, error) {
	return s.store.UpdateStatus(ctx, bookingID, target, func(b *domain.Booking) (bool, error) {
		if b.Status == target {
			return false, nil
		}
		if !b.Status.CanTransition(target) {
			return false, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, b.Status, target)
		}
		return true, nil
	})
}
