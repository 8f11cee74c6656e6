package service

import (
	"context"
	"sync"
	"time"

	"github.com/you/hotel-booking/internal/domain"
)

// fakeStore is an in-memory BookingStore. The per-room mutex mirrors the
// repository's per-room advisory lock: check and insert are serialized per
// room even when the room has no bookings yet.
type fakeStore struct {
	mu        sync.Mutex
	roomLocks map[uint]*sync.Mutex
	seq       uint
	bookings  map[uint]*domain.Booking
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		roomLocks: map[uint]*sync.Mutex{},
		bookings:  map[uint]*domain.Booking{},
	}
}

func (f *fakeStore) roomLock(roomID uint) *sync.Mutex {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.roomLocks[roomID]
	if !ok {
		l = &sync.Mutex{}
		f.roomLocks[roomID] = l
	}
	return l
}

func (f *fakeStore) blocking(b *domain.Booking) bool {
	return b.Status != domain.BookingCancelled
}

func (f *fakeStore) CreateIfAvailable(ctx context.Context, b *domain.Booking) error {
	l := f.roomLock(b.RoomID)
	l.Lock()
	defer l.Unlock()
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.bookings {
		if e.RoomID == b.RoomID && f.blocking(e) &&
			domain.Overlaps(e.CheckIn, e.CheckOut, b.CheckIn, b.CheckOut) {
			return domain.ErrRoomUnavailable
		}
	}
	f.seq++
	b.ID = f.seq
	cp := *b
	f.bookings[b.ID] = &cp
	return nil
}

func (f *fakeStore) CountOverlapping(ctx context.Context, roomID uint, checkIn, checkOut time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, e := range f.bookings {
		if e.RoomID == roomID && f.blocking(e) &&
			domain.Overlaps(e.CheckIn, e.CheckOut, checkIn, checkOut) {
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) ByID(ctx context.Context, id uint) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeStore) UpdateStatus(ctx context.Context, id uint, to domain.BookingStatus, guard func(*domain.Booking) (bool, error)) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *b
	apply, err := guard(&cp)
	if err != nil {
		return nil, err
	}
	if apply {
		cp.Status = to
		cp.Version++
		stored := cp
		f.bookings[id] = &stored
	}
	out := cp
	return &out, nil
}

func (f *fakeStore) ListByUser(ctx context.Context, userID uint) ([]domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Booking
	for _, b := range f.bookings {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeStore) ListByHotel(ctx context.Context, hotelID uint) ([]domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Booking
	for _, b := range f.bookings {
		if b.HotelID == hotelID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeStore) CompleteExpiredByUser(ctx context.Context, userID uint, now time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.UserID == userID {
			f.completeIfStale(b, now)
		}
	}
	return nil
}

func (f *fakeStore) CompleteExpiredByHotel(ctx context.Context, hotelID uint, now time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.HotelID == hotelID {
			f.completeIfStale(b, now)
		}
	}
	return nil
}

func (f *fakeStore) completeIfStale(b *domain.Booking, now time.Time) {
	if b.CheckOut.Before(now) && !b.Status.Terminal() {
		b.Status = domain.BookingCompleted
		b.Version++
	}
}

func (f *fakeStore) HasCompletedStay(ctx context.Context, userID, hotelID uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.UserID == userID && b.HotelID == hotelID && b.Status == domain.BookingCompleted {
			return true, nil
		}
	}
	return false, nil
}

type fakeUsers map[uint]*domain.User

func (f fakeUsers) ByID(ctx context.Context, id uint) (*domain.User, error) {
	u, ok := f[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

type fakeHotels map[uint]*domain.Hotel

func (f fakeHotels) ByID(ctx context.Context, id uint) (*domain.Hotel, error) {
	h, ok := f[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return h, nil
}

type fakeRooms map[uint]*domain.Room

func (f fakeRooms) RoomByID(ctx context.Context, id uint) (*domain.Room, error) {
	r, ok := f[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return r, nil
}

type fakePayments struct {
	mu    sync.Mutex
	seq   uint
	items map[uint]*domain.Payment
}

func newFakePayments() *fakePayments {
	return &fakePayments{items: map[uint]*domain.Payment{}}
}

func (f *fakePayments) Create(ctx context.Context, p *domain.Payment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	p.ID = f.seq
	cp := *p
	f.items[p.ID] = &cp
	return nil
}

func (f *fakePayments) ByID(ctx context.Context, id uint) (*domain.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePayments) ActiveByBooking(ctx context.Context, bookingID uint) (*domain.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.items {
		if p.BookingID == bookingID && p.Status != domain.PaymentFailed {
			cp := *p
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakePayments) UpdateStatus(ctx context.Context, id uint, to domain.PaymentStatus) (*domain.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	p.Status = to
	cp := *p
	return &cp, nil
}

func (f *fakePayments) ListByUser(ctx context.Context, userID uint) ([]domain.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Payment
	for _, p := range f.items {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePayments) ListByHotel(ctx context.Context, hotelID uint) ([]domain.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Payment
	for _, p := range f.items {
		if p.HotelID == hotelID {
			out = append(out, *p)
		}
	}
	return out, nil
}

type publishedEvent struct {
	key  string
	body any
}

type fakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (f *fakePublisher) PublishJSON(ctx context.Context, key string, v any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, publishedEvent{key: key, body: v})
	return nil
}
