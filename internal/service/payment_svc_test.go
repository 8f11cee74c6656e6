package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/you/hotel-booking/internal/domain"
)

func newPaymentTestSvc(t *testing.T) (*PaymentSvc, *BookingSvc, *fakeStore, *fakePublisher) {
	t.Helper()
	bookingSvc, store := newTestSvc()
	payments := newFakePayments()
	pub := &fakePublisher{}
	hotels := fakeHotels{
		hotelID: {ID: hotelID, OwnerID: ownerID},
		2:       {ID: 2, OwnerID: otherOwnerID},
	}
	rooms := fakeRooms{
		roomID: {ID: roomID, HotelID: hotelID, PriceCents: 12000, MaxGuests: 4},
	}
	svc := NewPaymentSvc(payments, store, hotels, rooms, pub)
	return svc, bookingSvc, store, pub
}

func TestNights(t *testing.T) {
	cases := []struct {
		in, out time.Time
		want    int64
	}{
		{day(1), day(5), 4},
		{day(1), day(2), 1},
		// sub-day stay still bills one night
		{day(1).Add(10 * time.Hour), day(1).Add(16 * time.Hour), 1},
		// time-of-day does not change the night count
		{day(1).Add(15 * time.Hour), day(3).Add(11 * time.Hour), 2},
	}
	for i, c := range cases {
		if got := nights(c.in, c.out); got != c.want {
			t.Errorf("case %d: nights = %d, want %d", i, got, c.want)
		}
	}
}

func TestRegisterPaymentComputesAmount(t *testing.T) {
	svc, bookingSvc, _, _ := newPaymentTestSvc(t)
	ctx := context.Background()

	b := reserve(t, bookingSvc, guestID, day(1), day(5))

	p, err := svc.Register(ctx, b.ID, guestID)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if p.AmountCents != 4*12000 {
		t.Errorf("amount = %d, want %d", p.AmountCents, 4*12000)
	}
	if p.Status != domain.PaymentPending {
		t.Errorf("status = %s, want PENDING", p.Status)
	}
	if p.Reference == "" {
		t.Error("payment must get a reference")
	}
}

func TestRegisterPaymentGuards(t *testing.T) {
	svc, bookingSvc, _, _ := newPaymentTestSvc(t)
	ctx := context.Background()

	b := reserve(t, bookingSvc, guestID, day(1), day(5))

	if _, err := svc.Register(ctx, 99, guestID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("unknown booking: got %v, want ErrNotFound", err)
	}
	if _, err := svc.Register(ctx, b.ID, otherGuestID); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("foreign guest: got %v, want ErrUnauthorized", err)
	}

	if _, err := svc.Register(ctx, b.ID, guestID); err != nil {
		t.Fatalf("first register: %v", err)
	}
	// one active payment per booking
	if _, err := svc.Register(ctx, b.ID, guestID); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("second register: got %v, want ErrValidation", err)
	}
}

func TestUpdatePaymentStatusPublishesEvents(t *testing.T) {
	svc, bookingSvc, _, pub := newPaymentTestSvc(t)
	ctx := context.Background()

	b := reserve(t, bookingSvc, guestID, day(1), day(5))
	p, err := svc.Register(ctx, b.ID, guestID)
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	// only the owner of the booking's hotel may settle
	if _, err := svc.UpdateStatus(ctx, p.ID, domain.PaymentCompleted, otherOwnerID, domain.RoleOwner); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("foreign owner: got %v, want ErrUnauthorized", err)
	}
	if _, err := svc.UpdateStatus(ctx, p.ID, domain.PaymentCompleted, guestID, domain.RoleUser); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("guest: got %v, want ErrUnauthorized", err)
	}

	got, err := svc.UpdateStatus(ctx, p.ID, domain.PaymentCompleted, ownerID, domain.RoleOwner)
	if err != nil {
		t.Fatalf("owner settle: %v", err)
	}
	if got.Status != domain.PaymentCompleted {
		t.Errorf("status = %s, want COMPLETED", got.Status)
	}
	if len(pub.events) != 1 || pub.events[0].key != RoutingPaymentCompleted {
		t.Fatalf("want one %s event, got %+v", RoutingPaymentCompleted, pub.events)
	}

	if _, err := svc.UpdateStatus(ctx, p.ID, domain.PaymentFailed, ownerID, domain.RoleOwner); err != nil {
		t.Fatalf("owner fail: %v", err)
	}
	if len(pub.events) != 2 || pub.events[1].key != RoutingPaymentFailed {
		t.Fatalf("want a %s event, got %+v", RoutingPaymentFailed, pub.events)
	}

	// flipping back republishes under a fresh event id, so the consumer
	// does not mistake it for a redelivery
	if _, err := svc.UpdateStatus(ctx, p.ID, domain.PaymentCompleted, ownerID, domain.RoleOwner); err != nil {
		t.Fatalf("owner re-settle: %v", err)
	}
	if len(pub.events) != 3 {
		t.Fatalf("want three events, got %d", len(pub.events))
	}
	ids := map[string]bool{}
	for _, e := range pub.events {
		body, ok := e.body.(map[string]any)
		if !ok {
			t.Fatalf("unexpected event body %T", e.body)
		}
		id, _ := body["event_id"].(string)
		if id == "" {
			t.Fatal("event published without an event_id")
		}
		ids[id] = true
	}
	if len(ids) != 3 {
		t.Errorf("want 3 distinct event ids, got %d", len(ids))
	}

	if _, err := svc.UpdateStatus(ctx, 99, domain.PaymentCompleted, ownerID, domain.RoleOwner); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("unknown payment: got %v, want ErrNotFound", err)
	}
}
