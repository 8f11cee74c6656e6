package consumer

import (
	"context"
	"errors"
	"testing"

	"github.com/you/hotel-booking/internal/domain"
	"github.com/you/hotel-booking/internal/service"
)

type fakeTransitions struct {
	completed []uint
	failed    []uint
	err       error
}

func (f *fakeTransitions) OnPaymentCompleted(ctx context.Context, bookingID uint) (*domain.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.completed = append(f.completed, bookingID)
	return &domain.Booking{ID: bookingID, Status: domain.BookingConfirmed}, nil
}

func (f *fakeTransitions) OnPaymentFailed(ctx context.Context, bookingID uint) (*domain.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.failed = append(f.failed, bookingID)
	return &domain.Booking{ID: bookingID, Status: domain.BookingAccepted}, nil
}

type fakeLedger struct {
	seen map[string]bool
}

func newFakeLedger() *fakeLedger { return &fakeLedger{seen: map[string]bool{}} }

func (f *fakeLedger) SeenEvent(ctx context.Context, eventID string) (bool, error) {
	return f.seen[eventID], nil
}

func (f *fakeLedger) RecordEvent(ctx context.Context, eventID, eventKey string) error {
	f.seen[eventID] = true
	return nil
}

func TestApplyRoutesByKey(t *testing.T) {
	tr := &fakeTransitions{}
	pc := NewPaymentConsumer(tr, newFakeLedger(), nil)
	ctx := context.Background()

	evt := PaymentEvent{EventID: "evt-1", PaymentRef: "ref-1", BookingID: 7}
	if err := pc.apply(ctx, service.RoutingPaymentCompleted, evt); err != nil {
		t.Fatalf("apply completed: %v", err)
	}
	if err := pc.apply(ctx, service.RoutingPaymentFailed, PaymentEvent{EventID: "evt-2", PaymentRef: "ref-2", BookingID: 8}); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if len(tr.completed) != 1 || tr.completed[0] != 7 {
		t.Errorf("completed calls = %v, want [7]", tr.completed)
	}
	if len(tr.failed) != 1 || tr.failed[0] != 8 {
		t.Errorf("failed calls = %v, want [8]", tr.failed)
	}
}

func TestApplyDeduplicatesRedeliveries(t *testing.T) {
	tr := &fakeTransitions{}
	pc := NewPaymentConsumer(tr, newFakeLedger(), nil)
	ctx := context.Background()

	// a redelivered message carries the same event id
	evt := PaymentEvent{EventID: "evt-1", PaymentRef: "ref-1", BookingID: 7}
	for i := 0; i < 3; i++ {
		if err := pc.apply(ctx, service.RoutingPaymentCompleted, evt); err != nil {
			t.Fatalf("apply #%d: %v", i, err)
		}
	}
	if len(tr.completed) != 1 {
		t.Errorf("transition applied %d times, want once", len(tr.completed))
	}
}

// An owner may flip a payment COMPLETED -> FAILED -> COMPLETED. Each flip is
// published as its own event, so the second COMPLETED must reach the booking
// even though the reference and routing key repeat.
func TestApplyStatusReflipIsNewEvent(t *testing.T) {
	tr := &fakeTransitions{}
	pc := NewPaymentConsumer(tr, newFakeLedger(), nil)
	ctx := context.Background()

	steps := []struct {
		key string
		evt PaymentEvent
	}{
		{service.RoutingPaymentCompleted, PaymentEvent{EventID: "evt-1", PaymentRef: "ref-1", BookingID: 7}},
		{service.RoutingPaymentFailed, PaymentEvent{EventID: "evt-2", PaymentRef: "ref-1", BookingID: 7}},
		{service.RoutingPaymentCompleted, PaymentEvent{EventID: "evt-3", PaymentRef: "ref-1", BookingID: 7}},
	}
	for i, s := range steps {
		if err := pc.apply(ctx, s.key, s.evt); err != nil {
			t.Fatalf("apply #%d: %v", i, err)
		}
	}
	if len(tr.completed) != 2 {
		t.Errorf("OnPaymentCompleted applied %d times, want 2", len(tr.completed))
	}
	if len(tr.failed) != 1 {
		t.Errorf("OnPaymentFailed applied %d times, want 1", len(tr.failed))
	}
}

func TestApplyDropsPermanentErrors(t *testing.T) {
	ledger := newFakeLedger()
	tr := &fakeTransitions{err: domain.ErrInvalidTransition}
	pc := NewPaymentConsumer(tr, ledger, nil)

	evt := PaymentEvent{EventID: "evt-1", PaymentRef: "ref-1", BookingID: 7}
	if err := pc.apply(context.Background(), service.RoutingPaymentCompleted, evt); err != nil {
		t.Fatalf("permanent errors must be swallowed, got %v", err)
	}
	if !ledger.seen["evt-1"] {
		t.Error("dropped event must be recorded so it is not redelivered")
	}
}

func TestApplyPropagatesTransientErrors(t *testing.T) {
	ledger := newFakeLedger()
	boom := errors.New("db down")
	pc := NewPaymentConsumer(&fakeTransitions{err: boom}, ledger, nil)

	evt := PaymentEvent{EventID: "evt-1", PaymentRef: "ref-1", BookingID: 7}
	if err := pc.apply(context.Background(), service.RoutingPaymentCompleted, evt); !errors.Is(err, boom) {
		t.Fatalf("got %v, want the transient error back for requeue", err)
	}
	if len(ledger.seen) != 0 {
		t.Error("unapplied event must not be recorded")
	}
}
