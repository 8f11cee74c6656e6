package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/you/hotel-booking/internal/domain"
	"github.com/you/hotel-booking/internal/service"
	"github.com/you/hotel-booking/pkg/mq"
)

// PaymentEvent is the payload published by the payment service on
// payment.completed / payment.failed. EventID is unique per publication,
// not per payment: the same payment flipping to the same status again is a
// distinct event.
type PaymentEvent struct {
	EventID    string `json:"event_id"`
	PaymentRef string `json:"payment_ref"`
	PaymentID  uint   `json:"payment_id"`
	BookingID  uint   `json:"booking_id"`
	Amount     int64  `json:"amount"`
	OccurredAt string `json:"occurred_at"`
}

type BookingTransitions interface {
	OnPaymentCompleted(ctx context.Context, bookingID uint) (*domain.Booking, error)
	OnPaymentFailed(ctx context.Context, bookingID uint) (*domain.Booking, error)
}

// EventLedger deduplicates deliveries; the booking transitions are also
// idempotent, so a crash between apply and record stays harmless.
type EventLedger interface {
	SeenEvent(ctx context.Context, eventID string) (bool, error)
	RecordEvent(ctx context.Context, eventID, eventKey string) error
}

type PaymentConsumer struct {
	svc    BookingTransitions
	ledger EventLedger
	cons   *mq.Consumer
}

func NewPaymentConsumer(svc BookingTransitions, ledger EventLedger, cons *mq.Consumer) *PaymentConsumer {
	return &PaymentConsumer{svc: svc, ledger: ledger, cons: cons}
}

func (pc *PaymentConsumer) Run(ctx context.Context) error {
	msgs, err := pc.cons.Deliveries(ctx)
	if err != nil {
		return err
	}
	go func() {
		for d := range msgs {
			switch d.RoutingKey {
			case service.RoutingPaymentCompleted, service.RoutingPaymentFailed:
				var evt PaymentEvent
				if err := json.Unmarshal(d.Body, &evt); err != nil {
					log.Printf("[payment-consumer] unmarshal error: %v", err)
					_ = d.Nack(false, false)
					continue
				}
				if evt.BookingID == 0 || evt.EventID == "" {
					log.Printf("[payment-consumer] invalid %s payload", d.RoutingKey)
					_ = d.Ack(false)
					continue
				}
				if err := pc.apply(ctx, d.RoutingKey, evt); err != nil {
					log.Printf("[payment-consumer] apply %s: %v", d.RoutingKey, err)
					_ = d.Nack(false, true)
					continue
				}
				_ = d.Ack(false)
			default:
				_ = d.Ack(false)
			}
		}
	}()
	return nil
}

// apply dedupes on the publication's event id: a redelivery carries the
// same id and is skipped, a re-flip carries a fresh one and goes through.
func (pc *PaymentConsumer) apply(ctx context.Context, key string, evt PaymentEvent) error {
	eventID := evt.EventID
	seen, err := pc.ledger.SeenEvent(ctx, eventID)
	if err != nil {
		return err
	}
	if seen {
		return nil
	}

	if key == service.RoutingPaymentCompleted {
		_, err = pc.svc.OnPaymentCompleted(ctx, evt.BookingID)
	} else {
		_, err = pc.svc.OnPaymentFailed(ctx, evt.BookingID)
	}
	if err != nil {
		// A vanished booking or an unreachable transition will not heal on
		// redelivery; drop the event instead of requeue-looping.
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvalidTransition) {
			log.Printf("[payment-consumer] dropping %s for booking %d: %v", key, evt.BookingID, err)
			return pc.ledger.RecordEvent(ctx, eventID, key)
		}
		return err
	}
	return pc.ledger.RecordEvent(ctx, eventID, key)
}
