package domain

import "time"

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
)

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch PaymentStatus(s) {
	case PaymentPending, PaymentCompleted, PaymentFailed:
		return PaymentStatus(s), nil
	}
	return "", ErrValidation
}

type Payment struct {
	ID        uint   `gorm:"primaryKey"`
	Reference string `gorm:"uniqueIndex"`
	BookingID uint   `gorm:"index;not null"`
	UserID    uint   `gorm:"index;not null"`
	HotelID   uint   `gorm:"index;not null"`
	// Computed at registration: nights x nightly room price, never supplied
	// by the caller.
	AmountCents int64         `gorm:"not null"`
	Status      PaymentStatus `gorm:"index;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
