package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingAccepted  BookingStatus = "ACCEPTED"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCompleted BookingStatus = "COMPLETED"
	BookingCancelled BookingStatus = "CANCELLED"
)

func ParseBookingStatus(s string) (BookingStatus, error) {
	switch BookingStatus(s) {
	case BookingPending, BookingAccepted, BookingConfirmed, BookingCompleted, BookingCancelled:
		return BookingStatus(s), nil
	}
	return "", ErrValidation
}

// Terminal statuses accept no further transitions.
func (s BookingStatus) Terminal() bool {
	return s == BookingCompleted || s == BookingCancelled
}

// CanTransition reports pure state-machine reachability. Actor guards are
// enforced separately by the booking service.
func (s BookingStatus) CanTransition(to BookingStatus) bool {
	switch s {
	case BookingPending:
		return to == BookingAccepted || to == BookingCancelled
	case BookingAccepted:
		return to == BookingCancelled || to == BookingConfirmed || to == BookingCompleted
	case BookingConfirmed:
		return to == BookingAccepted || to == BookingCompleted
	}
	return false
}

type Booking struct {
	ID      uint `gorm:"primaryKey"`
	UserID  uint `gorm:"index;not null"`
	HotelID uint `gorm:"index;not null"`
	RoomID  uint `gorm:"index;not null"`
	// Half-open stay interval: [CheckIn, CheckOut). A checkout and a
	// check-in on the same day do not collide.
	CheckIn  time.Time     `gorm:"not null"`
	CheckOut time.Time     `gorm:"not null"`
	Guests   int           `gorm:"not null"`
	Status   BookingStatus `gorm:"index;not null"`
	// Bumped on every status write; stale writers lose.
	Version   int64 `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) intersect.
// Strict inequalities keep back-to-back stays bookable.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// EventConsumed records processed payment event ids so redelivered messages
// do not re-apply booking transitions.
type EventConsumed struct {
	ID          string `gorm:"primaryKey"`
	EventKey    string `gorm:"index"`
	ProcessedAt time.Time
}
