package domain

import "time"

type Hotel struct {
	ID          uint `gorm:"primaryKey"`
	OwnerID     uint `gorm:"index;not null"`
	Name        string
	Location    string
	Description string
	Amenities   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Room struct {
	ID          uint `gorm:"primaryKey"`
	HotelID     uint `gorm:"index;not null"`
	RoomType    string
	Description string
	// Nightly price in the smallest currency unit.
	PriceCents int64 `gorm:"not null"`
	MaxGuests  int   `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
