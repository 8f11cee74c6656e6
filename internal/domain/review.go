package domain

import "time"

type Review struct {
	ID        uint `gorm:"primaryKey"`
	HotelID   uint `gorm:"index;not null"`
	UserID    uint `gorm:"index;not null"`
	Rating    int  `gorm:"not null"` // 1..5
	Comment   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
