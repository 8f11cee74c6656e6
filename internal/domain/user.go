package domain

import "time"

type Role string

const (
	RoleUser  Role = "USER"
	RoleOwner Role = "OWNER"
)

type User struct {
	ID           uint   `gorm:"primaryKey"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Name         string
	Role         Role `gorm:"index;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
