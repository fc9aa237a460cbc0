package models

import (
	"time"
)

// User model
type User struct {
	ID             uint `gorm:"primaryKey"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Name           string `gorm:"size:255;not null"`
	Email          string `gorm:"size:255;not null;unique"`
	HashedPassword []byte `gorm:"not null"`
}
