package models

import "time"

// Insight is a free-text spending observation written by the user.
type Insight struct {
	ID              string    `gorm:"primaryKey;size:36" json:"_id"`
	Text            string    `gorm:"not null" json:"text"`
	Title           string    `gorm:"size:255" json:"title,omitempty"`
	RelatedCategory string    `gorm:"size:255" json:"relatedCategory,omitempty"`
	Date            time.Time `gorm:"not null;index" json:"date"`
	CreatedAt       time.Time `json:"createdAt"`
}
