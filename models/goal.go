package models

import "time"

// GoalStatus tracks where a savings goal stands.
type GoalStatus string

const (
	StatusInProgress GoalStatus = "In Progress"
	StatusCompleted  GoalStatus = "Completed"
	StatusCancelled  GoalStatus = "Cancelled"
)

// Valid reports whether s is a known goal status.
func (s GoalStatus) Valid() bool {
	return s == StatusInProgress || s == StatusCompleted || s == StatusCancelled
}

// Goal is a savings target. Progress toward it is always derived from
// CurrentAmount and TargetAmount, never stored.
type Goal struct {
	ID            string     `gorm:"primaryKey;size:36" json:"_id"`
	Title         string     `gorm:"size:255;not null" json:"title"`
	TargetAmount  float64    `gorm:"not null" json:"targetAmount"`
	CurrentAmount float64    `gorm:"not null" json:"currentAmount"`
	Deadline      time.Time  `gorm:"not null;index" json:"deadline"`
	Status        GoalStatus `gorm:"size:32;not null" json:"status"`
	CreatedAt     time.Time  `json:"createdAt"`
}
