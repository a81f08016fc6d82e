package models

import "time"

const (
	AlertGoal = "goal"
	AlertInfo = "info"
)

// Alert is a user-facing notification, kept so clients that were offline
// can list what they missed.
type Alert struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index:idx_alerts_user_created" json:"user_id"`
	Type      string    `gorm:"size:20" json:"type"`
	Message   string    `gorm:"type:text" json:"message"`
	CreatedAt time.Time `gorm:"index:idx_alerts_user_created" json:"created_at"`
}
