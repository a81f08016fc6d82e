package models

import (
	"gorm.io/gorm"
)

// DailyGoal holds each user's daily macro targets. One row per user.
type DailyGoal struct {
	gorm.Model
	UserID   uint     `gorm:"uniqueIndex;not null" json:"user_id"`
	Calories float64  `json:"calories"` // kcal
	Protein  float64  `json:"protein"`  // g
	Carbs    float64  `json:"carbs"`    // g
	Fat      float64  `json:"fat"`      // g
	Fiber    *float64 `json:"fiber,omitempty"`
}
