package models

import (
	"gorm.io/gorm"
	"time"
)

// DailyProgress is the stored snapshot of one user's totals for one day.
type DailyProgress struct {
	gorm.Model
	UserID uint      `gorm:"uniqueIndex:idx_progress_user_date;not null" json:"user_id"`
	Date   time.Time `gorm:"uniqueIndex:idx_progress_user_date;not null" json:"date"`

	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
	Sugar    float64 `json:"sugar"`
	Sodium   float64 `json:"sodium"`

	GoalReached bool `json:"goal_reached"`
}
