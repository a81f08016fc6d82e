package models

import (
	"time"

	"gorm.io/gorm"
)

// FoodLog is one food logged by a user against a meal slot.
type FoodLog struct {
	gorm.Model
	UserID   uint      `gorm:"index:idx_food_logs_user_logged;not null" json:"user_id"`
	FoodID   uint      `gorm:"not null" json:"food_id"`
	Food     *FoodItem `gorm:"foreignKey:FoodID" json:"food,omitempty"`
	Quantity float64   `gorm:"not null" json:"quantity"` // same unit as Food.ServingUnit
	Meal     MealType  `gorm:"size:16;not null" json:"meal"`
	LoggedAt time.Time `gorm:"index:idx_food_logs_user_logged;not null" json:"logged_at"`
}
