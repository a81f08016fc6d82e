package models

import "gorm.io/gorm"

// FoodItem holds per-serving nutrition facts. Optional nutrients are nil when
// the label does not report them.
type FoodItem struct {
	gorm.Model
	Name        string   `gorm:"not null;index" json:"name"`
	Brand       string   `json:"brand,omitempty"`
	Calories    float64  `json:"calories"`
	Protein     float64  `json:"protein"`          // g
	Carbs       float64  `json:"carbs"`            // g
	Fat         float64  `json:"fat"`              // g
	Fiber       *float64 `json:"fiber,omitempty"`  // g
	Sugar       *float64 `json:"sugar,omitempty"`  // g
	Sodium      *float64 `json:"sodium,omitempty"` // mg
	ServingSize float64  `gorm:"not null" json:"serving_size"`
	ServingUnit string   `gorm:"size:32;not null" json:"serving_unit"` // e.g. "g", "medium"
}
