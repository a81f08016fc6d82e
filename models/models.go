package models

// All lists every table the service migrates.
func All() []any {
	return []any{
		&User{},
		&FoodItem{},
		&FoodLog{},
		&DailyGoal{},
		&DailyProgress{},
		&Alert{},
		&UserDevice{},
	}
}
