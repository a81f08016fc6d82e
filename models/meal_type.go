package models

import (
	"fmt"
	"strings"

	"github.com/Bhaskar125/macro-tracking-webapp/apperr"
)

// MealType is the meal slot a food is logged against.
type MealType string

const (
	Breakfast MealType = "breakfast"
	Lunch     MealType = "lunch"
	Dinner    MealType = "dinner"
	Snack     MealType = "snack"
)

// MealTypes lists the slots in the order the dashboard shows them.
var MealTypes = []MealType{Breakfast, Lunch, Dinner, Snack}

// ParseMealType accepts the slot names case-insensitively; "snacks" is an
// alias of snack.
func ParseMealType(s string) (MealType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "breakfast":
		return Breakfast, nil
	case "lunch":
		return Lunch, nil
	case "dinner":
		return Dinner, nil
	case "snack", "snacks":
		return Snack, nil
	}
	return "", fmt.Errorf("meal %q: %w", s, apperr.ErrInvalidInput)
}

func (m MealType) Valid() bool {
	switch m {
	case Breakfast, Lunch, Dinner, Snack:
		return true
	}
	return false
}

func (m *MealType) UnmarshalText(b []byte) error {
	v, err := ParseMealType(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}
