package nutrition

import (
	"fmt"
	"strings"

	"github.com/Bhaskar125/macro-tracking-webapp/apperr"
)

// Sex selects the Mifflin-St Jeor constant.
type Sex string

const (
	Male   Sex = "male"
	Female Sex = "female"
)

func ParseSex(s string) (Sex, error) {
	switch Sex(strings.ToLower(strings.TrimSpace(s))) {
	case Male:
		return Male, nil
	case Female:
		return Female, nil
	}
	return "", fmt.Errorf("sex %q: %w", s, apperr.ErrInvalidInput)
}

// Valid reports whether s is one of the canonical constants. Use ParseSex
// for user input.
func (s Sex) Valid() bool {
	return s == Male || s == Female
}

func (s *Sex) UnmarshalText(b []byte) error {
	v, err := ParseSex(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ActivityLevel is one of five ordinal tiers. The zero value is invalid.
type ActivityLevel int

const (
	Sedentary ActivityLevel = iota + 1
	Light
	Moderate
	Active
	VeryActive
)

var activityNames = map[ActivityLevel]string{
	Sedentary:  "sedentary",
	Light:      "light",
	Moderate:   "moderate",
	Active:     "active",
	VeryActive: "very_active",
}

var activityMultipliers = map[ActivityLevel]float64{
	Sedentary:  1.2,
	Light:      1.375,
	Moderate:   1.55,
	Active:     1.725,
	VeryActive: 1.9,
}

func ParseActivityLevel(s string) (ActivityLevel, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for lvl, name := range activityNames {
		if name == key {
			return lvl, nil
		}
	}
	return 0, fmt.Errorf("activity level %q: %w", s, apperr.ErrInvalidInput)
}

func (a ActivityLevel) String() string {
	if n, ok := activityNames[a]; ok {
		return n
	}
	return fmt.Sprintf("ActivityLevel(%d)", int(a))
}

func (a ActivityLevel) Valid() bool {
	_, ok := activityMultipliers[a]
	return ok
}

// Multiplier is the TDEE factor for the tier.
func (a ActivityLevel) Multiplier() (float64, error) {
	m, ok := activityMultipliers[a]
	if !ok {
		return 0, fmt.Errorf("activity level %d: %w", int(a), apperr.ErrInvalidInput)
	}
	return m, nil
}

func (a ActivityLevel) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("activity level %d: %w", int(a), apperr.ErrInvalidInput)
	}
	return []byte(a.String()), nil
}

func (a *ActivityLevel) UnmarshalText(b []byte) error {
	v, err := ParseActivityLevel(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// GoalIntent is what the user wants their weight to do.
type GoalIntent string

const (
	Lose     GoalIntent = "lose"
	Maintain GoalIntent = "maintain"
	Gain     GoalIntent = "gain"
)

func ParseGoalIntent(s string) (GoalIntent, error) {
	switch GoalIntent(strings.ToLower(strings.TrimSpace(s))) {
	case Lose:
		return Lose, nil
	case Maintain:
		return Maintain, nil
	case Gain:
		return Gain, nil
	}
	return "", fmt.Errorf("goal %q: %w", s, apperr.ErrInvalidInput)
}

func (g GoalIntent) Valid() bool {
	switch g {
	case Lose, Maintain, Gain:
		return true
	}
	return false
}

func (g *GoalIntent) UnmarshalText(b []byte) error {
	v, err := ParseGoalIntent(string(b))
	if err != nil {
		return err
	}
	*g = v
	return nil
}

// Profile is the calculator input. It is never stored.
type Profile struct {
	Age           int           `json:"age"`
	Sex           Sex           `json:"sex"`
	WeightKg      float64       `json:"weight"` // kg
	HeightCm      float64       `json:"height"` // cm
	ActivityLevel ActivityLevel `json:"activity_level"`
	Goal          GoalIntent    `json:"goal"`
}

// Validate reports the first problem with p as an ErrInvalidInput.
func (p Profile) Validate() error {
	switch {
	case p.Age <= 0:
		return fmt.Errorf("age must be positive: %w", apperr.ErrInvalidInput)
	case p.WeightKg <= 0:
		return fmt.Errorf("weight must be positive: %w", apperr.ErrInvalidInput)
	case p.HeightCm <= 0:
		return fmt.Errorf("height must be positive: %w", apperr.ErrInvalidInput)
	}
	if !p.Sex.Valid() {
		return fmt.Errorf("sex %q: %w", p.Sex, apperr.ErrInvalidInput)
	}
	if !p.ActivityLevel.Valid() {
		return fmt.Errorf("activity level %d: %w", int(p.ActivityLevel), apperr.ErrInvalidInput)
	}
	if !p.Goal.Valid() {
		return fmt.Errorf("goal %q: %w", p.Goal, apperr.ErrInvalidInput)
	}
	return nil
}
