package nutrition

import "math"

// Energy densities in kcal per gram.
const (
	KcalPerGramProtein = 4.0
	KcalPerGramCarbs   = 4.0
	KcalPerGramFat     = 9.0
)

const (
	loseDeficitKcal = 500
	gainSurplusKcal = 300

	proteinShare = 0.25
	fatShare     = 0.25
	carbsShare   = 0.50
)

// Goals is the calculator output. Calories and grams are rounded to whole
// units; BMR and TDEE are left as computed.
type Goals struct {
	BMR      float64 `json:"bmr"`
	TDEE     float64 `json:"tdee"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// BMR is the Mifflin-St Jeor basal metabolic rate in kcal/day.
func BMR(p Profile) float64 {
	bmr := 10*p.WeightKg + 6.25*p.HeightCm - 5*float64(p.Age)
	if p.Sex == Male {
		return bmr + 5
	}
	return bmr - 161
}

// ComputeGoals derives daily calorie and macro targets from a profile.
func ComputeGoals(p Profile) (Goals, error) {
	if err := p.Validate(); err != nil {
		return Goals{}, err
	}
	mult, err := p.ActivityLevel.Multiplier()
	if err != nil {
		return Goals{}, err
	}

	bmr := BMR(p)
	tdee := bmr * mult

	target := tdee
	switch p.Goal {
	case Lose:
		target = tdee - loseDeficitKcal
	case Gain:
		target = tdee + gainSurplusKcal
	}

	return Goals{
		BMR:      bmr,
		TDEE:     tdee,
		Calories: math.Round(target),
		Protein:  math.Round(target * proteinShare / KcalPerGramProtein),
		Carbs:    math.Round(target * carbsShare / KcalPerGramCarbs),
		Fat:      math.Round(target * fatShare / KcalPerGramFat),
	}, nil
}
