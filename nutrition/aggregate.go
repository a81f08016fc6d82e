package nutrition

import (
	"fmt"
	"math"

	"github.com/Bhaskar125/macro-tracking-webapp/apperr"
	"github.com/Bhaskar125/macro-tracking-webapp/models"
)

// Totals is a nutrition rollup. Sodium is in mg, everything else in g
// except Calories (kcal).
type Totals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
	Sugar    float64 `json:"sugar"`
	Sodium   float64 `json:"sodium"`
}

// Add returns the pointwise sum of t and o.
func (t Totals) Add(o Totals) Totals {
	return Totals{
		Calories: t.Calories + o.Calories,
		Protein:  t.Protein + o.Protein,
		Carbs:    t.Carbs + o.Carbs,
		Fat:      t.Fat + o.Fat,
		Fiber:    t.Fiber + o.Fiber,
		Sugar:    t.Sugar + o.Sugar,
		Sodium:   t.Sodium + o.Sodium,
	}
}

// MacroSplit is the share of calories coming from each macro, in whole
// percent.
type MacroSplit struct {
	Protein int `json:"protein"`
	Carbs   int `json:"carbs"`
	Fat     int `json:"fat"`
}

// Percentages splits the calories of t across the three macros.
func (t Totals) Percentages() MacroSplit {
	return MacroSplit{
		Protein: MacroPercent(t.Protein, KcalPerGramProtein, t.Calories),
		Carbs:   MacroPercent(t.Carbs, KcalPerGramCarbs, t.Calories),
		Fat:     MacroPercent(t.Fat, KcalPerGramFat, t.Calories),
	}
}

// MacroPercent is round(grams*kcalPerGram/totalCalories*100), or 0 when
// there are no calories.
func MacroPercent(grams, kcalPerGram, totalCalories float64) int {
	if totalCalories == 0 {
		return 0
	}
	return int(math.Round(grams * kcalPerGram / totalCalories * 100))
}

// FoodLookup resolves a food by id.
type FoodLookup interface {
	LookupFood(id uint) (models.FoodItem, bool)
}

// FoodMap is the in-memory FoodLookup used by the services.
type FoodMap map[uint]models.FoodItem

func (m FoodMap) LookupFood(id uint) (models.FoodItem, bool) {
	f, ok := m[id]
	return f, ok
}

// Contribution scales food's per-serving facts by quantity/servingSize.
// No unit conversion happens; both sides must use the food's serving unit.
func Contribution(entry models.FoodLog, food models.FoodItem) (Totals, error) {
	if food.ServingSize <= 0 {
		return Totals{}, fmt.Errorf("food %d has serving size %v: %w", food.ID, food.ServingSize, apperr.ErrInvalidInput)
	}
	if entry.Quantity < 0 {
		return Totals{}, fmt.Errorf("entry %d has negative quantity: %w", entry.ID, apperr.ErrInvalidInput)
	}
	scale := entry.Quantity / food.ServingSize
	return Totals{
		Calories: food.Calories * scale,
		Protein:  food.Protein * scale,
		Carbs:    food.Carbs * scale,
		Fat:      food.Fat * scale,
		Fiber:    valueOrZero(food.Fiber) * scale,
		Sugar:    valueOrZero(food.Sugar) * scale,
		Sodium:   valueOrZero(food.Sodium) * scale,
	}, nil
}

// Aggregate sums the scaled contribution of every entry. It is all or
// nothing: the first entry whose food cannot be resolved fails the call.
func Aggregate(entries []models.FoodLog, foods FoodLookup) (Totals, error) {
	var total Totals
	for _, e := range entries {
		food, ok := foods.LookupFood(e.FoodID)
		if !ok {
			return Totals{}, fmt.Errorf("food %d for entry %d: %w", e.FoodID, e.ID, apperr.ErrNotFound)
		}
		c, err := Contribution(e, food)
		if err != nil {
			return Totals{}, err
		}
		total = total.Add(c)
	}
	return total, nil
}

// GroupByMeal aggregates each meal slot separately. Every slot in
// models.MealTypes is present in the result, zero when nothing was logged.
func GroupByMeal(entries []models.FoodLog, foods FoodLookup) (map[models.MealType]Totals, error) {
	out := make(map[models.MealType]Totals, len(models.MealTypes))
	for _, m := range models.MealTypes {
		t, err := Aggregate(FilterByMeal(entries, m), foods)
		if err != nil {
			return nil, err
		}
		out[m] = t
	}
	return out, nil
}

// FilterByMeal keeps the entries logged against meal, preserving order.
func FilterByMeal(entries []models.FoodLog, meal models.MealType) []models.FoodLog {
	var out []models.FoodLog
	for _, e := range entries {
		if e.Meal == meal {
			out = append(out, e)
		}
	}
	return out
}

// Progress is consumed/goal clamped to [0, 1]; 0 when there is no goal.
func Progress(consumed, goal float64) float64 {
	if goal <= 0 {
		return 0
	}
	p := consumed / goal
	if p > 1 {
		return 1
	}
	if p < 0 {
		return 0
	}
	return p
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
