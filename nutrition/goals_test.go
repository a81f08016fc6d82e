package nutrition

import (
	"encoding/json"
	"testing"

	"github.com/Bhaskar125/macro-tracking-webapp/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultProfile() Profile {
	return Profile{
		Age:           30,
		Sex:           Male,
		WeightKg:      75,
		HeightCm:      175,
		ActivityLevel: Moderate,
		Goal:          Maintain,
	}
}

func TestComputeGoals_ReferenceProfile(t *testing.T) {
	g, err := ComputeGoals(defaultProfile())
	require.NoError(t, err)

	// 750 + 1093.75 - 150 + 5
	assert.InDelta(t, 1698.75, g.BMR, 1e-9)
	assert.InDelta(t, 2633.0625, g.TDEE, 1e-9)
	assert.Equal(t, 2633.0, g.Calories)
	assert.Equal(t, 165.0, g.Protein)
	assert.Equal(t, 329.0, g.Carbs)
	assert.Equal(t, 73.0, g.Fat)
}

func TestComputeGoals_Female(t *testing.T) {
	p := defaultProfile()
	p.Sex = Female
	p.ActivityLevel = Sedentary

	g, err := ComputeGoals(p)
	require.NoError(t, err)
	// 750 + 1093.75 - 150 - 161
	assert.InDelta(t, 1532.75, g.BMR, 1e-9)
	assert.InDelta(t, 1532.75*1.2, g.TDEE, 1e-9)
}

func TestComputeGoals_IntentIsMonotonic(t *testing.T) {
	for _, lvl := range []ActivityLevel{Sedentary, Light, Moderate, Active, VeryActive} {
		p := defaultProfile()
		p.ActivityLevel = lvl

		p.Goal = Lose
		lose, err := ComputeGoals(p)
		require.NoError(t, err)
		p.Goal = Maintain
		maintain, err := ComputeGoals(p)
		require.NoError(t, err)
		p.Goal = Gain
		gain, err := ComputeGoals(p)
		require.NoError(t, err)

		assert.Less(t, lose.Calories, maintain.Calories, lvl.String())
		assert.Less(t, maintain.Calories, gain.Calories, lvl.String())
		assert.InDelta(t, maintain.TDEE-500, lose.Calories, 0.5)
		assert.InDelta(t, maintain.TDEE+300, gain.Calories, 0.5)
	}
}

func TestComputeGoals_MacroSplit(t *testing.T) {
	profiles := []Profile{
		defaultProfile(),
		{Age: 52, Sex: Female, WeightKg: 61.5, HeightCm: 158, ActivityLevel: Light, Goal: Lose},
		{Age: 19, Sex: Male, WeightKg: 92, HeightCm: 191, ActivityLevel: VeryActive, Goal: Gain},
		{Age: 40, Sex: Female, WeightKg: 70, HeightCm: 170, ActivityLevel: Active, Goal: Maintain},
	}
	for _, p := range profiles {
		g, err := ComputeGoals(p)
		require.NoError(t, err)

		proteinKcal := g.Protein * KcalPerGramProtein
		fatKcal := g.Fat * KcalPerGramFat
		carbKcal := g.Carbs * KcalPerGramCarbs

		// each gram value is off by at most 0.5 g after rounding
		assert.InDelta(t, g.Calories*0.5, proteinKcal+fatKcal, 0.5*KcalPerGramProtein+0.5*KcalPerGramFat+1)
		assert.InDelta(t, g.Calories*0.5, carbKcal, 0.5*KcalPerGramCarbs+1)
	}
}

func TestComputeGoals_InvalidInput(t *testing.T) {
	cases := map[string]func(*Profile){
		"zero age":        func(p *Profile) { p.Age = 0 },
		"negative weight": func(p *Profile) { p.WeightKg = -1 },
		"zero height":     func(p *Profile) { p.HeightCm = 0 },
		"unknown sex":     func(p *Profile) { p.Sex = "other" },
		"unset activity":  func(p *Profile) { p.ActivityLevel = 0 },
		"out of range":    func(p *Profile) { p.ActivityLevel = 6 },
		"unknown goal":    func(p *Profile) { p.Goal = "bulk" },
		"mixed case sex":  func(p *Profile) { p.Sex = "Male" },
		"upper case goal": func(p *Profile) { p.Goal = "LOSE" },
		"padded sex":      func(p *Profile) { p.Sex = " female" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			p := defaultProfile()
			mutate(&p)
			_, err := ComputeGoals(p)
			assert.ErrorIs(t, err, apperr.ErrInvalidInput)
		})
	}
}

func TestComputeGoals_NormalizedInput(t *testing.T) {
	sex, err := ParseSex(" Male ")
	require.NoError(t, err)
	intent, err := ParseGoalIntent("LOSE")
	require.NoError(t, err)

	p := defaultProfile()
	p.Sex, p.Goal = sex, intent
	g, err := ComputeGoals(p)
	require.NoError(t, err)
	assert.InDelta(t, 1698.75, g.BMR, 1e-9)
	assert.Equal(t, 2133.0, g.Calories)

	var fromJSON Profile
	body := `{"age":30,"sex":"MALE","weight":75,"height":175,"activity_level":"Moderate","goal":"Lose"}`
	require.NoError(t, json.Unmarshal([]byte(body), &fromJSON))
	got, err := ComputeGoals(fromJSON)
	require.NoError(t, err)
	assert.Equal(t, g, got)
}

func TestComputeGoals_Deterministic(t *testing.T) {
	a, err := ComputeGoals(defaultProfile())
	require.NoError(t, err)
	b, err := ComputeGoals(defaultProfile())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestProfileJSON(t *testing.T) {
	var p Profile
	body := `{"age":30,"sex":"male","weight":75,"height":175,"activity_level":"very_active","goal":"gain"}`
	require.NoError(t, json.Unmarshal([]byte(body), &p))
	assert.Equal(t, VeryActive, p.ActivityLevel)
	assert.Equal(t, Gain, p.Goal)
	assert.NoError(t, p.Validate())

	err := json.Unmarshal([]byte(`{"activity_level":"couch"}`), &p)
	assert.Error(t, err)

	out, err := json.Marshal(struct {
		Level ActivityLevel `json:"level"`
	}{Light})
	require.NoError(t, err)
	assert.JSONEq(t, `{"level":"light"}`, string(out))
}

func TestActivityLevelMultiplier(t *testing.T) {
	want := map[ActivityLevel]float64{
		Sedentary: 1.2, Light: 1.375, Moderate: 1.55, Active: 1.725, VeryActive: 1.9,
	}
	for lvl, m := range want {
		got, err := lvl.Multiplier()
		require.NoError(t, err)
		assert.Equal(t, m, got)

		parsed, err := ParseActivityLevel(lvl.String())
		require.NoError(t, err)
		assert.Equal(t, lvl, parsed)
	}
	_, err := ActivityLevel(0).Multiplier()
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestBMI(t *testing.T) {
	bmi, err := BMI(175, 75)
	require.NoError(t, err)
	assert.InDelta(t, 24.49, bmi, 0.01)
	assert.Equal(t, "Normal weight", BMICategory(bmi))

	_, err = BMI(0, 75)
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
	_, err = BMI(300, 75)
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}
