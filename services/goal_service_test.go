package services

import (
	"context"
	"sync"
	"testing"

	"github.com/Bhaskar125/macro-tracking-webapp/apperr"
	"github.com/Bhaskar125/macro-tracking-webapp/models"
	"github.com/Bhaskar125/macro-tracking-webapp/nutrition"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoalService_Upsert(t *testing.T) {
	db := newTestDB(t)
	sinks := &fakeSinks{}
	svc := NewGoalService(db, NewEvents(sinks, nil, testLogger()))
	ctx := context.Background()

	_, err := svc.Get(ctx, 1)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	first, err := svc.Upsert(ctx, 1, GoalInput{Calories: 2000, Protein: 150, Carbs: 200, Fat: 67})
	require.NoError(t, err)
	second, err := svc.Upsert(ctx, 1, GoalInput{Calories: 2200, Protein: 160, Carbs: 220, Fat: 70})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var n int64
	require.NoError(t, db.Model(&models.DailyGoal{}).Where("user_id = ?", 1).Count(&n).Error)
	assert.EqualValues(t, 1, n)

	got, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2200.0, got.Calories)

	_, err = svc.Upsert(ctx, 1, GoalInput{Calories: 0})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	assert.Equal(t, []string{EventGoalUpdated, EventGoalUpdated}, sinks.kinds())
}

func TestGoalService_UpsertOverwritesExistingRow(t *testing.T) {
	db := newTestDB(t)
	svc := NewGoalService(db, nil)
	ctx := context.Background()

	first, err := svc.Upsert(ctx, 4, GoalInput{Calories: 1800, Protein: 120, Carbs: 180, Fat: 60})
	require.NoError(t, err)
	// a soft-deleted row is invisible to reads but still owns the unique key
	require.NoError(t, db.Delete(&models.DailyGoal{}, first.ID).Error)

	got, err := svc.Upsert(ctx, 4, GoalInput{Calories: 2100, Protein: 140, Carbs: 210, Fat: 70})
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, 2100.0, got.Calories)

	stored, err := svc.Get(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, 70.0, stored.Fat)
}

func TestGoalService_ConcurrentUpsert(t *testing.T) {
	db := newTestDB(t)
	svc := NewGoalService(db, nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Upsert(ctx, 9, GoalInput{Calories: 2000 + float64(i), Protein: 150, Carbs: 200, Fat: 67})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}

	var n int64
	require.NoError(t, db.Model(&models.DailyGoal{}).Where("user_id = ?", 9).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func referenceProfile() nutrition.Profile {
	return nutrition.Profile{
		Age: 30, Sex: nutrition.Male, WeightKg: 75, HeightCm: 175,
		ActivityLevel: nutrition.Moderate, Goal: nutrition.Maintain,
	}
}

func TestGoalService_Calculate(t *testing.T) {
	svc := NewGoalService(newTestDB(t), nil)

	calc, err := svc.Calculate(referenceProfile())
	require.NoError(t, err)
	assert.Equal(t, 2633.0, calc.Calories)
	assert.Equal(t, 165.0, calc.Protein)
	assert.Equal(t, 24.49, calc.BMI)
	assert.Equal(t, "Normal weight", calc.BMICategory)

	bad := referenceProfile()
	bad.Age = 0
	_, err = svc.Calculate(bad)
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestGoalService_ApplyCalculated(t *testing.T) {
	svc := NewGoalService(newTestDB(t), nil)
	ctx := context.Background()

	calc, g, err := svc.ApplyCalculated(ctx, 7, referenceProfile())
	require.NoError(t, err)
	assert.Equal(t, calc.Calories, g.Calories)

	got, err := svc.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 2633.0, got.Calories)
	assert.Equal(t, 329.0, got.Carbs)
	assert.Equal(t, 73.0, got.Fat)
}
