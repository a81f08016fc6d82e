package services

import (
	"context"
	"testing"
	"time"

	"github.com/Bhaskar125/macro-tracking-webapp/apperr"
	"github.com/Bhaskar125/macro-tracking-webapp/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(t *testing.T, s string, loc *time.Location) *time.Time {
	t.Helper()
	v, err := time.ParseInLocation("2006-01-02 15:04", s, loc)
	require.NoError(t, err)
	return &v
}

func TestFoodLogService_LogAndList(t *testing.T) {
	db := newTestDB(t)
	sinks := &fakeSinks{}
	svc := NewFoodLogService(db, NewEvents(sinks, sinks, testLogger()))
	chicken := mustFood(t, db, "Chicken Breast", "Generic", 165, 31, 0, 3.6, 100, "g")
	ctx := context.Background()

	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	for _, in := range []FoodLogInput{
		{FoodID: chicken.ID, Quantity: 150, Meal: models.Lunch, LoggedAt: at(t, "2024-03-05 12:30", ny)},
		{FoodID: chicken.ID, Quantity: 100, Meal: models.Dinner, LoggedAt: at(t, "2024-03-05 23:59", ny)},
		{FoodID: chicken.ID, Quantity: 50, Meal: models.Breakfast, LoggedAt: at(t, "2024-03-06 00:00", ny)},
	} {
		e, err := svc.Log(ctx, 1, in)
		require.NoError(t, err)
		assert.Equal(t, time.UTC, e.LoggedAt.Location())
		require.NotNil(t, e.Food)
	}
	_, err = svc.Log(ctx, 2, FoodLogInput{FoodID: chicken.ID, Quantity: 10, Meal: models.Lunch, LoggedAt: at(t, "2024-03-05 12:00", ny)})
	require.NoError(t, err)

	day := *at(t, "2024-03-05 08:00", ny)
	got, err := svc.ListForDay(ctx, 1, day, ny, nil)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 100.0, got[0].Quantity, "newest first")
	assert.Equal(t, 150.0, got[1].Quantity)
	require.NotNil(t, got[0].Food)
	assert.Equal(t, "Chicken Breast", got[0].Food.Name)

	lunch := models.Lunch
	got, err = svc.ListForDay(ctx, 1, day, ny, &lunch)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, models.Lunch, got[0].Meal)

	// the same instants fall on other days in UTC
	got, err = svc.ListForDay(ctx, 1, time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC), time.UTC, nil)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	assert.Equal(t, []string{EventFoodLogCreated, EventFoodLogCreated, EventFoodLogCreated, EventFoodLogCreated}, sinks.kinds())
}

func TestFoodLogService_LogValidates(t *testing.T) {
	db := newTestDB(t)
	svc := NewFoodLogService(db, nil)
	f := mustFood(t, db, "Banana", "Fresh", 89, 1.1, 23, 0.3, 1, "medium")
	ctx := context.Background()

	_, err := svc.Log(ctx, 1, FoodLogInput{FoodID: f.ID, Quantity: 0, Meal: models.Snack})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	_, err = svc.Log(ctx, 1, FoodLogInput{FoodID: f.ID, Quantity: 1, Meal: "brunch"})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	_, err = svc.Log(ctx, 1, FoodLogInput{FoodID: 999, Quantity: 1, Meal: models.Snack})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestFoodLogService_DeleteIsOwnerScoped(t *testing.T) {
	db := newTestDB(t)
	sinks := &fakeSinks{}
	svc := NewFoodLogService(db, NewEvents(sinks, nil, testLogger()))
	f := mustFood(t, db, "Banana", "Fresh", 89, 1.1, 23, 0.3, 1, "medium")
	ctx := context.Background()

	e, err := svc.Log(ctx, 1, FoodLogInput{FoodID: f.ID, Quantity: 1, Meal: models.Snack})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, 2, e.ID), apperr.ErrNotFound)
	require.NoError(t, svc.Delete(ctx, 1, e.ID))
	assert.ErrorIs(t, svc.Delete(ctx, 1, e.ID), apperr.ErrNotFound)

	assert.Equal(t, []string{EventFoodLogCreated, EventFoodLogDeleted}, sinks.kinds())
}

func TestFoodLogService_Replace(t *testing.T) {
	db := newTestDB(t)
	svc := NewFoodLogService(db, nil)
	f := mustFood(t, db, "Banana", "Fresh", 89, 1.1, 23, 0.3, 1, "medium")
	ctx := context.Background()
	when := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	old, err := svc.Log(ctx, 1, FoodLogInput{FoodID: f.ID, Quantity: 1, Meal: models.Breakfast, LoggedAt: &when})
	require.NoError(t, err)

	t.Run("invalid input keeps the old entry", func(t *testing.T) {
		_, err := svc.Replace(ctx, 1, old.ID, FoodLogInput{FoodID: f.ID, Quantity: -2, Meal: models.Breakfast})
		assert.ErrorIs(t, err, apperr.ErrInvalidInput)
		got, err := svc.ListForDay(ctx, 1, when, time.UTC, nil)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, old.ID, got[0].ID)
	})

	t.Run("other users cannot replace", func(t *testing.T) {
		_, err := svc.Replace(ctx, 2, old.ID, FoodLogInput{FoodID: f.ID, Quantity: 2, Meal: models.Breakfast, LoggedAt: &when})
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("replaces with a new entry", func(t *testing.T) {
		nu, err := svc.Replace(ctx, 1, old.ID, FoodLogInput{FoodID: f.ID, Quantity: 2, Meal: models.Snack, LoggedAt: &when})
		require.NoError(t, err)
		assert.NotEqual(t, old.ID, nu.ID)

		got, err := svc.ListForDay(ctx, 1, when, time.UTC, nil)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, nu.ID, got[0].ID)
		assert.Equal(t, 2.0, got[0].Quantity)
		assert.Equal(t, models.Snack, got[0].Meal)
	})
}
