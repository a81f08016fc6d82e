package nutrition

import (
	"testing"
	"time"

	"github.com/Bhaskar125/macro-tracking-webapp/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayBounds(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	day := time.Date(2025, 3, 10, 23, 59, 0, 0, loc)

	start, end := DayBounds(day, loc)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2025, 3, 11, 0, 0, 0, 0, loc), end)

	// the same instant seen from UTC is still the 10th in loc
	start2, _ := DayBounds(day.UTC(), loc)
	assert.True(t, start.Equal(start2))
}

func TestDayBounds_DST(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata not available")
	}
	start, end := DayBounds(time.Date(2025, 3, 9, 12, 0, 0, 0, ny), ny)
	assert.Equal(t, 23*time.Hour, end.Sub(start))
	assert.Equal(t, 0, end.Hour())
}

func TestFilterByDay_Boundaries(t *testing.T) {
	loc := time.UTC
	day := time.Date(2025, 1, 15, 0, 0, 0, 0, loc)
	start, end := DayBounds(day, loc)

	entries := []models.FoodLog{
		entry(1, 1, 100, models.Breakfast, start),
		entry(2, 1, 100, models.Lunch, start.Add(12*time.Hour)),
		entry(3, 1, 100, models.Dinner, end.Add(-time.Nanosecond)),
		entry(4, 1, 100, models.Snack, end),
		entry(5, 1, 100, models.Snack, start.Add(-time.Nanosecond)),
	}
	got := FilterByDay(entries, day, loc)
	require.Len(t, got, 3)
	assert.Equal(t, uint(1), got[0].ID)
	assert.Equal(t, uint(2), got[1].ID)
	assert.Equal(t, uint(3), got[2].ID)
}

func TestFilterByDay_ReferenceZone(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*3600)
	// 2025-01-15 23:30 UTC is already the 16th in Tokyo
	at := time.Date(2025, 1, 15, 23, 30, 0, 0, time.UTC)
	entries := []models.FoodLog{entry(1, 1, 100, models.Lunch, at)}

	assert.Len(t, FilterByDay(entries, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), time.UTC), 1)
	assert.Empty(t, FilterByDay(entries, time.Date(2025, 1, 15, 0, 0, 0, 0, tokyo), tokyo))
	assert.Len(t, FilterByDay(entries, time.Date(2025, 1, 16, 0, 0, 0, 0, tokyo), tokyo), 1)
}
