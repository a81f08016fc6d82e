package nutrition

import (
	"time"

	"github.com/Bhaskar125/macro-tracking-webapp/models"
)

// DayBounds returns [start, end) of the calendar day containing day in loc.
// end is the next local midnight, so days that cross a DST change are 23 or
// 25 hours long.
func DayBounds(day time.Time, loc *time.Location) (start, end time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	d := day.In(loc)
	start = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
	end = time.Date(d.Year(), d.Month(), d.Day()+1, 0, 0, 0, 0, loc)
	return start, end
}

// FilterByDay keeps the entries logged on the calendar day of day in loc.
func FilterByDay(entries []models.FoodLog, day time.Time, loc *time.Location) []models.FoodLog {
	start, end := DayBounds(day, loc)
	var out []models.FoodLog
	for _, e := range entries {
		if !e.LoggedAt.Before(start) && e.LoggedAt.Before(end) {
			out = append(out, e)
		}
	}
	return out
}
