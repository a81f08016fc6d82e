package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Bhaskar125/macro-tracking-webapp/apperr"
	"github.com/Bhaskar125/macro-tracking-webapp/models"
	"github.com/Bhaskar125/macro-tracking-webapp/nutrition"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Alerter records a user-facing alert.
type Alerter interface {
	EmitAlert(ctx context.Context, userID uint, typ, message string)
}

type ProgressService struct {
	db     *gorm.DB
	logs   *FoodLogService
	foods  *FoodService
	goals  *GoalService
	alerts Alerter
}

func NewProgressService(db *gorm.DB, logs *FoodLogService, foods *FoodService, goals *GoalService, alerts Alerter) *ProgressService {
	return &ProgressService{db: db, logs: logs, foods: foods, goals: goals, alerts: alerts}
}

type MacroProgress struct {
	Consumed  float64 `json:"consumed"`
	Goal      float64 `json:"goal"`
	Progress  float64 `json:"progress"` // 0..1
	Remaining float64 `json:"remaining"`
}

type EntryView struct {
	models.FoodLog
	Contribution nutrition.Totals `json:"contribution"`
}

type DailySummary struct {
	Date        string                               `json:"date"`
	Timezone    string                               `json:"timezone"`
	Totals      nutrition.Totals                     `json:"totals"`
	Percentages nutrition.MacroSplit                 `json:"percentages"`
	Meals       map[models.MealType]nutrition.Totals `json:"meals"`
	Goal        *models.DailyGoal                    `json:"goal,omitempty"`
	Progress    map[string]MacroProgress             `json:"progress,omitempty"`
	Entries     []EntryView                          `json:"entries"`
}

// Daily totals the user's day, compares it with their goal and records the
// result as the day's snapshot.
func (s *ProgressService) Daily(ctx context.Context, userID uint, day time.Time, loc *time.Location) (*DailySummary, error) {
	if loc == nil {
		loc = time.UTC
	}
	entries, err := s.logs.ListForDay(ctx, userID, day, loc, nil)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.FoodID)
	}
	foods, err := s.foods.Lookup(ctx, ids)
	if err != nil {
		return nil, err
	}

	totals, err := nutrition.Aggregate(entries, foods)
	if err != nil {
		return nil, err
	}
	meals, err := nutrition.GroupByMeal(entries, foods)
	if err != nil {
		return nil, err
	}

	views := make([]EntryView, 0, len(entries))
	for _, e := range entries {
		c, err := nutrition.Contribution(e, foods[e.FoodID])
		if err != nil {
			return nil, err
		}
		views = append(views, EntryView{FoodLog: e, Contribution: c})
	}

	start, _ := nutrition.DayBounds(day, loc)
	out := &DailySummary{
		Date:        start.Format(dateLayout),
		Timezone:    loc.String(),
		Totals:      totals,
		Percentages: totals.Percentages(),
		Meals:       meals,
		Entries:     views,
	}

	goal, err := s.goals.Get(ctx, userID)
	switch {
	case errors.Is(err, apperr.ErrNotFound):
	case err != nil:
		return nil, err
	default:
		out.Goal = goal
		out.Progress = map[string]MacroProgress{
			"calories": macroProgress(totals.Calories, goal.Calories),
			"protein":  macroProgress(totals.Protein, goal.Protein),
			"carbs":    macroProgress(totals.Carbs, goal.Carbs),
			"fat":      macroProgress(totals.Fat, goal.Fat),
		}
		if goal.Fiber != nil {
			out.Progress["fiber"] = macroProgress(totals.Fiber, *goal.Fiber)
		}
	}

	reached, err := s.snapshot(ctx, userID, start, totals, goal)
	if err != nil {
		return nil, err
	}
	if reached && s.alerts != nil {
		s.alerts.EmitAlert(ctx, userID, models.AlertGoal,
			fmt.Sprintf("You reached your %.0f kcal goal for %s", goal.Calories, out.Date))
	}
	return out, nil
}

func macroProgress(consumed, goal float64) MacroProgress {
	return MacroProgress{
		Consumed:  round2(consumed),
		Goal:      goal,
		Progress:  nutrition.Progress(consumed, goal),
		Remaining: round2(goal - consumed),
	}
}

// snapshotDate keys a DailyProgress row by calendar date, independent of
// the zone the day was computed in.
func snapshotDate(localStart time.Time) time.Time {
	return time.Date(localStart.Year(), localStart.Month(), localStart.Day(), 0, 0, 0, 0, time.UTC)
}

// snapshot upserts the day's DailyProgress row. It reports true only when
// this call moved the day from below the calorie goal to at or above it.
func (s *ProgressService) snapshot(ctx context.Context, userID uint, localStart time.Time, t nutrition.Totals, goal *models.DailyGoal) (bool, error) {
	date := snapshotDate(localStart)
	reached := goal != nil && goal.Calories > 0 && t.Calories >= goal.Calories

	var crossed bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var prev models.DailyProgress
		err := tx.Where("user_id = ? AND date = ?", userID, date).First(&prev).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		crossed = reached && !prev.GoalReached

		row := models.DailyProgress{
			UserID:      userID,
			Date:        date,
			Calories:    t.Calories,
			Protein:     t.Protein,
			Carbs:       t.Carbs,
			Fat:         t.Fat,
			Fiber:       t.Fiber,
			Sugar:       t.Sugar,
			Sodium:      t.Sodium,
			GoalReached: reached,
		}
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"calories", "protein", "carbs", "fat", "fiber", "sugar", "sodium",
				"goal_reached", "updated_at", "deleted_at",
			}),
		}).Create(&row).Error
	})
	if err != nil {
		return false, dbError(err, "save daily progress")
	}
	return crossed, nil
}

// History returns the stored snapshots between from and to, both inclusive
// calendar dates, oldest first.
func (s *ProgressService) History(ctx context.Context, userID uint, from, to time.Time) ([]models.DailyProgress, error) {
	f, t := snapshotDate(from), snapshotDate(to)
	if t.Before(f) {
		return nil, invalid("range end %s is before start %s", t.Format(dateLayout), f.Format(dateLayout))
	}
	var rows []models.DailyProgress
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, f, t).
		Order("date ASC").
		Find(&rows).Error; err != nil {
		return nil, dbError(err, "progress history")
	}
	return rows, nil
}
