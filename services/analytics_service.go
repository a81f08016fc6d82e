package services

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/Bhaskar125/macro-tracking-webapp/models"

	"gorm.io/gorm"
)

type AnalyticsService struct{ db *gorm.DB }

func NewAnalyticsService(db *gorm.DB) *AnalyticsService { return &AnalyticsService{db: db} }

// ---------- Summary ----------

type NutrAvg struct {
	AvgConsumed float64 `json:"avg_consumed"`
	AvgGoal     float64 `json:"avg_goal,omitempty"`
	AvgPercent  float64 `json:"avg_percent,omitempty"`
	Unit        string  `json:"unit,omitempty"`
}

type AnalyticsSummary struct {
	Range struct {
		From string `json:"from"`
		To   string `json:"to"`
	} `json:"range"`

	Macros map[string]NutrAvg `json:"macros"` // calories, protein, carbs, fat
	Micros map[string]NutrAvg `json:"micros"` // fiber, sugar, sodium

	Metadata struct {
		DaysCounted        int  `json:"days_counted"`
		GoalReachedDays    int  `json:"goal_reached_days"`
		IncludeMissingDays bool `json:"include_missing_days"`
	} `json:"metadata"`
}

type metricSpec struct {
	key, unit string
	consumed  func(models.DailyProgress) float64
	goal      func(*models.DailyGoal) float64
}

var summaryMacros = []metricSpec{
	{"calories", "kcal", func(d models.DailyProgress) float64 { return d.Calories }, func(g *models.DailyGoal) float64 { return g.Calories }},
	{"protein", "g", func(d models.DailyProgress) float64 { return d.Protein }, func(g *models.DailyGoal) float64 { return g.Protein }},
	{"carbs", "g", func(d models.DailyProgress) float64 { return d.Carbs }, func(g *models.DailyGoal) float64 { return g.Carbs }},
	{"fat", "g", func(d models.DailyProgress) float64 { return d.Fat }, func(g *models.DailyGoal) float64 { return g.Fat }},
}

var summaryMicros = []metricSpec{
	{"fiber", "g", func(d models.DailyProgress) float64 { return d.Fiber }, func(g *models.DailyGoal) float64 {
		if g.Fiber == nil {
			return 0
		}
		return *g.Fiber
	}},
	{"sugar", "g", func(d models.DailyProgress) float64 { return d.Sugar }, func(*models.DailyGoal) float64 { return 0 }},
	{"sodium", "mg", func(d models.DailyProgress) float64 { return d.Sodium }, func(*models.DailyGoal) float64 { return 0 }},
}

// Summary averages the stored snapshots over [from, to]. Days without a
// snapshot count as zero when includeMissing is set and are skipped
// otherwise.
func (s *AnalyticsService) Summary(
	ctx context.Context, userID uint, from, to time.Time, includeMissing bool,
) (*AnalyticsSummary, error) {
	from, to = snapshotDate(from), snapshotDate(to)
	if to.Before(from) {
		return nil, invalid("range end is before start")
	}

	idx, err := s.snapshots(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	goal, err := s.getGoalSnapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	var days []models.DailyProgress
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		dp, ok := idx[d.Format(dateLayout)]
		if ok || includeMissing {
			days = append(days, dp)
		}
	}

	out := &AnalyticsSummary{}
	out.Range.From = from.Format(dateLayout)
	out.Range.To = to.Format(dateLayout)
	out.Metadata.DaysCounted = len(days)
	out.Metadata.IncludeMissingDays = includeMissing
	for _, d := range days {
		if d.GoalReached {
			out.Metadata.GoalReachedDays++
		}
	}
	out.Macros = averages(summaryMacros, days, goal)
	out.Micros = averages(summaryMicros, days, goal)
	return out, nil
}

func averages(specs []metricSpec, days []models.DailyProgress, goal *models.DailyGoal) map[string]NutrAvg {
	out := make(map[string]NutrAvg, len(specs))
	for _, m := range specs {
		var sum, gsum, psum float64
		g := m.goal(goal)
		for _, d := range days {
			c := m.consumed(d)
			sum += c
			gsum += g
			if g > 0 {
				psum += c / g * 100.0
			}
		}
		out[m.key] = NutrAvg{
			AvgConsumed: avg(sum, len(days)),
			AvgGoal:     avg(gsum, len(days)),
			AvgPercent:  avg(psum, len(days)),
			Unit:        m.unit,
		}
	}
	return out
}

// ---------- Weekly Overview ----------

const (
	ModeChart    = "chart"
	ModeDetailed = "detailed"
)

type WeeklyOverviewResponse struct {
	WeekStart string `json:"week_start"`
	Mode      string `json:"mode"` // chart|detailed
	Days      any    `json:"days"`
}

type DayChart struct {
	Date        string             `json:"date"`
	Percentages map[string]float64 `json:"percentages"`
}
type Metric struct {
	Actual  float64 `json:"actual"`
	Target  float64 `json:"target"`
	Percent float64 `json:"percent"`
}
type DayDetailed struct {
	Date    string            `json:"date"`
	Metrics map[string]Metric `json:"metrics"`
}

// WeeklyOverview lays out seven days from weekStart against the current
// goal. Days without a snapshot show as zero.
func (s *AnalyticsService) WeeklyOverview(
	ctx context.Context, userID uint, weekStart time.Time, mode string,
) (*WeeklyOverviewResponse, error) {
	if mode == "" {
		mode = ModeChart
	}
	if mode != ModeChart && mode != ModeDetailed {
		return nil, invalid("mode must be 'chart' or 'detailed'")
	}

	from := snapshotDate(weekStart)
	to := from.AddDate(0, 0, 6)

	idx, err := s.snapshots(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	goal, err := s.getGoalSnapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := &WeeklyOverviewResponse{
		WeekStart: from.Format(dateLayout),
		Mode:      mode,
	}

	if mode == ModeChart {
		days := make([]DayChart, 0, 7)
		for i := 0; i < 7; i++ {
			key := from.AddDate(0, 0, i).Format(dateLayout)
			dp := idx[key]
			days = append(days, DayChart{
				Date: key,
				Percentages: map[string]float64{
					"calories": pct(dp.Calories, goal.Calories),
					"protein":  pct(dp.Protein, goal.Protein),
					"carbs":    pct(dp.Carbs, goal.Carbs),
					"fat":      pct(dp.Fat, goal.Fat),
				},
			})
		}
		out.Days = days
		return out, nil
	}

	days := make([]DayDetailed, 0, 7)
	for i := 0; i < 7; i++ {
		key := from.AddDate(0, 0, i).Format(dateLayout)
		dp := idx[key]
		days = append(days, DayDetailed{
			Date: key,
			Metrics: map[string]Metric{
				"calories":  {Actual: round2(dp.Calories), Target: round2(goal.Calories), Percent: pct(dp.Calories, goal.Calories)},
				"protein_g": {Actual: round2(dp.Protein), Target: round2(goal.Protein), Percent: pct(dp.Protein, goal.Protein)},
				"carbs_g":   {Actual: round2(dp.Carbs), Target: round2(goal.Carbs), Percent: pct(dp.Carbs, goal.Carbs)},
				"fat_g":     {Actual: round2(dp.Fat), Target: round2(goal.Fat), Percent: pct(dp.Fat, goal.Fat)},
				"fiber_g":   {Actual: round2(dp.Fiber), Target: round2(valueOr(goal.Fiber)), Percent: pct(dp.Fiber, valueOr(goal.Fiber))},
				"sugar_g":   {Actual: round2(dp.Sugar)},
				"sodium_mg": {Actual: round2(dp.Sodium)},
			},
		})
	}
	out.Days = days
	return out, nil
}

// ---------- internals ----------

// snapshots indexes the user's DailyProgress rows in [from, to] by date.
func (s *AnalyticsService) snapshots(ctx context.Context, userID uint, from, to time.Time) (map[string]models.DailyProgress, error) {
	var rows []models.DailyProgress
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Order("date ASC").
		Find(&rows).Error; err != nil {
		return nil, dbError(err, "load daily progress")
	}
	idx := make(map[string]models.DailyProgress, len(rows))
	for _, r := range rows {
		idx[r.Date.UTC().Format(dateLayout)] = r
	}
	return idx, nil
}

// getGoalSnapshot returns the current goal, or a zero goal when the user
// never set one.
func (s *AnalyticsService) getGoalSnapshot(ctx context.Context, userID uint) (*models.DailyGoal, error) {
	var g models.DailyGoal
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&g).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.DailyGoal{}, nil
		}
		return nil, err
	}
	return &g, nil
}

func pct(actual, goal float64) float64 {
	if goal <= 0 {
		if actual <= 0 {
			return 0
		}
		return 100
	}
	return round2((actual / goal) * 100.0)
}

func avg(sum float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	return round2(sum / float64(n))
}

func valueOr(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
