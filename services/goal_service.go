package services

import (
	"context"

	"github.com/Bhaskar125/macro-tracking-webapp/models"
	"github.com/Bhaskar125/macro-tracking-webapp/nutrition"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GoalService struct {
	db     *gorm.DB
	events *Events
}

func NewGoalService(db *gorm.DB, events *Events) *GoalService {
	return &GoalService{db: db, events: events}
}

type GoalInput struct {
	Calories float64  `json:"calories" binding:"required"`
	Protein  float64  `json:"protein"`
	Carbs    float64  `json:"carbs"`
	Fat      float64  `json:"fat"`
	Fiber    *float64 `json:"fiber"`
}

func (in GoalInput) validate() error {
	if in.Calories <= 0 {
		return invalid("calories must be positive")
	}
	if in.Protein < 0 || in.Carbs < 0 || in.Fat < 0 {
		return invalid("macro targets must not be negative")
	}
	if in.Fiber != nil && *in.Fiber < 0 {
		return invalid("fiber must not be negative")
	}
	return nil
}

// Get returns the user's goal, apperr.ErrNotFound when none was set.
func (s *GoalService) Get(ctx context.Context, userID uint) (*models.DailyGoal, error) {
	var g models.DailyGoal
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&g).Error; err != nil {
		return nil, dbError(err, "daily goal")
	}
	return &g, nil
}

// Upsert keeps exactly one goal row per user.
func (s *GoalService) Upsert(ctx context.Context, userID uint, in GoalInput) (*models.DailyGoal, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	g := models.DailyGoal{
		UserID:   userID,
		Calories: in.Calories,
		Protein:  in.Protein,
		Carbs:    in.Carbs,
		Fat:      in.Fat,
		Fiber:    in.Fiber,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"calories", "protein", "carbs", "fat", "fiber", "updated_at", "deleted_at"}),
		}).Create(&g).Error
		if err != nil {
			return err
		}
		g = models.DailyGoal{}
		return tx.Where("user_id = ?", userID).First(&g).Error
	})
	if err != nil {
		return nil, dbError(err, "save daily goal")
	}
	s.events.Emit(ctx, userID, EventGoalUpdated, &g)
	return &g, nil
}

type Calculation struct {
	nutrition.Goals
	BMI         float64 `json:"bmi"`
	BMICategory string  `json:"bmi_category"`
}

// Calculate runs the calculator without touching storage.
func (s *GoalService) Calculate(p nutrition.Profile) (*Calculation, error) {
	goals, err := nutrition.ComputeGoals(p)
	if err != nil {
		return nil, err
	}
	out := &Calculation{Goals: goals}
	if bmi, err := nutrition.BMI(p.HeightCm, p.WeightKg); err == nil {
		out.BMI = round2(bmi)
		out.BMICategory = nutrition.BMICategory(bmi)
	}
	return out, nil
}

// ApplyCalculated stores the calculated targets as the user's goal.
func (s *GoalService) ApplyCalculated(ctx context.Context, userID uint, p nutrition.Profile) (*Calculation, *models.DailyGoal, error) {
	calc, err := s.Calculate(p)
	if err != nil {
		return nil, nil, err
	}
	g, err := s.Upsert(ctx, userID, GoalInput{
		Calories: calc.Calories,
		Protein:  calc.Protein,
		Carbs:    calc.Carbs,
		Fat:      calc.Fat,
	})
	if err != nil {
		return nil, nil, err
	}
	return calc, g, nil
}
