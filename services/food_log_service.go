package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Bhaskar125/macro-tracking-webapp/models"
	"github.com/Bhaskar125/macro-tracking-webapp/nutrition"

	"gorm.io/gorm"
)

type FoodLogService struct {
	db     *gorm.DB
	events *Events
}

func NewFoodLogService(db *gorm.DB, events *Events) *FoodLogService {
	return &FoodLogService{db: db, events: events}
}

type FoodLogInput struct {
	FoodID   uint            `json:"food_id" binding:"required"`
	Quantity float64         `json:"quantity" binding:"required"`
	Meal     models.MealType `json:"meal" binding:"required"`
	LoggedAt *time.Time      `json:"logged_at"`
}

func (in FoodLogInput) validate() error {
	if in.Quantity <= 0 {
		return invalid("quantity must be positive")
	}
	if !in.Meal.Valid() {
		return invalid("unknown meal %q", in.Meal)
	}
	return nil
}

func (s *FoodLogService) Log(ctx context.Context, userID uint, in FoodLogInput) (*models.FoodLog, error) {
	var entry *models.FoodLog
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		entry, err = createLog(tx, userID, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.events.Emit(ctx, userID, EventFoodLogCreated, entry)
	return entry, nil
}

func createLog(tx *gorm.DB, userID uint, in FoodLogInput) (*models.FoodLog, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var food models.FoodItem
	if err := tx.First(&food, in.FoodID).Error; err != nil {
		return nil, dbError(err, fmt.Sprintf("food %d", in.FoodID))
	}

	at := time.Now()
	if in.LoggedAt != nil && !in.LoggedAt.IsZero() {
		at = *in.LoggedAt
	}
	entry := &models.FoodLog{
		UserID:   userID,
		FoodID:   food.ID,
		Quantity: in.Quantity,
		Meal:     in.Meal,
		// stored in UTC so day range comparisons work on every driver
		LoggedAt: at.UTC(),
	}
	if err := tx.Create(entry).Error; err != nil {
		return nil, dbError(err, "create food log")
	}
	entry.Food = &food
	return entry, nil
}

// ListForDay returns the user's entries for the calendar day of day in loc,
// newest first, with their foods loaded. meal narrows to one slot when set.
func (s *FoodLogService) ListForDay(ctx context.Context, userID uint, day time.Time, loc *time.Location, meal *models.MealType) ([]models.FoodLog, error) {
	start, end := nutrition.DayBounds(day, loc)
	q := s.db.WithContext(ctx).
		Preload("Food").
		Where("user_id = ? AND logged_at >= ? AND logged_at < ?", userID, start.UTC(), end.UTC())
	if meal != nil {
		q = q.Where("meal = ?", *meal)
	}

	var entries []models.FoodLog
	if err := q.Order("logged_at DESC").Order("id DESC").Find(&entries).Error; err != nil {
		return nil, dbError(err, "list food logs")
	}
	return entries, nil
}

// Delete removes one of the user's entries. Entries owned by someone else
// look exactly like missing ones.
func (s *FoodLogService) Delete(ctx context.Context, userID, id uint) error {
	if err := deleteLog(s.db.WithContext(ctx), userID, id); err != nil {
		return err
	}
	s.events.Emit(ctx, userID, EventFoodLogDeleted, map[string]uint{"id": id})
	return nil
}

func deleteLog(tx *gorm.DB, userID, id uint) error {
	res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&models.FoodLog{})
	if res.Error != nil {
		return dbError(res.Error, fmt.Sprintf("delete food log %d", id))
	}
	if res.RowsAffected == 0 {
		return dbError(gorm.ErrRecordNotFound, fmt.Sprintf("food log %d", id))
	}
	return nil
}

// Replace swaps entry id for a new one built from in. Entries are never
// edited in place.
func (s *FoodLogService) Replace(ctx context.Context, userID, id uint, in FoodLogInput) (*models.FoodLog, error) {
	var entry *models.FoodLog
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteLog(tx, userID, id); err != nil {
			return err
		}
		var err error
		entry, err = createLog(tx, userID, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.events.Emit(ctx, userID, EventFoodLogDeleted, map[string]uint{"id": id})
	s.events.Emit(ctx, userID, EventFoodLogCreated, entry)
	return entry, nil
}
