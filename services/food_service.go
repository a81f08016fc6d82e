package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Bhaskar125/macro-tracking-webapp/apperr"
	"github.com/Bhaskar125/macro-tracking-webapp/models"
	"github.com/Bhaskar125/macro-tracking-webapp/nutrition"

	"gorm.io/gorm"
)

// SearchLimit caps the number of foods a search returns.
const SearchLimit = 20

// Labeler names what is in a picture.
type Labeler interface {
	RecognizeLabels(ctx context.Context, dataURI string) ([]string, error)
}

type FoodService struct {
	db      *gorm.DB
	labeler Labeler
}

func NewFoodService(db *gorm.DB, labeler Labeler) *FoodService {
	return &FoodService{db: db, labeler: labeler}
}

type FoodInput struct {
	Name        string   `json:"name" binding:"required"`
	Brand       string   `json:"brand"`
	Calories    float64  `json:"calories"`
	Protein     float64  `json:"protein"`
	Carbs       float64  `json:"carbs"`
	Fat         float64  `json:"fat"`
	Fiber       *float64 `json:"fiber"`
	Sugar       *float64 `json:"sugar"`
	Sodium      *float64 `json:"sodium"`
	ServingSize float64  `json:"serving_size" binding:"required"`
	ServingUnit string   `json:"serving_unit" binding:"required"`
}

func (in FoodInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return invalid("food name is required")
	}
	if in.ServingSize <= 0 {
		return invalid("serving size must be positive")
	}
	if strings.TrimSpace(in.ServingUnit) == "" {
		return invalid("serving unit is required")
	}
	for name, v := range map[string]float64{
		"calories": in.Calories, "protein": in.Protein, "carbs": in.Carbs, "fat": in.Fat,
	} {
		if v < 0 {
			return invalid("%s must not be negative", name)
		}
	}
	for name, v := range map[string]*float64{"fiber": in.Fiber, "sugar": in.Sugar, "sodium": in.Sodium} {
		if v != nil && *v < 0 {
			return invalid("%s must not be negative", name)
		}
	}
	return nil
}

func (in FoodInput) apply(f *models.FoodItem) {
	f.Name = strings.TrimSpace(in.Name)
	f.Brand = strings.TrimSpace(in.Brand)
	f.Calories = in.Calories
	f.Protein = in.Protein
	f.Carbs = in.Carbs
	f.Fat = in.Fat
	f.Fiber = in.Fiber
	f.Sugar = in.Sugar
	f.Sodium = in.Sodium
	f.ServingSize = in.ServingSize
	f.ServingUnit = strings.TrimSpace(in.ServingUnit)
}

func (s *FoodService) Create(ctx context.Context, in FoodInput) (*models.FoodItem, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var food models.FoodItem
	in.apply(&food)
	if err := s.db.WithContext(ctx).Create(&food).Error; err != nil {
		return nil, dbError(err, "create food")
	}
	return &food, nil
}

func (s *FoodService) Get(ctx context.Context, id uint) (*models.FoodItem, error) {
	var food models.FoodItem
	if err := s.db.WithContext(ctx).First(&food, id).Error; err != nil {
		return nil, dbError(err, fmt.Sprintf("food %d", id))
	}
	return &food, nil
}

func (s *FoodService) Update(ctx context.Context, id uint, in FoodInput) (*models.FoodItem, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	food, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	in.apply(food)
	if err := s.db.WithContext(ctx).Save(food).Error; err != nil {
		return nil, dbError(err, fmt.Sprintf("update food %d", id))
	}
	return food, nil
}

// Search matches query case-insensitively anywhere in the name or brand and
// returns at most SearchLimit foods by name. An empty query lists the whole
// catalogue by name.
func (s *FoodService) Search(ctx context.Context, query string) ([]models.FoodItem, error) {
	q := s.db.WithContext(ctx).Order("name ASC")

	query = strings.TrimSpace(query)
	if query != "" {
		pattern := "%" + escapeLike(strings.ToLower(query)) + "%"
		q = q.Where(`LOWER(name) LIKE ? ESCAPE '\' OR LOWER(brand) LIKE ? ESCAPE '\'`, pattern, pattern).
			Limit(SearchLimit)
	}

	var foods []models.FoodItem
	if err := q.Find(&foods).Error; err != nil {
		return nil, dbError(err, "search foods")
	}
	return foods, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// Lookup loads the given foods into a map for the aggregator. Missing ids
// are simply absent from the result.
func (s *FoodService) Lookup(ctx context.Context, ids []uint) (nutrition.FoodMap, error) {
	out := nutrition.FoodMap{}
	if len(ids) == 0 {
		return out, nil
	}
	var foods []models.FoodItem
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&foods).Error; err != nil {
		return nil, dbError(err, "lookup foods")
	}
	for _, f := range foods {
		out[f.ID] = f
	}
	return out, nil
}

// Recognize labels the picture and returns the catalogue matches for the
// first label that has any.
func (s *FoodService) Recognize(ctx context.Context, dataURI string) ([]models.FoodItem, error) {
	if s.labeler == nil {
		return nil, ErrRecognitionUnavailable
	}
	labels, err := s.labeler.RecognizeLabels(ctx, dataURI)
	if err != nil {
		return nil, err
	}
	if len(labels) == 0 {
		return nil, fmt.Errorf("no labels detected: %w", apperr.ErrNotFound)
	}
	for _, l := range labels {
		foods, err := s.Search(ctx, l)
		if err != nil {
			return nil, err
		}
		if len(foods) > 0 {
			return foods, nil
		}
	}
	return []models.FoodItem{}, nil
}

var ErrRecognitionUnavailable = errors.New("image recognition is not configured")

// Seed inserts the foods that are not in the catalogue yet, matching on
// name and brand. It returns how many were added.
func (s *FoodService) Seed(ctx context.Context, foods []FoodInput) (int, error) {
	added := 0
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, in := range foods {
			if err := in.validate(); err != nil {
				return fmt.Errorf("seed %q: %w", in.Name, err)
			}
			var n int64
			if err := tx.Model(&models.FoodItem{}).
				Where("name = ? AND brand = ?", strings.TrimSpace(in.Name), strings.TrimSpace(in.Brand)).
				Count(&n).Error; err != nil {
				return err
			}
			if n > 0 {
				continue
			}
			var food models.FoodItem
			in.apply(&food)
			if err := tx.Create(&food).Error; err != nil {
				return err
			}
			added++
		}
		return nil
	})
	if err != nil {
		return 0, dbError(err, "seed foods")
	}
	return added, nil
}

// ImportCSV seeds the catalogue from a CSV file laid out as csvHeader.
func (s *FoodService) ImportCSV(ctx context.Context, r io.Reader) (int, error) {
	foods, err := ParseFoodsCSV(r)
	if err != nil {
		return 0, err
	}
	return s.Seed(ctx, foods)
}

var csvHeader = []string{"name", "brand", "calories", "protein", "carbs", "fat", "fiber", "sugar", "sodium", "serving_size", "serving_unit"}

// ParseFoodsCSV reads a catalogue file. The header must match csvHeader;
// empty fiber/sugar/sodium cells mean "not reported".
func ParseFoodsCSV(r io.Reader) ([]FoodInput, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if strings.Join(header, ",") != strings.Join(csvHeader, ",") {
		return nil, invalid("invalid header format: expected %v, got %v", csvHeader, header)
	}

	var out []FoodInput
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading record: %w", err)
		}
		in, err := foodFromRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, in)
	}
	return out, nil
}

func foodFromRecord(rec []string) (FoodInput, error) {
	num := func(i int) (float64, error) {
		v, err := strconv.ParseFloat(strings.TrimSpace(rec[i]), 64)
		if err != nil {
			return 0, invalid("%s %q", csvHeader[i], rec[i])
		}
		return v, nil
	}
	opt := func(i int) (*float64, error) {
		if strings.TrimSpace(rec[i]) == "" {
			return nil, nil
		}
		v, err := num(i)
		return &v, err
	}

	in := FoodInput{Name: rec[0], Brand: rec[1], ServingUnit: rec[10]}
	var err error
	for i, dst := range map[int]*float64{2: &in.Calories, 3: &in.Protein, 4: &in.Carbs, 5: &in.Fat, 9: &in.ServingSize} {
		if *dst, err = num(i); err != nil {
			return in, err
		}
	}
	for i, dst := range map[int]**float64{6: &in.Fiber, 7: &in.Sugar, 8: &in.Sodium} {
		if *dst, err = opt(i); err != nil {
			return in, err
		}
	}
	return in, in.validate()
}

func fp(v float64) *float64 { return &v }

// DefaultFoods is the starter catalogue loaded by `macrotrack seed`.
var DefaultFoods = []FoodInput{
	{Name: "Chicken Breast", Brand: "Generic", Calories: 165, Protein: 31, Carbs: 0, Fat: 3.6, Fiber: fp(0), ServingSize: 100, ServingUnit: "g"},
	{Name: "Brown Rice", Brand: "Uncle Ben's", Calories: 112, Protein: 2.6, Carbs: 22, Fat: 0.9, Fiber: fp(1.8), ServingSize: 100, ServingUnit: "g"},
	{Name: "Greek Yogurt", Brand: "Fage", Calories: 59, Protein: 10, Carbs: 3.6, Fat: 0.4, ServingSize: 100, ServingUnit: "g"},
	{Name: "Banana", Brand: "Fresh", Calories: 89, Protein: 1.1, Carbs: 23, Fat: 0.3, Fiber: fp(2.6), ServingSize: 1, ServingUnit: "medium"},
	{Name: "Almonds", Brand: "Raw", Calories: 579, Protein: 21, Carbs: 22, Fat: 50, Fiber: fp(12), ServingSize: 100, ServingUnit: "g"},
}
