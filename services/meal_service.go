package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/leagermaxl/nutri-smart/models"
	"github.com/leagermaxl/nutri-smart/utils"
)

type MealService struct {
	db        *gorm.DB
	nutrition *NutritionService
}

func NewMealService(db *gorm.DB, nutrition *NutritionService) *MealService {
	return &MealService{db: db, nutrition: nutrition}
}

type MealLogResult struct {
	MealGroupID string           `json:"mealGroupId"`
	ItemCount   int              `json:"itemCount"`
	Items       []models.FoodLog `json:"items"`
}

// LogMeal resolves a natural-language meal query into food-log rows. One
// nutrition lookup (and therefore one audit row) per call; every created row
// shares a freshly generated group id and the same behavioral tags. The
// per-item inserts run in a single transaction so a failure leaves no
// partial meal behind.
func (s *MealService) LogMeal(ctx context.Context, userID uint, query, emotionalState, eatingContext string) (*MealLogResult, error) {
	emotion, err := models.ParseEmotionalState(emotionalState)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	eating, err := models.ParseEatingContext(eatingContext)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	items, err := s.nutrition.fetchItems(ctx, query, &userID)
	if err != nil {
		return nil, err
	}

	groupID := uuid.NewString()
	now := time.Now()

	logs := make([]models.FoodLog, 0, len(items))
	for _, it := range items {
		logs = append(logs, models.FoodLog{
			UserID:             userID,
			FoodName:           it.Name,
			Calories:           it.Calories,
			ServingSize:        it.ServingSizeG,
			Protein:            it.ProteinG,
			FatTotal:           it.FatTotalG,
			FatSaturated:       it.FatSaturatedG,
			CarbohydratesTotal: it.CarbohydratesTotalG,
			Fiber:              it.FiberG,
			Sugar:              it.SugarG,
			Sodium:             it.SodiumMg,
			Potassium:          it.PotassiumMg,
			Cholesterol:        it.CholesterolMg,
			EmotionalState:     emotion,
			EatingContext:      eating,
			MealGroupID:        &groupID,
			LoggedAt:           now,
		})
	}

	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range logs {
			if err := tx.Create(&logs[i]).Error; err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return nil, err
	}

	return &MealLogResult{
		MealGroupID: groupID,
		ItemCount:   len(logs),
		Items:       logs,
	}, nil
}

// CreateFoodLogInput is an explicit food-log entry. Nil macro fields are
// auto-filled from a nutrition lookup when calories are absent; anything
// still nil defaults to zero.
type CreateFoodLogInput struct {
	FoodName           string   `json:"foodName" binding:"required"`
	Calories           *float64 `json:"calories"`
	ServingSize        *float64 `json:"servingSize"`
	Protein            *float64 `json:"protein"`
	FatTotal           *float64 `json:"fatTotal"`
	FatSaturated       *float64 `json:"fatSaturated"`
	CarbohydratesTotal *float64 `json:"carbohydratesTotal"`
	Fiber              *float64 `json:"fiber"`
	Sugar              *float64 `json:"sugar"`
	Sodium             *float64 `json:"sodium"`
	Potassium          *float64 `json:"potassium"`
	Cholesterol        *float64 `json:"cholesterol"`
	EmotionalState     string   `json:"emotionalState" binding:"required"`
	EatingContext      string   `json:"eatingContext" binding:"required"`
}

// CreateLog persists a single explicit food log. No group id on this path.
func (s *MealService) CreateLog(ctx context.Context, userID uint, input CreateFoodLogInput) (*models.FoodLog, error) {
	emotion, err := models.ParseEmotionalState(input.EmotionalState)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	eating, err := models.ParseEatingContext(input.EatingContext)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if input.Calories == nil {
		nut, err := s.nutrition.FetchNutrition(ctx, input.FoodName, &userID)
		if err != nil {
			return nil, err
		}
		fillMissing(&input, nut)
	}

	log := models.FoodLog{
		UserID:             userID,
		FoodName:           input.FoodName,
		Calories:           orZero(input.Calories),
		ServingSize:        orZero(input.ServingSize),
		Protein:            orZero(input.Protein),
		FatTotal:           orZero(input.FatTotal),
		FatSaturated:       orZero(input.FatSaturated),
		CarbohydratesTotal: orZero(input.CarbohydratesTotal),
		Fiber:              orZero(input.Fiber),
		Sugar:              orZero(input.Sugar),
		Sodium:             orZero(input.Sodium),
		Potassium:          orZero(input.Potassium),
		Cholesterol:        orZero(input.Cholesterol),
		EmotionalState:     emotion,
		EatingContext:      eating,
		LoggedAt:           time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(&log).Error; err != nil {
		return nil, err
	}
	return &log, nil
}

// LogsForDay returns the rows whose LoggedAt falls within the calendar day
// containing date, newest first. Bounds are inclusive on both ends.
func (s *MealService) LogsForDay(ctx context.Context, userID uint, date time.Time) ([]models.FoodLog, error) {
	start, end := utils.DayBounds(date)
	var logs []models.FoodLog
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND logged_at >= ? AND logged_at <= ?", userID, start, end).
		Order("logged_at DESC").
		Find(&logs).Error
	return logs, err
}

func fillMissing(input *CreateFoodLogInput, nut *NutritionData) {
	if input.Calories == nil {
		input.Calories = &nut.Calories
	}
	if input.ServingSize == nil {
		input.ServingSize = &nut.ServingSize
	}
	if input.Protein == nil {
		input.Protein = &nut.Protein
	}
	if input.FatTotal == nil {
		input.FatTotal = &nut.FatTotal
	}
	if input.FatSaturated == nil {
		input.FatSaturated = &nut.FatSaturated
	}
	if input.CarbohydratesTotal == nil {
		input.CarbohydratesTotal = &nut.CarbohydratesTotal
	}
	if input.Fiber == nil {
		input.Fiber = &nut.Fiber
	}
	if input.Sugar == nil {
		input.Sugar = &nut.Sugar
	}
	if input.Sodium == nil {
		input.Sodium = &nut.Sodium
	}
	if input.Potassium == nil {
		input.Potassium = &nut.Potassium
	}
	if input.Cholesterol == nil {
		input.Cholesterol = &nut.Cholesterol
	}
}

func orZero(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
