package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leagermaxl/nutri-smart/models"
)

func TestLogMealCreatesRowPerItem(t *testing.T) {
	db := newTestDB(t)
	fake := newNutritionFake(t, http.StatusOK, twoItemNutritionBody)
	svc := NewMealService(db, fake.service(db))

	result, err := svc.LogMeal(context.Background(), 7, "2 eggs and toast", "STRESS", "WORK")
	require.NoError(t, err)

	assert.NotEmpty(t, result.MealGroupID)
	assert.Equal(t, 2, result.ItemCount)
	require.Len(t, result.Items, 2)

	var logs []models.FoodLog
	require.NoError(t, db.Where("user_id = ?", 7).Find(&logs).Error)
	require.Len(t, logs, 2)
	for _, l := range logs {
		require.NotNil(t, l.MealGroupID)
		assert.Equal(t, result.MealGroupID, *l.MealGroupID)
		assert.Equal(t, models.EmotionStress, l.EmotionalState)
		assert.Equal(t, models.ContextWork, l.EatingContext)
	}

	// one lookup, one audit row, regardless of item count
	assert.Equal(t, 1, fake.calls)
	var auditCount int64
	require.NoError(t, db.Model(&models.NutritionAPIResponse{}).Count(&auditCount).Error)
	assert.EqualValues(t, 1, auditCount)

	// group totals equal the sum of member rows
	today, err := svc.LogsForDay(context.Background(), 7, time.Now())
	require.NoError(t, err)
	var total float64
	for _, l := range today {
		total += l.Calories
	}
	assert.InDelta(t, 215, total, 0.001)
}

func TestLogMealDefaultsTags(t *testing.T) {
	db := newTestDB(t)
	fake := newNutritionFake(t, http.StatusOK, twoItemNutritionBody)
	svc := NewMealService(db, fake.service(db))

	result, err := svc.LogMeal(context.Background(), 1, "2 eggs and toast", "", "")
	require.NoError(t, err)
	for _, l := range result.Items {
		assert.Equal(t, models.EmotionNeutral, l.EmotionalState)
		assert.Equal(t, models.ContextHome, l.EatingContext)
	}
}

func TestLogMealRejectsUnknownTags(t *testing.T) {
	db := newTestDB(t)
	fake := newNutritionFake(t, http.StatusOK, twoItemNutritionBody)
	svc := NewMealService(db, fake.service(db))

	_, err := svc.LogMeal(context.Background(), 1, "2 eggs", "HANGRY", "HOME")
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Zero(t, fake.calls, "validation runs before the lookup")

	_, err = svc.LogMeal(context.Background(), 1, "2 eggs", "STRESS", "SPACE")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateLogAutoFillsMacros(t *testing.T) {
	db := newTestDB(t)
	fake := newNutritionFake(t, http.StatusOK, twoItemNutritionBody)
	svc := NewMealService(db, fake.service(db))

	log, err := svc.CreateLog(context.Background(), 3, CreateFoodLogInput{
		FoodName:       "eggs and toast",
		EmotionalState: "NEUTRAL",
		EatingContext:  "HOME",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, fake.calls)
	assert.InDelta(t, 215, log.Calories, 0.001)
	assert.InDelta(t, 15.4, log.Protein, 0.001)
	assert.Nil(t, log.MealGroupID, "direct creation carries no group id")
}

func TestCreateLogExplicitCaloriesSkipsLookup(t *testing.T) {
	db := newTestDB(t)
	fake := newNutritionFake(t, http.StatusOK, twoItemNutritionBody)
	svc := NewMealService(db, fake.service(db))

	calories := 320.0
	log, err := svc.CreateLog(context.Background(), 3, CreateFoodLogInput{
		FoodName:       "protein bar",
		Calories:       &calories,
		EmotionalState: "BOREDOM",
		EatingContext:  "WORK",
	})
	require.NoError(t, err)

	assert.Zero(t, fake.calls)
	assert.Equal(t, 320.0, log.Calories)
	assert.Zero(t, log.Protein, "unspecified macros default to zero")
	assert.Zero(t, log.Sodium)
}

func TestLogsForDayBoundsAreInclusive(t *testing.T) {
	db := newTestDB(t)
	svc := NewMealService(db, nil)

	day := time.Date(2024, 11, 23, 12, 0, 0, 0, time.Local)
	rows := []models.FoodLog{
		{UserID: 5, FoodName: "before", EmotionalState: models.EmotionNeutral, EatingContext: models.ContextHome,
			LoggedAt: time.Date(2024, 11, 22, 23, 59, 59, int(time.Second-time.Nanosecond), time.Local)},
		{UserID: 5, FoodName: "start", EmotionalState: models.EmotionNeutral, EatingContext: models.ContextHome,
			LoggedAt: time.Date(2024, 11, 23, 0, 0, 0, 0, time.Local)},
		{UserID: 5, FoodName: "end", EmotionalState: models.EmotionNeutral, EatingContext: models.ContextHome,
			LoggedAt: time.Date(2024, 11, 23, 23, 59, 59, int(time.Second-time.Nanosecond), time.Local)},
		{UserID: 5, FoodName: "after", EmotionalState: models.EmotionNeutral, EatingContext: models.ContextHome,
			LoggedAt: time.Date(2024, 11, 24, 0, 0, 0, 0, time.Local)},
	}
	for i := range rows {
		require.NoError(t, db.Create(&rows[i]).Error)
	}

	logs, err := svc.LogsForDay(context.Background(), 5, day)
	require.NoError(t, err)
	require.Len(t, logs, 2)

	names := []string{logs[0].FoodName, logs[1].FoodName}
	assert.ElementsMatch(t, []string{"start", "end"}, names)
}
