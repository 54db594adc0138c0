package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/leagermaxl/nutri-smart/config"
	"github.com/leagermaxl/nutri-smart/models"
)

func TestRecommendedCalories(t *testing.T) {
	db := newTestDB(t)
	llm := newLLMFake(t, http.StatusOK, `{"recommended_calories": 2150.6, "explanation": "Mifflin-St Jeor"}`)
	svc := NewRecommendationService(db, llm.service(), zap.NewNop())

	user := seedAnalysisUser(t, db)
	got := svc.RecommendedCalories(context.Background(), user)
	assert.Equal(t, 2151, got, "the numeric result is rounded")

	assert.Contains(t, llm.lastPrompt, "Mifflin-St Jeor")
	assert.Contains(t, llm.lastPrompt, "Primary Goal: WEIGHT_LOSS")
}

func TestRecommendedCaloriesFallsBackOnFailure(t *testing.T) {
	db := newTestDB(t)
	user := seedAnalysisUser(t, db)

	// upstream error
	llm := newLLMFake(t, http.StatusInternalServerError, "")
	svc := NewRecommendationService(db, llm.service(), zap.NewNop())
	assert.Equal(t, 2000, svc.RecommendedCalories(context.Background(), user))

	// missing key
	svc = NewRecommendationService(db, NewLLMService(config.LLMConfig{}), zap.NewNop())
	assert.Equal(t, 2000, svc.RecommendedCalories(context.Background(), user))

	// non-JSON answer
	llm = newLLMFake(t, http.StatusOK, "twenty-two hundred")
	svc = NewRecommendationService(db, llm.service(), zap.NewNop())
	assert.Equal(t, 2000, svc.RecommendedCalories(context.Background(), user))
}

func TestFoodSuggestions(t *testing.T) {
	db := newTestDB(t)
	llm := newLLMFake(t, http.StatusOK, `{
		"suggestions": [
			{"food": "Greek yogurt", "portion": "1 cup", "calories": 150, "reason": "Protein boost"}
		],
		"summary": "Light options for the evening."
	}`)
	svc := NewRecommendationService(db, llm.service(), zap.NewNop())

	user := seedAnalysisUser(t, db)
	now := time.Now()
	require.NoError(t, db.Create(&models.FoodLog{
		UserID: user.ID, FoodName: "sandwich", Calories: 450, Protein: 20, CarbohydratesTotal: 40, FatTotal: 18,
		EmotionalState: models.EmotionNeutral, EatingContext: models.ContextWork, LoggedAt: now,
	}).Error)

	result, err := svc.FoodSuggestions(context.Background(), user, 2200)
	require.NoError(t, err)

	require.Len(t, result.Suggestions, 1)
	assert.Equal(t, "Greek yogurt", result.Suggestions[0].Food)
	assert.Equal(t, "Light options for the evening.", result.Summary)
	assert.Equal(t, 450, result.ConsumedCalories)
	assert.Equal(t, 1750, result.RemainingCalories)
	assert.Equal(t, 2200, result.RecommendedCalories)

	assert.Contains(t, llm.lastPrompt, "1. sandwich - 450 kcal")
	assert.Contains(t, llm.lastPrompt, "Remaining Calories: 1750 kcal")
}

func TestFoodSuggestionsFailSoft(t *testing.T) {
	db := newTestDB(t)
	llm := newLLMFake(t, http.StatusInternalServerError, "")
	svc := NewRecommendationService(db, llm.service(), zap.NewNop())

	user := seedAnalysisUser(t, db)
	result, err := svc.FoodSuggestions(context.Background(), user, 2000)
	require.NoError(t, err, "suggestion failures never propagate")

	assert.Empty(t, result.Suggestions)
	assert.Equal(t, "Unable to generate suggestions at this time.", result.Summary)
	assert.Equal(t, 0, result.ConsumedCalories)
	assert.Equal(t, 2000, result.RemainingCalories)
}

func TestFoodSuggestionsEmptyDayPrompt(t *testing.T) {
	db := newTestDB(t)
	llm := newLLMFake(t, http.StatusOK, `{"suggestions": [], "summary": "Start with breakfast."}`)
	svc := NewRecommendationService(db, llm.service(), zap.NewNop())

	user := seedAnalysisUser(t, db)
	result, err := svc.FoodSuggestions(context.Background(), user, 2000)
	require.NoError(t, err)

	assert.NotNil(t, result.Suggestions)
	assert.Contains(t, llm.lastPrompt, "No meals logged yet today")
}
