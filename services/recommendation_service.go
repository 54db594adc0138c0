package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/leagermaxl/nutri-smart/models"
	"github.com/leagermaxl/nutri-smart/utils"
)

const nutritionistSystemPrompt = "You are a professional nutritionist. Provide accurate, evidence-based calorie recommendations."

const suggestionsSystemPrompt = "You are a professional nutritionist. Provide practical, personalized food recommendations."

// defaultRecommendedCalories is returned whenever the model cannot be asked
// or does not answer usably.
const defaultRecommendedCalories = 2000

type RecommendationService struct {
	db  *gorm.DB
	llm *LLMService
	log *zap.Logger
}

func NewRecommendationService(db *gorm.DB, llm *LLMService, log *zap.Logger) *RecommendationService {
	return &RecommendationService{db: db, llm: llm, log: log}
}

// RecommendedCalories asks the model for a daily calorie target based on the
// user's profile. Never returns an error: any failure falls back to 2000.
func (s *RecommendationService) RecommendedCalories(ctx context.Context, user *models.User) int {
	var sb strings.Builder
	sb.WriteString("Act as a professional nutritionist. Calculate the recommended daily calorie intake for a user with the following profile:\n\n")
	sb.WriteString(fmt.Sprintf("- Age: %s\n", intOrNotSpecified(user.Age)))
	sb.WriteString(fmt.Sprintf("- Weight: %s kg\n", floatOrNotSpecified(user.Weight)))
	sb.WriteString(fmt.Sprintf("- Height: %s cm\n", floatOrNotSpecified(user.Height)))
	sb.WriteString(fmt.Sprintf("- Gender: %s\n", orNotSpecified(user.Gender)))
	sb.WriteString(fmt.Sprintf("- Activity Level: %s\n", orNotSpecified(user.ActivityLevel)))
	sb.WriteString(fmt.Sprintf("- Primary Goal: %s\n", orNotSpecified(user.PrimaryGoal)))
	sb.WriteString(fmt.Sprintf("- Dietary Restrictions: %s\n\n", orNone(user.DietaryRestrictions)))
	sb.WriteString(`Based on this information, calculate the recommended daily calorie intake using established nutritional formulas (e.g., Mifflin-St Jeor equation adjusted for activity level and goals).

Return ONLY valid JSON with this exact structure:
{
  "recommended_calories": 2000,
  "explanation": "Brief explanation of the calculation"
}`)

	content, err := s.llm.CompleteJSON(ctx, nutritionistSystemPrompt, sb.String(), 0.3)
	if err != nil {
		s.log.Warn("calorie recommendation failed, using default", zap.Error(err))
		return defaultRecommendedCalories
	}

	var result struct {
		RecommendedCalories float64 `json:"recommended_calories"`
		Explanation         string  `json:"explanation"`
	}
	if err := json.Unmarshal([]byte(content), &result); err != nil || result.RecommendedCalories <= 0 {
		s.log.Warn("unusable calorie recommendation, using default",
			zap.Error(err), zap.String("content", content))
		return defaultRecommendedCalories
	}
	return int(math.Round(result.RecommendedCalories))
}

type FoodSuggestion struct {
	Food     string  `json:"food"`
	Portion  string  `json:"portion"`
	Calories float64 `json:"calories"`
	Reason   string  `json:"reason"`
}

type FoodSuggestionsResult struct {
	Suggestions         []FoodSuggestion `json:"suggestions"`
	Summary             string           `json:"summary"`
	ConsumedCalories    int              `json:"consumedCalories"`
	RemainingCalories   int              `json:"remainingCalories"`
	RecommendedCalories int              `json:"recommendedCalories"`
}

// FoodSuggestions proposes foods that fit the user's remaining calorie
// budget for today. Fail-soft: on any model failure the result carries an
// empty list and a static summary, with the intake numbers still filled in.
func (s *RecommendationService) FoodSuggestions(ctx context.Context, user *models.User, recommendedCalories int) (*FoodSuggestionsResult, error) {
	var logs []models.FoodLog
	start, end := utils.DayBounds(time.Now())
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND logged_at >= ? AND logged_at <= ?", user.ID, start, end).
		Order("logged_at DESC").
		Find(&logs).Error; err != nil {
		return nil, err
	}

	var totalCalories, totalProtein, totalCarbs, totalFats float64
	for _, l := range logs {
		totalCalories += l.Calories
		totalProtein += l.Protein
		totalCarbs += l.CarbohydratesTotal
		totalFats += l.FatTotal
	}
	remaining := float64(recommendedCalories) - totalCalories

	out := &FoodSuggestionsResult{
		ConsumedCalories:    int(math.Round(totalCalories)),
		RemainingCalories:   int(math.Round(remaining)),
		RecommendedCalories: recommendedCalories,
	}

	var eaten strings.Builder
	if len(logs) == 0 {
		eaten.WriteString("No meals logged yet today")
	} else {
		for i, l := range logs {
			if i > 0 {
				eaten.WriteString("\n")
			}
			eaten.WriteString(fmt.Sprintf("%d. %s - %.0f kcal (P: %.0fg, C: %.0fg, F: %.0fg)",
				i+1, l.FoodName, l.Calories, l.Protein, l.CarbohydratesTotal, l.FatTotal))
		}
	}

	var sb strings.Builder
	sb.WriteString("Act as a nutritionist. Provide personalized food suggestions for a user.\n\n")
	sb.WriteString("User Profile:\n")
	sb.WriteString(fmt.Sprintf("- Goal: %s\n", orNotSpecified(user.PrimaryGoal)))
	sb.WriteString(fmt.Sprintf("- Activity Level: %s\n", orNotSpecified(user.ActivityLevel)))
	sb.WriteString(fmt.Sprintf("- Dietary Restrictions: %s\n\n", orNone(user.DietaryRestrictions)))
	sb.WriteString("Daily Target:\n")
	sb.WriteString(fmt.Sprintf("- Recommended Calories: %d kcal\n\n", recommendedCalories))
	sb.WriteString("Current Intake (today):\n")
	sb.WriteString(fmt.Sprintf("- Consumed Calories: %.0f kcal\n", totalCalories))
	sb.WriteString(fmt.Sprintf("- Remaining Calories: %.0f kcal\n", remaining))
	sb.WriteString(fmt.Sprintf("- Protein: %.0fg\n", totalProtein))
	sb.WriteString(fmt.Sprintf("- Carbs: %.0fg\n", totalCarbs))
	sb.WriteString(fmt.Sprintf("- Fats: %.0fg\n\n", totalFats))
	sb.WriteString("Foods Already Eaten Today:\n")
	sb.WriteString(eaten.String())
	sb.WriteString(fmt.Sprintf(`

Provide 3-5 specific food suggestions that:
1. Fit within remaining calorie budget (%.0f kcal remaining)
2. Respect dietary restrictions
3. Help achieve nutritional balance based on what they've already eaten
4. Support the user's primary goal
5. Avoid repeating foods they've already consumed today (unless beneficial for their goal)

Return ONLY valid JSON with this exact structure:
{
  "suggestions": [
    {
      "food": "Food name",
      "portion": "Portion size",
      "calories": 250,
      "reason": "Why this food is recommended"
    }
  ],
  "summary": "Brief summary of recommendations"
}`, remaining))

	content, err := s.llm.CompleteJSON(ctx, suggestionsSystemPrompt, sb.String(), 0.7)
	if err != nil {
		s.log.Warn("food suggestions failed, returning empty list", zap.Error(err))
		out.Summary = "Unable to generate suggestions at this time."
		out.Suggestions = []FoodSuggestion{}
		return out, nil
	}

	var result struct {
		Suggestions []FoodSuggestion `json:"suggestions"`
		Summary     string           `json:"summary"`
	}
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		s.log.Warn("unparseable food suggestions, returning empty list", zap.Error(err))
		out.Summary = "Unable to generate suggestions at this time."
		out.Suggestions = []FoodSuggestion{}
		return out, nil
	}

	out.Suggestions = result.Suggestions
	if out.Suggestions == nil {
		out.Suggestions = []FoodSuggestion{}
	}
	out.Summary = result.Summary
	return out, nil
}

func floatOrNotSpecified(f *float64) string {
	if f == nil {
		return "Not specified"
	}
	return fmt.Sprintf("%g", *f)
}

func orNone(s *string) string {
	if s == nil || *s == "" {
		return "None"
	}
	return *s
}
