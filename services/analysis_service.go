package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/leagermaxl/nutri-smart/models"
	"github.com/leagermaxl/nutri-smart/utils"
)

const analysisSystemPrompt = "You are a professional nutritional psychologist. Provide insightful, evidence-based behavioral analysis."

type AnalysisService struct {
	db  *gorm.DB
	llm *LLMService
	log *zap.Logger
}

func NewAnalysisService(db *gorm.DB, llm *LLMService, log *zap.Logger) *AnalysisService {
	return &AnalysisService{db: db, llm: llm, log: log}
}

// analysisResult is the JSON shape the model is instructed to return.
type analysisResult struct {
	Summary          string   `json:"summary"`
	EmotionalPattern *string  `json:"emotional_pattern"`
	RiskLevel        string   `json:"risk_level"`
	Recommendations  []string `json:"recommendations"`
}

// GenerateDailyAnalysis builds a behavioral report for one calendar day.
// Fails hard: an empty day, a missing API key or a bad model response all
// surface as typed errors and no AIAnalysis row is written.
func (s *AnalysisService) GenerateDailyAnalysis(ctx context.Context, userID uint, date time.Time) (*models.AIAnalysis, error) {
	start, end := utils.DayBounds(date)

	var logs []models.FoodLog
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND logged_at >= ? AND logged_at <= ?", userID, start, end).
		Order("logged_at ASC").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	if len(logs) == 0 {
		return nil, fmt.Errorf("no food logs found for %s: %w", date.Format("2006-01-02"), ErrNoData)
	}

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		return nil, err
	}

	prompt := buildAnalysisPrompt(&user, logs)

	content, err := s.llm.CompleteJSON(ctx, analysisSystemPrompt, prompt, 0.7)
	if err != nil {
		return nil, err
	}

	var result analysisResult
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return nil, fmt.Errorf("failed to parse analysis JSON: %w: %v", ErrUpstream, err)
	}

	triggerPatterns, err := json.Marshal(map[string]*string{"emotional_pattern": result.EmotionalPattern})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal trigger patterns: %w", err)
	}
	recommendations, err := json.Marshal(result.Recommendations)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal recommendations: %w", err)
	}

	analysis := models.AIAnalysis{
		UserID:          userID,
		StartDate:       start,
		EndDate:         end,
		Summary:         result.Summary,
		TriggerPatterns: triggerPatterns,
		Recommendations: recommendations,
		RiskLevel:       s.normalizeRiskLevel(result.RiskLevel),
		GeneratedAt:     time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(&analysis).Error; err != nil {
		return nil, err
	}
	return &analysis, nil
}

// History returns the user's most recent 10 analyses, newest first.
func (s *AnalysisService) History(ctx context.Context, userID uint) ([]models.AIAnalysis, error) {
	var analyses []models.AIAnalysis
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("generated_at DESC").
		Limit(10).
		Find(&analyses).Error
	return analyses, err
}

// normalizeRiskLevel coerces the model's free-text risk level into the fixed
// set. Unrecognized values are stored as MEDIUM rather than rejected.
func (s *AnalysisService) normalizeRiskLevel(raw string) models.RiskLevel {
	switch rl := models.RiskLevel(strings.ToUpper(strings.TrimSpace(raw))); rl {
	case models.RiskLow, models.RiskMedium, models.RiskHigh:
		return rl
	default:
		s.log.Warn("unrecognized risk level from model", zap.String("risk_level", raw))
		return models.RiskMedium
	}
}

func buildAnalysisPrompt(user *models.User, logs []models.FoodLog) string {
	var totalCalories, totalProtein, totalCarbs, totalFats float64
	for _, l := range logs {
		totalCalories += l.Calories
		totalProtein += l.Protein
		totalCarbs += l.CarbohydratesTotal
		totalFats += l.FatTotal
	}

	var sb strings.Builder
	sb.WriteString("Act as a nutritional psychologist. Analyze the following user's eating behavior for the day.\n\n")
	sb.WriteString("User Profile:\n")
	sb.WriteString(fmt.Sprintf("- Goal: %s\n", orNotSpecified(user.PrimaryGoal)))
	sb.WriteString(fmt.Sprintf("- Age: %s\n", intOrNotSpecified(user.Age)))
	sb.WriteString(fmt.Sprintf("- Gender: %s\n", orNotSpecified(user.Gender)))
	sb.WriteString(fmt.Sprintf("- Activity Level: %s\n\n", orNotSpecified(user.ActivityLevel)))

	sb.WriteString("Daily Summary:\n")
	sb.WriteString(fmt.Sprintf("- Total Calories: %.0f kcal\n", totalCalories))
	sb.WriteString(fmt.Sprintf("- Total Protein: %.0fg\n", totalProtein))
	sb.WriteString(fmt.Sprintf("- Total Carbs: %.0fg\n", totalCarbs))
	sb.WriteString(fmt.Sprintf("- Total Fats: %.0fg\n", totalFats))
	sb.WriteString(fmt.Sprintf("- Number of meals/snacks: %d\n\n", len(logs)))

	sb.WriteString("Detailed Logs (with behavioral context):\n")
	for i, l := range logs {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, l.FoodName))
		sb.WriteString(fmt.Sprintf("   - Calories: %.0f kcal\n", l.Calories))
		sb.WriteString(fmt.Sprintf("   - Emotional State: %s\n", l.EmotionalState))
		sb.WriteString(fmt.Sprintf("   - Eating Context: %s\n", l.EatingContext))
		sb.WriteString(fmt.Sprintf("   - Time: %s\n", l.LoggedAt.Local().Format("3:04:05 PM")))
	}

	sb.WriteString(`
Analyze for:
1. Caloric adherence to goals
2. Emotional eating patterns (e.g., eating unhealthy foods when STRESSED or BORED)
3. Timing/Context issues (e.g., late-night eating, eating at WORK)
4. Macronutrient balance

Return ONLY valid JSON with this exact structure:
{
  "summary": "A 2-3 sentence summary of the day's eating patterns",
  "emotional_pattern": "Description of detected emotional eating pattern or null if none detected",
  "risk_level": "LOW or MEDIUM or HIGH",
  "recommendations": ["Specific actionable tip 1", "Specific actionable tip 2", "Specific actionable tip 3"]
}`)
	return sb.String()
}

func orNotSpecified(s *string) string {
	if s == nil || *s == "" {
		return "Not specified"
	}
	return *s
}

func intOrNotSpecified(n *int) string {
	if n == nil {
		return "Not specified"
	}
	return fmt.Sprintf("%d", *n)
}
