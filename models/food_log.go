package models

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

type EmotionalState string

const (
	EmotionStress    EmotionalState = "STRESS"
	EmotionBoredom   EmotionalState = "BOREDOM"
	EmotionHappiness EmotionalState = "HAPPINESS"
	EmotionSadness   EmotionalState = "SADNESS"
	EmotionNeutral   EmotionalState = "NEUTRAL"
)

type EatingContext string

const (
	ContextHome       EatingContext = "HOME"
	ContextWork       EatingContext = "WORK"
	ContextSocial     EatingContext = "SOCIAL"
	ContextRestaurant EatingContext = "RESTAURANT"
)

// ParseEmotionalState validates a client-supplied value against the fixed
// set. Empty input defaults to NEUTRAL.
func ParseEmotionalState(s string) (EmotionalState, error) {
	if s == "" {
		return EmotionNeutral, nil
	}
	switch es := EmotionalState(strings.ToUpper(strings.TrimSpace(s))); es {
	case EmotionStress, EmotionBoredom, EmotionHappiness, EmotionSadness, EmotionNeutral:
		return es, nil
	default:
		return "", fmt.Errorf("unknown emotional state %q", s)
	}
}

// ParseEatingContext validates a client-supplied value against the fixed
// set. Empty input defaults to HOME.
func ParseEatingContext(s string) (EatingContext, error) {
	if s == "" {
		return ContextHome, nil
	}
	switch ec := EatingContext(strings.ToUpper(strings.TrimSpace(s))); ec {
	case ContextHome, ContextWork, ContextSocial, ContextRestaurant:
		return ec, nil
	default:
		return "", fmt.Errorf("unknown eating context %q", s)
	}
}

// FoodLog is one logged food item. Items resolved from a single
// natural-language query share a MealGroupID; rows are immutable after
// creation.
type FoodLog struct {
	gorm.Model
	UserID             uint           `gorm:"index;not null" json:"userId"`
	FoodName           string         `gorm:"not null" json:"foodName"`
	Calories           float64        `json:"calories"`
	ServingSize        float64        `json:"servingSize"` // g
	Protein            float64        `json:"protein"`     // g
	FatTotal           float64        `json:"fatTotal"`
	FatSaturated       float64        `json:"fatSaturated"`
	CarbohydratesTotal float64        `json:"carbohydratesTotal"`
	Fiber              float64        `json:"fiber"`
	Sugar              float64        `json:"sugar"`
	Sodium             float64        `json:"sodium"`    // mg
	Potassium          float64        `json:"potassium"` // mg
	Cholesterol        float64        `json:"cholesterol"`
	EmotionalState     EmotionalState `gorm:"size:16;not null" json:"emotionalState"`
	EatingContext      EatingContext  `gorm:"size:16;not null" json:"eatingContext"`
	MealGroupID        *string        `gorm:"type:varchar(36);index" json:"mealGroupId"`
	LoggedAt           time.Time      `gorm:"index;not null" json:"loggedAt"`
}
