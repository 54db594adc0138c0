package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email               string   `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash        string   `gorm:"not null" json:"-"`
	FirstName           string   `json:"firstName"`
	LastName            string   `json:"lastName"`
	Age                 *int     `json:"age"`
	Weight              *float64 `json:"weight"` // kg
	Height              *float64 `json:"height"` // cm
	Gender              *string  `gorm:"size:16" json:"gender"`
	ActivityLevel       *string  `gorm:"size:32" json:"activityLevel"`
	PrimaryGoal         *string  `json:"primaryGoal"`
	DietaryRestrictions *string  `json:"dietaryRestrictions"`
	RecommendedCalories int      `json:"recommendedCalories"`
}
