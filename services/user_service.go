package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/leagermaxl/nutri-smart/models"
)

type UserService struct {
	db  *gorm.DB
	rec *RecommendationService
}

func NewUserService(db *gorm.DB, rec *RecommendationService) *UserService {
	return &UserService{db: db, rec: rec}
}

// EditUserInput carries a partial profile update. Nil fields are left
// untouched.
type EditUserInput struct {
	FirstName           *string  `json:"firstName"`
	LastName            *string  `json:"lastName"`
	Age                 *int     `json:"age"`
	Weight              *float64 `json:"weight"`
	Height              *float64 `json:"height"`
	Gender              *string  `json:"gender"`
	ActivityLevel       *string  `json:"activityLevel"`
	PrimaryGoal         *string  `json:"primaryGoal"`
	DietaryRestrictions *string  `json:"dietaryRestrictions"`
}

// touchesCalorieFields reports whether the update changes any field the
// recommended-calorie target depends on.
func (in EditUserInput) touchesCalorieFields() bool {
	return in.Age != nil || in.Weight != nil || in.Height != nil ||
		in.Gender != nil || in.ActivityLevel != nil ||
		in.PrimaryGoal != nil || in.DietaryRestrictions != nil
}

func (s *UserService) GetMe(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// EditUser applies a partial update and, when a calorie-relevant field
// changed, synchronously recomputes the recommended-calorie target.
func (s *UserService) EditUser(ctx context.Context, userID uint, input EditUserInput) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Age != nil {
		user.Age = input.Age
	}
	if input.Weight != nil {
		user.Weight = input.Weight
	}
	if input.Height != nil {
		user.Height = input.Height
	}
	if input.Gender != nil {
		user.Gender = input.Gender
	}
	if input.ActivityLevel != nil {
		user.ActivityLevel = input.ActivityLevel
	}
	if input.PrimaryGoal != nil {
		user.PrimaryGoal = input.PrimaryGoal
	}
	if input.DietaryRestrictions != nil {
		user.DietaryRestrictions = input.DietaryRestrictions
	}

	if input.touchesCalorieFields() {
		user.RecommendedCalories = s.rec.RecommendedCalories(ctx, &user)
	}

	if err := s.db.WithContext(ctx).Save(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
