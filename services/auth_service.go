package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/leagermaxl/nutri-smart/models"
	"github.com/leagermaxl/nutri-smart/utils"
)

type AuthService struct {
	db        *gorm.DB
	rec       *RecommendationService
	jwtSecret []byte
}

func NewAuthService(db *gorm.DB, rec *RecommendationService, jwtSecret string) *AuthService {
	return &AuthService{db: db, rec: rec, jwtSecret: []byte(jwtSecret)}
}

type RegisterInput struct {
	Email               string   `json:"email" binding:"required,email"`
	Password            string   `json:"password" binding:"required"`
	FirstName           string   `json:"firstName"`
	LastName            string   `json:"lastName"`
	Age                 *int     `json:"age"`
	Weight              *float64 `json:"weight"`
	Height              *float64 `json:"height"`
	Gender              *string  `json:"gender"`
	ActivityLevel       *string  `json:"activityLevel"`
	PrimaryGoal         *string  `json:"primaryGoal"`
	DietaryRestrictions *string  `json:"dietaryRestrictions"`
}

// Register creates the user, computes the initial recommended-calorie target
// (fail-soft) and returns a signed token. A duplicate email surfaces as
// ErrEmailTaken.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (string, error) {
	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Email:               input.Email,
		PasswordHash:        hash,
		FirstName:           input.FirstName,
		LastName:            input.LastName,
		Age:                 input.Age,
		Weight:              input.Weight,
		Height:              input.Height,
		Gender:              input.Gender,
		ActivityLevel:       input.ActivityLevel,
		PrimaryGoal:         input.PrimaryGoal,
		DietaryRestrictions: input.DietaryRestrictions,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", ErrEmailTaken
		}
		return "", err
	}

	user.RecommendedCalories = s.rec.RecommendedCalories(ctx, &user)
	if err := s.db.WithContext(ctx).Save(&user).Error; err != nil {
		return "", err
	}

	return utils.GenerateJWT(s.jwtSecret, user.ID, user.Email)
}

// Login verifies credentials and returns a signed token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return "", ErrInvalidCredentials
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}
	return utils.GenerateJWT(s.jwtSecret, user.ID, user.Email)
}
