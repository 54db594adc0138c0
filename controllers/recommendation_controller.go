package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/leagermaxl/nutri-smart/services"
)

type RecommendationController struct {
	Svc   *services.RecommendationService
	Users *services.UserService
}

func NewRecommendationController(svc *services.RecommendationService, users *services.UserService) *RecommendationController {
	return &RecommendationController{Svc: svc, Users: users}
}

// GET /recommendations/food-suggestions
func (h *RecommendationController) GetFoodSuggestions(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	user, err := h.Users.GetMe(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	recommended := user.RecommendedCalories
	if recommended <= 0 {
		recommended = 2000
	}

	result, err := h.Svc.FoodSuggestions(c.Request.Context(), user, recommended)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
