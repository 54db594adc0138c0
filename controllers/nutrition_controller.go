package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/leagermaxl/nutri-smart/services"
)

type NutritionController struct {
	Nutrition *services.NutritionService
	Meals     *services.MealService
}

func NewNutritionController(nutrition *services.NutritionService, meals *services.MealService) *NutritionController {
	return &NutritionController{Nutrition: nutrition, Meals: meals}
}

// GET /nutrition/analyze?query=2 eggs and toast
func (h *NutritionController) Analyze(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}

	data, err := h.Nutrition.FetchNutrition(c.Request.Context(), query, &userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}

type LogMealInput struct {
	Query          string `json:"query" binding:"required"`
	EmotionalState string `json:"emotionalState"`
	EatingContext  string `json:"eatingContext"`
}

// POST /nutrition/log-meal
func (h *NutritionController) LogMeal(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var input LogMealInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.Meals.LogMeal(c.Request.Context(), userID, input.Query, input.EmotionalState, input.EatingContext)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}
