package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/leagermaxl/nutri-smart/config"
	"github.com/leagermaxl/nutri-smart/controllers"
	"github.com/leagermaxl/nutri-smart/middlewares"
	"github.com/leagermaxl/nutri-smart/services"
)

func SetupRouter(cfg *config.Config, db *gorm.DB, log *zap.Logger) *gin.Engine {
	nutritionSvc := services.NewNutritionService(db, cfg.Nutrition, log)
	llmSvc := services.NewLLMService(cfg.LLM)
	mealSvc := services.NewMealService(db, nutritionSvc)
	analysisSvc := services.NewAnalysisService(db, llmSvc, log)
	recSvc := services.NewRecommendationService(db, llmSvc, log)
	authSvc := services.NewAuthService(db, recSvc, cfg.JWTSecret)
	userSvc := services.NewUserService(db, recSvc)

	authCtrl := controllers.NewAuthController(authSvc, cfg.Env == "production")
	userCtrl := controllers.NewUserController(userSvc)
	foodLogCtrl := controllers.NewFoodLogController(mealSvc)
	nutritionCtrl := controllers.NewNutritionController(nutritionSvc, mealSvc)
	analysisCtrl := controllers.NewAnalysisController(analysisSvc)
	recCtrl := controllers.NewRecommendationController(recSvc, userSvc)

	r := gin.Default()

	auth := r.Group("/auth")
	{
		auth.POST("/register", authCtrl.Register)
		auth.POST("/login", authCtrl.Login)
	}

	protected := r.Group("/")
	protected.Use(middlewares.AuthMiddleware([]byte(cfg.JWTSecret)))
	{
		protected.GET("/user/me", userCtrl.GetMe)
		protected.PATCH("/user/me", userCtrl.UpdateMe)

		protected.POST("/food-logs", foodLogCtrl.CreateLog)
		protected.GET("/food-logs", foodLogCtrl.GetLogsByDate)
		protected.GET("/food-logs/today", foodLogCtrl.GetToday)

		protected.GET("/nutrition/analyze", nutritionCtrl.Analyze)
		protected.POST("/nutrition/log-meal", nutritionCtrl.LogMeal)

		protected.POST("/analysis/generate", analysisCtrl.Generate)
		protected.GET("/analysis/history", analysisCtrl.History)

		protected.GET("/recommendations/food-suggestions", recCtrl.GetFoodSuggestions)
	}

	return r
}
