package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/leagermaxl/nutri-smart/models"
)

type Config struct {
	Port      string
	Env       string // "production" enables the Secure cookie flag
	JWTSecret string

	DB        DBConfig
	Nutrition NutritionConfig
	LLM       LLMConfig
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type NutritionConfig struct {
	APIKey  string
	BaseURL string
}

type LLMConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

func Load(log *zap.Logger) *Config {
	if err := godotenv.Load(); err != nil {
		log.Warn("no .env file found, using system env")
	}

	cfg := &Config{
		Port:      getEnv("PORT", "8080"),
		Env:       os.Getenv("APP_ENV"),
		JWTSecret: os.Getenv("JWT_SECRET"),
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
		},
		Nutrition: NutritionConfig{
			APIKey:  os.Getenv("CALORIE_NINJAS_API_KEY"),
			BaseURL: getEnv("CALORIE_NINJAS_API_URL", "https://api.calorieninjas.com/v1/nutrition"),
		},
		LLM: LLMConfig{
			APIKey:  os.Getenv("OPENAI_API_KEY"),
			BaseURL: getEnv("OPENAI_BASE_URL", "https://openrouter.ai/api/v1"),
			Model:   getEnv("OPENAI_MODEL", "x-ai/grok-4.1-fast"),
		},
	}

	if cfg.JWTSecret == "" {
		log.Warn("JWT_SECRET is not set")
	}
	if cfg.Nutrition.APIKey == "" {
		log.Warn("CALORIE_NINJAS_API_KEY is not set")
	}
	if cfg.LLM.APIKey == "" {
		log.Warn("OPENAI_API_KEY is not set")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func InitDB(cfg *Config, log *zap.Logger) *gorm.DB {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DB.Host, cfg.DB.User, cfg.DB.Password, cfg.DB.Name, cfg.DB.Port)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.FoodLog{},
		&models.NutritionAPIResponse{},
		&models.AIAnalysis{},
	); err != nil {
		log.Fatal("automigrate failed", zap.Error(err))
	}

	return db
}
