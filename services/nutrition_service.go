package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/leagermaxl/nutri-smart/config"
	"github.com/leagermaxl/nutri-smart/models"
)

// NutritionData is the aggregate of every item the nutrition API returned
// for one query: all macro fields summed, Name the comma-joined item names.
type NutritionData struct {
	Name               string  `json:"name"`
	Calories           float64 `json:"calories"`
	ServingSize        float64 `json:"servingSize"`
	Protein            float64 `json:"protein"`
	FatTotal           float64 `json:"fatTotal"`
	FatSaturated       float64 `json:"fatSaturated"`
	CarbohydratesTotal float64 `json:"carbohydratesTotal"`
	Fiber              float64 `json:"fiber"`
	Sugar              float64 `json:"sugar"`
	Sodium             float64 `json:"sodium"`
	Potassium          float64 `json:"potassium"`
	Cholesterol        float64 `json:"cholesterol"`
}

// nutritionItem mirrors one item of the CalorieNinjas response. Macros are
// grams, sodium/potassium/cholesterol milligrams.
type nutritionItem struct {
	Name                string  `json:"name"`
	Calories            float64 `json:"calories"`
	ServingSizeG        float64 `json:"serving_size_g"`
	ProteinG            float64 `json:"protein_g"`
	FatTotalG           float64 `json:"fat_total_g"`
	FatSaturatedG       float64 `json:"fat_saturated_g"`
	CarbohydratesTotalG float64 `json:"carbohydrates_total_g"`
	FiberG              float64 `json:"fiber_g"`
	SugarG              float64 `json:"sugar_g"`
	SodiumMg            float64 `json:"sodium_mg"`
	PotassiumMg         float64 `json:"potassium_mg"`
	CholesterolMg       float64 `json:"cholesterol_mg"`
}

type nutritionResponse struct {
	Items []nutritionItem `json:"items"`
}

type NutritionService struct {
	db      *gorm.DB
	apiKey  string
	baseURL string
	client  *http.Client
	log     *zap.Logger
}

func NewNutritionService(db *gorm.DB, cfg config.NutritionConfig, log *zap.Logger) *NutritionService {
	return &NutritionService{
		db:      db,
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		log:     log,
	}
}

// fetchItems calls the nutrition API for a free-text query. A raw-response
// audit row is written only when the API recognized at least one item.
func (s *NutritionService) fetchItems(ctx context.Context, query string, userID *uint) ([]nutritionItem, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("nutrition API key is not set: %w", ErrNotConfigured)
	}

	u := fmt.Sprintf("%s?query=%s", s.baseURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create nutrition request: %w", err)
	}
	req.Header.Set("X-Api-Key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call nutrition API: %w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read nutrition response: %w: %v", ErrUpstream, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nutrition API error %d: %s: %w", resp.StatusCode, string(body), ErrUpstream)
	}

	var nr nutritionResponse
	if err := json.Unmarshal(body, &nr); err != nil {
		return nil, fmt.Errorf("failed to parse nutrition JSON: %w: %v", ErrUpstream, err)
	}

	if len(nr.Items) == 0 {
		return nil, fmt.Errorf("no nutrition data found for %q: %w", query, ErrNoData)
	}

	audit := models.NutritionAPIResponse{
		UserID:      userID,
		Query:       query,
		RawResponse: body,
		ItemCount:   len(nr.Items),
	}
	if err := s.db.WithContext(ctx).Create(&audit).Error; err != nil {
		return nil, fmt.Errorf("failed to store nutrition API response: %w", err)
	}
	return nr.Items, nil
}

// FetchNutrition resolves a free-text food query into one aggregated
// NutritionData. The only side effect is the audit row written inside the
// lookup.
func (s *NutritionService) FetchNutrition(ctx context.Context, query string, userID *uint) (*NutritionData, error) {
	items, err := s.fetchItems(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	return aggregateItems(items), nil
}

func aggregateItems(items []nutritionItem) *NutritionData {
	agg := &NutritionData{}
	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, it.Name)
		agg.Calories += it.Calories
		agg.ServingSize += it.ServingSizeG
		agg.Protein += it.ProteinG
		agg.FatTotal += it.FatTotalG
		agg.FatSaturated += it.FatSaturatedG
		agg.CarbohydratesTotal += it.CarbohydratesTotalG
		agg.Fiber += it.FiberG
		agg.Sugar += it.SugarG
		agg.Sodium += it.SodiumMg
		agg.Potassium += it.PotassiumMg
		agg.Cholesterol += it.CholesterolMg
	}
	agg.Name = strings.Join(names, ", ")
	return agg
}
