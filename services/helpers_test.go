package services

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/leagermaxl/nutri-smart/config"
	"github.com/leagermaxl/nutri-smart/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.FoodLog{},
		&models.NutritionAPIResponse{},
		&models.AIAnalysis{},
	))
	return db
}

// fakeNutritionAPI stands in for CalorieNinjas.
type fakeNutritionAPI struct {
	srv    *httptest.Server
	calls  int
	status int
	body   string
}

func newNutritionFake(t *testing.T, status int, body string) *fakeNutritionAPI {
	t.Helper()
	f := &fakeNutritionAPI{status: status, body: body}
	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.calls++
		w.WriteHeader(f.status)
		fmt.Fprint(w, f.body)
	}))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeNutritionAPI) service(db *gorm.DB) *NutritionService {
	return NewNutritionService(db, config.NutritionConfig{
		APIKey:  "test-key",
		BaseURL: f.srv.URL,
	}, zap.NewNop())
}

// fakeLLM stands in for the chat-completion endpoint. It records the last
// user prompt and answers with a fixed message content.
type fakeLLM struct {
	srv        *httptest.Server
	calls      int
	status     int
	content    string
	lastPrompt string
}

func newLLMFake(t *testing.T, status int, content string) *fakeLLM {
	t.Helper()
	f := &fakeLLM{status: status, content: content}
	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.calls++

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
			for _, m := range req.Messages {
				if m.Role == "user" {
					f.lastPrompt = m.Content
				}
			}
		}

		if f.status != http.StatusOK {
			w.WriteHeader(f.status)
			fmt.Fprint(w, `{"error":"boom"}`)
			return
		}
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": f.content}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeLLM) service() *LLMService {
	return NewLLMService(config.LLMConfig{
		APIKey:  "test-key",
		BaseURL: f.srv.URL,
		Model:   "test-model",
	})
}

const twoItemNutritionBody = `{"items":[
	{"name":"eggs","calories":140,"serving_size_g":100,"protein_g":12.4,"fat_total_g":9.6,"fat_saturated_g":3.1,"carbohydrates_total_g":0.7,"fiber_g":0,"sugar_g":0.4,"sodium_mg":140,"potassium_mg":194,"cholesterol_mg":367},
	{"name":"toast","calories":75,"serving_size_g":25,"protein_g":3,"fat_total_g":1,"fat_saturated_g":0.2,"carbohydrates_total_g":13,"fiber_g":1,"sugar_g":1.5,"sodium_mg":130,"potassium_mg":40,"cholesterol_mg":0}
]}`
