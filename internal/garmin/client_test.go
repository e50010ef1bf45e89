package garmin

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

const mealDefinitionsJSON = `[
	{"mealId": 645041, "mealName": "Breakfast", "displayOrder": 0, "startTime": "06:00:00", "endTime": "10:00:00"},
	{"mealId": 645042, "mealName": "Lunch", "displayOrder": 1, "startTime": "11:00:00", "endTime": "14:00:00"},
	{"mealId": 645043, "mealName": "Dinner", "displayOrder": 2, "startTime": "17:00:00", "endTime": "21:00:00"},
	{"mealId": 645044, "mealName": "Snacks", "displayOrder": 3}
]`

const dailyLogJSON = `{
	"mealDate": "2026-01-15",
	"dailyNutritionGoals": {"calories": 2200.0, "protein": 150.0, "fat": 70.0, "carbs": 250.0},
	"dailyNutritionContent": {"calories": 1150.0, "protein": 65.0, "fat": 40.0, "carbs": 135.0},
	"mealDetails": [
		{
			"meal": {"mealId": 645041, "mealName": "Breakfast", "displayOrder": 0},
			"mealNutritionContent": {"calories": 450.0, "protein": 25.0, "fat": 15.0, "carbs": 55.0},
			"loggedFoods": [
				{
					"logId": "abc123",
					"servingQty": 1.5,
					"foodMetaData": {"foodId": "food-1", "foodName": "Oatmeal", "foodType": "GENERIC", "brandName": null},
					"selectedNutritionContent": {"servingUnit": "cup", "numberOfUnits": 1.0, "calories": 300.0, "protein": 10.0}
				}
			]
		},
		{
			"meal": {"mealId": 645042, "mealName": "Lunch", "displayOrder": 1},
			"mealNutritionContent": {"calories": 700.0, "protein": 40.0, "fat": 25.0, "carbs": 80.0},
			"loggedFoods": []
		}
	]
}`

// recordedRequest captures what the test server received so assertions can
// run on the main test goroutine.
type recordedRequest struct {
	method string
	path   string
	query  url.Values
	header http.Header
	body   []byte
}

// newTestClient starts a test server and returns a client pointed at it,
// along with a pointer that will hold the last request the server saw.
func newTestClient(t *testing.T, status int, response string) (*Client, *recordedRequest) {
	t.Helper()

	last := &recordedRequest{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		*last = recordedRequest{
			method: r.Method,
			path:   r.URL.Path,
			query:  r.URL.Query(),
			header: r.Header.Clone(),
			body:   body,
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(server.Close)

	client := NewClient(Config{},
		WithBaseURL(server.URL),
		WithTokenSource(StaticTokenSource("test-token")),
	)
	return client, last
}

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient(Config{})
	if client.baseURL != "https://connectapi.garmin.com" {
		t.Errorf("Expected default base URL, got %s", client.baseURL)
	}
	if client.httpClient.Timeout != DefaultHTTPTimeout {
		t.Errorf("Expected timeout %v, got %v", DefaultHTTPTimeout, client.httpClient.Timeout)
	}

	client = NewClient(Config{Domain: "garmin.cn", Timeout: 5 * time.Second})
	if client.baseURL != "https://connectapi.garmin.cn" {
		t.Errorf("Expected garmin.cn base URL, got %s", client.baseURL)
	}
	if client.httpClient.Timeout != 5*time.Second {
		t.Errorf("Expected timeout 5s, got %v", client.httpClient.Timeout)
	}
}

func TestClient_MealDefinitions(t *testing.T) {
	client, last := newTestClient(t, http.StatusOK, mealDefinitionsJSON)

	meals, err := client.MealDefinitions(context.Background(), "2026-01-15")
	if err != nil {
		t.Fatalf("MealDefinitions failed: %v", err)
	}

	if last.method != http.MethodGet {
		t.Errorf("Expected GET, got %s", last.method)
	}
	if last.path != "/nutrition-service/nutrition/mealDefinitions" {
		t.Errorf("Unexpected path: %s", last.path)
	}
	if got := last.query.Get("date"); got != "2026-01-15" {
		t.Errorf("Expected date=2026-01-15, got %s", got)
	}
	if got := last.header.Get("Authorization"); got != "Bearer test-token" {
		t.Errorf("Expected bearer auth header, got %q", got)
	}
	if got := last.header.Get("User-Agent"); got != userAgent {
		t.Errorf("Expected Connect user agent, got %q", got)
	}

	if len(meals) != 4 {
		t.Fatalf("Expected 4 meals, got %d", len(meals))
	}
	if meals[0].MealID != 645041 || meals[0].MealName != "Breakfast" {
		t.Errorf("Unexpected first meal: %+v", meals[0])
	}
	if meals[3].StartTime != nil {
		t.Errorf("Expected Snacks to have no start time, got %v", *meals[3].StartTime)
	}
}

func TestClient_MealDefinitions_DefaultsToToday(t *testing.T) {
	client, last := newTestClient(t, http.StatusOK, `[]`)

	if _, err := client.MealDefinitions(context.Background(), ""); err != nil {
		t.Fatalf("MealDefinitions failed: %v", err)
	}

	today := time.Now().Format("2006-01-02")
	if got := last.query.Get("date"); got != today {
		t.Errorf("Expected date=%s, got %s", today, got)
	}
}

func TestClient_DailyLog(t *testing.T) {
	client, last := newTestClient(t, http.StatusOK, dailyLogJSON)

	log, err := client.DailyLog(context.Background(), "2026-01-15")
	if err != nil {
		t.Fatalf("DailyLog failed: %v", err)
	}

	if last.path != "/nutrition-service/nutrition/log/2026-01-15" {
		t.Errorf("Unexpected path: %s", last.path)
	}

	if log.MealDate == nil || *log.MealDate != "2026-01-15" {
		t.Errorf("Unexpected meal date: %v", log.MealDate)
	}
	if log.DailyNutritionGoals == nil || *log.DailyNutritionGoals.Calories != 2200.0 {
		t.Errorf("Unexpected goals: %+v", log.DailyNutritionGoals)
	}
	if len(log.MealDetails) != 2 {
		t.Fatalf("Expected 2 meal details, got %d", len(log.MealDetails))
	}

	breakfast := log.MealDetails[0]
	if len(breakfast.LoggedFoods) != 1 {
		t.Fatalf("Expected 1 logged food, got %d", len(breakfast.LoggedFoods))
	}
	food := breakfast.LoggedFoods[0]
	if food.LogID == nil || *food.LogID != "abc123" {
		t.Errorf("Unexpected log id: %v", food.LogID)
	}
	// JSON null must stay distinguishable from a present value.
	if food.FoodMetaData.BrandName != nil {
		t.Errorf("Expected nil brand name, got %v", *food.FoodMetaData.BrandName)
	}
	if len(log.MealDetails[1].LoggedFoods) != 0 {
		t.Errorf("Expected empty lunch, got %d foods", len(log.MealDetails[1].LoggedFoods))
	}
}

func TestClient_Settings(t *testing.T) {
	response := `{
		"calorieGoal": 2200.0,
		"weightChangeType": "LOSE_HALF_POUND",
		"autoCalorieAdjustment": false,
		"macroGoals": {"protein": 150.0, "fat": 70.0, "carbs": 250.0}
	}`
	client, last := newTestClient(t, http.StatusOK, response)

	settings, err := client.Settings(context.Background(), "2026-01-15")
	if err != nil {
		t.Fatalf("Settings failed: %v", err)
	}

	if last.path != "/nutrition-service/nutrition/settings" {
		t.Errorf("Unexpected path: %s", last.path)
	}
	if settings.CalorieGoal == nil || *settings.CalorieGoal != 2200.0 {
		t.Errorf("Unexpected calorie goal: %v", settings.CalorieGoal)
	}
	if settings.MacroGoals == nil || settings.MacroGoals.Calories != nil {
		t.Errorf("Expected macro goals without calories, got %+v", settings.MacroGoals)
	}
	if settings.TargetDate != nil {
		t.Errorf("Expected nil target date, got %v", *settings.TargetDate)
	}
}

func TestClient_SearchFoods(t *testing.T) {
	response := `{
		"results": [
			{"foodMetaData": {"foodId": "food-1", "foodName": "Chicken Breast"}, "isFavorite": false}
		],
		"moreDataAvailable": true
	}`
	client, last := newTestClient(t, http.StatusOK, response)

	results, err := client.SearchFoods(context.Background(), "chicken", 10, 25)
	if err != nil {
		t.Fatalf("SearchFoods failed: %v", err)
	}

	if last.path != "/nutrition-service/food/search" {
		t.Errorf("Unexpected path: %s", last.path)
	}
	if got := last.query.Get("query"); got != "chicken" {
		t.Errorf("Expected query=chicken, got %s", got)
	}
	if got := last.query.Get("start"); got != "10" {
		t.Errorf("Expected start=10, got %s", got)
	}
	if got := last.query.Get("limit"); got != "25" {
		t.Errorf("Expected limit=25, got %s", got)
	}

	if len(results.Results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(results.Results))
	}
	if results.MoreDataAvailable == nil || !*results.MoreDataAvailable {
		t.Errorf("Expected moreDataAvailable=true, got %v", results.MoreDataAvailable)
	}
}

func TestClient_RecentFoods(t *testing.T) {
	response := `{"frequentFoods": [], "recentFoods": [{"foodMetaData": {"foodName": "Banana"}}]}`
	client, last := newTestClient(t, http.StatusOK, response)

	recent, err := client.RecentFoods(context.Background(), 645041, "2026-01-15")
	if err != nil {
		t.Fatalf("RecentFoods failed: %v", err)
	}

	if last.path != "/nutrition-service/food/recent" {
		t.Errorf("Unexpected path: %s", last.path)
	}
	if got := last.query.Get("mealId"); got != "645041" {
		t.Errorf("Expected mealId=645041, got %s", got)
	}
	if got := last.query.Get("date"); got != "2026-01-15" {
		t.Errorf("Expected date=2026-01-15, got %s", got)
	}
	if len(recent.RecentFoods) != 1 {
		t.Errorf("Expected 1 recent food, got %d", len(recent.RecentFoods))
	}
}

func TestClient_Favorites(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		response := `{"consumables": [{"foodMetaData": {"foodName": "Greek Yogurt"}}], "hasMore": false}`
		client, last := newTestClient(t, http.StatusOK, response)

		favorites, err := client.FavoriteFoods(context.Background(), "", 0, 25)
		if err != nil {
			t.Fatalf("FavoriteFoods failed: %v", err)
		}
		if last.path != "/nutrition-service/food/favorites" {
			t.Errorf("Unexpected path: %s", last.path)
		}
		if len(favorites.Consumables) != 1 {
			t.Errorf("Expected 1 favorite, got %d", len(favorites.Consumables))
		}
	})

	t.Run("add", func(t *testing.T) {
		client, last := newTestClient(t, http.StatusOK, ``)

		err := client.AddFavorite(context.Background(), FavoriteRequest{
			FoodID:     "food-1",
			ServingID:  "serving-1",
			Source:     "GENERIC",
			ServingQty: 1,
		})
		if err != nil {
			t.Fatalf("AddFavorite failed: %v", err)
		}

		if last.method != http.MethodPost {
			t.Errorf("Expected POST, got %s", last.method)
		}
		if got := last.header.Get("Content-Type"); got != "application/json" {
			t.Errorf("Expected JSON content type, got %q", got)
		}

		var body map[string]interface{}
		if err := json.Unmarshal(last.body, &body); err != nil {
			t.Fatalf("Failed to parse request body: %v", err)
		}
		if body["foodId"] != "food-1" || body["servingQty"] != float64(1) {
			t.Errorf("Unexpected request body: %v", body)
		}
	})

	t.Run("remove", func(t *testing.T) {
		client, last := newTestClient(t, http.StatusNoContent, ``)

		if err := client.RemoveFavorite(context.Background(), "food-1"); err != nil {
			t.Fatalf("RemoveFavorite failed: %v", err)
		}
		if last.method != http.MethodDelete {
			t.Errorf("Expected DELETE, got %s", last.method)
		}
		if last.path != "/nutrition-service/food/favorites/food-1" {
			t.Errorf("Unexpected path: %s", last.path)
		}
	})
}

func TestClient_CustomFoods(t *testing.T) {
	t.Run("create", func(t *testing.T) {
		response := `{
			"foodMetaData": {"foodId": "custom-new", "foodName": "My Protein Shake", "foodType": "CUSTOM"},
			"nutritionContents": [{"servingUnit": "serving", "numberOfUnits": 1.0, "calories": 220.0, "protein": 30.0}]
		}`
		client, last := newTestClient(t, http.StatusOK, response)

		protein := 30.0
		created, err := client.CreateCustomFood(context.Background(), CustomFoodRequest{
			FoodName:      "My Protein Shake",
			ServingUnit:   "serving",
			NumberOfUnits: 1,
			Calories:      220,
			Protein:       &protein,
		})
		if err != nil {
			t.Fatalf("CreateCustomFood failed: %v", err)
		}

		if last.method != http.MethodPost {
			t.Errorf("Expected POST, got %s", last.method)
		}
		if last.path != "/nutrition-service/food/custom" {
			t.Errorf("Unexpected path: %s", last.path)
		}

		var body map[string]interface{}
		if err := json.Unmarshal(last.body, &body); err != nil {
			t.Fatalf("Failed to parse request body: %v", err)
		}
		if body["foodName"] != "My Protein Shake" {
			t.Errorf("Unexpected request body: %v", body)
		}
		if _, present := body["fiber"]; present {
			t.Error("Expected unset fiber to be omitted from request body")
		}

		if created.FoodMetaData == nil || *created.FoodMetaData.FoodID != "custom-new" {
			t.Errorf("Unexpected created food: %+v", created)
		}
	})

	t.Run("delete", func(t *testing.T) {
		client, last := newTestClient(t, http.StatusNoContent, ``)

		if err := client.DeleteCustomFood(context.Background(), "custom-1"); err != nil {
			t.Fatalf("DeleteCustomFood failed: %v", err)
		}
		if last.path != "/nutrition-service/food/custom/custom-1" {
			t.Errorf("Unexpected path: %s", last.path)
		}
	})
}

func TestClient_CreateCustomMeal(t *testing.T) {
	response := `{"customMealId": 12345, "name": "Post-Workout", "contentSummary": {"calories": 150.0, "protein": 5.0}}`
	client, last := newTestClient(t, http.StatusOK, response)

	foods := []interface{}{
		map[string]interface{}{"foodId": "food-1", "servingQty": 2.0},
	}
	meal, err := client.CreateCustomMeal(context.Background(), "Post-Workout", foods)
	if err != nil {
		t.Fatalf("CreateCustomMeal failed: %v", err)
	}

	if last.path != "/nutrition-service/meal/custom" {
		t.Errorf("Unexpected path: %s", last.path)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(last.body, &body); err != nil {
		t.Fatalf("Failed to parse request body: %v", err)
	}
	if body["name"] != "Post-Workout" {
		t.Errorf("Unexpected name in body: %v", body["name"])
	}
	if foodsField, ok := body["foods"].([]interface{}); !ok || len(foodsField) != 1 {
		t.Errorf("Unexpected foods in body: %v", body["foods"])
	}

	if meal.CustomMealID != 12345 {
		t.Errorf("Expected custom meal id 12345, got %d", meal.CustomMealID)
	}
}

func TestClient_FoodLog(t *testing.T) {
	t.Run("add", func(t *testing.T) {
		client, last := newTestClient(t, http.StatusOK, dailyLogJSON)

		log, err := client.AddFoodLog(context.Background(), FoodLogEntry{
			Day:        "2026-01-15",
			MealID:     645041,
			FoodID:     "food-1",
			ServingID:  "serving-1",
			Source:     "GENERIC",
			ServingQty: 1.5,
		})
		if err != nil {
			t.Fatalf("AddFoodLog failed: %v", err)
		}

		if last.method != http.MethodPost {
			t.Errorf("Expected POST, got %s", last.method)
		}
		if last.path != "/nutrition-service/foodlog" {
			t.Errorf("Unexpected path: %s", last.path)
		}

		var body map[string]interface{}
		if err := json.Unmarshal(last.body, &body); err != nil {
			t.Fatalf("Failed to parse request body: %v", err)
		}
		if body["mealDate"] != "2026-01-15" || body["mealId"] != float64(645041) {
			t.Errorf("Unexpected request body: %v", body)
		}
		if _, present := body["logId"]; present {
			t.Error("Expected empty logId to be omitted from add request")
		}

		if len(log.MealDetails) != 2 {
			t.Errorf("Expected updated log in response, got %+v", log)
		}
	})

	t.Run("update", func(t *testing.T) {
		client, last := newTestClient(t, http.StatusOK, dailyLogJSON)

		_, err := client.UpdateFoodLog(context.Background(), FoodLogEntry{
			Day:        "2026-01-15",
			LogID:      "abc123",
			MealID:     645042,
			FoodID:     "food-1",
			ServingID:  "serving-1",
			Source:     "GENERIC",
			ServingQty: 2,
		})
		if err != nil {
			t.Fatalf("UpdateFoodLog failed: %v", err)
		}

		if last.method != http.MethodPut {
			t.Errorf("Expected PUT, got %s", last.method)
		}
		if last.path != "/nutrition-service/foodlog/abc123" {
			t.Errorf("Unexpected path: %s", last.path)
		}
	})

	t.Run("remove", func(t *testing.T) {
		client, last := newTestClient(t, http.StatusNoContent, ``)

		err := client.RemoveFoodLog(context.Background(), "2026-01-15", []string{"abc123", "def456"})
		if err != nil {
			t.Fatalf("RemoveFoodLog failed: %v", err)
		}

		if last.method != http.MethodDelete {
			t.Errorf("Expected DELETE, got %s", last.method)
		}
		if last.path != "/nutrition-service/foodlog/2026-01-15" {
			t.Errorf("Unexpected path: %s", last.path)
		}
		if ids := last.query["logIds"]; len(ids) != 2 || ids[0] != "abc123" || ids[1] != "def456" {
			t.Errorf("Unexpected logIds query: %v", ids)
		}
	})

	t.Run("quick add", func(t *testing.T) {
		client, last := newTestClient(t, http.StatusOK, dailyLogJSON)

		_, err := client.QuickAdd(context.Background(), QuickAddEntry{
			Day:      "2026-01-15",
			MealID:   645043,
			Name:     "Restaurant Dinner",
			Calories: 850,
			Protein:  35,
			Fat:      30,
			Carbs:    95,
		})
		if err != nil {
			t.Fatalf("QuickAdd failed: %v", err)
		}

		if last.path != "/nutrition-service/foodlog/quick" {
			t.Errorf("Unexpected path: %s", last.path)
		}

		var body map[string]interface{}
		if err := json.Unmarshal(last.body, &body); err != nil {
			t.Fatalf("Failed to parse request body: %v", err)
		}
		if body["foodName"] != "Restaurant Dinner" || body["calories"] != float64(850) {
			t.Errorf("Unexpected request body: %v", body)
		}
	})
}

func TestClient_APIError(t *testing.T) {
	t.Run("server error", func(t *testing.T) {
		client, _ := newTestClient(t, http.StatusInternalServerError, `{"message": "internal error"}`)

		_, err := client.DailyLog(context.Background(), "2026-01-15")
		if err == nil {
			t.Fatal("Expected error for 500 response")
		}

		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("Expected APIError, got %T: %v", err, err)
		}
		if apiErr.Status != http.StatusInternalServerError {
			t.Errorf("Expected status 500, got %d", apiErr.Status)
		}
		if apiErr.IsAuthError() {
			t.Error("500 should not be an auth error")
		}
	})

	t.Run("auth error", func(t *testing.T) {
		client, _ := newTestClient(t, http.StatusUnauthorized, ``)

		err := client.RemoveFavorite(context.Background(), "food-1")
		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("Expected APIError, got %T: %v", err, err)
		}
		if !apiErr.IsAuthError() {
			t.Error("401 should be an auth error")
		}
	})
}

// failingTokenSource always fails, simulating a missing or expired token file.
type failingTokenSource struct{}

func (failingTokenSource) Token() (*oauth2.Token, error) {
	return nil, errors.New("token file missing")
}

func TestClient_TokenSourceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("Request should not reach the server without a token")
	}))
	t.Cleanup(server.Close)

	client := NewClient(Config{},
		WithBaseURL(server.URL),
		WithTokenSource(failingTokenSource{}),
	)

	_, err := client.Settings(context.Background(), "")
	if err == nil {
		t.Fatal("Expected error when token source fails")
	}
	if !strings.Contains(err.Error(), "failed to get access token") {
		t.Errorf("Unexpected error: %v", err)
	}
}
