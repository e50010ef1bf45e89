package nutrition

import (
	"context"

	"macrolog/internal/garmin"
)

// Nutrition tool name constants.
const (
	// ToolGetNutritionLog returns the full daily log with all meals.
	ToolGetNutritionLog = "get_nutrition_log"

	// ToolGetNutritionSummary returns daily totals vs goals only.
	ToolGetNutritionSummary = "get_nutrition_summary"

	// ToolGetNutritionSettings returns calorie and macro goals.
	ToolGetNutritionSettings = "get_nutrition_settings"

	// ToolSearchFoods searches the food database.
	ToolSearchFoods = "search_foods"

	// ToolGetRecentFoods returns recent and frequent foods for a meal.
	ToolGetRecentFoods = "get_recent_foods"

	// ToolListFavoriteFoods lists or searches favorite foods.
	ToolListFavoriteFoods = "list_favorite_foods"

	// ToolListCustomFoods lists or searches user-created foods.
	ToolListCustomFoods = "list_custom_foods"

	// ToolLogFood logs a food from the database to a meal.
	ToolLogFood = "log_food"

	// ToolQuickAddNutrition logs a free-form entry by name and macros.
	ToolQuickAddNutrition = "quick_add_nutrition"

	// ToolUpdateFoodLog updates an existing log entry.
	ToolUpdateFoodLog = "update_food_log"

	// ToolRemoveFoodLog removes one or more log entries.
	ToolRemoveFoodLog = "remove_food_log"

	// ToolAddFavoriteFood stars a food.
	ToolAddFavoriteFood = "add_favorite_food"

	// ToolRemoveFavoriteFood unstars a food.
	ToolRemoveFavoriteFood = "remove_favorite_food"

	// ToolCreateCustomFood creates a user-defined food.
	ToolCreateCustomFood = "create_custom_food"

	// ToolDeleteCustomFood deletes a user-defined food.
	ToolDeleteCustomFood = "delete_custom_food"

	// ToolListCustomMeals lists or searches saved food combinations.
	ToolListCustomMeals = "list_custom_meals"

	// ToolCreateCustomMeal saves a food combination as a meal.
	ToolCreateCustomMeal = "create_custom_meal"
)

// API is the subset of the Connect client the nutrition tools consume.
// Handlers receive it by injection so tests can substitute a fake.
type API interface {
	MealDefinitions(ctx context.Context, day string) ([]garmin.Meal, error)
	DailyLog(ctx context.Context, day string) (*garmin.DailyFoodLog, error)
	Settings(ctx context.Context, day string) (*garmin.Settings, error)
	SearchFoods(ctx context.Context, query string, start, limit int) (*garmin.SearchResults, error)
	RecentFoods(ctx context.Context, mealID int, day string) (*garmin.RecentFoods, error)
	FavoriteFoods(ctx context.Context, query string, start, limit int) (*garmin.FavoriteFoodList, error)
	AddFavorite(ctx context.Context, req garmin.FavoriteRequest) error
	RemoveFavorite(ctx context.Context, foodID string) error
	CustomFoods(ctx context.Context, query string, start, limit int) (*garmin.CustomFoodList, error)
	CreateCustomFood(ctx context.Context, req garmin.CustomFoodRequest) (*garmin.FoodItem, error)
	DeleteCustomFood(ctx context.Context, foodID string) error
	CustomMeals(ctx context.Context, query string, start, limit int) (*garmin.CustomMealList, error)
	CreateCustomMeal(ctx context.Context, name string, foods []interface{}) (*garmin.CustomMealDetail, error)
	AddFoodLog(ctx context.Context, entry garmin.FoodLogEntry) (*garmin.DailyFoodLog, error)
	UpdateFoodLog(ctx context.Context, entry garmin.FoodLogEntry) (*garmin.DailyFoodLog, error)
	RemoveFoodLog(ctx context.Context, day string, logIDs []string) error
	QuickAdd(ctx context.Context, entry garmin.QuickAddEntry) (*garmin.DailyFoodLog, error)
}

// The record types below are the curated tool responses. They carry a fixed
// allow-list of fields under stable snake_case names, decoupled from the
// Connect wire format. Absent source values are omitted rather than emitted
// as null, so a missing key reads as "unknown", not zero. Field order is
// part of the contract; encoding/json emits fields in declaration order.

// ServingRecord is a curated serving or nutrition-content block.
type ServingRecord struct {
	ServingID     *string  `json:"serving_id,omitempty"`
	ServingUnit   *string  `json:"serving_unit,omitempty"`
	NumberOfUnits *float64 `json:"number_of_units,omitempty"`
	Calories      *float64 `json:"calories,omitempty"`
	Protein       *float64 `json:"protein,omitempty"`
	Fat           *float64 `json:"fat,omitempty"`
	Carbs         *float64 `json:"carbs,omitempty"`
	Fiber         *float64 `json:"fiber,omitempty"`
	Sugar         *float64 `json:"sugar,omitempty"`
}

// FoodRecord is a curated food database entry: identity fields plus the
// available serving sizes. Used by search results, recent foods, favorites,
// custom foods, and custom meal listings alike.
type FoodRecord struct {
	FoodID     *string         `json:"food_id,omitempty"`
	FoodName   *string         `json:"food_name,omitempty"`
	BrandName  *string         `json:"brand_name,omitempty"`
	Source     *string         `json:"source,omitempty"`
	Servings   []ServingRecord `json:"servings,omitempty"`
	IsFavorite *bool           `json:"is_favorite,omitempty"`
}

// LoggedFoodRecord is a curated entry of a day's food log. The log_id is
// dropped when the service returns it empty, matching the service's own
// treatment of synthetic entries.
type LoggedFoodRecord struct {
	LogID      string         `json:"log_id,omitempty"`
	FoodID     *string        `json:"food_id,omitempty"`
	FoodName   *string        `json:"food_name,omitempty"`
	BrandName  *string        `json:"brand_name,omitempty"`
	Source     *string        `json:"source,omitempty"`
	ServingQty *float64       `json:"serving_qty,omitempty"`
	Nutrition  *ServingRecord `json:"nutrition,omitempty"`
}

// MealRecord is one meal of a daily log. Totals and foods appear only when
// the service reported nutrition content or logged foods for the meal.
type MealRecord struct {
	MealName string             `json:"meal_name"`
	MealID   int                `json:"meal_id"`
	Totals   *ServingRecord     `json:"totals,omitempty"`
	Foods    []LoggedFoodRecord `json:"foods,omitempty"`
}

// MacroRecord is the calories/protein/fat/carbs subset used for daily goals
// and totals.
type MacroRecord struct {
	Calories *float64 `json:"calories,omitempty"`
	Protein  *float64 `json:"protein,omitempty"`
	Fat      *float64 `json:"fat,omitempty"`
	Carbs    *float64 `json:"carbs,omitempty"`
}

// NutritionLogRecord is the full curated daily log. Goals, totals, and meals
// are always present, possibly empty.
type NutritionLogRecord struct {
	Date        *string      `json:"date,omitempty"`
	DailyGoals  MacroRecord  `json:"daily_goals"`
	DailyTotals MacroRecord  `json:"daily_totals"`
	Meals       []MealRecord `json:"meals"`
}

// SummaryRecord is the lightweight totals-vs-goals view of a daily log.
type SummaryRecord struct {
	Date   *string     `json:"date"`
	Totals MacroRecord `json:"totals"`
	Goals  MacroRecord `json:"goals"`
}

// MacroGoalsRecord carries the configured macro targets. Unset targets are
// emitted as null here, unlike everywhere else: the block only appears when
// goals are configured, and a null target inside it is meaningful.
type MacroGoalsRecord struct {
	Calories *float64 `json:"calories"`
	Protein  *float64 `json:"protein"`
	Fat      *float64 `json:"fat"`
	Carbs    *float64 `json:"carbs"`
}

// SettingsRecord is the curated nutrition settings response.
type SettingsRecord struct {
	CalorieGoal           *float64          `json:"calorie_goal,omitempty"`
	WeightChangeType      *string           `json:"weight_change_type,omitempty"`
	AutoCalorieAdjustment *bool             `json:"auto_calorie_adjustment,omitempty"`
	RegionCode            *string           `json:"region_code,omitempty"`
	LanguageCode          *string           `json:"language_code,omitempty"`
	StartingWeightGrams   *float64          `json:"starting_weight_grams,omitempty"`
	TargetWeightGoalGrams *float64          `json:"target_weight_goal_grams,omitempty"`
	TargetDate            *string           `json:"target_date,omitempty"`
	MacroGoals            *MacroGoalsRecord `json:"macro_goals,omitempty"`
}

// SearchRecord is the search_foods response envelope.
type SearchRecord struct {
	Query   string       `json:"query"`
	Results []FoodRecord `json:"results"`
	HasMore *bool        `json:"has_more"`
}

// RecentFoodsRecord is the get_recent_foods response envelope. Meal echoes
// the requested meal name upper-cased.
type RecentFoodsRecord struct {
	Meal          string       `json:"meal"`
	FrequentFoods []FoodRecord `json:"frequent_foods"`
	RecentFoods   []FoodRecord `json:"recent_foods"`
}

// FavoritesRecord is the list_favorite_foods response envelope.
type FavoritesRecord struct {
	Favorites []FoodRecord `json:"favorites"`
	HasMore   *bool        `json:"has_more"`
}

// CustomFoodsRecord is the list_custom_foods response envelope.
type CustomFoodsRecord struct {
	CustomFoods []FoodRecord `json:"custom_foods"`
	HasMore     *bool        `json:"has_more"`
}

// CustomMealsRecord is the list_custom_meals response envelope.
type CustomMealsRecord struct {
	CustomMeals []FoodRecord `json:"custom_meals"`
	HasMore     *bool        `json:"has_more"`
}

// CustomMealRecord is the create_custom_meal response.
type CustomMealRecord struct {
	CustomMealID int            `json:"custom_meal_id"`
	Name         string         `json:"name"`
	FoodCount    int            `json:"food_count"`
	Totals       *ServingRecord `json:"totals,omitempty"`
}

// RemovalRecord reports a batch log removal.
type RemovalRecord struct {
	Status       string `json:"status"`
	Date         string `json:"date"`
	RemovedCount int    `json:"removed_count"`
}

// FoodStatusRecord reports a mutation on a single food (favorite or custom).
type FoodStatusRecord struct {
	Status string `json:"status"`
	FoodID string `json:"food_id"`
}
