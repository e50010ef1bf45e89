package nutrition

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"macrolog/internal/api"
	"macrolog/internal/garmin"
	"macrolog/pkg/logging"
)

// ExecuteTool executes a nutrition tool by name with the provided
// arguments. This implements the api.ToolProvider interface.
func (p *Provider) ExecuteTool(ctx context.Context, toolName string, args map[string]interface{}) (*api.CallToolResult, error) {
	logging.Debug("Nutrition", "Executing tool %s", toolName)

	switch toolName {
	case ToolGetNutritionLog:
		return p.handleGetNutritionLog(ctx, args)
	case ToolGetNutritionSummary:
		return p.handleGetNutritionSummary(ctx, args)
	case ToolGetNutritionSettings:
		return p.handleGetNutritionSettings(ctx, args)
	case ToolSearchFoods:
		return p.handleSearchFoods(ctx, args)
	case ToolGetRecentFoods:
		return p.handleGetRecentFoods(ctx, args)
	case ToolListFavoriteFoods:
		return p.handleListFavoriteFoods(ctx, args)
	case ToolListCustomFoods:
		return p.handleListCustomFoods(ctx, args)
	case ToolLogFood:
		return p.handleLogFood(ctx, args)
	case ToolQuickAddNutrition:
		return p.handleQuickAddNutrition(ctx, args)
	case ToolUpdateFoodLog:
		return p.handleUpdateFoodLog(ctx, args)
	case ToolRemoveFoodLog:
		return p.handleRemoveFoodLog(ctx, args)
	case ToolAddFavoriteFood:
		return p.handleAddFavoriteFood(ctx, args)
	case ToolRemoveFavoriteFood:
		return p.handleRemoveFavoriteFood(ctx, args)
	case ToolCreateCustomFood:
		return p.handleCreateCustomFood(ctx, args)
	case ToolDeleteCustomFood:
		return p.handleDeleteCustomFood(ctx, args)
	case ToolListCustomMeals:
		return p.handleListCustomMeals(ctx, args)
	case ToolCreateCustomMeal:
		return p.handleCreateCustomMeal(ctx, args)
	default:
		return nil, fmt.Errorf("unknown nutrition tool: %s", toolName)
	}
}

// handleGetNutritionLog handles the get_nutrition_log tool.
func (p *Provider) handleGetNutritionLog(ctx context.Context, args map[string]interface{}) (*api.CallToolResult, error) {
	date, ok := stringArg(args, "date")
	if !ok {
		return errorResult("date argument is required"), nil
	}

	log, err := p.client.DailyLog(ctx, date)
	if err != nil {
		return errorResult(fmt.Sprintf("Error getting nutrition log: %v", err)), nil
	}

	return jsonResult(curateDailyLog(log)), nil
}

// handleGetNutritionSummary handles the get_nutrition_summary tool. It
// fetches the same daily log as get_nutrition_log but reduces it to
// totals vs goals.
func (p *Provider) handleGetNutritionSummary(ctx context.Context, args map[string]interface{}) (*api.CallToolResult, error) {
	date, ok := stringArg(args, "date")
	if !ok {
		return errorResult("date argument is required"), nil
	}

	log, err := p.client.DailyLog(ctx, date)
	if err != nil {
		return errorResult(fmt.Sprintf("Error getting nutrition summary: %v", err)), nil
	}

	return jsonResult(curateSummary(log)), nil
}

// handleGetNutritionSettings handles the get_nutrition_settings tool.
func (p *Provider) handleGetNutritionSettings(ctx context.Context, args map[string]interface{}) (*api.CallToolResult, error) {
	date := optionalStringArg(args, "date")

	settings, err := p.client.Settings(ctx, date)
	if err != nil {
		return errorResult(fmt.Sprintf("Error getting nutrition settings: %v", err)), nil
	}

	return jsonResult(curateSettings(settings)), nil
}

// handleSearchFoods handles the search_foods tool.
func (p *Provider) handleSearchFoods(ctx context.Context, args map[string]interface{}) (*api.CallToolResult, error) {
	query, ok := stringArg(args, "query")
	if !ok {
		return errorResult("query argument is required"), nil
	}
	start := intArg(args, "start", 0)
	limit := intArg(args, "limit", 20)

	results, err := p.client.SearchFoods(ctx, query, start, limit)
	if err != nil {
		return errorResult(fmt.Sprintf("Error searching foods: %v", err)), nil
	}

	return jsonResult(SearchRecord{
		Query:   query,
		Results: curateFoods(results.Results),
		HasMore: results.MoreDataAvailable,
	}), nil
}

// handleGetRecentFoods handles the get_recent_foods tool.
func (p *Provider) handleGetRecentFoods(ctx context.Context, args map[string]interface{}) (*api.CallToolResult, error) {
	meal, ok := stringArg(args, "meal")
	if !ok {
		return errorResult("meal argument is required"), nil
	}
	date := optionalStringArg(args, "date")

	mealID, err := ResolveMealID(ctx, p.client, meal, date)
	if err != nil {
		return errorResult(fmt.Sprintf("Error getting recent foods: %v", err)), nil
	}

	recent, err := p.client.RecentFoods(ctx, mealID, date)
	if err != nil {
		return errorResult(fmt.Sprintf("Error getting recent foods: %v", err)), nil
	}

	return jsonResult(RecentFoodsRecord{
		Meal:          strings.ToUpper(meal),
		FrequentFoods: curateFoods(recent.FrequentFoods),
		RecentFoods:   curateFoods(recent.RecentFoods),
	}), nil
}

// handleListFavoriteFoods handles the list_favorite_foods tool.
func (p *Provider) handleListFavoriteFoods(ctx context.Context, args map[string]interface{}) (*api.CallToolResult, error) {
	query := optionalStringArg(args, "query")
	start := intArg(args, "start", 0)
	limit := intArg(args, "limit", 20)

	favorites, err := p.client.FavoriteFoods(ctx, query, start, limit)
	if err != nil {
		return errorResult(fmt.Sprintf("Error listing favorites: %v", err)), nil
	}

	return jsonResult(FavoritesRecord{
		Favorites: curateFoods(favorites.Consumables),
		HasMore:   favorites.HasMore,
	}), nil
}

// handleListCustomFoods handles the list_custom_foods tool.
func (p *Provider) handleListCustomFoods(ctx context.Context, args map[string]interface{}) (*api.CallToolResult, error) {
	query := optionalStringArg(args, "query")
	start := intArg(args, "start", 0)
	limit := intArg(args, "limit", 20)

	foods, err := p.client.CustomFoods(ctx, query, start, limit)
	if err != nil {
		return errorResult(fmt.Sprintf("Error listing custom foods: %v", err)), nil
	}

	return jsonResult(CustomFoodsRecord{
		CustomFoods: curateFoods(foods.CustomFoods),
		HasMore:     foods.MoreDataAvailable,
	}), nil
}

// handleLogFood handles the log_food tool.
func (p *Provider) handleLogFood(ctx context.Context, args map[string]interface{}) (*api.CallToolResult, error) {
	date, ok := stringArg(args, "date")
	if !ok {
		return errorResult("date argument is required"), nil
	}
	meal, ok := stringArg(args, "meal")
	if !ok {
		return errorResult("meal argument is required"), nil
	}
	foodID, ok := idArg(args, "food_id")
	if !ok {
		return errorResult("food_id argument is required"), nil
	}
	servingID, ok := idArg(args, "serving_id")
	if !ok {
		return errorResult("serving_id argument is required"), nil
	}
	source, ok := stringArg(args, "source")
	if !ok {
		return errorResult("source argument is required"), nil
	}
	servingQty := floatArg(args, "serving_qty", 1)

	mealID, err := ResolveMealID(ctx, p.client, meal, date)
	if err != nil {
		return errorResult(fmt.Sprintf("Error logging food: %v", err)), nil
	}

	log, err := p.client.AddFoodLog(ctx, garmin.FoodLogEntry{
		Day:        date,
		MealID:     mealID,
		FoodID:     foodID,
		ServingID:  servingID,
		Source:     source,
		ServingQty: servingQty,
	})
	if err != nil {
		return errorResult(fmt.Sprintf("Error logging food: %v", err)), nil
	}

	return jsonResult(curateDailyLog(log)), nil
}

// handleQuickAddNutrition handles the quick_add_nutrition tool.
func (p *Provider) handleQuickAddNutrition(ctx context.Context, args map[string]interface{}) (*api.CallToolResult, error) {
	date, ok := stringArg(args, "date")
	if !ok {
		return errorResult("date argument is required"), nil
	}
	meal, ok := stringArg(args, "meal")
	if !ok {
		return errorResult("meal argument is required"), nil
	}
	name, ok := stringArg(args, "name")
	if !ok {
		return errorResult("name argument is required"), nil
	}
	calories, ok := requiredFloatArg(args, "calories")
	if !ok {
		return errorResult("calories argument is required"), nil
	}

	mealID, err := ResolveMealID(ctx, p.client, meal, date)
	if err != nil {
		return errorResult(fmt.Sprintf("Error quick-adding nutrition: %v", err)), nil
	}

	log, err := p.client.QuickAdd(ctx, garmin.QuickAddEntry{
		Day:      date,
		MealID:   mealID,
		Name:     name,
		Calories: calories,
		Protein:  floatArg(args, "protein", 0),
		Fat:      floatArg(args, "fat", 0),
		Carbs:    floatArg(args, "carbs", 0),
	})
	if err != nil {
		return errorResult(fmt.Sprintf("Error quick-adding nutrition: %v", err)), nil
	}

	return jsonResult(curateDailyLog(log)), nil
}

// handleUpdateFoodLog handles the update_food_log tool.
func (p *Provider) handleUpdateFoodLog(ctx context.Context, args map[string]interface{}) (*api.CallToolResult, error) {
	date, ok := stringArg(args, "date")
	if !ok {
		return errorResult("date argument is required"), nil
	}
	logID, ok := idArg(args, "log_id")
	if !ok {
		return errorResult("log_id argument is required"), nil
	}
	meal, ok := stringArg(args, "meal")
	if !ok {
		return errorResult("meal argument is required"), nil
	}
	foodID, ok := idArg(args, "food_id")
	if !ok {
		return errorResult("food_id argument is required"), nil
	}
	servingID, ok := idArg(args, "serving_id")
	if !ok {
		return errorResult("serving_id argument is required"), nil
	}
	source, ok := stringArg(args, "source")
	if !ok {
		return errorResult("source argument is required"), nil
	}
	servingQty := floatArg(args, "serving_qty", 1)

	mealID, err := ResolveMealID(ctx, p.client, meal, date)
	if err != nil {
		return errorResult(fmt.Sprintf("Error updating food log: %v", err)), nil
	}

	log, err := p.client.UpdateFoodLog(ctx, garmin.FoodLogEntry{
		Day:        date,
		LogID:      logID,
		MealID:     mealID,
		FoodID:     foodID,
		ServingID:  servingID,
		Source:     source,
		ServingQty: servingQty,
	})
	if err != nil {
		return errorResult(fmt.Sprintf("Error updating food log: %v", err)), nil
	}

	return jsonResult(curateDailyLog(log)), nil
}

// handleRemoveFoodLog handles the remove_food_log tool. The id list is
// validated locally; the service is never called with zero ids.
func (p *Provider) handleRemoveFoodLog(ctx context.Context, args map[string]interface{}) (*api.CallToolResult, error) {
	date, ok := stringArg(args, "date")
	if !ok {
		return errorResult("date argument is required"), nil
	}
	logIDs, ok := stringArg(args, "log_ids")
	if !ok {
		return errorResult("log_ids argument is required"), nil
	}

	ids := make([]string, 0)
	for _, id := range strings.Split(logIDs, ",") {
		if trimmed := strings.TrimSpace(id); trimmed != "" {
			ids = append(ids, trimmed)
		}
	}
	if len(ids) == 0 {
		return errorResult("Error: no log_ids provided"), nil
	}

	if err := p.client.RemoveFoodLog(ctx, date, ids); err != nil {
		return errorResult(fmt.Sprintf("Error removing food log entries: %v", err)), nil
	}

	return jsonResult(RemovalRecord{
		Status:       "success",
		Date:         date,
		RemovedCount: len(ids),
	}), nil
}

// handleAddFavoriteFood handles the add_favorite_food tool.
func (p *Provider) handleAddFavoriteFood(ctx context.Context, args map[string]interface{}) (*api.CallToolResult, error) {
	foodID, ok := idArg(args, "food_id")
	if !ok {
		return errorResult("food_id argument is required"), nil
	}
	servingID, ok := idArg(args, "serving_id")
	if !ok {
		return errorResult("serving_id argument is required"), nil
	}
	source, ok := stringArg(args, "source")
	if !ok {
		return errorResult("source argument is required"), nil
	}
	servingQty := floatArg(args, "serving_qty", 1)

	err := p.client.AddFavorite(ctx, garmin.FavoriteRequest{
		FoodID:     foodID,
		ServingID:  servingID,
		Source:     source,
		ServingQty: servingQty,
	})
	if err != nil {
		return errorResult(fmt.Sprintf("Error adding favorite: %v", err)), nil
	}

	return jsonResult(FoodStatusRecord{Status: "success", FoodID: foodID}), nil
}

// handleRemoveFavoriteFood handles the remove_favorite_food tool.
func (p *Provider) handleRemoveFavoriteFood(ctx context.Context, args map[string]interface{}) (*api.CallToolResult, error) {
	foodID, ok := idArg(args, "food_id")
	if !ok {
		return errorResult("food_id argument is required"), nil
	}

	if err := p.client.RemoveFavorite(ctx, foodID); err != nil {
		return errorResult(fmt.Sprintf("Error removing favorite: %v", err)), nil
	}

	return jsonResult(FoodStatusRecord{Status: "success", FoodID: foodID}), nil
}

// handleCreateCustomFood handles the create_custom_food tool. Unset macro
// arguments stay unset in the request so the service records them as
// unknown rather than zero.
func (p *Provider) handleCreateCustomFood(ctx context.Context, args map[string]interface{}) (*api.CallToolResult, error) {
	foodName, ok := stringArg(args, "food_name")
	if !ok {
		return errorResult("food_name argument is required"), nil
	}
	servingUnit, ok := stringArg(args, "serving_unit")
	if !ok {
		return errorResult("serving_unit argument is required"), nil
	}
	numberOfUnits, ok := requiredFloatArg(args, "number_of_units")
	if !ok {
		return errorResult("number_of_units argument is required"), nil
	}
	calories, ok := requiredFloatArg(args, "calories")
	if !ok {
		return errorResult("calories argument is required"), nil
	}

	created, err := p.client.CreateCustomFood(ctx, garmin.CustomFoodRequest{
		FoodName:      foodName,
		ServingUnit:   servingUnit,
		NumberOfUnits: numberOfUnits,
		Calories:      calories,
		Protein:       optionalFloatArg(args, "protein"),
		Fat:           optionalFloatArg(args, "fat"),
		Carbs:         optionalFloatArg(args, "carbs"),
		Fiber:         optionalFloatArg(args, "fiber"),
		Sugar:         optionalFloatArg(args, "sugar"),
	})
	if err != nil {
		return errorResult(fmt.Sprintf("Error creating custom food: %v", err)), nil
	}

	return jsonResult(curateFood(*created)), nil
}

// handleDeleteCustomFood handles the delete_custom_food tool.
func (p *Provider) handleDeleteCustomFood(ctx context.Context, args map[string]interface{}) (*api.CallToolResult, error) {
	foodID, ok := idArg(args, "food_id")
	if !ok {
		return errorResult("food_id argument is required"), nil
	}

	if err := p.client.DeleteCustomFood(ctx, foodID); err != nil {
		return errorResult(fmt.Sprintf("Error deleting custom food: %v", err)), nil
	}

	return jsonResult(FoodStatusRecord{Status: "success", FoodID: foodID}), nil
}

// handleListCustomMeals handles the list_custom_meals tool.
func (p *Provider) handleListCustomMeals(ctx context.Context, args map[string]interface{}) (*api.CallToolResult, error) {
	query := optionalStringArg(args, "query")
	start := intArg(args, "start", 0)
	limit := intArg(args, "limit", 20)

	meals, err := p.client.CustomMeals(ctx, query, start, limit)
	if err != nil {
		return errorResult(fmt.Sprintf("Error listing custom meals: %v", err)), nil
	}

	return jsonResult(CustomMealsRecord{
		CustomMeals: curateFoods(meals.CustomMeals),
		HasMore:     meals.HasMore,
	}), nil
}

// handleCreateCustomMeal handles the create_custom_meal tool. The food
// list arrives either as a JSON array value or as a JSON string; parse
// failures are reported without calling the service.
func (p *Provider) handleCreateCustomMeal(ctx context.Context, args map[string]interface{}) (*api.CallToolResult, error) {
	name, ok := stringArg(args, "name")
	if !ok {
		return errorResult("name argument is required"), nil
	}

	var foods []interface{}
	switch value := args["foods_json"].(type) {
	case []interface{}:
		foods = value
	case string:
		var parsed interface{}
		if err := json.Unmarshal([]byte(value), &parsed); err != nil {
			return errorResult("Error: foods_json is not valid JSON"), nil
		}
		list, ok := parsed.([]interface{})
		if !ok {
			return errorResult("Error: foods_json must be a JSON array"), nil
		}
		foods = list
	default:
		return errorResult("foods_json argument is required"), nil
	}

	created, err := p.client.CreateCustomMeal(ctx, name, foods)
	if err != nil {
		return errorResult(fmt.Sprintf("Error creating custom meal: %v", err)), nil
	}

	return jsonResult(curateCustomMeal(created)), nil
}

// jsonResult serializes a curated record as an indented JSON text result.
func jsonResult(v interface{}) *api.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult(fmt.Sprintf("Failed to encode response: %v", err))
	}
	return textResult(string(data))
}

// textResult creates a successful text result.
func textResult(text string) *api.CallToolResult {
	return &api.CallToolResult{
		Content: []interface{}{text},
		IsError: false,
	}
}

// errorResult creates an error result.
func errorResult(message string) *api.CallToolResult {
	return &api.CallToolResult{
		Content: []interface{}{message},
		IsError: true,
	}
}
