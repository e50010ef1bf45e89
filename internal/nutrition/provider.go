package nutrition

import (
	"macrolog/internal/api"
)

// Provider implements api.ToolProvider for the nutrition tools. Every
// tool wires caller arguments to one Connect client call and curates the
// response; the provider itself holds no mutable state, so it is safe to
// use concurrently.
type Provider struct {
	client API
}

// NewProvider creates a nutrition tool provider backed by the given
// Connect client.
func NewProvider(client API) *Provider {
	return &Provider{client: client}
}

// GetTools returns metadata for all nutrition tools. This implements the
// api.ToolProvider interface for tool discovery.
func (p *Provider) GetTools() []api.ToolMetadata {
	return []api.ToolMetadata{
		// Read tools
		{
			Name:        ToolGetNutritionLog,
			Description: "Get full daily nutrition log with all meals and logged foods. Use get_nutrition_summary for a lightweight totals-only view",
			Args: []api.ArgMetadata{
				{
					Name:        "date",
					Type:        "string",
					Required:    true,
					Description: "Date in YYYY-MM-DD format",
				},
			},
		},
		{
			Name:        ToolGetNutritionSummary,
			Description: "Get lightweight daily nutrition totals vs goals. Use get_nutrition_log for the full meal-by-meal breakdown",
			Args: []api.ArgMetadata{
				{
					Name:        "date",
					Type:        "string",
					Required:    true,
					Description: "Date in YYYY-MM-DD format",
				},
			},
		},
		{
			Name:        ToolGetNutritionSettings,
			Description: "Get nutrition goals and settings (calorie target, macro goals, locale)",
			Args: []api.ArgMetadata{
				{
					Name:        "date",
					Type:        "string",
					Required:    false,
					Description: "Optional date in YYYY-MM-DD format (defaults to today)",
				},
			},
		},
		{
			Name:        ToolSearchFoods,
			Description: "Search the Garmin food database by name or brand. Returns food_id and serving_id needed for log_food",
			Args: []api.ArgMetadata{
				{
					Name:        "query",
					Type:        "string",
					Required:    true,
					Description: "Search term (e.g. \"banana\", \"oatmeal\", brand name)",
				},
				{
					Name:        "start",
					Type:        "number",
					Required:    false,
					Description: "Pagination offset (default 0)",
					Default:     0,
				},
				{
					Name:        "limit",
					Type:        "number",
					Required:    false,
					Description: "Max results to return (default 20, max 50)",
					Default:     20,
				},
			},
		},
		{
			Name:        ToolGetRecentFoods,
			Description: "Get recently and frequently logged foods for a specific meal, for quick re-logging without searching",
			Args: []api.ArgMetadata{
				{
					Name:        "meal",
					Type:        "string",
					Required:    true,
					Description: "Meal name (BREAKFAST, LUNCH, DINNER, or SNACKS)",
				},
				{
					Name:        "date",
					Type:        "string",
					Required:    false,
					Description: "Optional date in YYYY-MM-DD format (defaults to today)",
				},
			},
		},
		{
			Name:        ToolListFavoriteFoods,
			Description: "List or search favorite (starred) foods",
			Args: []api.ArgMetadata{
				{
					Name:        "query",
					Type:        "string",
					Required:    false,
					Description: "Optional search filter within favorites",
				},
				{
					Name:        "start",
					Type:        "number",
					Required:    false,
					Description: "Pagination offset (default 0)",
					Default:     0,
				},
				{
					Name:        "limit",
					Type:        "number",
					Required:    false,
					Description: "Max results (default 20, max 50)",
					Default:     20,
				},
			},
		},
		{
			Name:        ToolListCustomFoods,
			Description: "List or search user-created custom foods",
			Args: []api.ArgMetadata{
				{
					Name:        "query",
					Type:        "string",
					Required:    false,
					Description: "Optional search filter",
				},
				{
					Name:        "start",
					Type:        "number",
					Required:    false,
					Description: "Pagination offset (default 0)",
					Default:     0,
				},
				{
					Name:        "limit",
					Type:        "number",
					Required:    false,
					Description: "Max results (default 20)",
					Default:     20,
				},
			},
		},

		// Write tools
		{
			Name:        ToolLogFood,
			Description: "Log a food item to a meal. Use search_foods first to find food_id, serving_id, and source; for quick calorie entry without searching, use quick_add_nutrition",
			Args: []api.ArgMetadata{
				{
					Name:        "date",
					Type:        "string",
					Required:    true,
					Description: "Date in YYYY-MM-DD format",
				},
				{
					Name:        "meal",
					Type:        "string",
					Required:    true,
					Description: "Meal name (BREAKFAST, LUNCH, DINNER, or SNACKS)",
				},
				{
					Name:        "food_id",
					Type:        "string",
					Required:    true,
					Description: "Food ID from search results",
				},
				{
					Name:        "serving_id",
					Type:        "string",
					Required:    true,
					Description: "Serving ID from search results",
				},
				{
					Name:        "source",
					Type:        "string",
					Required:    true,
					Description: "Food source from search results (e.g. FATSECRET, GARMIN)",
				},
				{
					Name:        "serving_qty",
					Type:        "number",
					Required:    false,
					Description: "Number of servings (default 1)",
					Default:     1,
				},
			},
		},
		{
			Name:        ToolQuickAddNutrition,
			Description: "Quick-add a nutrition entry by name and macros without food search. For logging a specific food from the database, use log_food",
			Args: []api.ArgMetadata{
				{
					Name:        "date",
					Type:        "string",
					Required:    true,
					Description: "Date in YYYY-MM-DD format",
				},
				{
					Name:        "meal",
					Type:        "string",
					Required:    true,
					Description: "Meal name (BREAKFAST, LUNCH, DINNER, or SNACKS)",
				},
				{
					Name:        "name",
					Type:        "string",
					Required:    true,
					Description: "Display name for the entry",
				},
				{
					Name:        "calories",
					Type:        "number",
					Required:    true,
					Description: "Total calories",
				},
				{
					Name:        "protein",
					Type:        "number",
					Required:    false,
					Description: "Protein in grams (default 0)",
					Default:     0,
				},
				{
					Name:        "fat",
					Type:        "number",
					Required:    false,
					Description: "Fat in grams (default 0)",
					Default:     0,
				},
				{
					Name:        "carbs",
					Type:        "number",
					Required:    false,
					Description: "Carbohydrates in grams (default 0)",
					Default:     0,
				},
			},
		},
		{
			Name:        ToolUpdateFoodLog,
			Description: "Update an existing food log entry (e.g. change serving quantity). Get the log_id from get_nutrition_log results",
			Args: []api.ArgMetadata{
				{
					Name:        "date",
					Type:        "string",
					Required:    true,
					Description: "Date in YYYY-MM-DD format",
				},
				{
					Name:        "log_id",
					Type:        "string",
					Required:    true,
					Description: "Log entry ID to update (from get_nutrition_log)",
				},
				{
					Name:        "meal",
					Type:        "string",
					Required:    true,
					Description: "Meal name (BREAKFAST, LUNCH, DINNER, or SNACKS)",
				},
				{
					Name:        "food_id",
					Type:        "string",
					Required:    true,
					Description: "Food ID",
				},
				{
					Name:        "serving_id",
					Type:        "string",
					Required:    true,
					Description: "Serving ID",
				},
				{
					Name:        "source",
					Type:        "string",
					Required:    true,
					Description: "Food source (e.g. FATSECRET, GARMIN)",
				},
				{
					Name:        "serving_qty",
					Type:        "number",
					Required:    false,
					Description: "New number of servings (default 1)",
					Default:     1,
				},
			},
		},
		{
			Name:        ToolRemoveFoodLog,
			Description: "Remove one or more food entries from a day's log. Get log_ids from get_nutrition_log results",
			Args: []api.ArgMetadata{
				{
					Name:        "date",
					Type:        "string",
					Required:    true,
					Description: "Date in YYYY-MM-DD format",
				},
				{
					Name:        "log_ids",
					Type:        "string",
					Required:    true,
					Description: "Comma-separated log entry IDs to remove",
				},
			},
		},
		{
			Name:        ToolAddFavoriteFood,
			Description: "Add a food to favorites for quick access. Get IDs from search_foods",
			Args: []api.ArgMetadata{
				{
					Name:        "food_id",
					Type:        "string",
					Required:    true,
					Description: "Food ID from search results",
				},
				{
					Name:        "serving_id",
					Type:        "string",
					Required:    true,
					Description: "Serving ID from search results",
				},
				{
					Name:        "source",
					Type:        "string",
					Required:    true,
					Description: "Food source (e.g. FATSECRET, GARMIN)",
				},
				{
					Name:        "serving_qty",
					Type:        "number",
					Required:    false,
					Description: "Serving quantity (default 1)",
					Default:     1,
				},
			},
		},
		{
			Name:        ToolRemoveFavoriteFood,
			Description: "Remove a food from favorites",
			Args: []api.ArgMetadata{
				{
					Name:        "food_id",
					Type:        "string",
					Required:    true,
					Description: "Food ID to unfavorite",
				},
			},
		},
		{
			Name:        ToolCreateCustomFood,
			Description: "Create a custom food with nutrition info per serving",
			Args: []api.ArgMetadata{
				{
					Name:        "food_name",
					Type:        "string",
					Required:    true,
					Description: "Name for the custom food",
				},
				{
					Name:        "serving_unit",
					Type:        "string",
					Required:    true,
					Description: "Unit name (e.g. \"g\", \"piece\", \"cup\", \"serving\")",
				},
				{
					Name:        "number_of_units",
					Type:        "number",
					Required:    true,
					Description: "How many units make one serving",
				},
				{
					Name:        "calories",
					Type:        "number",
					Required:    true,
					Description: "Calories per serving",
				},
				{
					Name:        "protein",
					Type:        "number",
					Required:    false,
					Description: "Protein grams per serving",
				},
				{
					Name:        "fat",
					Type:        "number",
					Required:    false,
					Description: "Fat grams per serving",
				},
				{
					Name:        "carbs",
					Type:        "number",
					Required:    false,
					Description: "Carbohydrate grams per serving",
				},
				{
					Name:        "fiber",
					Type:        "number",
					Required:    false,
					Description: "Fiber grams per serving",
				},
				{
					Name:        "sugar",
					Type:        "number",
					Required:    false,
					Description: "Sugar grams per serving",
				},
			},
		},
		{
			Name:        ToolDeleteCustomFood,
			Description: "Delete a user-created custom food",
			Args: []api.ArgMetadata{
				{
					Name:        "food_id",
					Type:        "string",
					Required:    true,
					Description: "Custom food ID to delete (from list_custom_foods)",
				},
			},
		},

		// Custom meal tools
		{
			Name:        ToolListCustomMeals,
			Description: "List or search user-created custom meals (saved food combinations)",
			Args: []api.ArgMetadata{
				{
					Name:        "query",
					Type:        "string",
					Required:    false,
					Description: "Optional search filter",
				},
				{
					Name:        "start",
					Type:        "number",
					Required:    false,
					Description: "Pagination offset (default 0)",
					Default:     0,
				},
				{
					Name:        "limit",
					Type:        "number",
					Required:    false,
					Description: "Max results (default 20)",
					Default:     20,
				},
			},
		},
		{
			Name:        ToolCreateCustomMeal,
			Description: "Create a custom meal from a list of foods. The foods_json is a JSON array of food items in Garmin's camelCase API format (foodId, servingId, source, servingQty)",
			Args: []api.ArgMetadata{
				{
					Name:        "name",
					Type:        "string",
					Required:    true,
					Description: "Name for the custom meal",
				},
				{
					Name:        "foods_json",
					Type:        "string",
					Required:    true,
					Description: "JSON array of food items with their serving details",
				},
			},
		},
	}
}
