package garmin

// Wire types for the Garmin Connect nutrition API. Field names follow the
// camelCase JSON the Connect endpoints produce. Optional fields are pointers
// so that absent and null values stay distinguishable from zero values.

// Meal is one entry in the user's meal definition list.
type Meal struct {
	MealID       int     `json:"mealId"`
	MealName     string  `json:"mealName"`
	DisplayOrder int     `json:"displayOrder"`
	StartTime    *string `json:"startTime,omitempty"`
	EndTime      *string `json:"endTime,omitempty"`
}

// NutritionContent describes the nutrient content of a single serving.
type NutritionContent struct {
	ServingID     *string  `json:"servingId,omitempty"`
	ServingUnit   *string  `json:"servingUnit,omitempty"`
	NumberOfUnits *float64 `json:"numberOfUnits,omitempty"`
	Calories      *float64 `json:"calories,omitempty"`
	Protein       *float64 `json:"protein,omitempty"`
	Fat           *float64 `json:"fat,omitempty"`
	Carbs         *float64 `json:"carbs,omitempty"`
	Fiber         *float64 `json:"fiber,omitempty"`
	Sugar         *float64 `json:"sugar,omitempty"`
}

// FoodMetaData identifies a food in one of the Connect food databases.
type FoodMetaData struct {
	FoodID    *string `json:"foodId,omitempty"`
	FoodName  *string `json:"foodName,omitempty"`
	FoodType  *string `json:"foodType,omitempty"`
	BrandName *string `json:"brandName,omitempty"`
	Source    *string `json:"source,omitempty"`
}

// FoodItem is a food with its available servings, as returned by search,
// favorites, custom food, and custom meal listings.
type FoodItem struct {
	FoodMetaData      *FoodMetaData      `json:"foodMetaData,omitempty"`
	NutritionContents []NutritionContent `json:"nutritionContents,omitempty"`
	FoodImages        []interface{}      `json:"foodImages,omitempty"`
	IsFavorite        *bool              `json:"isFavorite,omitempty"`
}

// MacroBlock carries the calorie and macro aggregate the nutrition service
// reports for goals, daily totals, and settings macro goals.
type MacroBlock struct {
	Calories *float64 `json:"calories,omitempty"`
	Protein  *float64 `json:"protein,omitempty"`
	Fat      *float64 `json:"fat,omitempty"`
	Carbs    *float64 `json:"carbs,omitempty"`
}

// LoggedFood is a single logged entry inside a meal of the daily food log.
type LoggedFood struct {
	LogID                    *string           `json:"logId,omitempty"`
	LogTimestamp             *string           `json:"logTimestamp,omitempty"`
	ServingQty               *float64          `json:"servingQty,omitempty"`
	FoodMetaData             *FoodMetaData     `json:"foodMetaData,omitempty"`
	SelectedNutritionContent *NutritionContent `json:"selectedNutritionContent,omitempty"`
}

// MealDetail groups the logged foods and nutrition totals of one meal.
type MealDetail struct {
	Meal                 Meal              `json:"meal"`
	MealNutritionContent *NutritionContent `json:"mealNutritionContent,omitempty"`
	LoggedFoods          []LoggedFood      `json:"loggedFoods,omitempty"`
}

// DailyFoodLog is the full nutrition log of a single day.
type DailyFoodLog struct {
	MealDate                    *string       `json:"mealDate,omitempty"`
	DayStartTime                *string       `json:"dayStartTime,omitempty"`
	DayEndTime                  *string       `json:"dayEndTime,omitempty"`
	DailyNutritionGoals         *MacroBlock   `json:"dailyNutritionGoals,omitempty"`
	DailyNutritionContent       *MacroBlock   `json:"dailyNutritionContent,omitempty"`
	MealDetails                 []MealDetail  `json:"mealDetails,omitempty"`
	LoggedFoodsWithServingSizes []interface{} `json:"loggedFoodsWithServingSizes,omitempty"`
}

// Settings holds the user's nutrition goals and locale settings.
type Settings struct {
	CalorieGoal           *float64    `json:"calorieGoal,omitempty"`
	WeightChangeType      *string     `json:"weightChangeType,omitempty"`
	AutoCalorieAdjustment *bool       `json:"autoCalorieAdjustment,omitempty"`
	RegionCode            *string     `json:"regionCode,omitempty"`
	LanguageCode          *string     `json:"languageCode,omitempty"`
	StartingWeight        *float64    `json:"startingWeight,omitempty"`
	TargetWeightGoal      *float64    `json:"targetWeightGoal,omitempty"`
	TargetDate            *string     `json:"targetDate,omitempty"`
	MacroGoals            *MacroBlock `json:"macroGoals,omitempty"`
}

// SearchResults is the envelope of a food database search.
type SearchResults struct {
	Results           []FoodItem `json:"results"`
	MoreDataAvailable *bool      `json:"moreDataAvailable,omitempty"`
}

// RecentFoods holds the frequently and recently logged foods of a meal.
type RecentFoods struct {
	FrequentFoods []FoodItem `json:"frequentFoods"`
	RecentFoods   []FoodItem `json:"recentFoods"`
}

// FavoriteFoodList is the envelope of the favorites listing. The service
// reports pagination as hasMore here, unlike search results.
type FavoriteFoodList struct {
	Consumables []FoodItem `json:"consumables"`
	HasMore     *bool      `json:"hasMore,omitempty"`
}

// CustomFoodList is the envelope of the custom food listing.
type CustomFoodList struct {
	CustomFoods       []FoodItem `json:"customFoods"`
	MoreDataAvailable *bool      `json:"moreDataAvailable,omitempty"`
}

// CustomMealList is the envelope of the custom meal listing. Custom meals
// share the food item shape in listings.
type CustomMealList struct {
	CustomMeals []FoodItem `json:"customMeals"`
	HasMore     *bool      `json:"hasMore,omitempty"`
}

// CustomMealDetail is the detailed representation returned when a custom
// meal is created.
type CustomMealDetail struct {
	CustomMealID   int               `json:"customMealId"`
	Name           string            `json:"name"`
	IsFavorite     *bool             `json:"isFavorite,omitempty"`
	Status         *int              `json:"status,omitempty"`
	Type           *string           `json:"type,omitempty"`
	Foods          []FoodItem        `json:"foods,omitempty"`
	ContentSummary *NutritionContent `json:"contentSummary,omitempty"`
}

// FoodLogEntry is the request payload for adding or updating a food log
// entry. LogID is only set for updates.
type FoodLogEntry struct {
	Day        string  `json:"mealDate"`
	LogID      string  `json:"logId,omitempty"`
	MealID     int     `json:"mealId"`
	FoodID     string  `json:"foodId"`
	ServingID  string  `json:"servingId"`
	Source     string  `json:"source"`
	ServingQty float64 `json:"servingQty"`
}

// QuickAddEntry is the request payload for a quick calorie/macro entry
// that bypasses the food database.
type QuickAddEntry struct {
	Day      string  `json:"mealDate"`
	MealID   int     `json:"mealId"`
	Name     string  `json:"foodName"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
	Carbs    float64 `json:"carbs"`
}

// FavoriteRequest is the request payload for starring a food.
type FavoriteRequest struct {
	FoodID     string  `json:"foodId"`
	ServingID  string  `json:"servingId"`
	Source     string  `json:"source"`
	ServingQty float64 `json:"servingQty"`
}

// CustomFoodRequest is the request payload for creating a custom food.
// Optional macros stay off the wire when unset.
type CustomFoodRequest struct {
	FoodName      string   `json:"foodName"`
	ServingUnit   string   `json:"servingUnit"`
	NumberOfUnits float64  `json:"numberOfUnits"`
	Calories      float64  `json:"calories"`
	Protein       *float64 `json:"protein,omitempty"`
	Fat           *float64 `json:"fat,omitempty"`
	Carbs         *float64 `json:"carbs,omitempty"`
	Fiber         *float64 `json:"fiber,omitempty"`
	Sugar         *float64 `json:"sugar,omitempty"`
}
