package nutrition

import (
	"encoding/json"
	"testing"

	"macrolog/internal/garmin"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

func floatPtr(f float64) *float64 {
	return &f
}

func boolPtr(b bool) *bool {
	return &b
}

// testMeals returns the meal definitions used across the package tests.
func testMeals() []garmin.Meal {
	return []garmin.Meal{
		{MealID: 645041, MealName: "Breakfast", DisplayOrder: 0, StartTime: strPtr("06:00"), EndTime: strPtr("10:00")},
		{MealID: 645042, MealName: "Lunch", DisplayOrder: 1, StartTime: strPtr("11:00"), EndTime: strPtr("14:00")},
		{MealID: 645043, MealName: "Dinner", DisplayOrder: 2, StartTime: strPtr("17:00"), EndTime: strPtr("21:00")},
		{MealID: 645044, MealName: "Snacks", DisplayOrder: 3},
	}
}

// testDailyLog returns a daily log with one logged breakfast entry and an
// empty lunch, mirroring what the nutrition service returns for a
// partially logged day.
func testDailyLog() *garmin.DailyFoodLog {
	return &garmin.DailyFoodLog{
		MealDate:              strPtr("2025-01-15"),
		DailyNutritionGoals:   &garmin.MacroBlock{Calories: floatPtr(2500), Protein: floatPtr(150), Fat: floatPtr(80), Carbs: floatPtr(300)},
		DailyNutritionContent: &garmin.MacroBlock{Calories: floatPtr(105), Protein: floatPtr(1.3), Fat: floatPtr(0.4), Carbs: floatPtr(27)},
		MealDetails: []garmin.MealDetail{
			{
				Meal:                 garmin.Meal{MealID: 645041, MealName: "Breakfast"},
				MealNutritionContent: &garmin.NutritionContent{Calories: floatPtr(105), Protein: floatPtr(1.3), Fat: floatPtr(0.4), Carbs: floatPtr(27)},
				LoggedFoods: []garmin.LoggedFood{
					{
						LogID:      strPtr("abc123"),
						ServingQty: floatPtr(1),
						FoodMetaData: &garmin.FoodMetaData{
							FoodID:   strPtr("food-1"),
							FoodName: strPtr("Banana"),
							Source:   strPtr("GARMIN"),
						},
						SelectedNutritionContent: &garmin.NutritionContent{
							ServingUnit:   strPtr("medium"),
							NumberOfUnits: floatPtr(1),
							Calories:      floatPtr(105),
							Protein:       floatPtr(1.3),
						},
					},
				},
			},
			{
				Meal: garmin.Meal{MealID: 645042, MealName: "Lunch"},
			},
		},
	}
}

// testFoodItem returns a search-style food with two servings.
func testFoodItem() garmin.FoodItem {
	return garmin.FoodItem{
		FoodMetaData: &garmin.FoodMetaData{
			FoodID:    strPtr("food-1"),
			FoodName:  strPtr("Banana"),
			FoodType:  strPtr("GENERIC"),
			BrandName: nil,
			Source:    strPtr("GARMIN"),
		},
		NutritionContents: []garmin.NutritionContent{
			{
				ServingID:     strPtr("serving-1"),
				ServingUnit:   strPtr("medium"),
				NumberOfUnits: floatPtr(1),
				Calories:      floatPtr(105),
				Protein:       floatPtr(1.3),
				Fat:           floatPtr(0.4),
				Carbs:         floatPtr(27),
				Fiber:         floatPtr(3.1),
			},
			{
				ServingID:     strPtr("serving-2"),
				ServingUnit:   strPtr("g"),
				NumberOfUnits: floatPtr(100),
				Calories:      floatPtr(89),
			},
		},
		IsFavorite: boolPtr(true),
	}
}

func TestCurateFood(t *testing.T) {
	record := curateFood(testFoodItem())

	require.NotNil(t, record.FoodID)
	assert.Equal(t, "food-1", *record.FoodID)
	require.NotNil(t, record.FoodName)
	assert.Equal(t, "Banana", *record.FoodName)
	assert.Nil(t, record.BrandName)
	require.NotNil(t, record.IsFavorite)
	assert.True(t, *record.IsFavorite)
	require.Len(t, record.Servings, 2)
	assert.Equal(t, "serving-1", *record.Servings[0].ServingID)
	assert.Equal(t, "serving-2", *record.Servings[1].ServingID)

	data, err := json.Marshal(record)
	require.NoError(t, err)

	// Unset fields are dropped, not rendered as null, and fields outside
	// the curated set never appear.
	assert.NotContains(t, string(data), "brand_name")
	assert.NotContains(t, string(data), "food_type")
	assert.NotContains(t, string(data), "null")
	assert.Contains(t, string(data), `"serving_unit":"medium"`)
}

func TestCurateFood_NoServings(t *testing.T) {
	record := curateFood(garmin.FoodItem{
		FoodMetaData: &garmin.FoodMetaData{FoodID: strPtr("food-2"), FoodName: strPtr("Mystery")},
	})

	data, err := json.Marshal(record)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "servings")
	assert.NotContains(t, string(data), "is_favorite")
}

func TestCurateFoods(t *testing.T) {
	t.Run("preserves order", func(t *testing.T) {
		items := []garmin.FoodItem{
			{FoodMetaData: &garmin.FoodMetaData{FoodName: strPtr("Alpha")}},
			{FoodMetaData: &garmin.FoodMetaData{FoodName: strPtr("Beta")}},
			{FoodMetaData: &garmin.FoodMetaData{FoodName: strPtr("Gamma")}},
		}

		records := curateFoods(items)
		require.Len(t, records, 3)
		assert.Equal(t, "Alpha", *records[0].FoodName)
		assert.Equal(t, "Beta", *records[1].FoodName)
		assert.Equal(t, "Gamma", *records[2].FoodName)
	})

	t.Run("nil input yields empty list", func(t *testing.T) {
		records := curateFoods(nil)
		require.NotNil(t, records)

		data, err := json.Marshal(records)
		require.NoError(t, err)
		assert.Equal(t, "[]", string(data))
	})
}

func TestCurateDailyLog(t *testing.T) {
	record := curateDailyLog(testDailyLog())

	require.NotNil(t, record.Date)
	assert.Equal(t, "2025-01-15", *record.Date)
	assert.Equal(t, float64(2500), *record.DailyGoals.Calories)
	assert.Equal(t, float64(105), *record.DailyTotals.Calories)
	require.Len(t, record.Meals, 2)

	breakfast := record.Meals[0]
	assert.Equal(t, "Breakfast", breakfast.MealName)
	assert.Equal(t, 645041, breakfast.MealID)
	require.NotNil(t, breakfast.Totals)
	require.Len(t, breakfast.Foods, 1)
	assert.Equal(t, "abc123", breakfast.Foods[0].LogID)
	assert.Equal(t, "Banana", *breakfast.Foods[0].FoodName)
	require.NotNil(t, breakfast.Foods[0].Nutrition)
	assert.Equal(t, float64(105), *breakfast.Foods[0].Nutrition.Calories)

	data, err := json.Marshal(record)
	require.NoError(t, err)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &parsed))
	meals := parsed["meals"].([]interface{})
	require.Len(t, meals, 2)

	// The empty lunch keeps its identity but carries no totals or foods
	// keys at all.
	lunch := meals[1].(map[string]interface{})
	assert.Equal(t, "Lunch", lunch["meal_name"])
	_, hasTotals := lunch["totals"]
	assert.False(t, hasTotals)
	_, hasFoods := lunch["foods"]
	assert.False(t, hasFoods)

	// The logged breakfast entry had no brand name, so the key is absent.
	foods := meals[0].(map[string]interface{})["foods"].([]interface{})
	_, hasBrand := foods[0].(map[string]interface{})["brand_name"]
	assert.False(t, hasBrand)
}

func TestCurateDailyLog_Empty(t *testing.T) {
	record := curateDailyLog(&garmin.DailyFoodLog{})

	data, err := json.Marshal(record)
	require.NoError(t, err)

	// Goals, totals, and meals are always present so a caller can rely on
	// the envelope shape, but an unknown date is dropped entirely.
	assert.Contains(t, string(data), `"daily_goals":{}`)
	assert.Contains(t, string(data), `"daily_totals":{}`)
	assert.Contains(t, string(data), `"meals":[]`)
	assert.NotContains(t, string(data), `"date"`)
}

func TestCurateDailyLog_FieldOrder(t *testing.T) {
	log := &garmin.DailyFoodLog{
		MealDate:    strPtr("2025-01-15"),
		MealDetails: []garmin.MealDetail{{Meal: garmin.Meal{MealID: 645041, MealName: "Breakfast"}}},
	}

	data, err := json.Marshal(curateDailyLog(log))
	require.NoError(t, err)
	assert.Equal(t,
		`{"date":"2025-01-15","daily_goals":{},"daily_totals":{},"meals":[{"meal_name":"Breakfast","meal_id":645041}]}`,
		string(data))
}

func TestCurateSummary(t *testing.T) {
	record := curateSummary(testDailyLog())

	require.NotNil(t, record.Date)
	assert.Equal(t, "2025-01-15", *record.Date)
	assert.Equal(t, float64(105), *record.Totals.Calories)
	assert.Equal(t, float64(2500), *record.Goals.Calories)
}

func TestCurateSummary_UnknownDate(t *testing.T) {
	record := curateSummary(&garmin.DailyFoodLog{})

	data, err := json.Marshal(record)
	require.NoError(t, err)

	// The summary envelope keeps all three keys even when the service
	// reported nothing, with an explicit null date.
	assert.Equal(t, `{"date":null,"totals":{},"goals":{}}`, string(data))
}

func TestCurateSettings(t *testing.T) {
	settings := &garmin.Settings{
		CalorieGoal:           floatPtr(2500),
		WeightChangeType:      strPtr("MAINTAIN"),
		AutoCalorieAdjustment: boolPtr(false),
		RegionCode:            strPtr("US"),
		LanguageCode:          strPtr("en"),
		StartingWeight:        floatPtr(80000),
		TargetWeightGoal:      floatPtr(78000),
		MacroGoals:            &garmin.MacroBlock{Calories: floatPtr(2500), Protein: floatPtr(150)},
	}

	record := curateSettings(settings)
	assert.Equal(t, float64(2500), *record.CalorieGoal)
	assert.Equal(t, "MAINTAIN", *record.WeightChangeType)
	assert.False(t, *record.AutoCalorieAdjustment)
	assert.Equal(t, float64(80000), *record.StartingWeightGrams)

	data, err := json.Marshal(record)
	require.NoError(t, err)

	// No target date was configured, so the key is absent. Inside
	// macro_goals, unset targets stay visible as nulls.
	assert.NotContains(t, string(data), "target_date")
	assert.Contains(t, string(data), `"starting_weight_grams":80000`)
	assert.Contains(t, string(data), `"macro_goals":{"calories":2500,"protein":150,"fat":null,"carbs":null}`)
}

func TestCurateSettings_NoMacroGoals(t *testing.T) {
	record := curateSettings(&garmin.Settings{CalorieGoal: floatPtr(2000)})

	data, err := json.Marshal(record)
	require.NoError(t, err)
	assert.Equal(t, `{"calorie_goal":2000}`, string(data))
}

func TestCurateLoggedFood_NoLogID(t *testing.T) {
	record := curateLoggedFood(garmin.LoggedFood{
		FoodMetaData: &garmin.FoodMetaData{FoodName: strPtr("Toast")},
	})

	data, err := json.Marshal(record)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "log_id")
	assert.NotContains(t, string(data), "nutrition")
}

func TestCurateCustomMeal(t *testing.T) {
	detail := &garmin.CustomMealDetail{
		CustomMealID: 98765,
		Name:         "Protein Shake",
		Foods: []garmin.FoodItem{
			{FoodMetaData: &garmin.FoodMetaData{FoodName: strPtr("Whey")}},
			{FoodMetaData: &garmin.FoodMetaData{FoodName: strPtr("Milk")}},
		},
		ContentSummary: &garmin.NutritionContent{Calories: floatPtr(320), Protein: floatPtr(40)},
	}

	record := curateCustomMeal(detail)
	assert.Equal(t, 98765, record.CustomMealID)
	assert.Equal(t, "Protein Shake", record.Name)
	assert.Equal(t, 2, record.FoodCount)
	require.NotNil(t, record.Totals)
	assert.Equal(t, float64(320), *record.Totals.Calories)
}

func TestCurateCustomMeal_NoSummary(t *testing.T) {
	record := curateCustomMeal(&garmin.CustomMealDetail{CustomMealID: 1, Name: "Empty"})

	data, err := json.Marshal(record)
	require.NoError(t, err)
	assert.Equal(t, `{"custom_meal_id":1,"name":"Empty","food_count":0}`, string(data))
}

func TestCurateMacros_Nil(t *testing.T) {
	record := curateMacros(nil)

	data, err := json.Marshal(record)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}
