package nutrition

import (
	"macrolog/internal/garmin"
)

// curateServing extracts the serving fields of a nutrition content block.
// A nil block curates to an empty record.
func curateServing(nc *garmin.NutritionContent) ServingRecord {
	if nc == nil {
		return ServingRecord{}
	}
	return ServingRecord{
		ServingID:     nc.ServingID,
		ServingUnit:   nc.ServingUnit,
		NumberOfUnits: nc.NumberOfUnits,
		Calories:      nc.Calories,
		Protein:       nc.Protein,
		Fat:           nc.Fat,
		Carbs:         nc.Carbs,
		Fiber:         nc.Fiber,
		Sugar:         nc.Sugar,
	}
}

// curateFood extracts identity fields, serving sizes, and the favorite flag
// from a food database entry. Servings keep their source order and appear
// only when the entry has any.
func curateFood(item garmin.FoodItem) FoodRecord {
	var record FoodRecord
	if meta := item.FoodMetaData; meta != nil {
		record.FoodID = meta.FoodID
		record.FoodName = meta.FoodName
		record.BrandName = meta.BrandName
		record.Source = meta.Source
	}
	if len(item.NutritionContents) > 0 {
		servings := make([]ServingRecord, 0, len(item.NutritionContents))
		for i := range item.NutritionContents {
			servings = append(servings, curateServing(&item.NutritionContents[i]))
		}
		record.Servings = servings
	}
	record.IsFavorite = item.IsFavorite
	return record
}

// curateFoods curates a food list, preserving order. The result is never
// nil so list envelopes serialize as [] rather than null.
func curateFoods(items []garmin.FoodItem) []FoodRecord {
	records := make([]FoodRecord, 0, len(items))
	for _, item := range items {
		records = append(records, curateFood(item))
	}
	return records
}

// curateLoggedFood extracts a single logged entry of a daily log.
func curateLoggedFood(lf garmin.LoggedFood) LoggedFoodRecord {
	var record LoggedFoodRecord
	if lf.LogID != nil {
		record.LogID = *lf.LogID
	}
	if meta := lf.FoodMetaData; meta != nil {
		record.FoodID = meta.FoodID
		record.FoodName = meta.FoodName
		record.BrandName = meta.BrandName
		record.Source = meta.Source
	}
	record.ServingQty = lf.ServingQty
	if lf.SelectedNutritionContent != nil {
		nutrition := curateServing(lf.SelectedNutritionContent)
		record.Nutrition = &nutrition
	}
	return record
}

// curateMacros extracts the calories/protein/fat/carbs goal block. A nil
// block curates to an empty record.
func curateMacros(mb *garmin.MacroBlock) MacroRecord {
	if mb == nil {
		return MacroRecord{}
	}
	return MacroRecord{
		Calories: mb.Calories,
		Protein:  mb.Protein,
		Fat:      mb.Fat,
		Carbs:    mb.Carbs,
	}
}

// curateDailyLog transforms a raw daily food log into the curated
// meal-by-meal response. Meals keep the service's order; per-meal totals
// and foods appear only when present in the source.
func curateDailyLog(log *garmin.DailyFoodLog) NutritionLogRecord {
	record := NutritionLogRecord{
		Date:        log.MealDate,
		DailyGoals:  curateMacros(log.DailyNutritionGoals),
		DailyTotals: curateMacros(log.DailyNutritionContent),
		Meals:       make([]MealRecord, 0, len(log.MealDetails)),
	}

	for _, detail := range log.MealDetails {
		meal := MealRecord{
			MealName: detail.Meal.MealName,
			MealID:   detail.Meal.MealID,
		}
		if detail.MealNutritionContent != nil {
			totals := curateServing(detail.MealNutritionContent)
			meal.Totals = &totals
		}
		if len(detail.LoggedFoods) > 0 {
			foods := make([]LoggedFoodRecord, 0, len(detail.LoggedFoods))
			for _, lf := range detail.LoggedFoods {
				foods = append(foods, curateLoggedFood(lf))
			}
			meal.Foods = foods
		}
		record.Meals = append(record.Meals, meal)
	}

	return record
}

// curateSummary reduces a daily log to totals vs goals, with no meal
// breakdown.
func curateSummary(log *garmin.DailyFoodLog) SummaryRecord {
	return SummaryRecord{
		Date:   log.MealDate,
		Totals: curateMacros(log.DailyNutritionContent),
		Goals:  curateMacros(log.DailyNutritionGoals),
	}
}

// curateSettings extracts goals and locale fields from nutrition settings.
// Weights keep the service's gram units; the field names say so because the
// source names do not.
func curateSettings(s *garmin.Settings) SettingsRecord {
	record := SettingsRecord{
		CalorieGoal:           s.CalorieGoal,
		WeightChangeType:      s.WeightChangeType,
		AutoCalorieAdjustment: s.AutoCalorieAdjustment,
		RegionCode:            s.RegionCode,
		LanguageCode:          s.LanguageCode,
		StartingWeightGrams:   s.StartingWeight,
		TargetWeightGoalGrams: s.TargetWeightGoal,
		TargetDate:            s.TargetDate,
	}
	if mg := s.MacroGoals; mg != nil {
		record.MacroGoals = &MacroGoalsRecord{
			Calories: mg.Calories,
			Protein:  mg.Protein,
			Fat:      mg.Fat,
			Carbs:    mg.Carbs,
		}
	}
	return record
}

// curateCustomMeal shapes a created custom meal into its response record.
func curateCustomMeal(detail *garmin.CustomMealDetail) CustomMealRecord {
	record := CustomMealRecord{
		CustomMealID: detail.CustomMealID,
		Name:         detail.Name,
		FoodCount:    len(detail.Foods),
	}
	if detail.ContentSummary != nil {
		totals := curateServing(detail.ContentSummary)
		record.Totals = &totals
	}
	return record
}
