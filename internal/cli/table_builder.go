package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// TableBuilder handles cell formatting for table display. It provides
// specialized formatting for the value types that appear in nutrition
// records, such as macro amounts, serving quantities, goal weights, and
// per-meal food lists. The builder keeps cells compact and plain so table
// output stays pipeable.
type TableBuilder struct{}

// NewTableBuilder creates a new table builder instance.
// The builder is stateless and can be reused for multiple formatting operations.
func NewTableBuilder() *TableBuilder {
	return &TableBuilder{}
}

// FormatCellValuePlain formats individual cell values as plain text without ANSI styling.
// This is used for kubectl-style table output where we don't want color codes.
//
// Args:
//   - column: The column name to determine formatting rules
//   - value: The raw value to format
//
// Returns:
//   - string: Formatted value as plain text
func (b *TableBuilder) FormatCellValuePlain(column string, value interface{}) string {
	if value == nil {
		return "-"
	}

	strValue := fmt.Sprintf("%v", value)
	colLower := strings.ToLower(column)

	switch colLower {
	case "food_name", "meal_name", "name", "brand_name", "query", "meal":
		return strValue
	case "food_id", "log_id", "meal_id", "serving_id", "custom_meal_id", "id":
		return strValue
	case "status":
		// Return "-" for empty status values
		if strValue == "" {
			return "-"
		}
		return strValue
	case "calories", "calorie_goal":
		return b.formatCaloriesPlain(value)
	case "protein", "fat", "carbs", "fiber", "sugar":
		return b.formatGramsPlain(value)
	case "number_of_units", "serving_qty":
		return b.formatQuantityPlain(value)
	case "is_favorite", "has_more", "auto_calorie_adjustment", "exact_only":
		return b.formatYesNoPlain(value)
	case "date", "target_date":
		return b.formatTimestampPlain(strValue)
	case "starting_weight_grams", "target_weight_goal_grams":
		return b.formatWeightPlain(value)
	case "servings":
		return b.formatItemCountPlain(value, "serving")
	case "foods", "frequent_foods", "recent_foods":
		return b.formatItemCountPlain(value, "food")
	case "meals", "custom_meals":
		return b.formatItemCountPlain(value, "meal")
	case "results", "favorites", "custom_foods":
		return b.formatItemCountPlain(value, "item")
	case "totals", "daily_totals", "daily_goals", "goals", "macro_goals", "nutrition":
		return b.formatMacroSummaryPlain(value)
	case "description":
		return b.formatDescriptionPlain(strValue)
	case "source", "serving_unit", "weight_change_type", "region_code", "language_code":
		// Short classifier fields, don't truncate
		return strValue
	default:
		if arr, ok := value.([]interface{}); ok {
			return b.formatArrayPlain(arr)
		}
		if obj, ok := value.(map[string]interface{}); ok {
			return b.formatObjectPlain(obj)
		}
		if len(strValue) > 50 {
			return strValue[:47] + "..."
		}
		return strValue
	}
}

// SortDataByName sorts data by the first column (usually a name or id).
// This provides consistent ordering in tables, making it easier for users
// to find specific entries.
//
// Args:
//   - data: Array of data objects to sort
//   - columns: Column names, with the first used for sorting
//
// Returns:
//   - []interface{}: Sorted data array
func (b *TableBuilder) SortDataByName(data []interface{}, columns []string) []interface{} {
	sort.SliceStable(data, func(i, j int) bool {
		iMap, iOk := data[i].(map[string]interface{})
		jMap, jOk := data[j].(map[string]interface{})
		if iOk && jOk {
			if len(columns) > 0 {
				iVal := fmt.Sprintf("%v", iMap[columns[0]])
				jVal := fmt.Sprintf("%v", jMap[columns[0]])
				return strings.ToLower(iVal) < strings.ToLower(jVal)
			}
		}
		return false
	})
	return data
}

// normalizeTimestamp simplifies ISO 8601 timestamps by removing fractional
// seconds and timezone information. Plain dates like "2024-03-14" pass
// through unchanged.
func (b *TableBuilder) normalizeTimestamp(timestamp string) string {
	if timestamp == "" || timestamp == "-" {
		return "-"
	}

	if strings.Contains(timestamp, "T") {
		parts := strings.Split(timestamp, "T")
		if len(parts) == 2 {
			timePart := parts[1]
			if dotIndex := strings.Index(timePart, "."); dotIndex != -1 {
				timePart = timePart[:dotIndex]
			}
			timePart = strings.TrimSuffix(timePart, "Z")
			return parts[0] + " " + timePart
		}
	}

	return timestamp
}

// asFloat attempts to convert a cell value to a float64.
func (b *TableBuilder) asFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

// Plain text formatting methods for kubectl-style output

// formatCaloriesPlain formats calorie values, dropping the decimal part for
// whole numbers.
func (b *TableBuilder) formatCaloriesPlain(value interface{}) string {
	f, ok := b.asFloat(value)
	if !ok {
		return fmt.Sprintf("%v", value)
	}
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', 1, 64)
}

// formatGramsPlain formats macro amounts with a "g" suffix.
func (b *TableBuilder) formatGramsPlain(value interface{}) string {
	f, ok := b.asFloat(value)
	if !ok {
		return fmt.Sprintf("%v", value)
	}
	if f == float64(int64(f)) {
		return fmt.Sprintf("%dg", int64(f))
	}
	return fmt.Sprintf("%.1fg", f)
}

// formatQuantityPlain formats serving quantities without losing fractional
// precision. "1.25" stays "1.25", "2" stays "2".
func (b *TableBuilder) formatQuantityPlain(value interface{}) string {
	f, ok := b.asFloat(value)
	if !ok {
		return fmt.Sprintf("%v", value)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// formatYesNoPlain renders boolean flags as Yes/No.
func (b *TableBuilder) formatYesNoPlain(value interface{}) string {
	switch v := value.(type) {
	case bool:
		if v {
			return "Yes"
		}
		return "No"
	case string:
		if v == "true" {
			return "Yes"
		}
		return "No"
	default:
		return fmt.Sprintf("%v", value)
	}
}

// formatTimestampPlain formats timestamps and dates as plain text.
func (b *TableBuilder) formatTimestampPlain(timestamp string) string {
	return b.normalizeTimestamp(timestamp)
}

// formatWeightPlain converts gram weights to kilograms for display.
// Garmin stores body weights in grams.
func (b *TableBuilder) formatWeightPlain(value interface{}) string {
	f, ok := b.asFloat(value)
	if !ok || f == 0 {
		return "-"
	}

	kg := f / 1000
	if kg == float64(int64(kg)) {
		return fmt.Sprintf("%d kg", int64(kg))
	}
	return fmt.Sprintf("%.1f kg", kg)
}

// formatItemCountPlain summarizes an array cell as a count with a noun,
// e.g. "3 servings" or "1 food".
func (b *TableBuilder) formatItemCountPlain(value interface{}, noun string) string {
	if value == nil {
		return "-"
	}

	arr, ok := value.([]interface{})
	if !ok {
		return fmt.Sprintf("%v", value)
	}

	count := len(arr)
	if count == 0 {
		return "none"
	}
	if count == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", count, noun)
}

// formatMacroSummaryPlain condenses a macro object into a single cell,
// e.g. "1850 kcal P:120g F:55g C:210g".
func (b *TableBuilder) formatMacroSummaryPlain(value interface{}) string {
	obj, ok := value.(map[string]interface{})
	if !ok {
		return fmt.Sprintf("%v", value)
	}
	if len(obj) == 0 {
		return "-"
	}

	var parts []string
	if cal, exists := obj["calories"]; exists && cal != nil {
		parts = append(parts, b.formatCaloriesPlain(cal)+" kcal")
	}
	for _, macro := range []struct {
		key   string
		label string
	}{
		{"protein", "P"},
		{"fat", "F"},
		{"carbs", "C"},
	} {
		if v, exists := obj[macro.key]; exists && v != nil {
			parts = append(parts, macro.label+":"+b.formatGramsPlain(v))
		}
	}

	if len(parts) == 0 {
		return fmt.Sprintf("{%d fields}", len(obj))
	}
	return strings.Join(parts, " ")
}

// formatDescriptionPlain formats description as plain text with truncation.
func (b *TableBuilder) formatDescriptionPlain(desc string) string {
	if len(desc) <= 50 {
		return desc
	}
	return desc[:47] + "..."
}

// formatArrayPlain formats array as plain text.
func (b *TableBuilder) formatArrayPlain(arr []interface{}) string {
	if len(arr) == 0 {
		return "[]"
	}

	if len(arr) <= 2 {
		var items []string
		for _, item := range arr {
			items = append(items, fmt.Sprintf("%v", item))
		}
		return strings.Join(items, ", ")
	}

	return fmt.Sprintf("[%d items]", len(arr))
}

// formatObjectPlain formats object as plain text.
func (b *TableBuilder) formatObjectPlain(obj map[string]interface{}) string {
	if len(obj) == 0 {
		return "{}"
	}

	displayFields := []string{"name", "food_name", "meal_name", "status", "id"}
	for _, field := range displayFields {
		if value, exists := obj[field]; exists && value != nil {
			return fmt.Sprintf("%v", value)
		}
	}

	return fmt.Sprintf("{%d fields}", len(obj))
}
