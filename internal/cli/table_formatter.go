package cli

import (
	"fmt"
	"os"
	"slices"
	"sort"
	"strings"
)

// unwantedColumnsByResourceType defines columns that should be excluded from
// table display in non-wide mode for each record type. This keeps list views
// clean and focused on the most useful information.
//
// Exclusion rationale:
//   - loggedFood brand_name/food_id/source: identification details, the log_id
//     column is what update_food_log and remove_food_log need
//   - serving fiber/sugar: secondary macros, available with -o wide
//   - meal meal_id: internal numeric id, tools accept meal names
var unwantedColumnsByResourceType = map[string][]string{
	"loggedFood": {
		"brand_name", "food_id", "source",
	},
	"serving": {
		"fiber", "sugar",
	},
	"meal": {
		"meal_id",
	},
}

// filterUnwantedColumns filters out columns that should not be displayed in table view.
// The comparison is case-insensitive to handle JSON field name variations.
func filterUnwantedColumns(columns []string, unwanted []string) []string {
	filtered := make([]string, 0, len(columns))
	for _, col := range columns {
		isUnwanted := false
		for _, u := range unwanted {
			if strings.EqualFold(col, u) {
				isUnwanted = true
				break
			}
		}
		if !isUnwanted {
			filtered = append(filtered, col)
		}
	}
	return filtered
}

// TableFormatter handles table creation and optimization for macrolog CLI
// output. It provides intelligent formatting for the different record shapes
// the nutrition tools return, automatically optimizing column layouts and
// applying consistent styling. The formatter handles both simple arrays and
// wrapped objects like the daily log, adapting the display format to the data.
type TableFormatter struct {
	// options contains formatting preferences and execution settings
	options ExecutorOptions
	// builder provides cell-level formatting utilities
	builder *TableBuilder
}

// NewTableFormatter creates a new table formatter with the specified options.
//
// Args:
//   - options: Configuration options for formatting behavior
//
// Returns:
//   - *TableFormatter: Configured table formatter ready for use
func NewTableFormatter(options ExecutorOptions) *TableFormatter {
	return &TableFormatter{
		options: options,
		builder: NewTableBuilder(),
	}
}

// FormatData formats data according to its type and structure.
// It handles objects, arrays, and simple values, applying the most
// appropriate formatting strategy for each.
//
// Args:
//   - data: The data to format (can be object, array, or simple value)
//
// Returns:
//   - error: Formatting error, if any
func (f *TableFormatter) FormatData(data interface{}) error {
	switch d := data.(type) {
	case map[string]interface{}:
		return f.formatTableFromObject(d)
	case []interface{}:
		return f.formatTableFromArray(d)
	default:
		// Simple value, just print it
		fmt.Printf("%v\n", data)
		return nil
	}
}

// formatTableFromObject handles object data that might contain arrays.
// Most tool responses wrap their arrays in objects, like
// {"results": [...], "has_more": false} or the daily log with its meals.
// The wrapped array is rendered as a table and the remaining metadata as
// footer lines. Objects without arrays become key-value tables.
//
// Args:
//   - data: Object data to format
//
// Returns:
//   - error: Formatting error, if any
func (f *TableFormatter) formatTableFromObject(data map[string]interface{}) error {
	// The recent foods response carries two peer arrays, render both
	if f.isRecentFoodsData(data) {
		return f.formatRecentFoodsSections(data)
	}

	arrayKey := f.findArrayKey(data)
	if arrayKey != "" {
		value := data[arrayKey]
		// Handle nil as empty array
		if value == nil {
			f.printFooterMessages(data, arrayKey)
			return f.formatEmptyList(arrayKey)
		}
		if arr, ok := value.([]interface{}); ok {
			if err := f.formatTableFromArray(arr); err != nil {
				return err
			}
			// Print footer messages (daily totals, pagination hints)
			f.printFooterMessages(data, arrayKey)
			return nil
		}
	}

	// No array found, format as key-value pairs
	return f.formatKeyValueTable(data)
}

// printFooterMessages prints helpful footer messages based on response metadata.
// This includes the daily totals block under a nutrition log and pagination hints.
func (f *TableFormatter) printFooterMessages(data map[string]interface{}, arrayKey string) {
	// Footer messages only make sense for table output
	if f.options.Format == OutputFormatJSON || f.options.Format == OutputFormatYAML {
		return
	}

	if hint, exists := data["hint"]; exists {
		if hintStr, ok := hint.(string); ok && hintStr != "" {
			fmt.Printf("\n%s\n", hintStr)
		}
	}

	// The daily log carries date, goals, and totals next to its meals array
	if arrayKey == "meals" {
		f.printDailySummaryNotes(data)
	}

	if hasMore, ok := data["has_more"].(bool); ok && hasMore {
		fmt.Println("\nMore results available. Raise the limit to see the rest.")
	}
}

// printDailySummaryNotes prints the date, totals, and goals block that
// accompanies the meals table of a daily nutrition log.
func (f *TableFormatter) printDailySummaryNotes(data map[string]interface{}) {
	var notes []string

	if date, ok := data["date"].(string); ok && date != "" {
		notes = append(notes, fmt.Sprintf("Date:          %s", date))
	}
	if totals, exists := data["daily_totals"]; exists && totals != nil {
		notes = append(notes, fmt.Sprintf("Daily totals:  %s", f.builder.formatMacroSummaryPlain(totals)))
	}
	if goals, exists := data["daily_goals"]; exists && goals != nil {
		notes = append(notes, fmt.Sprintf("Daily goals:   %s", f.builder.formatMacroSummaryPlain(goals)))
	}

	if len(notes) > 0 {
		fmt.Println()
		for _, note := range notes {
			fmt.Println(note)
		}
	}
}

// isRecentFoodsData checks for the recent foods response shape, which has
// frequent_foods and recent_foods arrays side by side.
func (f *TableFormatter) isRecentFoodsData(data map[string]interface{}) bool {
	_, hasFrequent := data["frequent_foods"]
	_, hasRecent := data["recent_foods"]
	return hasFrequent && hasRecent
}

// formatRecentFoodsSections renders the frequent and recent food lists as
// two labelled tables.
func (f *TableFormatter) formatRecentFoodsSections(data map[string]interface{}) error {
	if meal, ok := data["meal"].(string); ok && meal != "" {
		fmt.Printf("Meal: %s\n", meal)
	}

	frequent, _ := data["frequent_foods"].([]interface{})
	recent, _ := data["recent_foods"].([]interface{})

	fmt.Println("\nFrequent foods:")
	if err := f.formatTableFromArray(frequent); err != nil {
		return err
	}

	fmt.Println("\nRecent foods:")
	return f.formatTableFromArray(recent)
}

// findArrayKey looks for common array keys in wrapped objects.
// Tool responses wrap arrays in objects with predictable key names, this
// function identifies those patterns to extract the relevant data.
// It also handles nil/null values which represent empty arrays.
//
// Args:
//   - data: Object data to search for array keys
//
// Returns:
//   - string: The key name containing array data, or empty string if none found
func (f *TableFormatter) findArrayKey(data map[string]interface{}) string {
	arrayKeys := []string{"meals", "foods", "results", "favorites", "custom_foods", "custom_meals", "frequent_foods", "recent_foods", "servings", "items", "tools"}

	for _, key := range arrayKeys {
		if value, exists := data[key]; exists {
			// Handle both actual arrays and nil values (which represent empty arrays)
			if _, isArray := value.([]interface{}); isArray {
				return key
			}
			// Treat nil as an empty array
			if value == nil {
				return key
			}
		}
	}
	return ""
}

// formatTableFromArray creates a kubectl-style plain table from an array of objects.
// It automatically optimizes column selection, sorts data for better readability,
// and uses clean columnar output without box-drawing characters.
//
// Args:
//   - data: Array of objects to display as a table
//
// Returns:
//   - error: Formatting error, if any
func (f *TableFormatter) formatTableFromArray(data []interface{}) error {
	if len(data) == 0 {
		fmt.Println("No items found")
		return nil
	}

	// Get the first object to determine columns
	if _, ok := data[0].(map[string]interface{}); !ok {
		// Array of simple values
		return f.formatSimpleList(data)
	}

	// Determine table type and optimize columns
	columns := f.optimizeColumns(data)

	// Create kubectl-style plain table
	tw := NewPlainTableWriter(os.Stdout)
	tw.SetHeaders(columns)
	tw.SetNoHeaders(f.options.NoHeaders)

	// Add rows with formatting - sort by name field if present
	sortedData := f.builder.SortDataByName(data, columns)
	for _, item := range sortedData {
		if itemMap, ok := item.(map[string]interface{}); ok {
			row := make([]string, len(columns))
			for i, col := range columns {
				row[i] = f.builder.FormatCellValuePlain(col, itemMap[col])
			}
			tw.AppendRow(row)
		}
	}

	tw.Render()
	return nil
}

// isWideMode returns true if the formatter is configured for wide output.
func (f *TableFormatter) isWideMode() bool {
	return f.options.Format == OutputFormatWide
}

// optimizeColumns determines the best columns to show based on the data type.
// It analyzes the data structure and selects the most relevant columns for
// display, prioritizing key fields and limiting the total number of columns
// to prevent layout issues. Different record types get specialized column
// selection logic. When wide mode is enabled (-o wide), additional columns
// are included.
//
// Args:
//   - objects: Objects used to determine available columns
//
// Returns:
//   - []string: Optimized list of column names for table display
func (f *TableFormatter) optimizeColumns(objects []interface{}) []string {
	// Extract all available keys (deduplicated)
	keySet := make(map[string]bool)
	for _, obj := range objects {
		castObj, ok := obj.(map[string]interface{})
		if !ok {
			continue
		}
		for key := range castObj {
			keySet[key] = true
		}
	}
	var allKeys []string
	for key := range keySet {
		allKeys = append(allKeys, key)
	}
	sort.Strings(allKeys)

	sample := objects[0].(map[string]interface{})

	// Always prioritize name/ID fields first
	nameFields := []string{"food_name", "meal_name", "name", "serving_id", "log_id", "food_id", "id"}
	var columns []string

	// Add the primary identifier first
	for _, nameField := range nameFields {
		if f.keyExists(sample, nameField) {
			columns = append(columns, nameField)
			break // Only add one primary identifier
		}
	}

	// Define priority columns for different record types (excluding name fields already added)
	priorityColumns := map[string][]string{
		"food":       {"food_id", "brand_name", "source", "servings"},
		"loggedFood": {"log_id", "serving_qty", "nutrition"},
		"meal":       {"totals", "foods"},
		"serving":    {"serving_unit", "number_of_units", "calories", "protein", "fat", "carbs"},
		"customMeal": {"food_count", "totals"},
		"mcpTool":    {"description"},
		"generic":    {"status", "date", "description"},
	}

	// Extended columns for wide mode (-o wide)
	wideColumns := map[string][]string{
		"food":       {"is_favorite"},
		"loggedFood": {"brand_name", "food_id", "source"},
		"meal":       {"meal_id"},
		"serving":    {"fiber", "sugar"},
		"customMeal": {"custom_meal_id"},
		"mcpTool":    {"inputSchema"},
		"generic":    {},
	}

	// Detect record type and use optimized columns
	resourceType := f.detectResourceType(sample)
	if priorities, exists := priorityColumns[resourceType]; exists {
		// Add priority columns that exist (and haven't been added yet)
		for _, col := range priorities {
			if f.keyExists(sample, col) && !slices.Contains(columns, col) {
				columns = append(columns, col)
			}
		}
	}

	// Add wide columns if in wide mode
	if f.isWideMode() {
		if wideCols, exists := wideColumns[resourceType]; exists {
			for _, col := range wideCols {
				if f.keyExists(sample, col) && !slices.Contains(columns, col) {
					columns = append(columns, col)
				}
			}
		}
	}

	// Limit columns to prevent wrapping (in non-wide mode)
	var maxColumns int
	if f.isWideMode() {
		// In wide mode, allow more columns
		maxColumns = 10
	} else {
		switch resourceType {
		case "food":
			maxColumns = 5 // food_name, food_id, brand_name, source, servings
		case "loggedFood":
			maxColumns = 4 // food_name, log_id, serving_qty, nutrition
		case "meal":
			maxColumns = 3 // meal_name, totals, foods
		case "serving":
			maxColumns = 7 // serving_id, unit, units, calories, protein, fat, carbs
		default:
			maxColumns = 6
		}
	}

	// Add remaining columns alphabetically if we have space
	if len(columns) < maxColumns {
		remaining := f.getRemainingKeys(allKeys, columns)

		// Filter out unwanted columns based on record type (in non-wide mode only)
		filteredRemaining := remaining
		if !f.isWideMode() {
			if unwantedColumns, exists := unwantedColumnsByResourceType[resourceType]; exists {
				filteredRemaining = filterUnwantedColumns(remaining, unwantedColumns)
			}
		}

		spaceLeft := maxColumns - len(columns)
		if spaceLeft > 0 && len(filteredRemaining) > 0 {
			addCount := f.min(spaceLeft, len(filteredRemaining))
			columns = append(columns, filteredRemaining[:addCount]...)
		}
	}

	return columns
}

// detectResourceType analyzes a sample object to determine what kind of
// record it represents. This drives the column selection for the different
// nutrition record shapes.
//
// Args:
//   - sample: Sample object to analyze for type detection
//
// Returns:
//   - string: Detected record type for optimization purposes
func (f *TableFormatter) detectResourceType(sample map[string]interface{}) string {
	// Check for specific field combinations, most specific first
	if f.keyExists(sample, "log_id") {
		return "loggedFood"
	}
	if f.keyExists(sample, "serving_id") && f.keyExists(sample, "serving_unit") {
		return "serving"
	}
	if f.keyExists(sample, "meal_name") && f.keyExists(sample, "meal_id") {
		return "meal"
	}
	if f.keyExists(sample, "custom_meal_id") {
		return "customMeal"
	}
	// MCP tools have inputSchema and name
	if f.keyExists(sample, "inputSchema") && f.keyExists(sample, "name") {
		return "mcpTool"
	}
	if f.keyExists(sample, "food_id") && f.keyExists(sample, "food_name") {
		return "food"
	}

	return "generic"
}

// formatKeyValueTable formats an object as key-value pairs.
// This is used for single objects like the nutrition settings or daily
// summary that don't fit an array-based table. It provides a clean
// property-value layout.
//
// Args:
//   - data: Object data to format as key-value pairs
//
// Returns:
//   - error: Formatting error, if any
func (f *TableFormatter) formatKeyValueTable(data map[string]interface{}) error {
	// Create kubectl-style plain table
	tw := NewPlainTableWriter(os.Stdout)
	tw.SetHeaders([]string{"PROPERTY", "VALUE"})
	tw.SetNoHeaders(f.options.NoHeaders)

	// Sort keys for consistent output
	var keys []string
	for key := range data {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := f.builder.FormatCellValuePlain(key, data[key])
		tw.AppendRow([]string{key, value})
	}

	tw.Render()
	return nil
}

// formatSimpleList formats an array of simple values.
// This handles arrays that contain primitive values rather than objects,
// displaying each value on a separate line.
//
// Args:
//   - data: Array of simple values to display
//
// Returns:
//   - error: Formatting error, if any
func (f *TableFormatter) formatSimpleList(data []interface{}) error {
	for _, item := range data {
		fmt.Println(item)
	}
	return nil
}

// formatEmptyList displays a message for empty record lists.
// This provides a kubectl-style "No X found" message instead of
// showing a property/value table with metadata.
//
// Args:
//   - resourceKey: The array key name (e.g., "favorites", "custom_foods")
//
// Returns:
//   - error: Always nil, just prints the message
func (f *TableFormatter) formatEmptyList(resourceKey string) error {
	readable := f.keyToReadableName(resourceKey)
	fmt.Printf("No %s found\n", readable)
	return nil
}

// keyToReadableName converts an array key to a readable plural name.
func (f *TableFormatter) keyToReadableName(key string) string {
	// Common mappings for array keys
	mappings := map[string]string{
		"meals":          "meals",
		"foods":          "foods",
		"results":        "results",
		"favorites":      "favorite foods",
		"custom_foods":   "custom foods",
		"custom_meals":   "custom meals",
		"frequent_foods": "frequent foods",
		"recent_foods":   "recent foods",
		"servings":       "servings",
		"items":          "items",
		"tools":          "tools",
	}

	if readable, exists := mappings[key]; exists {
		return readable
	}
	return key
}

// Helper methods

// keyExists checks if a key exists in a map.
// This is a utility function used throughout the formatter for safe key access.
//
// Args:
//   - data: Map to check for key existence
//   - key: Key name to look for
//
// Returns:
//   - bool: true if the key exists in the map
func (f *TableFormatter) keyExists(data map[string]interface{}, key string) bool {
	_, exists := data[key]
	return exists
}

// getRemainingKeys returns keys that haven't been used yet.
// This helps in column optimization by identifying available but unused columns.
//
// Args:
//   - allKeys: Complete list of available keys
//   - usedKeys: Keys that have already been selected
//
// Returns:
//   - []string: List of remaining unused keys
func (f *TableFormatter) getRemainingKeys(allKeys, usedKeys []string) []string {
	usedSet := make(map[string]bool)
	for _, key := range usedKeys {
		usedSet[key] = true
	}

	var remaining []string
	for _, key := range allKeys {
		if !usedSet[key] {
			remaining = append(remaining, key)
		}
	}
	return remaining
}

// min returns the smaller of two integers.
func (f *TableFormatter) min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
