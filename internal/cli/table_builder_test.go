package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableBuilder_FormatGramsPlain(t *testing.T) {
	builder := &TableBuilder{}

	tests := []struct {
		name     string
		value    interface{}
		expected string
	}{
		{
			name:     "whole number float",
			value:    32.0,
			expected: "32g",
		},
		{
			name:     "decimal float",
			value:    32.5,
			expected: "32.5g",
		},
		{
			name:     "int",
			value:    12,
			expected: "12g",
		},
		{
			name:     "zero",
			value:    0.0,
			expected: "0g",
		},
		{
			name:     "numeric string",
			value:    "7.5",
			expected: "7.5g",
		},
		{
			name:     "non-numeric value passes through",
			value:    "trace",
			expected: "trace",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := builder.formatGramsPlain(tt.value)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestTableBuilder_FormatCaloriesPlain(t *testing.T) {
	builder := &TableBuilder{}

	assert.Equal(t, "220", builder.formatCaloriesPlain(220.0))
	assert.Equal(t, "220.5", builder.formatCaloriesPlain(220.5))
	assert.Equal(t, "1850", builder.formatCaloriesPlain(1850))
	assert.Equal(t, "165", builder.formatCaloriesPlain("165"))
}

func TestTableBuilder_FormatQuantityPlain(t *testing.T) {
	builder := &TableBuilder{}

	// Serving quantities keep their full precision
	assert.Equal(t, "1.25", builder.formatQuantityPlain(1.25))
	assert.Equal(t, "2", builder.formatQuantityPlain(2.0))
	assert.Equal(t, "0.5", builder.formatQuantityPlain(0.5))
}

func TestTableBuilder_FormatWeightPlain(t *testing.T) {
	builder := &TableBuilder{}

	tests := []struct {
		name     string
		value    interface{}
		expected string
	}{
		{
			name:     "whole kilograms",
			value:    72000.0,
			expected: "72 kg",
		},
		{
			name:     "fractional kilograms",
			value:    72500.0,
			expected: "72.5 kg",
		},
		{
			name:     "zero weight",
			value:    0.0,
			expected: "-",
		},
		{
			name:     "non-numeric value",
			value:    "unknown",
			expected: "-",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := builder.formatWeightPlain(tt.value)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestTableBuilder_FormatItemCountPlain(t *testing.T) {
	builder := &TableBuilder{}

	assert.Equal(t, "-", builder.formatItemCountPlain(nil, "serving"))
	assert.Equal(t, "none", builder.formatItemCountPlain([]interface{}{}, "serving"))
	assert.Equal(t, "1 serving", builder.formatItemCountPlain([]interface{}{map[string]interface{}{}}, "serving"))
	assert.Equal(t, "3 foods", builder.formatItemCountPlain([]interface{}{1, 2, 3}, "food"))
}

func TestTableBuilder_FormatMacroSummaryPlain(t *testing.T) {
	builder := &TableBuilder{}

	totals := map[string]interface{}{
		"calories": 1850.0,
		"protein":  120.0,
		"fat":      55.5,
		"carbs":    210.0,
	}
	assert.Equal(t, "1850 kcal P:120g F:55.5g C:210g", builder.formatMacroSummaryPlain(totals))

	// Partial objects only show the macros they carry
	partial := map[string]interface{}{"calories": 420.0}
	assert.Equal(t, "420 kcal", builder.formatMacroSummaryPlain(partial))

	// Empty object
	assert.Equal(t, "-", builder.formatMacroSummaryPlain(map[string]interface{}{}))
}

func TestTableBuilder_NormalizeTimestamp(t *testing.T) {
	builder := &TableBuilder{}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain date passes through",
			input:    "2024-03-14",
			expected: "2024-03-14",
		},
		{
			name:     "ISO timestamp with microseconds",
			input:    "2024-06-01T00:00:00.000Z",
			expected: "2024-06-01 00:00:00",
		},
		{
			name:     "ISO timestamp without zone",
			input:    "2024-06-01T08:30:00",
			expected: "2024-06-01 08:30:00",
		},
		{
			name:     "empty",
			input:    "",
			expected: "-",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := builder.normalizeTimestamp(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestTableBuilder_FormatCellValuePlain(t *testing.T) {
	builder := &TableBuilder{}

	tests := []struct {
		name     string
		column   string
		value    interface{}
		expected string
	}{
		{
			name:     "nil value",
			column:   "food_name",
			value:    nil,
			expected: "-",
		},
		{
			name:     "food name passes through",
			column:   "food_name",
			value:    "Greek Yogurt",
			expected: "Greek Yogurt",
		},
		{
			name:     "protein column gets gram suffix",
			column:   "protein",
			value:    32.5,
			expected: "32.5g",
		},
		{
			name:     "calories column drops whole-number decimals",
			column:   "calories",
			value:    220.0,
			expected: "220",
		},
		{
			name:     "column match is case insensitive",
			column:   "CALORIES",
			value:    220.0,
			expected: "220",
		},
		{
			name:     "serving quantity keeps precision",
			column:   "serving_qty",
			value:    1.25,
			expected: "1.25",
		},
		{
			name:     "favorite flag becomes Yes",
			column:   "is_favorite",
			value:    true,
			expected: "Yes",
		},
		{
			name:     "has_more flag becomes No",
			column:   "has_more",
			value:    false,
			expected: "No",
		},
		{
			name:     "goal weight in kilograms",
			column:   "target_weight_goal_grams",
			value:    70000.0,
			expected: "70 kg",
		},
		{
			name:     "servings array becomes count",
			column:   "servings",
			value:    []interface{}{map[string]interface{}{}, map[string]interface{}{}},
			expected: "2 servings",
		},
		{
			name:   "totals object becomes macro summary",
			column: "totals",
			value: map[string]interface{}{
				"calories": 420.0,
				"protein":  35.0,
			},
			expected: "420 kcal P:35g",
		},
		{
			name:     "empty status",
			column:   "status",
			value:    "",
			expected: "-",
		},
		{
			name:     "long description is truncated",
			column:   "description",
			value:    "Low fat plain greek yogurt strained three times for extra protein content",
			expected: "Low fat plain greek yogurt strained three times...",
		},
		{
			name:     "unknown long value is truncated",
			column:   "notes",
			value:    "This is a very long free text note that goes on and on well past fifty characters",
			expected: "This is a very long free text note that goes on...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := builder.FormatCellValuePlain(tt.column, tt.value)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestTableBuilder_SortDataByName(t *testing.T) {
	builder := &TableBuilder{}

	data := []interface{}{
		map[string]interface{}{"food_name": "Oats"},
		map[string]interface{}{"food_name": "banana"},
		map[string]interface{}{"food_name": "Chicken breast"},
	}

	sorted := builder.SortDataByName(data, []string{"food_name"})

	first := sorted[0].(map[string]interface{})
	second := sorted[1].(map[string]interface{})
	third := sorted[2].(map[string]interface{})

	// Sort is case-insensitive
	assert.Equal(t, "banana", first["food_name"])
	assert.Equal(t, "Chicken breast", second["food_name"])
	assert.Equal(t, "Oats", third["food_name"])
}
