package cmd

import (
	"reflect"
	"testing"
)

func TestParseCallArgs(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		expected  map[string]interface{}
		expectErr bool
	}{
		{
			name:     "no arguments",
			args:     []string{},
			expected: nil,
		},
		{
			name: "single JSON object",
			args: []string{`{"date": "2024-03-14", "calories": 450}`},
			expected: map[string]interface{}{
				"date":     "2024-03-14",
				"calories": float64(450),
			},
		},
		{
			name: "JSON object with nested values",
			args: []string{`{"meal": "LUNCH", "nutrition": {"calories": 450}}`},
			expected: map[string]interface{}{
				"meal":      "LUNCH",
				"nutrition": map[string]interface{}{"calories": float64(450)},
			},
		},
		{
			name:     "date value stays a string",
			args:     []string{"date=2024-03-14"},
			expected: map[string]interface{}{"date": "2024-03-14"},
		},
		{
			name:     "integer value",
			args:     []string{"calories=450"},
			expected: map[string]interface{}{"calories": float64(450)},
		},
		{
			name:     "float value",
			args:     []string{"serving_qty=1.5"},
			expected: map[string]interface{}{"serving_qty": float64(1.5)},
		},
		{
			name:     "boolean value",
			args:     []string{"is_favorite=true"},
			expected: map[string]interface{}{"is_favorite": true},
		},
		{
			name:     "bare word stays a string",
			args:     []string{"meal=LUNCH"},
			expected: map[string]interface{}{"meal": "LUNCH"},
		},
		{
			name:     "double quoted value keeps spaces",
			args:     []string{`query="greek yogurt"`},
			expected: map[string]interface{}{"query": "greek yogurt"},
		},
		{
			name:     "single quoted value keeps spaces",
			args:     []string{"name='afternoon snack'"},
			expected: map[string]interface{}{"name": "afternoon snack"},
		},
		{
			name:     "array value",
			args:     []string{"food_ids=[1,2,3]"},
			expected: map[string]interface{}{"food_ids": []interface{}{float64(1), float64(2), float64(3)}},
		},
		{
			name: "multiple pairs",
			args: []string{"date=2024-03-14", "meal=BREAKFAST", "food_id=42"},
			expected: map[string]interface{}{
				"date":    "2024-03-14",
				"meal":    "BREAKFAST",
				"food_id": float64(42),
			},
		},
		{
			name:     "value containing equals",
			args:     []string{"note=a=b"},
			expected: map[string]interface{}{"note": "a=b"},
		},
		{
			name:     "empty value",
			args:     []string{"query="},
			expected: map[string]interface{}{"query": ""},
		},
		{
			name:      "missing equals",
			args:      []string{"justaword"},
			expectErr: true,
		},
		{
			name:      "malformed JSON object",
			args:      []string{`{"date": `},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := parseCallArgs(tt.args)
			if tt.expectErr {
				if err == nil {
					t.Errorf("parseCallArgs(%v) expected error, got %v", tt.args, result)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseCallArgs(%v) unexpected error: %v", tt.args, err)
			}
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("parseCallArgs(%v) = %#v, expected %#v", tt.args, result, tt.expected)
			}
		})
	}
}

func TestStripArgQuotes(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`"hello"`, "hello"},
		{"'hello'", "hello"},
		{"hello", "hello"},
		{`"unbalanced`, `"unbalanced`},
		{`""`, ""},
		{"h", "h"},
		{`'mismatched"`, `'mismatched"`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := stripArgQuotes(tt.input)
			if result != tt.expected {
				t.Errorf("stripArgQuotes(%q) = %q, expected %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestCallCmdProperties(t *testing.T) {
	t.Run("call command exists", func(t *testing.T) {
		if callCmd == nil {
			t.Fatal("callCmd should not be nil")
		}
	})

	t.Run("call command Use field", func(t *testing.T) {
		if callCmd.Use != "call <tool> [args...]" {
			t.Errorf("expected Use 'call <tool> [args...]', got %q", callCmd.Use)
		}
	})

	t.Run("call command has RunE", func(t *testing.T) {
		if callCmd.RunE == nil {
			t.Error("expected RunE to be set")
		}
	})

	t.Run("output flag exists", func(t *testing.T) {
		flag := callCmd.Flags().Lookup("output")
		if flag == nil {
			t.Error("expected --output flag to exist")
		}
	})

	t.Run("endpoint flag exists", func(t *testing.T) {
		flag := callCmd.Flags().Lookup("endpoint")
		if flag == nil {
			t.Error("expected --endpoint flag to exist")
		}
	})
}

func TestMergeArgPairs(t *testing.T) {
	t.Run("pairs on nil base", func(t *testing.T) {
		result, err := mergeArgPairs(nil, []string{"date=2024-03-14", "calories=450"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		expected := map[string]interface{}{
			"date":     "2024-03-14",
			"calories": float64(450),
		}
		if !reflect.DeepEqual(result, expected) {
			t.Errorf("mergeArgPairs() = %#v, expected %#v", result, expected)
		}
	})

	t.Run("pairs override positional values", func(t *testing.T) {
		base := map[string]interface{}{"meal": "BREAKFAST", "date": "2024-03-14"}
		result, err := mergeArgPairs(base, []string{"meal=LUNCH"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result["meal"] != "LUNCH" {
			t.Errorf("expected meal LUNCH, got %v", result["meal"])
		}
		if result["date"] != "2024-03-14" {
			t.Errorf("expected date to be preserved, got %v", result["date"])
		}
	})

	t.Run("no pairs leaves nil base nil", func(t *testing.T) {
		result, err := mergeArgPairs(nil, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result != nil {
			t.Errorf("expected nil map, got %#v", result)
		}
	})

	t.Run("invalid pair", func(t *testing.T) {
		_, err := mergeArgPairs(nil, []string{"nopair"})
		if err == nil {
			t.Error("expected error for pair without '='")
		}
	})
}

func TestCallArgFlag(t *testing.T) {
	flag := callCmd.Flags().Lookup("arg")
	if flag == nil {
		t.Error("expected --arg flag to exist")
	}
}
