package nutrition

import (
	"strconv"
)

// Argument extraction helpers. Tool arguments arrive as a JSON-decoded
// map, so numbers are float64; direct in-process callers may pass native
// ints. "Required" means present with a usable type; empty strings pass
// through so downstream validation can produce its more specific errors.

// stringArg returns a string argument and whether it was present.
func stringArg(args map[string]interface{}, key string) (string, bool) {
	value, ok := args[key].(string)
	return value, ok
}

// optionalStringArg returns a string argument or the empty string.
func optionalStringArg(args map[string]interface{}, key string) string {
	value, _ := args[key].(string)
	return value
}

// idArg returns an identifier argument normalized to string form. The
// service wants string ids, but callers routinely send the numeric ids
// straight from search results.
func idArg(args map[string]interface{}, key string) (string, bool) {
	switch value := args[key].(type) {
	case string:
		return value, true
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64), true
	case int:
		return strconv.Itoa(value), true
	case int64:
		return strconv.FormatInt(value, 10), true
	default:
		return "", false
	}
}

// floatArg returns a numeric argument, or fallback when absent or not a
// number.
func floatArg(args map[string]interface{}, key string, fallback float64) float64 {
	value, ok := numberArg(args, key)
	if !ok {
		return fallback
	}
	return value
}

// requiredFloatArg returns a numeric argument and whether it was present.
func requiredFloatArg(args map[string]interface{}, key string) (float64, bool) {
	return numberArg(args, key)
}

// optionalFloatArg returns a pointer to a numeric argument, or nil when
// absent. Used where the service distinguishes unset from zero.
func optionalFloatArg(args map[string]interface{}, key string) *float64 {
	value, ok := numberArg(args, key)
	if !ok {
		return nil
	}
	return &value
}

// intArg returns an integer argument, or fallback when absent or not a
// number.
func intArg(args map[string]interface{}, key string, fallback int) int {
	value, ok := numberArg(args, key)
	if !ok {
		return fallback
	}
	return int(value)
}

func numberArg(args map[string]interface{}, key string) (float64, bool) {
	switch value := args[key].(type) {
	case float64:
		return value, true
	case int:
		return float64(value), true
	case int64:
		return float64(value), true
	default:
		return 0, false
	}
}
