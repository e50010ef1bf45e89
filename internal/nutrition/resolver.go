package nutrition

import (
	"context"
	"fmt"
	"strings"
)

// UnknownMealError reports a meal name that matched none of the user's
// meal definitions. The message enumerates the available names so the
// caller can self-correct.
type UnknownMealError struct {
	Meal      string
	Available []string
}

func (e *UnknownMealError) Error() string {
	quoted := make([]string, 0, len(e.Available))
	for _, name := range e.Available {
		quoted = append(quoted, "'"+name+"'")
	}
	return fmt.Sprintf("Unknown meal '%s'. Available: [%s]", e.Meal, strings.Join(quoted, ", "))
}

// ResolveMealID maps a meal name to the numeric id the service expects,
// using the user's meal definitions for the given day (today when empty).
// Matching trims whitespace and is case-insensitive; definitions are
// fetched fresh on every call because users can rename their meal slots.
func ResolveMealID(ctx context.Context, client API, meal, day string) (int, error) {
	meals, err := client.MealDefinitions(ctx, day)
	if err != nil {
		return 0, err
	}

	wanted := strings.ToUpper(strings.TrimSpace(meal))
	for _, m := range meals {
		if strings.ToUpper(m.MealName) == wanted {
			return m.MealID, nil
		}
	}

	available := make([]string, 0, len(meals))
	for _, m := range meals {
		available = append(available, m.MealName)
	}
	return 0, &UnknownMealError{Meal: meal, Available: available}
}
