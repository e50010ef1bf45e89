// Package nutrition implements the nutrition tool surface on top of the
// Garmin Connect client.
//
// # Overview
//
// The package exposes every tool through a Provider that implements
// api.ToolProvider. Each tool handler resolves and validates its
// arguments, makes exactly one client call, and returns either a curated
// JSON document or a plain-text error message. Handlers never reach the
// network themselves; all HTTP traffic goes through the API interface so
// tests can substitute a fake client.
//
// # Curation
//
// Connect API responses carry far more than a model needs to see. Before
// a response is returned, it is reshaped into the record types in this
// package: a fixed set of fields is selected, keys are renamed to
// snake_case, and fields the upstream response left unset are dropped
// rather than rendered as null. Ordering is preserved as the upstream
// response delivered it. The record types are the contract; anything not
// declared on them never reaches the caller.
//
// # Meal resolution
//
// Connect identifies meals by numeric ids that vary per account, while
// callers pass names like "breakfast". ResolveMealID fetches the
// account's meal definitions and matches the name case-insensitively.
// An unrecognized name produces an UnknownMealError listing the names
// that would have matched, so a caller can self-correct without another
// lookup.
package nutrition
