package garmin

import (
	"fmt"
)

// maxErrorBodyLen limits how much of a response body an APIError carries.
// Connect error pages can be large HTML documents.
const maxErrorBodyLen = 200

// APIError is returned when the Connect API answers with a non-2xx status.
type APIError struct {
	Method string
	Path   string
	Status int
	Body   string
}

// Error makes APIError satisfy the error interface.
func (e *APIError) Error() string {
	body := e.Body
	if len(body) > maxErrorBodyLen {
		body = body[:maxErrorBodyLen] + "..."
	}
	if body == "" {
		return fmt.Sprintf("%s %s failed with status %d", e.Method, e.Path, e.Status)
	}
	return fmt.Sprintf("%s %s failed with status %d: %s", e.Method, e.Path, e.Status, body)
}

// IsAuthError reports whether the error indicates a rejected credential.
// Callers use this to suggest re-running the login flow.
func (e *APIError) IsAuthError() bool {
	return e.Status == 401 || e.Status == 403
}
