package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a validation error with context
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (ve ValidationError) Error() string {
	if ve.Field == "" {
		return ve.Message
	}
	return fmt.Sprintf("field '%s': %s", ve.Field, ve.Message)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for multiple validation errors
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}
	if len(ve) == 1 {
		return ve[0].Error()
	}

	var messages []string
	for _, err := range ve {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, "; "))
}

// HasErrors returns true if there are any validation errors
func (ve ValidationErrors) HasErrors() bool {
	return len(ve) > 0
}

// Add adds a new validation error
func (ve *ValidationErrors) Add(field, message string, value ...interface{}) {
	var val interface{}
	if len(value) > 0 {
		val = value[0]
	}
	*ve = append(*ve, ValidationError{
		Field:   field,
		Value:   val,
		Message: message,
	})
}

var validTransports = []string{MCPTransportStreamableHTTP, MCPTransportSSE, MCPTransportStdio}

// Validate checks the configuration for values the server cannot start
// with. All problems are reported together rather than one at a time.
func (c MacrologConfig) Validate() error {
	var errs ValidationErrors

	switch c.Server.Transport {
	case MCPTransportStreamableHTTP, MCPTransportSSE:
		// Endpoint settings only matter for the network transports.
		if c.Server.Port < 1 || c.Server.Port > 65535 {
			errs.Add("server.port", fmt.Sprintf("must be between 1 and 65535, got %d", c.Server.Port), c.Server.Port)
		}
		if strings.TrimSpace(c.Server.Host) == "" {
			errs.Add("server.host", "must not be empty")
		}
	case MCPTransportStdio:
	default:
		errs.Add("server.transport", fmt.Sprintf("must be one of: %s", strings.Join(validTransports, ", ")), c.Server.Transport)
	}

	if strings.TrimSpace(c.Garmin.Domain) == "" {
		errs.Add("garmin.domain", "must not be empty")
	}
	if strings.TrimSpace(c.Garmin.TokenFile) == "" {
		errs.Add("garmin.tokenFile", "must not be empty")
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}
