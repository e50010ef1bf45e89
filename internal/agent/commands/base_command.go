package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// ClientInterface defines the interface that commands need from the client.
// This interface abstracts the client functionality required by commands,
// enabling them to access cached data and perform operations without
// depending directly on the concrete client implementation.
type ClientInterface interface {
	// Cache access methods return the currently cached items
	GetToolCache() []mcp.Tool
	RefreshToolCache(ctx context.Context) error

	// Core MCP operations for executing commands
	CallTool(ctx context.Context, name string, args map[string]interface{}) (*mcp.CallToolResult, error)

	// Formatters access for consistent output formatting
	// Returns the concrete Formatters type that will be cast by commands
	GetFormatters() interface{}
}

// FormatterInterface defines the interface for formatting operations.
// This provides a clean abstraction for commands to format MCP data
// consistently across different output modes and contexts.
type FormatterInterface interface {
	// List formatting for browsing available tools
	FormatToolsList(tools []mcp.Tool) string

	// Detail formatting for individual tools
	FormatToolDetail(tool mcp.Tool) string

	// Search utility for finding tools by name
	FindTool(tools []mcp.Tool, name string) *mcp.Tool
}

// TransportInterface defines the interface for transport capability checking.
// Commands use this to adapt their behavior based on transport capabilities,
// particularly for features like real-time notifications.
type TransportInterface interface {
	// SupportsNotifications returns whether the transport supports real-time notifications
	SupportsNotifications() bool
}

// BaseCommand provides common functionality for all REPL commands.
// It encapsulates shared dependencies and utility methods that most
// commands need, reducing code duplication and ensuring consistent
// behavior across the command system.
type BaseCommand struct {
	client    ClientInterface    // MCP client for operations
	output    OutputLogger       // Logger for user-facing output
	transport TransportInterface // Transport for capability checking
}

// NewBaseCommand creates a new base command with the specified dependencies.
func NewBaseCommand(client ClientInterface, output OutputLogger, transport TransportInterface) *BaseCommand {
	return &BaseCommand{
		client:    client,
		output:    output,
		transport: transport,
	}
}

// parseArgs parses and validates command arguments against minimum requirements.
// This utility method provides consistent argument validation across commands
// and generates appropriate usage messages when validation fails.
func (b *BaseCommand) parseArgs(args []string, minArgs int, usage string) ([]string, error) {
	if len(args) < minArgs {
		return nil, fmt.Errorf("usage: %s", usage)
	}
	return args, nil
}

// joinArgsFrom joins arguments starting from a specific index into a single string.
// This is useful for commands that accept free-form text or JSON arguments
// where multiple command line arguments should be treated as one logical argument.
func (b *BaseCommand) joinArgsFrom(args []string, index int) string {
	if index >= len(args) {
		return ""
	}
	return strings.Join(args[index:], " ")
}

// validateTarget validates that a target type is one of the allowed values.
func (b *BaseCommand) validateTarget(target string, validTargets []string) error {
	for _, valid := range validTargets {
		if strings.EqualFold(target, valid) {
			return nil
		}
	}
	return fmt.Errorf("unknown target: %s. Valid targets: %s", target, strings.Join(validTargets, ", "))
}

// getCompletionsForTargets returns completion suggestions for valid targets.
func (b *BaseCommand) getCompletionsForTargets(targets []string) []string {
	var completions []string
	for _, target := range targets {
		completions = append(completions, target)
	}
	return completions
}

// getToolCompletions returns tool name completions from the client cache.
func (b *BaseCommand) getToolCompletions() []string {
	tools := b.client.GetToolCache()
	var completions []string
	for _, tool := range tools {
		completions = append(completions, tool.Name)
	}
	return completions
}

// getFormatters returns the formatters interface cast to the concrete type.
func (b *BaseCommand) getFormatters() FormatterInterface {
	return b.client.GetFormatters().(FormatterInterface)
}

// findTool looks up a tool by name from the client cache.
// Uses index-based iteration for safe pointer handling across Go versions.
func (b *BaseCommand) findTool(name string) *mcp.Tool {
	tools := b.client.GetToolCache()
	for i := range tools {
		if tools[i].Name == name {
			return &tools[i]
		}
	}
	return nil
}

// getToolParams returns all parameter names for a tool, sorted alphabetically.
// Returns nil if the tool is nil or has no properties.
func (b *BaseCommand) getToolParams(tool *mcp.Tool) []string {
	if tool == nil || len(tool.InputSchema.Properties) == 0 {
		return nil
	}

	var params []string
	for name := range tool.InputSchema.Properties {
		params = append(params, name)
	}
	sort.Strings(params)
	return params
}

// getRequiredParams returns the required parameter names for a tool.
// Returns nil if the tool is nil or has no required parameters.
func (b *BaseCommand) getRequiredParams(tool *mcp.Tool) []string {
	if tool == nil || len(tool.InputSchema.Required) == 0 {
		return nil
	}
	return tool.InputSchema.Required
}

// parseKeyValueArgs parses arguments in key=value format into an interface map.
// Values are parsed as JSON when possible for proper type coercion (arrays,
// objects, numbers, booleans); everything else is kept as a string. Arguments
// without '=' are logged as debug messages and skipped.
func (b *BaseCommand) parseKeyValueArgs(args []string) map[string]interface{} {
	params := make(map[string]interface{})

	for _, arg := range args {
		if !strings.Contains(arg, "=") {
			if b.output != nil {
				b.output.Debug("Ignoring argument without '=': %s", arg)
			}
			continue
		}

		parts := strings.SplitN(arg, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := parts[0]
		value := stripQuotes(parts[1])

		// Try to parse as JSON for complex types (arrays, objects, numbers, booleans)
		var jsonValue interface{}
		if err := json.Unmarshal([]byte(value), &jsonValue); err == nil {
			params[key] = jsonValue
		} else {
			// Use as string if not valid JSON
			params[key] = value
		}
	}

	return params
}

// stripQuotes removes surrounding single or double quotes from a string.
// This handles the common shell habit of quoting values.
func stripQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') ||
			(s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// getStringFromMap safely extracts a string value from a map with a default fallback.
// This is useful for extracting typed values from JSON schema property maps.
func getStringFromMap(m map[string]interface{}, key, defaultVal string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return defaultVal
}
