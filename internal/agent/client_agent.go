package agent

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// handleNotification processes incoming notifications
func (c *Client) handleNotification(ctx context.Context, notification mcp.JSONRPCNotification) error {
	// Log the notification only if logger is available
	if c.logger != nil {
		c.logger.Notification(notification.Method, notification.Params)
	}

	// Handle specific notifications only if caching is enabled
	if c.cacheEnabled {
		switch notification.Method {
		case "notifications/tools/list_changed":
			return c.listTools(ctx, false)

		default:
			// Unknown notification type
		}
	}

	return nil
}

// showToolDiff displays the differences between old and new tool lists.
// This method is called when tool change notifications are received to provide
// visual feedback about what capabilities have been added or removed from the
// MCP server. It compares the tool lists by name and categorizes changes as
// added, removed, or unchanged.
//
// The diff output uses color-coded logging:
//   - Green (✓) for unchanged tools
//   - Green (+) for newly added tools
//   - Red (-) for removed tools
//
// This method is only called when caching is enabled and a logger is available.
func (c *Client) showToolDiff(oldTools, newTools []mcp.Tool) {
	// Create maps for easier comparison using tool names as keys
	oldMap := make(map[string]mcp.Tool)
	for _, tool := range oldTools {
		oldMap[tool.Name] = tool
	}

	newMap := make(map[string]mcp.Tool)
	for _, tool := range newTools {
		newMap[tool.Name] = tool
	}

	// Check for changes by comparing tool name presence
	var added []string
	var removed []string
	var unchanged []string

	// Find added and unchanged tools
	for name := range newMap {
		if _, exists := oldMap[name]; exists {
			unchanged = append(unchanged, name)
		} else {
			added = append(added, name)
		}
	}

	// Find removed tools
	for name := range oldMap {
		if _, exists := newMap[name]; !exists {
			removed = append(removed, name)
		}
	}

	// Display changes with appropriate visual indicators
	if len(added) > 0 || len(removed) > 0 {
		c.logger.Info("Tool changes detected:")
		for _, name := range unchanged {
			c.logger.Success("  ✓ Unchanged: %s", name)
		}
		for _, name := range added {
			c.logger.Success("  + Added: %s", name)
		}
		for _, name := range removed {
			c.logger.Error("  - Removed: %s", name)
		}
	} else {
		c.logger.Info("No tool changes detected")
	}
}
