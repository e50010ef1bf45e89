package commands

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// CallCommand executes tools with arguments
type CallCommand struct {
	*BaseCommand
}

// NewCallCommand creates a new call command
func NewCallCommand(client ClientInterface, output OutputLogger, transport TransportInterface) *CallCommand {
	return &CallCommand{
		BaseCommand: NewBaseCommand(client, output, transport),
	}
}

// Execute calls a tool with the given arguments.
// Arguments can be given either as key=value pairs or as a single JSON object.
// When the tool is known and declares required parameters, calling it without
// arguments prints its parameter help instead of executing it.
func (c *CallCommand) Execute(ctx context.Context, args []string) error {
	parsed, err := c.parseArgs(args, 1, c.Usage())
	if err != nil {
		return err
	}

	toolName := parsed[0]
	tool := c.findTool(toolName)

	var toolArgs map[string]interface{}
	if len(parsed) > 1 {
		argsStr := c.joinArgsFrom(parsed, 1)
		if strings.HasPrefix(strings.TrimSpace(argsStr), "{") {
			if err := json.Unmarshal([]byte(argsStr), &toolArgs); err != nil {
				c.output.Error("Arguments must be valid JSON: %v", err)
				c.output.OutputLine("Hint: Did you mean to use key=value syntax instead?")
				return nil
			}
		} else {
			toolArgs = c.parseKeyValueArgs(parsed[1:])
		}
	} else {
		// No arguments given. Show parameter help for known tools that
		// require arguments rather than sending a call that must fail.
		if required := c.getRequiredParams(tool); len(required) > 0 {
			c.showToolHelp(tool)
			return nil
		}
		toolArgs = make(map[string]interface{})
	}

	// Show what we're doing
	c.output.Info("Executing tool: %s...", toolName)

	// Call the tool
	result, err := c.client.CallTool(ctx, toolName, toolArgs)
	if err != nil {
		c.output.Error("Tool execution failed: %v", err)
		return nil
	}

	// Handle error results
	if result.IsError {
		c.output.OutputLine("Tool returned an error:")
		for _, content := range result.Content {
			if textContent, ok := mcp.AsTextContent(content); ok {
				c.output.OutputLine("  %s", textContent.Text)
			}
		}
		return nil
	}

	// Display results
	c.output.OutputLine("Result:")
	if len(result.Content) == 0 {
		c.output.OutputLine("  (no output returned)")
		return nil
	}
	for _, content := range result.Content {
		switch v := content.(type) {
		case mcp.TextContent:
			// Try to format as JSON if possible
			var jsonObj interface{}
			if err := json.Unmarshal([]byte(v.Text), &jsonObj); err == nil {
				if b, err := json.MarshalIndent(jsonObj, "", "  "); err == nil {
					c.output.OutputLine(string(b))
				} else {
					c.output.OutputLine(v.Text)
				}
			} else {
				c.output.OutputLine(v.Text)
			}
		case mcp.ImageContent:
			c.output.OutputLine("[Image: MIME type %s, %d bytes]", v.MIMEType, len(v.Data))
		case mcp.AudioContent:
			c.output.OutputLine("[Audio: MIME type %s, %d bytes]", v.MIMEType, len(v.Data))
		default:
			c.output.OutputLine("%+v", content)
		}
	}

	return nil
}

// showToolHelp displays the tool's parameters with required markers and descriptions
func (c *CallCommand) showToolHelp(tool *mcp.Tool) {
	c.output.OutputLine("Tool: %s", tool.Name)
	if tool.Description != "" {
		c.output.OutputLine("Description: %s", tool.Description)
	}
	c.output.OutputLine("")
	c.output.OutputLine("Parameters:")

	required := make(map[string]bool)
	for _, name := range c.getRequiredParams(tool) {
		required[name] = true
	}

	for _, name := range c.getToolParams(tool) {
		marker := " "
		if required[name] {
			marker = "*"
		}
		desc := ""
		if prop, ok := tool.InputSchema.Properties[name].(map[string]interface{}); ok {
			desc = getStringFromMap(prop, "description", "")
			if typ := getStringFromMap(prop, "type", ""); typ != "" {
				desc = "(" + typ + ") " + desc
			}
		}
		c.output.OutputLine("  %s %-20s %s", marker, name, desc)
	}

	c.output.OutputLine("  * = required parameter")
	c.output.OutputLine("")
	c.output.OutputLine("Usage: call %s param=value ...", tool.Name)
}

// Usage returns the usage string
func (c *CallCommand) Usage() string {
	return "call <tool-name> [key=value ...] or call <tool-name> [JSON arguments]"
}

// Description returns the command description
func (c *CallCommand) Description() string {
	return "Execute a tool with key=value or JSON arguments"
}

// Completions returns possible completions
func (c *CallCommand) Completions(input string) []string {
	parts := strings.Fields(input)

	// First argument is the tool name
	if len(parts) <= 1 {
		return c.getToolCompletions()
	}

	// Later arguments complete the tool's remaining parameters
	tool := c.findTool(parts[1])
	if tool == nil {
		return []string{}
	}

	var completions []string
	for _, param := range c.getToolParams(tool) {
		if !strings.Contains(input, param+"=") {
			completions = append(completions, param+"=")
		}
	}
	return completions
}

// Aliases returns command aliases
func (c *CallCommand) Aliases() []string {
	return []string{"run", "exec"}
}
