package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	pkgstrings "macrolog/pkg/strings"

	"gopkg.in/yaml.v3"
)

// mcpToolListItem represents a tool in list output format.
// Uses both json and yaml tags to avoid duplication across format cases.
type mcpToolListItem struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

// outputJSON marshals data to JSON and prints it to stdout.
func outputJSON(data interface{}) error {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to format as JSON: %w", err)
	}
	fmt.Println(string(jsonData))
	return nil
}

// outputYAML marshals data to YAML and prints it to stdout.
func outputYAML(data interface{}) error {
	yamlData, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to format as YAML: %w", err)
	}
	fmt.Print(string(yamlData))
	return nil
}

// Description truncation lengths for table output.
// Different lengths are used based on the number of columns displayed.
const (
	// descLengthNormal is used for standard table output with fewer columns.
	// Uses the shared constant from pkg/strings for consistency across packages.
	descLengthNormal = pkgstrings.DefaultDescriptionMaxLen
	// descLengthWide is used for wide output where more columns are displayed.
	descLengthWide = 50
)

// truncateString truncates a string to maxLen characters, adding "..." if truncated.
// It also replaces newlines with spaces to ensure single-line output.
// This is a convenience wrapper around pkgstrings.TruncateDescription.
func truncateString(s string, maxLen int) string {
	return pkgstrings.TruncateDescription(s, maxLen)
}

// pluralize returns a formatted string with count and properly pluralized word.
// Example: pluralize(1, "tool") -> "1 tool", pluralize(5, "tool") -> "5 tools"
func pluralize(count int, singular string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %ss", count, singular)
}

// FormatMCPTools formats and displays the tool list with headers enabled.
func FormatMCPTools(tools []MCPTool, format OutputFormat) error {
	return FormatMCPToolsWithOptions(tools, format, false)
}

// FormatMCPToolsWithOptions formats and displays the tool list with additional options.
func FormatMCPToolsWithOptions(tools []MCPTool, format OutputFormat, noHeaders bool) error {
	if len(tools) == 0 {
		fmt.Println("No tools found")
		return nil
	}

	// Sort tools by name for consistent output
	sort.Slice(tools, func(i, j int) bool {
		return tools[i].Name < tools[j].Name
	})

	// Convert to list items for JSON/YAML output
	if format == OutputFormatJSON || format == OutputFormatYAML {
		items := make([]mcpToolListItem, len(tools))
		for i, tool := range tools {
			items[i] = mcpToolListItem{
				Name:        tool.Name,
				Description: tool.Description,
			}
		}
		if format == OutputFormatJSON {
			return outputJSON(items)
		}
		return outputYAML(items)
	}

	// kubectl-style plain table format
	tw := NewPlainTableWriter(os.Stdout)

	// Wide mode: add argument summary column
	isWide := format == OutputFormatWide
	if isWide {
		tw.SetHeaders([]string{"NAME", "DESCRIPTION", "ARGS"})
	} else {
		tw.SetHeaders([]string{"NAME", "DESCRIPTION"})
	}
	tw.SetNoHeaders(noHeaders)

	for _, tool := range tools {
		if isWide {
			argCount := countToolArgs(tool)
			tw.AppendRow([]string{
				tool.Name,
				truncateString(tool.Description, descLengthWide),
				argCount,
			})
		} else {
			tw.AppendRow([]string{tool.Name, truncateString(tool.Description, descLengthNormal)})
		}
	}

	tw.Render()

	// Print summary unless headers are suppressed (implies scripting mode)
	if !noHeaders {
		fmt.Printf("\n%s\n", pluralize(len(tools), "tool"))
	}
	return nil
}

// countToolArgs returns a string representation of the number of arguments.
func countToolArgs(tool MCPTool) string {
	if tool.InputSchema.Properties == nil {
		return "-"
	}
	count := len(tool.InputSchema.Properties)
	if count == 0 {
		return "-"
	}
	reqCount := len(tool.InputSchema.Required)
	if reqCount > 0 {
		return fmt.Sprintf("%d (%d req)", count, reqCount)
	}
	return fmt.Sprintf("%d", count)
}

// FormatMCPToolDetail formats and displays detailed info for a single tool.
// For table format, it uses a kubectl-describe-like plain text output.
func FormatMCPToolDetail(tool MCPTool, format OutputFormat) error {
	if format == OutputFormatJSON || format == OutputFormatYAML {
		toolInfo := map[string]interface{}{
			"name":        tool.Name,
			"description": tool.Description,
			"inputSchema": tool.InputSchema,
		}
		if format == OutputFormatJSON {
			return outputJSON(toolInfo)
		}
		return outputYAML(toolInfo)
	}

	// kubectl-describe-like plain text format
	fmt.Printf("Name:         %s\n", tool.Name)
	fmt.Printf("Description:  %s\n", tool.Description)

	// Render input schema as readable arguments
	if tool.InputSchema.Properties != nil {
		fmt.Println("\nArguments:")
		renderSchemaProperties(tool.InputSchema.Properties, tool.InputSchema.Required, "  ")
	}

	return nil
}

// renderSchemaProperties renders JSON schema properties in a readable format.
// It recursively handles nested objects and arrays.
func renderSchemaProperties(properties map[string]interface{}, required []string, indent string) {
	// Build a set of required properties for fast lookup
	requiredSet := make(map[string]bool)
	for _, r := range required {
		requiredSet[r] = true
	}

	// Get sorted property names for consistent output
	names := make([]string, 0, len(properties))
	for name := range properties {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		prop := properties[name]
		propMap, ok := prop.(map[string]interface{})
		if !ok {
			continue
		}

		// Get type
		propType := "any"
		if t, ok := propMap["type"].(string); ok {
			propType = t
		}

		// Check if required
		isRequired := requiredSet[name]
		requiredStr := ""
		if isRequired {
			requiredStr = ", required"
		}

		fmt.Printf("%s%s (%s%s)\n", indent, name, propType, requiredStr)

		// Description
		if desc, ok := propMap["description"].(string); ok && desc != "" {
			// Wrap long descriptions
			wrapped := wrapText(desc, 60)
			for i, line := range wrapped {
				if i == 0 {
					fmt.Printf("%s  Description: %s\n", indent, line)
				} else {
					fmt.Printf("%s               %s\n", indent, line)
				}
			}
		}

		// Default value
		if def, ok := propMap["default"]; ok {
			fmt.Printf("%s  Default: %v\n", indent, def)
		}

		// Enum values
		if enum, ok := propMap["enum"].([]interface{}); ok && len(enum) > 0 {
			enumStrs := make([]string, len(enum))
			for i, e := range enum {
				enumStrs[i] = fmt.Sprintf("%v", e)
			}
			fmt.Printf("%s  Values: %s\n", indent, strings.Join(enumStrs, ", "))
		}

		// Handle nested object properties
		if propType == "object" {
			if nestedProps, ok := propMap["properties"].(map[string]interface{}); ok {
				fmt.Printf("%s  Properties:\n", indent)
				renderSchemaProperties(nestedProps, schemaRequiredList(propMap), indent+"    ")
			}
			// Handle additionalProperties for map-like objects
			if addProps, ok := propMap["additionalProperties"].(map[string]interface{}); ok {
				fmt.Printf("%s  Value Schema:\n", indent)
				renderAdditionalProperties(addProps, indent+"    ")
			}
		}

		// Handle array items
		if propType == "array" {
			if items, ok := propMap["items"].(map[string]interface{}); ok {
				fmt.Printf("%s  Items:\n", indent)
				renderArrayItems(items, indent+"    ")
			}
		}
	}
}

// schemaRequiredList extracts the required list from a nested schema node.
func schemaRequiredList(schema map[string]interface{}) []string {
	req, ok := schema["required"].([]interface{})
	if !ok {
		return nil
	}

	var required []string
	for _, r := range req {
		if s, ok := r.(string); ok {
			required = append(required, s)
		}
	}
	return required
}

// renderAdditionalProperties renders the schema for additionalProperties.
func renderAdditionalProperties(props map[string]interface{}, indent string) {
	propType := "any"
	if t, ok := props["type"].(string); ok {
		propType = t
	}
	fmt.Printf("%sType: %s\n", indent, propType)

	if desc, ok := props["description"].(string); ok && desc != "" {
		fmt.Printf("%sDescription: %s\n", indent, desc)
	}

	if propType == "object" {
		if nestedProps, ok := props["properties"].(map[string]interface{}); ok {
			fmt.Printf("%sProperties:\n", indent)
			renderSchemaProperties(nestedProps, schemaRequiredList(props), indent+"  ")
		}
	}
}

// renderArrayItems renders the schema for array items.
func renderArrayItems(items map[string]interface{}, indent string) {
	itemType := "any"
	if t, ok := items["type"].(string); ok {
		itemType = t
	}
	fmt.Printf("%sType: %s\n", indent, itemType)

	if desc, ok := items["description"].(string); ok && desc != "" {
		fmt.Printf("%sDescription: %s\n", indent, desc)
	}

	if itemType == "object" {
		if nestedProps, ok := items["properties"].(map[string]interface{}); ok {
			fmt.Printf("%sProperties:\n", indent)
			renderSchemaProperties(nestedProps, schemaRequiredList(items), indent+"  ")
		}
	}
}

// wrapText wraps text to the specified width at word boundaries.
func wrapText(text string, width int) []string {
	if len(text) <= width {
		return []string{text}
	}

	var lines []string
	words := strings.Fields(text)
	currentLine := ""

	for _, word := range words {
		if currentLine == "" {
			currentLine = word
		} else if len(currentLine)+1+len(word) <= width {
			currentLine += " " + word
		} else {
			lines = append(lines, currentLine)
			currentLine = word
		}
	}

	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return lines
}
