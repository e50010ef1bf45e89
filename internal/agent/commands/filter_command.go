package commands

import (
	"context"
	"encoding/json"
	"strings"
)

// FilterCommand filters the cached tools by name pattern and description
type FilterCommand struct {
	*BaseCommand
}

// NewFilterCommand creates a new filter command
func NewFilterCommand(client ClientInterface, output OutputLogger, transport TransportInterface) *FilterCommand {
	return &FilterCommand{
		BaseCommand: NewBaseCommand(client, output, transport),
	}
}

// Execute filters tools based on patterns
func (f *FilterCommand) Execute(ctx context.Context, args []string) error {
	parsed, err := f.parseArgs(args, 1, f.Usage())
	if err != nil {
		return err
	}

	target := strings.ToLower(parsed[0])
	if target != "tools" {
		return f.validateTarget(target, []string{"tools"})
	}

	// Get pattern and description filter from args
	var pattern, descriptionFilter string
	var caseSensitive, detailed bool

	if len(parsed) > 1 {
		pattern = stripQuotes(parsed[1])
	}
	if len(parsed) > 2 {
		descriptionFilter = stripQuotes(parsed[2])
	}
	if len(parsed) > 3 {
		caseSensitive = strings.ToLower(parsed[3]) == "true"
	}
	if len(parsed) > 4 {
		detailed = strings.ToLower(parsed[4]) == "true"
	}

	return f.filterTools(pattern, descriptionFilter, caseSensitive, detailed)
}

// filterTools filters the cached tool list by name pattern and description substring
func (f *FilterCommand) filterTools(pattern, descriptionFilter string, caseSensitive bool, detailed bool) error {
	tools := f.client.GetToolCache()
	if len(tools) == 0 {
		f.output.OutputLine("No tools available to filter")
		return nil
	}

	var matched []int
	for i, tool := range tools {
		matches := true

		// Check pattern filter with wildcard support
		if pattern != "" {
			matches = f.matchesPattern(tool.Name, pattern, caseSensitive)
		}

		// Check description filter
		if descriptionFilter != "" && matches {
			toolDesc := tool.Description
			searchDesc := descriptionFilter

			if !caseSensitive {
				toolDesc = strings.ToLower(toolDesc)
				searchDesc = strings.ToLower(searchDesc)
			}

			matches = strings.Contains(toolDesc, searchDesc)
		}

		if matches {
			matched = append(matched, i)
		}
	}

	// Show filter details
	if pattern != "" || descriptionFilter != "" {
		f.output.Info("Filtering tools with:")
		if pattern != "" {
			f.output.Info("  Pattern: %s", pattern)
		}
		if descriptionFilter != "" {
			f.output.Info("  Description filter: %s", descriptionFilter)
		}
		f.output.Info("  Case sensitive: %t", caseSensitive)
		f.output.Info("Results: %d of %d tools match", len(matched), len(tools))
	}

	if len(matched) == 0 {
		f.output.OutputLine("No tools match the specified filters.")
		return nil
	}

	if detailed {
		// Detailed mode - show full specifications
		f.output.OutputLine("\nFiltered Tools with Full Specifications:")
		f.output.OutputLine(strings.Repeat("=", 60))

		for n, i := range matched {
			tool := tools[i]
			f.output.OutputLine("\n%d. %s", n+1, tool.Name)
			f.output.OutputLine("   Description: %s", tool.Description)
			if schemaJSON, err := json.MarshalIndent(tool.InputSchema, "  ", "  "); err == nil {
				f.output.OutputLine("   Schema: %s", string(schemaJSON))
			}
			if n < len(matched)-1 {
				f.output.OutputLine(strings.Repeat("-", 40))
			}
		}
	} else {
		// Brief mode - show simple list
		f.output.OutputLine("\nMatching tools:")
		for n, i := range matched {
			tool := tools[i]
			f.output.OutputLine("  %d. %-30s - %s", n+1, tool.Name, tool.Description)
		}
	}

	return nil
}

// matchesPattern reports whether a tool name matches the wildcard pattern
func (f *FilterCommand) matchesPattern(toolName, pattern string, caseSensitive bool) bool {
	if !caseSensitive {
		toolName = strings.ToLower(toolName)
		pattern = strings.ToLower(pattern)
	}
	return matchWildcard(toolName, pattern)
}

// matchWildcard matches text against a pattern where '*' matches any sequence
// of characters. A pattern without wildcards matches as a substring. The parts
// between wildcards must appear in the text in pattern order.
func matchWildcard(text, pattern string) bool {
	if pattern == "" {
		return text == ""
	}

	if !strings.Contains(pattern, "*") {
		return strings.Contains(text, pattern)
	}

	remaining := text
	for _, part := range strings.Split(pattern, "*") {
		if part == "" {
			continue
		}
		idx := strings.Index(remaining, part)
		if idx < 0 {
			return false
		}
		remaining = remaining[idx+len(part):]
	}
	return true
}

// Usage returns the usage string
func (f *FilterCommand) Usage() string {
	return "filter tools [pattern] [description-filter] [case-sensitive] [detailed]"
}

// Description returns the command description
func (f *FilterCommand) Description() string {
	return "Filter tools by name pattern or description"
}

// Completions returns possible completions
func (f *FilterCommand) Completions(input string) []string {
	parts := strings.Fields(input)

	if len(parts) == 1 {
		return []string{"tools"}
	}

	return []string{}
}

// Aliases returns command aliases
func (f *FilterCommand) Aliases() []string {
	return []string{"find", "search"}
}
