package commands

import (
	"context"
	"strings"
)

// DescribeCommand shows detailed information about a tool
type DescribeCommand struct {
	*BaseCommand
}

// NewDescribeCommand creates a new describe command
func NewDescribeCommand(client ClientInterface, output OutputLogger, transport TransportInterface) *DescribeCommand {
	return &DescribeCommand{
		BaseCommand: NewBaseCommand(client, output, transport),
	}
}

// Execute describes a tool
func (d *DescribeCommand) Execute(ctx context.Context, args []string) error {
	parsed, err := d.parseArgs(args, 2, d.Usage())
	if err != nil {
		return err
	}

	itemType := strings.ToLower(parsed[0])
	itemName := parsed[1]

	switch itemType {
	case "tool":
		return d.describeTool(itemName)
	default:
		return d.validateTarget(itemType, []string{"tool"})
	}
}

// describeTool shows detailed information about a tool
func (d *DescribeCommand) describeTool(name string) error {
	tools := d.client.GetToolCache()
	tool := d.getFormatters().FindTool(tools, name)
	if tool == nil {
		d.output.Error("Tool not found: %s", name)
		return nil
	}

	d.output.OutputLine(d.getFormatters().FormatToolDetail(*tool))
	return nil
}

// Usage returns the usage string
func (d *DescribeCommand) Usage() string {
	return "describe tool <name>"
}

// Description returns the command description
func (d *DescribeCommand) Description() string {
	return "Show detailed information about a tool"
}

// Completions returns possible completions
func (d *DescribeCommand) Completions(input string) []string {
	parts := strings.Fields(input)

	if len(parts) == 1 {
		// Complete the type
		return d.getCompletionsForTargets([]string{"tool"})
	} else if len(parts) == 2 {
		// Complete the name based on type
		switch strings.ToLower(parts[1]) {
		case "tool":
			return d.getToolCompletions()
		}
	}

	return []string{}
}

// Aliases returns command aliases
func (d *DescribeCommand) Aliases() []string {
	return []string{"desc", "info"}
}
