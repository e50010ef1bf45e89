package commands

import (
	"context"
	"fmt"
	"strings"
)

// ListCommand lists the tools available on the server
type ListCommand struct {
	*BaseCommand
}

// NewListCommand creates a new list command
func NewListCommand(client ClientInterface, output OutputLogger, transport TransportInterface) *ListCommand {
	return &ListCommand{
		BaseCommand: NewBaseCommand(client, output, transport),
	}
}

// Execute lists the available tools
func (l *ListCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: %s", l.Usage())
	}

	target := strings.ToLower(args[0])
	switch target {
	case "tools":
		if err := l.client.RefreshToolCache(ctx); err != nil {
			l.output.Error("Failed to refresh tool cache: %v", err)
			// Continue with the cached tools if refresh fails
		}
		return l.listTools()
	default:
		return l.validateTarget(target, []string{"tools"})
	}
}

// listTools lists all available tools
func (l *ListCommand) listTools() error {
	tools := l.client.GetToolCache()
	l.output.OutputLine(l.getFormatters().FormatToolsList(tools))
	return nil
}

// Usage returns the usage string
func (l *ListCommand) Usage() string {
	return "list tools"
}

// Description returns the command description
func (l *ListCommand) Description() string {
	return "List the tools available on the server"
}

// Completions returns possible completions
func (l *ListCommand) Completions(input string) []string {
	return l.getCompletionsForTargets([]string{"tools"})
}

// Aliases returns command aliases
func (l *ListCommand) Aliases() []string {
	return []string{"ls"}
}
