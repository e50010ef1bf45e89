package cmd

import (
	"fmt"
	"path"
	"strings"

	"macrolog/internal/cli"

	"github.com/spf13/cobra"
)

var (
	toolsFlags       cli.CommandFlags
	toolsFilter      string
	toolsDescription string
)

// MCPFilterOptions contains filter criteria for tool listings
type MCPFilterOptions struct {
	// Pattern is a wildcard pattern to match against names (* and ? supported)
	Pattern string
	// Description is a case-insensitive substring to match against descriptions
	Description string
}

// IsEmpty returns true if no filters are set
func (o MCPFilterOptions) IsEmpty() bool {
	return o.Pattern == "" && o.Description == ""
}

// matchesWildcard checks if a name matches a wildcard pattern.
// Supports * (matches any sequence of characters) and ? (matches any single character).
func matchesWildcard(name, pattern string) bool {
	if pattern == "" {
		return true
	}
	// path.Match uses the same wildcard syntax we want
	matched, err := path.Match(pattern, name)
	if err != nil {
		// Invalid pattern - return false
		return false
	}
	return matched
}

// matchesDescription checks if a description contains the given substring (case-insensitive)
func matchesDescription(description, filter string) bool {
	if filter == "" {
		return true
	}
	return strings.Contains(strings.ToLower(description), strings.ToLower(filter))
}

// matchesMCPFilter checks if a tool matches both the name pattern and the description filter
func matchesMCPFilter(name, description string, opts MCPFilterOptions) bool {
	return matchesWildcard(name, opts.Pattern) && matchesDescription(description, opts.Description)
}

// filterMCPTools filters tools by name pattern and description
func filterMCPTools(tools []cli.MCPTool, opts MCPFilterOptions) []cli.MCPTool {
	if opts.IsEmpty() {
		return tools
	}
	var filtered []cli.MCPTool
	for _, tool := range tools {
		if matchesMCPFilter(tool.Name, tool.Description, opts) {
			filtered = append(filtered, tool)
		}
	}
	return filtered
}

// toolsCmd represents the tools command
var toolsCmd = &cobra.Command{
	Use:   "tools [name]",
	Short: "List the nutrition tools exposed by the server",
	Long: `List the MCP tools exposed by the macrolog server, or show the full
argument schema of a single tool.

Without arguments, all tools are listed. With a tool name, the detailed
description and input schema of that tool are shown.

Filtering:
  --filter <pattern>     - Filter by name pattern (wildcards * and ? supported)
  --description <text>   - Filter by description content (case-insensitive substring)

Examples:
  macrolog tools
  macrolog tools --filter "get_*"
  macrolog tools --filter "*food*" --description "favorite"
  macrolog tools log_food
  macrolog tools search_foods -o json

Note: The server must be running (use 'macrolog serve') before using this command.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTools,
}

func init() {
	rootCmd.AddCommand(toolsCmd)

	cli.RegisterCommonFlags(toolsCmd, &toolsFlags)
	toolsCmd.Flags().StringVar(&toolsFilter, "filter", "", "Filter by name pattern (wildcards * and ? supported)")
	toolsCmd.Flags().StringVar(&toolsDescription, "description", "", "Filter by description content (case-insensitive substring)")

	toolsCmd.ValidArgsFunction = toolNameCompletion(&toolsFlags)
}

func runTools(cmd *cobra.Command, args []string) error {
	opts, err := toolsFlags.ToExecutorOptions()
	if err != nil {
		return err
	}

	executor, err := cli.NewToolExecutor(opts)
	if err != nil {
		return err
	}
	defer executor.Close()

	ctx := cmd.Context()
	if err := executor.Connect(ctx); err != nil {
		return err
	}

	// Single argument: show the detail view for that tool
	if len(args) == 1 {
		tool, err := executor.GetMCPTool(ctx, args[0])
		if err != nil {
			return err
		}
		return cli.FormatMCPToolDetail(*tool, opts.Format)
	}

	tools, err := executor.ListMCPTools(ctx)
	if err != nil {
		return fmt.Errorf("failed to list tools: %w", err)
	}

	filterOpts := MCPFilterOptions{
		Pattern:     toolsFilter,
		Description: toolsDescription,
	}
	tools = filterMCPTools(tools, filterOpts)

	return cli.FormatMCPToolsWithOptions(tools, opts.Format, opts.NoHeaders)
}

// toolNameCompletion returns a shell completion function that asks the
// running server for its tool names. Completion degrades to nothing when
// the server is not reachable.
func toolNameCompletion(flags *cli.CommandFlags) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) != 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}

		executor, err := cli.NewToolExecutor(cli.ExecutorOptions{
			Format:     cli.OutputFormatJSON,
			Quiet:      true,
			ConfigPath: flags.ConfigPath,
			Endpoint:   flags.Endpoint,
		})
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		defer executor.Close()

		ctx := cmd.Context()
		if err := executor.Connect(ctx); err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}

		tools, err := executor.ListMCPTools(ctx)
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}

		var names []string
		for _, tool := range tools {
			if strings.HasPrefix(tool.Name, toComplete) {
				names = append(names, tool.Name)
			}
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	}
}
