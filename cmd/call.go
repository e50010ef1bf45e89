package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"macrolog/internal/cli"

	"github.com/spf13/cobra"
)

var (
	callFlags    cli.CommandFlags
	callArgPairs []string
)

// callCmd represents the call command
var callCmd = &cobra.Command{
	Use:   "call <tool> [args...]",
	Short: "Call a nutrition tool on the server",
	Long: `Call an MCP tool on the macrolog server and print the result.

Arguments can be given as a single JSON object, as positional key=value
pairs, or with the repeatable --arg flag. Values in key=value form are
parsed as JSON when possible (numbers, booleans, arrays, objects) and
fall back to plain strings. --arg pairs override positional pairs with
the same key.

Examples:
  macrolog call get_nutrition_log date=2024-03-14
  macrolog call search_foods query="greek yogurt" max_results=10
  macrolog call log_food '{"date": "2024-03-14", "meal": "BREAKFAST", "food_id": 123, "serving_qty": 1.5}'
  macrolog call quick_add_nutrition --arg date=2024-03-14 --arg meal=LUNCH --arg calories=450
  macrolog call remove_food_log date=2024-03-14 log_ids=abc123,def456 -o json

Note: The server must be running (use 'macrolog serve') before using this command.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCall,
}

func init() {
	rootCmd.AddCommand(callCmd)

	cli.RegisterCommonFlags(callCmd, &callFlags)
	callCmd.Flags().StringArrayVar(&callArgPairs, "arg", nil, "Tool argument as key=value (repeatable)")

	callCmd.ValidArgsFunction = toolNameCompletion(&callFlags)
}

func runCall(cmd *cobra.Command, args []string) error {
	toolName := args[0]

	toolArgs, err := parseCallArgs(args[1:])
	if err != nil {
		return err
	}

	toolArgs, err = mergeArgPairs(toolArgs, callArgPairs)
	if err != nil {
		return err
	}

	opts, err := callFlags.ToExecutorOptions()
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

	return executor.Execute(ctx, toolName, toolArgs)
}

// parseCallArgs converts positional command line arguments to tool
// arguments. A single argument starting with '{' is unmarshaled as a JSON
// object, otherwise every argument must be a key=value pair.
func parseCallArgs(args []string) (map[string]interface{}, error) {
	if len(args) == 0 {
		return nil, nil
	}

	if len(args) == 1 && strings.HasPrefix(strings.TrimSpace(args[0]), "{") {
		var parsed map[string]interface{}
		if err := json.Unmarshal([]byte(args[0]), &parsed); err != nil {
			return nil, fmt.Errorf("invalid JSON arguments: %w", err)
		}
		return parsed, nil
	}

	parsed := make(map[string]interface{})
	for _, arg := range args {
		key, value, err := parseKeyValuePair(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid argument %q (expected key=value or a JSON object)", arg)
		}
		parsed[key] = value
	}
	return parsed, nil
}

// mergeArgPairs applies --arg key=value pairs on top of the positional
// arguments. Pairs with the same key override.
func mergeArgPairs(toolArgs map[string]interface{}, pairs []string) (map[string]interface{}, error) {
	for _, pair := range pairs {
		key, value, err := parseKeyValuePair(pair)
		if err != nil {
			return nil, fmt.Errorf("invalid --arg %q (expected key=value)", pair)
		}
		if toolArgs == nil {
			toolArgs = make(map[string]interface{})
		}
		toolArgs[key] = value
	}
	return toolArgs, nil
}

// parseKeyValuePair splits a key=value argument. The value is parsed as
// JSON where possible so numbers, booleans, arrays and objects keep their
// types, and falls back to a plain string.
func parseKeyValuePair(arg string) (string, interface{}, error) {
	if !strings.Contains(arg, "=") {
		return "", nil, fmt.Errorf("missing '=' in %q", arg)
	}
	parts := strings.SplitN(arg, "=", 2)
	value := stripArgQuotes(parts[1])

	var jsonValue interface{}
	if err := json.Unmarshal([]byte(value), &jsonValue); err == nil {
		return parts[0], jsonValue, nil
	}
	return parts[0], value, nil
}

// stripArgQuotes removes surrounding quotes from a value if present
func stripArgQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
