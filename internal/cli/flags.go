package cli

import (
	"fmt"

	"macrolog/internal/config"

	"github.com/spf13/cobra"
)

// CommandFlags holds the common flag values shared by the one-shot CLI
// commands (tools, call).
type CommandFlags struct {
	// OutputFormat specifies the output format (table, wide, json, yaml)
	OutputFormat string
	// NoHeaders suppresses the header row in table output
	NoHeaders bool
	// Quiet suppresses progress indicators
	Quiet bool
	// Debug enables MCP protocol logging
	Debug bool
	// ConfigPath overrides the configuration directory
	ConfigPath string
	// Endpoint overrides the server endpoint URL
	Endpoint string
}

// RegisterCommonFlags registers the output and connection flags on a command.
func RegisterCommonFlags(cmd *cobra.Command, flags *CommandFlags) {
	cmd.Flags().StringVarP(&flags.OutputFormat, "output", "o", "table",
		"Output format (table|wide|json|yaml)")
	cmd.Flags().BoolVar(&flags.NoHeaders, "no-headers", false,
		"Don't print table headers")
	cmd.Flags().BoolVarP(&flags.Quiet, "quiet", "q", false,
		"Suppress progress indicators")
	cmd.Flags().BoolVar(&flags.Debug, "debug", false,
		"Enable debug logging of MCP communication")
	RegisterConnectionFlags(cmd, flags)
}

// RegisterConnectionFlags registers only the flags needed to locate the
// server. Commands that produce no formatted output use this instead of
// RegisterCommonFlags.
func RegisterConnectionFlags(cmd *cobra.Command, flags *CommandFlags) {
	cmd.Flags().StringVar(&flags.ConfigPath, "config-path", config.GetDefaultConfigPathOrPanic(),
		"Configuration directory to use")
	cmd.Flags().StringVar(&flags.Endpoint, "endpoint", GetDefaultEndpoint(),
		fmt.Sprintf("Server endpoint URL (env: %s)", EndpointEnvVar))
}

// ToExecutorOptions converts command flags to executor options,
// validating the output format.
func (f *CommandFlags) ToExecutorOptions() (ExecutorOptions, error) {
	if err := ValidateOutputFormat(f.OutputFormat); err != nil {
		return ExecutorOptions{}, err
	}

	return ExecutorOptions{
		Format:     OutputFormat(f.OutputFormat),
		NoHeaders:  f.NoHeaders,
		Quiet:      f.Quiet,
		Debug:      f.Debug,
		ConfigPath: f.ConfigPath,
		Endpoint:   f.Endpoint,
	}, nil
}
