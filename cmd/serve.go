package cmd

import (
	"context"
	"fmt"

	"macrolog/internal/app"

	"github.com/spf13/cobra"
)

// serveDebug enables verbose logging across the application.
// This helps troubleshoot Garmin Connect API issues and understand request behavior.
var serveDebug bool

// serveSilent disables all console logging.
// Standalone mode sets this so server logs do not interleave with the REPL.
var serveSilent bool

// serveConfigPath specifies a custom configuration directory path.
// When set, configuration is loaded from this directory instead of the
// default user config directory. The directory should contain config.yaml
// and the Garmin OAuth token file.
var serveConfigPath string

// serveCmd defines the serve command structure.
// This is the main command of macrolog that starts the MCP nutrition server
// backed by the Garmin Connect API.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the macrolog MCP nutrition server",
	Long: `Starts the macrolog MCP server and exposes the Garmin Connect nutrition
tools to AI assistants.

The server speaks the MCP protocol over the transport configured in
config.yaml (streamable-http by default; sse and stdio are also
supported). Tools cover food search, food and meal logging, favorites,
custom foods and daily nutrition reports.

Use 'macrolog agent --repl', 'macrolog tools' or 'macrolog call' to
interact with the running server.

Configuration:
  macrolog loads configuration from config.yaml in the configuration
  directory (default: ~/.config/macrolog). The same directory holds the
  Garmin OAuth token (token.json), which is watched for changes and
  reloaded without a restart.

  Use --config-path to load configuration from a different directory.`,
	Args: cobra.NoArgs, // No arguments required
	RunE: runServe,
}

// runServe is the main entry point for the serve command
func runServe(cmd *cobra.Command, args []string) error {
	cfg := app.NewConfig(serveDebug, serveSilent, serveConfigPath)

	// Create and initialize the application
	application, err := app.NewApplication(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	// Run the application
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return application.Run(ctx)
}

// init registers the serve command and its flags with the root command.
// This is called automatically when the package is imported.
func init() {
	rootCmd.AddCommand(serveCmd)

	// Register command flags
	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "Enable general debug logging")
	serveCmd.Flags().BoolVar(&serveSilent, "silent", false, "Disable all console logging")
	serveCmd.Flags().StringVar(&serveConfigPath, "config-path", "", "Custom configuration directory path")
}
