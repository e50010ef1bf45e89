package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"macrolog/internal/config"
	"macrolog/pkg/logging"
)

// Application bootstraps and runs the macrolog server. It encapsulates the
// loaded configuration and the wired services for the process lifecycle.
//
// The Application follows a two-phase initialization pattern:
//  1. Bootstrap phase: Load configuration, initialize logging, wire services
//  2. Execution phase: Run the MCP server until shutdown
//
// Example usage:
//
//	cfg := app.NewConfig(false, false, "")
//	application, err := app.NewApplication(cfg)
//	if err != nil {
//	    return fmt.Errorf("failed to create application: %w", err)
//	}
//	return application.Run(ctx)
type Application struct {
	config   *Config
	services *Services
}

// NewApplication creates and initializes a new application instance with the
// provided configuration. This function performs the complete bootstrap
// sequence:
//
//  1. Configures logging based on debug settings
//  2. Loads the macrolog configuration, unless pre-populated
//  3. Validates the loaded configuration
//  4. Wires the Garmin client, tool provider and MCP server
//
// Configuration Loading Behavior:
//   - If cfg.ConfigPath is set: loads from the specified directory only
//   - If cfg.ConfigPath is empty: loads from ~/.config/macrolog
//   - If cfg.MacrologConfig is already set: no loading happens at all
//
// The function returns an error if configuration loading, validation or
// service wiring fails.
func NewApplication(cfg *Config) (*Application, error) {
	// Configure logging based on debug flag
	appLogLevel := logging.LevelInfo
	if cfg.Debug {
		appLogLevel = logging.LevelDebug
	}

	var logOutput io.Writer = os.Stdout
	if cfg.Silent {
		// If silent mode is enabled, suppress all output
		logOutput = io.Discard
	}
	logging.InitForCLI(appLogLevel, logOutput)

	if cfg.MacrologConfig == nil {
		configPath := cfg.ConfigPath
		if configPath == "" {
			configPath = config.GetDefaultConfigPathOrPanic()
		}

		macrologCfg, err := config.LoadConfig(configPath)
		if err != nil {
			logging.Error("Bootstrap", err, "Failed to load configuration from %s", configPath)
			return nil, fmt.Errorf("failed to load configuration from %s: %w", configPath, err)
		}
		cfg.MacrologConfig = &macrologCfg
	}

	if err := cfg.MacrologConfig.Validate(); err != nil {
		logging.Error("Bootstrap", err, "Invalid configuration")
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// The stdio transport owns stdout for the protocol stream, so logs
	// move to stderr.
	if cfg.MacrologConfig.Server.Transport == config.MCPTransportStdio && !cfg.Silent {
		logging.InitForCLI(appLogLevel, os.Stderr)
	}

	services, err := InitializeServices(cfg)
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to initialize services")
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	return &Application{
		config:   cfg,
		services: services,
	}, nil
}

// Run executes the application
//
// Handles graceful shutdown via context cancellation and system signals.
// The method blocks until the application is terminated or encounters an
// error.
func (a *Application) Run(ctx context.Context) error {
	return runServer(ctx, a.services)
}
