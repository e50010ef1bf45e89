package app

import (
	"macrolog/internal/garmin"
	"macrolog/internal/nutrition"
	"macrolog/internal/server"
	"macrolog/pkg/logging"
)

// Services holds all initialized components used by the application.
//
// Wiring order matters: the token source feeds the Garmin client, the
// client feeds the tool provider, and the provider feeds the MCP server.
// The token watcher sits alongside and invalidates the token source when
// the login flow rewrites the token file.
type Services struct {
	// TokenSource loads OAuth2 tokens from the configured token file.
	TokenSource *garmin.FileTokenSource

	// TokenWatcher monitors the token file so externally refreshed
	// credentials are picked up without a restart.
	TokenWatcher *garmin.TokenWatcher

	// Client is the Garmin Connect nutrition API client.
	Client *garmin.Client

	// Provider exposes the nutrition tools.
	Provider *nutrition.Provider

	// MCPServer serves the provider's tools over the configured transport.
	MCPServer *server.MCPServer
}

// InitializeServices wires all components for the application. It performs
// no I/O; the token file is first read when the client makes its first
// request, and the watcher only starts watching in Run.
func InitializeServices(cfg *Config) (*Services, error) {
	garminCfg := cfg.MacrologConfig.Garmin

	tokenSource := garmin.NewFileTokenSource(garminCfg.TokenFile)

	tokenWatcher := garmin.NewTokenWatcher(garmin.TokenWatcherConfig{
		TokenFile: garminCfg.TokenFile,
		OnChange: func() {
			logging.Info("Services", "Token file changed, reloading credentials")
			tokenSource.Invalidate()
		},
	})

	client := garmin.NewClient(garmin.Config{
		Domain:    garminCfg.Domain,
		TokenFile: garminCfg.TokenFile,
	}, garmin.WithTokenSource(tokenSource))

	provider := nutrition.NewProvider(client)

	mcpServer := server.NewMCPServer(cfg.MacrologConfig.Server, provider)

	return &Services{
		TokenSource:  tokenSource,
		TokenWatcher: tokenWatcher,
		Client:       client,
		Provider:     provider,
		MCPServer:    mcpServer,
	}, nil
}
