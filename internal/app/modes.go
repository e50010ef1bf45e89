package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"macrolog/pkg/logging"
)

// runServer starts the MCP server and blocks until the process is told to
// stop. This is the only execution mode; it is designed for interactive
// use, systemd services and MCP client supervision alike.
//
// Shutdown triggers:
//   - SIGINT (Ctrl+C) and SIGTERM trigger graceful shutdown
//   - Context cancellation triggers graceful shutdown
//   - The stdio transport additionally stops when its input stream ends,
//     which is how MCP clients signal disconnection
//
// The token watcher is best-effort: if watching the token file fails the
// server still runs, it just will not pick up externally refreshed tokens
// until restart.
func runServer(ctx context.Context, services *Services) error {
	if err := services.TokenWatcher.Start(); err != nil {
		logging.Warn("Server", "Token watcher unavailable: %v", err)
	}

	if err := services.MCPServer.Start(ctx); err != nil {
		logging.Error("Server", err, "Failed to start MCP server")
		return err
	}

	logging.Info("Server", "Serving on %s. Press Ctrl+C to stop.", services.MCPServer.GetEndpoint())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case <-sigChan:
		logging.Info("Server", "Received shutdown signal")
	case <-ctx.Done():
		logging.Info("Server", "Context cancelled")
	case <-services.MCPServer.Done():
		logging.Info("Server", "Transport closed")
	}

	// Graceful shutdown sequence
	if err := services.TokenWatcher.Stop(); err != nil {
		logging.Error("Server", err, "Error stopping token watcher")
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return services.MCPServer.Stop(stopCtx)
}
