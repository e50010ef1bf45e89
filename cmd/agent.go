package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"macrolog/internal/agent"
	"macrolog/internal/cli"
	"macrolog/internal/config"

	"github.com/spf13/cobra"
)

var (
	agentEndpoint   string
	agentVerbose    bool
	agentNoColor    bool
	agentJSONRPC    bool
	agentREPL       bool
	agentTransport  string
	agentConfigPath string
)

// agentCmd represents the agent command
var agentCmd = &cobra.Command{
	Use:   "agent",
	Short: "MCP client for the macrolog server",
	Long: `The agent command connects to the macrolog server as an MCP client,
logs all JSON-RPC communication, and follows dynamic tool updates.

This is useful for inspecting the server's behavior and checking that
the nutrition tools can be executed.

The agent command can run in two modes:
1. Watch mode (default): Connects, lists tools, and waits for notifications
2. REPL mode (--repl): Provides an interactive interface to explore and execute tools

Transport options:
- streamable-http (default): Fast HTTP-based transport with notification support, compatible with macrolog serve
- sse: Server-Sent Events transport with real-time notification support

In REPL mode, you can:
- List available tools and inspect their argument schemas
- Execute tools interactively with JSON or key=value arguments
- Toggle notification display

By default, it connects to the server endpoint configured in your
macrolog configuration file. You can override this with the --endpoint flag.

Note: The server must be running (use 'macrolog serve') before using this command.`,
	RunE: runAgent,
}

func init() {
	rootCmd.AddCommand(agentCmd)

	// Add flags
	agentCmd.Flags().StringVar(&agentEndpoint, "endpoint", "", "Server MCP endpoint URL (default: from config)")
	agentCmd.Flags().BoolVar(&agentVerbose, "verbose", false, "Enable verbose logging (show keepalive messages)")
	agentCmd.Flags().BoolVar(&agentNoColor, "no-color", false, "Disable colored output")
	agentCmd.Flags().BoolVar(&agentJSONRPC, "json-rpc", false, "Enable full JSON-RPC message logging")
	agentCmd.Flags().BoolVar(&agentREPL, "repl", false, "Start interactive REPL mode")
	agentCmd.Flags().StringVar(&agentTransport, "transport", string(agent.TransportStreamableHTTP), "Transport to use (streamable-http, sse)")
	agentCmd.Flags().StringVar(&agentConfigPath, "config-path", config.GetDefaultConfigPathOrPanic(), "Configuration directory")
}

func runAgent(cmd *cobra.Command, args []string) error {
	// Create context with signal handling
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	logger := agent.NewLogger(agentVerbose, !agentNoColor, agentJSONRPC)

	// Handle interrupts gracefully
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("\nReceived interrupt signal, shutting down gracefully...")
		cancel()
	}()

	// Determine endpoint: the --endpoint flag wins, then the configuration
	endpoint := agentEndpoint
	if endpoint == "" {
		endpoint = cli.DetectServerEndpoint(agentConfigPath)
	}

	// Parse transport type
	transport, err := parseAgentTransport(agentTransport)
	if err != nil {
		return err
	}

	// Create agent client
	client := agent.NewClient(endpoint, logger, transport)

	if agentREPL {
		// Connect and load tools with retry logic before handing over to the REPL
		if err := connectWithRetry(ctx, client, logger, endpoint, transport); err != nil {
			return err
		}
		defer client.Close()

		repl := agent.NewREPL(client, logger)
		if err := repl.Run(ctx); err != nil {
			return fmt.Errorf("REPL error: %w", err)
		}
		return nil
	}

	// Watch mode - the client manages its own connection and notification loop
	return client.Run(ctx)
}

// parseAgentTransport maps a transport flag value to the agent transport type.
func parseAgentTransport(name string) (agent.TransportType, error) {
	switch name {
	case "sse":
		return agent.TransportSSE, nil
	case "streamable-http":
		return agent.TransportStreamableHTTP, nil
	default:
		return "", fmt.Errorf("unsupported transport: %s (supported: streamable-http, sse)", name)
	}
}

// connectWithRetry attempts to connect to the server with simple retry logic.
// Standalone mode starts the server and the REPL together, so the first
// attempt may run before the server is listening.
func connectWithRetry(ctx context.Context, client *agent.Client, logger *agent.Logger, endpoint string, transport agent.TransportType) error {
	const maxRetries = 3

	for attempt := 0; attempt < maxRetries; attempt++ {
		// Don't wait on the first attempt
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Second):
				// Simple 1 second delay between retries
			}
		}

		// Attempt to connect
		logger.Info("Connecting to macrolog server at: %s using %s transport (attempt %d/%d)", endpoint, transport, attempt+1, maxRetries)

		err := client.Connect(ctx)
		if err == nil {
			// Connection successful, now try to initialize
			if err := client.InitializeAndLoadData(ctx); err != nil {
				if attempt < maxRetries-1 {
					logger.Info("Initialization failed, retrying: %v", err)
					continue
				}
				return fmt.Errorf("failed to load initial data: %w", err)
			}
			return nil
		}

		// Retry on any error if we haven't exhausted our retries
		if attempt < maxRetries-1 {
			logger.Info("Connection attempt %d failed, retrying: %v", attempt+1, err)
			continue
		}

		// If we've exhausted retries, return the error
		return fmt.Errorf("failed to connect to server: %w", err)
	}

	return fmt.Errorf("failed to connect to server after %d attempts", maxRetries)
}
