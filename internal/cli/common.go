package cli

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"macrolog/internal/config"
)

// ServerEndpoint builds the MCP endpoint URL from the server configuration.
// SSE transport uses the /sse path, streamable-http uses /mcp.
func ServerEndpoint(cfg *config.MacrologConfig) string {
	host := cfg.Server.Host
	if host == "" {
		host = "localhost"
	}
	port := cfg.Server.Port
	if port == 0 {
		port = 8737
	}

	if cfg.Server.Transport == config.MCPTransportSSE {
		return fmt.Sprintf("http://%s:%d/sse", host, port)
	}
	return fmt.Sprintf("http://%s:%d/mcp", host, port)
}

// DetectServerEndpoint determines the endpoint from the configuration at
// configPath, falling back to the default local endpoint when no
// configuration can be loaded.
func DetectServerEndpoint(configPath string) string {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return "http://localhost:8737/mcp"
	}
	return ServerEndpoint(&cfg)
}

// IsRemoteEndpoint reports whether the endpoint points at a non-local host.
// Remote endpoints skip the local liveness probe since the server cannot be
// started with "macrolog serve" from here.
func IsRemoteEndpoint(endpoint string) bool {
	u, err := url.Parse(endpoint)
	if err != nil {
		return false
	}

	host := u.Hostname()
	switch host {
	case "", "localhost", "127.0.0.1", "::1":
		return false
	}
	return true
}

// CheckServerRunning verifies that the macrolog server is reachable at the
// given endpoint, returning a user-friendly error if not.
func CheckServerRunning(endpoint string) error {
	client := &http.Client{
		Timeout: 5 * time.Second,
	}

	resp, err := client.Get(endpoint)
	if err != nil {
		return fmt.Errorf("macrolog server is not running. Start it with: macrolog serve")
	}
	defer func() { _ = resp.Body.Close() }()

	// SSE endpoints answer GET with 200, streamable-http with 202 or a
	// method-related status. Anything in the 5xx range means the server is
	// up but unhealthy.
	if resp.StatusCode >= 500 {
		return fmt.Errorf("macrolog server is not responding correctly (status: %d). Try restarting with: macrolog serve", resp.StatusCode)
	}

	return nil
}

// FormatError formats an error message for CLI output.
func FormatError(err error) string {
	return fmt.Sprintf("Error: %v", err)
}

// FormatSuccess formats a success message for CLI output.
func FormatSuccess(msg string) string {
	return fmt.Sprintf("✓ %s", msg)
}

// FormatWarning formats a warning message for CLI output.
func FormatWarning(msg string) string {
	return fmt.Sprintf("⚠ %s", msg)
}
