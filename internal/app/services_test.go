package app

import (
	"testing"

	"macrolog/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeServices(t *testing.T) {
	cfg := &Config{
		Silent:         true,
		MacrologConfig: validTestConfig(),
	}

	services, err := InitializeServices(cfg)
	require.NoError(t, err)
	require.NotNil(t, services)

	assert.NotNil(t, services.TokenSource)
	assert.NotNil(t, services.TokenWatcher)
	assert.NotNil(t, services.Client)
	assert.NotNil(t, services.Provider)
	assert.NotNil(t, services.MCPServer)

	// The MCP server carries the configured endpoint settings.
	assert.Equal(t, "http://localhost:8737/mcp", services.MCPServer.GetEndpoint())
}

func TestInitializeServices_ProviderServesAllTools(t *testing.T) {
	cfg := &Config{
		Silent:         true,
		MacrologConfig: validTestConfig(),
	}

	services, err := InitializeServices(cfg)
	require.NoError(t, err)

	tools := services.Provider.GetTools()
	assert.Len(t, tools, 17)
}

func TestInitializeServices_StdioEndpoint(t *testing.T) {
	macrologCfg := validTestConfig()
	macrologCfg.Server.Transport = config.MCPTransportStdio

	services, err := InitializeServices(&Config{
		Silent:         true,
		MacrologConfig: macrologCfg,
	})
	require.NoError(t, err)

	assert.Equal(t, "stdio", services.MCPServer.GetEndpoint())
}

func TestInitializeServices_WatcherNotRunning(t *testing.T) {
	services, err := InitializeServices(&Config{
		Silent:         true,
		MacrologConfig: validTestConfig(),
	})
	require.NoError(t, err)

	// Wiring must not start the watcher; Run owns its lifecycle.
	assert.False(t, services.TokenWatcher.IsRunning())
}
