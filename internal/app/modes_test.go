package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServices(t *testing.T) *Services {
	t.Helper()

	dir := t.TempDir()
	tokenFile := filepath.Join(dir, "oauth2_token.json")
	require.NoError(t, os.WriteFile(tokenFile, []byte("{}"), 0600))

	macrologCfg := validTestConfig()
	macrologCfg.Server.Port = 0 // Use any available port
	macrologCfg.Garmin.TokenFile = tokenFile

	services, err := InitializeServices(&Config{
		Silent:         true,
		MacrologConfig: macrologCfg,
	})
	require.NoError(t, err)
	return services
}

func TestRunServer_StopsOnContextCancel(t *testing.T) {
	services := testServices(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- runServer(ctx, services)
	}()

	// Give the server a moment to come up before cancelling.
	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("runServer did not stop on context cancellation")
	}

	assert.False(t, services.TokenWatcher.IsRunning())
}

func TestRunServer_StartFailure(t *testing.T) {
	services := testServices(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Occupy the server slot so runServer's own Start fails.
	require.NoError(t, services.MCPServer.Start(ctx))
	defer func() {
		_ = services.MCPServer.Stop(context.Background())
		_ = services.TokenWatcher.Stop()
	}()

	err := runServer(ctx, services)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already started")
}
