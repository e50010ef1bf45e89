package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"macrolog/internal/api"
	"macrolog/internal/config"
	"macrolog/pkg/logging"

	mcpserver "github.com/mark3labs/mcp-go/server"
)

const (
	serverName    = "macrolog"
	serverVersion = "1.0.0"
)

// MCPServer exposes a tool provider as an MCP server over the configured
// transport. The tool set is fixed at startup; the server does not change
// capabilities while running.
type MCPServer struct {
	config   config.ServerConfig
	provider api.ToolProvider

	server *mcpserver.MCPServer

	// Transport-specific servers
	sseServer            *mcpserver.SSEServer
	streamableHTTPServer *mcpserver.StreamableHTTPServer
	stdioServer          *mcpserver.StdioServer
	stdioDone            chan struct{}

	// Lifecycle management
	ctx        context.Context
	cancelFunc context.CancelFunc
	mu         sync.RWMutex
}

// NewMCPServer creates an MCP server that serves the provider's tools.
func NewMCPServer(cfg config.ServerConfig, provider api.ToolProvider) *MCPServer {
	return &MCPServer{
		config:   cfg,
		provider: provider,
	}
}

// Start starts the MCP server on the configured transport. It returns as
// soon as the transport is listening; serving happens in the background
// until Stop is called.
func (s *MCPServer) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.server != nil {
		s.mu.Unlock()
		return fmt.Errorf("MCP server already started")
	}

	s.ctx, s.cancelFunc = context.WithCancel(ctx)

	srv := mcpserver.NewMCPServer(
		serverName,
		serverVersion,
		mcpserver.WithToolCapabilities(false),
	)
	s.server = srv

	tools := createServerTools(s.provider)
	srv.AddTools(tools...)
	logging.Info("Server", "Registered %d tools", len(tools))

	s.mu.Unlock()

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	switch s.config.Transport {
	case config.MCPTransportSSE:
		logging.Info("Server", "Starting MCP server with SSE transport on %s", addr)
		baseURL := fmt.Sprintf("http://%s:%d", s.config.Host, s.config.Port)
		s.sseServer = mcpserver.NewSSEServer(
			srv,
			mcpserver.WithBaseURL(baseURL),
			mcpserver.WithSSEEndpoint("/sse"),
			mcpserver.WithMessageEndpoint("/message"),
			mcpserver.WithKeepAlive(true),
			mcpserver.WithKeepAliveInterval(30*time.Second),
		)
		sseServer := s.sseServer
		go func() {
			if err := sseServer.Start(addr); err != nil && err != http.ErrServerClosed {
				logging.Error("Server", err, "SSE server error")
			}
		}()

	case config.MCPTransportStdio:
		logging.Info("Server", "Starting MCP server with stdio transport")
		s.stdioServer = mcpserver.NewStdioServer(srv)
		s.stdioDone = make(chan struct{})
		stdioServer := s.stdioServer
		done := s.stdioDone
		go func() {
			defer close(done)
			if err := stdioServer.Listen(s.ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
				logging.Error("Server", err, "Stdio server error")
			}
		}()

	case config.MCPTransportStreamableHTTP:
		fallthrough
	default:
		logging.Info("Server", "Starting MCP server with streamable-http transport on %s", addr)
		s.streamableHTTPServer = mcpserver.NewStreamableHTTPServer(srv)
		streamableServer := s.streamableHTTPServer
		go func() {
			if err := streamableServer.Start(addr); err != nil && err != http.ErrServerClosed {
				logging.Error("Server", err, "Streamable HTTP server error")
			}
		}()
	}

	return nil
}

// Stop stops the MCP server and shuts down the transport.
func (s *MCPServer) Stop(ctx context.Context) error {
	s.mu.Lock()
	if s.server == nil {
		s.mu.Unlock()
		return fmt.Errorf("MCP server not started")
	}

	logging.Info("Server", "Stopping MCP server")

	cancelFunc := s.cancelFunc
	sseServer := s.sseServer
	streamableServer := s.streamableHTTPServer
	s.mu.Unlock()

	if cancelFunc != nil {
		cancelFunc()
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if sseServer != nil {
		if err := sseServer.Shutdown(shutdownCtx); err != nil {
			logging.Error("Server", err, "Error shutting down SSE server")
		}
	}

	if streamableServer != nil {
		if err := streamableServer.Shutdown(shutdownCtx); err != nil {
			logging.Error("Server", err, "Error shutting down streamable HTTP server")
		}
	}

	// Stdio server stops on context cancellation, no explicit shutdown needed.

	s.mu.Lock()
	s.server = nil
	s.sseServer = nil
	s.streamableHTTPServer = nil
	s.stdioServer = nil
	s.stdioDone = nil
	s.mu.Unlock()

	return nil
}

// Done reports transport termination for transports that can end on their
// own. The returned channel is closed when the stdio stream ends; for the
// HTTP transports it is nil and never signals.
func (s *MCPServer) Done() <-chan struct{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stdioDone
}

// GetEndpoint returns the server's endpoint URL based on transport.
func (s *MCPServer) GetEndpoint() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch s.config.Transport {
	case config.MCPTransportSSE:
		return fmt.Sprintf("http://%s:%d/sse", s.config.Host, s.config.Port)
	case config.MCPTransportStdio:
		return "stdio"
	default:
		return fmt.Sprintf("http://%s:%d/mcp", s.config.Host, s.config.Port)
	}
}
