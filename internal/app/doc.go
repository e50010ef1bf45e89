// Package app provides application bootstrap and lifecycle management for macrolog.
//
// This package handles initialization, configuration loading, service wiring,
// and the run loop of the server process.
//
// # Architecture Overview
//
// The app package is the application's bootstrap layer, with four components:
//
// 1. **Bootstrap (`bootstrap.go`)**: Application initialization and lifecycle management
// 2. **Configuration (`config.go`)**: Application runtime configuration structure
// 3. **Services (`services.go`)**: Component wiring and dependency management
// 4. **Modes (`modes.go`)**: The server run loop and shutdown handling
//
// # Bootstrap Sequence
//
// NewApplication performs the complete initialization sequence:
//
//  1. Logging is configured from the debug and silent flags
//  2. Configuration is loaded from the config file (or taken pre-populated)
//  3. The configuration is validated as a whole
//  4. Services are wired: token source, token watcher, Garmin client,
//     nutrition tool provider, MCP server
//
// No network or file I/O happens during bootstrap. The token file is read
// on the first Garmin request, and the token watcher only starts in Run.
//
// # Run Loop
//
// Run starts the token watcher and the MCP server, then blocks until one of
// the shutdown triggers fires: SIGINT, SIGTERM, context cancellation, or
// the stdio transport reaching end of input. Shutdown stops the watcher and
// gives the server a bounded window to close its transport.
//
// # Logging and the stdio transport
//
// The stdio transport speaks the MCP protocol over stdout, so when it is
// selected the bootstrap redirects all log output to stderr. The HTTP
// transports log to stdout as usual. Silent mode suppresses log output
// entirely regardless of transport.
package app
