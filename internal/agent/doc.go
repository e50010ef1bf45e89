// Package agent provides an MCP (Model Context Protocol) client for debugging,
// testing, and scripting against a running macrolog server.
//
// The agent package supports two interaction modes: an interactive REPL for
// exploring the nutrition tools, and a monitoring mode that connects, lists
// the available tools and then watches for server notifications. Both modes
// share the same Client, which handles protocol communication, connection
// management, tool caching, and notification processing over the SSE and
// Streamable HTTP transports.
//
// # Quick Start
//
// For interactive debugging:
//
//	logger := agent.NewLogger(true, true, false)
//	client := agent.NewClient("http://localhost:8737/mcp", logger, agent.TransportStreamableHTTP)
//	repl := agent.NewREPL(client, logger)
//	ctx := context.Background()
//	repl.Run(ctx) // Interactive REPL
//
// For programmatic tool execution:
//
//	client := agent.NewClient("http://localhost:8737/mcp", nil, agent.TransportStreamableHTTP)
//	defer client.Close()
//	if err := client.Connect(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	result, err := client.CallToolSimple(ctx, "get_nutrition_log", map[string]interface{}{
//	    "date": "2024-03-14",
//	})
//
// # REPL Commands
//
// The REPL uses a modular command system (see the commands subpackage) with
// tab completion, aliases, and persistent history:
//
//   - help: command documentation
//   - list tools: list the available nutrition tools
//   - describe tool <name>: show a tool's input schema
//   - call <tool> [key=value ...]: execute a tool
//   - filter tools [pattern]: filter tools by name or description
//   - notifications <on|off>: toggle notification display
//   - exit: leave the REPL
//
// The Client keeps a thread-safe tool cache that is refreshed when the server
// sends a tools/list_changed notification, with a diff of added and removed
// tools logged for visibility.
package agent
