// Package server hosts the MCP endpoint.
//
// MCPServer takes an api.ToolProvider and serves its tools over one of
// three transports: streamable-http (the default), SSE, or stdio. The
// tool set is converted once at startup; this server has no dynamic
// capability updates because the nutrition tool surface is fixed.
//
// Tool execution errors are returned to the client as MCP error results
// with a plain-text message, never as protocol-level failures, so an
// agent can read the message and retry with corrected arguments.
package server
