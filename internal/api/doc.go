// Package api defines the contract between the MCP server and the domain
// packages that supply its tools.
//
// The server does not know about nutrition, Garmin, or any other domain;
// it consumes ToolProvider implementations and exposes whatever tools they
// describe. ToolMetadata and ArgMetadata carry enough schema information
// for the server to generate the MCP input schemas, and CallToolResult is
// the transport-neutral result shape the server converts into MCP content.
//
// Keeping this package dependency-free avoids an import cycle: the server
// imports the providers' package only through this interface, and provider
// packages never import the server.
package api
