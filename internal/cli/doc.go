// Package cli provides command-line interface utilities for the macrolog application.
//
// This package offers a CLI experience with intelligent data formatting,
// robust server connectivity, and clean output presentation. It serves as the
// interface layer between the one-shot commands and the macrolog MCP server.
//
// # Core Components
//
// ToolExecutor provides high-level tool execution with multiple output formats:
//   - MCP client integration with the macrolog server
//   - Multiple output formats: plain tables, JSON, and YAML
//   - Progress indicators with spinners for long-running operations
//   - Server connectivity validation with actionable error messages
//   - Both formatted and programmatic execution modes
//
// TableFormatter offers intelligent table creation and optimization:
//   - Auto-detection of nutrition record shapes (foods, log entries, meals, servings)
//   - Smart column selection and optimization based on data structure
//   - Specialized formatting rules for each record type
//   - Handles both simple arrays and wrapped objects like the daily log
//
// TableBuilder provides cell-level formatting utilities:
//   - Macro amounts rendered with units (grams, kcal, kilograms)
//   - Serving quantities kept at full precision
//   - Smart truncation and summarization of nested data
//
// Common utilities handle server connectivity and message formatting:
//   - Endpoint resolution from configuration
//   - Server health checks with appropriate error messages
//   - Consistent formatting for success (✓), error, and warning (⚠) messages
//
// # Output Formats
//
// The package supports four output formats to accommodate different use cases:
//   - Table: Plain kubectl-style tables with optimized columns
//   - Wide: Tables with additional columns such as ids and secondary macros
//   - JSON: Raw JSON output for programmatic consumption
//   - YAML: Human-readable YAML format converted from JSON responses
//
// # Integration
//
// All one-shot CLI commands should use this package for a consistent user
// experience. The package handles the complexity of MCP communication, data
// formatting, and output presentation, allowing commands to focus on their
// core logic.
package cli
