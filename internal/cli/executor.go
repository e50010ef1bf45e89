package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"macrolog/internal/agent"
	"macrolog/internal/config"

	"github.com/briandowns/spinner"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mark3labs/mcp-go/mcp"
	"gopkg.in/yaml.v3"
)

// MCPTool is an alias for mcp.Tool so the cmd package doesn't need to
// import mcp directly.
type MCPTool = mcp.Tool

// OutputFormat represents the supported output formats for CLI commands.
// This allows users to choose how they want to receive command results.
type OutputFormat string

const (
	// OutputFormatTable formats output as a kubectl-style plain table
	OutputFormatTable OutputFormat = "table"
	// OutputFormatWide formats output as a table with additional columns
	OutputFormatWide OutputFormat = "wide"
	// OutputFormatJSON formats output as raw JSON data
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatYAML formats output as YAML data converted from JSON
	OutputFormatYAML OutputFormat = "yaml"
)

// ValidOutputFormats contains all valid output format values.
var ValidOutputFormats = []OutputFormat{
	OutputFormatTable,
	OutputFormatWide,
	OutputFormatJSON,
	OutputFormatYAML,
}

// ValidateOutputFormat validates that the given format string is a supported output format.
// Returns nil if valid, or an error with a helpful message listing valid formats.
func ValidateOutputFormat(format string) error {
	switch OutputFormat(format) {
	case OutputFormatTable, OutputFormatWide, OutputFormatJSON, OutputFormatYAML:
		return nil
	default:
		return fmt.Errorf("unsupported output format: %q (valid: table, wide, json, yaml)", format)
	}
}

// EndpointEnvVar is the environment variable name for setting the default endpoint.
const EndpointEnvVar = "MACROLOG_ENDPOINT"

// GetDefaultEndpoint returns the endpoint from environment variable if set.
func GetDefaultEndpoint() string {
	return os.Getenv(EndpointEnvVar)
}

// ExecutorOptions contains configuration options for tool execution.
// These options control how commands are executed and how output is formatted.
type ExecutorOptions struct {
	// Format specifies the desired output format (table, wide, json, yaml)
	Format OutputFormat
	// NoHeaders suppresses the header row in table output
	NoHeaders bool
	// Quiet suppresses progress indicators and non-essential output
	Quiet bool
	// Debug enables verbose logging of MCP protocol messages and initialization
	Debug bool
	// ConfigPath specifies a custom configuration directory path
	ConfigPath string
	// Endpoint overrides the server endpoint URL
	Endpoint string
}

// ToolExecutor provides high-level tool execution functionality with formatted output.
// It handles the connection to the macrolog server, executes nutrition tools, and
// formats the results according to the specified output format. This is the main
// interface for CLI commands that need to run a tool without the interactive REPL.
type ToolExecutor struct {
	// client is the MCP client for communicating with the server
	client *agent.Client
	// options contains execution configuration
	options ExecutorOptions
	// formatter handles table formatting when output format is table
	formatter *TableFormatter
	// endpoint is the resolved endpoint URL
	endpoint string
}

// NewToolExecutor creates a new tool executor with the specified options.
// The endpoint is resolved from the --endpoint flag (or MACROLOG_ENDPOINT),
// falling back to the configured server address. For local endpoints the
// server is probed first so users get "server is not running" instead of a
// low-level dial error.
func NewToolExecutor(options ExecutorOptions) (*ToolExecutor, error) {
	// Suppress MCP protocol messages unless debug mode is requested
	var logger *agent.Logger
	if options.Debug {
		logger = agent.NewLogger(true, true, false)
	} else {
		logger = agent.NewDevNullLogger()
	}

	var endpoint string
	var transport agent.TransportType

	if options.Endpoint != "" {
		endpoint = options.Endpoint
		// Infer transport from URL path
		if strings.HasSuffix(endpoint, "/sse") {
			transport = agent.TransportSSE
		} else {
			transport = agent.TransportStreamableHTTP
		}
	} else {
		if options.ConfigPath == "" {
			return nil, fmt.Errorf("logic error: empty tool executor ConfigPath")
		}

		cfg, err := config.LoadConfig(options.ConfigPath)
		if err != nil {
			return nil, err
		}

		transport = agent.TransportType(cfg.Server.Transport)
		switch transport {
		case agent.TransportStreamableHTTP, agent.TransportSSE:
			// Supported transports
		default:
			return nil, fmt.Errorf("unsupported transport: %s", cfg.Server.Transport)
		}

		endpoint = ServerEndpoint(&cfg)
	}

	// Probe local servers before connecting. Remote endpoints are probed
	// during Connect so a slow link doesn't fail the constructor.
	if !IsRemoteEndpoint(endpoint) {
		if err := CheckServerRunning(endpoint); err != nil {
			return nil, err
		}
	}

	client := agent.NewClient(endpoint, logger, transport)

	// Drain MCP notifications silently unless debug mode is enabled
	go func() {
		for notification := range client.NotificationChan {
			if options.Debug {
				logger.Debug("MCP Notification: %s", notification.Method)
			}
		}
	}()

	return &ToolExecutor{
		client:    client,
		options:   options,
		formatter: NewTableFormatter(options),
		endpoint:  endpoint,
	}, nil
}

// GetClient returns the underlying agent client for advanced use cases.
func (e *ToolExecutor) GetClient() *agent.Client {
	return e.client
}

// GetFormatter returns the table formatter used for table output.
func (e *ToolExecutor) GetFormatter() *TableFormatter {
	return e.formatter
}

// Connect establishes a connection to the macrolog server.
// It shows a progress spinner unless quiet mode is enabled, and classifies
// connection failures so users get actionable feedback.
func (e *ToolExecutor) Connect(ctx context.Context) error {
	if e.options.Quiet {
		if err := e.client.Connect(ctx); err != nil {
			return ClassifyConnectionError(err, e.endpoint)
		}
		return nil
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " Connecting to macrolog server..."
	s.Start()
	defer s.Stop()

	if err := e.client.Connect(ctx); err != nil {
		s.FinalMSG = text.FgRed.Sprint("Failed to connect to macrolog server") + "\n"
		return ClassifyConnectionError(err, e.endpoint)
	}

	// Connection success is implied by the command working
	return nil
}

// Close gracefully closes the connection to the server.
func (e *ToolExecutor) Close() error {
	return e.client.Close()
}

// Execute executes a tool with the given args and formats the output.
// It handles progress indication, error formatting, and output formatting
// according to the configured options.
func (e *ToolExecutor) Execute(ctx context.Context, toolName string, args map[string]interface{}) error {
	var s *spinner.Spinner
	if !e.options.Quiet {
		s = spinner.New(spinner.CharSets[14], 100*time.Millisecond)
		s.Suffix = " Executing command..."
		s.Start()
	}

	result, err := e.client.CallTool(ctx, toolName, args)

	if s != nil {
		s.Stop()
	}

	if err != nil {
		if s != nil {
			fmt.Fprintf(os.Stderr, "%s\n", text.FgRed.Sprint("❌ Command failed"))
		}
		return fmt.Errorf("failed to execute tool %s: %w", toolName, err)
	}

	if result.IsError {
		if s != nil {
			fmt.Fprintf(os.Stderr, "%s\n", text.FgRed.Sprint("❌ Command returned error"))
		}
		return e.formatError(result)
	}

	return e.formatOutput(result)
}

// ExecuteSimple executes a tool and returns the first text content as-is.
// This is useful for callers that post-process the raw response instead of
// printing it.
func (e *ToolExecutor) ExecuteSimple(ctx context.Context, toolName string, args map[string]interface{}) (string, error) {
	return e.client.CallToolSimple(ctx, toolName, args)
}

// ExecuteJSON executes a tool and returns the result as parsed JSON.
// This method is useful when you need to work with structured data
// programmatically rather than displaying it to users.
func (e *ToolExecutor) ExecuteJSON(ctx context.Context, toolName string, args map[string]interface{}) (interface{}, error) {
	return e.client.CallToolJSON(ctx, toolName, args)
}

// formatError formats error output from tool execution. The error is
// returned so cobra can handle the exit code, but not printed directly to
// avoid duplicate error messages.
func (e *ToolExecutor) formatError(result *mcp.CallToolResult) error {
	var errorMsgs []string
	for _, content := range result.Content {
		if textContent, ok := mcp.AsTextContent(content); ok {
			errorMsgs = append(errorMsgs, textContent.Text)
		}
	}

	errorMsg := strings.Join(errorMsgs, "\n")
	return fmt.Errorf("%s", errorMsg)
}

// formatOutput formats the tool output according to the specified format.
func (e *ToolExecutor) formatOutput(result *mcp.CallToolResult) error {
	if len(result.Content) == 0 {
		if !e.options.Quiet {
			fmt.Println("No results")
		}
		return nil
	}

	content := result.Content[0]
	textContent, ok := mcp.AsTextContent(content)
	if !ok {
		return fmt.Errorf("content is not text")
	}

	switch e.options.Format {
	case OutputFormatJSON:
		fmt.Println(textContent.Text)
		return nil
	case OutputFormatYAML:
		return e.outputYAML(textContent.Text)
	case OutputFormatTable, OutputFormatWide:
		return e.outputTable(textContent.Text)
	default:
		return fmt.Errorf("unsupported output format: %s", e.options.Format)
	}
}

// outputYAML converts JSON data to YAML format and prints it.
// This provides a more readable alternative to JSON for structured data.
func (e *ToolExecutor) outputYAML(jsonData string) error {
	var data interface{}
	if err := json.Unmarshal([]byte(jsonData), &data); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}

	yamlData, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to convert to YAML: %w", err)
	}

	fmt.Print(string(yamlData))
	return nil
}

// outputTable formats data as a table using the table formatter.
func (e *ToolExecutor) outputTable(jsonData string) error {
	var data interface{}
	if err := json.Unmarshal([]byte(jsonData), &data); err != nil {
		fmt.Println(jsonData) // Fallback to raw text if not JSON
		return nil
	}

	return e.formatter.FormatData(data)
}

// ListMCPTools returns all tools exposed by the server.
func (e *ToolExecutor) ListMCPTools(ctx context.Context) ([]mcp.Tool, error) {
	return e.client.ListToolsFromServer(ctx)
}

// GetMCPTool returns detailed info for a specific tool, or nil if the
// server does not expose it.
func (e *ToolExecutor) GetMCPTool(ctx context.Context, name string) (*mcp.Tool, error) {
	_, err := e.client.ListToolsFromServer(ctx)
	if err != nil {
		return nil, err
	}

	return e.client.GetToolByName(name), nil
}

// GetOptions returns the executor options.
// This allows callers to check the configured output format and other settings.
func (e *ToolExecutor) GetOptions() ExecutorOptions {
	return e.options
}
