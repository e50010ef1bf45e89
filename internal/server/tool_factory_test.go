package server

import (
	"context"
	"errors"
	"testing"

	"macrolog/internal/api"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockToolProvider implements api.ToolProvider with canned tools and results.
type mockToolProvider struct {
	tools   []api.ToolMetadata
	result  *api.CallToolResult
	execErr error

	lastTool string
	lastArgs map[string]interface{}
}

func (m *mockToolProvider) GetTools() []api.ToolMetadata {
	return m.tools
}

func (m *mockToolProvider) ExecuteTool(ctx context.Context, toolName string, args map[string]interface{}) (*api.CallToolResult, error) {
	m.lastTool = toolName
	m.lastArgs = args
	if m.execErr != nil {
		return nil, m.execErr
	}
	if m.result != nil {
		return m.result, nil
	}
	return &api.CallToolResult{Content: []interface{}{"ok"}}, nil
}

func testProviderTools() []api.ToolMetadata {
	return []api.ToolMetadata{
		{
			Name:        "get_nutrition_log",
			Description: "Get the food log for a date",
			Args: []api.ArgMetadata{
				{Name: "date", Type: "string", Required: true, Description: "Date in YYYY-MM-DD format"},
			},
		},
		{
			Name:        "search_foods",
			Description: "Search the food database",
			Args: []api.ArgMetadata{
				{Name: "query", Type: "string", Required: true, Description: "Search text"},
				{Name: "limit", Type: "number", Required: false, Description: "Max results", Default: 20},
			},
		},
	}
}

func TestCreateServerTools(t *testing.T) {
	provider := &mockToolProvider{tools: testProviderTools()}

	tools := createServerTools(provider)
	require.Len(t, tools, 2)

	logTool := tools[0].Tool
	assert.Equal(t, "get_nutrition_log", logTool.Name)
	assert.Equal(t, "Get the food log for a date", logTool.Description)
	assert.Equal(t, "object", logTool.InputSchema.Type)
	assert.Equal(t, []string{"date"}, logTool.InputSchema.Required)
	require.NotNil(t, tools[0].Handler)

	dateSchema, ok := logTool.InputSchema.Properties["date"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "string", dateSchema["type"])
	assert.Equal(t, "Date in YYYY-MM-DD format", dateSchema["description"])
	_, hasDefault := dateSchema["default"]
	assert.False(t, hasDefault, "args without defaults should not carry a default key")

	searchTool := tools[1].Tool
	assert.Equal(t, "search_foods", searchTool.Name)
	assert.Equal(t, []string{"query"}, searchTool.InputSchema.Required)

	limitSchema, ok := searchTool.InputSchema.Properties["limit"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "number", limitSchema["type"])
	assert.Equal(t, 20, limitSchema["default"])
}

func TestCreateServerTools_Empty(t *testing.T) {
	provider := &mockToolProvider{}

	tools := createServerTools(provider)
	assert.Empty(t, tools)
}

func TestCreateToolHandler(t *testing.T) {
	provider := &mockToolProvider{
		result: &api.CallToolResult{Content: []interface{}{`{"date":"2025-01-15"}`}},
	}

	handler := createToolHandler(provider, "get_nutrition_log")
	req := mcp.CallToolRequest{
		Params: struct {
			Name      string    `json:"name"`
			Arguments any       `json:"arguments,omitempty"`
			Meta      *mcp.Meta `json:"_meta,omitempty"`
		}{
			Arguments: map[string]interface{}{
				"date": "2025-01-15",
			},
		},
	}

	result, err := handler(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "get_nutrition_log", provider.lastTool)
	assert.Equal(t, "2025-01-15", provider.lastArgs["date"])

	assert.False(t, result.IsError)
	require.Len(t, result.Content, 1)
	textContent, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok)
	assert.Equal(t, `{"date":"2025-01-15"}`, textContent.Text)
}

func TestCreateToolHandler_NoArguments(t *testing.T) {
	provider := &mockToolProvider{}

	handler := createToolHandler(provider, "list_favorite_foods")
	result, err := handler(context.Background(), mcp.CallToolRequest{})
	require.NoError(t, err)
	assert.False(t, result.IsError)

	// The provider must always see a usable args map.
	require.NotNil(t, provider.lastArgs)
	assert.Empty(t, provider.lastArgs)
}

func TestCreateToolHandler_ExecutionError(t *testing.T) {
	provider := &mockToolProvider{execErr: errors.New("connection refused")}

	handler := createToolHandler(provider, "get_nutrition_log")
	result, err := handler(context.Background(), mcp.CallToolRequest{})
	require.NoError(t, err, "execution failures are reported as error results, not handler errors")

	assert.True(t, result.IsError)
	require.Len(t, result.Content, 1)
	textContent, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok)
	assert.Equal(t, "Tool execution failed: connection refused", textContent.Text)
}

func TestCreateToolHandler_ErrorResultPassthrough(t *testing.T) {
	provider := &mockToolProvider{
		result: &api.CallToolResult{
			Content: []interface{}{"date argument is required"},
			IsError: true,
		},
	}

	handler := createToolHandler(provider, "get_nutrition_log")
	result, err := handler(context.Background(), mcp.CallToolRequest{})
	require.NoError(t, err)

	assert.True(t, result.IsError)
	textContent, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok)
	assert.Equal(t, "date argument is required", textContent.Text)
}

func TestConvertToMCPResult_NonStringContent(t *testing.T) {
	result := convertToMCPResult(&api.CallToolResult{
		Content: []interface{}{
			map[string]interface{}{"calories": 105},
		},
	})

	assert.False(t, result.IsError)
	require.Len(t, result.Content, 1)
	textContent, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok)
	assert.JSONEq(t, `{"calories":105}`, textContent.Text)
}

func TestConvertToMCPResult_MixedContent(t *testing.T) {
	result := convertToMCPResult(&api.CallToolResult{
		Content: []interface{}{"plain text", []string{"a", "b"}},
	})

	require.Len(t, result.Content, 2)
	first, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok)
	assert.Equal(t, "plain text", first.Text)

	second, ok := mcp.AsTextContent(result.Content[1])
	require.True(t, ok)
	assert.JSONEq(t, `["a","b"]`, second.Text)
}
