package cmd

import (
	"testing"

	"macrolog/internal/agent"
)

func TestParseAgentTransport(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  agent.TransportType
		expectErr bool
	}{
		{
			name:     "streamable-http",
			input:    "streamable-http",
			expected: agent.TransportStreamableHTTP,
		},
		{
			name:     "sse",
			input:    "sse",
			expected: agent.TransportSSE,
		},
		{
			name:      "stdio is not a client transport",
			input:     "stdio",
			expectErr: true,
		},
		{
			name:      "empty transport",
			input:     "",
			expectErr: true,
		},
		{
			name:      "unknown transport",
			input:     "websocket",
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport, err := parseAgentTransport(tt.input)
			if tt.expectErr {
				if err == nil {
					t.Errorf("parseAgentTransport(%q) expected error, got %v", tt.input, transport)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseAgentTransport(%q) unexpected error: %v", tt.input, err)
			}
			if transport != tt.expected {
				t.Errorf("parseAgentTransport(%q) = %v, want %v", tt.input, transport, tt.expected)
			}
		})
	}
}

func TestAgentCmdProperties(t *testing.T) {
	t.Run("agent command exists", func(t *testing.T) {
		if agentCmd == nil {
			t.Fatal("agentCmd should not be nil")
		}
	})

	t.Run("agent command Use field", func(t *testing.T) {
		if agentCmd.Use != "agent" {
			t.Errorf("expected Use 'agent', got %q", agentCmd.Use)
		}
	})

	t.Run("agent command has short description", func(t *testing.T) {
		if agentCmd.Short == "" {
			t.Error("expected Short description to be set")
		}
	})

	t.Run("agent command has RunE", func(t *testing.T) {
		if agentCmd.RunE == nil {
			t.Error("expected RunE to be set")
		}
	})
}

func TestAgentFlags(t *testing.T) {
	t.Run("endpoint flag exists", func(t *testing.T) {
		flag := agentCmd.Flags().Lookup("endpoint")
		if flag == nil {
			t.Error("expected --endpoint flag to exist")
		}
	})

	t.Run("transport flag exists", func(t *testing.T) {
		flag := agentCmd.Flags().Lookup("transport")
		if flag == nil {
			t.Error("expected --transport flag to exist")
		}
	})

	t.Run("transport flag defaults to streamable-http", func(t *testing.T) {
		flag := agentCmd.Flags().Lookup("transport")
		if flag == nil {
			t.Fatal("expected --transport flag to exist")
		}
		if flag.DefValue != "streamable-http" {
			t.Errorf("expected default transport 'streamable-http', got %q", flag.DefValue)
		}
	})

	t.Run("repl flag exists", func(t *testing.T) {
		flag := agentCmd.Flags().Lookup("repl")
		if flag == nil {
			t.Error("expected --repl flag to exist")
		}
	})

	t.Run("verbose flag exists", func(t *testing.T) {
		flag := agentCmd.Flags().Lookup("verbose")
		if flag == nil {
			t.Error("expected --verbose flag to exist")
		}
	})

	t.Run("no-color flag exists", func(t *testing.T) {
		flag := agentCmd.Flags().Lookup("no-color")
		if flag == nil {
			t.Error("expected --no-color flag to exist")
		}
	})

	t.Run("json-rpc flag exists", func(t *testing.T) {
		flag := agentCmd.Flags().Lookup("json-rpc")
		if flag == nil {
			t.Error("expected --json-rpc flag to exist")
		}
	})

	t.Run("config-path flag exists", func(t *testing.T) {
		flag := agentCmd.Flags().Lookup("config-path")
		if flag == nil {
			t.Error("expected --config-path flag to exist")
		}
	})
}

func TestStandaloneCmdProperties(t *testing.T) {
	t.Run("standalone command exists", func(t *testing.T) {
		if standaloneCmd == nil {
			t.Fatal("standaloneCmd should not be nil")
		}
	})

	t.Run("standalone inherits agent flags", func(t *testing.T) {
		flag := standaloneCmd.Flags().Lookup("repl")
		if flag == nil {
			t.Error("expected --repl flag to be inherited from agent")
		}
	})

	t.Run("standalone inherits serve flags", func(t *testing.T) {
		flag := standaloneCmd.Flags().Lookup("debug")
		if flag == nil {
			t.Error("expected --debug flag to be inherited from serve")
		}
	})
}
