package config

// MacrologConfig is the top-level configuration structure for macrolog.
type MacrologConfig struct {
	Server ServerConfig `yaml:"server"`
	Garmin GarminConfig `yaml:"garmin"`
}

const (
	// MCPTransportStreamableHTTP is the streamable HTTP transport.
	MCPTransportStreamableHTTP = "streamable-http"
	// MCPTransportSSE is the Server-Sent Events transport.
	MCPTransportSSE = "sse"
	// MCPTransportStdio is the standard I/O transport.
	MCPTransportStdio = "stdio"
)

// ServerConfig defines how the MCP endpoint is exposed.
type ServerConfig struct {
	Port      int    `yaml:"port,omitempty"`      // Port for the MCP endpoint (default: 8737)
	Host      string `yaml:"host,omitempty"`      // Host to bind to (default: localhost)
	Transport string `yaml:"transport,omitempty"` // Transport to use (default: streamable-http)
}

// GarminConfig defines the Garmin Connect connection settings.
type GarminConfig struct {
	Domain    string `yaml:"domain,omitempty"`    // Garmin domain, garmin.com or garmin.cn (default: garmin.com)
	TokenFile string `yaml:"tokenFile,omitempty"` // OAuth2 token file written by the login flow (default: ~/.garth/oauth2_token.json)
}
