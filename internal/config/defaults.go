package config

import (
	"os"
	"path/filepath"
)

const (
	// DefaultPort is the port the MCP endpoint binds to.
	DefaultPort = 8737

	// DefaultHost is the host the MCP endpoint binds to.
	DefaultHost = "localhost"

	// DefaultGarminDomain is the Garmin Connect domain. Accounts in
	// mainland China use garmin.cn instead.
	DefaultGarminDomain = "garmin.com"

	garthDirName  = ".garth"
	tokenFileName = "oauth2_token.json"
)

// GetDefaultConfig returns the built-in default configuration.
func GetDefaultConfig() MacrologConfig {
	return MacrologConfig{
		Server: ServerConfig{
			Port:      DefaultPort,
			Host:      DefaultHost,
			Transport: MCPTransportStreamableHTTP,
		},
		Garmin: GarminConfig{
			Domain:    DefaultGarminDomain,
			TokenFile: DefaultTokenFile(),
		},
	}
}

// DefaultTokenFile returns the token file path the garth login tooling
// writes: $GARTH_HOME/oauth2_token.json, falling back to ~/.garth.
func DefaultTokenFile() string {
	if home := os.Getenv("GARTH_HOME"); home != "" {
		return filepath.Join(home, tokenFileName)
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(garthDirName, tokenFileName)
	}
	return filepath.Join(homeDir, garthDirName, tokenFileName)
}
