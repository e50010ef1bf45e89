package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"macrolog/pkg/logging"

	"gopkg.in/yaml.v3"
)

const (
	userConfigDir  = ".config/macrolog"
	configFileName = "config.yaml"
)

func GetDefaultConfigPathOrPanic() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		panic(fmt.Errorf("could not determine user config directory: %w", err))
	}

	return filepath.Join(homeDir, userConfigDir)
}

// LoadConfig loads configuration from the specified directory. The file is
// unmarshaled over the defaults, so a partial config.yaml only overrides
// the keys it names. A missing file is not an error.
func LoadConfig(configPath string) (MacrologConfig, error) {
	configFilePath := filepath.Join(configPath, configFileName)
	config := GetDefaultConfig()

	data, err := os.ReadFile(configFilePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.Info("ConfigLoader", "No config.yaml found at %s, using defaults", configFilePath)
			return config, nil
		}
		logging.Info("ConfigLoader", "Error loading config.yaml from %s: %s", configFilePath, err)
		return MacrologConfig{}, err
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return MacrologConfig{}, fmt.Errorf("error loading config from %s: %w", configFilePath, err)
	}
	logging.Info("ConfigLoader", "Loaded configuration from %s", configFilePath)
	return config, nil
}
