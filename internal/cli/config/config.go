package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultServer is the backend origin used when nothing else is configured.
const DefaultServer = "http://localhost:8080"

// serverEnvVar overrides the configured server origin.
const serverEnvVar = "ALBUM_API_URL"

// Config stores CLI configuration
type Config struct {
	Server string `json:"server"` // API server origin
}

// GetConfigPath returns the configuration file path (~/.albumctl/config.json)
func GetConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(home, ".albumctl", "config.json"), nil
}

// Load loads configuration from file, applying the ALBUM_API_URL environment
// override. Precedence: env var > config file > default.
func Load() (*Config, error) {
	cfg, err := loadFile()
	if err != nil {
		return nil, err
	}

	if env := os.Getenv(serverEnvVar); env != "" {
		cfg.Server = env
	}
	if cfg.Server == "" {
		cfg.Server = DefaultServer
	}

	return cfg, nil
}

func loadFile() (*Config, error) {
	configFile, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	// Missing config file is not an error; defaults apply
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		return &Config{}, nil
	}

	data, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// Save saves configuration to file
func (c *Config) Save() error {
	configFile, err := GetConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configFile), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configFile, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
