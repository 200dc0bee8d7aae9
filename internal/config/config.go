// Package config provides YAML-based configuration for the scan
// client. The config file is optional: a missing file yields the
// defaults, so the client works out of the box against a local
// scan service.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure.
type Config struct {
	Scanner ScannerConfig `yaml:"scanner"`
	UI      UIConfig      `yaml:"ui"`
	Export  ExportConfig  `yaml:"export"`
}

// ScannerConfig locates the remote scan service.
type ScannerConfig struct {
	// BaseURL includes the API prefix, e.g. "http://localhost:5000/api".
	BaseURL string `yaml:"baseUrl"`
	// RequestTimeoutSeconds bounds the whole batch exchange. The
	// orchestrator relies on this transport timeout; it enforces none
	// of its own.
	RequestTimeoutSeconds int `yaml:"requestTimeoutSeconds"`
}

// UIConfig configures the local web surface (serve mode).
type UIConfig struct {
	Port        int    `yaml:"port"`
	BindAddress string `yaml:"bindAddress"`
	EnableCORS  bool   `yaml:"enableCors"`
	BodyLimit   string `yaml:"bodyLimit"`
}

// ExportConfig configures where CLI export artifacts are written.
type ExportConfig struct {
	Directory string `yaml:"directory"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Scanner: ScannerConfig{
			BaseURL:               "http://localhost:5000/api",
			RequestTimeoutSeconds: 120,
		},
		UI: UIConfig{
			Port:        8089,
			BindAddress: "127.0.0.1",
			EnableCORS:  true,
			BodyLimit:   "64M",
		},
		Export: ExportConfig{
			Directory: ".",
		},
	}
}

// Load reads the config file at path, falling back to defaults when
// the file does not exist. The SCANNER_BASE_URL environment variable
// overrides the service base URL for deployment-context selection.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if base := os.Getenv("SCANNER_BASE_URL"); base != "" {
		cfg.Scanner.BaseURL = base
	}

	return cfg, nil
}

// ListenAddr returns the serve-mode listen address.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.UI.BindAddress, c.UI.Port)
}
