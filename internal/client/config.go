package client

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultServer is used when no config file or environment override exists.
const DefaultServer = "http://localhost:8080"

// Config is the client-side configuration stored in ~/.taskdeck/config.yaml.
type Config struct {
	Server string `yaml:"server"`
}

// ConfigDir returns ~/.taskdeck, creating it if needed.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".taskdeck")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", err
	}
	return dir, nil
}

// LoadConfig reads the client config. Resolution order for the server URL:
// TASKDECK_SERVER env var, then config.yaml, then DefaultServer.
func LoadConfig() Config {
	cfg := Config{Server: DefaultServer}
	if dir, err := ConfigDir(); err == nil {
		if b, err := os.ReadFile(filepath.Join(dir, "config.yaml")); err == nil {
			yaml.Unmarshal(b, &cfg)
		}
	}
	if env := os.Getenv("TASKDECK_SERVER"); env != "" {
		cfg.Server = env
	}
	if cfg.Server == "" {
		cfg.Server = DefaultServer
	}
	cfg.Server = strings.TrimRight(cfg.Server, "/")
	return cfg
}

// SaveConfig writes the client config to ~/.taskdeck/config.yaml.
func SaveConfig(cfg Config) error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "config.yaml"), b, 0600)
}
