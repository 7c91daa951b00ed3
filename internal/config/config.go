package config

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Server holds the API server configuration read from config.json.
type Server struct {
	Addr            string `json:"addr"`
	DataDir         string `json:"data_dir"`
	SecretFile      string `json:"secret_file"`
	LogFile         string `json:"log_file"`
	TokenTTLMinutes int    `json:"token_ttl_minutes"`
}

// Load reads the server config from path. Missing file or fields fall back
// to defaults.
func Load(path string) Server {
	cfg := Server{
		Addr:            ":8080",
		DataDir:         "data",
		SecretFile:      "secret.key",
		LogFile:         "server.log",
		TokenTTLMinutes: 60,
	}
	f, err := os.Open(path)
	if err != nil {
		return cfg
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(&cfg); err != nil {
		return cfg
	}
	if cfg.TokenTTLMinutes <= 0 {
		cfg.TokenTTLMinutes = 60
	}
	return cfg
}

// ReadMasterSecret reads the 32-byte hex master secret. The TASKDECK_SECRET_HEX
// environment variable takes precedence over the secret file.
func ReadMasterSecret(path string) ([]byte, error) {
	h := os.Getenv("TASKDECK_SECRET_HEX")
	if h == "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("TASKDECK_SECRET_HEX not set and %s not found", path)
		}
		h = string(data)
	}
	h = strings.TrimSpace(h)
	b, err := hex.DecodeString(h)
	if err != nil {
		return nil, fmt.Errorf("master secret hex decode error: %w", err)
	}
	if len(b) != 32 {
		return nil, fmt.Errorf("master secret length must be 32 bytes (hex 64 chars)")
	}
	return b, nil
}
