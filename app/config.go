package app

import (
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/thenaterhood/dnsdbq/client"
)

type AppConfig struct {
	Server string `json:"server"`
	ApiKey string `json:"api_key"`
	// HTTP timeout in seconds. Zero disables the timeout.
	HttpTimeout int `json:"http_timeout"`
	LogLevel    int `json:"log_level"`
	// Address for the prometheus /metrics listener. Metrics are
	// disabled when empty, which is what a one-shot run wants.
	MetricsListen string `json:"metrics_listen"`
}

// DefaultConfigFiles returns the paths consulted when no config file
// is given on the command line. Later files override earlier ones.
func DefaultConfigFiles() []string {
	files := []string{"/etc/dnsdb-query.conf"}

	if home, err := os.UserHomeDir(); err == nil {
		files = append(files, filepath.Join(home, ".dnsdb-query.conf"))
	}

	return files
}

func GetDefaultConfig() AppConfig {
	return AppConfig{
		Server:      client.DefaultServer,
		HttpTimeout: 60,
		LogLevel:    int(slog.LevelInfo),
	}
}

// The legacy dnsdb-query.conf format: KEY=value, one per line, with
// optional double quotes around the value.
func parseLegacyConfig(config *AppConfig, data []byte) {
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, val, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		val = strings.Trim(strings.TrimSpace(val), `"`)

		switch strings.TrimSpace(key) {
		case "DNSDB_SERVER":
			config.Server = val
		case "APIKEY":
			config.ApiKey = val
		case "HTTP_TIMEOUT":
			if timeout, err := strconv.Atoi(val); err == nil {
				config.HttpTimeout = timeout
			}
		}
	}
}

func applyEnvironment(config *AppConfig) {
	if server := os.Getenv("DNSDB_SERVER"); server != "" {
		config.Server = server
	}
	if apiKey := os.Getenv("DNSDB_API_KEY"); apiKey != "" {
		config.ApiKey = apiKey
	}
}

// GetConfig merges the given config files over the defaults, in
// order, skipping files that don't exist. JSON configs and the legacy
// KEY=value format are both accepted. Environment variables
// DNSDB_SERVER and DNSDB_API_KEY override whatever was loaded.
func GetConfig(paths []string) (*AppConfig, error) {
	config := GetDefaultConfig()

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}

		if strings.HasPrefix(strings.TrimSpace(string(data)), "{") {
			if err := json.Unmarshal(data, &config); err != nil {
				return nil, err
			}
		} else {
			parseLegacyConfig(&config, data)
		}
	}

	applyEnvironment(&config)

	return &config, nil
}
