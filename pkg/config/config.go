// Package config holds the process configuration: token store locations,
// transport settings, remote endpoint, logging, and telemetry. Values are
// layered defaults < YAML file < environment < command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Transport kinds.
const (
	TransportStdio          = "stdio"
	TransportHTTP           = "http"
	TransportStreamableHTTP = "streamable-http"
	TransportSSE            = "sse"
)

// Config is the process configuration.
type Config struct {
	TokenStore       string          `yaml:"tokenstore"`
	TokenStoreBase64 string          `yaml:"tokenstore_base64"`
	BaseURL          string          `yaml:"base_url"`
	Server           ServerConfig    `yaml:"server"`
	Log              LogConfig       `yaml:"log"`
	Telemetry        TelemetryConfig `yaml:"telemetry"`
}

// ServerConfig selects and configures the transport.
type ServerConfig struct {
	Transport string `yaml:"transport"`
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	Path      string `yaml:"path"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return s.Host + ":" + strconv.Itoa(s.Port)
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json or text
}

// TelemetryConfig configures trace export. An empty endpoint disables it.
type TelemetryConfig struct {
	OTLPEndpoint string `yaml:"otlp_endpoint"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		TokenStore:       "~/.garminconnect",
		TokenStoreBase64: "~/.garminconnect_base64",
		BaseURL:          "https://connectapi.garmin.com",
		Server: ServerConfig{
			Transport: TransportHTTP,
			Host:      "0.0.0.0",
			Port:      8000,
			Path:      "/mcp",
		},
		Log: LogConfig{Level: "info", Format: "json"},
	}
}

// LoadFile overlays the YAML file at path onto cfg. ${VAR} references are
// expanded before parsing.
func LoadFile(cfg Config, path string) (Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is caller-provided configuration, not user input
	if err != nil {
		return cfg, fmt.Errorf("config: load: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse: %w", err)
	}

	return cfg, nil
}

// LoadDotEnv loads variables from the .env file at path into the environment
// without overriding variables already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("config: load %s: %w", path, err)
	}
	return nil
}

// Getenv looks up an environment variable.
type Getenv func(key string) (string, bool)

// ApplyEnv overlays environment variables onto cfg.
func ApplyEnv(cfg Config, getenv Getenv) (Config, error) {
	if getenv == nil {
		getenv = os.LookupEnv
	}

	str := func(key string, dst *string) {
		if v, ok := getenv(key); ok && v != "" {
			*dst = v
		}
	}

	str("GARMINTOKENS", &cfg.TokenStore)
	str("GARMINTOKENS_BASE64", &cfg.TokenStoreBase64)
	str("GARMIN_BASE_URL", &cfg.BaseURL)
	str("SERVER_TRANSPORT", &cfg.Server.Transport)
	str("SERVER_HOST", &cfg.Server.Host)
	str("SERVER_PATH", &cfg.Server.Path)
	str("LOG_LEVEL", &cfg.Log.Level)
	str("LOG_FORMAT", &cfg.Log.Format)
	str("OTEL_EXPORTER_OTLP_ENDPOINT", &cfg.Telemetry.OTLPEndpoint)

	if v, ok := getenv("SERVER_PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("config: SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}

	return cfg, nil
}

// Normalize lowercases enumerations and expands "~" in token paths. An inline
// token blob is left untouched.
func (c Config) Normalize() Config {
	c.Server.Transport = strings.ToLower(strings.TrimSpace(c.Server.Transport))
	c.Log.Level = strings.ToLower(c.Log.Level)
	c.Log.Format = strings.ToLower(c.Log.Format)
	c.TokenStore = ExpandHome(c.TokenStore)
	c.TokenStoreBase64 = ExpandHome(c.TokenStoreBase64)
	return c
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	switch c.Server.Transport {
	case TransportStdio, TransportHTTP, TransportStreamableHTTP, TransportSSE:
	default:
		return fmt.Errorf("config: unknown transport %q", c.Server.Transport)
	}

	if c.Server.Transport != TransportStdio {
		if c.Server.Port < 1 || c.Server.Port > 65535 {
			return fmt.Errorf("config: port %d out of range", c.Server.Port)
		}
		if !strings.HasPrefix(c.Server.Path, "/") {
			return fmt.Errorf("config: path %q must start with /", c.Server.Path)
		}
	}

	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log level %q", c.Log.Level)
	}

	switch c.Log.Format {
	case "", "json", "text":
	default:
		return fmt.Errorf("config: unknown log format %q", c.Log.Format)
	}

	return nil
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
