package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/germanamz/garmin-mcp/pkg/config"
)

// loadConfig resolves the configuration: defaults, then the YAML file, then
// the environment (after loading .env), then flags that were set explicitly.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	flags := cmd.Flags()

	envFile, _ := flags.GetString("env")
	if err := config.LoadDotEnv(envFile); err != nil {
		return config.Config{}, err
	}

	cfg := config.Default()

	if path, _ := flags.GetString("config"); path != "" {
		var err error
		if cfg, err = config.LoadFile(cfg, path); err != nil {
			return config.Config{}, err
		}
	}

	cfg, err := config.ApplyEnv(cfg, os.LookupEnv)
	if err != nil {
		return config.Config{}, err
	}

	if flags.Changed("transport") {
		cfg.Server.Transport, _ = flags.GetString("transport")
	}
	if flags.Changed("host") {
		cfg.Server.Host, _ = flags.GetString("host")
	}
	if flags.Changed("port") {
		cfg.Server.Port, _ = flags.GetInt("port")
	}
	if flags.Changed("path") {
		cfg.Server.Path, _ = flags.GetString("path")
	}
	if flags.Changed("log-level") {
		cfg.Log.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-format") {
		cfg.Log.Format, _ = flags.GetString("log-format")
	}

	cfg = cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	return cfg, nil
}

// newLogger writes to w, never stdout: the stdio transport owns it.
func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}
