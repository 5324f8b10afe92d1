package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
)

// Config captures the settings hardback needs to reach the volumes API.
// Values come from defaults, then the TOML config file, then environment
// variables, each layer overriding the previous.
type Config struct {
	BaseURL        string `toml:"base_url" envconfig:"HARDBACK_BASE_URL"`
	APIKey         string `toml:"api_key" envconfig:"HARDBACK_API_KEY"`
	PopularSubject string `toml:"popular_subject" envconfig:"HARDBACK_POPULAR_SUBJECT"`
	LogLevel       string `toml:"log_level" envconfig:"HARDBACK_LOG_LEVEL"`
}

const (
	defaultConfigPath     = "~/.config/hardback/config.toml"
	defaultBaseURL        = "https://www.googleapis.com/books/v1"
	defaultPopularSubject = "subject:fiction"
	defaultLogLevel       = "debug"
)

// Load locates and parses the hardback config, falling back to defaults when
// the file is missing. An absent API key is legal; the upstream API serves
// unauthenticated requests under a reduced quota.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		BaseURL:        defaultBaseURL,
		PopularSubject: defaultPopularSubject,
		LogLevel:       defaultLogLevel,
	}

	file, err := os.Open(resolved)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("open config: %w", err)
		}
	} else {
		defer func() { _ = file.Close() }()
		bytes, err := io.ReadAll(file)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := toml.Unmarshal(bytes, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("process environment: %w", err)
	}

	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.PopularSubject = strings.TrimSpace(cfg.PopularSubject)
	if cfg.PopularSubject == "" {
		cfg.PopularSubject = defaultPopularSubject
	}
	cfg.LogLevel = strings.TrimSpace(cfg.LogLevel)
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}

	return cfg, nil
}

// Level maps the configured log level onto zerolog's levels.
func (c Config) Level() zerolog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "trace":
		return zerolog.TraceLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.DebugLevel
	}
}

// LogPath returns the diagnostic log file path. The terminal belongs to the
// UI, so operator-facing detail goes to a file next to the config.
func LogPath() string {
	return mustExpand("~/.config/hardback/hardback.log")
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
