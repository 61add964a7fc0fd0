// Package config provides configuration loading and validation for the CLI and HTTP server.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Environment variables read by ApplyEnv.
const (
	EnvPort       = "PORT"
	EnvConfigPath = "RESUME_ANALYZER_CONFIG"
	EnvCatalog    = "RESUME_ANALYZER_CATALOG"
	EnvLogLevel   = "LOG_LEVEL"
)

// Config represents settings loaded from a JSON file. All fields are optional;
// zero values are filled by MergeWithDefaults and CLI flags take precedence.
type Config struct {
	Port int `json:"port,omitempty" validate:"omitempty,min=1,max=65535"`

	// CatalogPath points to a custom skill catalog; empty uses the embedded one
	CatalogPath string `json:"catalog_path,omitempty"`

	// Limits for uploads (bytes) and for resume/job text in JSON requests (characters)
	MaxUploadBytes int64 `json:"max_upload_bytes,omitempty" validate:"omitempty,min=1"`
	MaxTextChars   int   `json:"max_text_chars,omitempty" validate:"omitempty,min=1"`

	AllowedExtensions []string `json:"allowed_extensions,omitempty" validate:"omitempty,dive,startswith=."`
	LogLevel          string   `json:"log_level,omitempty" validate:"omitempty,oneof=debug info warn error"`
	CORSOrigin        string   `json:"cors_origin,omitempty"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report JSON field names in validation errors
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Port:              8080,
		MaxUploadBytes:    5 << 20,
		MaxTextChars:      100_000,
		AllowedExtensions: []string{".pdf", ".docx", ".txt", ".html"},
		LogLevel:          "info",
		CORSOrigin:        "*",
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values and that a configured
// catalog file exists.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("config error: '%s' failed '%s' check (value: %v)", fe.Field(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("config error: %w", err)
	}

	if c.CatalogPath != "" {
		if _, err := os.Stat(c.CatalogPath); os.IsNotExist(err) {
			return fmt.Errorf("config error: catalog file not found: %s", c.CatalogPath)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with zero fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.CatalogPath == "" {
		result.CatalogPath = defaults.CatalogPath
	}
	if result.MaxUploadBytes == 0 {
		result.MaxUploadBytes = defaults.MaxUploadBytes
	}
	if result.MaxTextChars == 0 {
		result.MaxTextChars = defaults.MaxTextChars
	}
	if len(result.AllowedExtensions) == 0 {
		result.AllowedExtensions = slices.Clone(defaults.AllowedExtensions)
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.CORSOrigin == "" {
		result.CORSOrigin = defaults.CORSOrigin
	}

	return result
}

// ApplyEnv overrides fields from environment variables looked up with getenv.
// Unparseable numeric values are reported rather than ignored.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv(EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config error: invalid %s %q: %w", EnvPort, v, err)
		}
		c.Port = port
	}
	if v := getenv(EnvCatalog); v != "" {
		c.CatalogPath = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	return nil
}

// Load builds the effective configuration: the JSON file at path (if any), then
// environment overrides, then defaults for anything still unset. The result is validated.
func Load(path string, getenv func(string) string) (Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return Config{}, err
		}
		cfg = loaded
	}

	if err := cfg.ApplyEnv(getenv); err != nil {
		return Config{}, err
	}

	merged := cfg.MergeWithDefaults(Defaults())
	if err := merged.Validate(); err != nil {
		return Config{}, err
	}
	return merged, nil
}

// SlogLevel maps LogLevel to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// IsAllowedExtension reports whether ext (with leading dot, any case) may be uploaded.
func (c *Config) IsAllowedExtension(ext string) bool {
	return slices.Contains(c.AllowedExtensions, strings.ToLower(ext))
}
