// Package config loads editor settings from an optional TOML file with
// ROUTEMAP_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "ROUTEMAP_"

// DefaultFile is read when it exists and no file is named explicitly.
const DefaultFile = "routemap.toml"

var validate = validator.New()

// Config is the full runtime configuration.
type Config struct {
	Editor   EditorConfig   `toml:"editor" envPrefix:"EDITOR_"`
	Local    LocalConfig    `toml:"local" envPrefix:"LOCAL_"`
	Remote   RemoteConfig   `toml:"remote" envPrefix:"REMOTE_"`
	Registry RegistryConfig `toml:"registry" envPrefix:"REGISTRY_"`
	Log      LogConfig      `toml:"log" envPrefix:"LOG_"`
	Metrics  MetricsConfig  `toml:"metrics" envPrefix:"METRICS_"`
}

// EditorConfig holds canvas and history settings.
type EditorConfig struct {
	Variant       string  `toml:"variant" env:"VARIANT" validate:"oneof=full lite"`
	GridSize      float64 `toml:"grid_size" env:"GRID_SIZE" validate:"gte=0,lte=400"`
	Snap          bool    `toml:"snap" env:"SNAP"`
	ColumnSpacing float64 `toml:"column_spacing" env:"COLUMN_SPACING" validate:"gt=0"`
	RowSpacing    float64 `toml:"row_spacing" env:"ROW_SPACING" validate:"gt=0"`
	HistoryDepth  int     `toml:"history_depth" env:"HISTORY_DEPTH" validate:"min=1,max=100"`
	Glyphs        bool    `toml:"glyphs" env:"GLYPHS"`
}

// LocalConfig selects where drafts are autosaved.
type LocalConfig struct {
	Kind          string        `toml:"kind" env:"KIND" validate:"oneof=dir sqlite memory"`
	Path          string        `toml:"path" env:"PATH" validate:"required_unless=Kind memory"`
	AutosaveDelay time.Duration `toml:"autosave_delay" env:"AUTOSAVE_DELAY" validate:"gt=0"`
}

// RemoteConfig selects the document store holding the shared icon registry.
type RemoteConfig struct {
	Kind            string        `toml:"kind" env:"KIND" validate:"oneof=none memory dir sqlite s3"`
	Path            string        `toml:"path" env:"PATH" validate:"required_if=Kind dir,required_if=Kind sqlite"`
	Bucket          string        `toml:"bucket" env:"BUCKET" validate:"required_if=Kind s3"`
	Prefix          string        `toml:"prefix" env:"PREFIX"`
	Region          string        `toml:"region" env:"REGION"`
	Endpoint        string        `toml:"endpoint" env:"ENDPOINT" validate:"omitempty,url"`
	AccessKeyID     string        `toml:"access_key_id" env:"ACCESS_KEY_ID"`
	SecretAccessKey string        `toml:"secret_access_key" env:"SECRET_ACCESS_KEY"`
	PollInterval    time.Duration `toml:"poll_interval" env:"POLL_INTERVAL" validate:"gt=0"`
}

// RegistryConfig names the two registry documents.
type RegistryConfig struct {
	PrimaryKey string        `toml:"primary_key" env:"PRIMARY_KEY" validate:"required"`
	MirrorKey  string        `toml:"mirror_key" env:"MIRROR_KEY" validate:"omitempty,nefield=PrimaryKey"`
	Delay      time.Duration `toml:"delay" env:"DELAY" validate:"gt=0"`
}

// LogConfig configures the file logger. The terminal owns stdout while editing.
type LogConfig struct {
	File  string `toml:"file" env:"FILE"`
	Level string `toml:"level" env:"LEVEL" validate:"oneof=debug info warn error"`
}

// MetricsConfig enables the prometheus endpoint when Addr is set.
type MetricsConfig struct {
	Addr string `toml:"addr" env:"ADDR" validate:"omitempty,hostname_port"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Editor: EditorConfig{
			Variant:       "full",
			GridSize:      40,
			Snap:          true,
			ColumnSpacing: 260,
			RowSpacing:    140,
			HistoryDepth:  10,
		},
		Local: LocalConfig{
			Kind:          "dir",
			Path:          ".routemap",
			AutosaveDelay: 250 * time.Millisecond,
		},
		Remote: RemoteConfig{
			Kind:         "none",
			PollInterval: 5 * time.Second,
		},
		Registry: RegistryConfig{
			PrimaryKey: "asset-registry",
			MirrorKey:  "campaign-assets",
			Delay:      800 * time.Millisecond,
		},
		Log: LogConfig{
			File:  "routemap.log",
			Level: "info",
		},
	}
}

// Load builds the configuration: defaults, then the TOML file at path (if
// path is not empty), then environment overrides. The result is validated.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseEnv applies ROUTEMAP_* environment variables to target.
func ParseEnv(target any) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate checks every field against its constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// SlogLevel maps Log.Level to a slog level.
func (c Config) SlogLevel() slog.Level {
	switch c.Log.Level {
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

func formatValidationError(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return fmt.Errorf("invalid config: %w", err)
	}
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		field := strings.TrimPrefix(e.Namespace(), "Config.")
		if e.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s: failed %s=%s", field, e.Tag(), e.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s: failed %s", field, e.Tag()))
		}
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}
