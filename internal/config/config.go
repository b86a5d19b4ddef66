package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Tiliavir/punch/internal/logger"
)

// Config is the resolved configuration for punch.
type Config struct {
	// ReportPath is the line-pair text file holding every event.
	ReportPath string `yaml:"report_path"`
	// LogLevel is a zap level name; empty keeps the default (warn).
	LogLevel string `yaml:"log_level"`
}

const (
	// EnvReportPath names the report file and overrides the config file.
	EnvReportPath = "TIME_REPORT_PATH"
	// EnvLogLevel overrides the configured log level.
	EnvLogLevel = "TIME_REPORT_LOG_LEVEL"
)

var (
	// ErrReportPathNotSet is returned when neither the environment nor the
	// config file names a report file. There is no default location.
	ErrReportPathNotSet = errors.New(EnvReportPath + " is not set")
	errInvalidLogLevel  = errors.New("invalid log level")
)

// LookupFunc reads one environment variable.
type LookupFunc func(key string) (string, bool)

// Load reads the optional YAML file at path, applies environment overrides
// and validates the result.
func Load(path string) (Config, error) {
	return LoadWith(path, os.LookupEnv)
}

// LoadWith is Load with an explicit environment lookup.
func LoadWith(path string, lookup LookupFunc) (Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	if v, ok := lookup(EnvReportPath); ok && strings.TrimSpace(v) != "" {
		cfg.ReportPath = v
	}
	if v, ok := lookup(EnvLogLevel); ok && strings.TrimSpace(v) != "" {
		cfg.LogLevel = v
	}

	if err := Validate(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks required fields and expands a leading "~/" in ReportPath.
func Validate(cfg *Config) error {
	if strings.TrimSpace(cfg.ReportPath) == "" {
		return ErrReportPathNotSet
	}

	if rest, ok := strings.CutPrefix(cfg.ReportPath, "~/"); ok {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("cannot determine home directory: %w", err)
		}
		cfg.ReportPath = filepath.Join(home, rest)
	}

	if cfg.LogLevel != "" {
		if _, ok := logger.ParseLogLevel(cfg.LogLevel); !ok {
			return fmt.Errorf("%w: %q", errInvalidLogLevel, cfg.LogLevel)
		}
	}
	return nil
}
