package runtimeconfig

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables read by ApplyEnv.
const (
	EnvContentDir    = "PORTFOLIO_CONTENT_DIR"
	EnvDefaultLocale = "PORTFOLIO_DEFAULT_LOCALE"
	EnvLocales       = "PORTFOLIO_LOCALES"
	EnvStrictSlugs   = "PORTFOLIO_STRICT_SLUGS"
	EnvLogLevel      = "PORTFOLIO_LOG_LEVEL"
	EnvLogFormat     = "PORTFOLIO_LOG_FORMAT"
)

// Load reads a YAML file over DefaultConfig. Keys missing from the file keep
// their defaults; unknown keys are rejected. A missing file yields the
// defaults.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("portfolio config: read %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("portfolio config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// LoadDotEnv loads KEY=value pairs from a .env file into the process
// environment without overriding variables that are already set. A missing
// file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("portfolio config: load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides cfg with PORTFOLIO_* variables resolved through lookup.
// A log level also enables the logger feature.
func ApplyEnv(cfg Config, lookup func(string) (string, bool)) (Config, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	get := func(key string) (string, bool) {
		value, ok := lookup(key)
		value = strings.TrimSpace(value)
		return value, ok && value != ""
	}

	if value, ok := get(EnvContentDir); ok {
		cfg.Content.Dir = value
	}
	if value, ok := get(EnvDefaultLocale); ok {
		cfg.DefaultLocale = value
	}
	if value, ok := get(EnvLocales); ok {
		var locales []string
		for _, part := range strings.Split(value, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				locales = append(locales, trimmed)
			}
		}
		cfg.I18N.Locales = locales
	}
	if value, ok := get(EnvStrictSlugs); ok {
		strict, err := strconv.ParseBool(value)
		if err != nil {
			return cfg, fmt.Errorf("portfolio config: %s: %w", EnvStrictSlugs, err)
		}
		cfg.Content.StrictSlugs = strict
	}
	if value, ok := get(EnvLogLevel); ok {
		cfg.Features.Logger = true
		cfg.Logging.Level = value
	}
	if value, ok := get(EnvLogFormat); ok {
		cfg.Logging.Provider = "gologger"
		cfg.Logging.Format = value
	}
	return cfg, nil
}
