package bootstrap

import (
	"fmt"
	"strings"

	"github.com/dianliyang/portfolio"
)

// Options captures configuration shared by the blog CLI subcommands.
// Precedence: flags over PORTFOLIO_* variables over the config file over
// defaults.
type Options struct {
	ConfigPath    string
	EnvFile       string
	ContentDir    string
	Pattern       string
	DefaultLocale string
	Locales       []string
	StrictSlugs   bool
	LogLevel      string
	LogFormat     string
	Commands      bool
	ModuleOptions []portfolio.Option
}

// LoadConfig resolves the config file, .env file and environment into a
// portfolio config, before any flag overrides.
func LoadConfig(opts Options) (portfolio.Config, error) {
	cfg := portfolio.DefaultConfig()
	if path := strings.TrimSpace(opts.ConfigPath); path != "" {
		loaded, err := portfolio.LoadConfig(path)
		if err != nil {
			return portfolio.Config{}, err
		}
		cfg = loaded
	}
	if path := strings.TrimSpace(opts.EnvFile); path != "" {
		if err := portfolio.LoadDotEnv(path); err != nil {
			return portfolio.Config{}, err
		}
	}
	return portfolio.ApplyEnv(cfg)
}

// BuildModule constructs a portfolio module from CLI options.
func BuildModule(opts Options) (*portfolio.Module, error) {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return nil, err
	}
	if dir := strings.TrimSpace(opts.ContentDir); dir != "" {
		cfg.Content.Dir = dir
	}
	if pattern := strings.TrimSpace(opts.Pattern); pattern != "" {
		cfg.Content.Pattern = pattern
	}
	if opts.StrictSlugs {
		cfg.Content.StrictSlugs = true
	}

	if locale := strings.TrimSpace(opts.DefaultLocale); locale != "" {
		cfg.DefaultLocale = locale
	}
	if len(opts.Locales) > 0 {
		cfg.I18N.Locales = cloneStrings(opts.Locales)
	}

	if level := strings.TrimSpace(opts.LogLevel); level != "" {
		cfg.Features.Logger = true
		cfg.Logging.Level = level
	}
	if format := strings.TrimSpace(opts.LogFormat); format != "" {
		cfg.Features.Logger = true
		cfg.Logging.Provider = "gologger"
		cfg.Logging.Format = format
	}
	cfg.Features.Commands = cfg.Features.Commands || opts.Commands

	module, err := portfolio.New(cfg, opts.ModuleOptions...)
	if err != nil {
		return nil, fmt.Errorf("initialise portfolio module: %w", err)
	}
	return module, nil
}

// SplitLocales parses a comma separated locale list into a trimmed slice.
func SplitLocales(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	locales := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			locales = append(locales, trimmed)
		}
	}
	return locales
}

func cloneStrings(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}
