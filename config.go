package portfolio

import (
	"github.com/dianliyang/portfolio/internal/di"
	"github.com/dianliyang/portfolio/internal/runtimeconfig"
)

var (
	ErrContentDirRequired         = runtimeconfig.ErrContentDirRequired
	ErrContentPatternInvalid      = runtimeconfig.ErrContentPatternInvalid
	ErrDefaultLocaleRequired      = runtimeconfig.ErrDefaultLocaleRequired
	ErrDefaultLocaleNotConfigured = runtimeconfig.ErrDefaultLocaleNotConfigured
	ErrLoggingProviderRequired    = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown     = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid        = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid       = runtimeconfig.ErrLoggingFormatInvalid
	ErrMarkdownExtensionUnknown   = di.ErrMarkdownExtensionUnknown
)

type (
	Config               = runtimeconfig.Config
	I18NConfig           = runtimeconfig.I18NConfig
	ContentConfig        = runtimeconfig.ContentConfig
	MarkdownConfig       = runtimeconfig.MarkdownConfig
	MarkdownParserConfig = runtimeconfig.MarkdownParserConfig
	Features             = runtimeconfig.Features
	LoggingConfig        = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig reads a YAML config file over DefaultConfig. A missing file
// yields the defaults.
func LoadConfig(path string) (Config, error) {
	return runtimeconfig.Load(path)
}

// LoadDotEnv loads a .env file into the process environment when present.
func LoadDotEnv(path string) error {
	return runtimeconfig.LoadDotEnv(path)
}

// ApplyEnv overrides cfg with PORTFOLIO_* environment variables.
func ApplyEnv(cfg Config) (Config, error) {
	return runtimeconfig.ApplyEnv(cfg, nil)
}
