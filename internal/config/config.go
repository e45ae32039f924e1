// Package config loads the CLI configuration from the environment and optional
// dotenv files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	formskema "github.com/reoring/formskema"
	"github.com/reoring/formskema/internal/logging"
)

var (
	// ErrParsingConfig is returned when environment variables cannot be parsed into Config.
	ErrParsingConfig = errors.New("failed to parse environment variables into config")

	// ErrInvalidDuplicatePolicy is returned for an unknown FORMSKEMA_DUPLICATE_KEYS value.
	ErrInvalidDuplicatePolicy = errors.New("invalid duplicate key policy")
)

// Config is the CLI configuration. Command-line flags override it.
type Config struct {
	LogLevel     string `env:"FORMSKEMA_LOG_LEVEL" envDefault:"info"`
	LogFile      string `env:"FORMSKEMA_LOG_FILE"`
	LogMaxSizeMB int    `env:"FORMSKEMA_LOG_MAX_SIZE_MB" envDefault:"100"`

	MaxBytes      int64  `env:"FORMSKEMA_MAX_BYTES" envDefault:"1048576"`
	MaxDepth      int    `env:"FORMSKEMA_MAX_DEPTH" envDefault:"32"`
	FailFast      bool   `env:"FORMSKEMA_FAIL_FAST" envDefault:"false"`
	DuplicateKeys string `env:"FORMSKEMA_DUPLICATE_KEYS" envDefault:"error"`
}

// Load reads dotenv files (".env" when none are given) and then the process
// environment, which wins over file values. Missing dotenv files are skipped.
// The process environment itself is not modified.
func Load(dotenv ...string) (Config, error) {
	if len(dotenv) == 0 {
		dotenv = []string{".env"}
	}
	vars := map[string]string{}
	for _, f := range dotenv {
		m, err := godotenv.Read(f)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return Config{}, fmt.Errorf("reading %s: %w", f, err)
		}
		for k, v := range m {
			vars[k] = v
		}
	}
	for k, v := range env.ToMap(os.Environ()) {
		vars[k] = v
	}

	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: vars}); err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}
	if _, err := cfg.duplicatePolicy(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseOpt converts the decode limits into formskema options.
func (c Config) ParseOpt() formskema.ParseOpt {
	dup, _ := c.duplicatePolicy()
	return formskema.ParseOpt{
		OnDuplicateKey: dup,
		MaxDepth:       c.MaxDepth,
		MaxBytes:       c.MaxBytes,
		FailFast:       c.FailFast,
	}
}

// Logging returns the logger configuration.
func (c Config) Logging() logging.Config {
	lc := logging.DefaultConfig()
	lc.Level = c.LogLevel
	lc.FilePath = c.LogFile
	if c.LogMaxSizeMB > 0 {
		lc.MaxSizeMB = c.LogMaxSizeMB
	}
	return lc
}

func (c Config) duplicatePolicy() (formskema.Severity, error) {
	switch strings.ToLower(strings.TrimSpace(c.DuplicateKeys)) {
	case "ignore":
		return formskema.Ignore, nil
	case "warn":
		return formskema.Warn, nil
	case "error", "":
		return formskema.Error, nil
	default:
		return formskema.Error, fmt.Errorf("%w: %q", ErrInvalidDuplicatePolicy, c.DuplicateKeys)
	}
}
