// Package config loads slipper settings from the environment.
//
// An optional .env file in the working directory is read first; variables
// already set in the process environment take precedence over it.
//
//	SLIPPER_PASSWORD     password used instead of prompting
//	SLIPPER_STORE        path of the page store (default .slipper)
//	SLIPPER_LOG_LEVEL    debug, info, warn or error (default info)
//	SLIPPER_NO_KEYRING   never read or write the OS keyring
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const DotEnvFile = ".env"

// Config holds runtime settings
type Config struct {
	Password  string `env:"SLIPPER_PASSWORD"`
	StorePath string `env:"SLIPPER_STORE" envDefault:".slipper"`
	LogLevel  string `env:"SLIPPER_LOG_LEVEL" envDefault:"info"`
	NoKeyring bool   `env:"SLIPPER_NO_KEYRING" envDefault:"false"`
}

// Load reads .env (if present) and parses the environment into a Config
func Load() (*Config, error) {
	return LoadFiles(DotEnvFile)
}

// LoadFiles is Load with explicit dotenv files; missing files are ignored
func LoadFiles(files ...string) (*Config, error) {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if _, err := cfg.Level(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Level converts LogLevel to a slog.Level
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid SLIPPER_LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	return level, nil
}
