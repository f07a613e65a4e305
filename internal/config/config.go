// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package config loads pngchunk CLI configuration.
//
// Sources in the order of priority (later override earlier): defaults,
// YAML configuration file, environment variables. Command-line flags are
// applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap/zapcore"
)

// EnvPrefix is the environment variable prefix.
//
// Example: PNGCHUNK_LOG_LEVEL=debug sets log.level.
const EnvPrefix = "PNGCHUNK_"

// Config is the CLI configuration.
type Config struct {
	Log      Log      `koanf:"log"`
	Compress Compress `koanf:"compress"`

	// Strict rejects chunk types with the reserved bit set.
	Strict bool `koanf:"strict"`
}

// Log configures the logger.
type Log struct {
	Level       string `koanf:"level"`
	Development bool   `koanf:"development"`
}

// Compress configures compressed text chunks.
type Compress struct {
	// Level is the zstd encoder level: fastest, default, better or best.
	Level string `koanf:"level"`

	// Enabled compresses (and decompresses) messages by default.
	Enabled bool `koanf:"enabled"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Log: Log{
			Level: "warn",
		},
		Compress: Compress{
			Level: "default",
		},
	}
}

// Load loads the configuration from the optional file at path and the environment.
func Load(path string) (Config, error) {
	cfg := Default()
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return cfg, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	// PNGCHUNK_COMPRESS_LEVEL -> compress.level
	transform := func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", transform), nil); err != nil {
		return cfg, fmt.Errorf("load env: %w", err)
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, fmt.Errorf("unmarshal config: %w", err)
	}

	return cfg, cfg.Validate()
}

// Validate checks the configuration values.
func (c Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}

	switch c.Compress.Level {
	case "fastest", "default", "better", "best":
	default:
		return errors.New("compress.level: should be one of fastest, default, better, best")
	}

	return nil
}
