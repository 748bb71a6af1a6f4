// Copyright 2026 The Gramregex Authors
// SPDX-License-Identifier: MIT

// Package settings resolves the provider, model, API key, base URL and
// grammar config path used by gramregex from the environment.
package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variable names read by Load.
const (
	EnvAPIKey           = "OPENAI_API_KEY"
	EnvProvider         = "PROVIDER"
	EnvModel            = "OPENAI_MODEL"
	EnvBaseURL          = "OPENAI_BASE_URL"
	EnvConfigPath       = "GRAMREGEX_CONFIG_PATH"
	EnvConfigPathLegacy = "GRAMREGEX_CONFIG"
)

const (
	// DefaultProvider is used when PROVIDER is unset.
	DefaultProvider = "openai"

	// DefaultModel is used when OPENAI_MODEL is unset.
	DefaultModel = "gpt-4.1-mini"
)

// ErrConfiguration is returned when settings cannot be resolved, most
// commonly because no API key is available.
var ErrConfiguration = errors.New("settings: configuration error")

// DotEnvPath is the dotenv file consulted by Load. A missing file is not an
// error. The CLI points it elsewhere with --env-file.
var DotEnvPath = ".env"

// Settings is an immutable snapshot of the values needed for one or more
// generation calls. Derive modified copies with WithModel or WithOverrides.
type Settings struct {
	Provider          string
	APIKey            string
	BaseURL           string
	Model             string
	GrammarConfigPath string
}

// Load resolves Settings. Values are taken, highest precedence first, from
// overrides (keyed by environment variable name), the process environment,
// the dotenv file at DotEnvPath, and finally the built-in defaults. Blank
// overrides count as unset, as in WithOverrides.
func Load(overrides map[string]string) (Settings, error) {
	dotenv, err := readDotEnv(DotEnvPath)
	if err != nil {
		return Settings{}, err
	}

	lookup := func(key string) string {
		if v, ok := overrides[key]; ok && strings.TrimSpace(v) != "" {
			return v
		}
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		return dotenv[key]
	}

	s := Settings{
		Provider:          orDefault(lookup(EnvProvider), DefaultProvider),
		APIKey:            strings.TrimSpace(lookup(EnvAPIKey)),
		BaseURL:           strings.TrimSpace(lookup(EnvBaseURL)),
		Model:             orDefault(lookup(EnvModel), DefaultModel),
		GrammarConfigPath: configPath(lookup(EnvConfigPath), lookup(EnvConfigPathLegacy)),
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}

	slog.Debug("settings resolved", "settings", s)
	return s, nil
}

// Validate reports whether s satisfies the invariants required to build a
// client.
func (s Settings) Validate() error {
	if s.APIKey == "" {
		return fmt.Errorf("%w: %s is required", ErrConfiguration, EnvAPIKey)
	}
	return nil
}

// WithModel returns a copy of s using model. An empty model leaves the copy
// unchanged.
func (s Settings) WithModel(model string) Settings {
	if model != "" {
		s.Model = model
	}
	return s
}

// WithOverrides returns a validated copy of s with the given fields replaced.
// Keys are the same environment variable names Load understands; empty
// values are ignored.
func (s Settings) WithOverrides(overrides map[string]string) (Settings, error) {
	for key, v := range overrides {
		if strings.TrimSpace(v) == "" {
			continue
		}
		switch key {
		case EnvAPIKey:
			s.APIKey = strings.TrimSpace(v)
		case EnvProvider:
			s.Provider = v
		case EnvModel:
			s.Model = v
		case EnvBaseURL:
			s.BaseURL = strings.TrimSpace(v)
		case EnvConfigPath, EnvConfigPathLegacy:
			s.GrammarConfigPath = strings.TrimSpace(v)
		default:
			return Settings{}, fmt.Errorf("%w: unknown setting %q", ErrConfiguration, key)
		}
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// LogValue keeps the API key out of log output.
func (s Settings) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("provider", s.Provider),
		slog.String("model", s.Model),
		slog.String("base_url", s.BaseURL),
		slog.String("grammar_config_path", s.GrammarConfigPath),
		slog.Bool("api_key_set", s.APIKey != ""),
	)
}

func readDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: reading %s: %v", ErrConfiguration, path, err)
	}
	return values, nil
}

// configPath normalizes the config path variables; blank values count as
// unset and the primary name wins over the legacy alias.
func configPath(primary, legacy string) string {
	if p := strings.TrimSpace(primary); p != "" {
		return p
	}
	return strings.TrimSpace(legacy)
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
