// Copyright 2026 The Gramregex Authors
// SPDX-License-Identifier: MIT

// Package grammarconfig loads named grammar definitions from YAML (or TOML)
// files and provides the grammar bundled with gramregex.
package grammarconfig

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Errors returned by Load and Parse. Callers match them with errors.Is.
var (
	ErrNotFound = errors.New("grammar config not found")
	ErrParse    = errors.New("grammar config is not valid")
	ErrSchema   = errors.New("grammar config has an invalid shape")

	// ErrIO is returned when a grammar source exists but cannot be read.
	// The grammar package reuses it for grammar files.
	ErrIO = errors.New("grammar could not be read")
)

// DefaultName is the pseudo-path reported in errors about the bundled config.
const DefaultName = "<default>/default.yaml"

//go:embed default.yaml
var defaultConfig []byte

// Default returns the raw bytes of the bundled grammar config.
func Default() []byte {
	out := make([]byte, len(defaultConfig))
	copy(out, defaultConfig)
	return out
}

// GrammarConfig is a named grammar loaded from a config file.
type GrammarConfig struct {
	Name        string `yaml:"name" toml:"name"`
	Description string `yaml:"description" toml:"description"`
	Content     string `yaml:"content" toml:"content"`
}

// requiredFields lists the keys every config must define as strings.
var requiredFields = []string{"name", "description", "content"}

// Load reads the grammar config at path. Files ending in .toml are decoded as
// TOML; everything else is treated as YAML.
func Load(path string) (*GrammarConfig, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user-provided config path
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: grammar config %s: %w", ErrIO, path, err)
	}
	return Parse(data, path)
}

// LoadDefault decodes the grammar config bundled into the binary.
func LoadDefault() (*GrammarConfig, error) {
	return Parse(defaultConfig, DefaultName)
}

// Parse decodes and validates a grammar config. source names the document
// in error messages and selects the decoder by extension.
func Parse(data []byte, source string) (*GrammarConfig, error) {
	var (
		doc any
		err error
	)
	if strings.EqualFold(filepath.Ext(source), ".toml") {
		var table map[string]any
		_, err = toml.Decode(string(data), &table)
		doc = table
	} else {
		err = yaml.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s: %v", ErrParse, source, err)
	}

	m, ok := asMapping(doc)
	if !ok {
		return nil, fmt.Errorf("%w: config at %s must be a mapping", ErrSchema, source)
	}

	var problems []string
	values := make(map[string]string, len(requiredFields))
	for _, key := range requiredFields {
		raw, present := m[key]
		if !present {
			problems = append(problems, fmt.Sprintf("%s: field required", key))
			continue
		}
		s, isString := raw.(string)
		if !isString {
			problems = append(problems, fmt.Sprintf("%s: must be a string, got %s", key, typeName(raw)))
			continue
		}
		values[key] = s
	}
	if len(problems) > 0 {
		sort.Strings(problems)
		return nil, fmt.Errorf("%w: invalid grammar config at %s:\n  %s", ErrSchema, source, strings.Join(problems, "\n  "))
	}

	return &GrammarConfig{
		Name:        values["name"],
		Description: values["description"],
		Content:     values["content"],
	}, nil
}

// asMapping accepts both map shapes yaml.v3 produces; documents with
// non-string keys decode to map[any]any.
func asMapping(doc any) (map[string]any, bool) {
	switch m := doc.(type) {
	case map[string]any:
		return m, m != nil
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, v := range m {
			if ks, ok := k.(string); ok {
				out[ks] = v
			}
		}
		return out, true
	default:
		return nil, false
	}
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "mapping"
	case []any:
		return "list"
	case bool:
		return "bool"
	case int, int64, uint64, float64:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}
