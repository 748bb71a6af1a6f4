// Copyright 2026 The Gramregex Authors
// SPDX-License-Identifier: MIT

package llm

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/gramregex/gramregex/internal/settings"
)

// ErrUnsupportedProvider matches every *UnsupportedProviderError.
var ErrUnsupportedProvider = errors.New("unsupported LLM provider")

// UnsupportedProviderError reports a provider name with no registered client.
type UnsupportedProviderError struct {
	Provider string
}

func (e *UnsupportedProviderError) Error() string {
	return fmt.Sprintf("unsupported LLM provider: %s", e.Provider)
}

// Is lets errors.Is match ErrUnsupportedProvider.
func (e *UnsupportedProviderError) Is(target error) bool {
	return target == ErrUnsupportedProvider
}

// constructor builds a Client from resolved settings.
type constructor func(settings.Settings) (Client, error)

// providers maps lower-cased provider names to their client constructors.
// Supporting a new provider means adding one entry here.
var providers = map[string]constructor{
	"openai": func(s settings.Settings) (Client, error) {
		return NewOpenAIClient(s)
	},
}

// New returns the client for s.Provider, compared case-insensitively.
func New(s settings.Settings) (Client, error) {
	build, ok := providers[strings.ToLower(strings.TrimSpace(s.Provider))]
	if !ok {
		return nil, &UnsupportedProviderError{Provider: s.Provider}
	}
	return build(s)
}

// Providers returns the supported provider names, sorted.
func Providers() []string {
	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
