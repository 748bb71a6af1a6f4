// Copyright 2026 The Gramregex Authors
// SPDX-License-Identifier: MIT

// Package gramregex generates LLM output constrained by a context-free
// grammar. It is the library counterpart of the gramregex command: Generate
// accepts the same options as `gramregex generate`.
//
//	out, err := gramregex.Generate(ctx, "List three fruits", gramregex.Options{
//		GrammarFile:   "fruits.lark",
//		GrammarSyntax: gramregex.SyntaxLark,
//	})
package gramregex

import (
	"context"
	"log/slog"

	"github.com/gramregex/gramregex/internal/grammar"
	"github.com/gramregex/gramregex/internal/grammarconfig"
	"github.com/gramregex/gramregex/internal/llm"
	"github.com/gramregex/gramregex/internal/settings"
)

// Re-exported types.
type (
	Settings        = settings.Settings
	GrammarConfig   = grammarconfig.GrammarConfig
	Client          = llm.Client
	Request         = llm.Request
	GrammarSyntax   = llm.GrammarSyntax
	Verbosity       = llm.Verbosity
	ReasoningEffort = llm.ReasoningEffort

	UnsupportedProviderError = llm.UnsupportedProviderError
)

// Grammar syntaxes, verbosity levels and reasoning efforts.
const (
	SyntaxLark  = llm.SyntaxLark
	SyntaxRegex = llm.SyntaxRegex

	VerbosityLow    = llm.VerbosityLow
	VerbosityMedium = llm.VerbosityMedium
	VerbosityHigh   = llm.VerbosityHigh

	ReasoningMinimal = llm.ReasoningMinimal
	ReasoningMedium  = llm.ReasoningMedium
	ReasoningHigh    = llm.ReasoningHigh
)

// Errors returned by Generate. Match them with errors.Is. Transport and
// provider errors are returned wrapped and are not listed here.
var (
	ErrConfiguration       = settings.ErrConfiguration
	ErrInvalidArgument     = grammar.ErrInvalidArgument
	ErrInvalidOption       = llm.ErrInvalidOption
	ErrIO                  = grammar.ErrIO
	ErrNotFound            = grammarconfig.ErrNotFound
	ErrParse               = grammarconfig.ErrParse
	ErrSchema              = grammarconfig.ErrSchema
	ErrUnsupportedProvider = llm.ErrUnsupportedProvider
	ErrMalformedResponse   = llm.ErrMalformedResponse
)

// Options mirrors the flags of `gramregex generate`.
type Options struct {
	// Grammar is an inline grammar definition. Mutually exclusive with
	// GrammarFile.
	Grammar string

	// GrammarFile is read verbatim as the grammar definition.
	GrammarFile string

	// GrammarSyntax defaults to SyntaxLark.
	GrammarSyntax GrammarSyntax

	Verbosity       Verbosity
	ReasoningEffort ReasoningEffort

	// Model overrides the settings' model for this call only.
	Model string

	// Settings bypasses environment resolution when non-nil.
	Settings *Settings

	// NewClient replaces the provider factory. Nil uses the factory keyed
	// by Settings.Provider.
	NewClient func(Settings) (Client, error)
}

// Generate resolves settings and the grammar, builds a client for the
// configured provider and returns the grammar-constrained text for prompt.
// When neither Grammar nor GrammarFile is set, the grammar comes from the
// config at Settings.GrammarConfigPath, or the bundled default.
func Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	var (
		s   Settings
		err error
	)
	if opts.Settings != nil {
		s = *opts.Settings
	} else if s, err = settings.Default(); err != nil {
		return "", err
	}

	cfg, err := grammar.Resolve(opts.Grammar, opts.GrammarFile, s.GrammarConfigPath)
	if err != nil {
		return "", err
	}
	s = s.WithModel(opts.Model)

	newClient := opts.NewClient
	if newClient == nil {
		newClient = llm.New
	}
	client, err := newClient(s)
	if err != nil {
		return "", err
	}

	syntax := opts.GrammarSyntax
	if syntax == "" {
		syntax = SyntaxLark
	}
	slog.Debug("generating", "provider", s.Provider, "model", s.Model, "syntax", string(syntax))
	return client.Generate(ctx, Request{
		Prompt:          prompt,
		Grammar:         cfg,
		Syntax:          syntax,
		Verbosity:       opts.Verbosity,
		ReasoningEffort: opts.ReasoningEffort,
	})
}

// NewClient returns the client registered for s.Provider.
func NewClient(s Settings) (Client, error) {
	return llm.New(s)
}

// LoadSettings resolves settings from overrides, the environment and .env.
func LoadSettings(overrides map[string]string) (Settings, error) {
	return settings.Load(overrides)
}

// DefaultSettings returns the process-wide memoized settings.
func DefaultSettings() (Settings, error) {
	return settings.Default()
}

// ResetSettings clears the memoized settings returned by DefaultSettings.
func ResetSettings() {
	settings.Reset()
}

// LoadGrammarConfig loads the config at path, or the bundled default when
// path is empty.
func LoadGrammarConfig(path string) (*GrammarConfig, error) {
	if path == "" {
		return grammarconfig.LoadDefault()
	}
	return grammarconfig.Load(path)
}

// ResolveGrammar picks the grammar text the same way Generate does.
func ResolveGrammar(inline, file, configPath string) (string, error) {
	return grammar.Resolve(inline, file, configPath)
}
