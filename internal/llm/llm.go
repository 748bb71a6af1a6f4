// Copyright 2026 The Gramregex Authors
// SPDX-License-Identifier: MIT

// Package llm defines the grammar-constrained generation client used by
// gramregex and its provider implementations.
package llm

import (
	"context"
	"errors"
	"fmt"
)

// Client generates text whose shape is constrained by a context-free grammar.
type Client interface {
	// Generate sends req to the provider and returns the extracted text.
	// Transport and provider errors are returned unchanged apart from
	// wrapping; nothing is retried.
	Generate(ctx context.Context, req Request) (string, error)
}

// Request describes a single generation call.
type Request struct {
	// Prompt is the primary model input.
	Prompt string

	// Grammar is the grammar definition, passed to the provider verbatim.
	Grammar string

	// Syntax names the grammar dialect. Empty means SyntaxLark.
	Syntax GrammarSyntax

	// Verbosity is an optional response detail hint.
	Verbosity Verbosity

	// ReasoningEffort is an optional reasoning depth hint.
	ReasoningEffort ReasoningEffort
}

// ErrInvalidOption is returned for enum values outside their allowed set.
var ErrInvalidOption = errors.New("invalid option value")

// GrammarSyntax is the dialect a grammar is written in.
type GrammarSyntax string

// Supported grammar syntaxes.
const (
	SyntaxLark  GrammarSyntax = "lark"
	SyntaxRegex GrammarSyntax = "regex"
)

// GrammarSyntaxes lists the accepted values in display order.
var GrammarSyntaxes = []string{string(SyntaxLark), string(SyntaxRegex)}

// Validate rejects unknown syntaxes.
func (g GrammarSyntax) Validate() error {
	return validateEnum("grammar syntax", string(g), GrammarSyntaxes, false)
}

// Verbosity controls how detailed the response should be.
type Verbosity string

// Verbosity levels. The zero value means no hint is sent.
const (
	VerbosityLow    Verbosity = "low"
	VerbosityMedium Verbosity = "medium"
	VerbosityHigh   Verbosity = "high"
)

// VerbosityLevels lists the accepted values in display order.
var VerbosityLevels = []string{string(VerbosityLow), string(VerbosityMedium), string(VerbosityHigh)}

// Validate rejects unknown levels. The empty value is valid.
func (v Verbosity) Validate() error {
	return validateEnum("verbosity", string(v), VerbosityLevels, true)
}

// ReasoningEffort trades reasoning depth against latency and cost.
type ReasoningEffort string

// Reasoning effort levels. The zero value means no hint is sent.
const (
	ReasoningMinimal ReasoningEffort = "minimal"
	ReasoningMedium  ReasoningEffort = "medium"
	ReasoningHigh    ReasoningEffort = "high"
)

// ReasoningEfforts lists the accepted values in display order.
var ReasoningEfforts = []string{string(ReasoningMinimal), string(ReasoningMedium), string(ReasoningHigh)}

// Validate rejects unknown efforts. The empty value is valid.
func (r ReasoningEffort) Validate() error {
	return validateEnum("reasoning effort", string(r), ReasoningEfforts, true)
}

// Validate checks every enum field of the request.
func (r Request) Validate() error {
	if r.Syntax != "" {
		if err := r.Syntax.Validate(); err != nil {
			return err
		}
	}
	if err := r.Verbosity.Validate(); err != nil {
		return err
	}
	return r.ReasoningEffort.Validate()
}

func validateEnum(field, value string, allowed []string, allowEmpty bool) error {
	if value == "" && allowEmpty {
		return nil
	}
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("%w: %s %q (must be one of %v)", ErrInvalidOption, field, value, allowed)
}
