// Copyright 2026 The Gramregex Authors
// SPDX-License-Identifier: MIT

package mcpserver

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gramregex/gramregex"
	"github.com/gramregex/gramregex/internal/redact"
)

// GenerateInput is the input schema for the generate MCP tool.
type GenerateInput struct {
	Prompt          string `json:"prompt" jsonschema:"Input text sent to the model"`
	Grammar         string `json:"grammar,omitempty" jsonschema:"Inline grammar definition (mutually exclusive with grammar_file)"`
	GrammarFile     string `json:"grammar_file,omitempty" jsonschema:"Path to a grammar definition file"`
	GrammarSyntax   string `json:"grammar_syntax,omitempty" jsonschema:"Grammar syntax: lark or regex (default: lark)"`
	Verbosity       string `json:"verbosity,omitempty" jsonschema:"Response detail: low, medium or high"`
	ReasoningEffort string `json:"reasoning_effort,omitempty" jsonschema:"Reasoning effort: minimal, medium or high"`
	Model           string `json:"model,omitempty" jsonschema:"Model name overriding OPENAI_MODEL"`
}

// boolPtr returns a pointer to a bool.
func boolPtr(b bool) *bool { return &b }

// registerTools adds the gramregex tools to the MCP server.
func registerTools(server *mcp.Server, generate GenerateFunc) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate",
		Description: "Generate text with an LLM whose output is constrained by a context-free grammar (lark) or regular expression. Uses the bundled default grammar when none is given.",
		Annotations: &mcp.ToolAnnotations{
			ReadOnlyHint:    true,
			DestructiveHint: boolPtr(false),
			OpenWorldHint:   boolPtr(true),
		},
	}, generateHandler(generate))
}

func generateHandler(generate GenerateFunc) func(context.Context, *mcp.CallToolRequest, GenerateInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GenerateInput) (*mcp.CallToolResult, any, error) {
		opts, err := input.options()
		if err != nil {
			return nil, nil, err
		}

		text, err := generate(ctx, input.Prompt, opts)
		if err != nil {
			err = redactedError{err}
			slog.Debug("mcp generate failed", "error", err)
			return nil, nil, err
		}

		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{Text: text},
			},
		}, nil, nil
	}
}

// redactedError hides known secrets in the message sent back to the MCP
// client while keeping the wrapped error matchable.
type redactedError struct{ err error }

func (e redactedError) Error() string { return redact.String(e.err.Error()) }
func (e redactedError) Unwrap() error { return e.err }

// options validates the tool input and maps it onto gramregex.Options.
func (in GenerateInput) options() (gramregex.Options, error) {
	if strings.TrimSpace(in.Prompt) == "" {
		return gramregex.Options{}, errors.New("prompt is required")
	}
	if in.Grammar != "" && in.GrammarFile != "" {
		return gramregex.Options{}, gramregex.ErrInvalidArgument
	}

	grammarFile, err := ResolveFile(in.GrammarFile)
	if err != nil {
		return gramregex.Options{}, err
	}

	opts := gramregex.Options{
		Grammar:         in.Grammar,
		GrammarFile:     grammarFile,
		GrammarSyntax:   gramregex.GrammarSyntax(in.GrammarSyntax),
		Verbosity:       gramregex.Verbosity(in.Verbosity),
		ReasoningEffort: gramregex.ReasoningEffort(in.ReasoningEffort),
		Model:           in.Model,
	}
	if opts.GrammarSyntax == "" {
		opts.GrammarSyntax = gramregex.SyntaxLark
	}
	if err := opts.GrammarSyntax.Validate(); err != nil {
		return gramregex.Options{}, err
	}
	if err := opts.Verbosity.Validate(); err != nil {
		return gramregex.Options{}, err
	}
	if err := opts.ReasoningEffort.Validate(); err != nil {
		return gramregex.Options{}, err
	}
	return opts, nil
}
