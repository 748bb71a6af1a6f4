// Copyright 2026 The Gramregex Authors
// SPDX-License-Identifier: MIT

package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/gramregex/gramregex/internal/settings"
)

const (
	// grammarToolName and grammarToolDescription are part of the wire
	// contract with the Responses API and must not change.
	grammarToolName        = "cfg_grammar"
	grammarToolDescription = "Validate output against the provided grammar."

	// responsesPath is resolved against the client's base URL.
	responsesPath = "responses"

	// requestIDHeader carries a per-call id that OpenAI echoes into its logs.
	requestIDHeader = "X-Client-Request-Id"
)

// ResponsesRequest is the body posted to the Responses API.
type ResponsesRequest struct {
	Model             string       `json:"model"`
	Input             string       `json:"input"`
	Text              TextConfig   `json:"text"`
	Tools             []CustomTool `json:"tools"`
	ParallelToolCalls bool         `json:"parallel_tool_calls"`
	Reasoning         *Reasoning   `json:"reasoning,omitempty"`
}

// TextConfig configures the text output of a response.
type TextConfig struct {
	Format    TextFormat `json:"format"`
	Verbosity Verbosity  `json:"verbosity,omitempty"`
}

// TextFormat selects the output format.
type TextFormat struct {
	Type string `json:"type"`
}

// CustomTool is a custom tool definition whose input is constrained by a
// grammar.
type CustomTool struct {
	Type        string        `json:"type"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Format      GrammarFormat `json:"format"`
}

// GrammarFormat carries the grammar definition of a CustomTool.
type GrammarFormat struct {
	Type       string        `json:"type"`
	Syntax     GrammarSyntax `json:"syntax"`
	Definition string        `json:"definition"`
}

// Reasoning carries the reasoning effort hint.
type Reasoning struct {
	Effort ReasoningEffort `json:"effort"`
}

// BuildRequest maps req onto the Responses API body for model. The grammar
// is attached as the only tool and parallel tool calls are always disabled;
// verbosity and reasoning are omitted entirely when unset.
func BuildRequest(model string, req Request) ResponsesRequest {
	syntax := req.Syntax
	if syntax == "" {
		syntax = SyntaxLark
	}

	body := ResponsesRequest{
		Model: model,
		Input: req.Prompt,
		Text: TextConfig{
			Format:    TextFormat{Type: "text"},
			Verbosity: req.Verbosity,
		},
		Tools: []CustomTool{{
			Type:        "custom",
			Name:        grammarToolName,
			Description: grammarToolDescription,
			Format: GrammarFormat{
				Type:       "grammar",
				Syntax:     syntax,
				Definition: req.Grammar,
			},
		}},
		ParallelToolCalls: false,
	}
	if req.ReasoningEffort != "" {
		body.Reasoning = &Reasoning{Effort: req.ReasoningEffort}
	}
	return body
}

// OpenAIClient implements Client on the OpenAI Responses API.
type OpenAIClient struct {
	client openai.Client
	model  string
}

// Compile-time check that OpenAIClient satisfies the Client interface.
var _ Client = (*OpenAIClient)(nil)

// NewOpenAIClient creates a client from resolved settings. The SDK's
// automatic retries are disabled; a failed call fails once.
func NewOpenAIClient(s settings.Settings) (*OpenAIClient, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	opts := []option.RequestOption{
		option.WithAPIKey(s.APIKey),
		option.WithMaxRetries(0),
	}
	if s.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(s.BaseURL))
	}

	return &OpenAIClient{
		client: openai.NewClient(opts...),
		model:  s.Model,
	}, nil
}

// Model returns the model every request is sent to.
func (c *OpenAIClient) Model() string {
	return c.model
}

// Generate posts the grammar-constrained request and extracts its text.
func (c *OpenAIClient) Generate(ctx context.Context, req Request) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	body := BuildRequest(c.model, req)
	requestID := uuid.NewString()
	slog.Debug("sending responses request",
		"model", body.Model,
		"request_id", requestID,
		"syntax", body.Tools[0].Format.Syntax,
		"verbosity", string(req.Verbosity),
		"reasoning_effort", string(req.ReasoningEffort),
	)

	var raw []byte
	err := c.client.Post(ctx, responsesPath, body, &raw, option.WithHeader(requestIDHeader, requestID))
	if err != nil {
		return "", fmt.Errorf("openai: responses request failed: %w", err)
	}

	text, err := ExtractText(raw)
	if err != nil {
		return "", err
	}
	slog.Debug("responses request complete", "request_id", requestID, "chars", len(text))
	return text, nil
}
