// Copyright 2026 The Gramregex Authors
// SPDX-License-Identifier: MIT

package llm

import (
	"encoding/json"
	"errors"

	"github.com/openai/openai-go/responses"
	"github.com/tidwall/gjson"
)

// ErrMalformedResponse is returned when no extraction strategy finds text.
var ErrMalformedResponse = errors.New("response did not contain text output")

// textPaths are fallback response shapes, tried in order after the typed
// decode; the first path holding a string wins.
var textPaths = []string{
	// Flat convenience field emitted by some compatible endpoints.
	"output_text",
	// First content fragment of the first output item.
	"output.0.content.0.text",
}

// ExtractText returns the text of a raw Responses API body. All output_text
// fragments across the output items are joined in order, skipping reasoning
// and tool items; untyped bodies fall back to textPaths.
func ExtractText(raw []byte) (string, error) {
	if !gjson.ValidBytes(raw) {
		return "", ErrMalformedResponse
	}

	var resp responses.Response
	if err := json.Unmarshal(raw, &resp); err == nil {
		if text := resp.OutputText(); text != "" {
			return text, nil
		}
	}

	for _, path := range textPaths {
		if v := gjson.GetBytes(raw, path); v.Type == gjson.String {
			return v.Str, nil
		}
	}
	return "", ErrMalformedResponse
}
