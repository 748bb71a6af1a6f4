// Copyright 2026 The Gramregex Authors
// SPDX-License-Identifier: MIT

package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_DefaultLevel(t *testing.T) {
	Setup(nil, false, false)

	ctx := context.Background()
	handler := slog.Default().Handler()
	assert.True(t, handler.Enabled(ctx, slog.LevelInfo), "INFO should be enabled in default mode")
	assert.True(t, handler.Enabled(ctx, slog.LevelWarn), "WARN should be enabled in default mode")
	assert.False(t, handler.Enabled(ctx, slog.LevelDebug), "DEBUG should not be enabled in default mode")
}

func TestSetup_VerboseLevel(t *testing.T) {
	Setup(nil, true, false)

	handler := slog.Default().Handler()
	assert.True(t, handler.Enabled(context.Background(), slog.LevelDebug), "DEBUG should be enabled in verbose mode")
}

func TestSetup_QuietTakesPrecedence(t *testing.T) {
	Setup(nil, true, true)

	ctx := context.Background()
	handler := slog.Default().Handler()
	assert.False(t, handler.Enabled(ctx, slog.LevelDebug))
	assert.False(t, handler.Enabled(ctx, slog.LevelInfo))
	assert.True(t, handler.Enabled(ctx, slog.LevelWarn))
}

func TestSetup_TextToWriter(t *testing.T) {
	t.Setenv(EnvFormat, "")
	var buf bytes.Buffer
	Setup(&buf, false, false)

	slog.Info("hello", "model", "m")
	assert.Contains(t, buf.String(), "msg=hello")
	assert.Contains(t, buf.String(), "model=m")
}

func TestSetup_JSONFormat(t *testing.T) {
	t.Setenv(EnvFormat, "JSON")
	var buf bytes.Buffer
	Setup(&buf, true, false)

	slog.Debug("resolved", "provider", "openai")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "resolved", entry["msg"])
	assert.Equal(t, "openai", entry["provider"])
	assert.Equal(t, "DEBUG", entry["level"])
}
