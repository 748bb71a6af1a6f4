// Copyright 2026 The Gramregex Authors
// SPDX-License-Identifier: MIT

package gramregex_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gramregex/gramregex"
	"github.com/gramregex/gramregex/internal/llm"
)

// isolateEnv gives the test a clean environment with only an API key set and
// no dotenv file in the working directory.
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"OPENAI_API_KEY", "PROVIDER", "OPENAI_MODEL", "OPENAI_BASE_URL", "GRAMREGEX_CONFIG_PATH", "GRAMREGEX_CONFIG"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	t.Chdir(t.TempDir())
	t.Setenv("OPENAI_API_KEY", "dummy")
	gramregex.ResetSettings()
	t.Cleanup(gramregex.ResetSettings)
}

// recorder is a client factory that hands out one mock and remembers the
// settings it was built with.
type recorder struct {
	mock     *llm.MockClient
	settings gramregex.Settings
	calls    int
}

func newRecorder(text string) *recorder {
	return &recorder{mock: llm.NewMockClient(llm.MockResponse{Text: text})}
}

func (r *recorder) factory(s gramregex.Settings) (gramregex.Client, error) {
	r.calls++
	r.settings = s
	return r.mock, nil
}

func TestGenerate_UsesFactoryAndReturnsOutput(t *testing.T) {
	isolateEnv(t)
	path := filepath.Join(t.TempDir(), "grammar.cfg")
	require.NoError(t, os.WriteFile(path, []byte("root ::= 'lib'"), 0o600))
	rec := newRecorder("library-output")

	out, err := gramregex.Generate(context.Background(), "input text", gramregex.Options{
		GrammarFile:     path,
		GrammarSyntax:   gramregex.SyntaxRegex,
		Verbosity:       gramregex.VerbosityHigh,
		ReasoningEffort: gramregex.ReasoningMedium,
		NewClient:       rec.factory,
	})
	require.NoError(t, err)
	assert.Equal(t, "library-output", out)

	call, ok := rec.mock.LastCall()
	require.True(t, ok)
	assert.Equal(t, gramregex.Request{
		Prompt:          "input text",
		Grammar:         "root ::= 'lib'",
		Syntax:          gramregex.SyntaxRegex,
		Verbosity:       gramregex.VerbosityHigh,
		ReasoningEffort: gramregex.ReasoningMedium,
	}, call)
	assert.Equal(t, "gpt-4.1-mini", rec.settings.Model)
	assert.Equal(t, "openai", rec.settings.Provider)
}

func TestGenerate_LoadsDefaultGrammar(t *testing.T) {
	isolateEnv(t)
	rec := newRecorder("ok")

	_, err := gramregex.Generate(context.Background(), "input text", gramregex.Options{NewClient: rec.factory})
	require.NoError(t, err)

	def, err := gramregex.LoadGrammarConfig("")
	require.NoError(t, err)
	call, _ := rec.mock.LastCall()
	assert.Equal(t, def.Content, call.Grammar)
	assert.Equal(t, gramregex.SyntaxLark, call.Syntax)
	assert.Empty(t, call.Verbosity)
	assert.Empty(t, call.ReasoningEffort)
}

func TestGenerate_ConfigPathFromEnv(t *testing.T) {
	isolateEnv(t)
	cfg := filepath.Join(t.TempDir(), "grammar.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("name: s\ndescription: d\ncontent: |-\n  root ::= \"from-config\"\n"), 0o600))
	t.Setenv("GRAMREGEX_CONFIG_PATH", cfg)
	rec := newRecorder("ok")

	_, err := gramregex.Generate(context.Background(), "input", gramregex.Options{NewClient: rec.factory})
	require.NoError(t, err)
	call, _ := rec.mock.LastCall()
	assert.Equal(t, `root ::= "from-config"`, call.Grammar)

	// Inline grammar still beats the configured path.
	_, err = gramregex.Generate(context.Background(), "input", gramregex.Options{Grammar: "inline", NewClient: rec.factory})
	require.NoError(t, err)
	call, _ = rec.mock.LastCall()
	assert.Equal(t, "inline", call.Grammar)
}

func TestGenerate_OverridesModel(t *testing.T) {
	isolateEnv(t)
	rec := newRecorder("ok")

	_, err := gramregex.Generate(context.Background(), "input", gramregex.Options{
		Model:     "custom-model",
		Grammar:   "root ::= 'x'",
		NewClient: rec.factory,
	})
	require.NoError(t, err)
	assert.Equal(t, "custom-model", rec.settings.Model)

	def, err := gramregex.DefaultSettings()
	require.NoError(t, err)
	assert.Equal(t, "gpt-4.1-mini", def.Model, "override must not leak into the cached settings")
}

func TestGenerate_ExplicitSettingsBypassEnv(t *testing.T) {
	isolateEnv(t)
	require.NoError(t, os.Unsetenv("OPENAI_API_KEY"))
	rec := newRecorder("ok")

	s := gramregex.Settings{Provider: "openai", APIKey: "explicit", Model: "embedded"}
	_, err := gramregex.Generate(context.Background(), "input", gramregex.Options{
		Grammar:   "g",
		Settings:  &s,
		NewClient: rec.factory,
	})
	require.NoError(t, err)
	assert.Equal(t, "explicit", rec.settings.APIKey)
	assert.Equal(t, "embedded", rec.settings.Model)
}

func TestGenerate_RejectsConflictingGrammarInputs(t *testing.T) {
	isolateEnv(t)
	rec := newRecorder("ok")

	_, err := gramregex.Generate(context.Background(), "input", gramregex.Options{
		Grammar:     "root ::= 'x'",
		GrammarFile: filepath.Join(t.TempDir(), "grammar.cfg"),
		NewClient:   rec.factory,
	})
	assert.ErrorIs(t, err, gramregex.ErrInvalidArgument)
	assert.Zero(t, rec.calls, "no client should be built")
}

func TestGenerate_MissingAPIKey(t *testing.T) {
	isolateEnv(t)
	require.NoError(t, os.Unsetenv("OPENAI_API_KEY"))

	_, err := gramregex.Generate(context.Background(), "input", gramregex.Options{Grammar: "g"})
	assert.ErrorIs(t, err, gramregex.ErrConfiguration)
}

func TestGenerate_UnsupportedProvider(t *testing.T) {
	isolateEnv(t)
	t.Setenv("PROVIDER", "unknown")

	_, err := gramregex.Generate(context.Background(), "input", gramregex.Options{Grammar: "g"})
	require.ErrorIs(t, err, gramregex.ErrUnsupportedProvider)

	var upe *gramregex.UnsupportedProviderError
	require.True(t, errors.As(err, &upe))
	assert.Equal(t, "unknown", upe.Provider)
}

func TestGenerate_ClientErrorPropagates(t *testing.T) {
	isolateEnv(t)
	boom := errors.New("provider down")
	mock := llm.NewMockClient(llm.MockResponse{Err: boom})

	_, err := gramregex.Generate(context.Background(), "input", gramregex.Options{
		Grammar:   "g",
		NewClient: func(gramregex.Settings) (gramregex.Client, error) { return mock, nil },
	})
	assert.ErrorIs(t, err, boom)
}

func TestResolveGrammar(t *testing.T) {
	got, err := gramregex.ResolveGrammar("inline", "", "")
	require.NoError(t, err)
	assert.Equal(t, "inline", got)
}

func TestLoadSettings(t *testing.T) {
	isolateEnv(t)
	t.Setenv("OPENAI_MODEL", "example-model")

	s, err := gramregex.LoadSettings(nil)
	require.NoError(t, err)
	assert.Equal(t, "example-model", s.Model)
	assert.Equal(t, "openai", s.Provider)
}
