// Copyright 2026 The Gramregex Authors
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/gramregex/gramregex"
	"github.com/gramregex/gramregex/internal/llm"
	"github.com/gramregex/gramregex/internal/redact"
	"github.com/gramregex/gramregex/internal/settings"
)

var settingsEnv = []string{
	settings.EnvAPIKey,
	settings.EnvProvider,
	settings.EnvModel,
	settings.EnvBaseURL,
	settings.EnvConfigPath,
	settings.EnvConfigPathLegacy,
}

// isolateCLI runs the test in an empty working directory with only an API key
// in the environment and the client factory replaced by mock.
func isolateCLI(t *testing.T, mock *llm.MockClient) {
	t.Helper()
	for _, key := range settingsEnv {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	t.Setenv(settings.EnvAPIKey, "dummy")
	t.Chdir(t.TempDir())

	prev := newClient
	newClient = func(gramregex.Settings) (gramregex.Client, error) { return mock, nil }
	t.Cleanup(func() { newClient = prev })

	resetFlags(t)
	settings.Reset()
	redact.Reset()
	t.Cleanup(settings.Reset)
	t.Cleanup(redact.Reset)
}

// resetFlags restores every flag of the command tree to its default so state
// does not leak between tests.
func resetFlags(t *testing.T) {
	t.Helper()
	var walk func(c *cobra.Command)
	walk = func(c *cobra.Command) {
		reset := func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		}
		c.Flags().VisitAll(reset)
		c.PersistentFlags().VisitAll(reset)
		for _, sub := range c.Commands() {
			walk(sub)
		}
	}
	walk(rootCmd)
}

// runCLI executes the root command with args and captures its output.
func runCLI(t *testing.T, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	code = run(args, &errOut)
	return out.String(), errOut.String(), code
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
