// Copyright 2026 The Gramregex Authors
// SPDX-License-Identifier: MIT

// Package redact strips API keys from strings before they appear in output,
// logs, or error messages.
package redact

import (
	"os"
	"strings"
	"sync"
)

// sensitiveEnvVars lists environment variables whose values must never
// appear in output.
var sensitiveEnvVars = []string{
	"OPENAI_API_KEY",
}

// minSecretLen guards against redacting short values that would cause
// false positives.
const minSecretLen = 4

var (
	mu         sync.RWMutex
	registered []string
)

// Register adds secrets that did not come from the process environment,
// such as keys read from a dotenv file or passed as overrides.
func Register(secrets ...string) {
	mu.Lock()
	defer mu.Unlock()
	for _, s := range secrets {
		if len(s) >= minSecretLen {
			registered = append(registered, s)
		}
	}
}

// Reset forgets registered secrets. Used by tests.
func Reset() {
	mu.Lock()
	registered = nil
	mu.Unlock()
}

// String replaces any known secret in s with "[REDACTED]".
func String(s string) string {
	for _, secret := range secrets() {
		s = strings.ReplaceAll(s, secret, "[REDACTED]")
	}
	return s
}

func secrets() []string {
	mu.RLock()
	out := make([]string, 0, len(registered)+len(sensitiveEnvVars))
	out = append(out, registered...)
	mu.RUnlock()

	for _, envVar := range sensitiveEnvVars {
		if val := os.Getenv(envVar); len(val) >= minSecretLen {
			out = append(out, val)
		}
	}
	return out
}
