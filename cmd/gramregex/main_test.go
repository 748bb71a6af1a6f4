// Copyright 2026 The Gramregex Authors
// SPDX-License-Identifier: MIT

package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestVersionDefault(t *testing.T) {
	if Version != "dev" {
		t.Errorf("default Version = %q, want %q", Version, "dev")
	}
}

func TestVersionSubcommand(t *testing.T) {
	if testing.Short() {
		t.Skip("builds the binary")
	}
	binary := filepath.Join(t.TempDir(), "gramregex-test")
	build := exec.Command("go", "build", //nolint:gosec // test helper with fixed args
		"-ldflags", `-X main.Version=v0.1.0-test`,
		"-o", binary,
		".",
	)
	build.Dir, _ = os.Getwd()
	if out, err := build.CombinedOutput(); err != nil {
		t.Fatalf("go build failed: %v\n%s", err, out)
	}

	out, err := exec.Command(binary, "version").Output() //nolint:gosec // test helper with fixed args
	if err != nil {
		t.Fatalf("gramregex version failed: %v", err)
	}

	got := strings.TrimSpace(string(out))
	want := "gramregex v0.1.0-test"
	if got != want {
		t.Errorf("gramregex version = %q, want %q", got, want)
	}
}
