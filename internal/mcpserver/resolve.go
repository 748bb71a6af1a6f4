// Copyright 2026 The Gramregex Authors
// SPDX-License-Identifier: MIT

// Package mcpserver implements an MCP (Model Context Protocol) server that
// exposes grammar-constrained generation as a tool over stdio transport.
package mcpserver

import (
	"fmt"
	"path/filepath"

	"github.com/gramregex/gramregex/internal/grammar"
)

// ResolveFile turns a path received from an MCP client into an absolute,
// symlink-resolved path naming a readable regular file. Relative paths are
// interpreted against the server's working directory. An empty path is
// returned unchanged.
func ResolveFile(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("cannot resolve path %q: %w", path, err)
	}
	if resolved, err := filepath.EvalSymlinks(absPath); err == nil {
		absPath = resolved
	}

	if err := grammar.CheckFile(absPath); err != nil {
		return "", err
	}
	return absPath, nil
}
