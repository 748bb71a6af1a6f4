// Copyright 2026 The Gramregex Authors
// SPDX-License-Identifier: MIT

package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gramregex/gramregex"
)

// GenerateFunc performs one generation call. gramregex.Generate in
// production; tests substitute a fake.
type GenerateFunc func(ctx context.Context, prompt string, opts gramregex.Options) (string, error)

// New creates a new MCP server with the generate tool registered. A nil
// generate uses gramregex.Generate.
func New(version string, generate GenerateFunc) *mcp.Server {
	if generate == nil {
		generate = gramregex.Generate
	}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "gramregex",
		Title:   "gramregex: grammar-constrained generation",
		Version: version,
	}, nil)

	registerTools(server, generate)
	return server
}

// Run creates an MCP server and runs it on the given transport.
// It blocks until the client disconnects or the context is cancelled.
func Run(ctx context.Context, version string, transport mcp.Transport, generate GenerateFunc) error {
	return New(version, generate).Run(ctx, transport)
}
