// Copyright 2026 The Gramregex Authors
// SPDX-License-Identifier: MIT

package main

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/gramregex/gramregex"
	"github.com/gramregex/gramregex/internal/mcpserver"
	"github.com/gramregex/gramregex/internal/redact"
)

// mcpCmd is the parent command for MCP-related subcommands.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Model Context Protocol server commands",
	Long:  "Commands for running gramregex as an MCP server, exposing grammar-constrained generation to AI agents.",
}

// mcpServeCmd runs the MCP server over stdio.
var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server over stdio",
	Long: `Start an MCP server on stdin/stdout exposing a single tool:
  - generate: send a prompt constrained by a lark grammar or regex

Settings are resolved from the environment exactly as for 'gramregex generate'.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return mcpserver.Run(cmd.Context(), Version, &mcp.StdioTransport{}, mcpGenerate)
	},
}

// mcpGenerate routes MCP tool calls through the generate command's client
// factory and registers the resolved API key for redaction.
func mcpGenerate(ctx context.Context, prompt string, opts gramregex.Options) (string, error) {
	if opts.Settings == nil {
		s, err := gramregex.DefaultSettings()
		if err != nil {
			return "", err
		}
		opts.Settings = &s
	}
	redact.Register(opts.Settings.APIKey)
	opts.NewClient = newClient
	return gramregex.Generate(ctx, prompt, opts)
}

func init() {
	mcpCmd.AddCommand(mcpServeCmd)
}
