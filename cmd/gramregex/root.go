// Copyright 2026 The Gramregex Authors
// SPDX-License-Identifier: MIT

package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	gramlog "github.com/gramregex/gramregex/internal/log"
	"github.com/gramregex/gramregex/internal/settings"
)

// Global flag values.
var (
	verbose bool
	quiet   bool
	noColor bool
	envFile string
)

// rootCmd is the base command for gramregex.
var rootCmd = &cobra.Command{
	Use:   "gramregex",
	Short: "Generate grammar-constrained responses using the OpenAI Responses API",
	Long: `gramregex sends a prompt to an LLM together with a context-free grammar
(lark) or regular expression and prints the model output, which the provider
constrains to match that grammar.

Configuration is read from the environment or a .env file:
  OPENAI_API_KEY         API key (required)
  OPENAI_MODEL           model name (default gpt-4.1-mini)
  OPENAI_BASE_URL        base URL for OpenAI-compatible endpoints
  PROVIDER               LLM provider (default openai)
  GRAMREGEX_CONFIG_PATH  YAML grammar config used when no grammar is given`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		gramlog.Setup(cmd.ErrOrStderr(), verbose, quiet)
		if noColor {
			color.NoColor = true
		}
		if envFile != settings.DotEnvPath {
			settings.DotEnvPath = envFile
			settings.Reset()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", settings.DotEnvPath, "dotenv file read for settings missing from the environment")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return exitError(ExitUsage, "gramregex: %v", err)
	})

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)
}
