// Copyright 2026 The Gramregex Authors
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/gramregex/gramregex"
	"github.com/gramregex/gramregex/internal/grammar"
	"github.com/gramregex/gramregex/internal/llm"
	"github.com/gramregex/gramregex/internal/redact"
)

// newClient builds the provider client. Tests replace it with a mock factory.
var newClient = gramregex.NewClient

// Generate-specific flag values.
var (
	genGrammar         string
	genGrammarFile     string
	genModel           string
	genGrammarSyntax   string
	genVerbosity       string
	genReasoningEffort string
)

// generateCmd sends one prompt constrained by a grammar and prints the output.
var generateCmd = &cobra.Command{
	Use:   "generate <input_text>",
	Short: "Generate a response constrained by a grammar",
	Long: `Send input_text to the configured model with a custom tool whose output
must match the given grammar, and print the model output.

The grammar comes from exactly one of:
  --grammar        inline grammar text
  --grammar-file   a file read verbatim
Without either, the grammar config at GRAMREGEX_CONFIG_PATH is used, falling
back to the bundled default config.`,
	Example: `  gramregex generate "Pick a colour" -g 'start: "red" | "green" | "blue"'
  gramregex generate "Give a date" -f date.regex --grammar-syntax regex`,
	Args: func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(1)(cmd, args); err != nil {
			return exitError(ExitUsage, "gramregex: %v", err)
		}
		return nil
	},
	RunE: runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.StringVarP(&genGrammar, "grammar", "g", "", "inline grammar definition")
	f.StringVarP(&genGrammarFile, "grammar-file", "f", "", "path to a file containing the grammar definition")
	f.StringVar(&genModel, "model", "", "override the configured model for this call")
	f.Var(newEnumValue(&genGrammarSyntax, string(llm.SyntaxLark), llm.GrammarSyntaxes, false, "syntax"),
		"grammar-syntax", "grammar syntax (lark, regex)")
	f.Var(newEnumValue(&genVerbosity, "", llm.VerbosityLevels, true, "level"),
		"verbosity", "response verbosity hint (low, medium, high)")
	f.Var(newEnumValue(&genReasoningEffort, "", llm.ReasoningEfforts, true, "effort"),
		"reasoning-effort", "reasoning effort hint (minimal, medium, high)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if genGrammar != "" && genGrammarFile != "" {
		return exitError(ExitUsage, "gramregex: %v", grammar.ErrInvalidArgument)
	}
	if genGrammarFile != "" {
		if err := grammar.CheckFile(genGrammarFile); err != nil {
			return exitError(ExitUsage, "gramregex: invalid value for --grammar-file: %v", err)
		}
	}

	s, err := gramregex.DefaultSettings()
	if err != nil {
		return exitError(ExitConfig, "gramregex: %v", err)
	}
	redact.Register(s.APIKey)
	slog.Debug("settings resolved", "settings", s)

	out, err := gramregex.Generate(cmd.Context(), args[0], gramregex.Options{
		Grammar:         genGrammar,
		GrammarFile:     genGrammarFile,
		GrammarSyntax:   gramregex.GrammarSyntax(genGrammarSyntax),
		Verbosity:       gramregex.Verbosity(genVerbosity),
		ReasoningEffort: gramregex.ReasoningEffort(genReasoningEffort),
		Model:           genModel,
		Settings:        &s,
		NewClient:       newClient,
	})
	if err != nil {
		if errors.Is(err, gramregex.ErrMalformedResponse) {
			return exitError(ExitFailure, "gramregex: generation failed: %v", err)
		}
		return wrapExit(err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}
