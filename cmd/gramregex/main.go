// Copyright 2026 The Gramregex Authors
// SPDX-License-Identifier: MIT

// Command gramregex generates LLM output constrained by a context-free
// grammar.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/gramregex/gramregex/internal/redact"
)

// Version is set via -ldflags at build time.
var Version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

// run executes the root command with args and returns the process exit code,
// reporting any error to stderr.
func run(args []string, stderr io.Writer) int {
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	if err == nil {
		return ExitOK
	}

	code := ExitFailure
	msg := err.Error()
	var ece *exitCodeError
	if errors.As(err, &ece) {
		code = ece.code
		msg = ece.msg
	}
	if msg != "" {
		prefix := color.New(color.FgRed, color.Bold).Sprint("error:")
		_, _ = fmt.Fprintln(stderr, prefix, redact.String(msg))
	}
	return code
}
